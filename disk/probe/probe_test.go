package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kisun-bit/disktype/util/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Output:          config.OutputBoth,
		CacheBlockSize:  4096,
		DecompressLimit: 64 << 20,
		BlankMaxBlocks:  4096,
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestRunBlankFile(t *testing.T) {
	p := writeFile(t, "zero.img", make([]byte, 1<<20))
	var out bytes.Buffer
	res := New(&out, testConfig()).Run(p)
	require.NoError(t, res.Err)

	text := out.String()
	assert.Contains(t, text, "--- "+p+"\nRegular file, size 1048576 bytes, 1.0 MiB\n")
	assert.Contains(t, text, "Blank disk/medium\n")

	js := res.Document.JSON()
	assert.Equal(t, "Regular file", gjson.Get(js, "file kind").String())
	assert.Equal(t, "1048576", gjson.Get(js, "size").String())
	assert.Equal(t, "true", gjson.Get(js, `content.#(type=="Blank").properties.all_empty_guess`).String())
}

func TestRunEmptyFile(t *testing.T) {
	p := writeFile(t, "empty.img", nil)
	var out bytes.Buffer
	res := New(&out, testConfig()).Run(p)
	require.NoError(t, res.Err)

	assert.Equal(t, "--- "+p+"\nRegular file, size 0 bytes\n", out.String())
	assert.Equal(t, 0, res.Document.Content.Len())
	assert.True(t, res.Document.SizeKnown)
}

func TestRunGzipFile(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(make([]byte, 256<<10))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	p := writeFile(t, "zero.img.gz", buf.Bytes())
	var out bytes.Buffer
	res := New(&out, testConfig()).Run(p)
	require.NoError(t, res.Err)
	assert.Contains(t, out.String(), "\ngzip-compressed data\n")
	assert.Equal(t, "Gzip", gjson.Get(res.Document.JSON(), "content.0.type").String())
}

func TestRunResetsLogBetweenFiles(t *testing.T) {
	zero := writeFile(t, "zero.img", make([]byte, 64<<10))
	empty := writeFile(t, "empty.img", nil)
	var out bytes.Buffer
	p := New(&out, testConfig())

	first := p.Run(zero)
	require.NoError(t, first.Err)
	assert.NotZero(t, first.Document.Content.Len())

	second := p.Run(empty)
	require.NoError(t, second.Err)
	assert.Zero(t, second.Document.Content.Len())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	p := New(&out, testConfig())

	res := p.Run(dir)
	require.Error(t, res.Err)
	assert.Equal(t, dir+": Is a directory", res.Err.Error())
	assert.Equal(t, "--- "+dir+"\n", out.String())

	missing := filepath.Join(dir, "missing")
	res = p.Run(missing)
	require.Error(t, res.Err)
	assert.Equal(t, "Can't stat "+missing+": no such file or directory", res.Err.Error())
	assert.NotNil(t, res.Document)
	assert.False(t, res.Document.SizeKnown)
}

type fakeHost struct {
	mounts []Mount
	swaps  []Swap
}

func (h fakeHost) Mounts(string) []Mount { return h.mounts }
func (h fakeHost) Swaps() []Swap         { return h.swaps }

func TestReportHostUsage(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, testConfig()).WithHostUsage(fakeHost{
		mounts: []Mount{{Mountpoint: "/boot", Fstype: "ext4"}},
		swaps:  []Swap{{Filename: "/dev/sdz9", Size: 2 << 30, Used: 1 << 20}},
	})
	p.reportHostUsage("/dev/sdz9")
	assert.Equal(t, "Mounted at /boot (ext4)\nActive swap area, 1.0 MiB of 2.0 GiB used\n", out.String())
}

func TestParseSwaps(t *testing.T) {
	text := "Filename\t\t\t\tType\t\tSize\t\tUsed\t\tPriority\n" +
		"/dev/sda2                               partition\t8388604\t\t1024\t\t-2\n" +
		"/swapfile                               file\t\t1048572\t\t0\t\t-3\n"
	ss := parseSwaps(text)
	require.Len(t, ss, 2)
	assert.Equal(t, Swap{Filename: "/dev/sda2", Type: "partition", Size: 8388604 * 1024, Used: 1024 * 1024, Priority: -2}, ss[0])
	assert.Equal(t, "/swapfile", ss[1].Filename)
	assert.Equal(t, "file", ss[1].Type)
}

func TestRegistry(t *testing.T) {
	ds := Detectors(testConfig())
	assert.Greater(t, len(ds), 10)
	assert.Len(t, Hooks(), 1)
}

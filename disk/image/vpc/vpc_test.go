package vpc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footer(diskType uint32, dataOffset, size uint64) []byte {
	f := make([]byte, FooterSize)
	be := binary.BigEndian
	copy(f, FooterCookie)
	be.PutUint32(f[0x08:], 2)
	be.PutUint32(f[0x0C:], 0x00010000)
	be.PutUint64(f[0x10:], dataOffset)
	copy(f[0x1C:], "vpc ")
	be.PutUint64(f[0x28:], size)
	be.PutUint64(f[0x30:], size)
	be.PutUint32(f[0x3C:], diskType)
	be.PutUint32(f[0x40:], Checksum(f))
	return f
}

// buildDynamic 4 KiB块, 16 KiB虚拟磁盘, 只分配了块0.
func buildDynamic(diskType uint32) []byte {
	img := make([]byte, 6656)
	be := binary.BigEndian
	copy(img, footer(diskType, 512, 16<<10))

	h := img[512:]
	copy(h, DynamicCookie)
	be.PutUint64(h[0x08:], 0xFFFFFFFFFFFFFFFF)
	be.PutUint64(h[0x10:], 1536)
	be.PutUint32(h[0x18:], 0x00010000)
	be.PutUint32(h[0x1C:], 4)
	be.PutUint32(h[0x20:], 4096)
	for i, r := range "base.vhd" {
		be.PutUint16(h[0x40+2*i:], uint16(r))
	}

	be.PutUint32(img[1536:], 4)
	for i := 1; i < 4; i++ {
		be.PutUint32(img[1536+4*i:], batUnused)
	}
	copy(img[2560:], bytes.Repeat([]byte{0x77}, 512))
	return append(img, footer(diskType, 512, 16<<10)...)
}

type visit struct {
	level int
	size  int64
	data  []byte
}

func run(t *testing.T, img []byte) (*content.Log, string, []visit) {
	t.Helper()
	var seen []visit
	rec := func(a *detect.Analyzer, sec source.Section, level int) {
		size, _ := sec.Available()
		seen = append(seen, visit{level: level, size: size, data: sec.Buffer(0, 8192)})
	}
	var out bytes.Buffer
	log := content.NewLog(false)
	a := detect.New(log, detect.NewPrinter(&out), []detect.Detector{DetectVPC, rec})
	a.AnalyzeSource(source.NewCache(source.NewMemory(img), 4096), 0)
	return log, out.String(), seen
}

func TestParseDynamicHeader(t *testing.T) {
	img := buildDynamic(DiskTypeDynamic)
	h, err := ParseDynamicHeader(img[512:1536])
	require.NoError(t, err)
	assert.Equal(t, uint64(1536), h.TableOffset)
	assert.Equal(t, uint32(4), h.MaxTableEntries)
	assert.Equal(t, int64(512), h.BitmapSize())

	binary.BigEndian.PutUint32(img[512+0x20:], 1000)
	_, err = ParseDynamicHeader(img[512:1536])
	assert.EqualError(t, err, "invalid block size 1000")
}

func TestBitmapSize(t *testing.T) {
	h := &DynamicHeader{BlockSize: 2 << 20}
	assert.Equal(t, int64(512), h.BitmapSize())
	h.BlockSize = 16 << 20
	assert.Equal(t, int64(4096), h.BitmapSize())
}

func TestDetectVPCDynamic(t *testing.T) {
	log, out, seen := run(t, buildDynamic(DiskTypeDynamic))
	assert.Equal(t, "Virtual PC disk image (dynamic), version 1.0\n"+
		"  Disk size 16384 bytes, 16 KiB\n"+
		"  Block size 4.0 KiB, 4 blocks\n", out)

	o := log.Objects()[0]
	assert.Equal(t, "Windows VPC image", o.Type)
	for key, want := range map[string]string{
		"kind":       "dynamic",
		"disk_size":  "16384",
		"creator":    "vpc",
		"block_size": "4096",
	} {
		got, ok := o.Property(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	require.Len(t, seen, 1)
	inner := seen[0]
	assert.Equal(t, 1, inner.level)
	assert.Equal(t, int64(16<<10), inner.size)
	require.Len(t, inner.data, 8192)
	assert.Equal(t, bytes.Repeat([]byte{0x77}, 512), inner.data[:512])
	assert.Equal(t, make([]byte, 8192-512), inner.data[512:])
}

func TestDetectVPCDifferencing(t *testing.T) {
	log, out, _ := run(t, buildDynamic(DiskTypeDifferencing))
	assert.Contains(t, out, "  Parent \"base.vhd\"\n")
	v, _ := log.Objects()[0].Property("parent_name")
	assert.Equal(t, "base.vhd", v)
}

func TestDetectVPCFixed(t *testing.T) {
	img := append(make([]byte, 4096), footer(DiskTypeFixed, 0xFFFFFFFFFFFFFFFF, 4096)...)
	log, out, seen := run(t, img)
	assert.Equal(t, "Virtual PC disk image (fixed), version 1.0\n"+
		"  Disk size 4096 bytes, 4.0 KiB\n", out)
	v, _ := log.Objects()[0].Property("kind")
	assert.Equal(t, "fixed", v)
	require.Len(t, seen, 1)
	assert.Equal(t, 0, seen[0].level)
}

func TestDetectVPCChecksumMismatch(t *testing.T) {
	img := buildDynamic(DiskTypeDynamic)
	img[0x40] ^= 0xFF
	_, out, _ := run(t, img)
	assert.Contains(t, out, "  Footer checksum mismatch\n")
}

func TestDetectVPCAbsent(t *testing.T) {
	log, out, _ := run(t, make([]byte, 4096))
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, out)
}

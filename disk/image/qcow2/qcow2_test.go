package qcow2

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

type visit struct {
	level int
	size  int64
	data  []byte
}

// recorder 记录每次检测所见区段的前2 KiB内容.
func recorder(seen *[]visit) detect.Detector {
	return func(a *detect.Analyzer, sec source.Section, level int) {
		size, _ := sec.Available()
		*seen = append(*seen, visit{level: level, size: size, data: sec.Buffer(0, 2048)})
	}
}

// buildImage 512字节簇, 64 KiB虚拟磁盘:
// 簇0为头部, 簇1为L1表, 簇2为L2表, 簇3/4为数据簇.
func buildImage(crypt uint32) []byte {
	img := make([]byte, 5*512)
	be := binary.BigEndian
	copy(img, Magic)
	be.PutUint32(img[0x04:], 3)
	be.PutUint64(img[0x08:], 200)
	be.PutUint32(img[0x10:], uint32(len("base.qcow2")))
	be.PutUint32(img[0x14:], 9)
	be.PutUint64(img[0x18:], 64<<10)
	be.PutUint32(img[0x20:], crypt)
	be.PutUint32(img[0x24:], 2)
	be.PutUint64(img[0x28:], 512)
	be.PutUint32(img[0x64:], HeaderSizeV3)
	copy(img[200:], "base.qcow2")

	be.PutUint64(img[512:], 1024 | 1<<63)
	be.PutUint64(img[1024:], 1536 | 1<<63)     // 虚拟簇0.
	be.PutUint64(img[1024+2*8:], 2048 | 1<<62) // 虚拟簇2, 压缩.
	be.PutUint64(img[1024+3*8:], 2048|1)       // 虚拟簇3, 零簇.
	copy(img[1536:], bytes.Repeat([]byte{0xA5}, 512))
	copy(img[2048:], bytes.Repeat([]byte{0x5A}, 512))
	return img
}

func run(t *testing.T, img []byte, extra ...detect.Detector) (*content.Log, string) {
	t.Helper()
	var out bytes.Buffer
	log := content.NewLog(false)
	a := detect.New(log, detect.NewPrinter(&out), append([]detect.Detector{DetectQCOW}, extra...))
	a.AnalyzeSource(source.NewCache(source.NewMemory(img), 4096), 0)
	return log, out.String()
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader(buildImage(0))
	require.NoError(t, err)
	assert.Equal(t, uint32(3), h.Version)
	assert.Equal(t, int64(512), h.ClusterSize())
	assert.Equal(t, int64(64), h.L2Entries())
	assert.False(t, h.Dirty())

	info := h.Info("base.qcow2")
	assert.Equal(t, int64(64<<10), info.VirtualSize)
	assert.Equal(t, 512, info.ClusterSize)

	v2 := buildImage(0)[:HeaderSizeV2]
	binary.BigEndian.PutUint32(v2[4:], 2)
	h, err = ParseHeader(v2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.HeaderLength)

	bad := buildImage(0)
	binary.BigEndian.PutUint32(bad[0x14:], 30)
	_, err = ParseHeader(bad)
	assert.EqualError(t, err, "invalid cluster bits 30")
}

func TestClusterMapper(t *testing.T) {
	img := buildImage(0)
	h, err := ParseHeader(img)
	require.NoError(t, err)
	m := &clusterMapper{c: source.NewCache(source.NewMemory(img), 4096), h: h}

	phys, n, ok := m.Map(100)
	assert.True(t, ok)
	assert.Equal(t, int64(1636), phys)
	assert.Equal(t, int64(412), n)

	for _, off := range []int64{512, 2 * 512, 3 * 512, 64 * 512} {
		_, n, ok = m.Map(off)
		assert.False(t, ok, "offset %d", off)
		assert.Equal(t, int64(512), n)
	}
}

func TestDetectQCOW(t *testing.T) {
	var seen []visit
	log, out := run(t, buildImage(0), recorder(&seen))
	assert.Equal(t, "QEMU QCOW disk image, version 3\n"+
		"  Backing file \"base.qcow2\"\n"+
		"  Disk size 65536 bytes, 64 KiB\n"+
		"  Cluster size 512 B\n", out)

	o := log.Objects()[0]
	assert.Equal(t, "QEMU Copy-On-Write disk image", o.Type)
	assert.Equal(t, "Q1052299", o.Wikidata)
	for key, want := range map[string]string{
		"version":      "3",
		"backing_file": "base.qcow2",
		"disk_size":    "65536",
		"cluster_size": "512",
	} {
		got, ok := o.Property(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	// 映射出虚拟磁盘后, 容器本身不再交给其后的探测器.
	require.Len(t, seen, 1)
	inner := seen[0]
	assert.Equal(t, 1, inner.level)
	assert.Equal(t, int64(64<<10), inner.size)
	require.Len(t, inner.data, 2048)
	assert.Equal(t, bytes.Repeat([]byte{0xA5}, 512), inner.data[:512])
	assert.Equal(t, make([]byte, 1536), inner.data[512:])
}

func TestDetectQCOWEncrypted(t *testing.T) {
	var seen []visit
	log, out := run(t, buildImage(CryptAES), recorder(&seen))
	assert.Contains(t, out, "  Encrypted (method 1), contents not analyzed\n")
	v, _ := log.Objects()[0].Property("crypt_method")
	assert.Equal(t, "1", v)
	assert.Empty(t, seen)
}

func TestDetectQCOWVersion1(t *testing.T) {
	img := make([]byte, 512)
	copy(img, Magic)
	binary.BigEndian.PutUint32(img[4:], 1)
	binary.BigEndian.PutUint64(img[24:], 10<<20)
	var seen []visit
	log, out := run(t, img, recorder(&seen))
	assert.Len(t, seen, 1)
	assert.Equal(t, "QEMU QCOW disk image, version 1\n  Disk size 10485760 bytes, 10 MiB\n", out)
	v, _ := log.Objects()[0].Property("disk_size")
	assert.Equal(t, "10485760", v)
}

func TestDetectQCOWInvalid(t *testing.T) {
	img := buildImage(0)
	binary.BigEndian.PutUint32(img[4:], 7)
	_, out := run(t, img)
	assert.Equal(t, "QEMU QCOW disk image, version 7\n"+
		"  Invalid header (unsupported qcow2 version 7)\n", out)
}

// 虚拟簇0映射到头部副本, 虚拟簇1/2映射回L1/L2表,
// 因此虚拟磁盘本身又是同一个qcow2镜像.
func TestDetectQCOWSelfReferentialImage(t *testing.T) {
	img := make([]byte, 4*512)
	hdr := buildImage(0)[:512]
	copy(img, hdr)
	copy(img[1536:], hdr)
	be := binary.BigEndian
	be.PutUint64(img[512:], 1024|1<<63)
	be.PutUint64(img[1024:], 1536|1<<63)
	be.PutUint64(img[1024+8:], 512|1<<63)
	be.PutUint64(img[1024+2*8:], 1024|1<<63)
	be.PutUint64(img[1024+3*8:], 1536|1<<63)

	log, out := run(t, img)

	var levels []int
	var limit *content.Object
	for _, o := range log.Objects() {
		switch o.Type {
		case "QEMU Copy-On-Write disk image":
			levels = append(levels, o.Level)
		case "Nesting limit":
			limit = o
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, levels)
	require.NotNil(t, limit)
	assert.Equal(t, detect.MaxLayers+1, limit.Level)
	assert.Contains(t, out, "Nested layers exceed 8, contents not analyzed")
}

package fossick

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

func run(t *testing.T, img []byte, detectors ...detect.Detector) (*content.Log, string) {
	t.Helper()
	var out bytes.Buffer
	log := content.NewLog(false)
	a := detect.New(log, detect.NewPrinter(&out), detectors)
	a.AnalyzeSource(source.NewCache(source.NewMemory(img), 4096), 0)
	return log, out.String()
}

func single(t *testing.T, log *content.Log) *content.Object {
	t.Helper()
	require.Equal(t, 1, log.Len())
	return log.Objects()[0]
}

func prop(t *testing.T, o *content.Object, key string) string {
	t.Helper()
	v, ok := o.Property(key)
	require.True(t, ok, "missing property %q on %s", key, o.Type)
	return v
}

var sampleUUID = []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

func buildExt(compat, incompat uint32) []byte {
	img := make([]byte, 64*1024)
	sb := img[1024:]
	le := binary.LittleEndian
	le.PutUint32(sb[0x04:], 64)
	le.PutUint32(sb[0x18:], 0)
	le.PutUint32(sb[0x20:], 8192)
	le.PutUint16(sb[0x38:], 0xEF53)
	le.PutUint32(sb[0x5C:], compat)
	le.PutUint32(sb[0x60:], incompat)
	copy(sb[0x68:], sampleUUID)
	copy(sb[0x78:], "rootfs")
	copy(sb[0x88:], "/mnt/data")
	return img
}

func TestDetectExt(t *testing.T) {
	log, out := run(t, buildExt(0, 0), DetectExt)
	o := single(t, log)
	assert.Equal(t, "Ext2", o.Type)
	assert.Equal(t, "Q283527", o.Wikidata)
	assert.Equal(t, "rootfs", prop(t, o, "volume_name"))
	assert.Equal(t, "12345678-9ABC-DEF0-0123-456789ABCDEF", prop(t, o, "UUID"))
	assert.Equal(t, "/mnt/data", prop(t, o, "last_mounted"))
	assert.Equal(t, "65536", prop(t, o, "volume_size"))
	assert.Equal(t, "1024", prop(t, o, "block_size"))
	assert.Equal(t, "Ext2 file system\n"+
		"  Volume name \"rootfs\"\n"+
		"  UUID 12345678-9ABC-DEF0-0123-456789ABCDEF\n"+
		"  Last mounted at \"/mnt/data\"\n"+
		"  Volume size 64 KiB (65536 bytes, 64 blocks)\n", out)

	log, _ = run(t, buildExt(0x0004, 0), DetectExt)
	assert.Equal(t, "Ext3", single(t, log).Type)

	log, _ = run(t, buildExt(0x0004, 0x0040|0x0200), DetectExt)
	assert.Equal(t, "Ext4", single(t, log).Type)

	log, out = run(t, buildExt(0, 0x0008), DetectExt)
	assert.Equal(t, "Ext3 external journal", single(t, log).Type)
	assert.Contains(t, out, "Ext3 external journal\n")
}

func TestDetectExtRejects(t *testing.T) {
	img := buildExt(0, 0)
	img[1024+0x38] = 0
	log, _ := run(t, img, DetectExt)
	assert.Equal(t, 0, log.Len())

	img = buildExt(0, 0)
	binary.LittleEndian.PutUint32(img[1024+0x18:], 30)
	log, _ = run(t, img, DetectExt)
	assert.Equal(t, 0, log.Len())
}

// buildFAT16 4 KiB簇, 20000扇区的FAT16卷.
func buildFAT16(label string) []byte {
	img := make([]byte, 64*1024)
	le := binary.LittleEndian
	img[0], img[1], img[2] = 0xEB, 0x3C, 0x90
	copy(img[3:], "MSDOS5.0")
	le.PutUint16(img[0x0B:], 512)
	img[0x0D] = 8
	le.PutUint16(img[0x0E:], 1)
	img[0x10] = 2
	le.PutUint16(img[0x11:], 512)
	img[0x15] = 0xF8
	le.PutUint16(img[0x16:], 0)
	le.PutUint32(img[0x20:], 600000)
	le.PutUint16(img[0x16:], 200)
	copy(img[0x2B:], label)
	copy(img[0x36:], "FAT16   ")
	img[510], img[511] = 0x55, 0xAA
	return img
}

func TestDetectFAT(t *testing.T) {
	log, out := run(t, buildFAT16("DATA       "), DetectFAT)
	o := single(t, log)
	// (600000 - 1 - 400 - 32) / 8 = 74945 簇 → FAT32 边界以上.
	assert.Equal(t, "FAT32", o.Type)
	assert.Equal(t, "5", prop(t, o, "hints_score"))
	assert.Equal(t, "4096", prop(t, o, "cluster_size"))
	assert.Equal(t, "512", prop(t, o, "block_size"))
	assert.Contains(t, out, "FAT32 file system (hints score 5 of 5)\n")

	img := buildFAT16("")
	binary.LittleEndian.PutUint32(img[0x20:], 0)
	binary.LittleEndian.PutUint16(img[0x13:], 40000)
	copy(img[0x2B:], "DATA       ")
	log, out = run(t, img, DetectFAT)
	o = single(t, log)
	// (40000 - 433) / 8 = 4945 簇.
	assert.Equal(t, "FAT16", o.Type)
	assert.Equal(t, "Q3141148", o.Wikidata)
	assert.Equal(t, "DATA", prop(t, o, "volume_name"))
	assert.Equal(t, "20254720", prop(t, o, "volume_size"))
	assert.Contains(t, out, "  Volume name \"DATA\"\n")

	binary.LittleEndian.PutUint16(img[0x13:], 2400)
	copy(img[0x2B:], "NO NAME    ")
	log, _ = run(t, img, DetectFAT)
	o = single(t, log)
	assert.Equal(t, "FAT12", o.Type)
	_, hasName := o.Property("volume_name")
	assert.False(t, hasName)
}

func TestDetectFATRejects(t *testing.T) {
	img := buildFAT16("")
	img[510] = 0
	log, _ := run(t, img, DetectFAT)
	assert.Equal(t, 0, log.Len())

	img = buildFAT16("")
	copy(img[3:], "NTFS    ")
	log, _ = run(t, img, DetectFAT)
	assert.Equal(t, 0, log.Len())

	img = buildFAT16("")
	img[0], img[2] = 0, 0
	img[0x10] = 7
	img[0x15] = 0x12
	log, _ = run(t, img, DetectFAT)
	assert.Equal(t, 0, log.Len())
}

func TestDetectExFAT(t *testing.T) {
	img := make([]byte, 4096)
	copy(img[3:], ExFATMagic)
	binary.LittleEndian.PutUint64(img[72:], 2048)
	binary.LittleEndian.PutUint32(img[100:], 0xCAFEBABE)
	img[108], img[109] = 9, 3
	log, out := run(t, img, DetectExFAT, DetectFAT)
	o := single(t, log)
	assert.Equal(t, "ExFAT", o.Type)
	assert.Equal(t, "1048576", prop(t, o, "volume_size"))
	assert.Contains(t, out, "  Serial number CAFEBABE\n")
	assert.Contains(t, out, "  Cluster size 4.0 KiB\n")
}

func buildNTFS() []byte {
	img := make([]byte, 4096)
	le := binary.LittleEndian
	img[0], img[1], img[2] = 0xEB, 0x52, 0x90
	copy(img[3:], "NTFS    ")
	le.PutUint16(img[0x0B:], 512)
	img[0x0D] = 8
	le.PutUint64(img[0x28:], 204800)
	le.PutUint64(img[0x30:], 4)
	img[0x40] = 0xF6
	le.PutUint64(img[0x48:], 0x1122334455667788)
	img[510], img[511] = 0x55, 0xAA
	return img
}

func TestDetectNTFS(t *testing.T) {
	log, out := run(t, buildNTFS(), DetectNTFS)
	o := single(t, log)
	assert.Equal(t, "NTFS", o.Type)
	assert.Equal(t, "104857600", prop(t, o, "volume_size"))
	assert.Equal(t, "4096", prop(t, o, "block_size"))
	assert.Contains(t, out, "  Volume size 100 MiB (104857600 bytes, 204800 sectors)\n")
	assert.Contains(t, out, "  Serial number 1122334455667788\n")

	img := buildNTFS()
	img[0x0D] = 3
	log, out = run(t, img, DetectNTFS)
	o = single(t, log)
	_, hasSize := o.Property("volume_size")
	assert.False(t, hasSize)
	assert.Contains(t, out, "  Invalid boot sector (invalid cluster size: 1536)\n")
}

func TestDetectXFSTruncated(t *testing.T) {
	img := make([]byte, 8192)
	be := binary.BigEndian
	copy(img, "XFSB")
	be.PutUint32(img[0x04:], 4096)
	be.PutUint64(img[0x08:], 262144)
	copy(img[0x20:], sampleUUID)
	be.PutUint32(img[0x54:], 65536)
	be.PutUint32(img[0x58:], 4)
	be.PutUint16(img[0x64:], 0xB4A5)
	be.PutUint16(img[0x66:], 512)
	copy(img[0x6C:], "scratch")

	log, out := run(t, img, DetectXFS)
	o := single(t, log)
	assert.Equal(t, "XFS", o.Type)
	assert.Equal(t, "5", prop(t, o, "version"))
	assert.Equal(t, "scratch", prop(t, o, "volume_name"))
	assert.Equal(t, "4", prop(t, o, "allocation_groups"))
	assert.Equal(t, "1073741824", prop(t, o, "volume_size"))
	_, hasFree := o.Property("free_size")
	assert.False(t, hasFree)
	assert.Contains(t, out, "XFS file system, version 5\n")
	assert.Contains(t, out, "  Volume size 1.0 GiB (1073741824 bytes, 262144 blocks)\n")
}

func TestDetectSwap(t *testing.T) {
	img := make([]byte, 8192)
	copy(img[4096-10:], SwapMagicV2)
	binary.LittleEndian.PutUint32(img[1024:], 1)
	binary.LittleEndian.PutUint32(img[1028:], 255)
	copy(img[1024+12:], sampleUUID)
	copy(img[1024+28:], "swap0")

	log, out := run(t, img, DetectSwap)
	o := single(t, log)
	assert.Equal(t, "Linux swap", o.Type)
	assert.Equal(t, "2", prop(t, o, "version"))
	assert.Equal(t, "1", prop(t, o, "sub_version"))
	assert.Equal(t, "4096", prop(t, o, "page_size"))
	assert.Equal(t, "1044480", prop(t, o, "swap_size"))
	assert.Equal(t, "little", prop(t, o, "endianness"))
	assert.Equal(t, "swap0", prop(t, o, "volume_name"))
	assert.Contains(t, out, "Linux swap, version 2, subversion 1, 4.0 KiB pages, little endian\n")

	img = make([]byte, 16384)
	copy(img[8192-10:], SwapMagicV1)
	log, out = run(t, img, DetectSwap)
	o = single(t, log)
	assert.Equal(t, "1", prop(t, o, "version"))
	assert.Equal(t, "8192", prop(t, o, "page_size"))
	assert.Equal(t, "Linux swap, version 1, 8.0 KiB pages\n", out)
}

func TestDetectSquashFS(t *testing.T) {
	img := make([]byte, 4096)
	copy(img, SquashMagicLE)
	binary.LittleEndian.PutUint32(img[12:], 131072)
	binary.LittleEndian.PutUint16(img[28:], 4)
	binary.LittleEndian.PutUint64(img[40:], 3000)
	log, out := run(t, img, DetectSquashFS, DetectCramFS)
	o := single(t, log)
	assert.Equal(t, "Linux squashfs", o.Type)
	assert.Equal(t, "4", prop(t, o, "version"))
	assert.Equal(t, "0", prop(t, o, "minor_version"))
	assert.Equal(t, "131072", prop(t, o, "block_size"))
	assert.Equal(t, "3000", prop(t, o, "compressed_size"))
	assert.Contains(t, out, "Linux squashfs, version 4.0, little endian\n")
}

func TestDetectCramFS(t *testing.T) {
	img := make([]byte, 4096)
	binary.BigEndian.PutUint32(img, CramFSMagic)
	binary.BigEndian.PutUint32(img[4:], 4096)
	copy(img[16:], CramFSSignature)
	copy(img[48:], "initrd")
	log, out := run(t, img, DetectSquashFS, DetectCramFS)
	o := single(t, log)
	assert.Equal(t, "Linux cramfs", o.Type)
	assert.Equal(t, "big", prop(t, o, "endianness"))
	assert.Equal(t, "initrd", prop(t, o, "volume_name"))
	assert.Equal(t, "4096", prop(t, o, "compressed_size"))
	assert.Equal(t, "Linux cramfs, big endian\n  Volume name \"initrd\"\n  Compressed size 4096 bytes, 4.0 KiB\n", out)
}

func TestDetectSignatureOnlyFilesystems(t *testing.T) {
	btrfs := make([]byte, 0x11000)
	sb := btrfs[BTRFSSuperBlockOff:]
	copy(sb[0x20:], sampleUUID)
	copy(sb[BTRFSMagicOff:], BTRFSMagic)
	binary.LittleEndian.PutUint64(sb[0x70:], 1<<30)
	binary.LittleEndian.PutUint32(sb[0x90:], 4096)
	copy(sb[0x12B:], "pool")

	jfs := make([]byte, 0x9000)
	copy(jfs[JFSSuperBlockOff:], JFSMagic)
	binary.LittleEndian.PutUint32(jfs[JFSSuperBlockOff+4:], 2)
	binary.LittleEndian.PutUint64(jfs[JFSSuperBlockOff+8:], 1000)
	binary.LittleEndian.PutUint32(jfs[JFSSuperBlockOff+24:], 4096)

	zfs := make([]byte, 0x21000)
	binary.BigEndian.PutUint64(zfs[ZFSUberblockOff:], ZFSUberblockMagic)
	binary.BigEndian.PutUint64(zfs[ZFSUberblockOff+8:], 5000)

	apfs := make([]byte, 4096)
	copy(apfs[APFSMagicOff:], APFSMagic)
	binary.LittleEndian.PutUint32(apfs[0x24:], 4096)
	binary.LittleEndian.PutUint64(apfs[0x28:], 256)

	asm := make([]byte, 4096)
	copy(asm[OracleDiskMagicOff:], OracleDiskMagic)
	copy(asm[0x48:], "DATA_0001")

	cases := []struct {
		img  []byte
		typ  Filesystem
		line string
		key  string
		want string
	}{
		{btrfs, BTRFS, "Btrfs file system\n", "volume_name", "pool"},
		{jfs, JFS, "JFS file system, version 2\n", "volume_size", "4096000"},
		{zfs, ZFS, "ZFS file system, version 5000, big endian\n", "endianness", "big"},
		{apfs, APFS, "APFS container\n", "volume_size", "1048576"},
		{asm, OracleASM, "Oracle ASM disk\n", "volume_name", "DATA_0001"},
	}
	for _, c := range cases {
		log, out := run(t, c.img, Detectors()...)
		o := single(t, log)
		assert.Equal(t, c.typ.String(), o.Type)
		assert.Equal(t, c.typ.Wikidata(), o.Wikidata)
		assert.Equal(t, c.want, prop(t, o, c.key))
		assert.Contains(t, out, c.line)
	}
}

func TestDetectorsIgnoreEmptyMedia(t *testing.T) {
	log, out := run(t, make([]byte, 256*1024), Detectors()...)
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, out)
}

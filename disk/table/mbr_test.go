package table

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putEntry(sector []byte, index int, boot, typ byte, start, count uint32) {
	e := sector[0x1BE+16*index:]
	e[0] = boot
	e[4] = typ
	binary.LittleEndian.PutUint32(e[8:], start)
	binary.LittleEndian.PutUint32(e[12:], count)
}

func sign(sector []byte) {
	sector[510], sector[511] = MBRSignature510, MBRSignature511
}

// buildMBR 主分区1(Linux), 主分区2(扩展)中包含两个逻辑分区.
func buildMBR() []byte {
	img := make([]byte, 3<<20)
	mbr := img[:512]
	copy(mbr[0x80:], "GRUB loading")
	binary.LittleEndian.PutUint32(mbr[440:], 0x12345678)
	putEntry(mbr, 0, 0x80, Linux, 2048, 100)
	putEntry(mbr, 1, 0, ExtendCHS, 4096, 1000)
	sign(mbr)

	ebr1 := img[4096*512:]
	putEntry(ebr1, 0, 0, LinuxSwap, 16, 50)
	putEntry(ebr1, 1, 0, ExtendCHS, 200, 100)
	sign(ebr1)

	ebr2 := img[(4096+200)*512:]
	putEntry(ebr2, 0, 0, NTFS, 8, 20)
	sign(ebr2)
	return img
}

func TestDetectMBR(t *testing.T) {
	var out bytes.Buffer
	var seen []source.Section
	probe := func(a *detect.Analyzer, sec source.Section, level int) {
		if level == 1 {
			seen = append(seen, sec)
		}
	}
	a := newAnalyzer(&out, DetectMBR, probe)
	analyze(a, buildMBR())

	maps := objectsOfType(a.Log, "MBR partition table")
	require.Len(t, maps, 1)
	assert.Equal(t, "12345678", prop(t, maps[0], "disk_signature"))
	assert.Equal(t, "GRUB", prop(t, maps[0], "boot_loader"))

	parts := objectsOfType(a.Log, "Partition")
	require.Len(t, parts, 4)
	var numbers, types, starts []string
	for _, p := range parts {
		assert.Equal(t, "mbr", prop(t, p, "kind"))
		numbers = append(numbers, prop(t, p, "number"))
		types = append(types, prop(t, p, "type"))
		starts = append(starts, prop(t, p, "start_sector"))
	}
	assert.Equal(t, []string{"1", "2", "5", "6"}, numbers)
	assert.Equal(t, []string{"0x83", "0x05", "0x82", "0x07"}, types)
	assert.Equal(t, []string{"2048", "4096", "4112", "4304"}, starts)
	assert.Equal(t, "true", prop(t, parts[0], "bootable"))
	assert.Equal(t, "Linux", prop(t, parts[0], "type_name"))
	assert.Equal(t, "51200", prop(t, parts[0], "size"))

	// 扩展分区本身不递归.
	require.Len(t, seen, 3)
	assert.Equal(t, int64(2048*512), seen[0].Pos)
	assert.Equal(t, int64(100*512), seen[0].Size)
	assert.Equal(t, int64(4112*512), seen[1].Pos)
	assert.Equal(t, int64(4304*512), seen[2].Pos)

	assert.Contains(t, out.String(), "DOS/MBR partition map\n")
	assert.Contains(t, out.String(), "  GRUB boot loader code\n")
	assert.Contains(t, out.String(), "  Type 0x83 (Linux), bootable\n")
	assert.Contains(t, out.String(), "Partition 6: 10 KiB (10240 bytes, 20 sectors from 4304)\n")
}

func TestDetectMBRProtective(t *testing.T) {
	img := make([]byte, 64*1024)
	putEntry(img, 0, 0, EFIGPTProtectiveMBR, 1, 127)
	sign(img)
	var out bytes.Buffer
	var recursed bool
	probe := func(a *detect.Analyzer, sec source.Section, level int) {
		recursed = recursed || level > 0
	}
	a := newAnalyzer(&out, DetectMBR, probe)
	analyze(a, img)

	require.Len(t, objectsOfType(a.Log, "Partition"), 1)
	assert.False(t, recursed)
	assert.Contains(t, out.String(), "Protective entry, see GPT partition map")
}

func TestDetectMBRRejectsBootSector(t *testing.T) {
	img := make([]byte, 4096)
	for i := 0x1BE; i < 0x1FE; i++ {
		img[i] = 0x33
	}
	sign(img)
	a := newAnalyzer(nil, DetectMBR)
	analyze(a, img)
	assert.Equal(t, 0, a.Log.Len())

	// 无签名.
	img = buildMBR()
	img[511] = 0
	a = newAnalyzer(nil, DetectMBR)
	analyze(a, img)
	assert.Equal(t, 0, a.Log.Len())
}

func TestDetectMBRBrokenChain(t *testing.T) {
	img := buildMBR()
	img[(4096+200)*512+511] = 0
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectMBR)
	analyze(a, img)

	assert.Len(t, objectsOfType(a.Log, "Partition"), 3)
	assert.Contains(t, out.String(), "Extended partition chain broken at sector 4296\n")
}

func TestDetectMBRChainLoop(t *testing.T) {
	img := buildMBR()
	// 第二个EBR指回第一个EBR.
	putEntry(img[(4096+200)*512:], 1, 0, ExtendCHS, 0, 100)
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectMBR)
	analyze(a, img)

	assert.Len(t, objectsOfType(a.Log, "Partition"), 4)
	assert.Contains(t, out.String(), "Loop in extended partition chain at sector 4096\n")
}

package table

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer(out *bytes.Buffer, detectors ...detect.Detector) *detect.Analyzer {
	var p *detect.Printer
	if out != nil {
		p = detect.NewPrinter(out)
	}
	return detect.New(content.NewLog(false), p, detectors)
}

func analyze(a *detect.Analyzer, img []byte) {
	a.AnalyzeSource(source.NewCache(source.NewMemory(img), 512), 0)
}

func objectsOfType(l *content.Log, typ string) []*content.Object {
	var out []*content.Object
	for _, o := range l.Objects() {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	return out
}

func prop(t *testing.T, o *content.Object, key string) string {
	t.Helper()
	v, ok := o.Property(key)
	require.True(t, ok, "missing property %q on %s", key, o.Type)
	return v
}

type amigaPart struct {
	low, high uint32
	dostype   string
	name      string
}

// buildRDB 构造一个 Surfaces=1, BlocksPerTrack=4 的RDB镜像, 分区块依次位于块1..N.
func buildRDB(rdbBlock int, blockSize uint32, parts []amigaPart) []byte {
	img := make([]byte, 64*1024)
	be := binary.BigEndian
	rdb := img[rdbBlock*512:]
	copy(rdb, "RDSK")
	be.PutUint32(rdb[16:], blockSize)
	if len(parts) == 0 {
		be.PutUint32(rdb[28:], AmigaPartListEnd)
	} else {
		be.PutUint32(rdb[28:], uint32(rdbBlock+1))
	}
	for i, p := range parts {
		blk := img[(rdbBlock+1+i)*512:]
		copy(blk, "PART")
		next := uint32(rdbBlock + 2 + i)
		if i == len(parts)-1 {
			next = AmigaPartListEnd
		}
		be.PutUint32(blk[16:], next)
		blk[36] = byte(len(p.name))
		copy(blk[37:], p.name)
		be.PutUint32(blk[140:], 1)
		be.PutUint32(blk[148:], 4)
		be.PutUint32(blk[164:], p.low)
		be.PutUint32(blk[168:], p.high)
		copy(blk[192:], p.dostype)
	}
	return img
}

func TestAmigaRDBPartitions(t *testing.T) {
	parts := []amigaPart{
		{low: 2, high: 3, dostype: "DOS\x03", name: "DH0"},
		{low: 4, high: 6, dostype: "XYZ\x01"},
		{low: 8, high: 8, dostype: "EXT2", name: "DH2"},
	}
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaRDB)
	analyze(a, buildRDB(0, 512, parts))

	maps := objectsOfType(a.Log, "Amiga rigid disk partition map")
	require.Len(t, maps, 1)
	assert.Equal(t, "Q55357472", maps[0].Wikidata)
	assert.Equal(t, "512", prop(t, maps[0], "sector_size"))
	_, hasSector := maps[0].Property("sector")
	assert.False(t, hasSector)

	got := objectsOfType(a.Log, "Partition")
	require.Len(t, got, len(parts))
	for i, o := range got {
		p := parts[i]
		want := uint64(p.high-p.low+1) * 4 * 512
		assert.Equal(t, "amiga", prop(t, o, "kind"))
		assert.Equal(t, strconv.Itoa(i+1), prop(t, o, "number"))
		assert.Equal(t, strconv.FormatUint(want, 10), prop(t, o, "size"))
		assert.Equal(t, "512", prop(t, o, "sector_size"))
	}
	assert.Equal(t, "DH0", prop(t, got[0], "drive_name"))
	_, hasName := got[1].Property("drive_name")
	assert.False(t, hasName)

	// dostype 对象位于分区的下一层.
	objs := a.Log.Objects()
	ffs := objs[got[0].ID+1]
	assert.Equal(t, "Amiga Fast File System", ffs.Type)
	assert.Equal(t, got[0].ID, ffs.Parent)
	assert.Equal(t, "true", prop(t, ffs, "intl"))
	assert.Equal(t, "false", prop(t, ffs, "dir_cache"))

	unknown := objs[got[1].ID+1]
	assert.Equal(t, "Unknown", unknown.Type)
	assert.Equal(t, 0, unknown.Properties.Len())

	assert.Contains(t, out.String(), "Amiga Rigid Disk partition map\n")
	assert.Contains(t, out.String(), "Partition 1: 4.0 KiB (4096 bytes, 8 sectors from 8)\n")
	assert.Contains(t, out.String(), "  Drive name \"DH0\"\n")
	assert.Contains(t, out.String(), "  Type \"DOS\\3\" (Amiga Fast File System)\n")
	assert.Contains(t, out.String(), "  Type \"XYZ\\1\" (Unknown)\n")
}

func TestAmigaRDBAtLaterSector(t *testing.T) {
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaRDB)
	analyze(a, buildRDB(3, 512, []amigaPart{{low: 10, high: 11, dostype: "SFS\x00"}}))

	maps := objectsOfType(a.Log, "Amiga rigid disk partition map")
	require.Len(t, maps, 1)
	assert.Equal(t, "3", prop(t, maps[0], "sector"))
	assert.Contains(t, out.String(), "Amiga Rigid Disk partition map at sector 3\n")
}

func TestAmigaRDBIllegalBlockSize(t *testing.T) {
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaRDB)
	analyze(a, buildRDB(0, 300, []amigaPart{{low: 2, high: 3, dostype: "DOS\x01"}}))

	assert.Len(t, objectsOfType(a.Log, "Partition"), 0)
	assert.Contains(t, out.String(), "  Illegal block size 300\n")
}

func TestAmigaRDBBrokenChain(t *testing.T) {
	img := buildRDB(0, 512, []amigaPart{{low: 2, high: 3, dostype: "DOS\x01"}, {low: 4, high: 5, dostype: "DOS\x01"}})
	copy(img[2*512:], "JUNK")
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaRDB)
	analyze(a, img)

	got := objectsOfType(a.Log, "Partition")
	require.Len(t, got, 2)
	_, hasSize := got[1].Property("size")
	assert.False(t, hasSize)
	assert.Contains(t, out.String(), "Partition 2: Invalid signature\n")
}

func TestAmigaRDBRecursesIntoPartitions(t *testing.T) {
	var seen []source.Section
	probe := func(a *detect.Analyzer, sec source.Section, level int) {
		if level == 1 {
			seen = append(seen, sec)
		}
	}
	a := newAnalyzer(nil, DetectAmigaRDB, probe)
	analyze(a, buildRDB(0, 512, []amigaPart{{low: 2, high: 3, dostype: "DOS\x01"}}))

	require.Len(t, seen, 1)
	assert.Equal(t, int64(8*512), seen[0].Pos)
	assert.Equal(t, int64(8*512), seen[0].Size)
}

func TestLookupAmigaType(t *testing.T) {
	ofs, ok := LookupAmigaType([]byte("DOS\x00"))
	require.True(t, ok)
	assert.Equal(t, "Amiga Old File System", ofs.Name)
	assert.Equal(t, []AmigaProperty{{"intl", "false"}, {"multiuser", "false"}}, ofs.Properties)

	unknown, ok := LookupAmigaType([]byte("ZZZZ"))
	assert.False(t, ok)
	assert.Equal(t, "Unknown", unknown.Name)
	assert.Empty(t, unknown.Properties)

	other, ok := LookupAmigaType([]byte("NBU\x07"))
	require.True(t, ok)
	assert.Equal(t, []AmigaProperty{{"kind", "other"}}, other.Properties)

	_, ok = LookupAmigaType([]byte("DO"))
	assert.False(t, ok)
}

func TestAmigaTypesOrder(t *testing.T) {
	index := func(c string) int {
		for i, at := range AmigaTypes {
			if string(at.Code[:]) == c {
				return i
			}
		}
		return -1
	}
	assert.Len(t, AmigaTypes, 46)
	assert.Equal(t, 0, index("DOS\x00"))
	assert.Equal(t, 2, index("DOS\x02"))
	assert.Equal(t, 45, index("BFFS"))
}

func TestFormatAmigaType(t *testing.T) {
	assert.Equal(t, `DOS\1`, FormatAmigaType([]byte("DOS\x01")))
	assert.Equal(t, "muF0x1f", FormatAmigaType([]byte("muF\x1f")))
	assert.Equal(t, "BFFS", FormatAmigaType([]byte("BFFS")))
}

func TestDetectAmigaFS(t *testing.T) {
	img := make([]byte, AmigaFloppyDDSize)
	copy(img, "DOS\x01")
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaFS)
	analyze(a, img)

	require.Equal(t, 1, a.Log.Len())
	o := a.Log.Objects()[0]
	assert.Equal(t, "Amiga Fast File System", o.Type)
	assert.Equal(t, "DD", prop(t, o, "floppy_size"))
	assert.Equal(t, "Amiga Fast File System\n  Type \"DOS\\1\"\n  Size matches DD floppy\n", out.String())
}

func TestDetectAmigaFSNonFilesystem(t *testing.T) {
	img := make([]byte, 4096)
	copy(img, "CD01")
	var out bytes.Buffer
	a := newAnalyzer(&out, DetectAmigaFS)
	analyze(a, img)

	require.Equal(t, 1, a.Log.Len())
	assert.Equal(t, "ISO9660", a.Log.Objects()[0].Type)
	assert.Equal(t, "Amiga type code \"CD01\" (ISO9660)\n", out.String())
}

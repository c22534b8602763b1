package table

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

// AmigaRDB Amiga Rigid Disk Block 头部(仅解析用到的字段), 所有多字节字段均为大端序.
type AmigaRDB struct {
	ID            []byte `struc:"[4]byte"` // 0x00, 4, "RDSK".
	SummedLongs   uint32 // 0x04, 4.
	ChkSum        int32  // 0x08, 4.
	HostID        uint32 // 0x0C, 4.
	BlockBytes    uint32 // 0x10, 4, 设备块大小.
	Flags         uint32 // 0x14, 4.
	BadBlockList  uint32 // 0x18, 4.
	PartitionList uint32 // 0x1C, 4, 首个分区块的块号.
}

// AmigaPartition Amiga 分区块(PART), 包含 DosEnvec 环境向量.
type AmigaPartition struct {
	ID             []byte `struc:"[4]byte"` // 0x00, 4, "PART".
	SummedLongs    uint32 // 0x04, 4.
	ChkSum         int32  // 0x08, 4.
	HostID         uint32 // 0x0C, 4.
	Next           uint32 // 0x10, 4, 下一个分区块, 0xffffffff 表示结束.
	Flags          uint32 // 0x14, 4.
	Reserved       []byte `struc:"[8]byte"`  // 0x18, 8.
	DevFlags       uint32 // 0x20, 4.
	DriveName      []byte `struc:"[32]byte"` // 0x24, 32, BCPL字符串.
	Reserved2      []byte `struc:"[60]byte"` // 0x44, 60.
	TableSize      uint32 // 0x80, 4.
	SizeBlock      uint32 // 0x84, 4.
	SecOrg         uint32 // 0x88, 4.
	Surfaces       uint32 // 0x8C, 4, 磁头数.
	SectorPerBlock uint32 // 0x90, 4.
	BlocksPerTrack uint32 // 0x94, 4.
	Reserved3      uint32 // 0x98, 4.
	PreAlloc       uint32 // 0x9C, 4.
	Interleave     uint32 // 0xA0, 4.
	LowCyl         uint32 // 0xA4, 4, 起始柱面(包含).
	HighCyl        uint32 // 0xA8, 4, 结束柱面(包含).
	NumBuffer      uint32 // 0xAC, 4.
	BufMemType     uint32 // 0xB0, 4.
	MaxTransfer    uint32 // 0xB4, 4.
	Mask           uint32 // 0xB8, 4.
	BootPri        int32  // 0xBC, 4.
	DosType        []byte `struc:"[4]byte"` // 0xC0, 4.
}

// CylinderSize 每柱面的块数.
func (p *AmigaPartition) CylinderSize() uint64 {
	return uint64(p.Surfaces) * uint64(p.BlocksPerTrack)
}

// StartBlock 分区起始块号.
func (p *AmigaPartition) StartBlock() uint64 {
	return uint64(p.LowCyl) * p.CylinderSize()
}

// Blocks 分区总块数.
func (p *AmigaPartition) Blocks() uint64 {
	return (uint64(p.HighCyl) + 1 - uint64(p.LowCyl)) * p.CylinderSize()
}

// LookupAmigaType 按4字节类型码查找dostype, 未找到时返回 AmigaUnknownType 与false.
func LookupAmigaType(code []byte) (AmigaType, bool) {
	if len(code) < 4 {
		return AmigaUnknownType, false
	}
	for _, t := range AmigaTypes {
		if bytes.Equal(t.Code[:], code[:4]) {
			return t, true
		}
	}
	return AmigaUnknownType, false
}

// FormatAmigaType 输出类型码的可读形式, 例如 DOS\1 或 muF0x1f.
func FormatAmigaType(code []byte) string {
	var sb strings.Builder
	for i := 0; i < 4 && i < len(code); i++ {
		c := code[i]
		switch {
		case c < 10:
			sb.WriteByte('\\')
			sb.WriteByte('0' + c)
		case c < 32:
			fmt.Fprintf(&sb, "0x%02x", c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func addAmigaTypeObject(a *detect.Analyzer, level int, t AmigaType) {
	a.Log.Add(level, t.Name, t.Wikidata)
	for _, p := range t.Properties {
		a.Log.Set(p.Key, p.Value)
	}
}

// DetectAmigaRDB 检测 Amiga Rigid Disk 分区表并递归分析各分区.
func DetectAmigaRDB(a *detect.Analyzer, sec source.Section, level int) {
	var (
		buf   []byte
		found = -1
	)
	for blk := 0; blk < AmigaRDBScanBlocks; blk++ {
		buf = sec.Buffer(int64(blk)*AmigaBlockSize, AmigaBlockSize)
		if len(buf) < AmigaBlockSize {
			break
		}
		if string(buf[:4]) == AmigaRDBSignature {
			found = blk
			break
		}
	}
	if found < 0 {
		return
	}
	var rdb AmigaRDB
	if err := unpackBE(buf, &rdb); err != nil {
		logger.Debugf("DetectAmigaRDB unpack: %v", err)
		return
	}

	a.Log.Add(level, "Amiga rigid disk partition map", "Q55357472")
	if found == 0 {
		a.Out.Line(level, "Amiga Rigid Disk partition map")
	} else {
		a.Log.SetInt("sector", int64(found))
		a.Out.Line(level, "Amiga Rigid Disk partition map at sector %d", found)
	}

	blockSize := rdb.BlockBytes
	a.Log.SetUint("sector_size", uint64(blockSize))
	if blockSize < AmigaMinimumBlockSize || blockSize&(blockSize-1) != 0 {
		a.Out.Line(level+1, "Illegal block size %d", blockSize)
		return
	} else if blockSize != AmigaBlockSize {
		a.Out.Line(level+1, "Unusual block size %d, not sure this will work...", blockSize)
	}

	ptr := rdb.PartitionList
	seen := make(map[uint32]bool)
	for i := 1; ptr != AmigaPartListEnd; i++ {
		if seen[ptr] {
			a.Out.Line(level, "Partition %d: Loop in partition list", i)
			return
		}
		seen[ptr] = true
		buf = sec.Buffer(int64(ptr)*AmigaBlockSize, AmigaPartBlockSize)
		if len(buf) < AmigaPartBlockSize {
			addPartition(a, level, LabelAmiga, i)
			a.Out.Line(level, "Partition %d: Can't read partition info block", i)
			return
		}
		if string(buf[:4]) != AmigaPartSignature {
			addPartition(a, level, LabelAmiga, i)
			a.Out.Line(level, "Partition %d: Invalid signature", i)
			return
		}
		var part AmigaPartition
		if err := unpackBE(buf, &part); err != nil {
			logger.Debugf("DetectAmigaRDB unpack partition %d: %v", i, err)
			return
		}
		ptr = part.Next

		start, size := part.StartBlock(), part.Blocks()
		addPartition(a, level, LabelAmiga, i)
		a.Log.SetUint("size", size*AmigaBlockSize)
		a.Log.SetInt("sector_size", AmigaBlockSize)
		a.Out.Line(level, "Partition %d: %s", i,
			util.FormatBlockySize(size, AmigaBlockSize, "sectors", fmt.Sprintf(" from %d", start)))

		if name := util.GetPString(part.DriveName); name != "" {
			a.Log.Set("drive_name", name)
			a.Out.Line(level+1, "Drive name \"%s\"", name)
		}

		t, _ := LookupAmigaType(part.DosType)
		addAmigaTypeObject(a, level+1, t)
		a.Out.Line(level+1, "Type \"%s\" (%s)", FormatAmigaType(part.DosType), t.Name)

		if size > 0 && start > 0 {
			a.Recurse(sec, level+1, int64(start*AmigaBlockSize), int64(size*AmigaBlockSize), 0)
		}
	}
}

// DetectAmigaFS 检测位于区段起始处的Amiga文件系统或其他dostype标记.
func DetectAmigaFS(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, AmigaBlockSize)
	if len(buf) < AmigaBlockSize {
		return
	}
	t, ok := LookupAmigaType(buf[:4])
	if !ok {
		return
	}
	addAmigaTypeObject(a, level, t)
	if !t.FileSystem {
		a.Out.Line(level, "Amiga type code \"%s\" (%s)", FormatAmigaType(buf[:4]), t.Name)
		return
	}
	a.Out.Line(level, "%s", t.Name)
	a.Out.Line(level+1, "Type \"%s\"", FormatAmigaType(buf[:4]))
	switch sec.Size {
	case AmigaFloppyDDSize:
		a.Log.Set("floppy_size", "DD")
		a.Out.Line(level+1, "Size matches DD floppy")
	case AmigaFloppyHDSize:
		a.Log.Set("floppy_size", "HD")
		a.Out.Line(level+1, "Size matches HD floppy")
	}
}

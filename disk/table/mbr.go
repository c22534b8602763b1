package table

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
)

// MBR MBR磁盘信息结构.
// 具体见 https://en.wikipedia.org/wiki/Master_boot_record.
// 参考现代MBR结构节(`Structure of a modern standard MBR`)的描述
type MBR struct {
	Offset                   int64                                `struc:"skip"`      // MBR数据在区段内的起始偏移.
	BootLoader               []byte                               `struc:"[446]byte"` // 0x0000, 446.
	FullMainPartitionEntries [MBRPartitionEntryCount]MBRPartition // 0x01BE, 64, 所有多字节字段均为小端序.
	BootSignature            [2]byte                              `struc:"[2]byte"` // 0x01FE, 2.
}

// EBR MBR磁盘扩展BootRecorder信息结构.
// 具体见 https://en.wikipedia.org/wiki/Extended_boot_record.
// 值得说明的是, 有以下几点:
//  1. 每一个逻辑分区，均持有一个EBR, 且EBR都位于它所描述的逻辑分区之前.
//  2. EBR 的 第1个表项表示逻辑分区, StartingLBA 为相对该EBR的偏移.
//  3. EBR 的 第2个表项指向下一个EBR, StartingLBA 为相对扩展分区起始的偏移.
type EBR = MBR

// ParseMBR 解析512字节的MBR/EBR扇区.
func ParseMBR(buf []byte, offset int64) (*MBR, error) {
	if len(buf) < MBRDefaultLBASize {
		return nil, errors.Errorf("short boot record: %d bytes", len(buf))
	}
	mbr := &MBR{Offset: offset}
	if err := unpackLE(buf[:MBRDefaultLBASize], mbr); err != nil {
		return nil, errors.Wrap(err, "unpack boot record")
	}
	if !mbr.isValid() {
		return nil, errors.New("invalid boot signature for mbr")
	}
	return mbr, nil
}

// isValid 若为有效BR,则返回true.
func (mbr *MBR) isValid() bool {
	return mbr.BootSignature[0] == MBRSignature510 && mbr.BootSignature[1] == MBRSignature511
}

// looksLikeTable 判断四个主分区表项是否像一张分区表, 用于排除同样以55AA结尾的引导扇区.
func (mbr *MBR) looksLikeTable() bool {
	used := 0
	for _, p := range mbr.FullMainPartitionEntries {
		if p.BootIndicator != 0 && p.BootIndicator != MBRPartitionBootable {
			return false
		}
		if p.IsEmpty() {
			continue
		}
		if p.StartingLBA == 0 || p.TotalSectors == 0 {
			return false
		}
		used++
	}
	return used > 0
}

// DiskSignature 返回32位磁盘标识.
func (mbr *MBR) DiskSignature() uint32 {
	return binary.LittleEndian.Uint32(mbr.BootLoader[MBRDiskSignatureOffset:])
}

// BootLoaderName 在引导代码区中查找已知引导程序的标记.
func (mbr *MBR) BootLoaderName() string {
	for _, bl := range MBRBootLoaders {
		if util.FindMemory(mbr.BootLoader, []byte(bl.Marker)) >= 0 {
			return bl.Name
		}
	}
	return ""
}

// DetectMBR 检测DOS/MBR分区表, 遍历主分区及扩展分区中的EBR链, 递归分析各分区.
func DetectMBR(a *detect.Analyzer, sec source.Section, level int) {
	mbr, err := ParseMBR(sec.Buffer(0, MBRDefaultLBASize), 0)
	if err != nil || !mbr.looksLikeTable() {
		return
	}

	a.Log.Add(level, "MBR partition table", "Q55357515")
	a.Log.Setf("disk_signature", "%08X", mbr.DiskSignature())
	a.Out.Line(level, "DOS/MBR partition map")
	if name := mbr.BootLoaderName(); name != "" {
		a.Log.Set("boot_loader", name)
		a.Out.Line(level+1, "%s boot loader code", name)
	}

	for i, p := range mbr.FullMainPartitionEntries {
		number := i + 1
		if p.IsEmpty() {
			continue
		}
		reportMBRPartition(a, sec, level, number, p, p.StartingLBA)
		if p.IsExtend() {
			walkEBRChain(a, sec, level, p.StartingLBA)
		}
	}
}

// reportMBRPartition 输出一个分区表项, start 为该分区相对区段的绝对起始扇区.
func reportMBRPartition(a *detect.Analyzer, sec source.Section, level, number int, p MBRPartition, start int64) {
	addPartition(a, level, LabelMBR, number)
	a.Log.Setf("type", "0x%02X", p.PartitionType)
	a.Log.Set("type_name", p.HumanReadablePartitionType())
	a.Log.SetBool("bootable", p.IsBootable())
	a.Log.SetInt("start_sector", start)
	a.Log.SetUint("size", uint64(p.TotalSectors)*MBRDefaultLBASize)

	a.Out.Line(level, "Partition %d: %s", number,
		util.FormatBlockySize(uint64(p.TotalSectors), MBRDefaultLBASize, "sectors", fmt.Sprintf(" from %d", start)))
	if p.IsBootable() {
		a.Out.Line(level+1, "Type 0x%02X (%s), bootable", p.PartitionType, p.HumanReadablePartitionType())
	} else {
		a.Out.Line(level+1, "Type 0x%02X (%s)", p.PartitionType, p.HumanReadablePartitionType())
	}

	switch {
	case p.IsExtend():
	case p.IsProtectiveMBR():
		a.Out.Line(level+1, "Protective entry, see GPT partition map")
	default:
		a.Recurse(sec, level+1, start*MBRDefaultLBASize, p.TotalSectors*MBRDefaultLBASize, 0)
	}
}

// walkEBRChain 遍历扩展分区中的EBR链, 逻辑分区自5开始编号.
func walkEBRChain(a *detect.Analyzer, sec source.Section, level int, extStart int64) {
	ebrSector := extStart
	seen := make(map[int64]bool)
	for number := MBRFirstLogicalNumber; number < MBRFirstLogicalNumber+MBRMaxLogicalPartitions; number++ {
		if seen[ebrSector] {
			a.Out.Line(level, "Loop in extended partition chain at sector %d", ebrSector)
			return
		}
		seen[ebrSector] = true
		ebr, err := ParseMBR(sec.Buffer(ebrSector*MBRDefaultLBASize, MBRDefaultLBASize), ebrSector*MBRDefaultLBASize)
		if err != nil {
			logger.Debugf("walkEBRChain sector %d: %v", ebrSector, err)
			a.Out.Line(level, "Extended partition chain broken at sector %d", ebrSector)
			return
		}
		data := ebr.FullMainPartitionEntries[MBRLogicalPartitionEntryIndex]
		next := ebr.FullMainPartitionEntries[MBREBRPartitionEntryIndex]
		if !data.IsEmpty() {
			data.Index, data.IsLogical = number, true
			reportMBRPartition(a, sec, level, number, data, ebrSector+data.StartingLBA)
		}
		if next.IsEmpty() || !next.IsExtend() {
			return
		}
		ebrSector = extStart + next.StartingLBA
	}
}

// MBRPartition MBR磁盘的主分区表项结构.
type MBRPartition struct {
	// Index 这一索引仅仅代表分区在分区表中的索引位置, 逻辑分区自5开始.
	Index            int              `struc:"skip"`
	IsLogical        bool             `struc:"skip"` // 若为逻辑分区, 此字段为true.
	BootIndicator    byte             // 0x00, 1.
	StartingHead     byte             // 0x01, 1.
	StartingSector   byte             // 0x02, 1, bit0-5表示起始扇区, bit6-7位表示起始柱面的高位.
	StartingCylinder byte             // 0x03, 1, (StartingSector-bit6-7 + StartingCylinder-bit0-8)表示起始柱面号.
	PartitionType    MBRPartitionType `struc:"byte"` // 0x04, 1. 见 https://en.wikipedia.org/wiki/Partition_type.
	EndingHead       byte             // 0x05, 1.
	EndingSector     byte             // 0x06, 1, bit0-5表示结束扇区, bit6-7位表示结束柱面的高位.
	EndingCylinder   byte             // 0x07, 1, (EndingSector-bit6-7 + EndingCylinder-bit0-8)表示起始柱面号.
	StartingLBA      int64            `struc:"uint32,little"` // 0x08, 4, 起始LBA(包含).
	TotalSectors     int64            `struc:"uint32,little"` // 0x0c, 4, 总扇区数.
}

// HumanReadablePartitionType 返回该分区用户可读的分区类型.
func (partition MBRPartition) HumanReadablePartitionType() string {
	return MBRTypeName(partition.PartitionType)
}

// MBRTypeName 返回MBR分区类型的名称, 未知类型返回"Unknown".
func MBRTypeName(t MBRPartitionType) string {
	v, ok := MBRPartitionTypeDesc[t]
	if !ok {
		return "Unknown"
	}
	return v
}

// IsEmpty 若为空分区, 则返回true.
func (partition MBRPartition) IsEmpty() bool {
	return partition.PartitionType == Empty
}

// IsBootable 若为可启动分区，则返回true.
func (partition MBRPartition) IsBootable() bool {
	return partition.BootIndicator == MBRPartitionBootable
}

// EndSector 分区的结束扇区(包含)
func (partition MBRPartition) EndSector() int64 {
	return partition.StartingLBA + partition.TotalSectors - 1
}

// IsExtend 若为扩展分区, 则返回true.
func (partition MBRPartition) IsExtend() bool {
	return bytes.IndexByte(MBRExtendPartTypes, partition.PartitionType) >= 0
}

// IsProtectiveMBR 若为GPT磁盘的保护性MBR分区, 则返回true.
func (partition MBRPartition) IsProtectiveMBR() bool {
	return partition.PartitionType == EFIGPTProtectiveMBR
}

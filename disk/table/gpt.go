package table

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf16"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"
)

// GPTHeader 位于GPT磁盘的LBA1数据(若为Backup GPT，则是LBA-1).
// 具体见：https://en.wikipedia.org/wiki/GUID_Partition_Table.
type GPTHeader struct {
	Signature                 []byte `struc:"[8]byte"`       // 0x00, 8, EFI签名 ("EFI PART").
	Revision                  uint32 `struc:"uint32,little"` // 0x08, 4, little, 版本号信息.
	HeaderSize                uint32 `struc:"uint32,little"` // 0x0C, 4, little, 主分区表头数据字节大小.
	HeaderCRC32               uint32 `struc:"uint32,little"` // 0x10, 4, little, 主分区表头数据0x00-0x5B之间数据的校验和.
	Reserved                  []byte `struc:"[4]byte"`       // 0x14, 4, 保留.
	CurrentLBA                int64  `struc:"int64,little"`  // 0x18, 8, little, 当前分区表头数据所处的LBA.
	BackupLBA                 int64  `struc:"int64,little"`  // 0x20, 8, little, 备份分区表头数据所处的LBA.
	FirstUsableLBA            int64  `struc:"int64,little"`  // 0x28, 8, little, 首个可用于分区的LBA.
	LastUsableLBA             int64  `struc:"int64,little"`  // 0x30, 8, little, 最后一个可用于分区的LBA.
	GUID                      []byte `struc:"[16]byte"`      // 0x38, 16, mixed endian, 磁盘GUID.
	StartingLBAForPartEntries int64  `struc:"int64,little"`  // 0x48, 8, little, 分区表项起始LBA（通常为2）.
	NumberOfPartEntriesArray  int    `struc:"int32,little"`  // 0x50, 4, little, 分区表项数组的成员个数.
	PartEntrySize             int    `struc:"int32,little"`  // 0x54, 4, little, 一个分区表项数据的字节长度.
	PartEntriesArrayCRC32     uint32 `struc:"uint32,little"` // 0x58, 4, little, 分区表项数组数据的校验和.
}

func (gh *GPTHeader) GUIDInMixedEndian() string {
	return util.FormatGUID(gh.GUID)
}

// GPTPartitionEntry GPT磁盘的一项分区表项数据.
type GPTPartitionEntry struct {
	Index         int      `struc:"skip"`              // 分区位置索引.
	PartTypeGUID  []byte   `struc:"[16]byte"`          // 0x00, 16, mixed endian, 分区类型GUID.
	UniqGUID      []byte   `struc:"[16]byte"`          // 0x10, 16, mixed endian, 唯一编码GUID.
	FirstLBAIndex int64    `struc:"int64,little"`      // 0x20, 8, little endian, 起始LBA(包含).
	LastLBAIndex  int64    `struc:"int64,little"`      // 0x28, 8, little endian, 结束LBA(包含).
	AttrFlags     []byte   `struc:"[8]byte"`           // 0x30, 8, 属性, 例如位 60 表示只读.
	PartitionName []uint16 `struc:"[36]uint16,little"` // 0x38, 72, 分区名称, 36 个 UTF-16LE 代码单元.
}

func (gpe *GPTPartitionEntry) PartTypeGUIDInMixedEndian() string {
	return util.FormatGUID(gpe.PartTypeGUID)
}

func (gpe *GPTPartitionEntry) UniqGUIDInMixedEndian() string {
	return util.FormatGUID(gpe.UniqGUID)
}

func (gpe *GPTPartitionEntry) DecodedPartitionName() string {
	s := string(utf16.Decode(gpe.PartitionName))
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// IsEmpty 若是空分区, 则返回True.
func (gpe *GPTPartitionEntry) IsEmpty() bool {
	return gpe.PartTypeGUIDInMixedEndian() == BlankEmptyPart
}

// Sectors 分区总扇区数.
func (gpe *GPTPartitionEntry) Sectors() int64 {
	if gpe.LastLBAIndex < gpe.FirstLBAIndex {
		return 0
	}
	return gpe.LastLBAIndex - gpe.FirstLBAIndex + 1
}

// Role 返回分区的用途分类, 无法归类时返回空串.
func (gpe *GPTPartitionEntry) Role() string {
	t := gpe.PartTypeGUIDInMixedEndian()
	switch {
	case funk.InStrings(GPTBootTypes, t):
		return "boot"
	case funk.InStrings(GPTSwapTypes, t):
		return "swap"
	case funk.InStrings(GPTLVMTypes, t):
		return "lvm"
	case funk.InStrings(GPTRecoveryTypes, t):
		return "recovery"
	case funk.InStrings(GPTReservedTypes, t):
		return "reserved"
	}
	return ""
}

// PartTypeDesc 分区类型描述.
func (gpe *GPTPartitionEntry) PartTypeDesc() string {
	v, ok := GPTPartitionTypeDesc[gpe.PartTypeGUIDInMixedEndian()]
	if !ok {
		v = "Unknown"
	}
	return v
}

// ParseGPTHeader 解析GPT头扇区并校验签名及头部校验和.
// 返回的bool表示校验和是否正确, 校验和错误不视为解析失败.
func ParseGPTHeader(buf []byte) (*GPTHeader, bool, error) {
	if len(buf) < GPTHeaderMinSize || string(buf[:8]) != GPTSignature {
		return nil, false, errors.New("missing EFI PART signature")
	}
	h := new(GPTHeader)
	if err := unpackLE(buf[:GPTHeaderMinSize], h); err != nil {
		return nil, false, errors.Wrap(err, "unpack gpt header")
	}
	crcOK := false
	if size := int(h.HeaderSize); size >= GPTHeaderMinSize && size <= len(buf) {
		tmp := make([]byte, size)
		copy(tmp, buf[:size])
		binary.LittleEndian.PutUint32(tmp[0x10:], 0)
		crcOK = crc32.ChecksumIEEE(tmp) == h.HeaderCRC32
	}
	return h, crcOK, nil
}

// DetectGPT 检测GUID分区表. 依次尝试512与4096字节扇区.
func DetectGPT(a *detect.Analyzer, sec source.Section, level int) {
	var (
		header     *GPTHeader
		crcOK      bool
		sectorSize int64
	)
	for _, ss := range GPTSectorSizes {
		h, ok, err := ParseGPTHeader(sec.Buffer(ss, ss))
		if err == nil {
			header, crcOK, sectorSize = h, ok, ss
			break
		}
	}
	if header == nil {
		return
	}

	entries := header.NumberOfPartEntriesArray
	a.Log.Add(level, "GPT partition map", "Q603889")
	a.Log.SetInt("entries", int64(entries))
	a.Log.Set("disk_GUID", header.GUIDInMixedEndian())
	a.Log.SetInt("sector_size", sectorSize)
	a.Log.SetBool("header_checksum_valid", crcOK)
	a.Out.Line(level, "GPT partition map, %d entries", entries)
	a.Out.Line(level+1, "Disk size %s", util.FormatBlockySize(uint64(header.LastUsableLBA+1), uint32(sectorSize), "sectors", ""))
	a.Out.Line(level+1, "Disk GUID %s", header.GUIDInMixedEndian())
	if !crcOK {
		a.Out.Line(level+1, "Header checksum mismatch")
	}

	entrySize := int64(header.PartEntrySize)
	if entrySize < GPTPartitionEntryMinSize || entries <= 0 || entries > GPTMaxPartitionEntries {
		a.Out.Line(level+1, "Illegal partition entry layout (%d entries of %d bytes)", entries, entrySize)
		return
	}
	base := header.StartingLBAForPartEntries * sectorSize
	for i := 0; i < entries; i++ {
		buf := sec.Buffer(base+int64(i)*entrySize, GPTPartitionEntryMinSize)
		if len(buf) < GPTPartitionEntryMinSize {
			a.Out.Line(level, "Partition %d: Can't read partition entry", i+1)
			return
		}
		gpe := GPTPartitionEntry{Index: i + 1}
		if err := unpackLE(buf, &gpe); err != nil {
			logger.Debugf("DetectGPT unpack entry %d: %v", i+1, err)
			return
		}
		if gpe.IsEmpty() {
			continue
		}
		reportGPTPartition(a, sec, level, sectorSize, &gpe)
	}
}

func reportGPTPartition(a *detect.Analyzer, sec source.Section, level int, sectorSize int64, gpe *GPTPartitionEntry) {
	sectors := gpe.Sectors()
	addPartition(a, level, LabelGPT, gpe.Index)
	a.Log.Set("type_GUID", gpe.PartTypeGUIDInMixedEndian())
	a.Log.Set("type_name", gpe.PartTypeDesc())
	if name := gpe.DecodedPartitionName(); name != "" {
		a.Log.Set("name", name)
	}
	if role := gpe.Role(); role != "" {
		a.Log.Set("role", role)
	}
	a.Log.SetUint("size", uint64(sectors*sectorSize))
	a.Log.SetInt("start_sector", gpe.FirstLBAIndex)
	a.Log.Set("partition_GUID", gpe.UniqGUIDInMixedEndian())

	a.Out.Line(level, "Partition %d: %s", gpe.Index,
		util.FormatBlockySize(uint64(sectors), uint32(sectorSize), "sectors", fmt.Sprintf(" from %d", gpe.FirstLBAIndex)))
	a.Out.Line(level+1, "Type %s (GUID %s)", gpe.PartTypeDesc(), gpe.PartTypeGUIDInMixedEndian())
	if name := gpe.DecodedPartitionName(); name != "" {
		a.Out.Line(level+1, "Partition Name \"%s\"", name)
	}
	a.Out.Line(level+1, "Partition GUID %s", gpe.UniqGUIDInMixedEndian())

	if sectors > 0 && gpe.FirstLBAIndex > 0 {
		a.Recurse(sec, level+1, gpe.FirstLBAIndex*sectorSize, sectors*sectorSize, 0)
	}
}

package ext

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/kisun-bit/disktype/util"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	SuperBlockStartOff = 1024
	SuperBlockSize     = 1024
	Magic              = 0xEF53
	MaxLogBlockSize    = 6
)

// 特性标志, 见 https://ext4.wiki.kernel.org/index.php/Ext4_Disk_Layout.
const (
	CompatHasJournal = 0x0004

	IncompatJournalDev = 0x0008
	IncompatExtents    = 0x0040
	Incompat64Bit      = 0x0080
	IncompatFlexBG     = 0x0200

	ROCompatHugeFile   = 0x0008
	ROCompatGDTCsum    = 0x0010
	ROCompatDirNlink   = 0x0020
	ROCompatExtraIsize = 0x0040

	// FlagTestFS 表示使用开发中的ext4(ext4dev).
	FlagTestFS = 0x0004
)

// Version EXT文件系统的代际.
type Version int

const (
	Ext2 Version = iota + 2
	Ext3
	Ext4
	// Journal ext3外部日志设备.
	Journal
)

// SuperBlock EXT2/3/4 超级块中用到的字段, 所有多字节字段均为小端序.
type SuperBlock struct {
	InodesCount     uint32 `struc:"uint32,little"` // 0x00.
	BlocksCountLo   uint32 `struc:"uint32,little"` // 0x04.
	Pad0            []byte `struc:"[16]byte"`      // 0x08.
	LogBlockSize    uint32 `struc:"uint32,little"` // 0x18, 块大小为 2^(10+LogBlockSize).
	Pad1            []byte `struc:"[4]byte"`       // 0x1C.
	BlocksPerGroup  uint32 `struc:"uint32,little"` // 0x20.
	Pad2            []byte `struc:"[20]byte"`      // 0x24.
	Magic           uint16 `struc:"uint16,little"` // 0x38.
	Pad3            []byte `struc:"[18]byte"`      // 0x3A.
	RevLevel        uint32 `struc:"uint32,little"` // 0x4C.
	Pad4            []byte `struc:"[12]byte"`      // 0x50.
	FeatureCompat   uint32 `struc:"uint32,little"` // 0x5C.
	FeatureIncompat uint32 `struc:"uint32,little"` // 0x60.
	FeatureROCompat uint32 `struc:"uint32,little"` // 0x64.
	UUID            []byte `struc:"[16]byte"`      // 0x68.
	VolumeName      []byte `struc:"[16]byte"`      // 0x78.
	LastMounted     []byte `struc:"[64]byte"`      // 0x88.
	Pad5            []byte `struc:"[54]byte"`      // 0xC8.
	DescSize        uint16 `struc:"uint16,little"` // 0xFE, 块组描述符大小.
	Pad6            []byte `struc:"[80]byte"`      // 0x100.
	BlocksCountHi   uint32 `struc:"uint32,little"` // 0x150, 仅在启用64bit特性时有效.
	Pad7            []byte `struc:"[12]byte"`      // 0x154.
	Flags           uint32 `struc:"uint32,little"` // 0x160.
}

// ParseSuperBlock 解析位于偏移1024处的超级块.
func ParseSuperBlock(buf []byte) (*SuperBlock, error) {
	if len(buf) < SuperBlockSize {
		return nil, errors.Errorf("invalid size(%v) of super block", len(buf))
	}
	if binary.LittleEndian.Uint16(buf[0x38:]) != Magic {
		return nil, errors.New("missing ext2/3/4 magic")
	}
	sb := new(SuperBlock)
	if err := struc.UnpackWithOptions(bytes.NewReader(buf[:SuperBlockSize]), sb, &struc.Options{Order: binary.LittleEndian}); err != nil {
		return nil, errors.Wrap(err, "unpack super block")
	}
	if sb.LogBlockSize > MaxLogBlockSize {
		return nil, errors.Errorf("invalid block size exponent %d", sb.LogBlockSize)
	}
	return sb, nil
}

// BlockSize 块大小(字节).
func (sb *SuperBlock) BlockSize() int64 {
	return int64(math.Pow(2, float64(10+sb.LogBlockSize)))
}

// Is64Bit 若启用了64bit特性, 则返回true.
func (sb *SuperBlock) Is64Bit() bool {
	return sb.FeatureIncompat&Incompat64Bit != 0
}

// BlocksCount 总块数.
func (sb *SuperBlock) BlocksCount() int64 {
	n := int64(sb.BlocksCountLo)
	if sb.Is64Bit() {
		n |= int64(sb.BlocksCountHi) << 32
	}
	return n
}

// VolumeSize 卷大小(字节).
func (sb *SuperBlock) VolumeSize() int64 {
	return sb.BlocksCount() * sb.BlockSize()
}

// BlockGroups 块组数.
// 向上取整, 因为resize2fs之后可能出现每组块数大于总块数的情况.
func (sb *SuperBlock) BlockGroups() int64 {
	if sb.BlocksPerGroup == 0 {
		return 0
	}
	return int64(math.Ceil(float64(sb.BlocksCount()) / float64(sb.BlocksPerGroup)))
}

// GroupDescriptorSize 块组描述符大小.
// 未启用64bit特性时块组描述符只有32字节.
func (sb *SuperBlock) GroupDescriptorSize() int {
	if sb.Is64Bit() && sb.DescSize >= 64 {
		return int(sb.DescSize)
	}
	return 32
}

// Version 根据特性标志推断文件系统代际.
// superblock中没有可靠区分三者的字段, 这里采用与blkid相同的特性判断.
func (sb *SuperBlock) Version() Version {
	switch {
	case sb.FeatureIncompat&IncompatJournalDev != 0:
		return Journal
	case sb.FeatureIncompat&(IncompatExtents|Incompat64Bit|IncompatFlexBG) != 0,
		sb.FeatureROCompat&(ROCompatHugeFile|ROCompatGDTCsum|ROCompatDirNlink|ROCompatExtraIsize) != 0:
		return Ext4
	case sb.FeatureCompat&CompatHasJournal != 0:
		return Ext3
	}
	return Ext2
}

// IsDevelopment 若为开发版本的ext4(ext4dev), 则返回true.
func (sb *SuperBlock) IsDevelopment() bool {
	return sb.Flags&FlagTestFS != 0
}

func (sb *SuperBlock) UUIDString() string {
	return util.FormatUUID(sb.UUID)
}

func (sb *SuperBlock) VolumeNameString() string {
	return util.GetString(sb.VolumeName, len(sb.VolumeName))
}

func (sb *SuperBlock) LastMountedString() string {
	return util.GetString(sb.LastMounted, len(sb.LastMounted))
}

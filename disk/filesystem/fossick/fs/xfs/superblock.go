package xfs

import (
	"bytes"
	"encoding/binary"

	"github.com/kisun-bit/disktype/util"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	Magic          = "XFSB"
	SuperBlockSize = 512
	VersionMask    = 0x000F
)

// SuperBlock XFS主超级块(AG0起始处)中用到的字段, 所有多字节字段均为大端序.
// 具体见 https://github.com/torvalds/linux/blob/master/fs/xfs/libxfs/xfs_format.h.
type SuperBlock struct {
	Magic      []byte `struc:"[4]byte"`    // 0x00, "XFSB".
	BlockSize  uint32 `struc:"uint32,big"` // 0x04.
	Dblocks    uint64 `struc:"uint64,big"` // 0x08, 数据区总块数.
	Rblocks    uint64 `struc:"uint64,big"` // 0x10.
	Rextents   uint64 `struc:"uint64,big"` // 0x18.
	UUID       []byte `struc:"[16]byte"`   // 0x20.
	Pad0       []byte `struc:"[32]byte"`   // 0x30, logstart/rootino/rbmino/rsumino.
	Rextsize   uint32 `struc:"uint32,big"` // 0x50.
	Agblocks   uint32 `struc:"uint32,big"` // 0x54, 每个AG的块数.
	Agcount    uint32 `struc:"uint32,big"` // 0x58, AG个数.
	Rbmblocks  uint32 `struc:"uint32,big"` // 0x5C.
	Logblocks  uint32 `struc:"uint32,big"` // 0x60.
	Versionnum uint16 `struc:"uint16,big"` // 0x64, 低4位为版本号.
	Sectsize   uint16 `struc:"uint16,big"` // 0x66.
	Inodesize  uint16 `struc:"uint16,big"` // 0x68.
	Inopblock  uint16 `struc:"uint16,big"` // 0x6A.
	Fname      []byte `struc:"[12]byte"`   // 0x6C, 卷名.
}

// ParseSuperBlock 解析XFS主超级块.
func ParseSuperBlock(buf []byte) (*SuperBlock, error) {
	if len(buf) < SuperBlockSize || string(buf[:4]) != Magic {
		return nil, errors.New("missing XFSB magic")
	}
	sb := new(SuperBlock)
	if err := struc.UnpackWithOptions(bytes.NewReader(buf[:SuperBlockSize]), sb, &struc.Options{Order: binary.BigEndian}); err != nil {
		return nil, errors.Wrap(err, "unpack xfs super block")
	}
	return sb, nil
}

// Version 超级块版本号(4或5).
func (sb *SuperBlock) Version() int {
	return int(sb.Versionnum & VersionMask)
}

// VolumeSize 数据区大小(字节).
func (sb *SuperBlock) VolumeSize() uint64 {
	return sb.Dblocks * uint64(sb.BlockSize)
}

func (sb *SuperBlock) VolumeName() string {
	return util.GetString(sb.Fname, len(sb.Fname))
}

func (sb *SuperBlock) UUIDString() string {
	return util.FormatUUID(sb.UUID)
}

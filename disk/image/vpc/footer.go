package vpc

import (
	"bytes"
	"encoding/binary"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	FooterSize        = 512
	FooterCookie      = "conectix"
	DynamicCookie     = "cxsparse"
	DynamicHeaderSize = 1024
	SectorSize        = 512

	DiskTypeFixed        = 2
	DiskTypeDynamic      = 3
	DiskTypeDifferencing = 4

	batUnused = 0xFFFFFFFF
)

// Footer 镜像尾部(动态镜像在头部另有一份副本), 所有字段均为大端序.
type Footer struct {
	Cookie             []byte `struc:"[8]byte"`  // 0x00, "conectix".
	Features           uint32 `struc:"uint32"`   // 0x08.
	FormatVersion      uint32 `struc:"uint32"`   // 0x0C.
	DataOffset         uint64 `struc:"uint64"`   // 0x10, 动态头部的偏移, 固定镜像为全1.
	TimeStamp          uint32 `struc:"uint32"`   // 0x18, 自2000-01-01起的秒数.
	CreatorApplication []byte `struc:"[4]byte"`  // 0x1C.
	CreatorVersion     uint32 `struc:"uint32"`   // 0x20.
	CreatorHostOS      []byte `struc:"[4]byte"`  // 0x24.
	OriginalSize       uint64 `struc:"uint64"`   // 0x28.
	CurrentSize        uint64 `struc:"uint64"`   // 0x30.
	Cylinders          uint16 `struc:"uint16"`   // 0x38.
	Heads              uint8  `struc:"uint8"`    // 0x3A.
	SectorsPerTrack    uint8  `struc:"uint8"`    // 0x3B.
	DiskType           uint32 `struc:"uint32"`   // 0x3C.
	Checksum           uint32 `struc:"uint32"`   // 0x40.
	UniqueID           []byte `struc:"[16]byte"` // 0x44.
	SavedState         uint8  `struc:"uint8"`    // 0x54.
}

// DynamicHeader 动态及差分镜像的稀疏头部.
type DynamicHeader struct {
	Cookie          []byte `struc:"[8]byte"`   // 0x00, "cxsparse".
	DataOffset      uint64 `struc:"uint64"`    // 0x08.
	TableOffset     uint64 `struc:"uint64"`    // 0x10, BAT的偏移.
	HeaderVersion   uint32 `struc:"uint32"`    // 0x18.
	MaxTableEntries uint32 `struc:"uint32"`    // 0x1C.
	BlockSize       uint32 `struc:"uint32"`    // 0x20.
	Checksum        uint32 `struc:"uint32"`    // 0x24.
	ParentUniqueID  []byte `struc:"[16]byte"`  // 0x28.
	ParentTimeStamp uint32 `struc:"uint32"`    // 0x38.
	Reserved        uint32 `struc:"uint32"`    // 0x3C.
	ParentName      []byte `struc:"[512]byte"` // 0x40, UTF-16BE.
}

func unpack(b []byte, v interface{}) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, &struc.Options{Order: binary.BigEndian})
}

// ParseFooter 解析镜像尾部.
func ParseFooter(buf []byte) (*Footer, error) {
	if len(buf) < FooterSize || string(buf[:8]) != FooterCookie {
		return nil, errors.New("missing conectix cookie")
	}
	f := new(Footer)
	if err := unpack(buf[:FooterSize], f); err != nil {
		return nil, errors.Wrap(err, "unpack vpc footer")
	}
	return f, nil
}

// ParseDynamicHeader 解析稀疏头部.
func ParseDynamicHeader(buf []byte) (*DynamicHeader, error) {
	if len(buf) < DynamicHeaderSize || string(buf[:8]) != DynamicCookie {
		return nil, errors.New("missing cxsparse cookie")
	}
	h := new(DynamicHeader)
	if err := unpack(buf[:DynamicHeaderSize], h); err != nil {
		return nil, errors.Wrap(err, "unpack vpc dynamic header")
	}
	if h.BlockSize == 0 || h.BlockSize%SectorSize != 0 {
		return nil, errors.Errorf("invalid block size %d", h.BlockSize)
	}
	return h, nil
}

// Checksum 计算尾部校验和: 除校验和字段外所有字节之和的反码.
func Checksum(buf []byte) uint32 {
	var sum uint32
	for i, b := range buf[:FooterSize] {
		if i >= 0x40 && i < 0x44 {
			continue
		}
		sum += uint32(b)
	}
	return ^sum
}

// KindName 磁盘类型的名称.
func KindName(t uint32) string {
	switch t {
	case DiskTypeFixed:
		return "fixed"
	case DiskTypeDynamic:
		return "dynamic"
	case DiskTypeDifferencing:
		return "differencing"
	}
	return "unknown"
}

// BitmapSize 每个数据块前的扇区位图占用的字节数(按扇区对齐).
func (h *DynamicHeader) BitmapSize() int64 {
	bytes_ := int64(h.BlockSize/SectorSize+7) / 8
	return (bytes_ + SectorSize - 1) / SectorSize * SectorSize
}

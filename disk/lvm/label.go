package lvm

import (
	"bytes"
	"encoding/binary"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	SectorSize      = 512
	LabelScanSector = 4 // 标签只可能出现在前4个扇区.
	LabelID         = "LABELONE"
	LabelType       = "LVM2 001"
	MetadataMagic   = " LVM2 x[5A%r0N*>"
	UUIDLen         = 32
)

// LabelHeader 标签扇区头部.
type LabelHeader struct {
	ID       []byte `struc:"[8]byte"`       // 0x00, "LABELONE".
	SectorXL uint64 `struc:"uint64,little"` // 0x08, 标签所在扇区号.
	CRCXL    uint32 `struc:"uint32,little"` // 0x10.
	OffsetXL uint32 `struc:"uint32,little"` // 0x14, pv_header相对标签扇区的偏移.
	Type     []byte `struc:"[8]byte"`       // 0x18, "LVM2 001".
}

// DiskLocation 数据区或元数据区的位置描述, 以全零项结束.
type DiskLocation struct {
	Offset uint64 `struc:"uint64,little"`
	Size   uint64 `struc:"uint64,little"`
}

// MetadataHeader 元数据区头部.
type MetadataHeader struct {
	Checksum []byte `struc:"[4]byte"`
	Magic    []byte `struc:"[16]byte"`
	Version  uint32 `struc:"uint32,little"`
	Start    uint64 `struc:"uint64,little"`
	Size     uint64 `struc:"uint64,little"`
}

func unpack(b []byte, v interface{}) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, &struc.Options{Order: binary.LittleEndian})
}

// ParseLabelHeader 解析单个扇区中的标签头部, 标识或类型不符时返回错误.
func ParseLabelHeader(sector []byte) (*LabelHeader, error) {
	if len(sector) < SectorSize {
		return nil, errors.Errorf("short label sector: %d bytes", len(sector))
	}
	if string(sector[:8]) != LabelID {
		return nil, errors.New("missing LABELONE id")
	}
	h := new(LabelHeader)
	if err := unpack(sector, h); err != nil {
		return nil, errors.Wrap(err, "unpack label header")
	}
	if string(h.Type) != LabelType {
		return nil, errors.Errorf("unsupported label type %q", h.Type)
	}
	if h.OffsetXL < 32 || h.OffsetXL > SectorSize-UUIDLen-8 {
		return nil, errors.Errorf("pv header offset %d out of label sector", h.OffsetXL)
	}
	return h, nil
}

// parseLocations 读取以全零项结束的位置列表, 返回列表及其后剩余的字节.
func parseLocations(b []byte) ([]DiskLocation, []byte) {
	var locs []DiskLocation
	for len(b) >= 16 {
		var loc DiskLocation
		if err := unpack(b[:16], &loc); err != nil {
			break
		}
		b = b[16:]
		if loc.Offset == 0 && loc.Size == 0 {
			break
		}
		locs = append(locs, loc)
	}
	return locs, b
}

// ParseMetadataHeader 解析元数据区头部, 魔数不符时返回错误.
func ParseMetadataHeader(b []byte) (*MetadataHeader, error) {
	if len(b) < 40 {
		return nil, errors.Errorf("short metadata header: %d bytes", len(b))
	}
	h := new(MetadataHeader)
	if err := unpack(b[:40], h); err != nil {
		return nil, errors.Wrap(err, "unpack metadata header")
	}
	if string(h.Magic) != MetadataMagic {
		return nil, errors.New("bad metadata area magic")
	}
	return h, nil
}

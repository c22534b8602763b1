package lvm

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/util"
	"github.com/pkg/errors"
)

// PhysicalVolume 从标签扇区解析出的物理卷信息.
type PhysicalVolume struct {
	LabelSector   int64
	UUID          string
	Size          uint64
	DataAreas     []DiskLocation
	MetadataAreas []DiskLocation
}

// ParsePhysicalVolume 解析位于第labelSector个扇区的标签及其后的pv_header.
func ParsePhysicalVolume(sector []byte, labelSector int64) (*PhysicalVolume, error) {
	h, err := ParseLabelHeader(sector)
	if err != nil {
		return nil, err
	}
	if h.SectorXL != uint64(labelSector) {
		return nil, errors.Errorf("label claims sector %d, found at %d", h.SectorXL, labelSector)
	}
	body := sector[h.OffsetXL:SectorSize]
	pv := &PhysicalVolume{
		LabelSector: labelSector,
		UUID:        util.FormatUUIDLVM(body[:UUIDLen]),
		Size:        binary.LittleEndian.Uint64(body[UUIDLen:]),
	}
	pv.DataAreas, body = parseLocations(body[UUIDLen+8:])
	pv.MetadataAreas, _ = parseLocations(body)
	return pv, nil
}

// HasMetadata 若物理卷带有元数据区, 则返回true.
func (pv *PhysicalVolume) HasMetadata() bool {
	return len(pv.MetadataAreas) > 0
}

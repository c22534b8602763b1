package optical

import (
	"bytes"
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/lunixbochs/struc"
)

const (
	SectorSize      = 2048 // 光盘逻辑扇区大小.
	DescriptorStart = 16   // 主卷描述符所在扇区.

	DescriptorBoot         = 0
	DescriptorPrimary      = 1
	DescriptorSupplement   = 2
	DescriptorPartition    = 3
	DescriptorTerminator   = 255
	ElToritoSpecification  = "EL TORITO SPECIFICATION"
	ElToritoCatalogPointer = 0x47
)

var isoMagic = []byte("CD001")

// PrimaryVolumeDescriptor ISO9660主卷描述符中用到的字段.
// 具体见 ECMA-119 8.4.
type PrimaryVolumeDescriptor struct {
	Type          uint8  `struc:"uint8"`         // 0x000.
	Magic         []byte `struc:"[5]byte"`       // 0x001, "CD001".
	Version       uint8  `struc:"uint8"`         // 0x006.
	Pad0          []byte `struc:"[33]byte"`      // 0x007, 系统标识等.
	VolumeID      []byte `struc:"[32]byte"`      // 0x028, 卷名, 空格填充.
	Pad1          []byte `struc:"[8]byte"`       // 0x048.
	VolumeBlocks  uint32 `struc:"uint32,little"` // 0x050, 双字节序字段的小端部分.
	Pad2          []byte `struc:"[44]byte"`      // 0x054.
	BlockSize     uint16 `struc:"uint16,little"` // 0x080.
	Pad3          []byte `struc:"[188]byte"`     // 0x082.
	PublisherID   []byte `struc:"[128]byte"`     // 0x13E.
	PreparerID    []byte `struc:"[128]byte"`     // 0x1BE.
	ApplicationID []byte `struc:"[128]byte"`     // 0x23E.
}

// DetectISO9660 检测ISO9660文件系统, 并遍历其后的卷描述符序列.
func DetectISO9660(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(DescriptorStart*SectorSize, SectorSize)
	if len(buf) < SectorSize || buf[0] != DescriptorPrimary || !bytes.Equal(buf[1:6], isoMagic) {
		return
	}
	pvd := new(PrimaryVolumeDescriptor)
	if err := struc.UnpackWithOptions(bytes.NewReader(buf), pvd, &struc.Options{Order: binary.LittleEndian}); err != nil {
		logger.Debugf("DetectISO9660 unpack: %v", err)
		return
	}

	a.Out.Line(level, "ISO9660 file system")
	volumeName := util.GetPaddedString(pvd.VolumeID, 32, ' ')
	a.Out.Line(level+1, "Volume name \"%s\"", volumeName)
	a.Log.Add(level, "ISO9660", "Q55336682")
	a.Log.Set("volume_name", volumeName)

	idents := []struct {
		key, label string
		raw        []byte
	}{
		{"publisher", "Publisher  ", pvd.PublisherID},
		{"preparer", "Preparer   ", pvd.PreparerID},
		{"application", "Application", pvd.ApplicationID},
	}
	for _, id := range idents {
		s := util.GetPaddedString(id.raw, 128, ' ')
		if s == "" {
			continue
		}
		a.Out.Line(level+1, "%s \"%s\"", id.label, s)
		a.Log.Set(id.key, s)
	}

	a.Out.Line(level+1, "Data size %s",
		util.FormatBlockySize(uint64(pvd.VolumeBlocks), uint32(pvd.BlockSize), "blocks", ""))
	a.Log.SetUint("block_size", uint64(pvd.BlockSize))
	a.Log.SetUint("volume_size", uint64(pvd.VolumeBlocks)*uint64(pvd.BlockSize))

	walkDescriptors(a, sec, level)
}

// walkDescriptors 自扇区17开始遍历卷描述符, 遇到终止描述符或签名错误时结束.
func walkDescriptors(a *detect.Analyzer, sec source.Section, level int) {
	for sector := int64(DescriptorStart + 1); ; sector++ {
		buf := sec.Buffer(sector*SectorSize, SectorSize)
		if len(buf) < SectorSize {
			return
		}
		if !bytes.Equal(buf[1:6], isoMagic) {
			a.Out.Line(level+1, "Signature missing in sector %d", sector)
			return
		}
		switch buf[0] {
		case DescriptorTerminator:
			return
		case DescriptorBoot:
			if !bytes.HasPrefix(buf[7:], []byte(ElToritoSpecification)) {
				a.Out.Line(level+1, "Boot record of unknown format")
				continue
			}
			catalog := int64(binary.LittleEndian.Uint32(buf[ElToritoCatalogPointer:]))
			a.Out.Line(level+1, "El Torito boot record, catalog at %d", catalog)
			a.Log.SetInt("el_torito_boot_record", catalog)
			dumpBootCatalog(a, sec, level+2, catalog*SectorSize)
		case DescriptorPrimary:
			a.Out.Line(level+1, "Additional Primary Volume Descriptor")
			a.Log.Set("descriptor", "additional_primary_volume_descriptor")
		case DescriptorSupplement:
			name := util.FormatUTF16BE(buf[40:72])
			for len(name) > 0 && name[len(name)-1] == ' ' {
				name = name[:len(name)-1]
			}
			a.Out.Line(level+1, "Joliet extension, volume name \"%s\"", name)
			a.Log.Set("joliet_extension", name)
		case DescriptorPartition:
			a.Out.Line(level+1, "Volume Partition Descriptor")
			a.Log.Set("descriptor", "volume_partition_descriptor")
		default:
			a.Out.Line(level+1, "Descriptor type %d at sector %d", buf[0], sector)
		}
	}
}

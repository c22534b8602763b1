package lvm

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

const wikidataLVM = "Q6667482"

// DetectLVM2 检测LVM2物理卷. 依次检查前4个扇区中的LABELONE标签.
func DetectLVM2(a *detect.Analyzer, sec source.Section, level int) {
	for i := int64(0); i < LabelScanSector; i++ {
		buf := sec.Buffer(i*SectorSize, SectorSize)
		if len(buf) < SectorSize {
			return
		}
		if string(buf[:len(LabelID)]) != LabelID {
			continue
		}
		pv, err := ParsePhysicalVolume(buf, i)
		if err != nil {
			logger.Debugf("DetectLVM2 sector %d: %v", i, err)
			continue
		}
		report(a, sec, level, pv)
		return
	}
}

func report(a *detect.Analyzer, sec source.Section, level int, pv *PhysicalVolume) {
	a.Out.Line(level, "Linux LVM2 volume, version 2")
	a.Log.Add(level, "LVM", wikidataLVM)
	a.Log.SetInt("version", 2)
	a.Out.Line(level+1, "LABELONE label at sector %d", pv.LabelSector)
	a.Log.SetInt("labelone_sector", pv.LabelSector)
	a.Out.Line(level+1, "PV uuid %s, volume size %s", pv.UUID, util.FormatSizeVerbose(pv.Size))
	a.Log.Set("physical_volume_UUID", pv.UUID)
	a.Log.SetUint("useable_size", pv.Size)

	for _, mda := range pv.MetadataAreas {
		mh, err := ParseMetadataHeader(sec.Buffer(int64(mda.Offset), 512))
		if err != nil {
			logger.Debugf("DetectLVM2 metadata area at %d: %v", mda.Offset, err)
			continue
		}
		a.Out.Line(level+1, "Meta-data version %d", mh.Version)
		a.Log.SetUint("meta_data_version", uint64(mh.Version))
		break
	}
}

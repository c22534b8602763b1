package fossick

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/lunixbochs/struc"
	"github.com/thoas/go-funk"
)

// BIOSParameterBlock FAT启动扇区中的BPB, 所有多字节字段均为小端序.
type BIOSParameterBlock struct {
	Jump              []byte `struc:"[3]byte"`       // 0x00.
	OEM               []byte `struc:"[8]byte"`       // 0x03.
	BytesPerSector    uint16 `struc:"uint16,little"` // 0x0B.
	SectorsPerCluster uint8  `struc:"uint8"`         // 0x0D.
	ReservedSectors   uint16 `struc:"uint16,little"` // 0x0E.
	NumberOfFATs      uint8  `struc:"uint8"`         // 0x10.
	RootEntries       uint16 `struc:"uint16,little"` // 0x11.
	TotalSectors16    uint16 `struc:"uint16,little"` // 0x13.
	Media             uint8  `struc:"uint8"`         // 0x15.
	FATSize16         uint16 `struc:"uint16,little"` // 0x16.
	SectorsPerTrack   uint16 `struc:"uint16,little"` // 0x18.
	Heads             uint16 `struc:"uint16,little"` // 0x1A.
	HiddenSectors     uint32 `struc:"uint32,little"` // 0x1C.
	TotalSectors32    uint32 `struc:"uint32,little"` // 0x20.
	FATSize32         uint32 `struc:"uint32,little"` // 0x24, 仅FAT32.
}

const (
	fatLabelOff16 = 0x2B
	fatLabelOff32 = 0x47
	fatLabelLen   = 11
	fatNoName     = "NO NAME"
)

var fatSectorSizes = []int{512, 1024, 2048, 4096}

// TotalSectors 总扇区数.
func (bpb *BIOSParameterBlock) TotalSectors() uint32 {
	if bpb.TotalSectors16 != 0 {
		return uint32(bpb.TotalSectors16)
	}
	return bpb.TotalSectors32
}

// FATSize 单个FAT表占用的扇区数.
func (bpb *BIOSParameterBlock) FATSize() uint32 {
	if bpb.FATSize16 != 0 {
		return uint32(bpb.FATSize16)
	}
	return bpb.FATSize32
}

// Clusters 数据区的簇数, 用于区分FAT12/16/32.
func (bpb *BIOSParameterBlock) Clusters() uint32 {
	bps := uint32(bpb.BytesPerSector)
	rootSectors := (uint32(bpb.RootEntries)*32 + bps - 1) / bps
	meta := uint32(bpb.ReservedSectors) + uint32(bpb.NumberOfFATs)*bpb.FATSize() + rootSectors
	if bpb.TotalSectors() <= meta {
		return 0
	}
	return (bpb.TotalSectors() - meta) / uint32(bpb.SectorsPerCluster)
}

// ClusterSize 簇大小(字节).
func (bpb *BIOSParameterBlock) ClusterSize() uint32 {
	return uint32(bpb.BytesPerSector) * uint32(bpb.SectorsPerCluster)
}

// HintsScore 统计启动扇区中符合FAT特征的线索数, 满分为5.
func (bpb *BIOSParameterBlock) HintsScore() int {
	score := 0
	if (bpb.Jump[0] == 0xEB && bpb.Jump[2] == 0x90) || bpb.Jump[0] == 0xE9 {
		score++
	}
	if funk.ContainsInt(fatSectorSizes, int(bpb.BytesPerSector)) {
		score++
	}
	if spc := bpb.SectorsPerCluster; spc != 0 && spc&(spc-1) == 0 {
		score++
	}
	if bpb.NumberOfFATs == 1 || bpb.NumberOfFATs == 2 {
		score++
	}
	if bpb.Media == 0xF0 || bpb.Media >= 0xF8 {
		score++
	}
	return score
}

// DetectFAT 检测FAT12/16/32文件系统. 簇数决定FAT类型.
func DetectFAT(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 512)
	if len(buf) < 512 || buf[510] != 0x55 || buf[511] != 0xAA {
		return
	}
	bpb := new(BIOSParameterBlock)
	if err := struc.UnpackWithOptions(bytes.NewReader(buf), bpb, &struc.Options{Order: binary.LittleEndian}); err != nil {
		logger.Debugf("DetectFAT unpack: %v", err)
		return
	}
	if string(bpb.OEM) == ExFATMagic || string(bpb.OEM) == "NTFS    " {
		return
	}
	if !funk.ContainsInt(fatSectorSizes, int(bpb.BytesPerSector)) || bpb.SectorsPerCluster == 0 ||
		bpb.ReservedSectors == 0 || bpb.FATSize() == 0 || bpb.TotalSectors() == 0 {
		return
	}
	score := bpb.HintsScore()
	if score < FATMinimumHintScore {
		return
	}

	clusters := bpb.Clusters()
	fs_, labelOff := FAT12, fatLabelOff16
	switch {
	case clusters >= FATMinClusters32:
		fs_, labelOff = FAT32, fatLabelOff32
	case clusters >= FATMinClusters16:
		fs_ = FAT16
	}

	a.Out.Line(level, "%s file system (hints score %d of %d)", fs_, score, FATHintsMaxScore)
	addFilesystem(a, level, fs_)
	a.Log.SetInt("hints_score", int64(score))

	a.Out.Line(level+1, "Volume size %s",
		util.FormatBlockySize(uint64(clusters), bpb.ClusterSize(), "clusters", ""))
	a.Log.SetUint("volume_size", uint64(clusters)*uint64(bpb.ClusterSize()))
	a.Log.SetUint("cluster_size", uint64(bpb.ClusterSize()))
	a.Log.SetUint("block_size", uint64(bpb.BytesPerSector))

	label := strings.TrimRight(util.GetString(buf[labelOff:], fatLabelLen), " ")
	if label != "" && label != fatNoName {
		a.Out.Line(level+1, "Volume name \"%s\"", label)
		a.Log.Set("volume_name", label)
	}
}

// DetectExFAT 检测exFAT文件系统.
func DetectExFAT(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 512)
	if len(buf) < 512 || string(buf[3:11]) != ExFATMagic {
		return
	}
	sectorShift, clusterShift := buf[108], buf[109]
	if sectorShift < 9 || sectorShift > 12 || clusterShift > 25-sectorShift {
		return
	}
	sectors := binary.LittleEndian.Uint64(buf[72:])
	bps := uint32(1) << sectorShift

	a.Out.Line(level, "exFAT file system")
	addFilesystem(a, level, ExFAT)
	a.Out.Line(level+1, "Volume size %s", util.FormatBlockySize(sectors, bps, "sectors", ""))
	a.Out.Line(level+1, "Cluster size %s", util.FormatSize(uint64(bps)<<clusterShift))
	a.Out.Line(level+1, "Serial number %08X", binary.LittleEndian.Uint32(buf[100:]))
	a.Log.SetUint("volume_size", sectors*uint64(bps))
	a.Log.SetUint("block_size", uint64(bps))
}

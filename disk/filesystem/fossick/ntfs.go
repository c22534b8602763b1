package fossick

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/filesystem/fossick/fs/ntfs"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

// DetectNTFS 检测NTFS文件系统.
func DetectNTFS(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, ntfs.BootSectorSize)
	if len(buf) < ntfs.BootSectorSize || string(buf[3:3+len(ntfs.OEMID)]) != ntfs.OEMID {
		return
	}
	a.Out.Line(level, "NTFS file system")
	addFilesystem(a, level, NTFS)

	bh, err := ntfs.ParseBootHeader(buf)
	if err != nil {
		a.Out.Line(level+1, "Invalid boot sector (%v)", err)
		return
	}
	logger.Debugf("DetectNTFS boot header:\n%s", bh.DebugString())

	a.Out.Line(level+1, "Volume size %s",
		util.FormatBlockySize(uint64(bh.TotalSectors), uint32(bh.BytesPerSector), "sectors", ""))
	a.Out.Line(level+1, "Cluster size %s", util.FormatSize(uint64(bh.ClusterSize())))
	a.Out.Line(level+1, "Serial number %s", bh.Serial())
	a.Log.SetInt("volume_size", bh.VolumeSize())
	a.Log.SetInt("block_size", int64(bh.ClusterSize()))
}

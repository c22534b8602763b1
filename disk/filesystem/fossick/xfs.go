package fossick

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/filesystem/fossick/fs/xfs"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

// DetectXFS 检测XFS文件系统.
// 区段完整包含文件系统时, 进一步读取各AG的空闲块统计.
func DetectXFS(a *detect.Analyzer, sec source.Section, level int) {
	sb, err := xfs.ParseSuperBlock(sec.Buffer(0, xfs.SuperBlockSize))
	if err != nil {
		return
	}
	a.Out.Line(level, "XFS file system, version %d", sb.Version())
	addFilesystem(a, level, XFS)
	a.Log.SetInt("version", int64(sb.Version()))

	if name := sb.VolumeName(); name != "" {
		a.Out.Line(level+1, "Volume name \"%s\"", name)
		a.Log.Set("volume_name", name)
	}
	a.Out.Line(level+1, "UUID %s", sb.UUIDString())
	a.Log.Set("UUID", sb.UUIDString())
	a.Out.Line(level+1, "Volume size %s", util.FormatBlockySize(sb.Dblocks, sb.BlockSize, "blocks", ""))
	a.Log.SetUint("volume_size", sb.VolumeSize())
	a.Log.SetUint("block_size", uint64(sb.BlockSize))

	avail, known := sec.Available()
	if !known || uint64(avail) < sb.VolumeSize() {
		a.Log.SetUint("allocation_groups", uint64(sb.Agcount))
		return
	}
	usage, err := xfs.Inspect(sec.ReaderAt(), int64(sb.VolumeSize()))
	if err != nil {
		logger.Debugf("DetectXFS inspect: %v", err)
		a.Log.SetUint("allocation_groups", uint64(sb.Agcount))
		return
	}
	a.Log.SetInt("allocation_groups", int64(usage.AllocationGroups))
	a.Log.SetUint("free_size", usage.FreeBlocks*uint64(sb.BlockSize))
	a.Out.Line(level+1, "%d allocation groups, %s free",
		usage.AllocationGroups, util.FormatSize(usage.FreeBlocks*uint64(sb.BlockSize)))
}

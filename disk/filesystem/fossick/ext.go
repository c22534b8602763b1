package fossick

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/filesystem/fossick/fs/ext"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

// DetectExt 检测EXT2/3/4文件系统及ext3外部日志设备.
//
// 参考:
// 1. https://www.kernel.org/doc/html/latest/filesystems/ext4/globals.html.
// 2. https://ext4.wiki.kernel.org/index.php/Ext4_Disk_Layout.
func DetectExt(a *detect.Analyzer, sec source.Section, level int) {
	sb, err := ext.ParseSuperBlock(sec.Buffer(ext.SuperBlockStartOff, ext.SuperBlockSize))
	if err != nil {
		return
	}
	logger.Debugf("DetectExt block size %v, groups %v, group descriptor size %v",
		sb.BlockSize(), sb.BlockGroups(), sb.GroupDescriptorSize())

	var fs_ Filesystem
	switch sb.Version() {
	case ext.Journal:
		fs_ = ExtJournal
		a.Out.Line(level, "Ext3 external journal")
	case ext.Ext4:
		fs_ = Ext4
		a.Out.Line(level, "Ext4 file system")
	case ext.Ext3:
		fs_ = Ext3
		a.Out.Line(level, "Ext3 file system")
	default:
		fs_ = Ext2
		a.Out.Line(level, "Ext2 file system")
	}
	addFilesystem(a, level, fs_)
	if fs_ == Ext4 && sb.IsDevelopment() {
		a.Out.Line(level+1, "Development version (ext4dev)")
		a.Log.SetBool("development_version", true)
	}

	if name := sb.VolumeNameString(); name != "" {
		a.Out.Line(level+1, "Volume name \"%s\"", name)
		a.Log.Set("volume_name", name)
	}
	a.Out.Line(level+1, "UUID %s", sb.UUIDString())
	a.Log.Set("UUID", sb.UUIDString())
	if mnt := sb.LastMountedString(); mnt != "" {
		a.Out.Line(level+1, "Last mounted at \"%s\"", mnt)
		a.Log.Set("last_mounted", mnt)
	}
	a.Out.Line(level+1, "Volume size %s",
		util.FormatBlockySize(uint64(sb.BlocksCount()), uint32(sb.BlockSize()), "blocks", ""))
	a.Log.SetInt("volume_size", sb.VolumeSize())
	a.Log.SetInt("block_size", sb.BlockSize())
}

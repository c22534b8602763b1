package probe

import (
	"github.com/kisun-bit/disktype/disk/archive"
	"github.com/kisun-bit/disktype/disk/blank"
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/filesystem/fossick"
	"github.com/kisun-bit/disktype/disk/image/qcow2"
	"github.com/kisun-bit/disktype/disk/image/vpc"
	"github.com/kisun-bit/disktype/disk/lvm"
	"github.com/kisun-bit/disktype/disk/optical"
	"github.com/kisun-bit/disktype/disk/table"
	"github.com/kisun-bit/disktype/util/config"
)

// Detectors 返回全部探测器, 顺序决定输出顺序; 镜像容器探测器可以终止其后的探测器.
// 压缩及镜像格式在前, 分区表与光盘格式其次, 文件系统随后, 空白检测最后.
func Detectors(cfg *config.Config) []detect.Detector {
	ds := archive.Detectors(cfg.DecompressLimit)
	ds = append(ds,
		qcow2.DetectQCOW,
		vpc.DetectVPC,
		table.DetectAmigaRDB,
		table.DetectMBR,
		table.DetectGPT,
		optical.DetectISO9660,
		optical.DetectCDROMMisc,
		table.DetectAmigaFS,
		lvm.DetectLVM2,
	)
	ds = append(ds, fossick.Detectors()...)
	return append(ds, blank.New(cfg.BlankMaxBlocks))
}

// Hooks 返回在常规检测之前处理整个源的钩子.
func Hooks() []detect.SourceHook {
	return []detect.SourceHook{optical.TOCHook}
}

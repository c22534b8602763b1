package fossick

import (
	"github.com/kisun-bit/disktype/disk/detect"
)

// Detectors 返回本包全部文件系统探测器, 按检测顺序排列.
func Detectors() []detect.Detector {
	return []detect.Detector{
		DetectExt,
		DetectXFS,
		DetectNTFS,
		DetectExFAT,
		DetectFAT,
		DetectBtrfs,
		DetectJFS,
		DetectZFS,
		DetectAPFS,
		DetectOracleASM,
		DetectSwap,
		DetectSquashFS,
		DetectCramFS,
	}
}

// addFilesystem 以文件系统类型名及其Wikidata标识追加内容对象.
func addFilesystem(a *detect.Analyzer, level int, fs_ Filesystem) {
	a.Log.Add(level, fs_.String(), fs_.Wikidata())
}

func endianName(little bool) string {
	if little {
		return "little"
	}
	return "big"
}

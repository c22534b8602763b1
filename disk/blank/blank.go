package blank

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
)

const (
	BlockSize        = 512
	DefaultMaxBlocks = 2048 * 2 // 只扫描前2 MiB.
	MinBlocks        = 64 * 2

	wikidataBlank = "Q543287"
)

// DetectBlank 以默认扫描范围检测空白介质.
var DetectBlank = New(DefaultMaxBlocks)

// New 返回最多比较maxBlocks个512字节块的空白检测器.
// 以首字节为基准值, 逐块比较直到遇到不同的字节.
// 扫描范围内全部一致时认为整个介质为空白, 否则仅在超过MinBlocks块时报告空白前缀.
func New(maxBlocks int) detect.Detector {
	if maxBlocks <= 0 {
		maxBlocks = DefaultMaxBlocks
	}
	return func(a *detect.Analyzer, sec source.Section, level int) {
		first := sec.Buffer(0, 1)
		if len(first) < 1 {
			return
		}
		code := first[0]

		limit := int64(maxBlocks)
		if avail, known := sec.Available(); known && avail < limit*BlockSize {
			limit = avail / BlockSize
		}
		if limit == 0 {
			return
		}

		var blank int64
		for i := int64(0); i < limit; i++ {
			buf := sec.Buffer(i*BlockSize, BlockSize)
			if len(buf) < BlockSize || !util.AllBytes(buf, code) {
				break
			}
			blank = i + 1
		}

		switch {
		case blank >= limit:
			a.Log.Add(level, "Blank", wikidataBlank)
			a.Log.SetBool("all_empty_guess", true)
			a.Log.SetInt("empty_section_size", blank*BlockSize)
			a.Out.Line(level, "Blank disk/medium")
		case blank > MinBlocks:
			a.Log.Add(level, "Blank", wikidataBlank)
			a.Log.SetBool("all_empty_guess", false)
			a.Log.SetInt("empty_section_size", blank*BlockSize)
			a.Out.Line(level, "First %s are blank", util.FormatSize(uint64(blank*BlockSize)))
		}
	}
}

package archive

import (
	"io"
	"math"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util/logger"
)

// DefaultLimit 每个解压流默认最多读取的字节数.
const DefaultLimit = 64 << 20

// Decompressor 压缩格式探测器组. 识别出压缩数据后, 将解压流作为新的源在下一层级继续分析.
type Decompressor struct {
	// Limit 单个解压流最多读取的字节数, 小于等于0表示不限制.
	Limit int64
}

// Detectors 返回本包全部探测器, 解压流最多读取limit字节.
func Detectors(limit int64) []detect.Detector {
	d := Decompressor{Limit: limit}
	return []detect.Detector{
		d.DetectGzip,
		d.DetectBzip2,
		d.DetectZstd,
		d.DetectLZ4,
		DetectCompress,
		DetectTar,
	}
}

// sectionStream 将区段适配为从头开始的顺序读取器.
func sectionStream(sec source.Section) io.Reader {
	return io.NewSectionReader(sec.ReaderAt(), 0, math.MaxInt64)
}

// analyzeStream 以解压读取器构造顺序源并分析. 底层源作为其 Foundation.
func (d Decompressor) analyzeStream(a *detect.Analyzer, sec source.Section, level int, r io.Reader) {
	logger.Debugf("Decompressor.analyzeStream level %d limit %d", level, d.Limit)
	a.AnalyzeLayered(source.NewStream(r, d.Limit, sec.Cache.Source()), level)
}

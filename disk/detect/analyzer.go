package detect

import (
	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util/logger"
)

// Detector 格式探测器.
//
// 探测器先做廉价的签名检查, 不匹配时直接返回且不产生任何输出;
// 匹配时可以写入内容对象及属性、输出文本行, 并在 level+1 层级递归分析子区段.
// 签名匹配之后的结构性错误只输出一行诊断信息并终止该结构的解析.
type Detector func(a *Analyzer, sec source.Section, level int)

// SourceHook 在常规检测之前处理整个源(例如读取光盘目录), 返回true表示源已被完整处理.
type SourceHook func(a *Analyzer, c *source.Cache, level int) bool

// MaxLayers 派生源(解压流、虚拟磁盘)允许嵌套的最大层数.
const MaxLayers = 8

// Analyzer 递归检测调度器. 单线程使用, 同一时刻只有一个探测器在写入记录.
type Analyzer struct {
	Log       *content.Log
	Out       *Printer
	ChunkSize int // 为派生源(解压流、虚拟磁盘)创建缓存时使用.

	detectors []Detector
	hooks     []SourceHook
	stop      bool
	layers    int
}

func New(log *content.Log, out *Printer, detectors []Detector, hooks ...SourceHook) *Analyzer {
	if out == nil {
		out = NewPrinter(nil)
	}
	return &Analyzer{
		Log:       log,
		Out:       out,
		ChunkSize: source.DefaultChunkSize,
		detectors: detectors,
		hooks:     hooks,
	}
}

// Detect 按注册顺序对区段执行全部探测器.
// 某个探测器调用 Stop 后, 该区段余下的探测器被跳过.
func (a *Analyzer) Detect(sec source.Section, level int) {
	for _, fn := range a.detectors {
		a.stop = false
		fn(a, sec, level)
		if a.stop {
			a.stop = false
			break
		}
	}
}

// Stop 终止当前区段余下探测器的执行.
func (a *Analyzer) Stop() {
	a.stop = true
}

// Recurse 在相对偏移relPos处派生长度为size(0表示无界)的子区段并检测.
// 相对偏移为0的递归只允许来自磁盘标签内部(FlagInDiskLabel), 以免对同一区段无限递归;
// 起点超出已知源长度的请求被忽略.
func (a *Analyzer) Recurse(sec source.Section, level int, relPos, size int64, flags int) {
	if relPos == 0 && flags&source.FlagInDiskLabel == 0 {
		return
	}
	if total, ok := sec.Cache.Size(); ok && sec.Pos+relPos >= total {
		logger.Debugf("Analyzer.Recurse skip pos=%d beyond source size %d", sec.Pos+relPos, total)
		return
	}
	a.Detect(sec.Sub(relPos, size, flags), level)
}

// AnalyzeSource 分析整个源. 若某个 SourceHook 已处理该源, 则不再执行常规检测.
func (a *Analyzer) AnalyzeSource(c *source.Cache, level int) {
	for _, hook := range a.hooks {
		if hook(a, c, level) {
			return
		}
	}
	a.Detect(source.NewSection(c), level)
}

// AnalyzeSourceSpecial 分析源中 [pos, pos+size) 区间, size为0表示直到源末尾.
func (a *Analyzer) AnalyzeSourceSpecial(c *source.Cache, level int, pos, size int64) {
	a.Detect(source.Section{Pos: pos, Size: size, Cache: c}, level)
}

// AnalyzeLayered 为派生源创建缓存并分析, 结束后关闭该源.
// 嵌套层数达到 MaxLayers 时不再分析, 只记录一个 "Nesting limit" 对象.
func (a *Analyzer) AnalyzeLayered(src source.Source, level int) {
	if a.layers >= MaxLayers {
		a.Out.Line(level, "Nested layers exceed %d, contents not analyzed", MaxLayers)
		a.Log.Add(level, "Nesting limit", "")
		a.Log.SetInt("max_layers", MaxLayers)
		if err := src.Close(); err != nil {
			logger.Debugf("Analyzer.AnalyzeLayered close: %v", err)
		}
		return
	}
	a.layers++
	defer func() { a.layers-- }()

	c := source.NewCache(src, a.ChunkSize)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Debugf("Analyzer.AnalyzeLayered close: %v", err)
		}
	}()
	a.AnalyzeSource(c, level)
}

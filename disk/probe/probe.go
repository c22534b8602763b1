package probe

import (
	"io"
	"io/fs"
	"os"

	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/sys/ioctl"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/config"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
)

// Result 单个路径的分析结果.
// Err 为面向用户的错误信息; 即使出错, Document 也总是有效的.
type Result struct {
	Document *content.Document
	Err      error
}

// Prober 逐个分析文件或设备. 记录在每次 Run 之前清空, 不可并发使用.
type Prober struct {
	cfg      *config.Config
	out      *detect.Printer
	log      *content.Log
	analyzer *detect.Analyzer
	host     HostUsage
}

// New 创建分析器, 文本输出写入w.
func New(w io.Writer, cfg *config.Config) *Prober {
	out := detect.NewPrinter(w)
	log := content.NewLog(cfg.Latin1)
	a := detect.New(log, out, Detectors(cfg), Hooks()...)
	a.ChunkSize = cfg.CacheBlockSize
	return &Prober{cfg: cfg, out: out, log: log, analyzer: a, host: hostUsage{}}
}

// WithHostUsage 替换块设备使用情况的查询实现.
func (p *Prober) WithHostUsage(u HostUsage) *Prober {
	p.host = u
	return p
}

// systemError 返回系统调用错误本身的描述, 不含操作名及路径.
func systemError(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

func fileKind(mode fs.FileMode) (source.Kind, string) {
	switch {
	case mode.IsRegular():
		return source.KindRegular, ""
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice != 0:
		return source.KindChar, ""
	case mode&fs.ModeDevice != 0:
		return source.KindBlock, ""
	case mode.IsDir():
		return source.KindUnknown, "Is a directory"
	case mode&fs.ModeNamedPipe != 0:
		return source.KindUnknown, "Is a FIFO"
	case mode&fs.ModeSocket != 0:
		return source.KindUnknown, "Is a socket"
	}
	return source.KindUnknown, "Is an unknown kind of special file"
}

func (p *Prober) printKind(doc *content.Document, kind source.Kind, size int64, known bool) {
	doc.FileKind = kind.String()
	doc.Size, doc.SizeKnown = size, known
	if known {
		p.out.Line(0, "%s, size %s", kind, util.FormatSizeVerbose(uint64(size)))
	} else {
		p.out.Line(0, "%s, unknown size", kind)
	}
}

// Run 分析单个路径.
func (p *Prober) Run(path string) Result {
	p.log.Reset()
	doc := &content.Document{Path: path, Content: p.log}
	fail := func(format string, args ...interface{}) Result {
		return Result{Document: doc, Err: errors.Errorf(format, args...)}
	}

	p.out.Line(0, "--- %s", path)
	info, err := os.Stat(path)
	if err != nil {
		return fail("Can't stat %s: %s", path, systemError(err))
	}
	kind, reason := fileKind(info.Mode())
	if reason != "" {
		return fail("%s: %s", path, reason)
	}
	if kind == source.KindRegular {
		p.printKind(doc, kind, info.Size(), true)
		if info.Size() == 0 {
			return Result{Document: doc}
		}
	}

	fp, err := os.Open(path)
	if err != nil {
		return fail("Can't open %s: %s", path, systemError(err))
	}
	if kind == source.KindChar && ioctl.IsTTY(fp.Fd()) {
		_ = fp.Close()
		return fail("%s: Is a TTY device", path)
	}
	src, err := source.NewFile(fp, kind)
	if err != nil {
		_ = fp.Close()
		return fail("Can't open %s: %s", path, systemError(errors.Cause(err)))
	}
	if kind != source.KindRegular {
		size, known := src.Size()
		p.printKind(doc, kind, size, known)
	}
	if kind == source.KindBlock {
		p.reportHostUsage(path)
	}

	c := source.NewCache(src, p.cfg.CacheBlockSize)
	p.analyzer.AnalyzeSource(c, 0)
	if err = c.Close(); err != nil {
		logger.Debugf("Prober.Run close %s: %v", path, err)
	}
	return Result{Document: doc}
}

func (p *Prober) reportHostUsage(device string) {
	for _, m := range p.host.Mounts(device) {
		p.out.Line(0, "Mounted at %s (%s)", m.Mountpoint, m.Fstype)
	}
	if s, ok := activeSwap(p.host, device); ok {
		p.out.Line(0, "Active swap area, %s of %s used", util.FormatSize(uint64(s.Used)), util.FormatSize(uint64(s.Size)))
	}
}

package detect

import (
	"fmt"
	"io"
	"strings"
)

// Printer 以缩进文本行输出检测结果, 每一层级缩进两个空格.
type Printer struct {
	w       io.Writer
	pending strings.Builder
}

// NewPrinter 创建输出到w的Printer, w为nil时丢弃输出.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

// Line 在指定层级输出一行.
func (p *Printer) Line(level int, format string, args ...interface{}) {
	p.Start(format, args...)
	p.Finish(level)
}

// Start 开始一行新的内容, 丢弃未完成的行.
func (p *Printer) Start(format string, args ...interface{}) {
	p.pending.Reset()
	fmt.Fprintf(&p.pending, format, args...)
}

// Continue 向未完成的行追加内容.
func (p *Printer) Continue(format string, args ...interface{}) {
	fmt.Fprintf(&p.pending, format, args...)
}

// Finish 以指定层级的缩进输出未完成的行.
func (p *Printer) Finish(level int) {
	if level < 0 {
		level = 0
	}
	line := p.pending.String()
	p.pending.Reset()
	_, _ = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", level), line)
}

// Blank 输出空行.
func (p *Printer) Blank() {
	_, _ = io.WriteString(p.w, "\n")
}

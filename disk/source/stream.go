package source

import (
	"io"

	"github.com/pkg/errors"
)

// Stream 基于 io.Reader 的顺序源, 用于解压缩数据流.
// 长度在读到流末尾(或达到上限)之前未知; 只允许按偏移单调递增读取.
type Stream struct {
	r          io.Reader
	foundation Source
	limit      int64
	pos        int64
	eof        bool
}

// NewStream 创建顺序源. limit 为最多读取的字节数, 小于等于0表示不限制.
func NewStream(r io.Reader, limit int64, foundation Source) *Stream {
	return &Stream{r: r, limit: limit, foundation: foundation}
}

func (s *Stream) Size() (int64, bool) {
	return s.pos, s.eof
}

func (s *Stream) BlockSize() int {
	return DefaultBlockSize
}

func (s *Stream) Sequential() bool {
	return true
}

func (s *Stream) Foundation() Source {
	return s.foundation
}

func (s *Stream) ReadAt(p []byte, off int64) (int, error) {
	if off != s.pos {
		return 0, errors.Errorf("stream: non-sequential read at %d, position %d", off, s.pos)
	}
	if s.eof {
		return 0, io.EOF
	}
	want := p
	if s.limit > 0 && s.pos+int64(len(want)) > s.limit {
		want = want[:s.limit-s.pos]
	}
	n, err := io.ReadFull(s.r, want)
	s.pos += int64(n)
	if s.limit > 0 && s.pos >= s.limit {
		s.eof = true
	}
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		s.eof = true
		return n, io.EOF
	case err != nil:
		// 损坏的压缩数据: 已解出的部分仍然有效.
		s.eof = true
		return n, errors.Wrap(err, "stream read")
	case n < len(p):
		return n, io.EOF
	}
	return n, nil
}

func (s *Stream) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

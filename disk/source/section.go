package source

import "io"

// Section 某一次检测所作用的字节区间视图.
// Size 为0表示无界, 仅受源长度限制. Section 是值类型, 不拥有 Cache.
type Section struct {
	Pos   int64
	Size  int64
	Flags int
	Cache *Cache
}

// NewSection 返回覆盖整个源的区段.
func NewSection(c *Cache) Section {
	s := Section{Cache: c}
	if size, ok := c.Size(); ok {
		s.Size = size
	}
	return s
}

// Buffer 读取区段内相对偏移pos处最多length字节的数据, 结果按区段边界及源长度截断.
func (s Section) Buffer(pos, length int64) []byte {
	if pos < 0 || length <= 0 {
		return nil
	}
	if s.Size > 0 {
		if pos >= s.Size {
			return nil
		}
		if pos+length > s.Size {
			length = s.Size - pos
		}
	}
	return s.Cache.Buffer(s.Pos+pos, length)
}

// Sub 派生一个位于相对偏移relPos处的子区段.
func (s Section) Sub(relPos, size int64, flags int) Section {
	return Section{Pos: s.Pos + relPos, Size: size, Flags: flags, Cache: s.Cache}
}

// Available 返回区段的有效长度: 显式长度, 或源剩余长度.
func (s Section) Available() (int64, bool) {
	if s.Size > 0 {
		return s.Size, true
	}
	size, ok := s.Cache.Size()
	if !ok {
		return 0, false
	}
	if size <= s.Pos {
		return 0, true
	}
	return size - s.Pos, true
}

// ReaderAt 将区段适配为 io.ReaderAt.
func (s Section) ReaderAt() io.ReaderAt {
	return sectionReader{s: s}
}

type sectionReader struct {
	s Section
}

func (r sectionReader) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, r.s.Buffer(off, int64(len(p))))
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

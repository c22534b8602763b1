package source

import "io"

// Mapper 将虚拟偏移转换为底层源的物理偏移.
type Mapper interface {
	// Map 返回虚拟偏移off所在映射段的物理偏移, 以及该段自off起的剩余长度.
	// allocated为false时该段未分配, 读取结果为全零.
	Map(off int64) (phys int64, n int64, allocated bool)
}

// Mapped 分层源: 通过 Mapper 将虚拟磁盘映射到底层源(例如qcow2、VPC动态磁盘).
// 底层数据经由底层源的 Cache 读取, Mapped 不拥有也不关闭底层源.
type Mapped struct {
	base *Cache
	m    Mapper
	size int64
}

func NewMapped(base *Cache, size int64, m Mapper) *Mapped {
	return &Mapped{base: base, m: m, size: size}
}

func (s *Mapped) Size() (int64, bool) {
	return s.size, true
}

func (s *Mapped) BlockSize() int {
	return DefaultBlockSize
}

func (s *Mapped) Sequential() bool {
	return false
}

func (s *Mapped) Foundation() Source {
	return s.base.Source()
}

func (s *Mapped) ReadAt(p []byte, off int64) (int, error) {
	done := 0
	for done < len(p) && off < s.size {
		phys, n, allocated := s.m.Map(off)
		if n <= 0 {
			break
		}
		chunk := int64(len(p) - done)
		if chunk > n {
			chunk = n
		}
		if chunk > s.size-off {
			chunk = s.size - off
		}
		dst := p[done : done+int(chunk)]
		if allocated {
			got := copy(dst, s.base.Buffer(phys, chunk))
			done += got
			if int64(got) < chunk {
				return done, io.EOF
			}
		} else {
			for i := range dst {
				dst[i] = 0
			}
			done += int(chunk)
		}
		off += chunk
	}
	if done < len(p) {
		return done, io.EOF
	}
	return done, nil
}

func (s *Mapped) Close() error {
	return nil
}

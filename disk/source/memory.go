package source

import "io"

// Memory 基于内存数据的字节源.
type Memory struct {
	data       []byte
	foundation Source
}

func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

// NewMemoryOn 创建以foundation为底层源的内存源, 例如解码后的小型载荷.
func NewMemoryOn(data []byte, foundation Source) *Memory {
	return &Memory{data: data, foundation: foundation}
}

func (m *Memory) Size() (int64, bool) {
	return int64(len(m.data)), true
}

func (m *Memory) BlockSize() int {
	return DefaultBlockSize
}

func (m *Memory) Sequential() bool {
	return false
}

func (m *Memory) Foundation() Source {
	return m.foundation
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Memory) Close() error {
	return nil
}

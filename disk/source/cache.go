package source

import (
	"io"

	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
)

// DefaultChunkSize 缓存块的默认大小.
const DefaultChunkSize = 4096

// Cache 单个 Source 的读缓存.
//
// 缓存以对齐的块为单位保存读到的数据, 块一经读入在整个分析过程中不再失效(源均为只读).
// 对于顺序源, 数据按块依次向前填充且全部保留, 因此任意已读位置都能再次访问.
type Cache struct {
	src     Source
	chunk   int64
	chunks  map[int64][]byte
	seqNext int64 // 顺序源下一个待读取的块序号.
	end     int64 // 已知的数据末尾(绝对偏移), -1 表示未知.
}

// NewCache 为src创建缓存. chunkSize 会被调整为源块大小与512的整数倍.
func NewCache(src Source, chunkSize int) *Cache {
	if chunkSize < DefaultBlockSize {
		chunkSize = DefaultChunkSize
	}
	if bs := src.BlockSize(); bs > chunkSize {
		chunkSize = bs
	}
	if rem := chunkSize % DefaultBlockSize; rem != 0 {
		chunkSize += DefaultBlockSize - rem
	}
	return &Cache{
		src:    src,
		chunk:  int64(chunkSize),
		chunks: make(map[int64][]byte),
		end:    -1,
	}
}

func (c *Cache) Source() Source {
	return c.src
}

func (c *Cache) Size() (int64, bool) {
	return c.src.Size()
}

func (c *Cache) Close() error {
	c.chunks = nil
	return c.src.Close()
}

// Buffer 返回绝对偏移pos处最多length字节的数据.
// 返回的数据长度按源实际可提供的字节数截断, 可能为0. 短读不是错误,
// 调用方应将其视为"该结构不存在".
func (c *Cache) Buffer(pos, length int64) []byte {
	if pos < 0 || length <= 0 {
		return nil
	}
	if size, ok := c.src.Size(); ok {
		if pos >= size {
			return nil
		}
		if pos+length > size {
			length = size - pos
		}
	}
	first := pos / c.chunk
	last := (pos + length - 1) / c.chunk

	if first == last {
		data := c.load(first)
		from := pos - first*c.chunk
		if from >= int64(len(data)) {
			return nil
		}
		to := from + length
		if to > int64(len(data)) {
			to = int64(len(data))
		}
		return data[from:to:to]
	}

	out := make([]byte, 0, length)
	for i := first; i <= last; i++ {
		data := c.load(i)
		from := int64(0)
		if i == first {
			from = pos - first*c.chunk
		}
		to := int64(len(data))
		if i == last && pos+length-i*c.chunk < to {
			to = pos + length - i*c.chunk
		}
		if from < to {
			out = append(out, data[from:to]...)
		}
		if int64(len(data)) < c.chunk {
			break
		}
	}
	return out
}

func (c *Cache) load(i int64) []byte {
	if d, ok := c.chunks[i]; ok {
		return d
	}
	if c.end >= 0 && i*c.chunk >= c.end {
		return nil
	}
	if !c.src.Sequential() {
		d := c.read(i)
		c.chunks[i] = d
		return d
	}
	for c.seqNext <= i {
		d := c.read(c.seqNext)
		c.chunks[c.seqNext] = d
		c.seqNext++
		if int64(len(d)) < c.chunk {
			break
		}
	}
	return c.chunks[i]
}

func (c *Cache) read(i int64) []byte {
	buf := make([]byte, c.chunk)
	off := i * c.chunk
	n, err := c.src.ReadAt(buf, off)
	if n < 0 {
		n = 0
	}
	if err != nil && errors.Cause(err) != io.EOF {
		logger.Debugf("Cache.read offset=%d read=%d: %v", off, n, err)
	}
	if int64(n) < c.chunk {
		if end := off + int64(n); c.end < 0 || end < c.end {
			c.end = end
		}
	}
	return buf[:n]
}

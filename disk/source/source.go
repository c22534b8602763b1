package source

import "io"

// FlagInDiskLabel 表示子区段来源于磁盘标签(分区表)内部, 允许相对偏移为0的递归.
const FlagInDiskLabel = 0x0001

// DefaultBlockSize 源数据的默认块大小.
const DefaultBlockSize = 512

// Source 字节源, 可以是文件、块设备、内存数据、解压流或基于其他源的映射视图.
//
// ReadAt 允许返回少于请求长度的数据(到达数据末尾), 此时返回的错误可以为 io.EOF.
// 顺序源(Sequential返回true)只保证按偏移单调递增地读取, 由 Cache 负责保证调用顺序.
type Source interface {
	io.ReaderAt
	io.Closer
	// Size 返回源的总长度以及该长度是否已知.
	Size() (int64, bool)
	// BlockSize 读取的首选粒度.
	BlockSize() int
	// Sequential 若数据只能单向读取一次, 则返回true.
	Sequential() bool
	// Foundation 分层源所依赖的底层源, 非分层源返回nil.
	Foundation() Source
}

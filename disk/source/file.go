package source

import (
	"io"
	"os"

	"github.com/kisun-bit/disktype/sys/ioctl"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/pkg/errors"
)

// Kind 被分析文件的类别.
type Kind int

const (
	KindRegular Kind = iota
	KindBlock
	KindChar
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "Regular file"
	case KindBlock:
		return "Block device"
	case KindChar:
		return "Character device"
	default:
		return "Unknown kind"
	}
}

// File 基于已打开文件的字节源.
type File struct {
	fp         *os.File
	kind       Kind
	size       int64
	sizeKnown  bool
	sequential bool
	seqPos     int64
}

// NewFile 为已打开的文件创建字节源.
// 普通文件使用stat得到的长度; 块设备通过ioctl查询长度; 字符设备长度未知,
// 若不可定位则按顺序源处理.
func NewFile(fp *os.File, kind Kind) (*File, error) {
	f := &File{fp: fp, kind: kind}
	switch kind {
	case KindRegular:
		info, err := fp.Stat()
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", fp.Name())
		}
		f.size, f.sizeKnown = info.Size(), true
	case KindBlock:
		size, err := ioctl.QueryFileSize(fp.Name())
		if err == nil {
			f.size, f.sizeKnown = int64(size), true
		} else if end, errSeek := fp.Seek(0, io.SeekEnd); errSeek == nil {
			f.size, f.sizeKnown = end, true
		} else {
			logger.Debugf("source.NewFile %s: size unknown: %v", fp.Name(), err)
		}
	default:
		if _, err := fp.Seek(0, io.SeekCurrent); err != nil {
			f.sequential = true
		}
	}
	return f, nil
}

func (f *File) Kind() Kind {
	return f.kind
}

// Fd 返回底层文件描述符, 供光盘TOC查询使用.
func (f *File) Fd() uintptr {
	return f.fp.Fd()
}

func (f *File) Name() string {
	return f.fp.Name()
}

func (f *File) Size() (int64, bool) {
	if f.sequential && !f.sizeKnown {
		return 0, false
	}
	return f.size, f.sizeKnown
}

func (f *File) BlockSize() int {
	return DefaultBlockSize
}

func (f *File) Sequential() bool {
	return f.sequential
}

func (f *File) Foundation() Source {
	return nil
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if !f.sequential {
		return f.fp.ReadAt(p, off)
	}
	if off != f.seqPos {
		return 0, errors.Errorf("sequential read at %d, expected %d", off, f.seqPos)
	}
	n, err := io.ReadFull(f.fp, p)
	f.seqPos += int64(n)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		f.size, f.sizeKnown = f.seqPos, true
		err = io.EOF
	}
	return n, err
}

func (f *File) Close() error {
	return f.fp.Close()
}

package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatSize 返回用户可读的容量描述, 例如 "1.4 MiB".
func FormatSize(size uint64) string {
	return humanize.IBytes(size)
}

// FormatSizeVerbose 返回字节数及可读容量, 例如 "1474560 bytes, 1.4 MiB".
func FormatSizeVerbose(size uint64) string {
	if size < 1024 {
		return fmt.Sprintf("%d bytes", size)
	}
	return fmt.Sprintf("%d bytes, %s", size, humanize.IBytes(size))
}

// FormatBlockySize 以块计数描述容量, 例如 "1.0 GiB (1073741824 bytes, 2097152 sectors)".
// suffix 追加在块名之后, 可为空.
func FormatBlockySize(count uint64, blockSize uint32, blockName, suffix string) string {
	total := count * uint64(blockSize)
	return fmt.Sprintf("%s (%d bytes, %d %s%s)", humanize.IBytes(total), total, count, blockName, suffix)
}

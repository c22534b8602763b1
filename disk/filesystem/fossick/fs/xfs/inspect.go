package xfs

import (
	"io"

	"github.com/kisun-bit/disktype/util/logger"
	"github.com/masahiro331/go-xfs-filesystem/xfs"
	"github.com/pkg/errors"
)

// Usage 各AG的空间使用概况.
type Usage struct {
	AllocationGroups int
	FreeBlocks       uint64
}

// Inspect 打开完整的XFS文件系统, 汇总各AG的AGF空闲块计数.
//
// XFS文件系统由一组AG构成, 每一个AG可以理解为一个小XFS.
// |<--------------------            XFS              ----------------------->|
// +--------------+--------------+--------------+--------------+--------------+
// |     AG-0     |     AG-1     |     AG-2     |     ....     |     AG-N     |
// +--------------+--------------+--------------+--------------+--------------+
func Inspect(ra io.ReaderAt, size int64) (*Usage, error) {
	r := *io.NewSectionReader(ra, 0, size)
	xfsHandle, err := xfs.NewFS(r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open xfs")
	}
	defer xfsHandle.Close()

	u := &Usage{AllocationGroups: len(xfsHandle.AGs)}
	for i, ag := range xfsHandle.AGs {
		logger.Debugf("xfs.Inspect AG%d freeblks=%v longest=%v", i, ag.Agf.Freeblks, ag.Agf.Longest)
		u.FreeBlocks += uint64(ag.Agf.Freeblks)
	}
	return u, nil
}

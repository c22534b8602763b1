package ioctl

import "github.com/pkg/errors"

var ErrNotSupported = errors.New("not supported on this platform")

// TOCEntry 光盘目录中的一条轨道记录.
type TOCEntry struct {
	Track   uint8
	Control uint8 // 控制位, 第2位(0x04)置位表示数据轨.
	LBA     int64 // 轨道起始帧(LBA格式).
}

// TOC 光盘目录(Table Of Contents).
type TOC struct {
	FirstTrack uint8
	LastTrack  uint8
	Entries    []TOCEntry
	LeadOut    int64 // 导出区起始帧.
}

// cdromTOCHeader 对应 struct cdrom_tochdr.
type cdromTOCHeader struct {
	Trk0 uint8
	Trk1 uint8
}

// cdromTOCEntry 对应 struct cdrom_tocentry (LBA格式).
type cdromTOCEntry struct {
	Track    uint8
	AdrCtrl  uint8 // 低4位adr, 高4位ctrl.
	Format   uint8
	_        uint8
	Addr     int32
	DataMode uint8
	_        [3]uint8
}

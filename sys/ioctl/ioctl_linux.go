//go:build linux

package ioctl

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// QueryFileSize 查询文件大小, 块设备通过 BLKGETSIZE64 获取.
func QueryFileSize(fileName string) (size uint64, err error) {
	var errno syscall.Errno
	info, err := os.Stat(fileName)
	if err != nil {
		return 0, err
	}
	if info.Mode()&os.ModeDevice == 0 {
		return uint64(info.Size()), nil
	}
	f, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if runtime.GOARCH == "386" {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, f.Fd(), LinuxIOCTLGetBlockSize, uintptr(unsafe.Pointer(&size)))
		size <<= 9
	} else {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, f.Fd(), LinuxIOCTLGetBlockSize64, uintptr(unsafe.Pointer(&size)))
	}
	if errno != 0 {
		return 0, errno
	}
	return size, nil
}

// ReadTOC 通过 CDROMREADTOCHDR/CDROMREADTOCENTRY 读取光盘目录.
// 非光驱设备将返回错误(通常为ENOTTY或EINVAL).
func ReadTOC(fd uintptr) (*TOC, error) {
	var hdr cdromTOCHeader
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, LinuxIOCTLCDROMReadTOCHeader, uintptr(unsafe.Pointer(&hdr))); errno != 0 {
		return nil, errors.Wrap(errno, "CDROMREADTOCHDR")
	}
	if hdr.Trk1 < hdr.Trk0 {
		return nil, errors.Errorf("invalid track range %d-%d", hdr.Trk0, hdr.Trk1)
	}
	toc := &TOC{FirstTrack: hdr.Trk0, LastTrack: hdr.Trk1}
	readEntry := func(track uint8) (cdromTOCEntry, error) {
		e := cdromTOCEntry{Track: track, Format: CDROMFormatLBA}
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, LinuxIOCTLCDROMReadTOCEntry, uintptr(unsafe.Pointer(&e))); errno != 0 {
			return e, errors.Wrapf(errno, "CDROMREADTOCENTRY track %d", track)
		}
		return e, nil
	}
	for t := int(hdr.Trk0); t <= int(hdr.Trk1); t++ {
		e, err := readEntry(uint8(t))
		if err != nil {
			return nil, err
		}
		toc.Entries = append(toc.Entries, TOCEntry{Track: uint8(t), Control: e.AdrCtrl >> 4, LBA: int64(e.Addr)})
	}
	e, err := readEntry(CDROMLeadOut)
	if err != nil {
		return nil, err
	}
	toc.LeadOut = int64(e.Addr)
	return toc, nil
}

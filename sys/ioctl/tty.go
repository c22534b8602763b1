package ioctl

import "golang.org/x/term"

// IsTTY 若文件描述符指向终端设备, 则返回true.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

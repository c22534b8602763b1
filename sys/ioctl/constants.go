package ioctl

const (
	LinuxIOCTLGetBlockSize   = 0x00001260
	LinuxIOCTLGetBlockSize64 = 0x80081272 // 获取设备大小.
)

// 光驱相关, 见 linux/cdrom.h.
const (
	LinuxIOCTLCDROMReadTOCHeader = 0x5305
	LinuxIOCTLCDROMReadTOCEntry  = 0x5306

	CDROMFormatLBA = 0x01
	CDROMLeadOut   = 0xAA
)

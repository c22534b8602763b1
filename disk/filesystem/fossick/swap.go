package fossick

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
)

// swap v2 头部位于偏移1024处.
const (
	swapHeaderOff   = 1024
	swapVersionOff  = swapHeaderOff
	swapLastPageOff = swapHeaderOff + 4
	swapUUIDOff     = swapHeaderOff + 12
	swapLabelOff    = swapHeaderOff + 28
	swapLabelLen    = 16
)

// DetectSwap 检测Linux swap区. 签名位于首页的末尾10字节, 依次尝试常见页大小.
func DetectSwap(a *detect.Analyzer, sec source.Section, level int) {
	for _, pageSize := range SwapPageSizes {
		magic := string(sec.Buffer(pageSize-10, 10))
		switch magic {
		case SwapMagicV1:
			a.Out.Line(level, "Linux swap, version 1, %s pages", util.FormatSize(uint64(pageSize)))
			addFilesystem(a, level, LinuxSwap)
			a.Log.SetInt("version", 1)
			a.Log.SetInt("page_size", pageSize)
			return
		case SwapMagicV2:
			reportSwapV2(a, sec, level, pageSize)
			return
		}
	}
}

func reportSwapV2(a *detect.Analyzer, sec source.Section, level int, pageSize int64) {
	hdr := sec.Buffer(swapHeaderOff, 512)
	if len(hdr) < 512 {
		return
	}
	var order binary.ByteOrder = binary.LittleEndian
	little := true
	if order.Uint32(hdr) != 1 && binary.BigEndian.Uint32(hdr) == 1 {
		order, little = binary.BigEndian, false
	}
	subVersion := order.Uint32(hdr[swapVersionOff-swapHeaderOff:])
	lastPage := order.Uint32(hdr[swapLastPageOff-swapHeaderOff:])

	a.Out.Line(level, "Linux swap, version 2, subversion %d, %s pages, %s endian",
		subVersion, util.FormatSize(uint64(pageSize)), endianName(little))
	addFilesystem(a, level, LinuxSwap)
	a.Log.SetInt("version", 2)
	a.Log.SetUint("sub_version", uint64(subVersion))
	a.Log.SetInt("page_size", pageSize)
	a.Log.SetUint("swap_size", uint64(lastPage)*uint64(pageSize))
	a.Log.SetEndianness(little)

	a.Out.Line(level+1, "Swap size %s", util.FormatBlockySize(uint64(lastPage), uint32(pageSize), "pages", ""))
	if label := util.GetString(hdr[swapLabelOff-swapHeaderOff:], swapLabelLen); label != "" {
		a.Out.Line(level+1, "Volume name \"%s\"", label)
		a.Log.Set("volume_name", label)
	}
	if uuid := hdr[swapUUIDOff-swapHeaderOff : swapUUIDOff-swapHeaderOff+16]; !util.AllBytes(uuid, 0) {
		a.Out.Line(level+1, "UUID %s", util.FormatUUID(uuid))
		a.Log.Set("UUID", util.FormatUUID(uuid))
	}
}

package optical

import (
	"encoding/binary"
	"fmt"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/disk/table"
	"github.com/kisun-bit/disktype/util"
)

// 引导目录表项标记.
const (
	catalogEntrySize      = 32
	catalogEntriesPerSect = SectorSize / catalogEntrySize

	entryBootable      = 0x88
	entryNotBootable   = 0x00
	entryExtension     = 0x44
	entrySectionHeader = 0x90
	entryFinalSection  = 0x91
)

// ElToritoPlatformName 返回El Torito平台标识的名称.
func ElToritoPlatformName(id byte) string {
	switch id {
	case 0:
		return "x86"
	case 1:
		return "PowerPC"
	case 2:
		return "Macintosh"
	case 0xEF:
		return "EFI"
	}
	return "unknown"
}

// ElToritoMediaName 返回引导项仿真类型(低4位)的名称.
func ElToritoMediaName(media byte) string {
	switch media {
	case 0:
		return "non-emulated"
	case 1:
		return "1.2M floppy"
	case 2:
		return "1.44M floppy"
	case 3:
		return "2.88M floppy"
	case 4:
		return "hard disk"
	}
	return fmt.Sprintf("reserved type %d", media)
}

// dumpBootCatalog 解析位于pos处的El Torito引导目录.
//
// 目录由32字节的表项组成: 首项为校验项, 第二项为初始/默认引导项,
// 其后为若干节头(0x90/0x91), 每个节头声明随后的引导项个数.
// 0x44扩展项不占用节头声明的数量.
func dumpBootCatalog(a *detect.Analyzer, sec source.Section, level int, pos int64) {
	buf := sec.Buffer(pos, SectorSize)
	if len(buf) < SectorSize {
		return
	}
	if buf[0] != 0x01 || buf[30] != 0x55 || buf[31] != 0xAA {
		a.Out.Line(level, "Validation entry missing")
		return
	}
	platform := buf[1]

	maxEntry := 2
	for entry := 1; entry < maxEntry+1; entry++ {
		if entry%catalogEntriesPerSect == 0 {
			buf = sec.Buffer(pos+int64(entry/catalogEntriesPerSect)*SectorSize, SectorSize)
			if len(buf) < SectorSize {
				return
			}
		}
		off := (entry * catalogEntrySize) % SectorSize
		tag := buf[off]

		// 没有节头的连续引导项.
		if entry >= maxEntry {
			if tag != entryBootable {
				break
			}
			maxEntry++
		}

		if entry == 1 {
			if tag != entryBootable && tag != entryNotBootable {
				a.Out.Line(level, "Initial/Default entry missing")
				break
			}
			if next := buf[off+catalogEntrySize]; next == entrySectionHeader || next == entryFinalSection {
				maxEntry = 3
			}
		}

		switch tag {
		case entryBootable, entryNotBootable:
			reportBootEntry(a, sec, level, platform, buf[off:off+catalogEntrySize])
		case entryExtension:
			maxEntry++
		case entrySectionHeader, entryFinalSection:
			platform = buf[off+1]
			maxEntry = entry + 1 + int(binary.LittleEndian.Uint16(buf[off+2:]))
			if tag == entrySectionHeader {
				maxEntry++
			}
		default:
			a.Out.Line(level, "Unknown entry type 0x%02X", tag)
			return
		}
	}
}

func reportBootEntry(a *detect.Analyzer, sec source.Section, level int, platform byte, e []byte) {
	bootable := e[0] == entryBootable
	media := e[1] & 15
	systemType := e[4]
	preload := binary.LittleEndian.Uint16(e[6:])
	start := int64(binary.LittleEndian.Uint32(e[8:]))

	state := "Non-bootable"
	if bootable {
		state = "Bootable"
	}
	a.Out.Line(level, "%s %s image, starts at %d, preloads %s",
		state, ElToritoMediaName(media), start, util.FormatSize(uint64(preload)*512))
	a.Out.Line(level+1, "Platform 0x%02X (%s), System Type 0x%02X (%s)",
		platform, ElToritoPlatformName(platform), systemType, table.MBRTypeName(systemType))

	a.Log.Add(level, "Disk Image", "Q592312")
	a.Log.SetBool("bootable", bootable)
	switch media {
	case 0:
		a.Log.Set("source", "non-emulated")
	case 1:
		a.Log.Set("source", "floppy")
		a.Log.Set("floppy_size", "1.2")
	case 2:
		a.Log.Set("source", "floppy")
		a.Log.Set("floppy_size", "1.44")
	case 3:
		a.Log.Set("source", "floppy")
		a.Log.Set("floppy_size", "2.88")
	case 4:
		a.Log.Set("source", "hard_disk")
	default:
		a.Log.Set("source", "unknown")
	}
	a.Log.SetInt("start_sector", start)
	a.Log.Set("platform", ElToritoPlatformName(platform))
	a.Log.Set("mbr_type", table.MBRTypeName(systemType))

	if start > 0 {
		a.Recurse(sec, level+1, start*SectorSize, 0, 0)
	}
}

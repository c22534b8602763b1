package fossick

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
)

// DetectBtrfs 检测Btrfs文件系统, 超级块位于64 KiB处.
func DetectBtrfs(a *detect.Analyzer, sec source.Section, level int) {
	sb := sec.Buffer(BTRFSSuperBlockOff, 0x1000)
	if len(sb) < 0x1000 || string(sb[BTRFSMagicOff:BTRFSMagicOff+8]) != BTRFSMagic {
		return
	}
	uuid := util.FormatUUID(sb[0x20:0x30])
	total := binary.LittleEndian.Uint64(sb[0x70:])
	sectorSize := binary.LittleEndian.Uint32(sb[0x90:])
	label := util.GetString(sb[0x12B:], 256)

	a.Out.Line(level, "Btrfs file system")
	addFilesystem(a, level, BTRFS)
	if label != "" {
		a.Out.Line(level+1, "Volume name \"%s\"", label)
		a.Log.Set("volume_name", label)
	}
	a.Out.Line(level+1, "UUID %s", uuid)
	a.Log.Set("UUID", uuid)
	a.Out.Line(level+1, "Volume size %s", util.FormatSizeVerbose(total))
	a.Log.SetUint("volume_size", total)
	a.Log.SetUint("block_size", uint64(sectorSize))
}

// DetectJFS 检测IBM JFS文件系统, 超级块位于32 KiB处.
func DetectJFS(a *detect.Analyzer, sec source.Section, level int) {
	sb := sec.Buffer(JFSSuperBlockOff, 512)
	if len(sb) < 512 || string(sb[:4]) != JFSMagic {
		return
	}
	version := binary.LittleEndian.Uint32(sb[4:])
	blocks := binary.LittleEndian.Uint64(sb[8:])
	blockSize := binary.LittleEndian.Uint32(sb[24:])

	a.Out.Line(level, "JFS file system, version %d", version)
	addFilesystem(a, level, JFS)
	a.Log.SetUint("version", uint64(version))
	a.Out.Line(level+1, "Volume size %s", util.FormatBlockySize(blocks, blockSize, "blocks", ""))
	a.Log.SetUint("volume_size", blocks*uint64(blockSize))
	a.Log.SetUint("block_size", uint64(blockSize))
}

// DetectZFS 检测ZFS存储池成员. 检查label0中首个uberblock的魔数, 字节序由魔数确定.
func DetectZFS(a *detect.Analyzer, sec source.Section, level int) {
	ub := sec.Buffer(ZFSUberblockOff, 16)
	if len(ub) < 16 {
		return
	}
	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint64(ub) == ZFSUberblockMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint64(ub) == ZFSUberblockMagic:
		order = binary.BigEndian
	default:
		return
	}
	little := order == binary.LittleEndian
	version := order.Uint64(ub[8:])

	a.Out.Line(level, "ZFS file system, version %d, %s endian", version, endianName(little))
	addFilesystem(a, level, ZFS)
	a.Log.SetUint("version", version)
	a.Log.SetEndianness(little)
}

// DetectAPFS 检测APFS容器超级块.
func DetectAPFS(a *detect.Analyzer, sec source.Section, level int) {
	sb := sec.Buffer(0, 0x30)
	if len(sb) < 0x30 || string(sb[APFSMagicOff:APFSMagicOff+4]) != APFSMagic {
		return
	}
	blockSize := binary.LittleEndian.Uint32(sb[0x24:])
	blocks := binary.LittleEndian.Uint64(sb[0x28:])

	a.Out.Line(level, "APFS container")
	addFilesystem(a, level, APFS)
	a.Out.Line(level+1, "Volume size %s", util.FormatBlockySize(blocks, blockSize, "blocks", ""))
	a.Log.SetUint("volume_size", blocks*uint64(blockSize))
	a.Log.SetUint("block_size", uint64(blockSize))
}

// DetectOracleASM 检测Oracle ASM磁盘头.
func DetectOracleASM(a *detect.Analyzer, sec source.Section, level int) {
	hdr := sec.Buffer(0, 0x68)
	if len(hdr) < 0x68 || string(hdr[OracleDiskMagicOff:OracleDiskMagicOff+8]) != OracleDiskMagic {
		return
	}
	name := util.GetString(hdr[0x48:], 32)

	a.Out.Line(level, "Oracle ASM disk")
	addFilesystem(a, level, OracleASM)
	if name != "" {
		a.Out.Line(level+1, "Disk name \"%s\"", name)
		a.Log.Set("volume_name", name)
	}
}

package fossick

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
)

// DetectSquashFS 检测Linux squashfs. 魔数的字节序即文件系统的字节序.
func DetectSquashFS(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 96)
	if len(buf) < 96 {
		return
	}
	var order binary.ByteOrder
	switch string(buf[:4]) {
	case SquashMagicLE:
		order = binary.LittleEndian
	case SquashMagicBE:
		order = binary.BigEndian
	default:
		return
	}
	little := order == binary.LittleEndian
	major, minor := order.Uint16(buf[28:]), order.Uint16(buf[30:])

	var blockSize, compressed uint64
	if major >= 4 {
		blockSize = uint64(order.Uint32(buf[12:]))
		compressed = order.Uint64(buf[40:])
	} else {
		blockSize = uint64(order.Uint16(buf[32:]))
		compressed = uint64(order.Uint32(buf[8:]))
	}

	a.Out.Line(level, "Linux squashfs, version %d.%d, %s endian", major, minor, endianName(little))
	addFilesystem(a, level, SquashFS)
	a.Log.SetUint("version", uint64(major))
	a.Log.SetUint("minor_version", uint64(minor))
	a.Log.SetEndianness(little)
	a.Log.SetUint("block_size", blockSize)
	a.Log.SetUint("compressed_size", compressed)
	a.Out.Line(level+1, "Compressed size %s", util.FormatSizeVerbose(compressed))
	a.Out.Line(level+1, "Block size %s", util.FormatSize(blockSize))
}

// DetectCramFS 检测Linux cramfs.
func DetectCramFS(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 64)
	if len(buf) < 64 || string(buf[16:32]) != CramFSSignature {
		return
	}
	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(buf) == CramFSMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(buf) == CramFSMagic:
		order = binary.BigEndian
	default:
		return
	}
	little := order == binary.LittleEndian
	size := uint64(order.Uint32(buf[4:]))
	name := util.GetString(buf[48:], 16)

	a.Out.Line(level, "Linux cramfs, %s endian", endianName(little))
	addFilesystem(a, level, CramFS)
	a.Log.SetEndianness(little)
	a.Log.SetInt("block_size", 4096)
	if name != "" {
		a.Out.Line(level+1, "Volume name \"%s\"", name)
		a.Log.Set("volume_name", name)
	}
	a.Out.Line(level+1, "Compressed size %s", util.FormatSizeVerbose(size))
	a.Log.SetUint("compressed_size", size)
}

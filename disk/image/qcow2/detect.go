package qcow2

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

const wikidataQCOW = "Q1052299"

// DetectQCOW 检测QEMU qcow/qcow2镜像.
// 未加密的qcow2镜像以其虚拟磁盘作为新的源, 在下一层级继续分析.
// 解析出有效的qcow2头部后, 容器本身的原始字节不再交给余下的探测器.
func DetectQCOW(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, HeaderSizeV3)
	if len(buf) < HeaderSizeV1 || string(buf[:4]) != Magic {
		return
	}
	version := binary.BigEndian.Uint32(buf[4:])
	a.Out.Line(level, "QEMU QCOW disk image, version %d", version)
	a.Log.Add(level, "QEMU Copy-On-Write disk image", wikidataQCOW)
	a.Log.SetUint("version", uint64(version))

	if version == 1 {
		h, err := ParseHeaderV1(buf)
		if err != nil {
			a.Out.Line(level+1, "Invalid header (%v)", err)
			return
		}
		a.Out.Line(level+1, "Disk size %s", util.FormatSizeVerbose(h.Size))
		a.Log.SetUint("disk_size", h.Size)
		reportBacking(a, sec, level, h.BackingFileOffset, h.BackingFileSize)
		return
	}

	h, err := ParseHeader(buf)
	if err != nil {
		a.Out.Line(level+1, "Invalid header (%v)", err)
		return
	}
	info := h.Info(reportBacking(a, sec, level, h.BackingFileOffset, h.BackingFileSize))
	logger.Debugf("DetectQCOW %+v", info)

	a.Out.Line(level+1, "Disk size %s", util.FormatSizeVerbose(uint64(info.VirtualSize)))
	a.Out.Line(level+1, "Cluster size %s", util.FormatSize(uint64(info.ClusterSize)))
	a.Log.SetInt("disk_size", info.VirtualSize)
	a.Log.SetInt("cluster_size", int64(info.ClusterSize))
	if info.Snapshots > 0 {
		a.Out.Line(level+1, "%d snapshot(s)", info.Snapshots)
		a.Log.SetInt("snapshots", int64(info.Snapshots))
	}
	if info.DirtyFlag {
		a.Log.SetBool("dirty", true)
	}
	if info.CryptMethod != CryptNone {
		a.Out.Line(level+1, "Encrypted (method %d), contents not analyzed", info.CryptMethod)
		a.Log.SetUint("crypt_method", uint64(info.CryptMethod))
		a.Stop()
		return
	}
	if info.VirtualSize <= 0 {
		return
	}
	m := &clusterMapper{c: sec.Cache, base: sec.Pos, h: h}
	a.AnalyzeLayered(source.NewMapped(sec.Cache, info.VirtualSize, m), level+1)
	a.Stop()
}

// reportBacking 输出后备文件名并返回, 没有后备文件时返回空串.
func reportBacking(a *detect.Analyzer, sec source.Section, level int, off uint64, size uint32) string {
	if off == 0 || size == 0 {
		return ""
	}
	if size > maxBackingNameLen {
		size = maxBackingNameLen
	}
	name := string(sec.Buffer(int64(off), int64(size)))
	if name == "" {
		return ""
	}
	a.Out.Line(level+1, "Backing file \"%s\"", name)
	a.Log.Set("backing_file", name)
	return name
}

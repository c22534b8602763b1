package vpc

import (
	"encoding/binary"
	"strings"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

const wikidataVPC = "Q55357928"

// batMapper 通过块分配表(BAT)将虚拟偏移映射到镜像文件内的偏移.
type batMapper struct {
	c    *source.Cache
	base int64
	h    *DynamicHeader
}

func (m *batMapper) Map(off int64) (int64, int64, bool) {
	bs := int64(m.h.BlockSize)
	block, inBlock := off/bs, off%bs
	n := bs - inBlock
	if block >= int64(m.h.MaxTableEntries) {
		return 0, n, false
	}
	b := m.c.Buffer(m.base+int64(m.h.TableOffset)+block*4, 4)
	if len(b) < 4 {
		return 0, n, false
	}
	sector := binary.BigEndian.Uint32(b)
	if sector == batUnused {
		return 0, n, false
	}
	return m.base + int64(sector)*SectorSize + m.h.BitmapSize() + inBlock, n, true
}

// DetectVPC 检测Virtual PC/VHD镜像.
// 固定镜像的数据即位于偏移0处, 只报告尾部信息; 动态及差分镜像经由BAT映射出虚拟磁盘后在下一层级分析,
// 其容器字节不再交给余下的探测器.
func DetectVPC(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, FooterSize)
	if len(buf) < FooterSize || string(buf[:8]) != FooterCookie {
		avail, known := sec.Available()
		if !known || avail < 2*FooterSize {
			return
		}
		buf = sec.Buffer(avail-FooterSize, FooterSize)
		if len(buf) < FooterSize || string(buf[:8]) != FooterCookie {
			return
		}
	}
	f, err := ParseFooter(buf)
	if err != nil {
		logger.Debugf("DetectVPC footer: %v", err)
		return
	}
	kind := KindName(f.DiskType)
	a.Out.Line(level, "Virtual PC disk image (%s), version %d.%d",
		kind, f.FormatVersion>>16, f.FormatVersion&0xFFFF)
	a.Log.Add(level, "Windows VPC image", wikidataVPC)
	a.Log.Set("kind", kind)
	a.Log.SetUint("disk_size", f.CurrentSize)
	if creator := strings.TrimRight(util.GetString(f.CreatorApplication, 4), " "); creator != "" {
		a.Log.Set("creator", creator)
	}
	a.Out.Line(level+1, "Disk size %s", util.FormatSizeVerbose(f.CurrentSize))
	if Checksum(buf) != f.Checksum {
		a.Out.Line(level+1, "Footer checksum mismatch")
	}
	if f.DiskType != DiskTypeDynamic && f.DiskType != DiskTypeDifferencing {
		return
	}

	h, err := ParseDynamicHeader(sec.Buffer(int64(f.DataOffset), DynamicHeaderSize))
	if err != nil {
		a.Out.Line(level+1, "Invalid dynamic header (%v)", err)
		return
	}
	a.Out.Line(level+1, "Block size %s, %d blocks", util.FormatSize(uint64(h.BlockSize)), h.MaxTableEntries)
	a.Log.SetUint("block_size", uint64(h.BlockSize))
	if f.DiskType == DiskTypeDifferencing {
		parent := util.FormatUTF16BE(h.ParentName)
		a.Out.Line(level+1, "Parent \"%s\"", parent)
		a.Log.Set("parent_name", parent)
	}
	if f.CurrentSize == 0 {
		return
	}
	m := &batMapper{c: sec.Cache, base: sec.Pos, h: h}
	a.AnalyzeLayered(source.NewMapped(sec.Cache, int64(f.CurrentSize), m), level+1)
	a.Stop()
}

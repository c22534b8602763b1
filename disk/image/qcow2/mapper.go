package qcow2

import (
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/source"
)

// clusterMapper 通过L1/L2表将虚拟偏移映射到镜像文件内的偏移.
// 只映射未压缩的普通簇; 压缩簇、零簇及未分配的簇均读作全零.
type clusterMapper struct {
	c    *source.Cache
	base int64 // 镜像在底层源中的起始偏移.
	h    *Header
}

func (m *clusterMapper) entry(off int64) (uint64, bool) {
	b := m.c.Buffer(m.base+off, 8)
	if len(b) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

func (m *clusterMapper) lookup(off int64) qemuMapBlockInfo {
	cs := m.h.ClusterSize()
	inCluster := off & (cs - 1)
	info := qemuMapBlockInfo{DiskOffset: off, Length: cs - inCluster}

	cluster := off >> m.h.ClusterBits
	l1Index := cluster / m.h.L2Entries()
	l2Index := cluster % m.h.L2Entries()
	if l1Index >= int64(m.h.L1Size) {
		return info
	}
	l1, ok := m.entry(int64(m.h.L1TableOffset) + l1Index*8)
	if !ok || l1&l1OffsetMask == 0 {
		return info
	}
	l2, ok := m.entry(int64(l1&l1OffsetMask) + l2Index*8)
	if !ok || l2&l2FlagCompressed != 0 || l2&l2FlagZero != 0 || l2&l2OffsetMask == 0 {
		return info
	}
	info.MappedTo = m.base + int64(l2&l2OffsetMask) + inCluster
	info.Allocated = true
	return info
}

func (m *clusterMapper) Map(off int64) (int64, int64, bool) {
	info := m.lookup(off)
	return info.MappedTo, info.Length, info.Allocated
}

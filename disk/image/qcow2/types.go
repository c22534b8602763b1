package qcow2

const (
	Magic = "QFI\xfb"

	HeaderSizeV1 = 48
	HeaderSizeV2 = 72
	HeaderSizeV3 = 104

	MinClusterBits = 9
	MaxClusterBits = 21

	CryptNone = 0
	CryptAES  = 1
	CryptLUKS = 2

	l1OffsetMask      = 0x00fffffffffffe00
	l2OffsetMask      = 0x00fffffffffffe00
	l2FlagCompressed  = uint64(1) << 62
	l2FlagZero        = uint64(1)
	maxBackingNameLen = 1023
)

// HeaderV1 qcow(版本1)头部, 所有字段均为大端序.
type HeaderV1 struct {
	Magic             []byte `struc:"[4]byte"`
	Version           uint32 `struc:"uint32"`
	BackingFileOffset uint64 `struc:"uint64"`
	BackingFileSize   uint32 `struc:"uint32"`
	MTime             uint32 `struc:"uint32"`
	Size              uint64 `struc:"uint64"`
	ClusterBits       uint8  `struc:"uint8"`
	L2Bits            uint8  `struc:"uint8"`
	Pad               uint16 `struc:"uint16"`
	CryptMethod       uint32 `struc:"uint32"`
	L1TableOffset     uint64 `struc:"uint64"`
}

// Header qcow2(版本2/3)头部, 所有字段均为大端序.
// 版本2的头部止于 SnapshotsOffset.
type Header struct {
	Magic                 []byte `struc:"[4]byte"` // 0x00.
	Version               uint32 `struc:"uint32"`  // 0x04.
	BackingFileOffset     uint64 `struc:"uint64"`  // 0x08.
	BackingFileSize       uint32 `struc:"uint32"`  // 0x10.
	ClusterBits           uint32 `struc:"uint32"`  // 0x14.
	Size                  uint64 `struc:"uint64"`  // 0x18, 虚拟磁盘大小.
	CryptMethod           uint32 `struc:"uint32"`  // 0x20.
	L1Size                uint32 `struc:"uint32"`  // 0x24.
	L1TableOffset         uint64 `struc:"uint64"`  // 0x28.
	RefcountTableOffset   uint64 `struc:"uint64"`  // 0x30.
	RefcountTableClusters uint32 `struc:"uint32"`  // 0x38.
	NbSnapshots           uint32 `struc:"uint32"`  // 0x3C.
	SnapshotsOffset       uint64 `struc:"uint64"`  // 0x40.
	IncompatibleFeatures  uint64 `struc:"uint64"`  // 0x48, 仅版本3.
	CompatibleFeatures    uint64 `struc:"uint64"`  // 0x50, 仅版本3.
	AutoclearFeatures     uint64 `struc:"uint64"`  // 0x58, 仅版本3.
	RefcountOrder         uint32 `struc:"uint32"`  // 0x60, 仅版本3.
	HeaderLength          uint32 `struc:"uint32"`  // 0x64, 仅版本3.
}

// ImgGeneralInfo 镜像的概要信息.
type ImgGeneralInfo struct {
	Version         int
	VirtualSize     int64
	ClusterSize     int
	BackingFilename string
	CryptMethod     uint32
	Snapshots       int
	DirtyFlag       bool
}

// qemuMapBlockInfo 一段连续的虚拟地址映射.
type qemuMapBlockInfo struct {
	DiskOffset, Length, MappedTo int64
	Allocated                    bool
}

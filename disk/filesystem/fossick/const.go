package fossick

const (
	Ext2       Filesystem = "Ext2"
	Ext3       Filesystem = "Ext3"
	Ext4       Filesystem = "Ext4"
	ExtJournal Filesystem = "Ext3 external journal"
	XFS        Filesystem = "XFS"
	NTFS       Filesystem = "NTFS"
	FAT12      Filesystem = "FAT12"
	FAT16      Filesystem = "FAT16"
	FAT32      Filesystem = "FAT32"
	ExFAT      Filesystem = "ExFAT"
	BTRFS      Filesystem = "Btrfs"
	JFS        Filesystem = "Journaled File System"
	ZFS        Filesystem = "ZFS"
	APFS       Filesystem = "APFS"
	OracleASM  Filesystem = "Oracle ASM disk"
	LinuxSwap  Filesystem = "Linux swap"
	SquashFS   Filesystem = "Linux squashfs"
	CramFS     Filesystem = "Linux cramfs"
)

const (
	ExFATMagic      = "EXFAT   "
	BTRFSMagic      = "_BHRfS_M"
	JFSMagic        = "JFS1"
	APFSMagic       = "NXSB"
	OracleDiskMagic = "ORCLDISK"
	SwapMagicV1     = "SWAP-SPACE"
	SwapMagicV2     = "SWAPSPACE2"
	SquashMagicLE   = "hsqs"
	SquashMagicBE   = "sqsh"
	CramFSSignature = "Compressed ROMFS"

	ZFSUberblockMagic = 0x00bab10c
	CramFSMagic       = 0x28cd3d45
)

const (
	BTRFSSuperBlockOff  = 0x10000
	BTRFSMagicOff       = 0x40
	JFSSuperBlockOff    = 0x8000
	ZFSUberblockOff     = 0x20000 // label0 中的首个uberblock.
	APFSMagicOff        = 0x20
	OracleDiskMagicOff  = 0x20
	FATMinClusters16    = 4085
	FATMinClusters32    = 65525
	FATHintsMaxScore    = 5
	FATMinimumHintScore = 3
)

// SwapPageSizes 依次尝试的swap页大小.
var SwapPageSizes = []int64{4096, 8192, 16384, 65536}

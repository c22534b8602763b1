package table

const (
	AmigaRDBSignature     = "RDSK"
	AmigaPartSignature    = "PART"
	AmigaRDBScanBlocks    = 16
	AmigaBlockSize        = 512
	AmigaPartBlockSize    = 256
	AmigaPartListEnd      = 0xffffffff
	AmigaMinimumBlockSize = 256
	AmigaFloppyDDSize     = 512 * 11 * 2 * 80
	AmigaFloppyHDSize     = 512 * 22 * 2 * 80
)

// AmigaProperty dostype对应的固定属性.
type AmigaProperty struct {
	Key   string
	Value string
}

// AmigaType 一个可识别的Amiga dostype.
type AmigaType struct {
	Code       [4]byte
	FileSystem bool // 原生Amiga文件系统, 影响位于引导扇区起始处时的输出.
	Name       string
	Wikidata   string
	Properties []AmigaProperty
}

var (
	intlTrue       = AmigaProperty{"intl", "true"}
	intlFalse      = AmigaProperty{"intl", "false"}
	dirCacheTrue   = AmigaProperty{"dir_cache", "true"}
	dirCacheFalse  = AmigaProperty{"dir_cache", "false"}
	multiuserTrue  = AmigaProperty{"multiuser", "true"}
	multiuserFalse = AmigaProperty{"multiuser", "false"}
	longFileNames  = AmigaProperty{"long_file_names", "true"}
	version0       = AmigaProperty{"version", "0"}
	version1       = AmigaProperty{"version", "1"}
	version2       = AmigaProperty{"version", "2"}
	version3       = AmigaProperty{"version", "3"}
	scsiDirect     = AmigaProperty{"SCSI_direct", "true"}
	kindRoot       = AmigaProperty{"kind", "root"}
	kindSwap       = AmigaProperty{"kind", "swap"}
	kindOther      = AmigaProperty{"kind", "other"}
	experimental   = AmigaProperty{"experimental", "true"}
)

const (
	amigaOFS = "Amiga Old File System"
	amigaFFS = "Amiga Fast File System"
	amigaPFS = "Amiga Professional File System"

	wdOFS = "Q4746198"
	wdFFS = "Q370047"
	wdPFS = "Q7247965"
)

func amigaCode(s string) (c [4]byte) {
	copy(c[:], s)
	return c
}

// AmigaTypes 已知dostype列表, 基于 Ambient 文件管理器的dostype清单.
// 查找时按顺序比较4字节类型码, 以首个匹配为准.
var AmigaTypes = []AmigaType{
	{amigaCode("DOS\x00"), true, amigaOFS, wdOFS, []AmigaProperty{intlFalse, multiuserFalse}},
	{amigaCode("DOS\x01"), true, amigaFFS, wdFFS, []AmigaProperty{intlFalse, multiuserFalse}},
	{amigaCode("DOS\x02"), true, amigaOFS, wdOFS, []AmigaProperty{intlTrue, multiuserFalse, dirCacheFalse}},
	{amigaCode("DOS\x03"), true, amigaFFS, wdFFS, []AmigaProperty{intlTrue, multiuserFalse, dirCacheFalse}},
	{amigaCode("DOS\x04"), true, amigaOFS, wdOFS, []AmigaProperty{intlTrue, multiuserFalse, dirCacheTrue}},
	{amigaCode("DOS\x05"), true, amigaFFS, wdFFS, []AmigaProperty{intlTrue, multiuserFalse, dirCacheTrue}},
	{amigaCode("DOS\x06"), true, amigaOFS, wdOFS, []AmigaProperty{multiuserFalse, longFileNames}},
	{amigaCode("DOS\x07"), true, amigaFFS, wdFFS, []AmigaProperty{multiuserFalse, longFileNames}},

	// muFS
	{amigaCode("muFS"), true, amigaFFS, wdFFS, []AmigaProperty{intlTrue, multiuserTrue, dirCacheFalse}},
	{amigaCode("muF\x00"), true, amigaOFS, wdOFS, []AmigaProperty{intlFalse, multiuserTrue}},
	{amigaCode("muF\x01"), true, amigaFFS, wdFFS, []AmigaProperty{intlFalse, multiuserTrue}},
	{amigaCode("muF\x02"), true, amigaOFS, wdOFS, []AmigaProperty{intlTrue, multiuserTrue, dirCacheFalse}},
	{amigaCode("muF\x03"), true, amigaFFS, wdFFS, []AmigaProperty{intlTrue, multiuserTrue, dirCacheFalse}},
	{amigaCode("muF\x04"), true, amigaOFS, wdOFS, []AmigaProperty{intlTrue, multiuserTrue, dirCacheTrue}},
	{amigaCode("muF\x05"), true, amigaFFS, wdFFS, []AmigaProperty{intlTrue, multiuserTrue, dirCacheTrue}},

	{amigaCode("SFS\x00"), true, "Amiga Smart File System", "Q1054031", nil},

	// PFS
	{amigaCode("PFS\x00"), true, amigaPFS, wdPFS, []AmigaProperty{version0}},
	{amigaCode("PFS\x01"), true, amigaPFS, wdPFS, []AmigaProperty{version1}},
	{amigaCode("PFS\x02"), true, amigaPFS, wdPFS, []AmigaProperty{version2}},
	{amigaCode("PFS\x03"), true, amigaPFS, wdPFS, []AmigaProperty{version3}},
	{amigaCode("PDS\x02"), true, amigaPFS, wdPFS, []AmigaProperty{version2, scsiDirect}},
	{amigaCode("PDS\x03"), true, amigaPFS, wdPFS, []AmigaProperty{version3, scsiDirect}},
	{amigaCode("muPF"), true, amigaPFS, wdPFS, []AmigaProperty{multiuserTrue}},

	{amigaCode("AFS\x00"), true, "Amiga Ami-File-Safe", "Q55340903", nil},
	{amigaCode("AFS\x01"), true, "Amiga Ami-File-Safe", "Q55340903", []AmigaProperty{experimental}},
	{amigaCode("UNI\x00"), false, "Amiga Unix", "Q295179", nil},
	{amigaCode("UNI\x01"), false, "Amiga Unix", "Q295179", nil},
	{amigaCode("KICK"), true, "Boot disk", "Q893130", nil},
	{amigaCode("BOOU"), true, "Boot disk", "Q893130", nil},

	// CD-ROM
	{amigaCode("CD00"), false, "High Sierra format", "Q5756978", nil},
	{amigaCode("CD01"), false, "ISO9660", "Q55336682", nil},
	{amigaCode("CDDA"), false, "Audio CD", "Q1121020", nil},
	{amigaCode("CDFS"), false, "CD-ROM", "Q7982", nil},
	{amigaCode("\x66\x2d\xab\xac"), false, "CD-ROM", "Q7982", nil}, // AsimCDFS

	// NetBSD
	{amigaCode("NBR\x07"), false, "NetBSD", "Q34225", []AmigaProperty{kindRoot}},
	{amigaCode("NBS\x01"), false, "NetBSD", "Q34225", []AmigaProperty{kindSwap}},
	{amigaCode("NBU\x07"), false, "NetBSD", "Q34225", []AmigaProperty{kindOther}},

	// Linux
	{amigaCode("LNX\x00"), false, "Linux", "Q388", nil},
	{amigaCode("EXT2"), false, "Ext2", "Q283527", nil},
	{amigaCode("SWAP"), false, "Linux swap", "Q779098", nil},
	{amigaCode("SWP\x00"), false, "Linux swap", "Q779098", nil},
	{amigaCode("MNX\x00"), false, "MINIX", "Q685924", nil},

	{amigaCode("MAC\x00"), false, "Apple HFS", "Q1058465", nil},
	{amigaCode("MSD\x00"), false, "MS-DOS", "Q47604", nil},
	{amigaCode("MSH\x00"), false, "MS-DOS", "Q47604", nil}, // PC-Task hardfile
	{amigaCode("BFFS"), false, "Berkeley Fast Filesystem", "Q2704864", nil},
}

// AmigaUnknownType 未知类型码的查找结果.
var AmigaUnknownType = AmigaType{Name: "Unknown"}

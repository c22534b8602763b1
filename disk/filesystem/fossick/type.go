package fossick

// Filesystem 文件系统类型, 取值即内容对象的类型名.
type Filesystem string

func (fs_ Filesystem) String() string {
	return string(fs_)
}

// Wikidata 返回文件系统类型对应的Wikidata标识, 未登记时返回空串.
func (fs_ Filesystem) Wikidata() string {
	return wikidataIDs[fs_]
}

var wikidataIDs = map[Filesystem]string{
	Ext2:       "Q283527",
	Ext3:       "Q283390",
	Ext4:       "Q283827",
	ExtJournal: "Q55505629",
	XFS:        "Q394011",
	NTFS:       "Q183205",
	FAT12:      "Q3063042",
	FAT16:      "Q3141148",
	FAT32:      "Q2622047",
	ExFAT:      "Q306233",
	BTRFS:      "Q283820",
	JFS:        "Q1455872",
	ZFS:        "Q284451",
	APFS:       "Q2033",
	OracleASM:  "Q7099364",
	LinuxSwap:  "Q779098",
	SquashFS:   "Q389314",
	CramFS:     "Q747406",
}

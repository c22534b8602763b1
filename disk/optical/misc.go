package optical

import (
	"bytes"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
)

var (
	dreamcastMagic = []byte("SEGA SEGAKATANA SEGA ENTERPRISES")
	operaMagic     = []byte("\x01\x5a\x5a\x5a\x5a\x5a\x01\x00")
	xboxMagic      = []byte("MICROSOFT*XBOX*MEDIA")
)

// DetectCDROMMisc 检测其他光盘格式: 世嘉Dreamcast, 3DO(Opera), Xbox DVD(FATX).
func DetectCDROMMisc(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, SectorSize)
	if len(buf) < SectorSize {
		return
	}
	if bytes.HasPrefix(buf, dreamcastMagic) {
		a.Out.Line(level, "Sega Dreamcast signature")
	}
	if bytes.HasPrefix(buf, operaMagic) && bytes.HasPrefix(buf[0x28:], []byte("CD-ROM")) {
		a.Out.Line(level, "3DO CD-ROM file system")
		a.Log.Add(level, "Opera file system", "Q7096591")
	}

	buf = sec.Buffer(32*SectorSize, SectorSize)
	if len(buf) < SectorSize {
		return
	}
	if bytes.HasPrefix(buf, xboxMagic) && bytes.HasPrefix(buf[0x7EC:], xboxMagic) {
		a.Out.Line(level, "Xbox DVD file system")
		a.Log.Add(level, "FATX", "Q25397999")
	}
}

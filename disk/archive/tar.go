package archive

import (
	"archive/tar"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
)

const (
	tarMagicOff = 257
	tarPOSIX    = "ustar\x0000"
	tarGNU      = "ustar  \x00"
)

// DetectTar 检测tar归档, 报告首个成员名.
func DetectTar(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(tarMagicOff, 8)
	if len(buf) < 8 {
		return
	}
	switch string(buf) {
	case tarPOSIX:
		a.Out.Line(level, "POSIX tar archive")
	case tarGNU:
		a.Out.Line(level, "GNU tar archive")
	default:
		return
	}
	a.Log.Add(level, "Tar", "Q283579")

	hdr, err := tar.NewReader(sectionStream(sec)).Next()
	if err != nil {
		a.Out.Line(level+1, "Invalid member header (%v)", err)
		return
	}
	a.Out.Line(level+1, "First member \"%s\", %d bytes", hdr.Name, hdr.Size)
	a.Log.Set("first_member", hdr.Name)
}

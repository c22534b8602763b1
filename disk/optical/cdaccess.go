package optical

import (
	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/sys/ioctl"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

const (
	FramesPerSecond = 75   // 每秒帧数, 一帧对应一个扇区.
	LeadInFrames    = 150  // 导入区偏移(2秒).
	MaxTracks       = 99   // 光盘轨道数上限.
	AudioSectorSize = 2352 // 音轨每扇区字节数.
	PostGapFrames   = 250  // 数据轨末尾跳过的帧数, 以避开填充及后间隙.

	controlDataTrack = 0x04
)

// Track 光盘目录中的一条轨道.
type Track struct {
	Number  int
	Frame   int64 // 起始帧(LBA).
	Control byte
}

// IsData 若为数据轨, 则返回true.
func (t Track) IsData() bool {
	return t.Control&controlDataTrack != 0
}

// TOC 光盘目录.
type TOC struct {
	Tracks  []Track
	LeadOut int64
}

// Frames 返回各轨道起始帧, 末尾追加导出区起始帧.
func (toc *TOC) Frames() []int64 {
	frames := make([]int64, 0, len(toc.Tracks)+1)
	for _, t := range toc.Tracks {
		frames = append(frames, t.Frame)
	}
	return append(frames, toc.LeadOut)
}

// Length 返回第i条轨道的帧数.
func (toc *TOC) Length(i int) int64 {
	if i+1 < len(toc.Tracks) {
		return toc.Tracks[i+1].Frame - toc.Tracks[i].Frame
	}
	return toc.LeadOut - toc.Tracks[i].Frame
}

// NewTOC 由ioctl读取的目录构造TOC.
func NewTOC(raw *ioctl.TOC) *TOC {
	toc := &TOC{LeadOut: raw.LeadOut}
	for _, e := range raw.Entries {
		toc.Tracks = append(toc.Tracks, Track{Number: int(e.Track), Frame: e.LBA, Control: e.Control})
	}
	return toc
}

func framesToSeconds(frame int64) int64 {
	return (frame + LeadInFrames) / FramesPerSecond
}

func digitSum(n int64) int64 {
	var ret int64
	for n > 0 {
		ret += n % 10
		n /= 10
	}
	return ret
}

// DiskID 计算CDDB光盘标识. frames 为各轨道起始帧, 最后一项为导出区起始帧.
// 轨道数超过99或缺少导出区时返回0.
func DiskID(frames []int64) uint32 {
	ntracks := len(frames) - 1
	if ntracks < 1 || ntracks > MaxTracks {
		return 0
	}
	var cksum int64
	for _, f := range frames[:ntracks] {
		cksum += digitSum(framesToSeconds(f))
	}
	total := framesToSeconds(frames[ntracks]) - framesToSeconds(frames[0])
	return uint32(cksum%0xFF)<<24 | uint32(total)<<8 | uint32(ntracks)
}

// AnalyzeTOC 输出光盘目录信息, 并分析各数据轨.
func AnalyzeTOC(a *detect.Analyzer, c *source.Cache, toc *TOC, level int) {
	ntracks := len(toc.Tracks)
	id := DiskID(toc.Frames())
	plural := "s"
	if ntracks == 1 {
		plural = ""
	}
	a.Out.Line(level, "CD-ROM, %d track%s, CDDB disk ID %08X", ntracks, plural, id)
	a.Log.Add(level, "CD-ROM", "Q7982")
	a.Log.SetInt("number_of_tracks", int64(ntracks))
	a.Log.Setf("disk_ID", "%08X", id)

	for i, t := range toc.Tracks {
		length := toc.Length(i)
		if !t.IsData() {
			seconds := length / FramesPerSecond
			a.Log.Add(level, "Audio track", "Q7302866")
			a.Log.SetInt("seconds", seconds)
			a.Log.SetInt("number", int64(t.Number))
			a.Log.SetUint("size", uint64(length)*AudioSectorSize)
			a.Out.Line(level, "Track %d: Audio track, %s, %3d min %02d sec",
				t.Number, util.FormatSize(uint64(length)*AudioSectorSize), seconds/60, seconds%60)
			continue
		}

		a.Log.Add(level, "Track", "Q7831478")
		a.Log.SetInt("number", int64(t.Number))
		a.Log.SetUint("size", uint64(length)*SectorSize)
		a.Out.Line(level, "Track %d: Data track, %s", t.Number, util.FormatSize(uint64(length)*SectorSize))
		if length > PostGapFrames {
			a.AnalyzeSourceSpecial(c, level+1, t.Frame*SectorSize, (length-PostGapFrames)*SectorSize)
		}
	}
}

// TOCHook 对光驱设备通过ioctl读取目录, 成功时按轨道分析并接管整个源.
func TOCHook(a *detect.Analyzer, c *source.Cache, level int) bool {
	f, ok := c.Source().(*source.File)
	if !ok || (f.Kind() != source.KindBlock && f.Kind() != source.KindChar) {
		return false
	}
	raw, err := ioctl.ReadTOC(f.Fd())
	if err != nil {
		logger.Debugf("TOCHook %s: %v", f.Name(), err)
		return false
	}
	if len(raw.Entries) == 0 || len(raw.Entries) > MaxTracks {
		return false
	}
	AnalyzeTOC(a, c, NewTOC(raw), level)
	return true
}

package archive

import (
	"compress/bzip2"
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/kisun-bit/disktype/disk/source"
	"github.com/kisun-bit/disktype/util/logger"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	zstdFrameMagic = 0xFD2FB528
	lz4FrameMagic  = 0x184D2204
	bzip2BlockTag  = "1AY&SY" // 0x314159265359.
)

// DetectGzip 检测gzip压缩数据, 并分析解压后的内容.
func (d Decompressor) DetectGzip(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 10)
	if len(buf) < 10 || buf[0] != 0x1F || buf[1] != 0x8B || buf[2] != 8 {
		return
	}
	a.Out.Line(level, "gzip-compressed data")
	a.Log.Add(level, "Gzip", "Q10287816")

	zr, err := gzip.NewReader(sectionStream(sec))
	if err != nil {
		a.Out.Line(level+1, "Invalid gzip header (%v)", err)
		return
	}
	if zr.Name != "" {
		a.Out.Line(level+1, "Original file name \"%s\"", zr.Name)
		a.Log.Set("original_name", zr.Name)
	}
	if zr.Comment != "" {
		a.Log.Set("comment", zr.Comment)
	}
	d.analyzeStream(a, sec, level+1, zr)
}

// DetectBzip2 检测bzip2压缩数据.
func (d Decompressor) DetectBzip2(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 10)
	if len(buf) < 10 || string(buf[:3]) != "BZh" || buf[3] < '1' || buf[3] > '9' ||
		string(buf[4:10]) != bzip2BlockTag {
		return
	}
	blockSize := int64(buf[3]-'0') * 100
	a.Out.Line(level, "bzip2-compressed data, block size %dk", blockSize)
	a.Log.Add(level, "Bzip2", "Q27866052")
	a.Log.SetInt("block_size", blockSize*1000)
	d.analyzeStream(a, sec, level+1, bzip2.NewReader(sectionStream(sec)))
}

// DetectZstd 检测Zstandard帧.
func (d Decompressor) DetectZstd(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 5)
	if len(buf) < 5 || binary.LittleEndian.Uint32(buf) != zstdFrameMagic {
		return
	}
	a.Out.Line(level, "Zstandard compressed data")
	a.Log.Add(level, "Zstandard", "")

	zr, err := zstd.NewReader(sectionStream(sec), zstd.WithDecoderConcurrency(1))
	if err != nil {
		logger.Debugf("DetectZstd new reader: %v", err)
		return
	}
	d.analyzeStream(a, sec, level+1, zr.IOReadCloser())
}

// DetectLZ4 检测LZ4帧格式数据.
func (d Decompressor) DetectLZ4(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 7)
	if len(buf) < 7 || binary.LittleEndian.Uint32(buf) != lz4FrameMagic {
		return
	}
	// FLG字节的高两位为版本号, 只支持01.
	if buf[4]>>6 != 1 {
		return
	}
	a.Out.Line(level, "LZ4 compressed data")
	a.Log.Add(level, "LZ4", "")
	d.analyzeStream(a, sec, level+1, lz4.NewReader(sectionStream(sec)))
}

// DetectCompress 检测Unix compress(LZW)数据. 只报告格式, 不解压.
func DetectCompress(a *detect.Analyzer, sec source.Section, level int) {
	buf := sec.Buffer(0, 3)
	if len(buf) < 3 || buf[0] != 0x1F || buf[1] != 0x9D {
		return
	}
	bits := int64(buf[2] & 0x1F)
	a.Out.Line(level, "compress-compressed data, %d bits", bits)
	a.Log.Add(level, "Compress", "Q29209269")
	a.Log.SetInt("max_bits", bits)
}

package table

import (
	"bytes"
	"encoding/binary"

	"github.com/kisun-bit/disktype/disk/detect"
	"github.com/lunixbochs/struc"
)

// DiskLabel 分区表类型, 作为分区对象的 kind 属性.
type DiskLabel string

const (
	LabelAmiga DiskLabel = "amiga"
	LabelMBR   DiskLabel = "mbr"
	LabelGPT   DiskLabel = "gpt"
)

func unpackLE(b []byte, v interface{}) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, &struc.Options{Order: binary.LittleEndian})
}

func unpackBE(b []byte, v interface{}) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, &struc.Options{Order: binary.BigEndian})
}

// addPartition 在层级level添加一个分区对象, 并写入分区表类型及分区编号.
func addPartition(a *detect.Analyzer, level int, label DiskLabel, number int) {
	a.Log.Add(level, "Partition", "Q255215")
	a.Log.Set("kind", string(label))
	a.Log.SetInt("number", int64(number))
}

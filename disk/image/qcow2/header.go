package qcow2

import (
	"bytes"
	"encoding/binary"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

func unpack(b []byte, v interface{}) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, &struc.Options{Order: binary.BigEndian})
}

// ParseHeader 解析版本2或3的qcow2头部. buf 至少包含 HeaderSizeV3 字节(版本2可只有 HeaderSizeV2 字节).
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSizeV2 || string(buf[:4]) != Magic {
		return nil, errors.New("missing qcow magic")
	}
	h := new(Header)
	version := binary.BigEndian.Uint32(buf[4:])
	switch version {
	case 2:
		padded := make([]byte, HeaderSizeV3)
		copy(padded, buf[:HeaderSizeV2])
		buf = padded
	case 3:
		if len(buf) < HeaderSizeV3 {
			return nil, errors.Errorf("short qcow2 v3 header: %d bytes", len(buf))
		}
	default:
		return nil, errors.Errorf("unsupported qcow2 version %d", version)
	}
	if err := unpack(buf[:HeaderSizeV3], h); err != nil {
		return nil, errors.Wrap(err, "unpack qcow2 header")
	}
	if h.ClusterBits < MinClusterBits || h.ClusterBits > MaxClusterBits {
		return nil, errors.Errorf("invalid cluster bits %d", h.ClusterBits)
	}
	return h, nil
}

// ParseHeaderV1 解析版本1的qcow头部.
func ParseHeaderV1(buf []byte) (*HeaderV1, error) {
	if len(buf) < HeaderSizeV1 || string(buf[:4]) != Magic {
		return nil, errors.New("missing qcow magic")
	}
	h := new(HeaderV1)
	if err := unpack(buf[:HeaderSizeV1], h); err != nil {
		return nil, errors.Wrap(err, "unpack qcow header")
	}
	if h.Version != 1 {
		return nil, errors.Errorf("not a qcow v1 header (version %d)", h.Version)
	}
	return h, nil
}

// ClusterSize 簇大小(字节).
func (h *Header) ClusterSize() int64 {
	return int64(1) << h.ClusterBits
}

// L2Entries 每个L2表的项数.
func (h *Header) L2Entries() int64 {
	return h.ClusterSize() / 8
}

// Dirty 版本3的 dirty 标志(不兼容特性位0).
func (h *Header) Dirty() bool {
	return h.Version >= 3 && h.IncompatibleFeatures&1 != 0
}

// Info 汇总头部信息, backing 为已读出的后备文件名.
func (h *Header) Info(backing string) ImgGeneralInfo {
	return ImgGeneralInfo{
		Version:         int(h.Version),
		VirtualSize:     int64(h.Size),
		ClusterSize:     int(h.ClusterSize()),
		BackingFilename: backing,
		CryptMethod:     h.CryptMethod,
		Snapshots:       int(h.NbSnapshots),
		DirtyFlag:       h.Dirty(),
	}
}

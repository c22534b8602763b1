package util

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// GetString 读取最多n字节的以NUL结尾的字符串.
func GetString(b []byte, n int) string {
	if n > len(b) {
		n = len(b)
	}
	b = b[:n]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// GetPString 读取以长度字节开头的字符串(Pascal风格).
func GetPString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	n := int(b[0])
	if n > len(b)-1 {
		n = len(b) - 1
	}
	return string(b[1 : 1+n])
}

// GetPaddedString 读取n字节并去除尾部的填充字符及NUL.
func GetPaddedString(b []byte, n int, pad byte) string {
	if n > len(b) {
		n = len(b)
	}
	return strings.TrimRight(string(b[:n]), string([]byte{pad, 0}))
}

// FormatASCII 将不可打印字符转换为 <XX> 形式.
func FormatASCII(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 32 && c < 127 {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "<%02X>", c)
		}
	}
	return sb.String()
}

// FormatUTF16BE 解码大端UTF-16字符串, 在首个NUL处截止.
func FormatUTF16BE(b []byte) string {
	return formatUTF16(b, true)
}

// FormatUTF16LE 解码小端UTF-16字符串, 在首个NUL处截止.
func FormatUTF16LE(b []byte) string {
	return formatUTF16(b, false)
}

func formatUTF16(b []byte, big bool) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		var u uint16
		if big {
			u = uint16(b[i])<<8 | uint16(b[i+1])
		} else {
			u = uint16(b[i+1])<<8 | uint16(b[i])
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// FormatUUID 按RFC 4122格式输出16字节UUID.
func FormatUUID(b []byte) string {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return ""
	}
	return strings.ToUpper(u.String())
}

// FormatGUID 按微软GUID混合字节序输出16字节GUID, 前三段为小端序.
func FormatGUID(b []byte) string {
	if len(b) != 16 {
		return ""
	}
	mixed := make([]byte, 16)
	mixed[0], mixed[1], mixed[2], mixed[3] = b[3], b[2], b[1], b[0]
	mixed[4], mixed[5] = b[5], b[4]
	mixed[6], mixed[7] = b[7], b[6]
	copy(mixed[8:], b[8:])
	return FormatUUID(mixed)
}

// FormatUUIDLVM 将32字符的LVM UUID按 6-4-4-4-4-4-6 分组.
func FormatUUIDLVM(b []byte) string {
	if len(b) < 32 {
		return ""
	}
	groups := []int{6, 4, 4, 4, 4, 4, 6}
	parts := make([]string, 0, len(groups))
	off := 0
	for _, g := range groups {
		parts = append(parts, string(b[off:off+g]))
		off += g
	}
	return strings.Join(parts, "-")
}

// Equal 逐字节比较两个字符串.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindMemory 返回needle在haystack中首次出现的位置, 未找到返回-1.
func FindMemory(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}

// AllBytes 若b中所有字节均等于v, 则返回true.
func AllBytes(b []byte, v byte) bool {
	for _, c := range b {
		if c != v {
			return false
		}
	}
	return true
}

// HexBrief 返回最多n字节的十六进制表示, 用于调试日志.
func HexBrief(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return hex.EncodeToString(b)
}

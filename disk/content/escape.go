package content

import (
	"fmt"
	"strings"
)

// EscapeLatin1 按latin1假设清理字符串: '%' 写为 "%%", 反斜杠、双引号、控制字符(<0x20)
// 及高位字节(>=0x80)写为 \uXXXX, 其中XXXX为原始字节值(并非Unicode解码).
func EscapeLatin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%':
			sb.WriteString("%%")
		case c == '\\' || c == '"' || c < 0x20 || c >= 0x80:
			fmt.Fprintf(&sb, "\\u%04X", c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.4 MiB", FormatSize(1474560))
	assert.Equal(t, "512 bytes", FormatSizeVerbose(512))
	assert.Equal(t, "1474560 bytes, 1.4 MiB", FormatSizeVerbose(1474560))
	assert.Equal(t, "1.0 GiB (1073741824 bytes, 2097152 sectors)", FormatBlockySize(2097152, 512, "sectors", ""))
	assert.Equal(t, "4.0 KiB (4096 bytes, 2 blocks of 2 KiB)", FormatBlockySize(2, 2048, "blocks", " of 2 KiB"))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "hello", GetString([]byte("hello\x00world"), 11))
	assert.Equal(t, "hel", GetString([]byte("hello"), 3))
	assert.Equal(t, "abc", GetPString([]byte("\x03abcdef")))
	assert.Equal(t, "ab", GetPString([]byte("\x09ab")))
	assert.Equal(t, "", GetPString(nil))
	assert.Equal(t, "VOLUME", GetPaddedString([]byte("VOLUME    \x00\x00"), 12, ' '))
	assert.Equal(t, "a<0A>b", FormatASCII("a\nb"))
	assert.Equal(t, "CDROM", FormatUTF16BE([]byte{0, 'C', 0, 'D', 0, 'R', 0, 'O', 0, 'M', 0, 0, 0, 'X'}))
	assert.Equal(t, "EFI", FormatUTF16LE([]byte{'E', 0, 'F', 0, 'I', 0}))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("", ""))
	assert.True(t, Equal("string", "string"))
	assert.False(t, Equal(" ", ""))
	assert.False(t, Equal("tring", "string"))
}

func TestFormatUUIDs(t *testing.T) {
	b := []byte{0x28, 0x73, 0x2a, 0xc1, 0x1f, 0xf8, 0xd2, 0x11, 0xba, 0x4b, 0x00, 0xa0, 0xc9, 0x3e, 0xc9, 0x3b}
	assert.Equal(t, "28732AC1-1FF8-D211-BA4B-00A0C93EC93B", FormatUUID(b))
	assert.Equal(t, "C12A7328-F81F-11D2-BA4B-00A0C93EC93B", FormatGUID(b))
	assert.Equal(t, "", FormatUUID(b[:4]))
	assert.Equal(t, "abcdef-ghij-klmn-opqr-stuv-wxyz-012345", FormatUUIDLVM([]byte("abcdefghijklmnopqrstuvwxyz012345")))
	assert.Equal(t, "", FormatUUIDLVM([]byte("short")))
}

func TestFindMemoryAndAllBytes(t *testing.T) {
	assert.Equal(t, 4, FindMemory([]byte("xxxxLVM2 001"), []byte("LVM2")))
	assert.Equal(t, -1, FindMemory([]byte("xxxx"), []byte("LVM2")))
	assert.True(t, AllBytes(make([]byte, 512), 0))
	assert.False(t, AllBytes([]byte{0, 0, 1}, 0))
	assert.Equal(t, "0102", HexBrief([]byte{1, 2, 3}, 2))
}

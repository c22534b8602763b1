// Package selftest 内置自检, 由命令行 --test 触发, 在分析任何路径之前运行.
package selftest

import (
	"github.com/pkg/errors"

	"github.com/kisun-bit/disktype/disk/content"
	"github.com/kisun-bit/disktype/disk/optical"
	"github.com/kisun-bit/disktype/disk/table"
	"github.com/kisun-bit/disktype/util"
	"github.com/kisun-bit/disktype/util/logger"
)

type check struct {
	name string
	fn   func() error
}

var checks = []check{
	{"equal", checkEqual},
	{"amiga", checkAmiga},
	{"cdaccess", checkDiskID},
	{"content", checkContent},
	{"latin1", checkLatin1},
	{"format", checkFormat},
}

// Run 依次执行全部自检, 返回第一个失败.
func Run() error {
	for _, c := range checks {
		if err := c.fn(); err != nil {
			return errors.Wrapf(err, "self-test %s", c.name)
		}
		logger.Debugf("selftest.Run %s passed", c.name)
	}
	return nil
}

func expect(ok bool, format string, args ...interface{}) error {
	if ok {
		return nil
	}
	return errors.Errorf(format, args...)
}

func expectString(got, want, what string) error {
	return expect(util.Equal(got, want), "%s: got %q, want %q", what, got, want)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkEqual() error {
	return firstError(
		expect(util.Equal("", ""), "empty strings differ"),
		expect(util.Equal("string", "string"), "identical strings differ"),
		expect(util.Equal(" \n", " \n"), "whitespace strings differ"),
		expect(!util.Equal(" ", ""), "strings of different length are equal"),
		expect(!util.Equal("string", "strin"), "prefix is equal to string"),
		expect(!util.Equal("tring", "string"), "suffix is equal to string"),
	)
}

func checkAmiga() error {
	ofs, ok := table.LookupAmigaType([]byte("DOS\x00"))
	if err := expect(ok, "DOS\\0 not found"); err != nil {
		return err
	}
	want := []table.AmigaProperty{{Key: "intl", Value: "false"}, {Key: "multiuser", Value: "false"}}
	if err := expect(len(ofs.Properties) == len(want), "DOS\\0 has %d properties", len(ofs.Properties)); err != nil {
		return err
	}
	for i, p := range want {
		if ofs.Properties[i] != p {
			return errors.Errorf("DOS\\0 property %d: got %v, want %v", i, ofs.Properties[i], p)
		}
	}

	unknown, ok := table.LookupAmigaType([]byte("XYZ\x09"))
	return firstError(
		expect(ofs.FileSystem, "DOS\\0 is not a filesystem"),
		expect(!ok, "unknown type code was found"),
		expectString(unknown.Name, "Unknown", "unknown type name"),
		expect(len(unknown.Properties) == 0, "unknown type has properties"),
		expectString(table.FormatAmigaType([]byte("DOS\x01")), "DOS\\1", "type code rendering"),
	)
}

func checkDiskID() error {
	id := optical.DiskID([]int64{0, 7500})
	return firstError(
		expect(id == 0x02006401, "disk id: got %08X, want 02006401", id),
		expect(id&0xFF == 1, "track count byte: got %d", id&0xFF),
		expect(optical.DiskID([]int64{0}) == 0, "disk id without lead-out is not zero"),
	)
}

func checkContent() error {
	log := content.NewLog(false)
	a := log.Add(5, "some type", "Q1234567")
	b := log.Add(8, "different type", "Qyyy")
	c := log.Add(6, "third type", "")
	d := log.Add(0, "top", "")
	if err := firstError(
		expect(a.ID == 0 && a.Parent == content.NoParent, "first object: id %d parent %d", a.ID, a.Parent),
		expect(b.Parent == 0, "object at level 8: parent %d, want 0", b.Parent),
		expect(c.Parent == 0, "object at level 6: parent %d, want 0", c.Parent),
		expect(d.Parent == content.NoParent, "object at level 0 has parent %d", d.Parent),
	); err != nil {
		return err
	}

	log.Reset()
	log.Add(0, "FAT12", "Q3063042")
	log.Set("volume name", "my beautiful FAT12 volume")
	log.Set("volume name", "a second volume name")
	log.SetInt("volume size", 4000)
	name, _ := log.Current().Property("volume name")
	if err := firstError(
		expect(log.Current().Properties.Len() == 2, "property count %d, want 2", log.Current().Properties.Len()),
		expectString(name, "my beautiful FAT12 volume", "first property value"),
	); err != nil {
		return err
	}

	log.Reset()
	doc := &content.Document{FileKind: "Regular file", Path: "/some/imaginary/path/", Size: 987654321, SizeKnown: true, Content: log}
	return expectString(doc.JSON(),
		`{"file kind":"Regular file","path":"/some/imaginary/path/","size":"987654321","content":[]}`,
		"empty document")
}

func checkLatin1() error {
	return firstError(
		expectString(content.EscapeLatin1(`a\bc`), `a\u005Cbc`, "backslash"),
		expectString(content.EscapeLatin1("abc"), "abc", "clean string"),
		expectString(content.EscapeLatin1(`a"bc`), `a\u0022bc`, "quote"),
		expectString(content.EscapeLatin1("\xff"), `\u00FF`, "high byte"),
		expectString(content.EscapeLatin1(""), "", "empty string"),
		expectString(content.EscapeLatin1("%"), "%%", "percent"),
		expectString(content.EscapeLatin1("xyz\n"), `xyz\u000A`, "newline"),
		expectString(content.EscapeLatin1("abc\rxyz"), `abc\u000Dxyz`, "carriage return"),
	)
}

func checkFormat() error {
	return firstError(
		expectString(util.FormatSize(1474560), "1.4 MiB", "size"),
		expectString(util.FormatSizeVerbose(512), "512 bytes", "small verbose size"),
		expectString(util.FormatSizeVerbose(1474560), "1474560 bytes, 1.4 MiB", "verbose size"),
		expectString(util.FormatBlockySize(2097152, 512, "sectors", ""), "1.0 GiB (1073741824 bytes, 2097152 sectors)", "blocky size"),
		expectString(util.GetString([]byte("hello\x00world"), 11), "hello", "NUL terminated string"),
	)
}

package content

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document 单个被分析文件的结构化结果.
type Document struct {
	FileKind  string
	Path      string
	Size      int64
	SizeKnown bool
	Content   *Log
}

// JSON 将检测记录序列化为JSON文档.
//
// 顶层对象(层级0)按ID升序输出; 每个对象之后嵌套输出父ID等于其ID的全部对象,
// 同样按ID升序. 序列化只读取记录, 重复调用结果相同.
func (d *Document) JSON() string {
	latin1 := d.Content != nil && d.Content.Latin1
	doc := `{}`
	doc, _ = sjson.Set(doc, "file kind", d.FileKind)
	path := d.Path
	if latin1 {
		path = EscapeLatin1(path)
	}
	doc = setString(doc, "path", path, latin1)
	if d.SizeKnown {
		doc, _ = sjson.Set(doc, "size", strconv.FormatInt(d.Size, 10))
	} else {
		doc, _ = sjson.Set(doc, "size", "unknown")
	}

	list := `[]`
	if d.Content != nil {
		children := d.Content.childIndex()
		for _, o := range d.Content.objects {
			if o.Level == 0 {
				list, _ = sjson.SetRaw(list, "-1", nodeJSON(o, d.Content.objects, children, latin1))
			}
		}
	}
	doc, _ = sjson.SetRaw(doc, "content", list)
	return doc
}

// Pretty 返回格式化后的JSON文档, 不含结尾换行.
func (d *Document) Pretty() string {
	return strings.TrimRight(gjson.Get(d.JSON(), "@pretty").Raw, "\n")
}

// childIndex 按父ID归集子对象ID, 子对象保持ID升序.
func (l *Log) childIndex() map[int][]int {
	idx := make(map[int][]int)
	for _, o := range l.objects {
		if o.Parent != NoParent {
			idx[o.Parent] = append(idx[o.Parent], o.ID)
		}
	}
	return idx
}

func nodeJSON(o *Object, objects []*Object, children map[int][]int, latin1 bool) string {
	node := `{}`
	node, _ = sjson.Set(node, "type", o.Type)
	node, _ = sjson.Set(node, "wikidata", o.Wikidata)

	props := `{}`
	for el := o.Properties.Front(); el != nil; el = el.Next() {
		props = setString(props, escapePath(el.Key), el.Value, latin1)
	}
	node, _ = sjson.SetRaw(node, "properties", props)

	list := `[]`
	for _, id := range children[o.ID] {
		list, _ = sjson.SetRaw(list, "-1", nodeJSON(objects[id], objects, children, latin1))
	}
	node, _ = sjson.SetRaw(node, "content", list)
	return node
}

// setString 写入字符串值. latin1模式下value已是转义后的合法JSON字符串内容, 原样写入.
func setString(doc, path, value string, latin1 bool) string {
	var out string
	if latin1 {
		out, _ = sjson.SetRaw(doc, path, `"`+value+`"`)
		return out
	}
	out, _ = sjson.Set(doc, path, value)
	return out
}

// escapePath 转义sjson路径中的特殊字符.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':', '^':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

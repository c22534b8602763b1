package content

import (
	"fmt"
	"strconv"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/kisun-bit/disktype/util/logger"
)

// NoParent 表示对象没有父对象.
const NoParent = -1

// MaxProperties 单个对象最多保存的属性数.
const MaxProperties = 100

// Object 一个被识别出的结构(文件系统、分区表、分区、引导程序、镜像等).
type Object struct {
	ID         int
	Level      int // 检测时的嵌套层级.
	Parent     int // 创建时确定, 之后不再改变.
	Type       string
	Wikidata   string
	Properties *orderedmap.OrderedMap[string, string]
}

// Property 按键读取属性值.
func (o *Object) Property(key string) (string, bool) {
	return o.Properties.Get(key)
}

// Log 平铺的、只追加的检测记录.
//
// 对象ID按创建顺序稠密分配; 属性只能写入最近创建的对象("当前对象").
// 父子关系在对象创建时通过向前扫描确定, 序列化时据此重建树结构.
type Log struct {
	Latin1  bool
	objects []*Object
}

func NewLog(latin1 bool) *Log {
	return &Log{Latin1: latin1}
}

// Add 以给定层级追加一个对象, 新对象成为当前对象.
func (l *Log) Add(level int, typ, wikidata string) *Object {
	o := &Object{
		ID:         len(l.objects),
		Level:      level,
		Parent:     l.resolveParent(level),
		Type:       typ,
		Wikidata:   wikidata,
		Properties: orderedmap.NewOrderedMap[string, string](),
	}
	l.objects = append(l.objects, o)
	return o
}

// resolveParent 自最近的对象向前扫描, 返回首个层级严格小于level的对象ID.
// 记录为空、level为0或不存在这样的对象时返回 NoParent.
func (l *Log) resolveParent(level int) int {
	if len(l.objects) == 0 || level == 0 {
		return NoParent
	}
	for i := len(l.objects) - 1; i >= 0; i-- {
		if l.objects[i].Level < level {
			return i
		}
	}
	return NoParent
}

// Current 返回当前对象, 记录为空时返回nil.
func (l *Log) Current() *Object {
	if len(l.objects) == 0 {
		return nil
	}
	return l.objects[len(l.objects)-1]
}

func (l *Log) Objects() []*Object {
	return l.objects
}

func (l *Log) Len() int {
	return len(l.objects)
}

// Reset 清空记录, 在分析下一个文件之前调用.
func (l *Log) Reset() {
	l.objects = nil
}

// Set 为当前对象添加属性. 同名属性以首次写入为准, 之后的写入被忽略.
func (l *Log) Set(key, value string) {
	o := l.Current()
	if o == nil {
		logger.Warnf("content.Set property %q without any object", key)
		return
	}
	if _, ok := o.Properties.Get(key); ok {
		return
	}
	if o.Properties.Len() >= MaxProperties {
		logger.Warnf("content.Set object %d (%s) exceeds %d properties, dropping %q",
			o.ID, o.Type, MaxProperties, key)
		return
	}
	if l.Latin1 {
		value = EscapeLatin1(value)
	}
	o.Properties.Set(key, value)
}

func (l *Log) Setf(key, format string, args ...interface{}) {
	l.Set(key, fmt.Sprintf(format, args...))
}

func (l *Log) SetInt(key string, value int64) {
	l.Set(key, strconv.FormatInt(value, 10))
}

func (l *Log) SetUint(key string, value uint64) {
	l.Set(key, strconv.FormatUint(value, 10))
}

func (l *Log) SetBool(key string, value bool) {
	l.Set(key, strconv.FormatBool(value))
}

// SetEndianness 添加 endianness 属性, 取值 "little" 或 "big".
func (l *Log) SetEndianness(little bool) {
	if little {
		l.Set("endianness", "little")
	} else {
		l.Set("endianness", "big")
	}
}

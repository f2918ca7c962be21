package objparams

import (
	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/reader"
)

// Kind identifies the category of a resolved type.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// ObjectType is a resolved type: either a single reader or a flat list
// of fields. It is immutable once resolved.
type ObjectType struct {
	Name string
	Kind Kind

	// Reader decodes a primitive.
	Reader reader.Reader

	// Fields of a class, nested classes already inlined.
	Fields []ClassField
}

// ClassField is one field of a resolved class.
type ClassField struct {
	Offset addr.Offsets // from the start of the outermost class
	Type   string
	Name   string
	Notes  string
	Class  string // class that declared the field
	Reader reader.Reader
}

// IsPrimitive reports whether t is a single value.
func (t *ObjectType) IsPrimitive() bool {
	return t.Kind == KindPrimitive
}

// Rows describes the fields as [offset, name, notes, type, class]. A
// primitive describes itself as a single field named "value".
func (t *ObjectType) Rows() [][5]string {
	if t.IsPrimitive() {
		return [][5]string{{"0", "value", "", t.Name, t.Name}}
	}
	rows := make([][5]string, len(t.Fields))
	for i, f := range t.Fields {
		rows[i] = [5]string{f.Offset.String(), f.Name, f.Notes, f.Type, f.Class}
	}
	return rows
}

// FieldValue is the value of one field read from memory. OK is false
// when the field could not be reached or decoded.
type FieldValue struct {
	Field *ClassField
	Value reader.Value
	OK    bool
}

// Read decodes a primitive at a.
func (t *ObjectType) Read(tgt reader.Target, a addr.Addr) (reader.Value, bool) {
	if !t.IsPrimitive() {
		return reader.Value{}, false
	}
	return t.Reader.Read(tgt, a)
}

// ReadFields decodes every field of a class whose instance starts at
// base. A field that cannot be read does not stop the others.
func (t *ObjectType) ReadFields(tgt reader.Target, base addr.Addr) []FieldValue {
	deref := func(a addr.Addr) (addr.Addr, bool) {
		return reader.ReadAddr(tgt, a)
	}

	out := make([]FieldValue, len(t.Fields))
	for i := range t.Fields {
		f := &t.Fields[i]
		out[i].Field = f
		a, ok := f.Offset.Resolve(base, deref)
		if !ok {
			continue
		}
		out[i].Value, out[i].OK = f.Reader.Read(tgt, a)
	}
	return out
}

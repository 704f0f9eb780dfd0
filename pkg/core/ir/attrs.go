package ir

import (
	"sort"

	"github.com/tensoric/tensoric/pkg/core/dtypes"
)

// AttrKind discriminates the closed set of attribute value kinds.
type AttrKind int

const (
	AttrFloat AttrKind = iota
	AttrInt
	AttrUint
	AttrBool
	AttrString
	AttrDType

	// AttrObject carries a nested value the printer knows how to render:
	// an Expr, a StructInfo, a symbolic.Expr or an int sequence.
	AttrObject

	// AttrOpaque and AttrBuffer have no text rendering. Printing them is a
	// schema-author error and fails fast.
	AttrOpaque
	AttrBuffer
)

// AttrValue is a single attribute value of one of the AttrKind kinds.
type AttrValue struct {
	Kind   AttrKind
	Float  float64
	Int    int64
	Uint   uint64
	Bool   bool
	Str    string
	DType  dtypes.DType
	Object any
}

// FloatAttr wraps a float64 attribute value.
func FloatAttr(v float64) AttrValue { return AttrValue{Kind: AttrFloat, Float: v} }

// IntAttr wraps an int64 attribute value.
func IntAttr(v int64) AttrValue { return AttrValue{Kind: AttrInt, Int: v} }

// UintAttr wraps a uint64 attribute value.
func UintAttr(v uint64) AttrValue { return AttrValue{Kind: AttrUint, Uint: v} }

// BoolAttr wraps a bool attribute value.
func BoolAttr(v bool) AttrValue { return AttrValue{Kind: AttrBool, Bool: v} }

// StringAttr wraps a string attribute value.
func StringAttr(v string) AttrValue { return AttrValue{Kind: AttrString, Str: v} }

// DTypeAttr wraps a dtype attribute value.
func DTypeAttr(v dtypes.DType) AttrValue { return AttrValue{Kind: AttrDType, DType: v} }

// ObjectAttr wraps a nested renderable value.
func ObjectAttr(v any) AttrValue { return AttrValue{Kind: AttrObject, Object: v} }

// OpaqueAttr marks a field the printer must reject.
func OpaqueAttr(v any) AttrValue { return AttrValue{Kind: AttrOpaque, Object: v} }

// BufferAttr marks a raw-buffer field the printer must reject.
func BufferAttr(v any) AttrValue { return AttrValue{Kind: AttrBuffer, Object: v} }

// AttrField is one named field of an attribute bag.
type AttrField struct {
	Name  string
	Value AttrValue
}

// Attrs is an attribute bag attached to a Call.
//
// Schema'd bags report their fields in declaration order; DictAttrs reports
// keys lexicographically. Either way the order is the printing order.
type Attrs interface {
	// TypeKey identifies the bag's schema, e.g. "tensoric.attrs.Conv2DAttrs".
	TypeKey() string

	// Fields lists the bag's fields in printing order.
	Fields() []AttrField
}

// DictAttrs is the generic untyped attribute dictionary.
type DictAttrs map[string]AttrValue

// DictAttrsTypeKey is the TypeKey shared by all DictAttrs bags.
const DictAttrsTypeKey = "DictAttrs"

func (d DictAttrs) TypeKey() string { return DictAttrsTypeKey }

// Fields returns the entries sorted lexicographically by key.
func (d DictAttrs) Fields() []AttrField {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]AttrField, len(keys))
	for i, k := range keys {
		fields[i] = AttrField{Name: k, Value: d[k]}
	}
	return fields
}

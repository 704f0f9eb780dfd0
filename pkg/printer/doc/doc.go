// Package doc defines the document tree the printer renders into, and a
// deterministic text formatter over it.
//
// Document construction is pure: no global state, no I/O. Two renderings of
// equal IR produce equal documents and equal text.
package doc

import (
	"strconv"
	"strings"
)

// Doc is a node of the document tree. The set of implementations is closed:
// *Id, *Attr, *Literal, *Call, *Tuple and *List.
type Doc interface {
	isDoc()
}

// Id is a bare identifier.
type Id struct {
	Name string
}

func (d *Id) isDoc() {}

// Attr is a dotted attribute access, base.name.
type Attr struct {
	Base Doc
	Name string
}

func (d *Attr) isDoc() {}

// Access builds a (possibly chained) dotted access from a root identifier.
func Access(root string, names ...string) Doc {
	var d Doc = &Id{Name: root}
	for _, name := range names {
		d = &Attr{Base: d, Name: name}
	}
	return d
}

type litKind int

const (
	litNone litKind = iota
	litInt
	litFloat
	litBool
	litStr
)

// Literal is a constant leaf.
type Literal struct {
	kind litKind
	i    int64
	f    float64
	b    bool
	s    string
}

func (d *Literal) isDoc() {}

// Int builds an integer literal.
func Int(v int64) *Literal { return &Literal{kind: litInt, i: v} }

// Float builds a floating-point literal.
func Float(v float64) *Literal { return &Literal{kind: litFloat, f: v} }

// Bool builds a boolean literal.
func Bool(v bool) *Literal { return &Literal{kind: litBool, b: v} }

// Str builds a quoted string literal.
func Str(v string) *Literal { return &Literal{kind: litStr, s: v} }

// None builds the empty literal.
func None() *Literal { return &Literal{kind: litNone} }

// Kwarg is one keyword argument of a Call.
type Kwarg struct {
	Key   string
	Value Doc
}

// Call is a call expression: positional arguments first, then keyword
// arguments in the order given.
type Call struct {
	Callee Doc
	Args   []Doc
	Kwargs []Kwarg
}

func (d *Call) isDoc() {}

// Tuple is a parenthesized fixed-size sequence.
type Tuple struct {
	Elems []Doc
}

func (d *Tuple) isDoc() {}

// List is a bracketed sequence.
type List struct {
	Elems []Doc
}

func (d *List) isDoc() {}

// Format renders a document to its canonical text.
func Format(d Doc) string {
	var sb strings.Builder
	writeDoc(&sb, d)
	return sb.String()
}

func writeDoc(sb *strings.Builder, d Doc) {
	switch d := d.(type) {
	case *Id:
		sb.WriteString(d.Name)
	case *Attr:
		writeDoc(sb, d.Base)
		sb.WriteString(".")
		sb.WriteString(d.Name)
	case *Literal:
		writeLiteral(sb, d)
	case *Call:
		writeDoc(sb, d.Callee)
		sb.WriteString("(")
		for i, arg := range d.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDoc(sb, arg)
		}
		for i, kw := range d.Kwargs {
			if i > 0 || len(d.Args) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(kw.Key)
			sb.WriteString("=")
			writeDoc(sb, kw.Value)
		}
		sb.WriteString(")")
	case *Tuple:
		sb.WriteString("(")
		for i, elem := range d.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDoc(sb, elem)
		}
		if len(d.Elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case *List:
		sb.WriteString("[")
		for i, elem := range d.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDoc(sb, elem)
		}
		sb.WriteString("]")
	}
}

func writeLiteral(sb *strings.Builder, d *Literal) {
	switch d.kind {
	case litNone:
		sb.WriteString("None")
	case litInt:
		sb.WriteString(strconv.FormatInt(d.i, 10))
	case litFloat:
		s := strconv.FormatFloat(d.f, 'g', -1, 64)
		sb.WriteString(s)
		if !strings.ContainsAny(s, ".eE") {
			sb.WriteString(".0")
		}
	case litBool:
		if d.b {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case litStr:
		sb.WriteString(strconv.Quote(d.s))
	}
}

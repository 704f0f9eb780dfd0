package printer

import (
	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"github.com/tensoric/tensoric/pkg/printer/doc"
)

// AttrsKwargs walks an attribute bag's fields, in the bag's own order, into
// keyword arguments. Fields with no text rendering (opaque handles, raw
// buffers) panic with a type error: such a field in a printable bag is a
// schema-author bug.
func (p *Printer) AttrsKwargs(attrs ir.Attrs) []doc.Kwarg {
	fields := attrs.Fields()
	kwargs := make([]doc.Kwarg, 0, len(fields))
	for _, field := range fields {
		kwargs = append(kwargs, doc.Kwarg{Key: field.Name, Value: p.attrValueDoc(attrs, field)})
	}
	return kwargs
}

func (p *Printer) attrValueDoc(attrs ir.Attrs, field ir.AttrField) doc.Doc {
	v := field.Value
	switch v.Kind {
	case ir.AttrFloat:
		return doc.Float(v.Float)
	case ir.AttrInt:
		return doc.Int(v.Int)
	case ir.AttrUint:
		return doc.Int(int64(v.Uint))
	case ir.AttrBool:
		return doc.Bool(v.Bool)
	case ir.AttrString:
		return doc.Str(v.Str)
	case ir.AttrDType:
		if v.DType == dtypes.InvalidDType {
			return doc.Str("")
		}
		return doc.Str(v.DType.String())
	case ir.AttrObject:
		return p.objectDoc(attrs, field, v.Object)
	case ir.AttrOpaque:
		exceptions.Panicf("printer: attribute %s.%s holds an opaque handle, which cannot be rendered",
			attrs.TypeKey(), field.Name)
	case ir.AttrBuffer:
		exceptions.Panicf("printer: attribute %s.%s holds a raw buffer, which cannot be rendered",
			attrs.TypeKey(), field.Name)
	}
	exceptions.Panicf("printer: attribute %s.%s has unknown kind %d", attrs.TypeKey(), field.Name, v.Kind)
	return nil
}

func (p *Printer) objectDoc(attrs ir.Attrs, field ir.AttrField, obj any) doc.Doc {
	switch obj := obj.(type) {
	case []int:
		elems := make([]doc.Doc, len(obj))
		for i, v := range obj {
			elems[i] = doc.Int(int64(v))
		}
		return &doc.List{Elems: elems}
	case []int64:
		elems := make([]doc.Doc, len(obj))
		for i, v := range obj {
			elems[i] = doc.Int(v)
		}
		return &doc.List{Elems: elems}
	case symbolic.Expr:
		return p.DimDoc(obj)
	case []symbolic.Expr:
		elems := make([]doc.Doc, len(obj))
		for i, v := range obj {
			elems[i] = p.DimDoc(v)
		}
		return &doc.List{Elems: elems}
	case sinfo.StructInfo:
		return p.StructInfoDoc(obj)
	case ir.Expr:
		return p.Expr(obj)
	default:
		exceptions.Panicf("printer: attribute %s.%s holds a value of type %T, which cannot be rendered",
			attrs.TypeKey(), field.Name, obj)
		return nil
	}
}

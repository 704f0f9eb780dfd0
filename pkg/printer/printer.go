// Package printer renders IR expressions to document trees and text.
//
// Rendering is driven by a per-node-kind registry, so packages introducing
// new expression kinds can register their own printers. Rendering is pure
// and deterministic: equal expressions produce equal text.
package printer

import (
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"github.com/tensoric/tensoric/pkg/printer/doc"
)

// ScriptRoot is the identifier the script dialect hangs its names on,
// as in T.nn.conv2d or T.call_tir.
const ScriptRoot = "T"

// ExprPrinter renders one expression kind to a document.
type ExprPrinter func(p *Printer, e ir.Expr) doc.Doc

var exprPrinters = make(map[reflect.Type]ExprPrinter)

// RegisterExprPrinter binds a printer to the concrete type of prototype.
// Registrations happen at package load; later registrations for the same
// kind panic.
func RegisterExprPrinter(prototype ir.Expr, fn ExprPrinter) {
	t := reflect.TypeOf(prototype)
	if _, found := exprPrinters[t]; found {
		exceptions.Panicf("printer.RegisterExprPrinter: printer for %s registered twice", t)
	}
	exprPrinters[t] = fn
}

// Printer renders expressions. The zero value is ready to use.
type Printer struct{}

// New creates a Printer.
func New() *Printer { return &Printer{} }

// Expr renders an expression to a document.
func (p *Printer) Expr(e ir.Expr) doc.Doc {
	fn, found := exprPrinters[reflect.TypeOf(e)]
	if !found {
		exceptions.Panicf("printer: no printer registered for expression type %T", e)
	}
	return fn(p, e)
}

// Print renders an expression to text.
func (p *Printer) Print(e ir.Expr) string {
	return doc.Format(p.Expr(e))
}

// DimDoc renders a symbolic extent: constants as integer literals, anything
// else through its canonical string form.
func (p *Printer) DimDoc(e symbolic.Expr) doc.Doc {
	if v, ok := symbolic.AsConst(e); ok {
		return doc.Int(v)
	}
	return &doc.Id{Name: e.String()}
}

func init() {
	RegisterExprPrinter(&ir.Var{}, func(p *Printer, e ir.Expr) doc.Doc {
		return &doc.Id{Name: e.(*ir.Var).Name}
	})
	RegisterExprPrinter(&ir.GlobalVar{}, func(p *Printer, e ir.Expr) doc.Doc {
		return &doc.Id{Name: e.(*ir.GlobalVar).Name}
	})
	RegisterExprPrinter(&ir.ExternFunc{}, func(p *Printer, e ir.Expr) doc.Doc {
		return doc.Str(e.(*ir.ExternFunc).Symbol)
	})
	RegisterExprPrinter(&ir.Op{}, func(p *Printer, e ir.Expr) doc.Doc {
		return opDoc(e.(*ir.Op).Name)
	})
	RegisterExprPrinter(&ir.Tuple{}, func(p *Printer, e ir.Expr) doc.Doc {
		tuple := e.(*ir.Tuple)
		elems := make([]doc.Doc, len(tuple.Fields))
		for i, field := range tuple.Fields {
			elems[i] = p.Expr(field)
		}
		return &doc.Tuple{Elems: elems}
	})
	RegisterExprPrinter(&ir.ShapeExpr{}, func(p *Printer, e ir.Expr) doc.Doc {
		shape := e.(*ir.ShapeExpr)
		elems := make([]doc.Doc, len(shape.Values))
		for i, v := range shape.Values {
			elems[i] = p.DimDoc(v)
		}
		return &doc.Call{Callee: doc.Access(ScriptRoot, "shape"), Args: []doc.Doc{&doc.List{Elems: elems}}}
	})
	RegisterExprPrinter(&ir.PrimExpr{}, func(p *Printer, e ir.Expr) doc.Doc {
		return p.DimDoc(e.(*ir.PrimExpr).Value)
	})
	RegisterExprPrinter(&ir.Call{}, func(p *Printer, e ir.Expr) doc.Doc {
		return p.callDoc(e.(*ir.Call))
	})
}

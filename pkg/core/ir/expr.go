// Package ir defines the call-expression core of the operator layer.
//
// A Call applies an operator identity (a registered primitive Op, an opaque
// ExternFunc or a function-valued variable) to argument expressions, with an
// optional attribute bag and optional declared result descriptors. Calls are
// immutable once normalized: NormalizeCall runs the operator's inference
// function and attaches the resulting structural descriptor.
package ir

import (
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

// Expr is an IR expression node.
//
// The set of implementations is closed: *Var, *GlobalVar, *ExternFunc, *Op,
// *Call, *Tuple, *ShapeExpr and *PrimExpr. Consumers switch on the concrete
// type and treat any other value as a bug.
type Expr interface {
	isExpr()
}

// Var is a local variable with an optional known descriptor.
type Var struct {
	Name string
	Info sinfo.StructInfo
}

func (v *Var) isExpr() {}

// GlobalVar references a function defined elsewhere in the same module.
type GlobalVar struct {
	Name string
}

func (v *GlobalVar) isExpr() {}

// ExternFunc references an external symbol by name. Nothing is known about
// its signature beyond what the call site declares.
type ExternFunc struct {
	Symbol string
}

func (f *ExternFunc) isExpr() {}

// Tuple groups a fixed number of expressions.
type Tuple struct {
	Fields []Expr
}

func (t *Tuple) isExpr() {}

// ShapeExpr is a first-class shape value.
type ShapeExpr struct {
	Values []symbolic.Expr
}

func (s *ShapeExpr) isExpr() {}

// PrimExpr wraps a scalar symbolic expression as an IR expression.
type PrimExpr struct {
	Value symbolic.Expr
}

func (p *PrimExpr) isExpr() {}

// Call applies a callee to arguments.
type Call struct {
	// Callee is the operator identity: *Op, *ExternFunc, *Var or *GlobalVar.
	Callee Expr

	// Args are the positional arguments.
	Args []Expr

	// Attrs is the call's attribute bag, or nil.
	Attrs Attrs

	// SInfoArgs are descriptors passed as arguments, declaring the result
	// type of calls whose callee the IR cannot see into.
	SInfoArgs []sinfo.StructInfo

	info sinfo.StructInfo
}

func (c *Call) isExpr() {}

// StructInfo returns the descriptor attached by inference, or nil if the
// call has not been normalized.
func (c *Call) StructInfo() sinfo.StructInfo { return c.info }

// SetStructInfo attaches the result descriptor. Inference only.
func (c *Call) SetStructInfo(info sinfo.StructInfo) { c.info = info }

// StructInfoOf returns the descriptor of an expression, or nil when nothing
// is known.
func StructInfoOf(e Expr) sinfo.StructInfo {
	switch e := e.(type) {
	case *Var:
		return e.Info
	case *Call:
		return e.info
	case *ShapeExpr:
		return sinfo.MakeShape(e.Values...)
	case *Tuple:
		fields := make([]sinfo.StructInfo, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = StructInfoOf(f)
		}
		return sinfo.MakeTuple(fields...)
	default:
		return nil
	}
}

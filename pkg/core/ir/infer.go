package ir

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"k8s.io/klog/v2"
)

// InferFunc derives the result descriptor of a call from its arguments'
// descriptors and its attributes. It reports fatal errors through
// ctx.ReportFatalf and never returns nil.
type InferFunc func(ctx *InferContext, call *Call) sinfo.StructInfo

// Op is a registered primitive operator. The operator set is open: packages
// register their operators at load time with RegisterOp.
type Op struct {
	// Name is the fully qualified operator name, e.g. "tensoric.nn.conv2d".
	Name string

	// AttrsTypeKey is the TypeKey of the bag the operator expects, or "".
	AttrsTypeKey string

	// Infer derives the call's result descriptor.
	Infer InferFunc
}

func (o *Op) isExpr() {}

var opRegistry = make(map[string]*Op)

// RegisterOp adds an operator to the global registry. It panics on duplicate
// names and is meant to be called from init functions. Returns op so
// registrations can double as package-level variable initializers.
func RegisterOp(op *Op) *Op {
	if op.Name == "" {
		exceptions.Panicf("ir.RegisterOp: operator has no name")
	}
	if _, found := opRegistry[op.Name]; found {
		exceptions.Panicf("ir.RegisterOp: operator %q registered twice", op.Name)
	}
	opRegistry[op.Name] = op
	klog.V(2).Infof("registered operator %q", op.Name)
	return op
}

// GetOp looks up a registered operator by name.
func GetOp(name string) (*Op, bool) {
	op, found := opRegistry[name]
	return op, found
}

// Assumption is a relation inference accepted without proof. It is checked
// at runtime, outside this module.
type Assumption struct {
	Cond symbolic.Cond
	Path Path
}

// InferContext carries the state of one inference pass over one function.
// It is not safe for concurrent use.
type InferContext struct {
	// Analyzer proves and simplifies symbolic shape arithmetic.
	Analyzer *symbolic.Analyzer

	// FuncName is the enclosing function, for diagnostics.
	FuncName string

	opName      string
	strict      bool
	assumptions []Assumption
}

// NewInferContext creates a context with a fresh analyzer.
func NewInferContext() *InferContext {
	return &InferContext{Analyzer: symbolic.New()}
}

// WithStrict toggles recording of deferred assumptions. Returns ctx.
func (ctx *InferContext) WithStrict(strict bool) *InferContext {
	ctx.strict = strict
	return ctx
}

// ReportFatalf aborts the current inference pass with a fatal diagnostic.
// It panics with a *Diagnostic, recovered by InferFunction.
func (ctx *InferContext) ReportFatalf(path Path, format string, args ...any) {
	panic(&Diagnostic{
		Op:      ctx.opName,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// DeferAssumption accepts a relation that could not be proven, deferring its
// check to runtime. In strict mode the assumption is recorded and logged;
// otherwise it is dropped.
func (ctx *InferContext) DeferAssumption(path Path, cond symbolic.Cond) {
	if !ctx.strict {
		return
	}
	ctx.assumptions = append(ctx.assumptions, Assumption{Cond: cond, Path: path})
	klog.V(1).Infof("%s: deferring to runtime: %s (at %s)", ctx.opName, cond, path)
}

// Assumptions returns the relations recorded in strict mode.
func (ctx *InferContext) Assumptions() []Assumption {
	return ctx.assumptions
}

// NormalizeCall attaches the result descriptor to a call. For a primitive
// operator callee the operator's inference function runs immediately; for
// extern or variable callees the declared descriptor hints are taken as the
// result. Already-normalized calls are left untouched.
func (ctx *InferContext) NormalizeCall(call *Call) {
	if call.info != nil {
		return
	}
	switch callee := call.Callee.(type) {
	case *Op:
		if callee.Infer == nil {
			exceptions.Panicf("ir.NormalizeCall: operator %q has no inference function", callee.Name)
		}
		prev := ctx.opName
		ctx.opName = callee.Name
		ctx.checkAttrsTypeKey(callee, call)
		call.info = callee.Infer(ctx, call)
		ctx.opName = prev
	case *ExternFunc, *Var, *GlobalVar:
		call.info = declaredInfo(call.SInfoArgs)
	default:
		exceptions.Panicf("ir.NormalizeCall: callee of type %T cannot head a call", callee)
	}
}

// checkAttrsTypeKey verifies the call carries the attribute bag the operator
// declared, before its inference function runs.
func (ctx *InferContext) checkAttrsTypeKey(op *Op, call *Call) {
	if op.AttrsTypeKey == "" {
		return
	}
	path := RootPath(op.Name).Attr("attrs")
	if call.Attrs == nil {
		ctx.ReportFatalf(path, "expected %s, got none", op.AttrsTypeKey)
	}
	if key := call.Attrs.TypeKey(); key != op.AttrsTypeKey {
		ctx.ReportFatalf(path, "expected %s, got %s", op.AttrsTypeKey, key)
	}
}

func declaredInfo(hints []sinfo.StructInfo) sinfo.StructInfo {
	switch len(hints) {
	case 0:
		return &sinfo.Object{}
	case 1:
		return hints[0]
	default:
		return sinfo.MakeTuple(hints...)
	}
}

// Function is a sequence of call bindings, enough structure to drive one
// inference pass.
type Function struct {
	Name   string
	Params []*Var
	Body   []Expr
}

// InferFunction normalizes every call in the function body, in order. The
// first fatal diagnostic aborts the pass and is returned; construction
// errors keep propagating as panics.
func (ctx *InferContext) InferFunction(fn *Function) *Diagnostic {
	ctx.FuncName = fn.Name
	return exceptions.TryCatch[*Diagnostic](func() {
		for _, e := range fn.Body {
			if call, ok := e.(*Call); ok {
				ctx.NormalizeCall(call)
			}
		}
	})
}

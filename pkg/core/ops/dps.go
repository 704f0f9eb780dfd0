package ops

import (
	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
)

// Destination-passing-style pseudo-operators. Both wrap a callee the IR
// cannot see into, so the result descriptor is whatever the call declares.
const (
	CallTIROpName       = "tensoric.call_tir"
	CallDPSPackedOpName = "tensoric.call_dps_packed"
)

var (
	// CallTIROp calls a low-level tensor program by global symbol. Arguments
	// are (callee, input tuple) with an optional trailing shape of scalar
	// parameters.
	CallTIROp = ir.RegisterOp(&ir.Op{Name: CallTIROpName, Infer: inferDPS})

	// CallDPSPackedOp calls a packed external function in destination-passing
	// style. Arguments are (callee, input tuple).
	CallDPSPackedOp = ir.RegisterOp(&ir.Op{Name: CallDPSPackedOpName, Infer: inferDPS})
)

// CallTIR builds a normalized-shape call to a tensor program. outSInfo
// declares the results the program writes into its output buffers; tirVars
// optionally passes extra scalar parameters.
func CallTIR(fn *ir.GlobalVar, args *ir.Tuple, outSInfo []sinfo.StructInfo, tirVars *ir.ShapeExpr) *ir.Call {
	if fn == nil {
		exceptions.Panicf("ops.CallTIR: callee cannot be nil")
	}
	callArgs := []ir.Expr{fn, requireTuple(args, "ops.CallTIR")}
	if tirVars != nil {
		callArgs = append(callArgs, tirVars)
	}
	return &ir.Call{
		Callee:    CallTIROp,
		Args:      callArgs,
		SInfoArgs: []sinfo.StructInfo{declaredResult(outSInfo, "ops.CallTIR")},
	}
}

// CallDPSPacked builds a call to a packed external function. The callee is
// an extern symbol or a function-valued reference.
func CallDPSPacked(fn ir.Expr, args *ir.Tuple, outSInfo []sinfo.StructInfo) *ir.Call {
	switch fn.(type) {
	case *ir.ExternFunc, *ir.GlobalVar, *ir.Var:
	default:
		exceptions.Panicf("ops.CallDPSPacked: callee must be an extern symbol or a function reference, got %T", fn)
	}
	return &ir.Call{
		Callee:    CallDPSPackedOp,
		Args:      []ir.Expr{fn, requireTuple(args, "ops.CallDPSPacked")},
		SInfoArgs: []sinfo.StructInfo{declaredResult(outSInfo, "ops.CallDPSPacked")},
	}
}

func requireTuple(args *ir.Tuple, who string) *ir.Tuple {
	if args == nil {
		exceptions.Panicf("%s: input arguments must be a tuple, got nil", who)
	}
	return args
}

func declaredResult(outSInfo []sinfo.StructInfo, who string) sinfo.StructInfo {
	switch len(outSInfo) {
	case 0:
		exceptions.Panicf("%s: at least one output descriptor is required", who)
		return nil
	case 1:
		return outSInfo[0]
	default:
		return sinfo.MakeTuple(outSInfo...)
	}
}

func inferDPS(ctx *ir.InferContext, call *ir.Call) sinfo.StructInfo {
	path := ir.RootPath(callOpName(call))
	if len(call.Args) < 2 || len(call.Args) > 3 {
		ctx.ReportFatalf(path.Attr("args"), "expected 2 or 3 arguments, got %d", len(call.Args))
	}
	if len(call.SInfoArgs) != 1 {
		ctx.ReportFatalf(path.Attr("sinfo_args"), "expected exactly one declared result descriptor, got %d", len(call.SInfoArgs))
	}
	return call.SInfoArgs[0]
}

func callOpName(call *ir.Call) string {
	if op, ok := call.Callee.(*ir.Op); ok {
		return op.Name
	}
	return "call"
}

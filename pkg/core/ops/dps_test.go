package ops

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

func TestCallTIR(t *testing.T) {
	x := &ir.Var{Name: "x", Info: sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))}
	gv := &ir.GlobalVar{Name: "my_kernel"}
	out := sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))

	call := CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{out}, nil)
	require.Same(t, ir.Expr(CallTIROp), call.Callee)
	require.Len(t, call.Args, 2)

	// The declared descriptor becomes the call's result, untouched.
	ctx := ir.NewInferContext()
	ctx.NormalizeCall(call)
	require.Same(t, sinfo.StructInfo(out), call.StructInfo())

	// Multiple outputs fold into a tuple descriptor.
	out2 := sinfo.TensorOfRank(dtypes.Float32, 2)
	call = CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{out, out2}, nil)
	ctx.NormalizeCall(call)
	tuple, ok := call.StructInfo().(*sinfo.Tuple)
	require.True(t, ok)
	require.Len(t, tuple.Fields, 2)

	// The trailing scalar parameters ride as a third argument.
	n := symbolic.NewVar("n")
	call = CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{out},
		&ir.ShapeExpr{Values: []symbolic.Expr{n}})
	require.Len(t, call.Args, 3)

	require.Panics(t, func() { CallTIR(nil, &ir.Tuple{}, []sinfo.StructInfo{out}, nil) })
	require.Panics(t, func() { CallTIR(gv, nil, []sinfo.StructInfo{out}, nil) })
	require.Panics(t, func() { CallTIR(gv, &ir.Tuple{}, nil, nil) })
}

func TestCallDPSPacked(t *testing.T) {
	x := &ir.Var{Name: "x", Info: sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))}
	out := sinfo.TensorOfRank(dtypes.Float32, 2)

	call := CallDPSPacked(&ir.ExternFunc{Symbol: "my_packed"}, &ir.Tuple{Fields: []ir.Expr{x}},
		[]sinfo.StructInfo{out})
	require.Same(t, ir.Expr(CallDPSPackedOp), call.Callee)

	ctx := ir.NewInferContext()
	ctx.NormalizeCall(call)
	require.Same(t, sinfo.StructInfo(out), call.StructInfo())

	// Only extern symbols and function references can be the callee.
	require.Panics(t, func() {
		CallDPSPacked(&ir.Tuple{}, &ir.Tuple{}, []sinfo.StructInfo{out})
	})
}

func TestDPSInferenceChecks(t *testing.T) {
	out := sinfo.TensorOfRank(dtypes.Float32, 2)

	// A malformed call (hand-built, skipping the constructor) is fatal.
	bad := &ir.Call{Callee: CallTIROp, Args: []ir.Expr{&ir.GlobalVar{Name: "f"}},
		SInfoArgs: []sinfo.StructInfo{out}}
	ctx := ir.NewInferContext()
	diag := ctx.InferFunction(&ir.Function{Name: "main", Body: []ir.Expr{bad}})
	require.NotNil(t, diag)
	require.Contains(t, diag.Error(), "arguments")
}

func TestHelpers(t *testing.T) {
	require.Equal(t, []int{1, 1, 1, 1}, CompletePadding2D([]int{1}))
	require.Equal(t, []int{1, 2, 1, 2}, CompletePadding2D([]int{1, 2}))
	require.Equal(t, []int{1, 2, 3, 4}, CompletePadding2D([]int{1, 2, 3, 4}))
	require.Panics(t, func() { CompletePadding2D([]int{1, 2, 3}) })

	require.Equal(t, []int{3, 3}, BroadcastPair([]int{3}, "strides"))
	require.Equal(t, []int{3, 4}, BroadcastPair([]int{3, 4}, "strides"))
	require.Panics(t, func() { BroadcastPair(nil, "strides") })
}

// Package ops holds the helpers shared by operator implementations and the
// destination-passing-style pseudo-operators.
package ops

import (
	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/layout"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"github.com/tensoric/tensoric/pkg/support/xslices"
)

// CompletePadding2D normalizes a padding list to the canonical
// (top, left, bottom, right) form. One value pads all sides, two values are
// (height, width), four are taken as-is. Any other length is a construction
// error.
func CompletePadding2D(padding []int) []int {
	switch len(padding) {
	case 1:
		return xslices.SliceWithValue(4, padding[0])
	case 2:
		return []int{padding[0], padding[1], padding[0], padding[1]}
	case 4:
		return []int{padding[0], padding[1], padding[2], padding[3]}
	default:
		exceptions.Panicf("ops.CompletePadding2D: padding must have 1, 2 or 4 values, got %d", len(padding))
		return nil
	}
}

// BroadcastPair normalizes a per-axis list to length two. A single value
// applies to both spatial axes. Any other length is a construction error.
func BroadcastPair(values []int, name string) []int {
	switch len(values) {
	case 1:
		return xslices.SliceWithValue(2, values[0])
	case 2:
		return []int{values[0], values[1]}
	default:
		exceptions.Panicf("ops.BroadcastPair: %s must have 1 or 2 values, got %d", name, len(values))
		return nil
	}
}

// InputTensorInfo checks the call's arity and extracts the tensor descriptor
// of each argument, raising a fatal diagnostic on anything else.
func InputTensorInfo(ctx *ir.InferContext, call *ir.Call, path ir.Path, nArgs int) []*sinfo.Tensor {
	if len(call.Args) != nArgs {
		ctx.ReportFatalf(path, "expected %d arguments, got %d", nArgs, len(call.Args))
	}
	tensors := make([]*sinfo.Tensor, nArgs)
	for i, arg := range call.Args {
		argPath := path.Index(i)
		switch info := ir.StructInfoOf(arg).(type) {
		case *sinfo.Tensor:
			tensors[i] = info
		case *sinfo.DTensor:
			tensors[i] = info.Tensor
		case nil:
			ctx.ReportFatalf(argPath, "argument has no descriptor")
		default:
			ctx.ReportFatalf(argPath, "expected a tensor argument, got %s", info)
		}
	}
	return tensors
}

// CheckTensorLayout normalizes a declared layout against its canonical form,
// raising a fatal diagnostic on incompatibility.
func CheckTensorLayout(ctx *ir.InferContext, path ir.Path, layoutStr, canonical, tensorName string) (layout.Layout, layout.Permutation) {
	l, perm, err := layout.Normalize(layoutStr, canonical, tensorName)
	if err != nil {
		ctx.ReportFatalf(path, "%v", err)
	}
	return l, perm
}

// CheckRankPerLayout checks a tensor's rank against its declared layout and
// returns its dims, or nil when the dims are unknown (the caller
// short-circuits to a rank-only result).
func CheckRankPerLayout(ctx *ir.InferContext, path ir.Path, t *sinfo.Tensor, l layout.Layout, tensorName string) []symbolic.Expr {
	if t.NDim() != sinfo.NDimUnknown && t.NDim() != l.NDim() {
		ctx.ReportFatalf(path, "%s has rank %d, but layout %s requires rank %d",
			tensorName, t.NDim(), l, l.NDim())
	}
	return t.Dims
}

// InferBinaryArithDType resolves the element dtype of a binary arithmetic
// result. Unknown on either side stays unknown.
func InferBinaryArithDType(a, b *sinfo.Tensor) dtypes.DType {
	return dtypes.PromoteBinary(a.DType, b.DType)
}

package nn

import (
	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/ops"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

// Operator names of the convolution pair.
const (
	Conv2DOpName          = "tensoric.nn.conv2d"
	Conv2DTransposeOpName = "tensoric.nn.conv2d_transpose"
)

var (
	// Conv2DOp is the forward 2-D convolution.
	Conv2DOp = ir.RegisterOp(&ir.Op{
		Name:         Conv2DOpName,
		AttrsTypeKey: Conv2DAttrsTypeKey,
		Infer:        inferConv2D,
	})

	// Conv2DTransposeOp is the gradient-style transposed 2-D convolution.
	Conv2DTransposeOp = ir.RegisterOp(&ir.Op{
		Name:         Conv2DTransposeOpName,
		AttrsTypeKey: Conv2DTransposeAttrsTypeKey,
		Infer:        inferConv2DTranspose,
	})
)

// Conv2DBuilder accumulates the configuration of a conv2d call.
// Create it with Conv2D, set options and call Done.
type Conv2DBuilder struct {
	data, kernel ir.Expr
	attrs        Conv2DAttrs
}

// Conv2D starts building a 2-D convolution of data by kernel.
//
// Defaults: strides 1, no padding, dilation 1, one group, data in NCHW, the
// kernel in OIHW, output in the data layout, output dtype promoted from the
// inputs.
func Conv2D(data, kernel ir.Expr) *Conv2DBuilder {
	return &Conv2DBuilder{
		data:   data,
		kernel: kernel,
		attrs: Conv2DAttrs{
			Strides:      []int{1},
			Padding:      []int{0},
			Dilation:     []int{1},
			Groups:       1,
			DataLayout:   "NCHW",
			KernelLayout: "OIHW",
		},
	}
}

// Strides sets the spatial strides, one value for both axes or one per axis.
func (b *Conv2DBuilder) Strides(strides ...int) *Conv2DBuilder {
	b.attrs.Strides = strides
	return b
}

// Padding sets the input padding: one value for all sides, two as
// (height, width), or four as (top, left, bottom, right).
func (b *Conv2DBuilder) Padding(padding ...int) *Conv2DBuilder {
	b.attrs.Padding = padding
	return b
}

// Dilation sets the kernel dilation, one value for both axes or one per axis.
func (b *Conv2DBuilder) Dilation(dilation ...int) *Conv2DBuilder {
	b.attrs.Dilation = dilation
	return b
}

// Groups sets the number of feature groups.
func (b *Conv2DBuilder) Groups(groups int) *Conv2DBuilder {
	b.attrs.Groups = groups
	return b
}

// DataLayout sets the layout of the data tensor, a permutation of "NCHW".
func (b *Conv2DBuilder) DataLayout(l string) *Conv2DBuilder {
	b.attrs.DataLayout = l
	return b
}

// KernelLayout sets the layout of the kernel tensor, a permutation of "OIHW".
func (b *Conv2DBuilder) KernelLayout(l string) *Conv2DBuilder {
	b.attrs.KernelLayout = l
	return b
}

// OutLayout sets the layout of the output tensor, a permutation of "NCHW".
func (b *Conv2DBuilder) OutLayout(l string) *Conv2DBuilder {
	b.attrs.OutLayout = l
	return b
}

// OutDType forces the output element dtype.
func (b *Conv2DBuilder) OutDType(dtype dtypes.DType) *Conv2DBuilder {
	b.attrs.OutDType = dtype
	return b
}

// Done validates the configuration and builds the call node.
func (b *Conv2DBuilder) Done() *ir.Call {
	attrs := b.attrs
	attrs.Padding = ops.CompletePadding2D(attrs.Padding)
	attrs.Strides = ops.BroadcastPair(attrs.Strides, "strides")
	attrs.Dilation = ops.BroadcastPair(attrs.Dilation, "dilation")
	if attrs.Groups <= 0 {
		exceptions.Panicf("nn.Conv2D: the number of groups must be positive, got %d", attrs.Groups)
	}
	if attrs.OutLayout == "" {
		attrs.OutLayout = attrs.DataLayout
	}
	return &ir.Call{
		Callee: Conv2DOp,
		Args:   []ir.Expr{b.data, b.kernel},
		Attrs:  &attrs,
	}
}

// Conv2DTransposeBuilder accumulates the configuration of a conv2d_transpose
// call. Create it with Conv2DTranspose, set options and call Done.
type Conv2DTransposeBuilder struct {
	data, kernel ir.Expr
	attrs        Conv2DTransposeAttrs
}

// Conv2DTranspose starts building a transposed 2-D convolution of data by
// kernel. Defaults match Conv2D, except the kernel layout is IOHW and
// output_padding defaults to 0.
func Conv2DTranspose(data, kernel ir.Expr) *Conv2DTransposeBuilder {
	return &Conv2DTransposeBuilder{
		data:   data,
		kernel: kernel,
		attrs: Conv2DTransposeAttrs{
			Strides:       []int{1},
			Padding:       []int{0},
			OutputPadding: []int{0},
			Dilation:      []int{1},
			Groups:        1,
			DataLayout:    "NCHW",
			KernelLayout:  "IOHW",
		},
	}
}

// Strides sets the spatial strides, one value for both axes or one per axis.
func (b *Conv2DTransposeBuilder) Strides(strides ...int) *Conv2DTransposeBuilder {
	b.attrs.Strides = strides
	return b
}

// Padding sets the input padding: one value for all sides, two as
// (height, width), or four as (top, left, bottom, right).
func (b *Conv2DTransposeBuilder) Padding(padding ...int) *Conv2DTransposeBuilder {
	b.attrs.Padding = padding
	return b
}

// OutputPadding sets the extra size added to one side of each output spatial
// axis, used to disambiguate the output shape when strides are larger than 1.
func (b *Conv2DTransposeBuilder) OutputPadding(padding ...int) *Conv2DTransposeBuilder {
	b.attrs.OutputPadding = padding
	return b
}

// Dilation sets the kernel dilation, one value for both axes or one per axis.
func (b *Conv2DTransposeBuilder) Dilation(dilation ...int) *Conv2DTransposeBuilder {
	b.attrs.Dilation = dilation
	return b
}

// Groups sets the number of feature groups.
func (b *Conv2DTransposeBuilder) Groups(groups int) *Conv2DTransposeBuilder {
	b.attrs.Groups = groups
	return b
}

// DataLayout sets the layout of the data tensor, a permutation of "NCHW".
func (b *Conv2DTransposeBuilder) DataLayout(l string) *Conv2DTransposeBuilder {
	b.attrs.DataLayout = l
	return b
}

// KernelLayout sets the layout of the kernel tensor, a permutation of "IOHW".
func (b *Conv2DTransposeBuilder) KernelLayout(l string) *Conv2DTransposeBuilder {
	b.attrs.KernelLayout = l
	return b
}

// OutLayout sets the layout of the output tensor, a permutation of "NCHW".
func (b *Conv2DTransposeBuilder) OutLayout(l string) *Conv2DTransposeBuilder {
	b.attrs.OutLayout = l
	return b
}

// OutDType forces the output element dtype.
func (b *Conv2DTransposeBuilder) OutDType(dtype dtypes.DType) *Conv2DTransposeBuilder {
	b.attrs.OutDType = dtype
	return b
}

// Done validates the configuration and builds the call node.
func (b *Conv2DTransposeBuilder) Done() *ir.Call {
	attrs := b.attrs
	attrs.Padding = ops.CompletePadding2D(attrs.Padding)
	attrs.OutputPadding = ops.BroadcastPair(attrs.OutputPadding, "output_padding")
	attrs.Strides = ops.BroadcastPair(attrs.Strides, "strides")
	attrs.Dilation = ops.BroadcastPair(attrs.Dilation, "dilation")
	if attrs.Groups <= 0 {
		exceptions.Panicf("nn.Conv2DTranspose: the number of groups must be positive, got %d", attrs.Groups)
	}
	if attrs.OutLayout == "" {
		attrs.OutLayout = attrs.DataLayout
	}
	return &ir.Call{
		Callee: Conv2DTransposeOp,
		Args:   []ir.Expr{b.data, b.kernel},
		Attrs:  &attrs,
	}
}

func inferConv2D(ctx *ir.InferContext, call *ir.Call) sinfo.StructInfo {
	path := ir.RootPath(Conv2DOpName)
	attrs := call.Attrs.(*Conv2DAttrs)
	inputs := ops.InputTensorInfo(ctx, call, path.Attr("args"), 2)
	data, kernel := inputs[0], inputs[1]

	dataLayout, data2NCHW := ops.CheckTensorLayout(ctx, path.Attr("data_layout"), attrs.DataLayout, "NCHW", "data")
	kernelLayout, kernel2OIHW := ops.CheckTensorLayout(ctx, path.Attr("kernel_layout"), attrs.KernelLayout, "OIHW", "kernel")
	_, out2NCHW := ops.CheckTensorLayout(ctx, path.Attr("out_layout"), attrs.OutLayout, "NCHW", "output")

	dataDims := ops.CheckRankPerLayout(ctx, path.Attr("args").Index(0), data, dataLayout, "data")
	kernelDims := ops.CheckRankPerLayout(ctx, path.Attr("args").Index(1), kernel, kernelLayout, "kernel")

	outDType := attrs.OutDType
	if outDType == dtypes.InvalidDType {
		outDType = ops.InferBinaryArithDType(data, kernel)
	}
	if dataDims == nil || kernelDims == nil {
		return sinfo.TensorOfRank(outDType, len(attrs.OutLayout))
	}

	dataNCHW := data2NCHW.ForwardShape(dataDims)
	kernelOIHW := kernel2OIHW.ForwardShape(kernelDims)

	groups := symbolic.Const(int64(attrs.Groups))
	dataChannels := dataNCHW[1]
	kernelInChannels := symbolic.Mul(kernelOIHW[1], groups)
	if ctx.Analyzer.CanProve(symbolic.NE(dataChannels, kernelInChannels)) {
		ctx.ReportFatalf(path.Attr("args"),
			"the data channel size must equal the kernel input channel size times the number of groups, but the data channel size is %s while the kernel input channel size and number of groups are %s and %d",
			dataChannels, kernelOIHW[1], attrs.Groups)
	} else if !ctx.Analyzer.CanProveEqual(dataChannels, kernelInChannels) {
		ctx.DeferAssumption(path.Attr("args"), symbolic.EQ(dataChannels, kernelInChannels))
	}
	ocMod := symbolic.FloorMod(kernelOIHW[0], groups)
	if ctx.Analyzer.CanProve(symbolic.NE(ocMod, symbolic.Const(0))) {
		ctx.ReportFatalf(path.Attr("groups"),
			"the number of output channels must be divisible by the number of groups, but the number of output channels is %s while the number of groups is %d",
			kernelOIHW[0], attrs.Groups)
	} else if !ctx.Analyzer.CanProveEqual(ocMod, symbolic.Const(0)) {
		ctx.DeferAssumption(path.Attr("groups"), symbolic.EQ(ocMod, symbolic.Const(0)))
	}

	outNCHW := make([]symbolic.Expr, 4)
	outNCHW[0] = dataNCHW[0]
	outNCHW[1] = kernelOIHW[0]
	outNCHW[2] = convOutAxis(ctx, dataNCHW[2], kernelOIHW[2],
		attrs.Strides[0], attrs.Padding[0]+attrs.Padding[2], attrs.Dilation[0])
	outNCHW[3] = convOutAxis(ctx, dataNCHW[3], kernelOIHW[3],
		attrs.Strides[1], attrs.Padding[1]+attrs.Padding[3], attrs.Dilation[1])

	return sinfo.MakeTensor(outDType, out2NCHW.BackwardShape(outNCHW))
}

// convOutAxis computes floor((in + pad - dilation*(k-1) - 1) / stride) + 1.
func convOutAxis(ctx *ir.InferContext, in, k symbolic.Expr, stride, pad, dilation int) symbolic.Expr {
	numerator := symbolic.Sub(
		symbolic.Add(in, symbolic.Const(int64(pad))),
		symbolic.Add(
			symbolic.Mul(symbolic.Const(int64(dilation)), symbolic.Sub(k, symbolic.Const(1))),
			symbolic.Const(1)))
	return ctx.Analyzer.Simplify(
		symbolic.Add(symbolic.FloorDiv(numerator, symbolic.Const(int64(stride))), symbolic.Const(1)))
}

func inferConv2DTranspose(ctx *ir.InferContext, call *ir.Call) sinfo.StructInfo {
	path := ir.RootPath(Conv2DTransposeOpName)
	attrs := call.Attrs.(*Conv2DTransposeAttrs)
	inputs := ops.InputTensorInfo(ctx, call, path.Attr("args"), 2)
	data, kernel := inputs[0], inputs[1]

	dataLayout, data2NCHW := ops.CheckTensorLayout(ctx, path.Attr("data_layout"), attrs.DataLayout, "NCHW", "data")
	kernelLayout, kernel2IOHW := ops.CheckTensorLayout(ctx, path.Attr("kernel_layout"), attrs.KernelLayout, "IOHW", "kernel")
	_, out2NCHW := ops.CheckTensorLayout(ctx, path.Attr("out_layout"), attrs.OutLayout, "NCHW", "output")

	dataDims := ops.CheckRankPerLayout(ctx, path.Attr("args").Index(0), data, dataLayout, "data")
	kernelDims := ops.CheckRankPerLayout(ctx, path.Attr("args").Index(1), kernel, kernelLayout, "kernel")

	outDType := attrs.OutDType
	if outDType == dtypes.InvalidDType {
		outDType = ops.InferBinaryArithDType(data, kernel)
	}
	if dataDims == nil || kernelDims == nil {
		return sinfo.TensorOfRank(outDType, len(attrs.OutLayout))
	}

	dataNCHW := data2NCHW.ForwardShape(dataDims)
	kernelIOHW := kernel2IOHW.ForwardShape(kernelDims)

	dataChannels := dataNCHW[1]
	kernelInChannels := kernelIOHW[0]
	if ctx.Analyzer.CanProve(symbolic.NE(dataChannels, kernelInChannels)) {
		ctx.ReportFatalf(path.Attr("args"),
			"the data channel size must equal the kernel input channel size, but the data channel size is %s while the kernel input channel size is %s",
			dataChannels, kernelInChannels)
	} else if !ctx.Analyzer.CanProveEqual(dataChannels, kernelInChannels) {
		ctx.DeferAssumption(path.Attr("args"), symbolic.EQ(dataChannels, kernelInChannels))
	}
	groups := symbolic.Const(int64(attrs.Groups))
	icMod := symbolic.FloorMod(kernelInChannels, groups)
	if ctx.Analyzer.CanProve(symbolic.NE(icMod, symbolic.Const(0))) {
		ctx.ReportFatalf(path.Attr("groups"),
			"the number of input channels must be divisible by the number of groups, but the number of input channels is %s while the number of groups is %d",
			kernelInChannels, attrs.Groups)
	} else if !ctx.Analyzer.CanProveEqual(icMod, symbolic.Const(0)) {
		ctx.DeferAssumption(path.Attr("groups"), symbolic.EQ(icMod, symbolic.Const(0)))
	}
	if attrs.OutputPadding[0] >= attrs.Strides[0] || attrs.OutputPadding[1] >= attrs.Strides[1] {
		ctx.ReportFatalf(path.Attr("output_padding"),
			"the output padding must be less than the strides, but the output padding is %v while the strides are %v",
			attrs.OutputPadding, attrs.Strides)
	}

	outNCHW := make([]symbolic.Expr, 4)
	outNCHW[0] = dataNCHW[0]
	outNCHW[1] = ctx.Analyzer.Simplify(symbolic.Mul(kernelIOHW[1], groups))
	outNCHW[2] = convTransposeOutAxis(ctx, dataNCHW[2], kernelIOHW[2],
		attrs.Strides[0], attrs.Padding[0]+attrs.Padding[2], attrs.Dilation[0], attrs.OutputPadding[0])
	outNCHW[3] = convTransposeOutAxis(ctx, dataNCHW[3], kernelIOHW[3],
		attrs.Strides[1], attrs.Padding[1]+attrs.Padding[3], attrs.Dilation[1], attrs.OutputPadding[1])

	return sinfo.MakeTensor(outDType, out2NCHW.BackwardShape(outNCHW))
}

// convTransposeOutAxis computes
// (in - 1)*stride - pad + dilation*(k-1) + outputPadding + 1.
func convTransposeOutAxis(ctx *ir.InferContext, in, k symbolic.Expr, stride, pad, dilation, outputPadding int) symbolic.Expr {
	out := symbolic.Add(
		symbolic.Sub(
			symbolic.Mul(symbolic.Sub(in, symbolic.Const(1)), symbolic.Const(int64(stride))),
			symbolic.Const(int64(pad))),
		symbolic.Add(
			symbolic.Mul(symbolic.Const(int64(dilation)), symbolic.Sub(k, symbolic.Const(1))),
			symbolic.Const(int64(outputPadding)+1)))
	return ctx.Analyzer.Simplify(out)
}

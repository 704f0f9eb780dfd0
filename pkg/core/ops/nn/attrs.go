// Package nn implements the neural-network operators of the extensible
// operator set, currently the 2-D convolution pair.
package nn

import (
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
)

// Conv2DAttrs is the attribute bag of tensoric.nn.conv2d. All lists are in
// canonical form: strides and dilation per spatial axis, padding as
// (top, left, bottom, right).
type Conv2DAttrs struct {
	Strides      []int
	Padding      []int
	Dilation     []int
	Groups       int
	DataLayout   string
	KernelLayout string
	OutLayout    string
	OutDType     dtypes.DType
}

// Conv2DAttrsTypeKey identifies Conv2DAttrs bags.
const Conv2DAttrsTypeKey = "tensoric.attrs.Conv2DAttrs"

func (a *Conv2DAttrs) TypeKey() string { return Conv2DAttrsTypeKey }

// Fields lists the attributes in declaration order.
func (a *Conv2DAttrs) Fields() []ir.AttrField {
	return []ir.AttrField{
		{Name: "strides", Value: ir.ObjectAttr(a.Strides)},
		{Name: "padding", Value: ir.ObjectAttr(a.Padding)},
		{Name: "dilation", Value: ir.ObjectAttr(a.Dilation)},
		{Name: "groups", Value: ir.IntAttr(int64(a.Groups))},
		{Name: "data_layout", Value: ir.StringAttr(a.DataLayout)},
		{Name: "kernel_layout", Value: ir.StringAttr(a.KernelLayout)},
		{Name: "out_layout", Value: ir.StringAttr(a.OutLayout)},
		{Name: "out_dtype", Value: ir.DTypeAttr(a.OutDType)},
	}
}

// Conv2DTransposeAttrs is the attribute bag of tensoric.nn.conv2d_transpose.
type Conv2DTransposeAttrs struct {
	Strides       []int
	Padding       []int
	OutputPadding []int
	Dilation      []int
	Groups        int
	DataLayout    string
	KernelLayout  string
	OutLayout     string
	OutDType      dtypes.DType
}

// Conv2DTransposeAttrsTypeKey identifies Conv2DTransposeAttrs bags.
const Conv2DTransposeAttrsTypeKey = "tensoric.attrs.Conv2DTransposeAttrs"

func (a *Conv2DTransposeAttrs) TypeKey() string { return Conv2DTransposeAttrsTypeKey }

// Fields lists the attributes in declaration order.
func (a *Conv2DTransposeAttrs) Fields() []ir.AttrField {
	return []ir.AttrField{
		{Name: "strides", Value: ir.ObjectAttr(a.Strides)},
		{Name: "padding", Value: ir.ObjectAttr(a.Padding)},
		{Name: "output_padding", Value: ir.ObjectAttr(a.OutputPadding)},
		{Name: "dilation", Value: ir.ObjectAttr(a.Dilation)},
		{Name: "groups", Value: ir.IntAttr(int64(a.Groups))},
		{Name: "data_layout", Value: ir.StringAttr(a.DataLayout)},
		{Name: "kernel_layout", Value: ir.StringAttr(a.KernelLayout)},
		{Name: "out_layout", Value: ir.StringAttr(a.OutLayout)},
		{Name: "out_dtype", Value: ir.DTypeAttr(a.OutDType)},
	}
}

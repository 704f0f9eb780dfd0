// Package sinfo defines structural descriptors for IR values.
//
// A structural descriptor captures what is statically known about the value
// an expression produces: for tensors the element dtype and the (possibly
// symbolic, possibly unknown) shape. Descriptors are the currency of shape
// inference: operator inference functions consume the descriptors of the
// arguments and produce the descriptor of the result.
package sinfo

import (
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/distributed"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

// NDimUnknown marks a tensor whose rank is not statically known.
const NDimUnknown = -1

// StructInfo is the structural descriptor of an IR value.
//
// The set of implementations is closed: *Tensor, *DTensor, *Tuple, *Shape
// and *Object. Consumers switch on the concrete type and treat any other
// value as a bug.
type StructInfo interface {
	// String renders the descriptor in its canonical text form.
	String() string

	isStructInfo()
}

// Tensor describes a tensor value: element dtype plus shape knowledge.
//
// Shape knowledge comes in three levels: full symbolic dims, rank only
// (Dims nil, NDim >= 0), or nothing (Dims nil, NDim == NDimUnknown).
type Tensor struct {
	// DType of the tensor elements. dtypes.InvalidDType means unknown.
	DType dtypes.DType

	// Dims holds one symbolic extent per axis, or nil if dims are unknown.
	Dims []symbolic.Expr

	ndim int
}

// MakeTensor creates a descriptor with fully known (possibly symbolic) dims.
func MakeTensor(dtype dtypes.DType, dims []symbolic.Expr) *Tensor {
	return &Tensor{DType: dtype, Dims: dims, ndim: len(dims)}
}

// TensorOfRank creates a descriptor where only the rank is known.
func TensorOfRank(dtype dtypes.DType, ndim int) *Tensor {
	if ndim < 0 {
		exceptions.Panicf("sinfo.TensorOfRank: rank must be >= 0, got %d", ndim)
	}
	return &Tensor{DType: dtype, ndim: ndim}
}

// TensorUnknown creates a descriptor where neither dims nor rank are known.
func TensorUnknown(dtype dtypes.DType) *Tensor {
	return &Tensor{DType: dtype, ndim: NDimUnknown}
}

// NDim returns the tensor rank, or NDimUnknown.
func (t *Tensor) NDim() int { return t.ndim }

// HasDims reports whether the per-axis extents are known.
func (t *Tensor) HasDims() bool { return t.Dims != nil }

func (t *Tensor) String() string {
	var sb strings.Builder
	sb.WriteString("Tensor(")
	t.writeInner(&sb)
	sb.WriteString(")")
	return sb.String()
}

func (t *Tensor) writeInner(sb *strings.Builder) {
	needsComma := false
	if t.HasDims() {
		sb.WriteString("(")
		for i, dim := range t.Dims {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(dim.String())
		}
		if len(t.Dims) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
		needsComma = true
	}
	if t.DType != dtypes.InvalidDType {
		if needsComma {
			sb.WriteString(", ")
		}
		sb.WriteString("dtype=\"")
		sb.WriteString(t.DType.String())
		sb.WriteString("\"")
		needsComma = true
	}
	if !t.HasDims() && t.ndim != NDimUnknown {
		if needsComma {
			sb.WriteString(", ")
		}
		sb.WriteString("ndim=")
		sb.WriteString(strconv.Itoa(t.ndim))
	}
}

func (t *Tensor) isStructInfo() {}

// DTensor describes a tensor distributed across a device mesh.
type DTensor struct {
	Tensor    *Tensor
	Mesh      *distributed.DeviceMesh
	Placement distributed.ShardSpec
}

// MakeDTensor attaches mesh placement to a tensor descriptor.
func MakeDTensor(tensor *Tensor, mesh *distributed.DeviceMesh, placement distributed.ShardSpec) *DTensor {
	if err := placement.Validate(mesh); err != nil {
		exceptions.Panicf("sinfo.MakeDTensor: %v", err)
	}
	if tensor.HasDims() && placement.Rank() != tensor.NDim() {
		exceptions.Panicf("sinfo.MakeDTensor: placement has %d entries for a rank-%d tensor",
			placement.Rank(), tensor.NDim())
	}
	return &DTensor{Tensor: tensor, Mesh: mesh, Placement: placement}
}

func (d *DTensor) String() string {
	var sb strings.Builder
	sb.WriteString("DTensor(")
	d.Tensor.writeInner(&sb)
	sb.WriteString(", mesh=\"")
	sb.WriteString(d.Mesh.Name())
	sb.WriteString("\", placement=\"")
	sb.WriteString(d.Placement.String())
	sb.WriteString("\")")
	return sb.String()
}

func (d *DTensor) isStructInfo() {}

// Tuple describes a fixed-arity heterogeneous aggregate.
type Tuple struct {
	Fields []StructInfo
}

// MakeTuple creates a tuple descriptor from its field descriptors.
func MakeTuple(fields ...StructInfo) *Tuple {
	return &Tuple{Fields: fields}
}

func (t *Tuple) String() string {
	var sb strings.Builder
	sb.WriteString("Tuple(")
	for i, field := range t.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *Tuple) isStructInfo() {}

// Shape describes a first-class shape value.
type Shape struct {
	// Values are the shape's extents, or nil if unknown.
	Values []symbolic.Expr
}

// MakeShape creates a shape descriptor from its extents.
func MakeShape(values ...symbolic.Expr) *Shape {
	return &Shape{Values: values}
}

func (s *Shape) String() string {
	if s.Values == nil {
		return "Shape"
	}
	var sb strings.Builder
	sb.WriteString("Shape([")
	for i, v := range s.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("])")
	return sb.String()
}

func (s *Shape) isStructInfo() {}

// Object describes a value about which nothing structural is known.
type Object struct{}

func (o *Object) String() string { return "Object" }

func (o *Object) isStructInfo() {}

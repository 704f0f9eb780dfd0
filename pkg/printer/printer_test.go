package printer

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"github.com/tensoric/tensoric/pkg/core/distributed"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/ops"
	"github.com/tensoric/tensoric/pkg/core/ops/nn"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"github.com/tensoric/tensoric/pkg/printer/doc"
)

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"))
}

func TestPrintConv2D(t *testing.T) {
	x := &ir.Var{Name: "x"}
	w := &ir.Var{Name: "w"}
	call := nn.Conv2D(x, w).Strides(2).Padding(1).Done()

	p := New()
	got := p.Print(call)
	require.Equal(t,
		`T.nn.conv2d(x, w, strides=[2, 2], padding=[1, 1, 1, 1], dilation=[1, 1], groups=1, data_layout="NCHW", kernel_layout="OIHW", out_layout="NCHW", out_dtype="")`,
		got)

	// Rendering is deterministic.
	require.Equal(t, got, p.Print(call))
	golden(t).Assert(t, "conv2d_call", []byte(got))
}

func TestPrintDictAttrsSorted(t *testing.T) {
	x := &ir.Var{Name: "x"}
	call := &ir.Call{
		Callee: &ir.Var{Name: "f"},
		Args:   []ir.Expr{x},
		Attrs: ir.DictAttrs{
			"zeta":  ir.IntAttr(1),
			"alpha": ir.BoolAttr(true),
			"mid":   ir.FloatAttr(0.5),
		},
	}
	p := New()
	got := p.Print(call)
	require.Equal(t, `f(x, alpha=True, mid=0.5, zeta=1)`, got)
	for i := 0; i < 10; i++ {
		require.Equal(t, got, p.Print(call))
	}
}

func TestPrintExternCallee(t *testing.T) {
	x := &ir.Var{Name: "x"}
	call := &ir.Call{
		Callee:    &ir.ExternFunc{Symbol: "vm.builtin.copy"},
		Args:      []ir.Expr{x},
		Attrs:     ir.DictAttrs{"size": ir.IntAttr(4)},
		SInfoArgs: []sinfo.StructInfo{sinfo.TensorOfRank(dtypes.Float32, 2)},
	}
	p := New()
	require.Equal(t,
		`T.call_packed("vm.builtin.copy", x, attrs_type_key="DictAttrs", size=4, sinfo_args=(T.Tensor(dtype="float32", ndim=2),))`,
		p.Print(call))

	// A schema'd bag on an extern callee leads with its own type key.
	call = &ir.Call{
		Callee: &ir.ExternFunc{Symbol: "my_conv"},
		Args:   []ir.Expr{x},
		Attrs: &nn.Conv2DAttrs{
			Strides: []int{1, 1}, Padding: []int{0, 0, 0, 0}, Dilation: []int{1, 1},
			Groups: 1, DataLayout: "NCHW", KernelLayout: "OIHW", OutLayout: "NCHW",
		},
	}
	require.Contains(t, p.Print(call), `attrs_type_key="tensoric.attrs.Conv2DAttrs", strides=`)
}

func TestPrintCallTIR(t *testing.T) {
	x := &ir.Var{Name: "x"}
	w := &ir.Var{Name: "w"}
	gv := &ir.GlobalVar{Name: "tir_matmul"}
	out := sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))
	p := New()

	call := ops.CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x, w}}, []sinfo.StructInfo{out}, nil)
	require.Equal(t,
		`T.call_tir(tir_matmul, (x, w), out_sinfo=T.Tensor((2, 3), dtype="float32"))`,
		p.Print(call))

	// Multiple declared results render as a list.
	out2 := sinfo.TensorOfRank(dtypes.Float32, 2)
	call = ops.CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x, w}}, []sinfo.StructInfo{out, out2}, nil)
	require.Equal(t,
		`T.call_tir(tir_matmul, (x, w), out_sinfo=[T.Tensor((2, 3), dtype="float32"), T.Tensor(dtype="float32", ndim=2)])`,
		p.Print(call))

	// Scalar parameters ride in the tir_vars keyword.
	n := symbolic.NewVar("n")
	call = ops.CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{out},
		&ir.ShapeExpr{Values: []symbolic.Expr{n}})
	require.Equal(t,
		`T.call_tir(tir_matmul, (x,), out_sinfo=T.Tensor((2, 3), dtype="float32"), tir_vars=T.shape([n]))`,
		p.Print(call))
}

func TestPrintCallDPSPacked(t *testing.T) {
	x := &ir.Var{Name: "x"}
	out := sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))
	call := ops.CallDPSPacked(&ir.ExternFunc{Symbol: "my_func"},
		&ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{out})
	require.Equal(t,
		`T.call_dps_packed("my_func", (x,), out_sinfo=T.Tensor((2, 3), dtype="float32"))`,
		New().Print(call))
}

func TestPrintDistCallTIR(t *testing.T) {
	x := &ir.Var{Name: "x"}
	gv := &ir.GlobalVar{Name: "tir_matmul"}
	mesh := must.M1(distributed.NewDeviceMesh([]int{2, 2}, []string{"x", "y"}))
	tensor := sinfo.MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))
	dt := sinfo.MakeDTensor(tensor, mesh, distributed.NewShardSpec("x", distributed.Replicated))
	p := New()

	// A single distributed result switches the spelling.
	call := ops.CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{dt}, nil)
	require.Equal(t,
		`T.dist.call_tir(tir_matmul, (x,), out_sinfo=T.DTensor((2, 3), dtype="float32", device_mesh="mesh", placement="S(x), R"))`,
		p.Print(call))

	// So does a distributed member anywhere in a tuple of results.
	call = ops.CallTIR(gv, &ir.Tuple{Fields: []ir.Expr{x}}, []sinfo.StructInfo{tensor, dt}, nil)
	got := p.Print(call)
	require.Equal(t,
		`T.dist.call_tir(tir_matmul, (x,), out_sinfo=[T.Tensor((2, 3), dtype="float32"), T.DTensor((2, 3), dtype="float32", device_mesh="mesh", placement="S(x), R")])`,
		got)
	golden(t).Assert(t, "dist_call_tir", []byte(got))
}

func TestPrintVarCallee(t *testing.T) {
	call := &ir.Call{
		Callee:    &ir.Var{Name: "local_func"},
		Args:      []ir.Expr{&ir.Var{Name: "x"}},
		SInfoArgs: []sinfo.StructInfo{&sinfo.Object{}},
	}
	require.Equal(t, `local_func(x, sinfo_args=(T.Object(),))`, New().Print(call))
}

func TestPrintSymbolicShape(t *testing.T) {
	n := symbolic.NewVar("n")
	info := sinfo.MakeTensor(dtypes.Float32, []symbolic.Expr{n, symbolic.Const(16)})
	require.Equal(t, `T.Tensor((n, 16), dtype="float32")`, doc.Format(New().StructInfoDoc(info)))
}

func TestPrintOpaqueAttrFails(t *testing.T) {
	call := &ir.Call{
		Callee: &ir.Var{Name: "f"},
		Attrs:  ir.DictAttrs{"handle": ir.OpaqueAttr(struct{}{})},
	}
	require.Panics(t, func() { New().Print(call) })

	call.Attrs = ir.DictAttrs{"data": ir.BufferAttr([]byte{1, 2})}
	require.Panics(t, func() { New().Print(call) })
}

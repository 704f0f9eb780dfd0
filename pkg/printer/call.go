package printer

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/ir"
	"github.com/tensoric/tensoric/pkg/core/ops"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/printer/doc"
)

// opDoc renders an operator name. Names in the tensoric namespace become
// dotted accesses under the script root, e.g. tensoric.nn.conv2d turns into
// T.nn.conv2d; foreign names stay bare identifiers.
func opDoc(name string) doc.Doc {
	const prefix = "tensoric."
	if !strings.HasPrefix(name, prefix) {
		return &doc.Id{Name: name}
	}
	return doc.Access(ScriptRoot, strings.Split(name[len(prefix):], ".")...)
}

func (p *Printer) callDoc(call *ir.Call) doc.Doc {
	if op, ok := call.Callee.(*ir.Op); ok {
		if op.Name == ops.CallTIROpName || op.Name == ops.CallDPSPackedOpName {
			return p.dpsCallDoc(call, op.Name)
		}
	}
	return p.genericCallDoc(call)
}

// dpsCallDoc renders the destination-passing-style pseudo-calls. The callee
// and the input tuple stay positional; the declared results become the
// out_sinfo keyword, a list when there is more than one. A distributed
// result switches the call_tir spelling to dist.call_tir.
func (p *Printer) dpsCallDoc(call *ir.Call, opName string) doc.Doc {
	if len(call.Args) != 2 && len(call.Args) != 3 {
		exceptions.Panicf("printer: %s expects 2 or 3 arguments, got %d", opName, len(call.Args))
	}
	if len(call.SInfoArgs) != 1 {
		exceptions.Panicf("printer: %s expects exactly one declared result descriptor, got %d",
			opName, len(call.SInfoArgs))
	}
	args := []doc.Doc{p.Expr(call.Args[0]), p.Expr(call.Args[1])}

	isDTensor := false
	var outSInfo doc.Doc
	if tuple, ok := call.SInfoArgs[0].(*sinfo.Tuple); ok {
		fields := make([]doc.Doc, len(tuple.Fields))
		for i, field := range tuple.Fields {
			if _, ok := field.(*sinfo.DTensor); ok {
				isDTensor = true
			}
			fields[i] = p.StructInfoDoc(field)
		}
		outSInfo = &doc.List{Elems: fields}
	} else {
		if _, ok := call.SInfoArgs[0].(*sinfo.DTensor); ok {
			isDTensor = true
		}
		outSInfo = p.StructInfoDoc(call.SInfoArgs[0])
	}
	kwargs := []doc.Kwarg{{Key: "out_sinfo", Value: outSInfo}}

	if opName == ops.CallDPSPackedOpName {
		return &doc.Call{Callee: doc.Access(ScriptRoot, "call_dps_packed"), Args: args, Kwargs: kwargs}
	}
	if len(call.Args) == 3 {
		kwargs = append(kwargs, doc.Kwarg{Key: "tir_vars", Value: p.Expr(call.Args[2])})
	}
	if isDTensor {
		return &doc.Call{Callee: doc.Access(ScriptRoot, "dist", "call_tir"), Args: args, Kwargs: kwargs}
	}
	return &doc.Call{Callee: doc.Access(ScriptRoot, "call_tir"), Args: args, Kwargs: kwargs}
}

func (p *Printer) genericCallDoc(call *ir.Call) doc.Doc {
	var callee doc.Doc
	var args []doc.Doc
	var kwargs []doc.Kwarg

	_, isExtern := call.Callee.(*ir.ExternFunc)
	switch c := call.Callee.(type) {
	case *ir.ExternFunc:
		callee = doc.Access(ScriptRoot, "call_packed")
		args = append(args, doc.Str(c.Symbol))
	case *ir.Op:
		callee = opDoc(c.Name)
	case *ir.Var, *ir.GlobalVar:
		callee = p.Expr(c)
	default:
		exceptions.Panicf("printer: callee of type %T cannot head a call", call.Callee)
	}

	for _, arg := range call.Args {
		args = append(args, p.Expr(arg))
	}

	if call.Attrs != nil {
		if isExtern {
			kwargs = append(kwargs, doc.Kwarg{Key: "attrs_type_key", Value: doc.Str(call.Attrs.TypeKey())})
		}
		kwargs = append(kwargs, p.AttrsKwargs(call.Attrs)...)
	}

	if len(call.SInfoArgs) > 0 {
		elems := make([]doc.Doc, len(call.SInfoArgs))
		for i, info := range call.SInfoArgs {
			elems[i] = p.StructInfoDoc(info)
		}
		kwargs = append(kwargs, doc.Kwarg{Key: "sinfo_args", Value: &doc.Tuple{Elems: elems}})
	}

	return &doc.Call{Callee: callee, Args: args, Kwargs: kwargs}
}

package printer

import (
	"github.com/gomlx/exceptions"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/sinfo"
	"github.com/tensoric/tensoric/pkg/printer/doc"
)

// StructInfoDoc renders a structural descriptor.
func (p *Printer) StructInfoDoc(info sinfo.StructInfo) doc.Doc {
	switch info := info.(type) {
	case *sinfo.Tensor:
		return &doc.Call{Callee: doc.Access(ScriptRoot, "Tensor"), Args: p.tensorArgs(info), Kwargs: p.tensorKwargs(info)}
	case *sinfo.DTensor:
		kwargs := p.tensorKwargs(info.Tensor)
		kwargs = append(kwargs,
			doc.Kwarg{Key: "device_mesh", Value: doc.Str(info.Mesh.Name())},
			doc.Kwarg{Key: "placement", Value: doc.Str(info.Placement.String())})
		return &doc.Call{Callee: doc.Access(ScriptRoot, "DTensor"), Args: p.tensorArgs(info.Tensor), Kwargs: kwargs}
	case *sinfo.Tuple:
		elems := make([]doc.Doc, len(info.Fields))
		for i, field := range info.Fields {
			elems[i] = p.StructInfoDoc(field)
		}
		return &doc.Call{Callee: doc.Access(ScriptRoot, "Tuple"), Args: elems}
	case *sinfo.Shape:
		if info.Values == nil {
			return &doc.Call{Callee: doc.Access(ScriptRoot, "Shape")}
		}
		elems := make([]doc.Doc, len(info.Values))
		for i, v := range info.Values {
			elems[i] = p.DimDoc(v)
		}
		return &doc.Call{Callee: doc.Access(ScriptRoot, "Shape"), Args: []doc.Doc{&doc.List{Elems: elems}}}
	case *sinfo.Object:
		return &doc.Call{Callee: doc.Access(ScriptRoot, "Object")}
	default:
		exceptions.Panicf("printer: unknown struct-info type %T", info)
		return nil
	}
}

func (p *Printer) tensorArgs(t *sinfo.Tensor) []doc.Doc {
	if !t.HasDims() {
		return nil
	}
	elems := make([]doc.Doc, len(t.Dims))
	for i, dim := range t.Dims {
		elems[i] = p.DimDoc(dim)
	}
	return []doc.Doc{&doc.Tuple{Elems: elems}}
}

func (p *Printer) tensorKwargs(t *sinfo.Tensor) []doc.Kwarg {
	var kwargs []doc.Kwarg
	if t.DType != dtypes.InvalidDType {
		kwargs = append(kwargs, doc.Kwarg{Key: "dtype", Value: doc.Str(t.DType.String())})
	}
	if !t.HasDims() && t.NDim() != sinfo.NDimUnknown {
		kwargs = append(kwargs, doc.Kwarg{Key: "ndim", Value: doc.Int(int64(t.NDim()))})
	}
	return kwargs
}

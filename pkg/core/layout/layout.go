// Package layout handles axis-layout strings such as "NCHW" or "OIHW" and
// the permutations between them.
//
// Operator inference normalizes every input to a canonical layout, runs the
// arithmetic once in canonical terms, and permutes the result back to the
// layout the caller asked for.
package layout

import (
	"github.com/pkg/errors"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
	"github.com/tensoric/tensoric/pkg/support/sets"
	"github.com/tensoric/tensoric/pkg/support/xslices"
)

// Layout is a validated axis-layout string. Each axis is a distinct
// upper-case letter; the string reads major-to-minor.
type Layout struct {
	name string
}

// Parse validates a layout string.
func Parse(name string) (Layout, error) {
	if name == "" {
		return Layout{}, errors.New("layout string cannot be empty")
	}
	seen := sets.Make[byte](len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 'A' || c > 'Z' {
			return Layout{}, errors.Errorf("layout %q: axis %q at position %d is not an upper-case letter", name, string(c), i)
		}
		if seen.Has(c) {
			return Layout{}, errors.Errorf("layout %q: axis %q appears more than once", name, string(c))
		}
		seen.Insert(c)
	}
	return Layout{name: name}, nil
}

// Name returns the layout string.
func (l Layout) Name() string { return l.name }

// NDim returns the number of axes in the layout.
func (l Layout) NDim() int { return len(l.name) }

// Index returns the position of the given axis letter, or -1.
func (l Layout) Index(axis byte) int {
	for i := 0; i < len(l.name); i++ {
		if l.name[i] == axis {
			return i
		}
	}
	return -1
}

func (l Layout) String() string { return l.name }

// Permutation maps axes of a source layout onto a destination layout:
// entry i is the source position of the axis at destination position i.
type Permutation []int

// Normalize parses a layout string and builds the permutation from it to the
// canonical layout of the same axis set. tensorName is used in error messages.
func Normalize(name, canonical, tensorName string) (Layout, Permutation, error) {
	l, err := Parse(name)
	if err != nil {
		return Layout{}, nil, errors.WithMessagef(err, "invalid %s layout", tensorName)
	}
	c, err := Parse(canonical)
	if err != nil {
		return Layout{}, nil, errors.WithMessagef(err, "invalid canonical layout for %s", tensorName)
	}
	perm, err := l.PermutationTo(c)
	if err != nil {
		return Layout{}, nil, errors.WithMessagef(err, "invalid %s layout", tensorName)
	}
	return l, perm, nil
}

// PermutationTo builds the permutation from l to dst. The two layouts must
// hold exactly the same set of axes.
func (l Layout) PermutationTo(dst Layout) (Permutation, error) {
	if l.NDim() != dst.NDim() {
		return nil, errors.Errorf("layouts %q and %q have different ranks (%d vs %d)",
			l.name, dst.name, l.NDim(), dst.NDim())
	}
	if !sets.MakeWith([]byte(l.name)...).Equal(sets.MakeWith([]byte(dst.name)...)) {
		return nil, errors.Errorf("layouts %q and %q do not hold the same axes",
			l.name, dst.name)
	}
	if l.name == dst.name {
		return Permutation(xslices.Iota(0, dst.NDim())), nil
	}
	perm := make(Permutation, dst.NDim())
	for i := 0; i < dst.NDim(); i++ {
		perm[i] = l.Index(dst.name[i])
	}
	return perm, nil
}

// ForwardShape permutes dims given in the source layout into the destination
// layout's order.
func (p Permutation) ForwardShape(dims []symbolic.Expr) []symbolic.Expr {
	out := make([]symbolic.Expr, len(p))
	for i, src := range p {
		out[i] = dims[src]
	}
	return out
}

// BackwardShape permutes dims given in the destination layout back into the
// source layout's order.
func (p Permutation) BackwardShape(dims []symbolic.Expr) []symbolic.Expr {
	out := make([]symbolic.Expr, len(p))
	for i, src := range p {
		out[src] = dims[i]
	}
	return out
}

// ForwardInts is ForwardShape for concrete extents.
func (p Permutation) ForwardInts(dims []int) []int {
	out := make([]int, len(p))
	for i, src := range p {
		out[i] = dims[src]
	}
	return out
}

// BackwardInts is BackwardShape for concrete extents.
func (p Permutation) BackwardInts(dims []int) []int {
	out := make([]int, len(p))
	for i, src := range p {
		out[src] = dims[i]
	}
	return out
}

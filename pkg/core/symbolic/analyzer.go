package symbolic

import (
	"slices"
)

// Analyzer simplifies symbolic integer expressions and proves comparison
// conditions over them.
//
// It normalizes expressions to a linear form -- integer coefficients over
// variables and opaque sub-terms, plus a constant -- which covers everything
// shape arithmetic produces: sums, differences, constant scaling, and
// floordiv/floormod by constants when divisibility is provable.
//
// An Analyzer is not safe for concurrent use; confine one inference pass to
// one analyzer at a time.
type Analyzer struct{}

// New returns a fresh Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// linform is a linear combination: sum of coeff*atom plus a constant.
// Atoms are keyed by their canonical string; each key maps back to a
// representative expression for rebuilding.
type linform struct {
	coeffs map[string]int64
	atoms  map[string]Expr
	c      int64
}

func newLinform() linform {
	return linform{coeffs: make(map[string]int64), atoms: make(map[string]Expr)}
}

func (l *linform) addTerm(atom Expr, coeff int64) {
	if coeff == 0 {
		return
	}
	key := atom.String()
	l.coeffs[key] += coeff
	if l.coeffs[key] == 0 {
		delete(l.coeffs, key)
		delete(l.atoms, key)
		return
	}
	l.atoms[key] = atom
}

func (l *linform) add(other linform, scale int64) {
	l.c += other.c * scale
	for key, coeff := range other.coeffs {
		l.addTerm(other.atoms[key], coeff*scale)
	}
}

func (l *linform) isConst() bool { return len(l.coeffs) == 0 }

// divisibleBy reports whether every coefficient and the constant are
// divisible by d.
func (l *linform) divisibleBy(d int64) bool {
	if l.c%d != 0 {
		return false
	}
	for _, coeff := range l.coeffs {
		if coeff%d != 0 {
			return false
		}
	}
	return true
}

func (l *linform) divideBy(d int64) {
	l.c /= d
	for key := range l.coeffs {
		l.coeffs[key] /= d
	}
}

// floorDiv is integer division rounding towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv: a - floorDiv(a,b)*b.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// linearize converts e to linear form. It always succeeds: sub-expressions it
// cannot decompose become opaque atoms, keyed by their simplified rendering,
// so structurally equal sub-terms still cancel.
func (a *Analyzer) linearize(e Expr) linform {
	lin := newLinform()
	switch node := e.(type) {
	case Const:
		lin.c = int64(node)
	case Var:
		lin.addTerm(node, 1)
	case Binary:
		switch node.Op {
		case OpAdd:
			lin = a.linearize(node.X)
			lin.add(a.linearize(node.Y), 1)
		case OpSub:
			lin = a.linearize(node.X)
			lin.add(a.linearize(node.Y), -1)
		case OpMul:
			lx := a.linearize(node.X)
			ly := a.linearize(node.Y)
			switch {
			case lx.isConst():
				lin = ly
				scale := lx.c
				lin.c *= scale
				for key := range lin.coeffs {
					lin.coeffs[key] *= scale
				}
				lin.dropZeros()
			case ly.isConst():
				lin = lx
				scale := ly.c
				lin.c *= scale
				for key := range lin.coeffs {
					lin.coeffs[key] *= scale
				}
				lin.dropZeros()
			default:
				lin.addTerm(Mul(lx.toExpr(), ly.toExpr()), 1)
			}
		case OpFloorDiv, OpFloorMod:
			lx := a.linearize(node.X)
			ly := a.linearize(node.Y)
			if !ly.isConst() || ly.c == 0 {
				lin.addTerm(Binary{Op: node.Op, X: lx.toExpr(), Y: ly.toExpr()}, 1)
				break
			}
			d := ly.c
			if lx.isConst() {
				if node.Op == OpFloorDiv {
					lin.c = floorDiv(lx.c, d)
				} else {
					lin.c = floorMod(lx.c, d)
				}
				break
			}
			if d > 0 && lx.divisibleBy(d) {
				if node.Op == OpFloorDiv {
					lin = lx
					lin.divideBy(d)
				}
				// Divisible floormod is exactly zero; lin stays empty.
				break
			}
			lin.addTerm(Binary{Op: node.Op, X: lx.toExpr(), Y: Const(d)}, 1)
		}
	}
	return lin
}

func (l *linform) dropZeros() {
	for key, coeff := range l.coeffs {
		if coeff == 0 {
			delete(l.coeffs, key)
			delete(l.atoms, key)
		}
	}
}

// toExpr rebuilds a canonical expression: terms in lexicographic atom order,
// positive coefficients added, negative subtracted, constant last.
func (l *linform) toExpr() Expr {
	keys := make([]string, 0, len(l.coeffs))
	for key := range l.coeffs {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var e Expr
	for _, key := range keys {
		coeff := l.coeffs[key]
		atom := l.atoms[key]
		magnitude := coeff
		if magnitude < 0 {
			magnitude = -magnitude
		}
		var term Expr = atom
		if magnitude != 1 {
			term = Mul(Const(magnitude), atom)
		}
		switch {
		case e == nil && coeff > 0:
			e = term
		case e == nil: // Leading negative term.
			e = Sub(Const(0), term)
		case coeff > 0:
			e = Add(e, term)
		default:
			e = Sub(e, term)
		}
	}
	switch {
	case e == nil:
		return Const(l.c)
	case l.c > 0:
		return Add(e, Const(l.c))
	case l.c < 0:
		return Sub(e, Const(-l.c))
	}
	return e
}

// Simplify returns the canonical simplified form of e: constants folded,
// like terms combined, provably divisible floordiv/floormod reduced.
func (a *Analyzer) Simplify(e Expr) Expr {
	lin := a.linearize(e)
	return lin.toExpr()
}

// Prove attempts to decide cond for every assignment of its variables.
//
// It reduces X-Y to linear form. A constant difference decides the condition
// either way; anything with free terms is Undecided except for conditions
// that hold structurally (X and Y normalize to identical forms).
func (a *Analyzer) Prove(cond Cond) Truth {
	diff := a.linearize(Sub(cond.X, cond.Y))
	if diff.isConst() {
		return decide(cond.Op, diff.c)
	}
	return Undecided
}

// decide evaluates "d OP 0" to Proven or Disproven.
func decide(op CmpOp, d int64) Truth {
	var holds bool
	switch op {
	case CmpEQ:
		holds = d == 0
	case CmpNE:
		holds = d != 0
	case CmpLT:
		holds = d < 0
	case CmpLE:
		holds = d <= 0
	case CmpGT:
		holds = d > 0
	case CmpGE:
		holds = d >= 0
	}
	if holds {
		return Proven
	}
	return Disproven
}

// CanProve is the conservative boolean reduction of Prove: true only when the
// condition is Proven. False means "not provable", not "false".
func (a *Analyzer) CanProve(cond Cond) bool {
	return a.Prove(cond) == Proven
}

// CanProveEqual reports whether x == y is provable.
func (a *Analyzer) CanProveEqual(x, y Expr) bool {
	return a.CanProve(EQ(x, y))
}

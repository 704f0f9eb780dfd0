// Package symbolic implements integer expressions over unresolved symbolic
// variables (e.g. a dynamic batch size), the comparison conditions over them,
// and the Analyzer that simplifies expressions and proves conditions.
//
// The Analyzer is deliberately three-valued: a condition is Proven, Disproven,
// or Undecided. Callers that need a boolean must use CanProve, which is
// conservative -- false means "not provable", never "false".
package symbolic

import (
	"fmt"
	"strconv"

	"github.com/tensoric/tensoric/pkg/support/xslices"
)

// Expr is a symbolic integer expression: a constant, a named variable, or a
// binary operation over two expressions. Expressions are immutable.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Const is an integer literal.
type Const int64

func (Const) isExpr() {}

func (c Const) String() string { return strconv.FormatInt(int64(c), 10) }

// Var is a named symbolic variable.
type Var struct {
	Name string
}

func (Var) isExpr() {}

func (v Var) String() string { return v.Name }

// NewVar returns a variable expression with the given name.
func NewVar(name string) Var { return Var{Name: name} }

// BinOp enumerates the binary operations on symbolic integers.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpFloorDiv
	OpFloorMod
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpFloorDiv:
		return "//"
	case OpFloorMod:
		return "%"
	}
	return "?"
}

// Binary is a binary operation node.
type Binary struct {
	Op   BinOp
	X, Y Expr
}

func (Binary) isExpr() {}

func (b Binary) String() string {
	switch b.Op {
	case OpFloorDiv:
		return fmt.Sprintf("floordiv(%s, %s)", b.X, b.Y)
	case OpFloorMod:
		return fmt.Sprintf("floormod(%s, %s)", b.X, b.Y)
	default:
		return fmt.Sprintf("(%s %s %s)", b.X, b.Op, b.Y)
	}
}

// Add returns x + y.
func Add(x, y Expr) Expr { return Binary{Op: OpAdd, X: x, Y: y} }

// Sub returns x - y.
func Sub(x, y Expr) Expr { return Binary{Op: OpSub, X: x, Y: y} }

// Mul returns x * y.
func Mul(x, y Expr) Expr { return Binary{Op: OpMul, X: x, Y: y} }

// FloorDiv returns floor(x / y).
func FloorDiv(x, y Expr) Expr { return Binary{Op: OpFloorDiv, X: x, Y: y} }

// FloorMod returns x - floor(x/y)*y, the remainder with the sign of y.
func FloorMod(x, y Expr) Expr { return Binary{Op: OpFloorMod, X: x, Y: y} }

// AsConst returns the value of e if it is a constant.
func AsConst(e Expr) (int64, bool) {
	c, ok := e.(Const)
	return int64(c), ok
}

// FromInts converts concrete dimensions to constant expressions.
func FromInts(dims []int) []Expr {
	return xslices.Map(dims, func(dim int) Expr { return Const(dim) })
}

// CmpOp enumerates comparison operators for conditions.
type CmpOp uint8

const (
	CmpEQ CmpOp = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE
)

func (op CmpOp) String() string {
	switch op {
	case CmpEQ:
		return "=="
	case CmpNE:
		return "!="
	case CmpLT:
		return "<"
	case CmpLE:
		return "<="
	case CmpGT:
		return ">"
	case CmpGE:
		return ">="
	}
	return "?"
}

// Cond is a comparison between two symbolic expressions.
type Cond struct {
	Op   CmpOp
	X, Y Expr
}

func (c Cond) String() string { return fmt.Sprintf("%s %s %s", c.X, c.Op, c.Y) }

// EQ returns the condition x == y.
func EQ(x, y Expr) Cond { return Cond{Op: CmpEQ, X: x, Y: y} }

// NE returns the condition x != y.
func NE(x, y Expr) Cond { return Cond{Op: CmpNE, X: x, Y: y} }

// LT returns the condition x < y.
func LT(x, y Expr) Cond { return Cond{Op: CmpLT, X: x, Y: y} }

// LE returns the condition x <= y.
func LE(x, y Expr) Cond { return Cond{Op: CmpLE, X: x, Y: y} }

// GT returns the condition x > y.
func GT(x, y Expr) Cond { return Cond{Op: CmpGT, X: x, Y: y} }

// GE returns the condition x >= y.
func GE(x, y Expr) Cond { return Cond{Op: CmpGE, X: x, Y: y} }

// Truth is the three-valued outcome of trying to prove a condition.
type Truth uint8

const (
	// Undecided means the analyzer can neither prove nor disprove the condition.
	Undecided Truth = iota

	// Proven means the condition holds for every assignment of its variables.
	Proven

	// Disproven means the condition fails for every assignment of its variables.
	Disproven
)

func (t Truth) String() string {
	switch t {
	case Proven:
		return "proven"
	case Disproven:
		return "disproven"
	default:
		return "undecided"
	}
}

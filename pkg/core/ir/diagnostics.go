package ir

import (
	"fmt"
	"strings"
)

// Path locates a value inside an IR node, for error messages.
// Paths are immutable; Attr and Index return extended copies.
type Path struct {
	steps []string
}

// RootPath starts a path at a named root, usually the operator name.
func RootPath(name string) Path {
	return Path{steps: []string{name}}
}

// Attr extends the path with a field access.
func (p Path) Attr(name string) Path {
	steps := make([]string, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return Path{steps: append(steps, "."+name)}
}

// Index extends the path with a positional access.
func (p Path) Index(i int) Path {
	steps := make([]string, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return Path{steps: append(steps, fmt.Sprintf("[%d]", i))}
}

func (p Path) String() string {
	return strings.Join(p.steps, "")
}

// Diagnostic is a fatal inference error. It aborts the whole enclosing
// function's inference pass; there is no catch-and-continue.
type Diagnostic struct {
	// Op is the operator whose inference raised the diagnostic.
	Op string

	// Path locates the offending value.
	Path Path

	Message string
}

func (d *Diagnostic) Error() string {
	if d.Path.steps == nil {
		return fmt.Sprintf("%s: %s", d.Op, d.Message)
	}
	return fmt.Sprintf("%s: %s (at %s)", d.Op, d.Message, d.Path)
}

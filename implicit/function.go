// Package implicit defines the implicit-function capability consumed by the
// cell geometry code, the owning Slicer that pins coordinates to evaluate a
// function on lower dimensional faces, and adapters for sdfx shapes.
package implicit

import (
	"fmt"

	"github.com/notargets/EBGeometry/utils"
)

// Function is a scalar field whose zero level set is the embedded boundary.
// Negative values are inside the domain. Value returns the partial
// derivative selected by the multi-index deriv (all zeros for the value
// itself) at the point x. Only the first Dim() components of deriv and x are
// meaningful.
//
// Implementations must be safe for concurrent evaluation; stateful ones
// should also implement Cloner so that every geometry record evaluates its
// own instance.
type Function interface {
	Dim() int
	Value(deriv utils.IntVect, x utils.RealVect) float64
}

// Cloner is implemented by functions that carry state and must never be
// shared between owners
type Cloner interface {
	Clone() Function
}

// CloneFunction returns a private copy of fn if it supports cloning, and fn
// itself otherwise (immutable functions are values)
func CloneFunction(fn Function) Function {
	if c, ok := fn.(Cloner); ok {
		return c.Clone()
	}
	return fn
}

// Func adapts a closure to the Function interface
type Func struct {
	D int
	F func(deriv utils.IntVect, x utils.RealVect) float64
}

// FuncOf wraps f as a dim-dimensional Function
func FuncOf(dim int, f func(deriv utils.IntVect, x utils.RealVect) float64) Func {
	if dim < 1 || dim > utils.MaxDim {
		panic(fmt.Sprintf("implicit: invalid dimension %d", dim))
	}
	return Func{D: dim, F: f}
}

func (f Func) Dim() int { return f.D }

func (f Func) Value(deriv utils.IntVect, x utils.RealVect) float64 {
	return f.F(deriv, x)
}

package implicit

import (
	"fmt"

	"github.com/notargets/EBGeometry/utils"
)

// Slicer evaluates a Function restricted to the hyperplane x[FixedComp] =
// FixedValue of its parent. A root Slicer wraps the Function itself.
//
// A Slicer exclusively owns its parent chain and its root function: Slice
// and Clone always deep-copy, so two Slicers never share mutable state.
type Slicer struct {
	dim int

	// Root only
	fn Function

	// Sliced only
	parent     *Slicer
	fixedComp  int
	fixedValue float64
}

// NewSlicer creates a root Slicer owning a private copy of fn
func NewSlicer(fn Function) *Slicer {
	return &Slicer{
		dim: fn.Dim(),
		fn:  CloneFunction(fn),
	}
}

// Slice returns a (Dim-1)-dimensional Slicer pinning component fixedComp of
// s to fixedValue. The result owns a deep copy of s.
func (s *Slicer) Slice(fixedComp int, fixedValue float64) *Slicer {
	if s.dim < 2 {
		panic(fmt.Sprintf("implicit: cannot slice a %d-dimensional function", s.dim))
	}
	if fixedComp < 0 || fixedComp >= s.dim {
		panic(fmt.Sprintf("implicit: fixed component %d out of range for dimension %d", fixedComp, s.dim))
	}
	return &Slicer{
		dim:        s.dim - 1,
		parent:     s.Clone(),
		fixedComp:  fixedComp,
		fixedValue: fixedValue,
	}
}

// Clone deep-copies the slicer chain, cloning the root function when it
// implements Cloner
func (s *Slicer) Clone() *Slicer {
	if s == nil {
		return nil
	}
	c := &Slicer{
		dim:        s.dim,
		fixedComp:  s.fixedComp,
		fixedValue: s.fixedValue,
	}
	if s.parent != nil {
		c.parent = s.parent.Clone()
	} else {
		c.fn = CloneFunction(s.fn)
	}
	return c
}

func (s *Slicer) Dim() int { return s.dim }

// Value evaluates the restricted function. Derivatives are taken in the
// free directions only; the pinned direction always carries order zero.
func (s *Slicer) Value(deriv utils.IntVect, x utils.RealVect) float64 {
	if s.parent == nil {
		return s.fn.Value(deriv, x)
	}
	hx := x.Insert(s.fixedComp, s.fixedValue, s.dim+1)
	hd := deriv.Insert(s.fixedComp, 0, s.dim+1)
	return s.parent.Value(hd, hx)
}

// FixedComp and FixedValue describe the hyperplane of a sliced Slicer
func (s *Slicer) FixedComp() int      { return s.fixedComp }
func (s *Slicer) FixedValue() float64 { return s.fixedValue }

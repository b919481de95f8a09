package implicit

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/notargets/EBGeometry/utils"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// DefaultStep is the finite difference step used when none is given
const DefaultStep = 1.e-5

// ScalarFunction evaluates a sampled scalar field and approximates its
// partial derivatives with central finite differences. Derivatives above
// second order are not available and evaluate to NaN, which the normal
// derivative engine reports as a bad normal.
type ScalarFunction struct {
	dim  int
	eval func(x []float64) float64
	step float64
}

// FromScalar wraps a plain scalar field of the given dimension
func FromScalar(dim int, eval func(x []float64) float64, step float64) *ScalarFunction {
	if step <= 0 {
		step = DefaultStep
	}
	return &ScalarFunction{dim: dim, eval: eval, step: step}
}

// FromSDF2 adapts a 2D sdfx shape. The solid interior is the domain.
func FromSDF2(s sdf.SDF2, step float64) *ScalarFunction {
	return FromScalar(2, func(x []float64) float64 {
		return s.Evaluate(v2.Vec{X: x[0], Y: x[1]})
	}, step)
}

// FromSDF3 adapts a 3D sdfx shape. The solid interior is the domain.
func FromSDF3(s sdf.SDF3, step float64) *ScalarFunction {
	return FromScalar(3, func(x []float64) float64 {
		return s.Evaluate(v3.Vec{X: x[0], Y: x[1], Z: x[2]})
	}, step)
}

func (f *ScalarFunction) Dim() int { return f.dim }

func (f *ScalarFunction) Value(deriv utils.IntVect, x utils.RealVect) float64 {
	p := make([]float64, f.dim)
	copy(p, x[:f.dim])

	switch deriv.Sum(f.dim) {
	case 0:
		return f.eval(p)
	case 1:
		return fd.Derivative(f.line(p, first(deriv, f.dim)), p[first(deriv, f.dim)],
			&fd.Settings{Formula: fd.Central, Step: f.step})
	case 2:
		i := first(deriv, f.dim)
		if deriv[i] == 2 {
			return fd.Derivative(f.line(p, i), p[i],
				&fd.Settings{Formula: fd.Central2nd, Step: math.Sqrt(f.step)})
		}
		j := i + 1
		for deriv[j] == 0 {
			j++
		}
		h := mat.NewSymDense(f.dim, nil)
		fd.Hessian(h, f.eval, p, &fd.Settings{Formula: fd.Central, Step: math.Sqrt(f.step)})
		return h.At(i, j)
	default:
		return math.NaN()
	}
}

// line restricts the field to the line through p along dir
func (f *ScalarFunction) line(p []float64, dir int) func(float64) float64 {
	q := make([]float64, len(p))
	copy(q, p)
	return func(t float64) float64 {
		q[dir] = t
		return f.eval(q)
	}
}

func first(deriv utils.IntVect, dim int) int {
	for d := 0; d < dim; d++ {
		if deriv[d] != 0 {
			return d
		}
	}
	return 0
}

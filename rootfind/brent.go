// Package rootfind locates zero crossings of scalar functions on a bracket.
package rootfind

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

const (
	// MaxIterations is the default iteration cap
	MaxIterations = 100
	// Tolerance is the default absolute tolerance on the root
	Tolerance = 1.e-10
	// eps is the relative precision used in the convergence test
	eps = 3.0e-15
)

// ErrNotBracketed is returned when the function has the same sign at both
// ends of the bracket
var ErrNotBracketed = errors.New("rootfind: root is not bracketed")

// Settings control Brent's method. The zero value selects the defaults.
type Settings struct {
	Tolerance     float64
	MaxIterations int
	Logger        *slog.Logger
}

// Result of a root search
type Result struct {
	Root       float64
	Iterations int
	// Converged is false when the iteration cap was reached; Root then holds
	// the best estimate found
	Converged bool
}

// Brent finds a root of f in [a, b] combining bisection, the secant method
// and inverse quadratic interpolation. f(a) and f(b) must differ in sign or
// one of them must be zero.
func Brent(f func(float64) float64, a, b float64, settings *Settings) (Result, error) {
	var (
		tol     = Tolerance
		maxIter = MaxIterations
		logger  = slog.Default()
	)
	if settings != nil {
		if settings.Tolerance > 0 {
			tol = settings.Tolerance
		}
		if settings.MaxIterations > 0 {
			maxIter = settings.MaxIterations
		}
		if settings.Logger != nil {
			logger = settings.Logger
		}
	}

	var (
		c, d, e    float64
		fa, fb, fc float64
		tol1, xm   float64
		p, q, r, s float64
		iter       int
		converged  bool
	)

	fa = f(a)
	fb = f(b)
	if fa*fb > 0 {
		return Result{Root: b}, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNotBracketed, a, fa, b, fb)
	}

	fc = fb
	for iter = 0; iter < maxIter; iter++ {
		if fb*fc > 0 {
			// Rename a, b, c and adjust bounding interval d
			c = a
			fc = fa
			d = b - a
			e = d
		}

		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		// Convergence check
		tol1 = 2.0*eps*math.Abs(b) + 0.5*tol
		xm = 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0.0 {
			converged = true
			break
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation
			s = fb / fa
			if a == c {
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				q = fa / fc
				r = fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}

			// Check whether in bounds
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2.0*p < math.Min(3.0*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				// Accept interpolation
				e = d
				d = p / q
			} else {
				// Interpolation failed, use bisection
				d = xm
				e = d
			}
		} else {
			// Bounds decreasing too slowly, use bisection
			d = xm
			e = d
		}

		// Move last best guess to a
		a = b
		fa = fb

		// Evaluate new trial root
		if math.Abs(d) > tol1 {
			b += d
		} else if xm < 0 {
			b -= tol1
		} else {
			b += tol1
		}
		fb = f(b)
	}

	if !converged {
		logger.Warn("brent root finder exceeded maximum iterations",
			"max_iterations", maxIter, "estimate", b, "residual", fb)
	}

	return Result{Root: b, Iterations: iter, Converged: converged}, nil
}

package cellgeom

import (
	"github.com/notargets/EBGeometry/implicit"
	"github.com/notargets/EBGeometry/utils"
)

// quadric returns |x - c|^2 - r^2 with exact derivatives of every order
func quadric(dim int, c utils.RealVect, r float64) implicit.Func {
	return implicit.FuncOf(dim, func(deriv utils.IntVect, x utils.RealVect) float64 {
		switch deriv.Sum(dim) {
		case 0:
			s := -r * r
			for d := 0; d < dim; d++ {
				s += (x[d] - c[d]) * (x[d] - c[d])
			}
			return s
		case 1:
			for d := 0; d < dim; d++ {
				if deriv[d] == 1 {
					return 2 * (x[d] - c[d])
				}
			}
		case 2:
			for d := 0; d < dim; d++ {
				if deriv[d] == 2 {
					return 2
				}
			}
		}
		return 0
	})
}

// plane returns n.x - o with exact derivatives
func plane(dim int, n utils.RealVect, o float64) implicit.Func {
	return implicit.FuncOf(dim, func(deriv utils.IntVect, x utils.RealVect) float64 {
		switch deriv.Sum(dim) {
		case 0:
			s := -o
			for d := 0; d < dim; d++ {
				s += n[d] * x[d]
			}
			return s
		case 1:
			for d := 0; d < dim; d++ {
				if deriv[d] == 1 {
					return n[d]
				}
			}
		}
		return 0
	})
}

// saddle is x*y, which splits a centered cell into two inside corners
var saddle = implicit.FuncOf(2, func(deriv utils.IntVect, x utils.RealVect) float64 {
	switch deriv {
	case utils.IntVect{}:
		return x[0] * x[1]
	case utils.Unit(0):
		return x[1]
	case utils.Unit(1):
		return x[0]
	case utils.IntVect{1, 1}:
		return 1
	}
	return 0
})

func axis(d int) (n utils.RealVect) {
	n[d] = 1
	return
}

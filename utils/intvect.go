package utils

import (
	"fmt"
	"strings"
)

// MaxDim is the largest spatial dimension supported by the fixed-size tuples
const MaxDim = 3

// IntVect is a fixed-capacity integer tuple. Components at or beyond the
// owning object's dimension are always zero, which keeps IntVect comparable
// and usable as a map key regardless of dimension.
type IntVect [MaxDim]int

// RealVect is the floating point counterpart of IntVect
type RealVect [MaxDim]float64

// Unit returns the unit multi-index in direction dir
func Unit(dir int) (iv IntVect) {
	iv[dir] = 1
	return
}

// Sum returns the total degree of the first dim components
func (iv IntVect) Sum(dim int) (s int) {
	for i := 0; i < dim; i++ {
		s += iv[i]
	}
	return
}

// Add returns the component-wise sum
func (iv IntVect) Add(o IntVect) (r IntVect) {
	for i := range iv {
		r[i] = iv[i] + o[i]
	}
	return
}

// Sub returns the component-wise difference
func (iv IntVect) Sub(o IntVect) (r IntVect) {
	for i := range iv {
		r[i] = iv[i] - o[i]
	}
	return
}

// LessEq reports whether every component of iv is <= the matching
// component of o
func (iv IntVect) LessEq(o IntVect) bool {
	for i := range iv {
		if iv[i] > o[i] {
			return false
		}
	}
	return true
}

// Drop deletes component dir from a dim-tuple, shifting the higher
// components down by one. The result has dim-1 meaningful components.
func (iv IntVect) Drop(dir, dim int) (r IntVect) {
	for j := 0; j < dim-1; j++ {
		if j < dir {
			r[j] = iv[j]
		} else {
			r[j] = iv[j+1]
		}
	}
	return
}

// Insert is the inverse of Drop: it opens a slot at dir in a (dim-1)-tuple
// and stores val there
func (iv IntVect) Insert(dir, val, dim int) (r IntVect) {
	for j := 0; j < dim; j++ {
		switch {
		case j < dir:
			r[j] = iv[j]
		case j == dir:
			r[j] = val
		default:
			r[j] = iv[j-1]
		}
	}
	return
}

// Format renders the first dim components, e.g. "(1,0,2)"
func (iv IntVect) Format(dim int) string {
	parts := make([]string, dim)
	for i := 0; i < dim; i++ {
		parts[i] = fmt.Sprintf("%d", iv[i])
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Drop deletes component dir from a dim-tuple
func (rv RealVect) Drop(dir, dim int) (r RealVect) {
	for j := 0; j < dim-1; j++ {
		if j < dir {
			r[j] = rv[j]
		} else {
			r[j] = rv[j+1]
		}
	}
	return
}

// Insert opens a slot at dir in a (dim-1)-tuple and stores val there
func (rv RealVect) Insert(dir int, val float64, dim int) (r RealVect) {
	for j := 0; j < dim; j++ {
		switch {
		case j < dir:
			r[j] = rv[j]
		case j == dir:
			r[j] = val
		default:
			r[j] = rv[j-1]
		}
	}
	return
}

// NewRealVect copies up to MaxDim values from a slice
func NewRealVect(v []float64) (r RealVect) {
	copy(r[:], v)
	return
}

// NewIntVect copies up to MaxDim values from a slice
func NewIntVect(v []int) (r IntVect) {
	copy(r[:], v)
	return
}

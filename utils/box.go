package utils

import (
	"fmt"
	"iter"
)

// Box is a cell-centered region of integer index space, inclusive at both
// ends. Cell data over a Box is laid out with direction 0 varying fastest.
type Box struct {
	Dim    int
	Lo, Hi IntVect
}

// NewBox creates a Box from lo and hi corner slices of equal length
func NewBox(lo, hi []int) (Box, error) {
	if len(lo) != len(hi) {
		return Box{}, fmt.Errorf("box corners have different dimensions: %d and %d", len(lo), len(hi))
	}
	if len(lo) < 1 || len(lo) > MaxDim {
		return Box{}, fmt.Errorf("invalid box dimension %d", len(lo))
	}
	return Box{Dim: len(lo), Lo: NewIntVect(lo), Hi: NewIntVect(hi)}, nil
}

// Size returns the number of cells along dir
func (b Box) Size(dir int) int {
	n := b.Hi[dir] - b.Lo[dir] + 1
	if n < 0 {
		return 0
	}
	return n
}

// IsEmpty reports whether the box contains no cells
func (b Box) IsEmpty() bool {
	if b.Dim == 0 {
		return true
	}
	for d := 0; d < b.Dim; d++ {
		if b.Hi[d] < b.Lo[d] {
			return true
		}
	}
	return false
}

// NumPts returns the number of cells in the box
func (b Box) NumPts() int {
	if b.IsEmpty() {
		return 0
	}
	n := 1
	for d := 0; d < b.Dim; d++ {
		n *= b.Size(d)
	}
	return n
}

// Contains reports whether iv lies inside the box
func (b Box) Contains(iv IntVect) bool {
	for d := 0; d < b.Dim; d++ {
		if iv[d] < b.Lo[d] || iv[d] > b.Hi[d] {
			return false
		}
	}
	return !b.IsEmpty()
}

// ContainsBox reports whether o is a subset of b. The empty box is a subset
// of every box of the same dimension.
func (b Box) ContainsBox(o Box) bool {
	if b.Dim != o.Dim {
		return false
	}
	if o.IsEmpty() {
		return true
	}
	return b.Contains(o.Lo) && b.Contains(o.Hi)
}

// Intersect returns the overlap of two boxes (possibly empty)
func (b Box) Intersect(o Box) Box {
	r := Box{Dim: b.Dim}
	for d := 0; d < b.Dim; d++ {
		r.Lo[d] = max(b.Lo[d], o.Lo[d])
		r.Hi[d] = min(b.Hi[d], o.Hi[d])
	}
	return r
}

// Shift translates the box by iv
func (b Box) Shift(iv IntVect) Box {
	r := Box{Dim: b.Dim}
	for d := 0; d < b.Dim; d++ {
		r.Lo[d] = b.Lo[d] + iv[d]
		r.Hi[d] = b.Hi[d] + iv[d]
	}
	return r
}

// SameShape reports whether two boxes have identical extents in every
// direction
func (b Box) SameShape(o Box) bool {
	if b.Dim != o.Dim {
		return false
	}
	for d := 0; d < b.Dim; d++ {
		if b.Size(d) != o.Size(d) {
			return false
		}
	}
	return true
}

// Offset returns the linear position of iv in the box's data layout.
// The result is meaningless when iv is outside the box.
func (b Box) Offset(iv IntVect) int {
	off := 0
	stride := 1
	for d := 0; d < b.Dim; d++ {
		off += (iv[d] - b.Lo[d]) * stride
		stride *= b.Size(d)
	}
	return off
}

// At is the inverse of Offset
func (b Box) At(offset int) (iv IntVect) {
	for d := 0; d < b.Dim; d++ {
		n := b.Size(d)
		iv[d] = b.Lo[d] + offset%n
		offset /= n
	}
	return
}

// Cells iterates the box in layout order, yielding (offset, cell)
func (b Box) Cells() iter.Seq2[int, IntVect] {
	return func(yield func(int, IntVect) bool) {
		n := b.NumPts()
		for i := 0; i < n; i++ {
			if !yield(i, b.At(i)) {
				return
			}
		}
	}
}

func (b Box) String() string {
	return fmt.Sprintf("[%s:%s]", b.Lo.Format(b.Dim), b.Hi.Format(b.Dim))
}

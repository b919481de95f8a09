// Package cellgeom classifies a single structured grid cell against an
// implicit function: corner signs, edge intersections, local coordinate
// frames, normal derivatives, and the lower dimensional face descriptions
// derived from them.
package cellgeom

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/notargets/EBGeometry/utils"
)

const (
	// MachinePrecision is the default threshold separating In/Out from On,
	// applied both to corner values and to parametric root positions
	MachinePrecision = 1.e-14
	// Tolerance is the default absolute tolerance of the edge root finder
	Tolerance = 1.e-10
)

// CornerSign classifies a cell vertex relative to the boundary
type CornerSign int8

const (
	In  CornerSign = -1 // value < -eps, inside the domain
	On  CornerSign = 0  // |value| <= eps
	Out CornerSign = 1  // value > eps
)

func (cs CornerSign) String() string {
	switch cs {
	case In:
		return "IN"
	case On:
		return "ON"
	case Out:
		return "OUT"
	default:
		return fmt.Sprintf("CornerSign(%d)", int8(cs))
	}
}

// Side selects the lo or hi face in a direction
type Side uint8

const (
	Lo Side = iota
	Hi
)

// sign returns -1 for Lo and +1 for Hi
func (s Side) sign() float64 {
	return 2*float64(s) - 1
}

func (s Side) String() string {
	if s == Lo {
		return "lo"
	}
	return "hi"
}

// Vertex is one of the 2^d corners of a cell, each component 0 (lo) or 1 (hi)
type Vertex = utils.IntVect

// EdgeIndex identifies an edge of a cell: Dir is the direction the edge runs
// in and Pos holds the lo/hi position of the edge in each remaining
// direction, in increasing direction order
type EdgeIndex struct {
	Dir int
	Pos utils.IntVect
}

// LoVertex and HiVertex return the endpoints of the edge in a dim-cell
func (e EdgeIndex) LoVertex(dim int) Vertex { return e.Pos.Insert(e.Dir, 0, dim) }
func (e EdgeIndex) HiVertex(dim int) Vertex { return e.Pos.Insert(e.Dir, 1, dim) }

func compareEdges(a, b EdgeIndex) int {
	if c := cmp.Compare(a.Dir, b.Dir); c != 0 {
		return c
	}
	for i := utils.MaxDim - 1; i >= 0; i-- {
		if c := cmp.Compare(a.Pos[i], b.Pos[i]); c != 0 {
			return c
		}
	}
	return 0
}

// vertexLabel returns the vertex whose components are the base-2 digits of
// label, direction 0 least significant
func vertexLabel(label, dim int) (v Vertex) {
	for j := 0; j < dim; j++ {
		v[j] = label & 1
		label >>= 1
	}
	return
}

// Status summarizes the corner classification of a cell
type Status uint8

const (
	Mixed Status = iota
	AllIn
	AllOut
	AllOn
)

func (s Status) String() string {
	return [...]string{"mixed", "all-in", "all-out", "all-on"}[s]
}

// Intersections maps each cut edge to the boundary crossing offset along
// the edge, measured from the edge midpoint
type Intersections map[EdgeIndex]float64

// SortedEdges returns the keys in a deterministic order
func (in Intersections) SortedEdges() []EdgeIndex {
	edges := make([]EdgeIndex, 0, len(in))
	for e := range in {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

// CornerSigns maps each vertex to its classification
type CornerSigns map[Vertex]CornerSign

package cellgeom

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/EBGeometry/utils"
)

// IntersectionPoint returns the boundary crossing on edge e in cell center
// coordinates
func (r *Record) IntersectionPoint(e EdgeIndex) (pt utils.RealVect) {
	intercept, ok := r.Intersections[e]
	if !ok {
		panic("cellgeom: no intersection on edge " + e.Pos.Format(r.Dim-1))
	}
	dx := r.CellCenterCoord.Dx
	for j := 0; j < r.Dim; j++ {
		switch {
		case j == e.Dir:
			pt[j] = intercept
		case j < e.Dir:
			pt[j] = (float64(e.Pos[j]) - 0.5) * dx[j]
		default:
			pt[j] = (float64(e.Pos[j-1]) - 0.5) * dx[j]
		}
	}
	return
}

// defineLocalCoords places the local origin at the centroid of the
// intersection points. Without intersections, or with recentering disabled,
// the local frame is the cell center frame.
func (r *Record) defineLocalCoords() {
	r.LocalCoord = r.CellCenterCoord
	if r.cfg.DisableRecentering || len(r.Intersections) == 0 {
		return
	}

	var sum utils.RealVect
	edges := r.Intersections.SortedEdges()
	for _, e := range edges {
		pt := r.IntersectionPoint(e)
		floats.Add(sum[:r.Dim], pt[:r.Dim])
	}

	n := float64(len(edges))
	var origin utils.RealVect
	for j := 0; j < r.Dim; j++ {
		origin[j] = -sum[j] / n
	}
	r.LocalCoord = NewCoordinateSystem(r.Dim, origin, r.CellCenterCoord.Dx)
}

package cellgeom

import (
	"fmt"

	"github.com/notargets/EBGeometry/rootfind"
	"github.com/notargets/EBGeometry/utils"
)

// classify maps a function value to a corner sign
func classify(val, eps float64) CornerSign {
	switch {
	case val < -eps:
		return In
	case val > eps:
		return Out
	default:
		return On
	}
}

// makeCornerSigns evaluates the function at the 2^Dim vertices
func (r *Record) makeCornerSigns() {
	numVertices := 1 << r.Dim
	r.CornerSigns = make(CornerSigns, numVertices)

	for label := 0; label < numVertices; label++ {
		vertex := vertexLabel(label, r.Dim)

		// vertex relative to the cell center
		var corner utils.RealVect
		for d := 0; d < r.Dim; d++ {
			corner[d] = (float64(vertex[d]) - 0.5) * r.CellCenterCoord.Dx[d]
		}

		x := r.GlobalCoord.Convert(corner, r.CellCenterCoord)
		r.CornerSigns[vertex] = classify(r.function.Value(utils.IntVect{}, x), r.cfg.Epsilon)
	}

	r.setVertexFlags()
}

// setVertexFlags recomputes the aggregate flags from the corner sign map.
// On corners count as both in and out.
func (r *Record) setVertexFlags() {
	r.AllVerticesIn = true
	r.AllVerticesOut = true
	r.AllVerticesOn = true
	for _, sign := range r.CornerSigns {
		switch sign {
		case In:
			r.AllVerticesOut = false
			r.AllVerticesOn = false
		case Out:
			r.AllVerticesIn = false
			r.AllVerticesOn = false
		}
	}
}

// findIntersectionPts visits every edge, direction-major then by the label
// of its lo vertex
func (r *Record) findIntersectionPts() {
	r.Intersections = make(Intersections)
	numVertices := 1 << r.Dim
	for dir := 0; dir < r.Dim; dir++ {
		for label := 0; label < numVertices; label++ {
			lo := vertexLabel(label, r.Dim)
			if lo[dir] != 0 {
				continue
			}
			r.intersectEdge(EdgeIndex{Dir: dir, Pos: lo.Drop(dir, r.Dim)})
		}
	}
}

func (r *Record) intersectEdge(edge EdgeIndex) {
	var (
		loVertex = edge.LoVertex(r.Dim)
		hiVertex = edge.HiVertex(r.Dim)
		lo       = r.CornerSigns[loVertex]
		hi       = r.CornerSigns[hiVertex]
		half     = 0.5 * r.CellCenterCoord.Dx[edge.Dir]
	)

	if (lo == In && hi == Out) || (lo == Out && hi == In) {
		t := r.edgeRoot(edge)
		loOn, hiOn := snapEndpoint(t, r.cfg.Epsilon)
		if loOn || hiOn {
			// The crossing is a vertex: reclassify it instead of recording
			if loOn {
				r.CornerSigns[loVertex] = On
				lo = On
			}
			if hiOn {
				r.CornerSigns[hiVertex] = On
				hi = On
			}
			r.setVertexFlags()
		} else {
			r.Intersections[edge] = half * t
		}
	}

	// A boundary touching an in-edge at a vertex is recorded at that vertex
	switch {
	case lo == In && hi == On:
		r.Intersections[edge] = half
	case lo == On && hi == In:
		r.Intersections[edge] = -half
	}
}

// snapEndpoint reports whether a parametric root in [-1,1] lies within eps
// of either end of the edge
func snapEndpoint(t, eps float64) (loOn, hiOn bool) {
	if t >= 1.0-eps {
		hiOn = true
	} else if t <= -1.0+eps {
		loOn = true
	}
	return
}

// edgeRoot returns the parametric position in [-1,1] of the zero of the
// function along the edge
func (r *Record) edgeRoot(edge EdgeIndex) float64 {
	loVertex, hiVertex := edge.LoVertex(r.Dim), edge.HiVertex(r.Dim)

	var loCorner, hiCorner utils.RealVect
	for d := 0; d < r.Dim; d++ {
		loCorner[d] = (float64(loVertex[d]) - 0.5) * r.CellCenterCoord.Dx[d]
		hiCorner[d] = (float64(hiVertex[d]) - 0.5) * r.CellCenterCoord.Dx[d]
	}
	loPt := r.GlobalCoord.Convert(loCorner, r.CellCenterCoord)
	hiPt := r.GlobalCoord.Convert(hiCorner, r.CellCenterCoord)

	dir := edge.Dir
	f := func(t float64) float64 {
		x := loPt
		x[dir] = ((1.0-t)/2.0)*loPt[dir] + ((1.0+t)/2.0)*hiPt[dir]
		return -r.function.Value(utils.IntVect{}, x)
	}

	res, err := rootfind.Brent(f, -1.0, 1.0, r.cfg.rootSettings())
	if err != nil {
		panic(fmt.Sprintf("cellgeom: edge %d%s of cell at %v: %v",
			edge.Dir, edge.Pos.Format(r.Dim-1), r.GlobalCoord.Origin[:r.Dim], err))
	}
	return res.Root
}

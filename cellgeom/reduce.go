package cellgeom

import (
	"fmt"

	"github.com/notargets/EBGeometry/utils"
)

// Reduce returns the (Dim-1)-dimensional record of the face of r normal to
// dir on the given side. Corner signs and intersections are projected from
// r rather than recomputed, so the face agrees exactly with its parent.
func (r *Record) Reduce(dir int, side Side) *Record {
	if r.Dim < 2 {
		panic("cellgeom: cannot reduce a 1D record")
	}
	if dir < 0 || dir >= r.Dim {
		panic(fmt.Sprintf("cellgeom: reduce direction %d out of range for dimension %d", dir, r.Dim))
	}

	fixed := r.GlobalCoord.ConvertDir(side.sign()*0.5*r.CellCenterCoord.Dx[dir], r.CellCenterCoord, dir)

	f := &Record{
		Dim:             r.Dim - 1,
		GlobalCoord:     r.GlobalCoord.Reduce(dir),
		CellCenterCoord: r.CellCenterCoord.Reduce(dir),
		ParentCoord:     r.LocalCoord.Reduce(dir),
		MaxOrder:        r.MaxOrder,
		function:        r.function.Slice(dir, fixed),
		cfg:             r.cfg,
	}
	f.projectCornerSigns(r.CornerSigns, dir, side)
	f.projectIntersections(r.Intersections, dir, side)

	if f.Dim == 1 {
		f.closeEdge()
		return f
	}

	f.defineLocalCoords()
	f.setNormalDerivatives()
	f.buildFaces()
	return f
}

// projectCornerSigns keeps the parent vertices lying on the face
func (r *Record) projectCornerSigns(parent CornerSigns, dir int, side Side) {
	r.CornerSigns = make(CornerSigns, 1<<r.Dim)
	for v, sign := range parent {
		if v[dir] != int(side) {
			continue
		}
		r.CornerSigns[v.Drop(dir, r.Dim+1)] = sign
	}
	r.setVertexFlags()
}

// projectIntersections keeps the parent edges lying in the face. Edges
// parallel to dir cross the face and are dropped.
func (r *Record) projectIntersections(parent Intersections, dir int, side Side) {
	r.Intersections = make(Intersections)
	parentDim := r.Dim + 1
	for e, intercept := range parent {
		if e.Dir == dir {
			continue
		}
		// position of dir within e.Pos
		k := dir
		if dir > e.Dir {
			k = dir - 1
		}
		if e.Pos[k] != int(side) {
			continue
		}
		newDir := e.Dir
		if e.Dir > dir {
			newDir--
		}
		r.Intersections[EdgeIndex{Dir: newDir, Pos: e.Pos.Drop(k, parentDim-1)}] = intercept
	}
}

// closeEdge finishes a 1D record. A single edge holds at most one crossing,
// which becomes the local origin; there is no normal to differentiate.
func (r *Record) closeEdge() {
	r.LocalCoord = r.CellCenterCoord
	if x, ok := r.Intersections[EdgeIndex{Dir: 0}]; ok && !r.cfg.DisableRecentering {
		r.LocalCoord = NewCoordinateSystem(1, utils.RealVect{-x}, r.CellCenterCoord.Dx)
	}
	r.NormalDerivatives = nil
	r.BadNormal = false
}

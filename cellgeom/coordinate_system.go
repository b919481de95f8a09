package cellgeom

import (
	"fmt"

	"github.com/notargets/EBGeometry/utils"
)

// CoordinateSystem is an affine frame given by an origin and a per
// direction spacing. It is a value type; reduced systems are new values.
type CoordinateSystem struct {
	Dim    int
	Origin utils.RealVect
	Dx     utils.RealVect
}

// NewCoordinateSystem builds a dim-dimensional system
func NewCoordinateSystem(dim int, origin, dx utils.RealVect) CoordinateSystem {
	if dim < 1 || dim > utils.MaxDim {
		panic(fmt.Sprintf("cellgeom: invalid coordinate system dimension %d", dim))
	}
	return CoordinateSystem{Dim: dim, Origin: origin, Dx: dx}
}

// Reduce drops direction fixedComp from a parent system
func (cs CoordinateSystem) Reduce(fixedComp int) CoordinateSystem {
	return CoordinateSystem{
		Dim:    cs.Dim - 1,
		Origin: cs.Origin.Drop(fixedComp, cs.Dim),
		Dx:     cs.Dx.Drop(fixedComp, cs.Dim),
	}
}

// Convert maps a point expressed in system from into this system
func (cs CoordinateSystem) Convert(point utils.RealVect, from CoordinateSystem) (r utils.RealVect) {
	for d := 0; d < cs.Dim; d++ {
		r[d] = point[d] + cs.Origin[d] - from.Origin[d]
	}
	return
}

// ConvertDir is Convert for a single component
func (cs CoordinateSystem) ConvertDir(coord float64, from CoordinateSystem, dir int) float64 {
	return coord + cs.Origin[dir] - from.Origin[dir]
}

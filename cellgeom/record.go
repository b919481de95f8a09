package cellgeom

import (
	"fmt"
	"maps"

	"github.com/notargets/EBGeometry/implicit"
	"github.com/notargets/EBGeometry/utils"
)

// Record is the complete geometric description of one cell against an
// implicit function. It is fully computed by its constructor.
//
// A Record exclusively owns its function Slicer. Clone deep-copies the
// Slicer; passing the *Record around transfers ownership without copying.
type Record struct {
	Dim int

	CornerSigns   CornerSigns
	Intersections Intersections

	// GlobalCoord has the cell center as origin; CellCenterCoord and
	// ParentCoord are centered at zero for a top level cell. ParentCoord of
	// a face is the parent's local frame with the fixed direction removed.
	GlobalCoord     CoordinateSystem
	CellCenterCoord CoordinateSystem
	ParentCoord     CoordinateSystem
	LocalCoord      CoordinateSystem

	MaxOrder          int
	NormalDerivatives NormalDerivatives
	BadNormal         bool

	AllVerticesIn  bool
	AllVerticesOut bool
	AllVerticesOn  bool

	// Faces[dir][side] is the record reduced onto that face; nil for Dim == 1
	Faces [][2]*Record

	function *implicit.Slicer
	cfg      Config
}

// NewRecord classifies the cell with the given spacing and center against
// fn. maxOrder is the highest normal derivative order to compute.
func NewRecord(fn implicit.Function, dx, cellCenter []float64, maxOrder int, cfg *Config) (*Record, error) {
	if err := validateCell(fn.Dim(), dx, cellCenter, maxOrder); err != nil {
		return nil, err
	}
	c := cfg.withDefaults()
	return newRecord(implicit.NewSlicer(fn), utils.NewRealVect(dx),
		utils.NewRealVect(cellCenter), maxOrder, c), nil
}

// NewRecordFromSlicer is NewRecord for a function already restricted to a
// lower dimensional hyperplane. The record owns a clone of s.
func NewRecordFromSlicer(s *implicit.Slicer, dx, cellCenter []float64, maxOrder int, cfg *Config) (*Record, error) {
	if err := validateCell(s.Dim(), dx, cellCenter, maxOrder); err != nil {
		return nil, err
	}
	c := cfg.withDefaults()
	return newRecord(s.Clone(), utils.NewRealVect(dx),
		utils.NewRealVect(cellCenter), maxOrder, c), nil
}

func validateCell(dim int, dx, cellCenter []float64, maxOrder int) error {
	if dim < 1 || dim > utils.MaxDim {
		return fmt.Errorf("unsupported function dimension %d", dim)
	}
	if len(dx) != dim || len(cellCenter) != dim {
		return fmt.Errorf("dimension mismatch: function %d, dx %d, cell center %d",
			dim, len(dx), len(cellCenter))
	}
	for d, h := range dx {
		if !(h > 0) {
			return fmt.Errorf("non-positive spacing %g in direction %d", h, d)
		}
	}
	if maxOrder < 0 || maxOrder >= utils.MaxMonomialOrder {
		return fmt.Errorf("max order %d out of range [0,%d)", maxOrder, utils.MaxMonomialOrder)
	}
	return nil
}

func newRecord(s *implicit.Slicer, dx, cellCenter utils.RealVect, maxOrder int, cfg Config) *Record {
	dim := s.Dim()
	r := &Record{
		Dim:             dim,
		GlobalCoord:     NewCoordinateSystem(dim, cellCenter, dx),
		CellCenterCoord: NewCoordinateSystem(dim, utils.RealVect{}, dx),
		ParentCoord:     NewCoordinateSystem(dim, utils.RealVect{}, dx),
		MaxOrder:        maxOrder,
		function:        s,
		cfg:             cfg,
	}

	r.makeCornerSigns()
	r.findIntersectionPts()
	if dim == 1 {
		r.closeEdge()
		return r
	}
	r.defineLocalCoords()
	r.setNormalDerivatives()
	r.buildFaces()

	return r
}

// buildFaces reduces the record onto each of its 2*Dim faces
func (r *Record) buildFaces() {
	if r.Dim < 2 {
		return
	}
	r.Faces = make([][2]*Record, r.Dim)
	for dir := 0; dir < r.Dim; dir++ {
		r.Faces[dir][Lo] = r.Reduce(dir, Lo)
		r.Faces[dir][Hi] = r.Reduce(dir, Hi)
	}
}

// Face returns the face record for dir and side
func (r *Record) Face(dir int, side Side) *Record {
	if r.Dim < 2 {
		panic("cellgeom: a 1D record has no faces")
	}
	return r.Faces[dir][side]
}

// Function returns the implicit function as seen by this record
func (r *Record) Function() implicit.Function {
	return r.function
}

// SortedEdges returns the cut edges direction-major, then by lo vertex
func (r *Record) SortedEdges() []EdgeIndex {
	return r.Intersections.SortedEdges()
}

// Status returns the aggregate classification
func (r *Record) Status() Status {
	switch {
	case r.AllVerticesOn:
		return AllOn
	case r.AllVerticesIn:
		return AllIn
	case r.AllVerticesOut:
		return AllOut
	default:
		return Mixed
	}
}

// IsCut reports whether the boundary passes through the cell
func (r *Record) IsCut() bool {
	return r.Status() == Mixed
}

// Clone returns a deep copy, including a private copy of the function
func (r *Record) Clone() *Record {
	c := *r
	c.CornerSigns = maps.Clone(r.CornerSigns)
	c.Intersections = maps.Clone(r.Intersections)
	c.NormalDerivatives = maps.Clone(r.NormalDerivatives)
	c.function = r.function.Clone()
	if r.Faces != nil {
		c.Faces = make([][2]*Record, len(r.Faces))
		for dir := range r.Faces {
			for side := range r.Faces[dir] {
				c.Faces[dir][side] = r.Faces[dir][side].Clone()
			}
		}
	}
	return &c
}

func (r *Record) String() string {
	return fmt.Sprintf("%dD cell at %v: %s, %d intersections",
		r.Dim, r.GlobalCoord.Origin[:r.Dim], r.Status(), len(r.Intersections))
}

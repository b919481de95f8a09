package ebcell

import (
	"errors"
	"fmt"
	"slices"

	"github.com/notargets/EBGeometry/utils"
)

// Hint tells the accessors which storage a VolIndex lives in. Unknown costs
// a layout lookup per access.
type Hint uint8

const (
	Unknown Hint = iota
	Regular
	Irregular
)

// StorageClass selects one of the two storage blocks of a CellFAB
type StorageClass uint8

const (
	Dense StorageClass = iota
	Sparse
)

func (c StorageClass) String() string {
	switch c {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return fmt.Sprintf("StorageClass(%d)", uint8(c))
	}
}

var (
	ErrRegionMismatch = errors.New("ebcell: region mismatch")
	ErrCompMismatch   = errors.New("ebcell: component mismatch")
	ErrShortBuffer    = errors.New("ebcell: buffer too short")
)

// noCopy makes go vet flag accidental copies of a CellFAB
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// CellFAB holds nComp values per volume fragment over a region.
//
// The dense block is component-major, region.NumPts() values per component
// with direction 0 fastest; every cell owns a dense slot. The sparse block
// holds the fragments of multi-valued cells, also component-major, in
// VolIndexes() order. CellFAB is not safe for concurrent writers.
type CellFAB struct {
	noCopy noCopy

	layout *Layout
	region utils.Box
	nComp  int

	dense []float64

	irreg      []VolIndex
	irregIndex map[VolIndex]int
	sparse     []float64
}

// NewCellFAB allocates zeroed storage for nComp components over region
func NewCellFAB(layout *Layout, region utils.Box, nComp int) (*CellFAB, error) {
	if layout == nil {
		return nil, errors.New("ebcell: nil layout")
	}
	if region.IsEmpty() || region.Dim != layout.Box().Dim {
		return nil, fmt.Errorf("%w: region %v for a %dD layout", ErrRegionMismatch, region, layout.Box().Dim)
	}
	if nComp < 1 {
		return nil, fmt.Errorf("%w: %d components", ErrCompMismatch, nComp)
	}

	f := &CellFAB{
		layout: layout,
		region: region,
		nComp:  nComp,
		dense:  make([]float64, region.NumPts()*nComp),
		irreg:  layout.VolIndexes(region),
	}
	f.irregIndex = make(map[VolIndex]int, len(f.irreg))
	for i, vi := range f.irreg {
		f.irregIndex[vi] = i
	}
	f.sparse = make([]float64, len(f.irreg)*nComp)
	return f, nil
}

func (f *CellFAB) Layout() *Layout        { return f.layout }
func (f *CellFAB) Region() utils.Box      { return f.region }
func (f *CellFAB) NComp() int             { return f.nComp }
func (f *CellFAB) NumIrregular() int      { return len(f.irreg) }
func (f *CellFAB) VolIndexes() []VolIndex { return slices.Clone(f.irreg) }

// MultiCells returns the multi-valued cells of the region
func (f *CellFAB) MultiCells() []utils.IntVect {
	return f.layout.MultiCells(f.region)
}

// DataType returns the storage block holding vi
func (f *CellFAB) DataType(vi VolIndex) StorageClass {
	if f.layout.IsMultiValued(vi.Cell) {
		return Sparse
	}
	return Dense
}

// Offset returns the position of (vi, comp) in the whole component-major
// block DataType(vi). DataPtr(class, comp) is the window of that block
// starting at comp times the number of entries per component.
func (f *CellFAB) Offset(vi VolIndex, comp int) int {
	_, off := f.locate(vi, comp, Unknown)
	return off
}

// DataPtr returns the storage of component comp in block class
func (f *CellFAB) DataPtr(class StorageClass, comp int) []float64 {
	f.checkComp(comp)
	switch class {
	case Dense:
		n := f.region.NumPts()
		return f.dense[comp*n : (comp+1)*n]
	case Sparse:
		m := len(f.irreg)
		return f.sparse[comp*m : (comp+1)*m]
	default:
		panic(fmt.Sprintf("ebcell: invalid storage class %d", uint8(class)))
	}
}

// At returns the value of component comp of fragment vi
func (f *CellFAB) At(vi VolIndex, comp int, hint Hint) float64 {
	class, off := f.locate(vi, comp, hint)
	if class == Sparse {
		return f.sparse[off]
	}
	return f.dense[off]
}

// Set stores v in component comp of fragment vi
func (f *CellFAB) Set(vi VolIndex, comp int, hint Hint, v float64) {
	class, off := f.locate(vi, comp, hint)
	if class == Sparse {
		f.sparse[off] = v
		return
	}
	f.dense[off] = v
}

func (f *CellFAB) checkComp(comp int) {
	if comp < 0 || comp >= f.nComp {
		panic(fmt.Sprintf("ebcell: component %d out of range [0,%d)", comp, f.nComp))
	}
}

func (f *CellFAB) locate(vi VolIndex, comp int, hint Hint) (StorageClass, int) {
	f.checkComp(comp)
	if !f.region.Contains(vi.Cell) {
		panic(fmt.Sprintf("ebcell: cell %s outside region %v", vi.Cell.Format(f.region.Dim), f.region))
	}
	switch hint {
	case Regular:
		if vi.Fragment != 0 {
			panic(fmt.Sprintf("ebcell: nonexistent fragment %v", vi))
		}
		return Dense, comp*f.region.NumPts() + f.region.Offset(vi.Cell)
	case Irregular:
		i, ok := f.irregIndex[vi]
		if !ok {
			panic(fmt.Sprintf("ebcell: nonexistent fragment %v", vi))
		}
		return Sparse, comp*len(f.irreg) + i
	case Unknown:
		if !f.layout.Contains(vi) {
			panic(fmt.Sprintf("ebcell: nonexistent fragment %v", vi))
		}
		if f.layout.IsMultiValued(vi.Cell) {
			return f.locate(vi, comp, Irregular)
		}
		return f.locate(vi, comp, Regular)
	default:
		panic(fmt.Sprintf("ebcell: invalid hint %d", uint8(hint)))
	}
}

// SetVal stores v everywhere
func (f *CellFAB) SetVal(v float64) {
	for i := range f.dense {
		f.dense[i] = v
	}
	for i := range f.sparse {
		f.sparse[i] = v
	}
}

// Clear zeroes all storage
func (f *CellFAB) Clear() {
	clear(f.dense)
	clear(f.sparse)
}

// SetComp stores v in component comp of every fragment
func (f *CellFAB) SetComp(v float64, comp int) {
	for _, class := range []StorageClass{Dense, Sparse} {
		data := f.DataPtr(class, comp)
		for i := range data {
			data[i] = v
		}
	}
}

// SetValRange stores v in components [start, start+num) of every fragment
// of the cells in box
func (f *CellFAB) SetValRange(v float64, box utils.Box, start, num int) {
	if num <= 0 {
		return
	}
	f.checkComp(start)
	f.checkComp(start + num - 1)
	box = box.Intersect(f.region)
	for comp := start; comp < start+num; comp++ {
		dense := f.DataPtr(Dense, comp)
		for _, iv := range box.Cells() {
			dense[f.region.Offset(iv)] = v
		}
		sparse := f.DataPtr(Sparse, comp)
		for i, vi := range f.irreg {
			if box.Contains(vi.Cell) {
				sparse[i] = v
			}
		}
	}
}

// SetCoveredCellVal stores v in component comp of every covered cell
func (f *CellFAB) SetCoveredCellVal(v float64, comp int) {
	dense := f.DataPtr(Dense, comp)
	for off, iv := range f.region.Cells() {
		if f.layout.IsCovered(iv) {
			dense[off] = v
		}
	}
}

// CopyFrom copies components [srcComp, srcComp+numComp) of src over srcBox
// onto components starting at dstComp over dstBox. The boxes must have the
// same shape and the multi-valued fragments of both boxes must correspond.
// Nothing is written when an error is returned.
func (f *CellFAB) CopyFrom(src *CellFAB, srcBox utils.Box, srcComp int, dstBox utils.Box, dstComp, numComp int) error {
	if numComp < 0 || srcComp < 0 || dstComp < 0 ||
		srcComp+numComp > src.nComp || dstComp+numComp > f.nComp {
		return fmt.Errorf("%w: copying %d components from %d of %d onto %d of %d",
			ErrCompMismatch, numComp, srcComp, src.nComp, dstComp, f.nComp)
	}
	bc, err := utils.NewBoxConnector(src.region, srcBox, f.region, dstBox)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegionMismatch, err)
	}
	if err := bc.Verify(); err != nil {
		return fmt.Errorf("%w: %v", ErrRegionMismatch, err)
	}

	// Pair the sparse fragments before touching any data
	shift := bc.Shift()
	var pick, place []int
	for i, vi := range f.irreg {
		if !dstBox.Contains(vi.Cell) {
			continue
		}
		svi := VolIndex{Cell: vi.Cell.Sub(shift), Fragment: vi.Fragment}
		j, ok := src.irregIndex[svi]
		if !ok {
			return fmt.Errorf("%w: fragment %v has no source %v", ErrRegionMismatch, vi, svi)
		}
		pick = append(pick, j)
		place = append(place, i)
	}
	nSrc := 0
	for _, vi := range src.irreg {
		if srcBox.Contains(vi.Cell) {
			nSrc++
		}
	}
	if nSrc != len(pick) {
		return fmt.Errorf("%w: %d source fragments for %d destination fragments",
			ErrRegionMismatch, nSrc, len(pick))
	}

	bc.Apply(src.dense, srcComp, f.dense, dstComp, numComp)
	ms, md := len(src.irreg), len(f.irreg)
	for c := 0; c < numComp; c++ {
		for k := range pick {
			f.sparse[(dstComp+c)*md+place[k]] = src.sparse[(srcComp+c)*ms+pick[k]]
		}
	}
	return nil
}

// Copy overwrites f with src, which must be defined over the same region
// with the same component count
func (f *CellFAB) Copy(src *CellFAB) error {
	if src.region != f.region {
		return fmt.Errorf("%w: %v and %v", ErrRegionMismatch, src.region, f.region)
	}
	if src.nComp != f.nComp {
		return fmt.Errorf("%w: %d and %d components", ErrCompMismatch, src.nComp, f.nComp)
	}
	return f.CopyFrom(src, src.region, 0, f.region, 0, f.nComp)
}

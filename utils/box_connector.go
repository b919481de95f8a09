package utils

import (
	"fmt"
)

// BoxConnector manages pick and place indices for copying cell data
// between two box-shaped storage layouts
type BoxConnector struct {
	// Storage layouts
	SrcBox Box // Box spanned by the source data
	DstBox Box // Box spanned by the destination data

	// Copy regions, same shape, contained in SrcBox and DstBox
	SrcRegion Box
	DstRegion Box

	// Pick/Place indices, one entry per copied cell
	Pick  []int // Source cell offsets
	Place []int // Destination cell offsets
}

// NewBoxConnector creates a connector that copies srcRegion of srcBox onto
// dstRegion of dstBox
func NewBoxConnector(srcBox, srcRegion, dstBox, dstRegion Box) (*BoxConnector, error) {
	// Validate inputs
	if srcBox.Dim != dstBox.Dim || srcRegion.Dim != srcBox.Dim || dstRegion.Dim != dstBox.Dim {
		return nil, fmt.Errorf("dimension mismatch: src %d/%d, dst %d/%d",
			srcBox.Dim, srcRegion.Dim, dstBox.Dim, dstRegion.Dim)
	}
	if !srcRegion.SameShape(dstRegion) {
		return nil, fmt.Errorf("copy regions differ in shape: %v and %v", srcRegion, dstRegion)
	}
	if !srcBox.ContainsBox(srcRegion) {
		return nil, fmt.Errorf("source region %v is not inside %v", srcRegion, srcBox)
	}
	if !dstBox.ContainsBox(dstRegion) {
		return nil, fmt.Errorf("destination region %v is not inside %v", dstRegion, dstBox)
	}

	bc := &BoxConnector{
		SrcBox:    srcBox,
		DstBox:    dstBox,
		SrcRegion: srcRegion,
		DstRegion: dstRegion,
	}

	// Build indices
	bc.BuildIndices()

	return bc, nil
}

// Shift returns the translation taking a source cell to its destination cell
func (bc *BoxConnector) Shift() IntVect {
	return bc.DstRegion.Lo.Sub(bc.SrcRegion.Lo)
}

// BuildIndices constructs the pick and place indices in region layout order
func (bc *BoxConnector) BuildIndices() {
	n := bc.SrcRegion.NumPts()
	bc.Pick = make([]int, 0, n)
	bc.Place = make([]int, 0, n)

	shift := bc.Shift()
	for _, src := range bc.SrcRegion.Cells() {
		dst := src.Add(shift)
		bc.Pick = append(bc.Pick, bc.SrcBox.Offset(src))
		bc.Place = append(bc.Place, bc.DstBox.Offset(dst))
	}
}

// Verify checks index validity and conservation properties
func (bc *BoxConnector) Verify() error {
	// Verify 1: Local validity - all indices are within bounds
	maxSrc := bc.SrcBox.NumPts()
	for _, idx := range bc.Pick {
		if idx < 0 || idx >= maxSrc {
			return fmt.Errorf("invalid pick index %d (max %d)", idx, maxSrc-1)
		}
	}
	maxDst := bc.DstBox.NumPts()
	for _, idx := range bc.Place {
		if idx < 0 || idx >= maxDst {
			return fmt.Errorf("invalid place index %d (max %d)", idx, maxDst-1)
		}
	}

	// Verify 2: Correspondence - pick and place arrays have same length
	if len(bc.Pick) != len(bc.Place) {
		return fmt.Errorf("length mismatch: pick=%d, place=%d", len(bc.Pick), len(bc.Place))
	}

	// Verify 3: Conservation - one pick per region cell
	if len(bc.Pick) != bc.SrcRegion.NumPts() {
		return fmt.Errorf("conservation error: total picks %d != region cells %d",
			len(bc.Pick), bc.SrcRegion.NumPts())
	}

	return nil
}

// Apply copies ncomp components of component-major data from src to dst.
// Component c of a layout with n cells starts at c*n.
func (bc *BoxConnector) Apply(src []float64, srcComp int, dst []float64, dstComp, ncomp int) {
	ns, nd := bc.SrcBox.NumPts(), bc.DstBox.NumPts()
	for c := 0; c < ncomp; c++ {
		sBase := (srcComp + c) * ns
		dBase := (dstComp + c) * nd
		for i, p := range bc.Pick {
			dst[dBase+bc.Place[i]] = src[sBase+p]
		}
	}
}

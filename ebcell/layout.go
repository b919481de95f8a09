// Package ebcell stores cell-centered data on regions cut by an embedded
// boundary. Single valued cells live in a dense array over the region;
// cells split into several volume fragments carry one value per fragment
// in a sparse side structure.
package ebcell

import (
	"fmt"
	"slices"

	"github.com/notargets/EBGeometry/utils"
)

// VolIndex names one volume fragment of a cell. Single valued cells only
// have fragment 0.
type VolIndex struct {
	Cell     utils.IntVect
	Fragment int
}

func (vi VolIndex) String() string {
	return fmt.Sprintf("%v#%d", vi.Cell[:], vi.Fragment)
}

// Layout records how many volume fragments each cell of a box holds:
// 0 for covered cells, 1 for regular or singly cut cells, more for
// multi-valued cells. It is immutable.
type Layout struct {
	box    utils.Box
	counts []int
	multi  []VolIndex // every multi-valued fragment, in cell layout order
}

// NewLayout builds a Layout from per-cell fragment counts given in box
// layout order
func NewLayout(box utils.Box, counts []int) (*Layout, error) {
	if box.IsEmpty() {
		return nil, fmt.Errorf("empty layout box %v", box)
	}
	if len(counts) != box.NumPts() {
		return nil, fmt.Errorf("%d fragment counts for %d cells of %v", len(counts), box.NumPts(), box)
	}
	l := &Layout{box: box, counts: slices.Clone(counts)}
	for off, n := range l.counts {
		if n < 0 {
			return nil, fmt.Errorf("negative fragment count %d at %s", n, box.At(off).Format(box.Dim))
		}
		for frag := 0; n > 1 && frag < n; frag++ {
			l.multi = append(l.multi, VolIndex{Cell: box.At(off), Fragment: frag})
		}
	}
	return l, nil
}

// Box returns the box the layout covers
func (l *Layout) Box() utils.Box { return l.box }

// NumFragments returns the fragment count of a cell; cells outside the
// layout box count as regular
func (l *Layout) NumFragments(iv utils.IntVect) int {
	if !l.box.Contains(iv) {
		return 1
	}
	return l.counts[l.box.Offset(iv)]
}

func (l *Layout) IsCovered(iv utils.IntVect) bool     { return l.NumFragments(iv) == 0 }
func (l *Layout) IsRegular(iv utils.IntVect) bool     { return l.NumFragments(iv) == 1 }
func (l *Layout) IsMultiValued(iv utils.IntVect) bool { return l.NumFragments(iv) > 1 }

// Contains reports whether vi names an existing fragment. Covered cells
// keep a dense slot, so fragment 0 exists for every cell.
func (l *Layout) Contains(vi VolIndex) bool {
	return vi.Fragment >= 0 && vi.Fragment < max(1, l.NumFragments(vi.Cell))
}

// MultiCells returns the multi-valued cells inside region
func (l *Layout) MultiCells(region utils.Box) []utils.IntVect {
	var cells []utils.IntVect
	for _, vi := range l.multi {
		if vi.Fragment == 0 && region.Contains(vi.Cell) {
			cells = append(cells, vi.Cell)
		}
	}
	return cells
}

// VolIndexes returns the fragments of the multi-valued cells inside
// region, ordered by the region layout offset of the cell, then fragment
func (l *Layout) VolIndexes(region utils.Box) []VolIndex {
	var out []VolIndex
	for _, vi := range l.multi {
		if region.Contains(vi.Cell) {
			out = append(out, vi)
		}
	}
	slices.SortStableFunc(out, func(a, b VolIndex) int {
		return region.Offset(a.Cell) - region.Offset(b.Cell)
	})
	return out
}

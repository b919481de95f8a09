package cellgeom

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/EBGeometry/ebcell"
	"github.com/notargets/EBGeometry/implicit"
	"github.com/notargets/EBGeometry/partitions"
	"github.com/notargets/EBGeometry/utils"
)

// RegionGeometry holds one Record per cell of a box, in box layout order
type RegionGeometry struct {
	Box     utils.Box
	Dx      utils.RealVect
	ProbLo  utils.RealVect
	Records []*Record
}

// BuildRegion classifies every cell of box. Cell iv is centered at
// probLo + (iv + 1/2) dx. Cells are split into partitions of
// cfg.PartitionSize cells, grouped by cfg.Partitioning, built
// concurrently by up to cfg.Workers tasks;
// each record owns its own copy of fn.
func BuildRegion(ctx context.Context, fn implicit.Function, box utils.Box, dx, probLo []float64, maxOrder int, cfg *Config) (*RegionGeometry, error) {
	dim := fn.Dim()
	if box.Dim != dim {
		return nil, fmt.Errorf("dimension mismatch: function %d, box %d", dim, box.Dim)
	}
	if box.IsEmpty() {
		return nil, fmt.Errorf("empty region %v", box)
	}
	if err := validateCell(dim, dx, probLo, maxOrder); err != nil {
		return nil, err
	}
	c := cfg.withDefaults()

	pb := &partitions.PartitionBuilder{
		NumCells:            box.NumPts(),
		TargetPartitionSize: c.PartitionSize,
		Strategy:            c.Partitioning,
	}
	layout, err := pb.BuildPartitions()
	if err != nil {
		return nil, fmt.Errorf("partitioning %v: %w", box, err)
	}

	rg := &RegionGeometry{
		Box:     box,
		Dx:      utils.NewRealVect(dx),
		ProbLo:  utils.NewRealVect(probLo),
		Records: make([]*Record, box.NumPts()),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for _, part := range layout.Partitions {
		g.Go(func() error {
			for _, off := range part.Cells {
				if err := gCtx.Err(); err != nil {
					return err
				}
				rg.Records[off] = newRecord(implicit.NewSlicer(fn), rg.Dx,
					rg.CellCenter(box.At(off)), maxOrder, c)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := layout.PartitionStatistics()
	c.Logger.Debug("region geometry built",
		"box", box.String(),
		"cells", len(rg.Records),
		"cut", len(rg.CutCells()),
		"partitions", stats.NumPartitions,
		"imbalance", stats.Imbalance)

	return rg, nil
}

// CellCenter returns the physical center of cell iv
func (rg *RegionGeometry) CellCenter(iv utils.IntVect) (x utils.RealVect) {
	for d := 0; d < rg.Box.Dim; d++ {
		x[d] = rg.ProbLo[d] + (float64(iv[d])+0.5)*rg.Dx[d]
	}
	return
}

// Record returns the record of cell iv, or nil outside the region
func (rg *RegionGeometry) Record(iv utils.IntVect) *Record {
	if !rg.Box.Contains(iv) {
		return nil
	}
	return rg.Records[rg.Box.Offset(iv)]
}

// CutCells lists the cells crossed by the boundary
func (rg *RegionGeometry) CutCells() []utils.IntVect {
	var cut []utils.IntVect
	for off, r := range rg.Records {
		if r.IsCut() {
			cut = append(cut, rg.Box.At(off))
		}
	}
	return cut
}

// FragmentCounts returns CountFragments for every cell in layout order
func (rg *RegionGeometry) FragmentCounts() []int {
	counts := make([]int, len(rg.Records))
	for off, r := range rg.Records {
		counts[off] = r.CountFragments()
	}
	return counts
}

// Layout returns the storage layout of the region for ebcell.CellFAB
func (rg *RegionGeometry) Layout() (*ebcell.Layout, error) {
	return ebcell.NewLayout(rg.Box, rg.FragmentCounts())
}

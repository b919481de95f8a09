// Package partitions decomposes the cells of a region into partitions that
// are processed as independent units of work.
package partitions

import (
	"fmt"
)

// Partition is a set of cells processed together by one task
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Cell membership
	Cells    []int // Region cell offsets in this partition
	NumCells int   // Actual number of cells
}

// PartitionLayout is the complete decomposition of a region
type PartitionLayout struct {
	// All partitions in the region
	Partitions []Partition

	// Global sizing information
	TotalCells    int // Sum of all cells across partitions
	NumPartitions int

	// Cell to partition mapping
	CToP []int // Length TotalCells: cell k belongs to partition CToP[k]
}

// GetPartition returns the partition containing cell k
func (pl *PartitionLayout) GetPartition(cellID int) int {
	if cellID < 0 || cellID >= len(pl.CToP) {
		return -1
	}
	return pl.CToP[cellID]
}

// ValidateLayout checks partition consistency
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("%d partitions, NumPartitions %d", len(pl.Partitions), pl.NumPartitions)
	}
	total := 0
	for _, p := range pl.Partitions {
		if len(p.Cells) != p.NumCells {
			return fmt.Errorf("partition %d: %d cells listed, NumCells %d",
				p.ID, len(p.Cells), p.NumCells)
		}
		for _, c := range p.Cells {
			if pl.GetPartition(c) != p.ID {
				return fmt.Errorf("partition %d: cell %d mapped to partition %d",
					p.ID, c, pl.GetPartition(c))
			}
		}
		total += p.NumCells
	}
	if total != pl.TotalCells {
		return fmt.Errorf("partitions hold %d cells, expected %d", total, pl.TotalCells)
	}
	return nil
}

// PartitionStats summarizes the load balance of a layout
type PartitionStats struct {
	NumPartitions int
	MinCells      int
	MaxCells      int
	AvgCells      float64
	Imbalance     float64 // MaxCells / AvgCells
}

// PartitionStatistics computes load balance metrics
func (pl *PartitionLayout) PartitionStatistics() PartitionStats {
	stats := PartitionStats{
		NumPartitions: pl.NumPartitions,
		MinCells:      pl.TotalCells,
		AvgCells:      float64(pl.TotalCells) / float64(pl.NumPartitions),
	}

	for _, p := range pl.Partitions {
		if p.NumCells < stats.MinCells {
			stats.MinCells = p.NumCells
		}
		if p.NumCells > stats.MaxCells {
			stats.MaxCells = p.NumCells
		}
	}

	if stats.AvgCells > 0 {
		stats.Imbalance = float64(stats.MaxCells) / stats.AvgCells
	}

	return stats
}

package partitions

import (
	"fmt"
	"math"
)

// PartitionBuilder splits NumCells cells into partitions
type PartitionBuilder struct {
	NumCells int

	// Partitioning parameters
	TargetPartitionSize int // Desired cells per partition
	Strategy            PartitionStrategy
}

// PartitionStrategy defines how cells are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive cells
	RoundRobin                              // Distribute cyclically
)

// BuildPartitions creates a partition layout
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if pb.NumCells < 0 {
		return nil, fmt.Errorf("negative cell count %d", pb.NumCells)
	}
	if pb.TargetPartitionSize < 1 {
		return nil, fmt.Errorf("target partition size %d must be positive", pb.TargetPartitionSize)
	}

	// Determine number of partitions needed
	numPartitions := pb.calculateNumPartitions()

	// Partition the cells
	cToP := pb.partitionCells(numPartitions)

	// Create partition structures
	partitions := pb.createPartitions(cToP, numPartitions)

	layout := &PartitionLayout{
		Partitions:    partitions,
		TotalCells:    pb.NumCells,
		NumPartitions: numPartitions,
		CToP:          cToP,
	}

	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}

	return layout, nil
}

// calculateNumPartitions determines the partition count
func (pb *PartitionBuilder) calculateNumPartitions() int {
	numPartitions := int(math.Ceil(float64(pb.NumCells) / float64(pb.TargetPartitionSize)))

	// Ensure at least one partition
	if numPartitions < 1 {
		numPartitions = 1
	}

	return numPartitions
}

// partitionCells assigns cells to partitions
func (pb *PartitionBuilder) partitionCells(numPartitions int) []int {
	cToP := make([]int, pb.NumCells)

	switch pb.Strategy {
	case RoundRobin:
		for i := 0; i < pb.NumCells; i++ {
			cToP[i] = i % numPartitions
		}

	default:
		cellsPerPartition := int(math.Ceil(float64(pb.NumCells) / float64(numPartitions)))
		for i := 0; i < pb.NumCells; i++ {
			cToP[i] = i / cellsPerPartition
			if cToP[i] >= numPartitions {
				cToP[i] = numPartitions - 1
			}
		}
	}

	return cToP
}

// createPartitions builds partition structures from cell assignments
func (pb *PartitionBuilder) createPartitions(cToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{
			ID:    i,
			Cells: make([]int, 0),
		}
	}

	for cell, part := range cToP {
		partitions[part].Cells = append(partitions[part].Cells, cell)
		partitions[part].NumCells++
	}

	return partitions
}

package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartitions_Block(t *testing.T) {
	pb := &PartitionBuilder{NumCells: 10, TargetPartitionSize: 4, Strategy: BlockPartition}
	layout, err := pb.BuildPartitions()
	require.NoError(t, err)

	assert.Equal(t, 3, layout.NumPartitions)
	assert.Equal(t, 10, layout.TotalCells)
	assert.Equal(t, []int{0, 1, 2, 3}, layout.Partitions[0].Cells)
	assert.Equal(t, []int{8, 9}, layout.Partitions[2].Cells)
	assert.Equal(t, 1, layout.GetPartition(5))
	assert.Equal(t, -1, layout.GetPartition(10))
}

func TestBuildPartitions_RoundRobin(t *testing.T) {
	pb := &PartitionBuilder{NumCells: 7, TargetPartitionSize: 3, Strategy: RoundRobin}
	layout, err := pb.BuildPartitions()
	require.NoError(t, err)

	assert.Equal(t, 3, layout.NumPartitions)
	assert.Equal(t, []int{0, 3, 6}, layout.Partitions[0].Cells)
	assert.Equal(t, []int{1, 4}, layout.Partitions[1].Cells)
	assert.Equal(t, []int{2, 5}, layout.Partitions[2].Cells)
	assert.NoError(t, layout.ValidateLayout())
}

func TestBuildPartitions_Errors(t *testing.T) {
	_, err := (&PartitionBuilder{NumCells: 4}).BuildPartitions()
	assert.Error(t, err)
	_, err = (&PartitionBuilder{NumCells: -1, TargetPartitionSize: 2}).BuildPartitions()
	assert.Error(t, err)
}

func TestBuildPartitions_Empty(t *testing.T) {
	layout, err := (&PartitionBuilder{TargetPartitionSize: 8}).BuildPartitions()
	require.NoError(t, err)
	assert.Equal(t, 1, layout.NumPartitions)
	assert.Empty(t, layout.Partitions[0].Cells)
}

func TestValidateLayout_DetectsCorruption(t *testing.T) {
	layout, err := (&PartitionBuilder{NumCells: 6, TargetPartitionSize: 3}).BuildPartitions()
	require.NoError(t, err)

	layout.CToP[0] = 1
	assert.Error(t, layout.ValidateLayout())

	layout.CToP[0] = 0
	layout.Partitions[1].NumCells++
	assert.Error(t, layout.ValidateLayout())

	layout.Partitions[1].NumCells--
	layout.NumPartitions = 3
	assert.Error(t, layout.ValidateLayout())
}

func TestPartitionStatistics(t *testing.T) {
	layout, err := (&PartitionBuilder{NumCells: 10, TargetPartitionSize: 4}).BuildPartitions()
	require.NoError(t, err)

	stats := layout.PartitionStatistics()
	assert.Equal(t, 3, stats.NumPartitions)
	assert.Equal(t, 2, stats.MinCells)
	assert.Equal(t, 4, stats.MaxCells)
	assert.InDelta(t, 10.0/3.0, stats.AvgCells, 1.e-12)
	assert.InDelta(t, 1.2, stats.Imbalance, 1.e-12)
}

package cellgeom

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/EBGeometry/partitions"
	"github.com/notargets/EBGeometry/utils"
)

func TestBuildRegion_MatchesSequential(t *testing.T) {
	fn := quadric(2, utils.RealVect{0.5, 0.5}, 0.37)
	box, err := utils.NewBox([]int{0, 0}, []int{7, 7})
	require.NoError(t, err)
	dx := []float64{0.125, 0.125}
	probLo := []float64{0, 0}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rg, err := BuildRegion(context.Background(), fn, box, dx, probLo, 2,
		&Config{Workers: 4, PartitionSize: 5, Logger: logger})
	require.NoError(t, err)
	require.Len(t, rg.Records, 64)
	assert.Contains(t, logBuf.String(), "region geometry built")

	for off, iv := range box.Cells() {
		center := rg.CellCenter(iv)
		want, err := NewRecord(fn, dx, center[:2], 2, nil)
		require.NoError(t, err)

		got := rg.Record(iv)
		require.Same(t, rg.Records[off], got)
		assert.Equal(t, want.CornerSigns, got.CornerSigns, "cell %v", iv)
		assert.Equal(t, want.Intersections, got.Intersections, "cell %v", iv)
		assert.Equal(t, want.LocalCoord, got.LocalCoord, "cell %v", iv)
		assert.Equal(t, want.NormalDerivatives, got.NormalDerivatives, "cell %v", iv)
	}

	cut := rg.CutCells()
	assert.NotEmpty(t, cut)
	assert.Less(t, len(cut), 64)
	for _, iv := range cut {
		assert.True(t, rg.Record(iv).IsCut())
	}
	assert.Nil(t, rg.Record(utils.IntVect{8, 0}))

	// the center cell is inside, the corner cell outside
	assert.Equal(t, AllIn, rg.Record(utils.IntVect{3, 3}).Status())
	assert.Equal(t, AllOut, rg.Record(utils.IntVect{0, 0}).Status())
}

func TestBuildRegion_RoundRobin(t *testing.T) {
	fn := quadric(2, utils.RealVect{0.5, 0.5}, 0.37)
	box, err := utils.NewBox([]int{0, 0}, []int{7, 7})
	require.NoError(t, err)
	dx := []float64{0.125, 0.125}

	block, err := BuildRegion(context.Background(), fn, box, dx, []float64{0, 0}, 1,
		&Config{Workers: 2, PartitionSize: 16})
	require.NoError(t, err)
	cyclic, err := BuildRegion(context.Background(), fn, box, dx, []float64{0, 0}, 1,
		&Config{Workers: 3, PartitionSize: 7, Partitioning: partitions.RoundRobin})
	require.NoError(t, err)

	for off := range box.Cells() {
		assert.Equal(t, block.Records[off].CornerSigns, cyclic.Records[off].CornerSigns)
		assert.Equal(t, block.Records[off].Intersections, cyclic.Records[off].Intersections)
		assert.Equal(t, block.Records[off].NormalDerivatives, cyclic.Records[off].NormalDerivatives)
	}
	assert.Equal(t, block.CutCells(), cyclic.CutCells())
}

func TestBuildRegion_Layout(t *testing.T) {
	box, err := utils.NewBox([]int{0, 0}, []int{1, 1})
	require.NoError(t, err)

	// the saddle point is the shared corner of the four cells, each of
	// which holds a single fragment
	rg, err := BuildRegion(context.Background(), saddle, box, []float64{1, 1}, []float64{-1, -1}, 1, nil)
	require.NoError(t, err)
	counts := rg.FragmentCounts()
	assert.Equal(t, []int{1, 1, 1, 1}, counts)

	layout, err := rg.Layout()
	require.NoError(t, err)
	assert.Equal(t, box, layout.Box())
	assert.Empty(t, layout.MultiCells(box))

	// a single cell centered on the saddle holds two fragments
	one, err := utils.NewBox([]int{0, 0}, []int{0, 0})
	require.NoError(t, err)
	rg, err = BuildRegion(context.Background(), saddle, one, []float64{1, 1}, []float64{-0.5, -0.5}, 1, nil)
	require.NoError(t, err)
	layout, err = rg.Layout()
	require.NoError(t, err)
	assert.True(t, layout.IsMultiValued(utils.IntVect{0, 0}))
	assert.Equal(t, 2, layout.NumFragments(utils.IntVect{0, 0}))
}

func TestBuildRegion_Errors(t *testing.T) {
	fn := quadric(2, utils.RealVect{}, 1)
	box3, err := utils.NewBox([]int{0, 0, 0}, []int{1, 1, 1})
	require.NoError(t, err)
	_, err = BuildRegion(context.Background(), fn, box3, []float64{1, 1}, []float64{0, 0}, 1, nil)
	assert.Error(t, err)

	box, err := utils.NewBox([]int{0, 0}, []int{3, 3})
	require.NoError(t, err)
	_, err = BuildRegion(context.Background(), fn, box, []float64{1}, []float64{0, 0}, 1, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildRegion(ctx, fn, box, []float64{1, 1}, []float64{0, 0}, 1, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

package cellgeom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/EBGeometry/implicit"
	"github.com/notargets/EBGeometry/utils"
)

func TestUnitNormal_Circle(t *testing.T) {
	// n = x/r on the unit circle at (0.6, 0.8)
	fn := quadric(2, utils.RealVect{}, 1)
	nd, ok := UnitNormal{}.CalculateAll(2, utils.RealVect{0.6, 0.8}, fn)
	require.True(t, ok)
	assert.Len(t, nd, utils.NumMonomials(2, 2))

	x, y := 0.6, 0.8
	tests := []struct {
		alpha utils.IntVect
		want  [2]float64
	}{
		{utils.IntVect{0, 0}, [2]float64{x, y}},
		{utils.IntVect{1, 0}, [2]float64{y * y, -x * y}},
		{utils.IntVect{0, 1}, [2]float64{-x * y, x * x}},
		{utils.IntVect{2, 0}, [2]float64{-3 * x * y * y, y * (2*x*x - y*y)}},
		{utils.IntVect{1, 1}, [2]float64{y * (2*x*x - y*y), x * (2*y*y - x*x)}},
		{utils.IntVect{0, 2}, [2]float64{x * (2*y*y - x*x), -3 * x * x * y}},
	}
	for _, tt := range tests {
		got := nd[tt.alpha]
		assert.InDelta(t, tt.want[0], got[0], 1.e-12, "d%v n_x", tt.alpha)
		assert.InDelta(t, tt.want[1], got[1], 1.e-12, "d%v n_y", tt.alpha)
	}
}

func TestUnitNormal_Sphere(t *testing.T) {
	// on a sphere of radius R the tangential derivatives of n are 1/R
	R := 2.0
	fn := quadric(3, utils.RealVect{}, R)
	nd, ok := UnitNormal{}.CalculateAll(1, utils.RealVect{R, 0, 0}, fn)
	require.True(t, ok)

	want := map[utils.IntVect]utils.RealVect{
		{}:            {1, 0, 0},
		utils.Unit(0): {0, 0, 0},
		utils.Unit(1): {0, 1 / R, 0},
		utils.Unit(2): {0, 0, 1 / R},
	}
	for alpha, w := range want {
		got := nd[alpha]
		assert.InDeltaSlice(t, w[:], got[:], 1.e-14, "d%v n", alpha)
	}
}

func TestUnitNormal_Bad(t *testing.T) {
	fn := quadric(2, utils.RealVect{}, 1)
	_, ok := UnitNormal{}.CalculateAll(1, utils.RealVect{}, fn)
	assert.False(t, ok, "vanishing gradient")

	_, ok = UnitNormal{MinGradient: 10}.CalculateAll(1, utils.RealVect{1, 0}, fn)
	assert.False(t, ok, "gradient below threshold")

	nan := quadric(2, utils.RealVect{math.NaN(), 0}, 1)
	_, ok = UnitNormal{}.CalculateAll(1, utils.RealVect{1, 0}, nan)
	assert.False(t, ok)
}

// fixedNormal records its calls
type fixedNormal struct {
	points []utils.RealVect
}

func (f *fixedNormal) CalculateAll(maxOrder int, point utils.RealVect, _ implicit.Function) (NormalDerivatives, bool) {
	f.points = append(f.points, point)
	return NormalDerivatives{{}: {1}}, true
}

func TestRecord_NormalEngine(t *testing.T) {
	engine := &fixedNormal{}
	r, err := NewRecord(plane(2, axis(0), 2.25), []float64{1, 1}, []float64{2, 3}, 1,
		&Config{Normals: engine})
	require.NoError(t, err)

	// 1D faces have no normal to differentiate
	require.Len(t, engine.points, 1)
	assert.InDelta(t, 2.25, engine.points[0][0], 1.e-10)
	assert.InDelta(t, 3.0, engine.points[0][1], 1.e-15)
	assert.Equal(t, NormalDerivatives{{}: {1}}, r.NormalDerivatives)
}

package rootfind

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrent_Linear(t *testing.T) {
	res, err := Brent(func(x float64) float64 { return x }, -1, 1, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.0, res.Root, Tolerance)
	assert.LessOrEqual(t, res.Iterations, 5)
}

func TestBrent_Nonlinear(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
	}{
		{"Cubic", func(x float64) float64 { return x*x*x - 0.125 }, -1, 1, 0.5},
		{"Decreasing", func(x float64) float64 { return 0.25 - x }, -1, 1, 0.25},
		{"Cosine", math.Cos, 0, 3, math.Pi / 2},
		{"RootAtEndpoint", func(x float64) float64 { return x - 1 }, -1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Brent(tt.f, tt.a, tt.b, &Settings{Tolerance: 1.e-12})
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.InDelta(t, tt.want, res.Root, 1.e-10)
			assert.LessOrEqual(t, res.Iterations, 50)
		})
	}
}

func TestBrent_NotBracketed(t *testing.T) {
	_, err := Brent(func(x float64) float64 { return x }, 1, 2, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotBracketed))

	_, err = Brent(func(x float64) float64 { return x*x + 1 }, -1, 1, nil)
	assert.ErrorIs(t, err, ErrNotBracketed)
}

func TestBrent_IterationCap(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := Brent(func(x float64) float64 { return x - 0.3 }, -1, 1,
		&Settings{MaxIterations: 1, Logger: logger})
	require.NoError(t, err, "the cap is not an error")
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.GreaterOrEqual(t, res.Root, -1.0)
	assert.LessOrEqual(t, res.Root, 1.0)
	assert.Contains(t, buf.String(), "exceeded maximum iterations")
}

package cellgeom

import (
	"log/slog"
	"runtime"

	"github.com/notargets/EBGeometry/partitions"
	"github.com/notargets/EBGeometry/rootfind"
)

// Config holds the knobs shared by every record built in a region.
// Zero-valued fields select the defaults.
type Config struct {
	// Corner value and parametric root threshold (default MachinePrecision)
	Epsilon float64
	// Edge root finder tolerance and cap (defaults Tolerance, 100)
	RootTolerance float64
	MaxIterations int

	// DisableRecentering keeps every local frame at the cell center. Only
	// used for controlled convergence studies.
	DisableRecentering bool

	// Normals computes the normal derivative map (default UnitNormal)
	Normals NormalDerivativeEngine

	// BuildRegion parallelism: concurrent tasks and cells per task
	// (defaults GOMAXPROCS and 64). Partitioning assigns cells to tasks,
	// consecutive blocks by default.
	Workers       int
	PartitionSize int
	Partitioning  partitions.PartitionStrategy

	Logger *slog.Logger
}

func (c *Config) withDefaults() Config {
	var cfg Config
	if c != nil {
		cfg = *c
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = MachinePrecision
	}
	if cfg.RootTolerance <= 0 {
		cfg.RootTolerance = Tolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = rootfind.MaxIterations
	}
	if cfg.Normals == nil {
		cfg.Normals = UnitNormal{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.PartitionSize <= 0 {
		cfg.PartitionSize = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

func (c *Config) rootSettings() *rootfind.Settings {
	return &rootfind.Settings{
		Tolerance:     c.RootTolerance,
		MaxIterations: c.MaxIterations,
		Logger:        c.Logger,
	}
}

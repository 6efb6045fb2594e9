package generation

import "github.com/alexanderramin/examplan/internal/scheduler"

// Config aggregates every tunable constant of the generation engine. The
// numeric values are configuration, not requirements; callers may override
// any of them before starting a run.
type Config struct {
	// BufferDays reserves a span immediately before the exam with no
	// scheduled sessions, left free for final review.
	BufferDays int

	Weights     scheduler.WeightConfig
	Rotation    scheduler.RotationConfig
	Balance     scheduler.BalanceConfig
	Materialize scheduler.MaterializeConfig

	// CoverageThreshold is the minimum share of the calendar window the
	// produced sessions must span.
	CoverageThreshold float64

	// RelaxedToleranceFactor widens the balance tolerance for the single
	// retry pass after a partial-coverage failure.
	RelaxedToleranceFactor float64
}

// DefaultConfig returns the engine tuning used in production.
func DefaultConfig() Config {
	return Config{
		BufferDays:             7,
		Weights:                scheduler.DefaultWeightConfig(),
		Rotation:               scheduler.DefaultRotationConfig(),
		Balance:                scheduler.DefaultBalanceConfig(),
		Materialize:            scheduler.DefaultMaterializeConfig(),
		CoverageThreshold:      0.9,
		RelaxedToleranceFactor: 1.5,
	}
}

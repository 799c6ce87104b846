package polydec

import (
	"fmt"
	"math"

	"github.com/gogpu/polydec/internal/queue"
)

// DefaultTargetReduction is the target reduction of a Decimator created
// without WithTargetReduction.
const DefaultTargetReduction = 0.90

// Strategy selects how the global reduction target is spread over chains.
type Strategy int

const (
	// StrategySequential decimates chains one after another in discovery
	// order until the mesh-wide target is met.
	StrategySequential Strategy = iota

	// StrategyProRata gives every chain its share of the target, decimates
	// chains independently (in parallel when workers > 1), then continues
	// chains in discovery order until the mesh-wide target is met.
	StrategyProRata
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyProRata:
		return "prorata"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name as produced by String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "sequential":
		return StrategySequential, nil
	case "prorata", "pro-rata":
		return StrategyProRata, nil
	default:
		return StrategySequential, fmt.Errorf("polydec: unknown strategy %q", s)
	}
}

// SchedulerKind selects the priority structure ordering removal candidates.
// Both kinds produce identical output.
type SchedulerKind = queue.Kind

const (
	// SchedulerHeap is an indexed binary heap.
	SchedulerHeap = queue.KindHeap

	// SchedulerTree is an ordered set keyed by (error, id).
	SchedulerTree = queue.KindTree
)

// ParseScheduler parses "heap" or "tree".
func ParseScheduler(s string) (SchedulerKind, error) {
	return queue.ParseKind(s)
}

// Option configures a Decimator during creation.
// Use functional options to customize decimation.
//
// Example:
//
//	d := polydec.New(
//	    polydec.WithTargetReduction(0.75),
//	    polydec.WithOutputPrecision(polydec.PrecisionSingle),
//	)
type Option func(*options)

// options holds the immutable configuration of a Decimator.
type options struct {
	targetReduction float64
	precision       Precision
	strategy        Strategy
	workers         int
	scheduler       SchedulerKind
	merge           bool
	maxOutputPoints int
	onDiagnostic    func(Diagnostic)
}

// defaultOptions returns the default decimator options.
func defaultOptions() options {
	return options{
		targetReduction: DefaultTargetReduction,
		precision:       PrecisionDefault,
		strategy:        StrategySequential,
		workers:         1,
		scheduler:       SchedulerHeap,
		merge:           true,
	}
}

// WithTargetReduction sets the fraction of points to remove, e.g. 0.9 keeps
// about 10% of the points. Values outside [0, 1] are clamped; NaN means 0.
func WithTargetReduction(r float64) Option {
	return func(o *options) {
		o.targetReduction = clampReduction(r)
	}
}

// WithOutputPrecision sets the coordinate precision of the output points.
func WithOutputPrecision(p Precision) Option {
	return func(o *options) {
		o.precision = p
	}
}

// WithStrategy sets how the reduction target is spread over chains.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithWorkers sets the number of goroutines used for chain-level work.
// 0 or negative means GOMAXPROCS. Output does not depend on this value.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithScheduler selects the candidate priority structure.
func WithScheduler(k SchedulerKind) Option {
	return func(o *options) {
		o.scheduler = k
	}
}

// WithLineMerging controls whether input lines meeting end to end at an
// otherwise unused point are decimated as one chain. Enabled by default.
func WithLineMerging(enabled bool) Option {
	return func(o *options) {
		o.merge = enabled
	}
}

// WithMaxOutputPoints caps the size of the output point array.
// A pass that would exceed it fails with ErrAllocation. 0 means no cap.
func WithMaxOutputPoints(n int) Option {
	return func(o *options) {
		o.maxOutputPoints = max(n, 0)
	}
}

// WithDiagnostics registers a callback receiving every diagnostic of a pass.
// The callback runs on the goroutine calling Decimate.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(o *options) {
		o.onDiagnostic = fn
	}
}

func clampReduction(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return math.Min(1, math.Max(0, r))
}

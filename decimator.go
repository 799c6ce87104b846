package polydec

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/polydec/internal/chain"
	"github.com/gogpu/polydec/internal/parallel"
)

// Decimator removes polyline vertices toward a target reduction while
// keeping the introduced deviation small.
//
// A Decimator holds only immutable configuration; Decimate may be called
// concurrently from multiple goroutines.
type Decimator struct {
	opts options
}

// New creates a Decimator. Without options it removes up to 90% of the
// points sequentially, keeps the input precision and merges lines that meet
// end to end.
func New(opts ...Option) *Decimator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decimator{opts: o}
}

// TargetReduction returns the clamped target reduction.
func (d *Decimator) TargetReduction() float64 {
	return d.opts.targetReduction
}

// OutputPrecision returns the configured output precision.
func (d *Decimator) OutputPrecision() Precision {
	return d.opts.precision
}

// Strategy returns the configured strategy.
func (d *Decimator) Strategy() Strategy {
	return d.opts.strategy
}

// Stats summarizes one pass.
type Stats struct {
	InputPoints     int // vertices over all decimatable chains
	OutputPoints    int // points in the output mesh
	RemovedPoints   int
	Chains          int
	OpenChains      int
	ClosedChains    int
	DegenerateLines int

	TargetReduction   float64
	AchievedReduction float64 // RemovedPoints / InputPoints, 0 for empty input

	// MaxError is the largest error of any removed vertex.
	MaxError float64
}

// Result is the output of Decimate.
type Result struct {
	Mesh        *Mesh
	Stats       Stats
	Diagnostics []Diagnostic
}

// Decimate reduces the polylines of m. The input is never modified.
//
// Output points are written chain by chain. A point shared by several chains
// appears once per chain, and points that no line references are dropped, so
// a zero reduction reproduces the input exactly only when every point belongs
// to exactly one chain.
//
// Lines too short to decimate are copied through and reported as
// diagnostics. Malformed connectivity fails with ErrMalformedConnectivity
// and an output buffer that cannot be sized fails with ErrAllocation; in
// both cases no output is returned.
func (d *Decimator) Decimate(m *Mesh) (*Result, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	part, err := chain.Extract(m.Lines, m.Points.Len(), chain.Options{Merge: d.opts.merge})
	if err != nil {
		if errors.Is(err, chain.ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedConnectivity, err)
		}
		return nil, err
	}

	res := &Result{}
	for _, dg := range part.Degenerate {
		d.report(res, Diagnostic{
			Kind:    DiagnosticDegenerateChain,
			Line:    dg.Line,
			Message: "degenerate line passed through: " + dg.Reason,
		})
	}

	var pool *parallel.WorkerPool
	if d.opts.workers != 1 && len(part.Chains) > 1 {
		pool = parallel.NewWorkerPool(d.opts.workers)
		defer pool.Close()
	}

	p := newPass(m.Points, part.Chains, part.Vertices, d.opts, pool)
	p.run(d.opts.strategy)

	out, err := assemble(m, records(part), d.opts.precision, d.opts.maxOutputPoints)
	if err != nil {
		d.report(res, Diagnostic{
			Kind:    DiagnosticAllocationFailure,
			Line:    -1,
			Message: err.Error(),
			Err:     err,
		})
		return nil, err
	}

	res.Mesh = out
	res.Stats = Stats{
		InputPoints:     p.total,
		OutputPoints:    out.Points.Len(),
		RemovedPoints:   p.removed,
		Chains:          len(part.Chains),
		DegenerateLines: len(part.Degenerate),
		TargetReduction: d.opts.targetReduction,
		MaxError:        p.maxError(),
	}
	for _, c := range part.Chains {
		if c.Closed {
			res.Stats.ClosedChains++
		} else {
			res.Stats.OpenChains++
		}
	}
	if p.total > 0 {
		res.Stats.AchievedReduction = float64(p.removed) / float64(p.total)
	}

	workers := 1
	if pool != nil {
		workers = pool.Workers()
	}
	Logger().Debug("polydec: decimation complete",
		slog.String("strategy", d.opts.strategy.String()),
		slog.Int("workers", workers),
		slog.String("scheduler", d.opts.scheduler.String()),
		slog.Int("chains", res.Stats.Chains),
		slog.Int("input_points", res.Stats.InputPoints),
		slog.Int("removed", res.Stats.RemovedPoints),
		slog.Float64("target", res.Stats.TargetReduction),
		slog.Float64("achieved", res.Stats.AchievedReduction),
	)
	return res, nil
}

// report records a diagnostic, logs it and forwards it to the callback.
func (d *Decimator) report(res *Result, diag Diagnostic) {
	res.Diagnostics = append(res.Diagnostics, diag)
	Logger().Warn("polydec: "+diag.Kind.String(),
		slog.Int("line", diag.Line),
		slog.String("detail", diag.Message),
	)
	if d.opts.onDiagnostic != nil {
		d.opts.onDiagnostic(diag)
	}
}

package polydec

import (
	"math"

	"github.com/gogpu/polydec/internal/chain"
	"github.com/gogpu/polydec/internal/metric"
	"github.com/gogpu/polydec/internal/parallel"
	"github.com/gogpu/polydec/internal/queue"
)

// chainState tracks one chain through the removal loop.
type chainState int

const (
	// stateActive: candidates remain and the target is unmet.
	stateActive chainState = iota

	// stateConverged: the chain hit its floor, ran out of candidates, or the
	// mesh-wide target was met.
	stateConverged
)

// targetTolerance absorbs float noise such as (1-0.7)*10 = 2.9999999999999996.
const targetTolerance = 1e-9

// pass is the working state of one Decimate call. It is private to the
// call and discarded after assembly.
type pass struct {
	pos    metric.Positions
	chains []*chain.Chain
	scheds []queue.Scheduler
	states []chainState
	maxErr []float64 // per chain, so phase-one workers never share a slot

	reduction float64
	total     int // vertices over all chains
	removed   int
	target    int // retained count at which the pass stops

	kind queue.Kind
	pool *parallel.WorkerPool // nil when running on one goroutine
}

func newPass(pos metric.Positions, chains []*chain.Chain, total int, o options, pool *parallel.WorkerPool) *pass {
	return &pass{
		pos:       pos,
		chains:    chains,
		scheds:    make([]queue.Scheduler, len(chains)),
		states:    make([]chainState, len(chains)),
		maxErr:    make([]float64, len(chains)),
		reduction: o.targetReduction,
		total:     total,
		target:    retainedTarget(total, o.targetReduction),
		kind:      o.scheduler,
		pool:      pool,
	}
}

// retainedTarget returns the largest count n with n <= (1-r)*total.
func retainedTarget(total int, r float64) int {
	return int(math.Floor((1-r)*float64(total) + targetTolerance))
}

// met reports whether the mesh-wide target holds.
func (p *pass) met() bool {
	return p.total-p.removed <= p.target
}

// forEachChain runs fn for every chain, on the pool while it is running.
func (p *pass) forEachChain(fn func(i int)) {
	if p.pool == nil || !p.pool.IsRunning() {
		for i := range p.chains {
			fn(i)
		}
		return
	}
	p.pool.ForEach(len(p.chains), fn)
}

// seed scores every vertex and fills the per-chain schedulers.
func (p *pass) seed() {
	p.forEachChain(func(i int) {
		c := p.chains[i]
		s := queue.New(p.kind, c.Len())
		metric.Seed(c, p.pos, s)
		p.scheds[i] = s
		if s.Len() == 0 {
			p.states[i] = stateConverged
		}
	})
}

// step removes one vertex from chain i. It reports false, leaving the chain
// untouched, once the chain has converged. Step touches only chain i's
// state so chains may be stepped concurrently.
func (p *pass) step(i int) bool {
	if p.states[i] == stateConverged {
		return false
	}
	c, s := p.chains[i], p.scheds[i]

	if c.AtFloor() {
		p.converge(i)
		return false
	}
	v, ok := s.ExtractMin()
	if !ok {
		p.converge(i)
		return false
	}

	p.maxErr[i] = math.Max(p.maxErr[i], c.Vertices[v].Error)
	prev, next := c.Splice(v)
	if c.AtFloor() {
		p.converge(i)
		return true
	}
	metric.Refresh(c, p.pos, s, prev)
	metric.Refresh(c, p.pos, s, next)
	return true
}

func (p *pass) converge(i int) {
	p.states[i] = stateConverged
	p.scheds[i].Clear()
}

// run executes the removal loop with the given strategy.
func (p *pass) run(strategy Strategy) {
	p.seed()
	if strategy == StrategyProRata {
		p.runProRata()
	}
	p.runSequential()
	for i := range p.states {
		p.states[i] = stateConverged
	}
}

// runSequential continues chains in discovery order until the target holds.
// The target is checked before every removal.
func (p *pass) runSequential() {
	for i := range p.chains {
		for !p.met() && p.step(i) {
			p.removed++
		}
		if p.met() {
			return
		}
	}
}

// runProRata decimates every chain toward its own share of the target.
// Per-chain targets round up, so this phase never removes more than the
// mesh-wide target allows; the serial pass that follows makes up the rest.
func (p *pass) runProRata() {
	keep := 1 - p.reduction
	p.forEachChain(func(i int) {
		c := p.chains[i]
		limit := int(math.Ceil(keep*float64(c.Len()) - targetTolerance))
		for c.Live > limit && p.step(i) {
		}
	})
	for _, c := range p.chains {
		p.removed += c.Len() - c.Live
	}
}

// maxError returns the largest error of any removed vertex.
func (p *pass) maxError() float64 {
	m := 0.0
	for _, e := range p.maxErr {
		m = math.Max(m, e)
	}
	return m
}

// Package metric scores chain vertices by the deviation their removal
// would introduce.
package metric

import (
	"math"

	"github.com/gogpu/polydec/internal/chain"
	"github.com/gogpu/polydec/internal/geom"
	"github.com/gogpu/polydec/internal/queue"
)

// Positions resolves point indices to coordinates.
type Positions interface {
	At(i int) geom.Vec3
}

// Evaluate returns the error of removing vertex v from c: the perpendicular
// distance from v to the line through its current neighbors. Vertices
// without two neighbors (open chain ends) score +Inf.
func Evaluate(c *chain.Chain, pos Positions, v int) float64 {
	if !c.Interior(v) {
		return math.Inf(1)
	}
	vx := &c.Vertices[v]
	return geom.LineDistance(
		pos.At(vx.Point),
		pos.At(c.Vertices[vx.Prev].Point),
		pos.At(c.Vertices[vx.Next].Point),
	)
}

// Candidate reports whether v may be queued for removal.
func Candidate(c *chain.Chain, v int) bool {
	return c.Interior(v) && !c.AtFloor()
}

// Seed scores every vertex of c and queues the candidates in s.
func Seed(c *chain.Chain, pos Positions, s queue.Scheduler) {
	for v := range c.Vertices {
		e := Evaluate(c, pos, v)
		c.Vertices[v].Error = e
		if Candidate(c, v) {
			s.Insert(v, e)
		}
	}
}

// Refresh rescores v after a neighbor changed and brings s in line:
// update when still a candidate, insert when newly eligible, remove when
// no longer eligible. A queued error that did not change is left in place.
func Refresh(c *chain.Chain, pos Positions, s queue.Scheduler, v int) {
	if v == chain.None {
		return
	}
	e := Evaluate(c, pos, v)
	c.Vertices[v].Error = e
	switch {
	case !Candidate(c, v):
		s.Remove(v)
	case !s.Contains(v):
		s.Insert(v, e)
	default:
		if old, _ := s.Error(v); old != e {
			s.Update(v, e)
		}
	}
}

package chain

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when connectivity cannot be partitioned.
var ErrMalformed = errors.New("chain: malformed connectivity")

// Source is a read-only view of line connectivity.
type Source interface {
	Len() int
	Line(i int) []int
}

// Degenerate is an input line too small to decimate. It is passed through
// to the output as-is.
type Degenerate struct {
	Line   int
	Points []int
	Reason string
}

// Partition is the result of Extract.
type Partition struct {
	Chains     []*Chain
	Degenerate []Degenerate

	// Vertices is the total vertex count over all chains.
	Vertices int
}

// Options tunes Extract.
type Options struct {
	// Merge joins open lines end to end at points shared by exactly two
	// line ends and used nowhere else.
	Merge bool
}

// line is a validated input line.
type line struct {
	index  int
	points []int // closing repeat stripped for closed lines
	closed bool
}

// Extract validates the connectivity in src against numPoints and splits it
// into chains. Problems in several lines are joined into one error.
func Extract(src Source, numPoints int, opts Options) (*Partition, error) {
	part := &Partition{}
	var valid []line
	var errs []error

	for i := range src.Len() {
		pts := src.Line(i)
		ln, reason, err := classify(i, pts, numPoints)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if reason != "" {
			part.Degenerate = append(part.Degenerate, Degenerate{
				Line:   i,
				Points: append([]int(nil), pts...),
				Reason: reason,
			})
			continue
		}
		valid = append(valid, ln)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if opts.Merge {
		part.Chains = merge(valid, part.Degenerate, numPoints)
	} else {
		for _, ln := range valid {
			part.Chains = append(part.Chains, New(ln.index, []int{ln.index}, ln.points, ln.closed))
		}
	}
	for _, c := range part.Chains {
		part.Vertices += c.Len()
	}
	return part, nil
}

// classify validates one line. A non-empty reason marks it degenerate.
func classify(index int, pts []int, numPoints int) (line, string, error) {
	for k, p := range pts {
		if p < 0 || p >= numPoints {
			return line{}, "", fmt.Errorf("%w: line %d position %d: point %d out of range [0,%d)",
				ErrMalformed, index, k, p, numPoints)
		}
	}
	if len(pts) < 2 {
		return line{}, fmt.Sprintf("%d point(s), need at least 2", len(pts)), nil
	}

	closed := pts[0] == pts[len(pts)-1]
	body := pts
	if closed {
		body = pts[:len(pts)-1]
		if len(body) == 1 {
			return line{}, "", fmt.Errorf("%w: line %d is a self loop on point %d", ErrMalformed, index, pts[0])
		}
	}
	seen := make(map[int]int, len(body))
	for k, p := range body {
		if first, ok := seen[p]; ok {
			return line{}, "", fmt.Errorf("%w: line %d repeats point %d at positions %d and %d",
				ErrMalformed, index, p, first, k)
		}
		seen[p] = k
	}
	if closed && len(body) < ClosedFloor {
		return line{}, fmt.Sprintf("closed line with %d distinct point(s), need at least %d", len(body), ClosedFloor), nil
	}
	return line{index: index, points: body, closed: closed}, "", nil
}

// lineEnd is one end of an open line.
type lineEnd struct {
	slot int // index into the valid-line slice
	head bool
}

// merge joins open lines at unshared endpoints. Lines are visited in input
// order so a merged chain keeps the orientation of its earliest line. A line
// that would revisit a point already in the chain starts a chain of its own.
func merge(lines []line, degenerate []Degenerate, numPoints int) []*Chain {
	blocked := make([]bool, numPoints)
	ends := make(map[int][]lineEnd)

	for _, d := range degenerate {
		for _, p := range d.Points {
			blocked[p] = true
		}
	}
	for s, ln := range lines {
		if ln.closed {
			for _, p := range ln.points {
				blocked[p] = true
			}
			continue
		}
		for _, p := range ln.points[1 : len(ln.points)-1] {
			blocked[p] = true
		}
		head, tail := ln.points[0], ln.points[len(ln.points)-1]
		ends[head] = append(ends[head], lineEnd{slot: s, head: true})
		ends[tail] = append(ends[tail], lineEnd{slot: s, head: false})
	}
	joinable := func(p int) bool {
		return !blocked[p] && len(ends[p]) == 2
	}

	consumed := make([]bool, len(lines))
	next := func(p int) (lineEnd, bool) {
		if !joinable(p) {
			return lineEnd{}, false
		}
		for _, e := range ends[p] {
			if !consumed[e.slot] {
				return e, true
			}
		}
		return lineEnd{}, false
	}

	var chains []*Chain
	for s, ln := range lines {
		if consumed[s] {
			continue
		}
		consumed[s] = true
		if ln.closed {
			chains = append(chains, New(ln.index, []int{ln.index}, ln.points, true))
			continue
		}

		seq := append([]int(nil), ln.points...)
		inSeq := make(map[int]bool, len(seq))
		for _, p := range seq {
			inSeq[p] = true
		}
		members := []int{s}
		closed := false

		for {
			tail := seq[len(seq)-1]
			e, ok := next(tail)
			if !ok {
				closed = tail == seq[0] && joinable(tail)
				break
			}
			add := oriented(lines[e.slot].points, e.head)[1:]
			if revisits(add, inSeq, seq[0], true) {
				break
			}
			consumed[e.slot] = true
			members = append(members, e.slot)
			for _, p := range add {
				inSeq[p] = true
			}
			seq = append(seq, add...)
		}
		if closed {
			seq = seq[:len(seq)-1]
		} else {
			for {
				e, ok := next(seq[0])
				if !ok {
					break
				}
				// Oriented to start at the joint, then reversed to end there.
				pre := reversed(oriented(lines[e.slot].points, e.head))
				add := pre[:len(pre)-1]
				if revisits(add, inSeq, seq[0], false) {
					break
				}
				consumed[e.slot] = true
				members = append(members, e.slot)
				for _, p := range add {
					inSeq[p] = true
				}
				seq = append(add, seq...)
			}
		}

		if closed && len(seq) < ClosedFloor {
			// Two lines folding back onto each other: keep them apart.
			for _, m := range members {
				chains = append(chains, New(lines[m].index, []int{lines[m].index}, lines[m].points, false))
			}
			continue
		}

		order := lines[members[0]].index
		idx := make([]int, len(members))
		for k, m := range members {
			idx[k] = lines[m].index
			order = min(order, lines[m].index)
		}
		chains = append(chains, New(order, idx, seq, closed))
	}
	return chains
}

// revisits reports whether joining add would repeat a point already in the
// chain. With closing set, a final point equal to first closes the loop and
// does not count.
func revisits(add []int, inSeq map[int]bool, first int, closing bool) bool {
	for k, p := range add {
		if !inSeq[p] {
			continue
		}
		if closing && k == len(add)-1 && p == first {
			continue
		}
		return true
	}
	return false
}

// oriented returns pts starting at the given end.
func oriented(pts []int, head bool) []int {
	if head {
		return pts
	}
	return reversed(pts)
}

func reversed(pts []int) []int {
	out := make([]int, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

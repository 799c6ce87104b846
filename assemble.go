package polydec

import (
	"fmt"
	"sort"

	"github.com/gogpu/polydec/internal/chain"
)

// record is one output line: a decimated chain or a degenerate line copied
// through.
type record struct {
	order  int
	lines  []int // source lines, the first supplies cell data
	points []int // source point indices in traversal order
	closed bool  // repeat the first output index at the end
	raw    bool  // degenerate: emit points verbatim, reusing repeated indices
}

// records orders chains and degenerate lines by discovery order.
func records(part *chain.Partition) []record {
	out := make([]record, 0, len(part.Chains)+len(part.Degenerate))
	for _, c := range part.Chains {
		out = append(out, record{
			order:  c.Order,
			lines:  c.Lines,
			points: c.Surviving(),
			closed: c.Closed,
		})
	}
	for _, d := range part.Degenerate {
		out = append(out, record{
			order:  d.Line,
			lines:  []int{d.Line},
			points: d.Points,
			raw:    true,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

// assemble writes surviving points and lines into fresh owned buffers.
// Every buffer is sized up front, so an allocation failure leaves no
// partial output behind.
func assemble(in *Mesh, recs []record, prec Precision, maxPoints int) (*Mesh, error) {
	numPoints, numIDs := 0, 0
	for _, r := range recs {
		numPoints += emitted(r)
		numIDs += len(r.points)
		if r.closed {
			numIDs++
		}
	}

	pts := NewPoints(prec.resolve(in.Points.Precision()), 0)
	if err := pts.reserve(numPoints, maxPoints); err != nil {
		return nil, fmt.Errorf("%w: %d points: %w", ErrAllocation, numPoints, err)
	}
	lines := newLines()
	if err := lines.reserve(len(recs), numIDs); err != nil {
		return nil, fmt.Errorf("%w: %d lines: %w", ErrAllocation, len(recs), err)
	}

	// source[k] is the input point behind output point k.
	source := make([]int, 0, numPoints)
	ids := make([]int, 0)
	for _, r := range recs {
		ids = ids[:0]
		var local map[int]int
		if r.raw {
			local = make(map[int]int, len(r.points))
		}
		for _, p := range r.points {
			if local != nil {
				if k, ok := local[p]; ok {
					ids = append(ids, k)
					continue
				}
				local[p] = len(source)
			}
			ids = append(ids, len(source))
			source = append(source, p)
			if err := pts.Append(in.Points.At(p)); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
			}
		}
		if r.closed {
			ids = append(ids, ids[0])
		}
		if err := lines.Append(ids...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
		}
	}

	out := &Mesh{Points: pts, Lines: lines}
	out.PointData = copyTuples(in.PointData, source)
	cellSource := make([]int, len(recs))
	for i, r := range recs {
		cellSource[i] = r.lines[0]
	}
	out.CellData = copyTuples(in.CellData, cellSource)
	return out, nil
}

// emitted returns the number of output points a record produces.
func emitted(r record) int {
	if !r.raw {
		return len(r.points)
	}
	seen := make(map[int]struct{}, len(r.points))
	for _, p := range r.points {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// copyTuples gathers tuples source[0], source[1], ... from every array.
func copyTuples(as Attributes, source []int) Attributes {
	if len(as) == 0 {
		return nil
	}
	out := make(Attributes, len(as))
	for i, a := range as {
		data := make([]float64, 0, len(source)*a.Components)
		for _, s := range source {
			data = append(data, a.Tuple(s)...)
		}
		out[i] = Array{Name: a.Name, Components: a.Components, Data: data}
	}
	return out
}

// Package chain partitions line connectivity into maximal chains and keeps
// the per-chain doubly-linked vertex lists the decimation loop mutates.
package chain

// None marks a missing neighbor at an open chain end.
const None = -1

// Minimum vertex counts a chain must keep.
const (
	OpenFloor   = 2
	ClosedFloor = 3
)

// Vertex is one entry of a chain's linked list.
// Its index in Chain.Vertices is its stable id for the whole pass.
type Vertex struct {
	Point   int // index into the input points
	Prev    int // predecessor id or None
	Next    int // successor id or None
	Error   float64
	Removed bool
}

// Chain is a maximal run of connected segments.
//
// For a closed chain the closing repeat of the first point is not stored:
// the last vertex links back to the first.
type Chain struct {
	// Order is the index of the earliest input line in the chain and fixes
	// the chain's position in the output.
	Order int

	// Lines lists the input lines joined into this chain, earliest first.
	Lines []int

	Closed   bool
	Vertices []Vertex

	// Live is the number of vertices not yet removed.
	Live int
}

// New builds a chain over the given point indices.
func New(order int, lines []int, points []int, closed bool) *Chain {
	n := len(points)
	c := &Chain{
		Order:    order,
		Lines:    lines,
		Closed:   closed,
		Vertices: make([]Vertex, n),
		Live:     n,
	}
	for i, p := range points {
		v := Vertex{Point: p, Prev: i - 1, Next: i + 1}
		if i == n-1 {
			v.Next = None
		}
		if closed {
			v.Prev = (i - 1 + n) % n
			v.Next = (i + 1) % n
		}
		c.Vertices[i] = v
	}
	return c
}

// Len returns the number of vertices the chain started with.
func (c *Chain) Len() int {
	return len(c.Vertices)
}

// Floor returns the minimum number of vertices the chain must keep.
func (c *Chain) Floor() int {
	if c.Closed {
		return ClosedFloor
	}
	return OpenFloor
}

// AtFloor reports whether no further vertex may be removed.
func (c *Chain) AtFloor() bool {
	return c.Live <= c.Floor()
}

// Interior reports whether v currently has both neighbors.
// Every live vertex of a closed chain is interior.
func (c *Chain) Interior(v int) bool {
	vx := &c.Vertices[v]
	return !vx.Removed && vx.Prev != None && vx.Next != None
}

// Splice unlinks v from its neighbors and returns them.
// prev or next is None when v sat next to an open end.
func (c *Chain) Splice(v int) (prev, next int) {
	vx := &c.Vertices[v]
	prev, next = vx.Prev, vx.Next
	if prev != None {
		c.Vertices[prev].Next = next
	}
	if next != None {
		c.Vertices[next].Prev = prev
	}
	vx.Removed = true
	vx.Prev, vx.Next = None, None
	c.Live--
	return prev, next
}

// Surviving returns the point indices of live vertices in original
// traversal order.
func (c *Chain) Surviving() []int {
	out := make([]int, 0, c.Live)
	for i := range c.Vertices {
		if !c.Vertices[i].Removed {
			out = append(out, c.Vertices[i].Point)
		}
	}
	return out
}

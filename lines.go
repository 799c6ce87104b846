package polydec

import "github.com/gogpu/polydec/internal/buffer"

// Lines is a line connectivity listing: a sequence of lines, each a
// variable-length run of point indices. A line whose last index equals its
// first is closed.
//
// Storage is a flat index array plus an offsets array, so a listing of any
// size costs two allocations.
type Lines struct {
	offsets *buffer.Buffer[int] // Len()+1 entries, offsets[0] == 0
	conn    *buffer.Buffer[int]
}

// NewLines creates a listing holding copies of the given lines.
func NewLines(lines ...[]int) *Lines {
	l := newLines()
	for _, ln := range lines {
		_ = l.Append(ln...)
	}
	return l
}

func newLines() *Lines {
	offsets, _ := buffer.New[int](1)
	conn, _ := buffer.New[int](0)
	return &Lines{offsets: offsets, conn: conn}
}

// Len returns the number of lines.
func (l *Lines) Len() int {
	return l.offsets.Len() - 1
}

// Line returns the point indices of line i. The slice aliases internal
// storage and must not be modified.
func (l *Lines) Line(i int) []int {
	off := l.offsets.Data()
	return l.conn.Data()[off[i]:off[i+1]]
}

// Append adds one line.
func (l *Lines) Append(ids ...int) error {
	if err := l.conn.Append(ids...); err != nil {
		return err
	}
	if err := l.offsets.Append(l.conn.Len()); err != nil {
		_ = l.conn.Resize(l.conn.Len()-len(ids), true)
		return err
	}
	return nil
}

// NumIDs returns the total number of point references over all lines.
func (l *Lines) NumIDs() int {
	return l.conn.Len()
}

// All copies every line out.
func (l *Lines) All() [][]int {
	out := make([][]int, l.Len())
	for i := range out {
		ln := l.Line(i)
		out[i] = make([]int, len(ln))
		copy(out[i], ln)
	}
	return out
}

// reserve sizes the listing for n lines referencing ids point indices.
func (l *Lines) reserve(n, ids int) error {
	if err := l.offsets.Reserve(n + 1); err != nil {
		return err
	}
	return l.conn.Reserve(ids)
}

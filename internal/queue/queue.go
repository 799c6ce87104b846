// Package queue provides the keyed priority structures that order removal
// candidates during decimation.
//
// Candidates are identified by small non-negative integer ids (a vertex's
// position in its chain). Ordering is by ascending error, ties broken by
// ascending id, so extraction order is reproducible across runs.
//
// Two implementations satisfy Scheduler:
//   - Heap: an indexed binary heap with an id→slot table.
//   - Tree: an ordered set keyed by (error, id) with an id→key table.
//
// Every operation is O(log n) in the number of queued candidates.
package queue

import "fmt"

// Scheduler is a mutable min-priority structure over candidate ids.
type Scheduler interface {
	// Insert queues id with the given error. Inserting a queued id updates it.
	Insert(id int, err float64)

	// ExtractMin removes and returns the candidate with the smallest error.
	// ok is false when the scheduler is empty.
	ExtractMin() (id int, ok bool)

	// Update changes the error of a queued id. Unknown ids are ignored.
	Update(id int, err float64)

	// Remove drops id from the scheduler. Unknown ids are ignored.
	Remove(id int)

	// Contains reports whether id is queued.
	Contains(id int) bool

	// Error returns the queued error of id.
	Error(id int) (float64, bool)

	// Len returns the number of queued candidates.
	Len() int

	// Clear removes every candidate.
	Clear()
}

// Kind selects a Scheduler implementation.
type Kind int

const (
	// KindHeap selects the indexed binary heap.
	KindHeap Kind = iota

	// KindTree selects the ordered set.
	KindTree
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindTree:
		return "tree"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as produced by String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "heap", "":
		return KindHeap, nil
	case "tree":
		return KindTree, nil
	default:
		return KindHeap, fmt.Errorf("queue: unknown scheduler %q", s)
	}
}

// New creates a scheduler of the given kind sized for ids in [0, n).
func New(kind Kind, n int) Scheduler {
	if kind == KindTree {
		return NewTree(n)
	}
	return NewHeap(n)
}

// entry is a queued candidate.
type entry struct {
	id  int
	err float64
}

// less orders entries by ascending error then ascending id.
func less(a, b entry) bool {
	if a.err != b.err {
		return a.err < b.err
	}
	return a.id < b.id
}

// compare is the three-way form of less.
func compare(a, b entry) int {
	switch {
	case less(a, b):
		return -1
	case less(b, a):
		return 1
	default:
		return 0
	}
}

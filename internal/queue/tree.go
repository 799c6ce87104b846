package queue

import "github.com/emirpasic/gods/sets/treeset"

// Tree is an ordered set of (error, id) keys backed by a red-black tree,
// with an id→key table so arbitrary entries can be found for update and
// removal.
type Tree struct {
	set  *treeset.Set
	keys map[int]entry
}

// NewTree creates an empty tree sized for roughly n ids.
func NewTree(n int) *Tree {
	return &Tree{
		set: treeset.NewWith(func(a, b interface{}) int {
			return compare(a.(entry), b.(entry))
		}),
		keys: make(map[int]entry, n),
	}
}

// Insert queues id with the given error.
func (t *Tree) Insert(id int, err float64) {
	if old, ok := t.keys[id]; ok {
		t.set.Remove(old)
	}
	e := entry{id: id, err: err}
	t.set.Add(e)
	t.keys[id] = e
}

// ExtractMin removes and returns the smallest candidate.
func (t *Tree) ExtractMin() (int, bool) {
	it := t.set.Iterator()
	if !it.First() {
		return 0, false
	}
	e := it.Value().(entry)
	t.set.Remove(e)
	delete(t.keys, e.id)
	return e.id, true
}

// Update changes the error of a queued id.
func (t *Tree) Update(id int, err float64) {
	if _, ok := t.keys[id]; !ok {
		return
	}
	t.Insert(id, err)
}

// Remove drops id from the tree.
func (t *Tree) Remove(id int) {
	old, ok := t.keys[id]
	if !ok {
		return
	}
	t.set.Remove(old)
	delete(t.keys, id)
}

// Contains reports whether id is queued.
func (t *Tree) Contains(id int) bool {
	_, ok := t.keys[id]
	return ok
}

// Error returns the queued error of id.
func (t *Tree) Error(id int) (float64, bool) {
	e, ok := t.keys[id]
	return e.err, ok
}

// Len returns the number of queued candidates.
func (t *Tree) Len() int {
	return t.set.Size()
}

// Clear removes every candidate.
func (t *Tree) Clear() {
	t.set.Clear()
	clear(t.keys)
}

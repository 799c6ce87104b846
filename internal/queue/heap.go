package queue

// Heap is an indexed binary min-heap.
//
// slot[id] holds the position of id inside items, or -1 when id is not
// queued, which lets Update and Remove find an arbitrary entry in O(1) and
// restore the heap property in O(log n).
type Heap struct {
	items []entry
	slot  []int
}

// NewHeap creates a heap sized for ids in [0, n). Larger ids grow the table.
func NewHeap(n int) *Heap {
	h := &Heap{
		items: make([]entry, 0, n),
		slot:  make([]int, n),
	}
	for i := range h.slot {
		h.slot[i] = -1
	}
	return h
}

// Insert queues id with the given error.
func (h *Heap) Insert(id int, err float64) {
	if h.Contains(id) {
		h.Update(id, err)
		return
	}
	h.grow(id)
	h.items = append(h.items, entry{id: id, err: err})
	i := len(h.items) - 1
	h.slot[id] = i
	h.up(i)
}

// ExtractMin removes and returns the smallest candidate.
func (h *Heap) ExtractMin() (int, bool) {
	if len(h.items) == 0 {
		return 0, false
	}
	id := h.items[0].id
	h.removeAt(0)
	return id, true
}

// Update changes the error of a queued id.
func (h *Heap) Update(id int, err float64) {
	if !h.Contains(id) {
		return
	}
	i := h.slot[id]
	old := h.items[i]
	h.items[i].err = err
	if less(h.items[i], old) {
		h.up(i)
	} else {
		h.down(i)
	}
}

// Remove drops id from the heap.
func (h *Heap) Remove(id int) {
	if !h.Contains(id) {
		return
	}
	h.removeAt(h.slot[id])
}

// Contains reports whether id is queued.
func (h *Heap) Contains(id int) bool {
	return id >= 0 && id < len(h.slot) && h.slot[id] >= 0
}

// Error returns the queued error of id.
func (h *Heap) Error(id int) (float64, bool) {
	if !h.Contains(id) {
		return 0, false
	}
	return h.items[h.slot[id]].err, true
}

// Len returns the number of queued candidates.
func (h *Heap) Len() int {
	return len(h.items)
}

// Clear removes every candidate.
func (h *Heap) Clear() {
	for _, e := range h.items {
		h.slot[e.id] = -1
	}
	h.items = h.items[:0]
}

func (h *Heap) grow(id int) {
	for id >= len(h.slot) {
		h.slot = append(h.slot, -1)
	}
}

func (h *Heap) removeAt(i int) {
	last := len(h.items) - 1
	h.slot[h.items[i].id] = -1
	if i != last {
		h.items[i] = h.items[last]
		h.slot[h.items[i].id] = i
	}
	h.items = h.items[:last]
	if i < len(h.items) {
		h.down(i)
		h.up(i)
	}
}

func (h *Heap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.slot[h.items[i].id] = i
	h.slot[h.items[j].id] = j
}

func (h *Heap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap) down(i int) {
	n := len(h.items)
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < n && less(h.items[l], h.items[smallest]) {
			smallest = l
		}
		if r < n && less(h.items[r], h.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

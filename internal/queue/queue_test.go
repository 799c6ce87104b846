package queue

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

var kinds = []Kind{KindHeap, KindTree}

func drain(s Scheduler) []int {
	var out []int
	for {
		id, ok := s.ExtractMin()
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSchedulerOrdering(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 8)
			s.Insert(0, 3)
			s.Insert(1, 1)
			s.Insert(2, 2)
			s.Insert(3, 1)
			s.Insert(4, math.Inf(1))
			s.Insert(5, 0)

			if s.Len() != 6 {
				t.Fatalf("Len() = %d, want 6", s.Len())
			}
			got := drain(s)
			want := []int{5, 1, 3, 2, 0, 4}
			if !equalInts(got, want) {
				t.Errorf("extraction order = %v, want %v", got, want)
			}
			if s.Len() != 0 {
				t.Errorf("Len() after drain = %d, want 0", s.Len())
			}
		})
	}
}

func TestSchedulerTieBreakByID(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 10)
			for _, id := range []int{7, 3, 9, 1, 5} {
				s.Insert(id, 0)
			}
			got := drain(s)
			want := []int{1, 3, 5, 7, 9}
			if !equalInts(got, want) {
				t.Errorf("extraction order = %v, want %v", got, want)
			}
		})
	}
}

func TestSchedulerUpdate(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 4)
			s.Insert(0, 1)
			s.Insert(1, 2)
			s.Insert(2, 3)

			s.Update(2, 0.5) // decrease
			s.Update(0, 10)  // increase
			s.Update(3, 0)   // unknown id: ignored

			if s.Contains(3) {
				t.Error("Update() must not insert unknown ids")
			}
			if e, ok := s.Error(0); !ok || e != 10 {
				t.Errorf("Error(0) = %v, %v; want 10, true", e, ok)
			}
			got := drain(s)
			want := []int{2, 1, 0}
			if !equalInts(got, want) {
				t.Errorf("extraction order = %v, want %v", got, want)
			}
		})
	}
}

func TestSchedulerRemove(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 5)
			for i := range 5 {
				s.Insert(i, float64(5-i))
			}
			s.Remove(4)
			s.Remove(0)
			s.Remove(42)

			if s.Contains(4) || s.Contains(0) {
				t.Error("removed ids should not be contained")
			}
			if _, ok := s.Error(4); ok {
				t.Error("Error() of removed id should report false")
			}
			got := drain(s)
			want := []int{3, 2, 1}
			if !equalInts(got, want) {
				t.Errorf("extraction order = %v, want %v", got, want)
			}
		})
	}
}

func TestSchedulerReinsert(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 2)
			s.Insert(0, 5)
			s.Insert(0, 1)
			if s.Len() != 1 {
				t.Errorf("Len() = %d, want 1 after re-insert", s.Len())
			}
			if e, _ := s.Error(0); e != 1 {
				t.Errorf("Error(0) = %v, want 1", e)
			}
		})
	}
}

func TestSchedulerGrowsBeyondHint(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 1)
			s.Insert(100, 1)
			s.Insert(50, 2)
			got := drain(s)
			if !equalInts(got, []int{100, 50}) {
				t.Errorf("extraction order = %v, want [100 50]", got)
			}
		})
	}
}

func TestSchedulerClear(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, 3)
			s.Insert(0, 1)
			s.Insert(1, 1)
			s.Clear()
			if s.Len() != 0 || s.Contains(0) {
				t.Error("Clear() should empty the scheduler")
			}
			if _, ok := s.ExtractMin(); ok {
				t.Error("ExtractMin() on cleared scheduler should report false")
			}
			s.Insert(1, 3)
			if id, ok := s.ExtractMin(); !ok || id != 1 {
				t.Errorf("ExtractMin() = %d, %v after reuse; want 1, true", id, ok)
			}
		})
	}
}

// TestSchedulerRandomized drives both implementations with the same random
// operation stream and compares them against a sorted reference.
func TestSchedulerRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 200

	heap := NewHeap(n)
	tree := NewTree(n)
	ref := map[int]float64{}

	for step := range 5000 {
		id := rng.Intn(n)
		// Coarse errors produce plenty of ties.
		e := float64(rng.Intn(10))
		switch rng.Intn(4) {
		case 0, 1:
			heap.Insert(id, e)
			tree.Insert(id, e)
			ref[id] = e
		case 2:
			heap.Update(id, e)
			tree.Update(id, e)
			if _, ok := ref[id]; ok {
				ref[id] = e
			}
		case 3:
			heap.Remove(id)
			tree.Remove(id)
			delete(ref, id)
		}
		if heap.Len() != len(ref) || tree.Len() != len(ref) {
			t.Fatalf("step %d: Len() heap=%d tree=%d want %d", step, heap.Len(), tree.Len(), len(ref))
		}
	}

	want := make([]int, 0, len(ref))
	for id := range ref {
		want = append(want, id)
	}
	sort.Slice(want, func(i, j int) bool {
		a, b := want[i], want[j]
		if ref[a] != ref[b] {
			return ref[a] < ref[b]
		}
		return a < b
	})

	if got := drain(heap); !equalInts(got, want) {
		t.Errorf("heap order mismatch:\n got %v\nwant %v", got, want)
	}
	if got := drain(tree); !equalInts(got, want) {
		t.Errorf("tree order mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"heap", KindHeap, false},
		{"", KindHeap, false},
		{"tree", KindTree, false},
		{"fibonacci", KindHeap, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if s := Kind(9).String(); s != "Kind(9)" {
		t.Errorf("Kind(9).String() = %q", s)
	}
}

func BenchmarkHeapChurn(b *testing.B) {
	benchmarkChurn(b, KindHeap)
}

func BenchmarkTreeChurn(b *testing.B) {
	benchmarkChurn(b, KindTree)
}

func benchmarkChurn(b *testing.B, kind Kind) {
	const n = 4096
	b.ReportAllocs()
	for b.Loop() {
		s := New(kind, n)
		for i := range n {
			s.Insert(i, float64((i*7919)%n))
		}
		for i := 0; i < n; i += 2 {
			s.Update(i, float64(i))
		}
		for s.Len() > 0 {
			s.ExtractMin()
		}
	}
}

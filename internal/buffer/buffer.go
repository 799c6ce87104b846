// Package buffer provides the resizable typed arrays that back output
// coordinates and connectivity.
//
// A Buffer either owns its storage (created with New) or borrows a slice
// supplied by the caller (created with Borrow). Ownership is fixed at
// construction: a borrowed buffer never writes through to the caller's slice
// once it has to grow, it copies into storage of its own and becomes owned.
//
// Allocation failures are reported as errors, never as panics. A buffer may
// carry an element limit; requests beyond it fail with ErrAllocationFailed.
package buffer

import (
	"errors"
	"fmt"
)

// Common errors for buffer operations.
var (
	// ErrAllocationFailed is returned when a buffer cannot be sized as requested.
	ErrAllocationFailed = errors.New("buffer: allocation failed")

	// ErrReleased is returned when a released buffer is used.
	ErrReleased = errors.New("buffer: use after release")
)

// Scalar is the set of element types a Buffer can hold.
type Scalar interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// Buffer is a dynamic array of scalars with amortized O(1) append and
// explicit resize.
//
// Thread safety: Buffer is not safe for concurrent mutation.
type Buffer[T Scalar] struct {
	data     []T
	owned    bool
	released bool
	limit    int // max elements, 0 = unlimited
}

// New creates an owned buffer holding n zero elements.
// A negative n reports ErrAllocationFailed.
func New[T Scalar](n int) (*Buffer[T], error) {
	b := &Buffer[T]{owned: true}
	if err := b.Allocate(n); err != nil {
		return nil, err
	}
	return b, nil
}

// Borrow wraps data without copying. The caller keeps ownership of data and
// must keep it valid for the lifetime of the buffer.
func Borrow[T Scalar](data []T) *Buffer[T] {
	return &Buffer[T]{data: data}
}

// SetLimit caps the number of elements the buffer may hold.
// A limit of 0 removes the cap.
func (b *Buffer[T]) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	b.limit = limit
}

// Owned reports whether the buffer owns its storage.
func (b *Buffer[T]) Owned() bool {
	return b.owned
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Data returns the underlying elements. The slice is valid until the next
// call that changes the buffer's size.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Allocate discards the current contents and sizes the buffer to n zero
// elements.
func (b *Buffer[T]) Allocate(n int) error {
	if err := b.check(n); err != nil {
		return err
	}
	b.data = make([]T, n)
	b.owned = true
	return nil
}

// Reserve ensures capacity for at least n elements without changing Len.
func (b *Buffer[T]) Reserve(n int) error {
	if err := b.check(n); err != nil {
		return err
	}
	if n <= cap(b.data) && b.owned {
		return nil
	}
	b.adopt(n)
	return nil
}

// Resize changes the length to n. When preserve is true the first
// min(Len, n) elements are kept, otherwise all elements are zeroed.
func (b *Buffer[T]) Resize(n int, preserve bool) error {
	if err := b.check(n); err != nil {
		return err
	}
	if !preserve {
		return b.Allocate(n)
	}
	if n <= cap(b.data) && b.owned {
		old := len(b.data)
		b.data = b.data[:n]
		if n > old {
			clear(b.data[old:])
		}
		return nil
	}
	b.adopt(n)
	b.data = b.data[:n]
	return nil
}

// Append adds elements to the end of the buffer.
func (b *Buffer[T]) Append(v ...T) error {
	n := len(b.data) + len(v)
	if err := b.check(n); err != nil {
		return err
	}
	if !b.owned {
		b.adopt(n)
	}
	b.data = append(b.data, v...)
	return nil
}

// Release drops the storage. An owned buffer lets its memory be collected;
// a borrowed buffer simply forgets the caller's slice.
// Release is safe to call multiple times.
func (b *Buffer[T]) Release() {
	b.data = nil
	b.owned = false
	b.released = true
}

// check validates a requested element count.
func (b *Buffer[T]) check(n int) error {
	if b.released {
		return ErrReleased
	}
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrAllocationFailed, n)
	}
	if b.limit > 0 && n > b.limit {
		return fmt.Errorf("%w: %d elements exceeds limit %d", ErrAllocationFailed, n, b.limit)
	}
	return nil
}

// adopt copies the current contents into owned storage with capacity >= n.
func (b *Buffer[T]) adopt(n int) {
	capacity := max(n, len(b.data))
	if b.owned && capacity < 2*cap(b.data) {
		capacity = 2 * cap(b.data)
		if b.limit > 0 && capacity > b.limit {
			capacity = max(n, b.limit)
		}
	}
	data := make([]T, len(b.data), capacity)
	copy(data, b.data)
	b.data = data
	b.owned = true
}

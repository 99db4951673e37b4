package ntstr

import (
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/multierr"
)

// Allocator provides memory for owning buffers.
// Alloc must return zero'ed memory of exactly size bytes, aligned to at least 8 bytes.
// Alloc failures should wrap ErrNoMemory or ErrSize.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(mem []byte) error
}

// HeapAllocator allocates from the Go heap.
type HeapAllocator struct {
	// Limit is the maximum size of a single allocation in bytes; zero means unlimited.
	Limit int
}

var _ Allocator = HeapAllocator{}

// Heap is a HeapAllocator without limit.
var Heap = HeapAllocator{}

// Alloc implements Allocator.
func (h HeapAllocator) Alloc(size int) ([]byte, error) {
	switch {
	case size <= 0 || size > math.MaxInt-7:
		return nil, fmt.Errorf("%w %d", ErrSize, size)
	case h.Limit > 0 && size > h.Limit:
		return nil, fmt.Errorf("heap alloc %d bytes exceeds limit %d: %w", size, h.Limit, ErrNoMemory)
	}
	words := make([]uint64, (size+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

// Free implements Allocator.
// Heap memory is reclaimed by the garbage collector.
func (HeapAllocator) Free(mem []byte) error {
	return nil
}

// Buffer is an owning buffer holding a sequence.
// It has exactly one owner, who must Close it exactly once.
type Buffer[T Unit] struct {
	alloc Allocator
	mem   []byte
	p     []T
}

// Duplicate copies the sequence in v into a new Buffer obtained from alloc.
// On allocation failure, nothing is copied and no Buffer is returned.
func Duplicate[T Unit](alloc Allocator, v View[T]) (*Buffer[T], error) {
	n := v.Len()
	size := (n + 1) * Width[T]()
	mem, e := alloc.Alloc(size)
	if e != nil {
		return nil, fmt.Errorf("duplicate %d units: %w", n+1, e)
	}
	if len(mem) < size {
		return nil, multierr.Append(fmt.Errorf("allocator returned %d bytes, need %d: %w", len(mem), size, ErrNoMemory), alloc.Free(mem))
	}

	p := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), n+1)
	copy(p, v.p[:n])
	p[n] = 0
	return &Buffer[T]{alloc: alloc, mem: mem, p: p}, nil
}

// With duplicates v, invokes fn with the Buffer, then releases the Buffer.
// The Buffer is released on every exit path, including when fn panics.
// fn must not retain the Buffer or any view of it.
func With[T Unit](alloc Allocator, v View[T], fn func(b *Buffer[T]) error) (e error) {
	b, e := Duplicate(alloc, v)
	if e != nil {
		return e
	}
	defer func() { e = multierr.Append(e, b.Close()) }()
	return fn(b)
}

func (b *Buffer[T]) live() []T {
	if b.p == nil {
		panic(ErrReleased)
	}
	return b.p
}

// View returns a read-only View of the buffer.
func (b *Buffer[T]) View() View[T] {
	return View[T]{b.live()}
}

// Mut returns a writable view of the buffer.
func (b *Buffer[T]) Mut() MutView[T] {
	return MutView[T]{b.live()}
}

// Len returns the number of code units before the terminator.
func (b *Buffer[T]) Len() int {
	return Len(b.live())
}

// Cap returns the allocated capacity in code units.
func (b *Buffer[T]) Cap() int {
	return len(b.live())
}

// Ptr returns the address of the first code unit, for passing to C code.
func (b *Buffer[T]) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b.live()))
}

// Released reports whether Close has been called.
func (b *Buffer[T]) Released() bool {
	return b.p == nil
}

// Close releases the buffer to its allocator.
// Subsequent calls return ErrReleased without touching the allocator.
func (b *Buffer[T]) Close() error {
	if b.p == nil {
		return ErrReleased
	}
	mem := b.mem
	b.p, b.mem = nil, nil
	return b.alloc.Free(mem)
}

package cptr

/*
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"math"
	"unsafe"

	"github.com/usnistgov/nulterm/ntstr"
)

// CAllocator allocates from the C heap with calloc and free.
// Memory it returns is not managed by the Go garbage collector and may be passed to C code.
type CAllocator struct{}

var _ ntstr.Allocator = CAllocator{}

// CHeap is the C heap allocator.
var CHeap CAllocator

// Alloc implements ntstr.Allocator.
func (CAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 || uint64(size) > math.MaxInt64/2 {
		if size > 0 {
			return nil, fmt.Errorf("calloc(%d): %w", size, ntstr.ErrNoMemory)
		}
		return nil, fmt.Errorf("%w %d", ntstr.ErrSize, size)
	}
	ptr := C.calloc(1, C.size_t(size))
	if ptr == nil {
		return nil, fmt.Errorf("calloc(%d): %w", size, ntstr.ErrNoMemory)
	}
	return unsafe.Slice((*byte)(ptr), size), nil
}

// Free implements ntstr.Allocator.
func (CAllocator) Free(mem []byte) error {
	if cap(mem) == 0 {
		return nil
	}
	C.free(unsafe.Pointer(unsafe.SliceData(mem)))
	return nil
}

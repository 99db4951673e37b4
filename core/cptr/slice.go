// Package cptr handles C pointers and C memory.
package cptr

import (
	"unsafe"

	_ "github.com/ianlancetaylor/cgosymbolizer"
	"github.com/usnistgov/nulterm/ntstr"
)

// AsByteSlice converts []C.uint8_t or []C.char to []byte.
func AsByteSlice[T ~uint8 | ~int8, A ~[]T](value A) (b []byte) {
	if len(value) == 0 {
		return nil
	}
	ptr := unsafe.SliceData([]T(value))
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(value))
}

// GetString interprets a fixed-size C char array as nil-terminated string.
// If the array has no terminator, the whole array is used.
func GetString[T ~uint8 | ~int8, A ~[]T](value A) string {
	b := AsByteSlice(value)
	if n := ntstr.Find(b); n >= 0 {
		b = b[:n]
	}
	return string(b)
}

// maxCString bounds the Go slice header used to scan C strings; the scan itself stops at the terminator.
const maxCString = 1 << 30

// CStringView creates a View over a nil-terminated C string.
// ptr must point to a terminated string that outlives the View.
func CStringView(ptr unsafe.Pointer) ntstr.View[ntstr.Char] {
	if ptr == nil {
		return ntstr.View[ntstr.Char]{}
	}
	return ntstr.Borrow(unsafe.Slice((*ntstr.Char)(ptr), maxCString))
}

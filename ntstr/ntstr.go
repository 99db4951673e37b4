// Package ntstr handles null-terminated sequences of fixed-width code units.
//
// A sequence is a run of code units followed by exactly one zero unit, the terminator.
// The same algorithms serve narrow (8-bit) and wide (16-bit, 32-bit) units.
//
// Views never carry a length: Len rescans to the terminator every time.
// Scanning an unterminated sequence is a precondition violation.
// Release builds let the Go bounds check stop the scan at the end of the backing slice;
// builds with the ntstrdebug tag assert termination up front and panic with ErrUnterminated.
package ntstr

import (
	"errors"
	"slices"
	"unsafe"
)

// Unit is a code unit type.
type Unit interface {
	~uint8 | ~uint16 | ~uint32
}

// Code unit types.
type (
	Char   = uint8  // narrow
	Char16 = uint16 // UTF-16
	WChar  = uint32 // wchar_t on Linux
)

// Error conditions.
var (
	ErrUnterminated   = errors.New("sequence is not terminated")
	ErrPastTerminator = errors.New("index past terminator")
	ErrEmbeddedZero   = errors.New("embedded zero code unit")
	ErrNoMemory       = errors.New("out of memory")
	ErrSize           = errors.New("invalid allocation size")
	ErrReleased       = errors.New("buffer already released")
)

// Width returns the size of one code unit in bytes.
func Width[T Unit]() int {
	var u T
	return int(unsafe.Sizeof(u))
}

// Len returns the number of code units before the first zero unit in s.
func Len[T Unit](s []T) (n int) {
	assertTerminated(s)
	for s[n] != 0 {
		n++
	}
	return n
}

// Find returns the index of the first zero unit within s, or -1 if s is unterminated.
// Unlike Len, it never reads past the end of s.
func Find[T Unit](s []T) int {
	return slices.Index(s, 0)
}

package ntstr

import (
	"unsafe"
)

// View is a read-only borrowed view of a sequence.
// The storage must outlive the view.
// The zero View is invalid; use Valid to check.
type View[T Unit] struct {
	p []T
}

// Borrow creates a View over s, which must contain a terminator.
func Borrow[T Unit](s []T) View[T] {
	assertTerminated(s)
	return View[T]{s}
}

// Valid reports whether v refers to storage.
func (v View[T]) Valid() bool {
	return len(v.p) > 0
}

// Len returns the number of code units before the terminator.
func (v View[T]) Len() int {
	return Len(v.p)
}

// Size returns the storage size in code units, including the terminator.
func (v View[T]) Size() int {
	return v.Len() + 1
}

// At returns the code unit at index i.
// i may refer to the terminator itself, but not beyond it.
func (v View[T]) At(i int) T {
	for j := 0; j < i; j++ {
		if v.p[j] == 0 {
			panic(ErrPastTerminator)
		}
	}
	return v.p[i]
}

// Append appends the code units, excluding the terminator, to dst.
func (v View[T]) Append(dst []T) []T {
	return append(dst, v.p[:v.Len()]...)
}

// Ptr returns the address of the first code unit, for passing to C code as a const pointer.
func (v View[T]) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(v.p))
}

// SameStorage reports whether v and o start at the same code unit.
func (v View[T]) SameStorage(o View[T]) bool {
	return v.Valid() && o.Valid() && unsafe.SliceData(v.p) == unsafe.SliceData(o.p)
}

// Equal determines whether two sequences contain the same code units.
func Equal[T Unit](a, b View[T]) bool {
	return Compare(a, b) == 0
}

// Compare compares two sequences unit by unit, as unsigned values.
// The result is 0 if a==b, negative if a<b, positive if a>b.
// A sequence that is a prefix of the other compares less.
func Compare[T Unit](a, b View[T]) int {
	for i := 0; ; i++ {
		ua, ub := a.p[i], b.p[i]
		switch {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		case ua == 0:
			return 0
		}
	}
}

// MutView is a borrowed view of writable storage.
type MutView[T Unit] struct {
	p []T
}

// BorrowMut creates a MutView over s, which must contain a terminator.
// The caller must own s or hold it on behalf of its owner.
func BorrowMut[T Unit](s []T) MutView[T] {
	assertTerminated(s)
	return MutView[T]{s}
}

// View returns a read-only View of the same storage.
func (m MutView[T]) View() View[T] {
	return View[T](m)
}

// Len returns the number of code units before the terminator.
func (m MutView[T]) Len() int {
	return Len(m.p)
}

// Set assigns code unit u at index i, which must be before the terminator.
// Writing zero truncates the sequence at i.
func (m MutView[T]) Set(i int, u T) {
	if i < 0 || i >= m.Len() {
		panic(ErrPastTerminator)
	}
	m.p[i] = u
}

// UnsafeMutable converts a View to a MutView.
// Any caller of this function is a defect: writing through the result into
// read-only literal storage faults at the point of write.
func UnsafeMutable[T Unit](v View[T]) MutView[T] {
	return MutView[T](v)
}

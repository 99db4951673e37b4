package ntstr_test

import (
	"testing"

	"github.com/usnistgov/nulterm/core/testenv"
	"github.com/usnistgov/nulterm/ntstr"
)

func testLen[T ntstr.Unit](t *testing.T) {
	assert, _ := makeAR(t)

	assert.Equal(0, ntstr.Len([]T{0}))
	assert.Equal(0, ntstr.Len([]T{0, 'x', 0}))
	assert.Equal(3, ntstr.Len([]T{'a', 'b', 'c', 0}))
	assert.Equal(2, ntstr.Len([]T{'a', 'b', 0, 'c', 0}))

	for _, n := range []int{1, 7, 64, 1000} {
		s := append(testenv.RandUnits[T](n), 0)
		assert.Equal(n, ntstr.Len(s))
	}

	assert.Equal(0, ntstr.Find([]T{0}))
	assert.Equal(2, ntstr.Find([]T{'a', 'b', 0, 'c', 0}))
	assert.Equal(-1, ntstr.Find([]T{'a', 'b'}))
	assert.Equal(-1, ntstr.Find([]T{}))

	assert.Panics(func() { ntstr.Len([]T{'a', 'b'}) })
	assert.Panics(func() { ntstr.Len([]T{}) })
}

func TestLen(t *testing.T) {
	t.Run("narrow", testLen[ntstr.Char])
	t.Run("char16", testLen[ntstr.Char16])
	t.Run("wide", testLen[ntstr.WChar])
}

func TestWidth(t *testing.T) {
	assert, _ := makeAR(t)

	assert.Equal(1, ntstr.Width[ntstr.Char]())
	assert.Equal(2, ntstr.Width[ntstr.Char16]())
	assert.Equal(4, ntstr.Width[ntstr.WChar]())
}

func TestUnterminatedDebug(t *testing.T) {
	if !ntstr.DebugAssertions {
		t.Skip("requires -tags ntstrdebug")
	}
	assert, _ := makeAR(t)

	assert.PanicsWithValue(ntstr.ErrUnterminated, func() { ntstr.Len([]ntstr.Char{'a', 'b'}) })
	assert.PanicsWithValue(ntstr.ErrUnterminated, func() { ntstr.Borrow([]ntstr.WChar{'a'}) })
}

package cptrtest

import (
	"testing"

	"github.com/usnistgov/nulterm/core/cptr"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/arena"
)

func TestCArgs(t *testing.T) {
	assert, require := makeAR(t)

	args := []string{"a", "", "bc", "d"}
	a, e := cptr.NewCArgs(args)
	require.NoError(e)

	for i, arg := range args {
		v := a.View(i)
		assert.Equal(len(arg), v.Len())
		assert.Equal(len(arg), cStrlen(v.Ptr()))
	}

	res := verifyCArgs(a)
	assert.Equal(0, res)
	assert.False(a.View(0).Valid())

	rem := a.RemainingArgs(1)
	assert.Equal([]string{"", "d", "bc"}, rem)

	assert.NoError(a.Close())
	assert.ErrorIs(a.Close(), ntstr.ErrReleased)
}

func TestCArgsErrors(t *testing.T) {
	assert, _ := makeAR(t)

	a, e := cptr.NewCArgs([]string{"ok", "bad\x00arg"})
	assert.Nil(a)
	assert.ErrorIs(e, ntstr.ErrEmbeddedZero)

	ar := arena.New(arena.Config{Capacity: 64})
	a, e = cptr.NewCArgsFrom(ar, []string{"0123456789", "0123456789", "0123456789"})
	assert.Nil(a)
	assert.ErrorIs(e, ntstr.ErrNoMemory)
	assert.Equal(0, ar.Stats().LiveBlocks)
	assert.NoError(ar.Close())
}

func TestCArgsArena(t *testing.T) {
	assert, require := makeAR(t)

	ar := arena.New(arena.Config{})
	a, e := cptr.NewCArgsFrom(ar, []string{"x", "yz"})
	require.NoError(e)
	assert.Equal(3, ar.Stats().LiveBlocks)
	assert.Equal([]string{"x", "yz"}, a.RemainingArgs(0))
	assert.NoError(a.Close())
	assert.NoError(ar.Close())
}

package subtract_test

import (
	"testing"

	"github.com/usnistgov/nulterm/core/subtract"
	"github.com/usnistgov/nulterm/core/testenv"
	"github.com/usnistgov/nulterm/ntstr/arena"
)

var makeAR = testenv.MakeAR

type withSubMethod struct {
	I    int
	nSub *int
}

func (curr withSubMethod) Sub(withSubMethod) withSubMethod {
	*curr.nSub++
	return withSubMethod{I: -1}
}

type withOddSubMethod struct {
	I int
}

func (withOddSubMethod) Sub(withOddSubMethod) int {
	panic("must not be invoked")
}

func TestSubMethod(t *testing.T) {
	assert, _ := makeAR(t)

	nCurr, nPrev := 0, 0
	diff := subtract.Sub(withSubMethod{I: 5, nSub: &nCurr}, withSubMethod{I: 3, nSub: &nPrev})
	assert.Equal(-1, diff.I)
	assert.Equal(1, nCurr)
	assert.Equal(0, nPrev)

	odd := subtract.Sub(withOddSubMethod{I: 5}, withOddSubMethod{I: 3})
	assert.Equal(2, odd.I)
}

type counters struct {
	Name  string
	I     int64
	U     uint64
	A     [2]int32
	S     []uint32
	P     *counters
	Limit int `subtract:"-"`
}

func TestStruct(t *testing.T) {
	assert, _ := makeAR(t)

	curr := counters{Name: "c", I: -5, U: 5, A: [2]int32{50, -500}, S: []uint32{5000}, P: &counters{U: 500000}, Limit: 7}
	prev := counters{Name: "p", I: -3, U: 3, A: [2]int32{30, -300}, S: []uint32{3000, 30000}, P: &counters{U: 300000}, Limit: 9}
	diff := subtract.Sub(curr, prev)
	assert.Equal("c", diff.Name)
	assert.EqualValues(-2, diff.I)
	assert.EqualValues(2, diff.U)
	assert.Equal([2]int32{20, -200}, diff.A)
	assert.Equal([]uint32{2000}, diff.S)
	if assert.NotNil(diff.P) {
		assert.EqualValues(200000, diff.P.U)
	}
	assert.Equal(7, diff.Limit)
	assert.EqualValues(5, curr.U)

	negative := subtract.Sub(counters{}, curr)
	assert.EqualValues(5, negative.I)
	assert.EqualValues(-5, negative.U)
	assert.Len(negative.S, 0)
	assert.Nil(negative.P)
}

func TestArenaStats(t *testing.T) {
	assert, require := makeAR(t)

	a := arena.New(arena.Config{Capacity: 1024})
	before := a.Stats()
	mem, e := a.Alloc(10)
	require.NoError(e)

	d := subtract.Sub(a.Stats(), before)
	assert.Equal(1024, d.Capacity)
	assert.Equal(16, d.InUse)
	assert.Equal(1, d.LiveBlocks)
	assert.EqualValues(1, d.Allocs)
	assert.EqualValues(0, d.Frees)

	require.NoError(a.Free(mem))
	require.NoError(a.Close())
}

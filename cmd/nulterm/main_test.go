package main

import (
	"bytes"
	"testing"

	"github.com/usnistgov/nulterm/core/testenv"
	"github.com/usnistgov/nulterm/ntstr"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var makeAR = testenv.MakeAR

func run(t testing.TB, args ...string) (*bytes.Buffer, error) {
	var out bytes.Buffer
	app.Writer = &out
	t.Cleanup(func() { app.Writer = nil })
	return &out, app.Run(append([]string{"nulterm"}, args...))
}

func decodeLines[T any](out *bytes.Buffer) (res []T) {
	testenv.FromJSONLines(out.String(), &res)
	return res
}

func TestLen(t *testing.T) {
	assert, require := makeAR(t)

	out, e := run(t, "len", "--width", "16", "abc", "", "\U0001F600")
	require.NoError(e)
	res := decodeLines[lenResult](out)
	require.Len(res, 3)
	assert.Equal(lenResult{Input: "abc", Width: 16, Length: 3, Size: 4, Bytes: 8}, res[0])
	assert.Equal(0, res[1].Length)
	assert.Equal(1, res[1].Size)
	assert.Equal(2, res[2].Length)

	out, e = run(t, "len", "--width", "32", "--literal", "\U0001F600")
	require.NoError(e)
	res = decodeLines[lenResult](out)
	require.Len(res, 1)
	assert.Equal(lenResult{Input: "\U0001F600", Width: 32, Length: 1, Size: 2, Bytes: 8, Literal: true}, res[0])

	_, e = run(t, "len", "--width", "12", "abc")
	assert.Error(e)

	_, e = run(t, "len", "a\x00b")
	assert.ErrorIs(e, ntstr.ErrEmbeddedZero)
}

func TestDup(t *testing.T) {
	assert, require := makeAR(t)

	out, e := run(t, "--config", "arena: {capacity: 256}", "dup", "--literal", "hello")
	require.NoError(e)
	res := decodeLines[dupResult](out)
	require.Len(res, 1)
	assert.Equal([]uint32{'h', 'e', 'l', 'l', 'o'}, res[0].Units)
	assert.Equal(5, res[0].Length)
	assert.Equal(6, res[0].Cap)
	assert.True(res[0].Equal)
	assert.Equal(256, res[0].Held.Capacity)
	assert.Equal(1, res[0].Held.LiveBlocks)
	assert.Equal(256, res[0].Delta.Capacity)
	assert.Equal(8, res[0].Delta.InUse)
	assert.EqualValues(1, res[0].Delta.Allocs)
	assert.Equal(0, res[0].Released.LiveBlocks)
	assert.Equal(0, res[0].Released.InUse)
	assert.EqualValues(1, res[0].Released.Frees)

	_, e = run(t, "--config", "arena: {capacity: 64}", "dup", "--width", "32", "0123456789abcdef")
	assert.ErrorIs(e, ntstr.ErrNoMemory)

	_, e = run(t, "dup", "a", "b")
	assert.Error(e)
}

func TestDump(t *testing.T) {
	assert, require := makeAR(t)

	out, e := run(t, "dump", "--width", "16", "--order", "be", "AB")
	require.NoError(e)
	res := decodeLines[dumpResult](out)
	require.Len(res, 1)
	assert.Equal("be", res[0].Order)
	assert.Equal([]uint32{'A', 'B'}, res[0].Units)
	assert.Equal("004100420000", res[0].Hex)

	out, e = run(t, "dump", "--width", "32", "A")
	require.NoError(e)
	res = decodeLines[dumpResult](out)
	require.Len(res, 1)
	assert.Equal("4100000000000000", res[0].Hex)

	out, e = run(t, "dump", "")
	require.NoError(e)
	res = decodeLines[dumpResult](out)
	require.Len(res, 1)
	assert.Equal("", res[0].Order)
	assert.Equal([]uint32{}, res[0].Units)
	assert.Equal("00", res[0].Hex)

	_, e = run(t, "dump", "--order", "middle", "A")
	assert.Error(e)
}

func TestArgv(t *testing.T) {
	assert, require := makeAR(t)

	out, e := run(t, "argv", `prog -a 'two words'`, `""`)
	require.NoError(e)
	res := decodeLines[argvEntry](out)
	require.Len(res, 4)
	assert.Equal(argvEntry{Index: 0, Value: "prog", Length: 4}, res[0])
	assert.Equal(argvEntry{Index: 1, Value: "-a", Length: 2}, res[1])
	assert.Equal(argvEntry{Index: 2, Value: "two words", Length: 9}, res[2])
	assert.Equal(argvEntry{Index: 3, Value: "", Length: 0}, res[3])

	_, e = run(t, "argv", `unbalanced 'quote`)
	assert.Error(e)
}

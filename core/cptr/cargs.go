package cptr

import (
	"unsafe"

	"github.com/usnistgov/nulterm/core/logging"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/codec"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var logger = logging.New("cptr")

const sizeofPtr = int(unsafe.Sizeof(unsafe.Pointer(nil)))

// CArgs rearranges args so that they can be provided to C code.
// Each argument is duplicated into C memory; argv is terminated by a NULL pointer.
type CArgs struct {
	Argc int            // argc for C code (cast to C.int)
	Argv unsafe.Pointer // argv for C code (cast to **C.char)

	alloc ntstr.Allocator
	argv  []byte
	strs  []*ntstr.Buffer[ntstr.Char]
}

// NewCArgs constructs CArgs in C memory.
func NewCArgs(args []string) (a *CArgs, e error) {
	return NewCArgsFrom(CHeap, args)
}

// NewCArgsFrom constructs CArgs with memory from alloc.
// Arguments must not contain a zero byte.
func NewCArgsFrom(alloc ntstr.Allocator, args []string) (a *CArgs, e error) {
	a = &CArgs{
		Argc:  len(args),
		alloc: alloc,
	}
	if a.argv, e = alloc.Alloc((len(args) + 1) * sizeofPtr); e != nil {
		return nil, e
	}
	a.Argv = unsafe.Pointer(unsafe.SliceData(a.argv))
	argv := a.vector()

	for i, arg := range args {
		v, e := codec.Borrow[ntstr.Char](arg)
		if e == nil {
			var b *ntstr.Buffer[ntstr.Char]
			if b, e = ntstr.Duplicate(alloc, v); e == nil {
				a.strs = append(a.strs, b)
				argv[i] = b.Ptr()
				continue
			}
		}
		logger.Debug("NewCArgs error", zap.Int("index", i), zap.Error(e))
		return nil, multierr.Append(e, a.Close())
	}
	argv[len(args)] = nil
	return a, nil
}

func (a *CArgs) vector() []unsafe.Pointer {
	return unsafe.Slice((*unsafe.Pointer)(a.Argv), a.Argc+1)
}

// View returns a View of argv[i] as C code currently sees it.
func (a *CArgs) View(i int) ntstr.View[ntstr.Char] {
	return CStringView(a.vector()[i])
}

// RemainingArgs returns arguments from argv[skip:argc] after C code has rearranged them.
// NULL entries are omitted.
func (a *CArgs) RemainingArgs(skip int) (rem []string) {
	rem = []string{}
	for i := skip; i < a.Argc; i++ {
		v := a.View(i)
		if !v.Valid() {
			continue
		}
		s, _ := codec.Decode(v)
		rem = append(rem, s)
	}
	return rem
}

// Close releases C memory in CArgs.
// Every argument string and the argv array are released exactly once, regardless of
// how C code rearranged argv.
func (a *CArgs) Close() (e error) {
	if a.argv == nil {
		return ntstr.ErrReleased
	}
	for _, b := range a.strs {
		e = multierr.Append(e, b.Close())
	}
	e = multierr.Append(e, a.alloc.Free(a.argv))
	a.strs, a.argv, a.Argv = nil, nil, nil
	return e
}

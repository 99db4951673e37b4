// Package arena provides a bounded region allocator for owning buffers.
//
// An Arena owns one contiguous region. Every live block is a handle in the arena's table:
// freeing a block retires its handle, and closing the arena retires every handle still live,
// reporting each one as a leak.
package arena

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unsafe"

	binutils "github.com/jfoster/binary-utilities"
	"github.com/pkg/math"
	"github.com/usnistgov/nulterm/core/logging"
	"github.com/usnistgov/nulterm/ntstr"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var logger = logging.New("arena")

// Limits and defaults.
const (
	MinCapacity     = 64
	MaxCapacity     = 1 << 30
	DefaultCapacity = 1 << 16

	blockAlign = 8
)

// Error conditions.
var (
	ErrClosed       = errors.New("arena closed")
	ErrForeignBlock = errors.New("not the start of a block allocated from this arena")
	ErrLeaked       = errors.New("block leaked")
)

// AlignCapacity adjusts arena capacity to a power of two between MinCapacity and MaxCapacity.
// DefaultCapacity is used if input is zero.
func AlignCapacity(capacity int) int {
	if capacity <= 0 {
		return DefaultCapacity
	}
	capacity = int(binutils.NextPowerOfTwo(int64(capacity)))
	return math.MinInt(math.MaxInt(MinCapacity, capacity), MaxCapacity)
}

// Config contains Arena configuration.
type Config struct {
	// Capacity is the region size in bytes, adjusted by AlignCapacity.
	Capacity int `json:"capacity,omitempty"`
}

// Stats contains Arena counters.
type Stats struct {
	Capacity   int    `json:"capacity" subtract:"-"`
	InUse      int    `json:"inUse"`
	LiveBlocks int    `json:"liveBlocks"`
	Allocs     uint64 `json:"allocs"`
	Frees      uint64 `json:"frees"`
	Failures   uint64 `json:"failures"`
}

type span struct {
	off  int
	size int
}

// Arena is a bounded first-fit allocator over one region.
// It is safe for concurrent use.
type Arena struct {
	mu     sync.Mutex
	region []byte
	free   []span // sorted by offset, never adjacent
	live   map[int]int
	stats  Stats
	closed bool
}

var _ ntstr.Allocator = (*Arena)(nil)

// New creates an Arena.
func New(cfg Config) *Arena {
	capacity := AlignCapacity(cfg.Capacity)
	words := make([]uint64, capacity/8)
	a := &Arena{
		region: unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), capacity),
		free:   []span{{0, capacity}},
		live:   map[int]int{},
	}
	a.stats.Capacity = capacity
	logger.Debug("arena created", zap.Int("capacity", capacity))
	return a
}

// Alloc implements ntstr.Allocator.
func (a *Arena) Alloc(size int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, ErrClosed
	}
	if size <= 0 || size > len(a.region) {
		if size > 0 {
			a.stats.Failures++
			return nil, fmt.Errorf("arena alloc %d bytes exceeds capacity %d: %w", size, len(a.region), ntstr.ErrNoMemory)
		}
		return nil, fmt.Errorf("%w %d", ntstr.ErrSize, size)
	}

	need := (size + blockAlign - 1) &^ (blockAlign - 1)
	for i, sp := range a.free {
		if sp.size < need {
			continue
		}
		if sp.size == need {
			a.free = append(a.free[:i], a.free[i+1:]...)
		} else {
			a.free[i] = span{sp.off + need, sp.size - need}
		}
		a.live[sp.off] = need
		a.stats.InUse += need
		a.stats.Allocs++

		mem := a.region[sp.off : sp.off+size : sp.off+size]
		clear(mem)
		return mem, nil
	}

	a.stats.Failures++
	logger.Debug("arena exhausted",
		zap.Int("size", size),
		zap.Int("in-use", a.stats.InUse),
		zap.Int("free-spans", len(a.free)),
	)
	return nil, fmt.Errorf("arena alloc %d bytes (%d of %d in use): %w", size, a.stats.InUse, len(a.region), ntstr.ErrNoMemory)
}

func (a *Arena) offsetOf(mem []byte) (off int, ok bool) {
	if cap(mem) == 0 || len(a.region) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.region)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	if ptr < base || ptr >= base+uintptr(len(a.region)) {
		return 0, false
	}
	return int(ptr - base), true
}

// Free implements ntstr.Allocator.
func (a *Arena) Free(mem []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	off, ok := a.offsetOf(mem)
	if !ok {
		return ErrForeignBlock
	}
	size, ok := a.live[off]
	if !ok {
		if start, inside := a.liveBlockAt(off); inside {
			return fmt.Errorf("offset %d is inside block at offset %d: %w", off, start, ErrForeignBlock)
		}
		return fmt.Errorf("block at offset %d: %w", off, ntstr.ErrReleased)
	}
	delete(a.live, off)
	a.stats.InUse -= size
	a.stats.Frees++
	a.insertFree(span{off, size})
	return nil
}

// liveBlockAt finds the live block that contains offset off.
func (a *Arena) liveBlockAt(off int) (start int, ok bool) {
	for start, size := range a.live {
		if off > start && off < start+size {
			return start, true
		}
	}
	return 0, false
}

func (a *Arena) insertFree(sp span) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].off > sp.off })
	a.free = append(a.free, span{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = sp

	if i+1 < len(a.free) && sp.off+sp.size == a.free[i+1].off {
		a.free[i].size += a.free[i+1].size
		a.free = append(a.free[:i+1], a.free[i+2:]...)
	}
	if i > 0 && a.free[i-1].off+a.free[i-1].size == a.free[i].off {
		a.free[i-1].size += a.free[i].size
		a.free = append(a.free[:i], a.free[i+1:]...)
	}
}

// Stats returns a snapshot of counters.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.stats
	s.LiveBlocks = len(a.live)
	return s
}

// Close retires all live blocks and releases the region.
// Each block still live is reported as an error wrapping ErrLeaked.
func (a *Arena) Close() (e error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	a.closed = true

	offs := make([]int, 0, len(a.live))
	for off := range a.live {
		offs = append(offs, off)
	}
	sort.Ints(offs)
	for _, off := range offs {
		e = multierr.Append(e, fmt.Errorf("offset %d size %d: %w", off, a.live[off], ErrLeaked))
	}
	if len(offs) > 0 {
		logger.Warn("arena closed with live blocks", zap.Int("n", len(offs)), zap.Int("in-use", a.stats.InUse))
	}

	a.live, a.free, a.region = nil, nil, nil
	return e
}

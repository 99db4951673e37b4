// Package rodata provides read-only storage for literal sequences.
//
// Literals are placed in anonymous memory mappings that stay PROT_READ except while the
// pool itself writes a new literal. Writing into a literal through ntstr.UnsafeMutable
// faults at the point of write.
package rodata

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	lru "github.com/hashicorp/golang-lru"
	"github.com/usnistgov/nulterm/core/logging"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/codec"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

var logger = logging.New("rodata")

// Defaults.
const (
	DefaultChunkPages = 4
	DefaultIndexSize  = 1024
)

// ErrClosed indicates the Pool has been closed.
var ErrClosed = errors.New("literal pool closed")

// Config contains Pool configuration.
type Config struct {
	// ChunkSize is the size of each mapping in bytes, rounded up to a multiple of page size.
	// Literals larger than ChunkSize get a dedicated mapping.
	ChunkSize int `json:"chunkSize,omitempty"`

	// IndexSize is the capacity of the dedup index.
	// Literals evicted from the index remain valid; interning them again places a new copy.
	IndexSize int `json:"indexSize,omitempty"`
}

func (cfg *Config) applyDefaults() {
	page := unix.Getpagesize()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkPages * page
	}
	cfg.ChunkSize = roundUp(cfg.ChunkSize, page)
	if cfg.IndexSize <= 0 {
		cfg.IndexSize = DefaultIndexSize
	}
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}

// indexKey identifies a literal by unit type and content.
// Named unit types of equal width are distinct.
type indexKey struct {
	typ reflect.Type
	s   string
}

// Pool holds literal sequences in read-only memory.
// It is safe for concurrent use.
type Pool struct {
	cfg    Config
	mu     sync.Mutex
	chunks [][]byte
	used   int // bytes used in last chunk
	index  *lru.Cache
	closed bool
}

// New creates a Pool.
func New(cfg Config) (*Pool, error) {
	cfg.applyDefaults()
	index, e := lru.New(cfg.IndexSize)
	if e != nil {
		return nil, e
	}
	return &Pool{
		cfg:   cfg,
		index: index,
	}, nil
}

// place copies src into read-only memory aligned to align bytes.
// Caller must hold p.mu.
func (p *Pool) place(src []byte, align int) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}

	off := roundUp(p.used, align)
	if len(p.chunks) == 0 || off+len(src) > len(p.chunks[len(p.chunks)-1]) {
		size := p.cfg.ChunkSize
		if len(src) > size {
			size = roundUp(len(src), unix.Getpagesize())
		}
		chunk, e := unix.Mmap(-1, 0, size, unix.PROT_READ, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if e != nil {
			return nil, fmt.Errorf("mmap %d bytes: %w", size, e)
		}
		p.chunks = append(p.chunks, chunk)
		off = 0
		logger.Debug("chunk mapped", zap.Int("size", size), zap.Int("chunks", len(p.chunks)))
	}

	chunk := p.chunks[len(p.chunks)-1]
	if e := unix.Mprotect(chunk, unix.PROT_READ|unix.PROT_WRITE); e != nil {
		return nil, fmt.Errorf("mprotect RW: %w", e)
	}
	copy(chunk[off:], src)
	if e := unix.Mprotect(chunk, unix.PROT_READ); e != nil {
		logger.Error("mprotect RO failed", zap.Error(e))
		return nil, fmt.Errorf("mprotect RO: %w", e)
	}

	p.used = off + len(src)
	return chunk[off : off+len(src) : off+len(src)], nil
}

// Intern places a literal in read-only memory and returns a View of it.
// Identical literals of the same unit type share storage while the dedup index remembers them.
func Intern[T ntstr.Unit](p *Pool, s string) (ntstr.View[T], error) {
	w := ntstr.Width[T]()
	key := indexKey{reflect.TypeOf((*T)(nil)).Elem(), s}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ntstr.View[T]{}, ErrClosed
	}
	if v, ok := p.index.Get(key); ok {
		return v.(ntstr.View[T]), nil
	}

	units, e := codec.Encode[T](s)
	if e != nil {
		return ntstr.View[T]{}, e
	}
	mem, e := p.place(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(units))), len(units)*w), w)
	if e != nil {
		return ntstr.View[T]{}, e
	}

	v := ntstr.Borrow(unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), len(units)))
	p.index.Add(key, v)
	return v, nil
}

// Narrow interns a narrow literal.
func Narrow(p *Pool, s string) (ntstr.View[ntstr.Char], error) {
	return Intern[ntstr.Char](p, s)
}

// UTF16 interns a UTF-16 literal.
func UTF16(p *Pool, s string) (ntstr.View[ntstr.Char16], error) {
	return Intern[ntstr.Char16](p, s)
}

// Wide interns a wide literal.
func Wide(p *Pool, s string) (ntstr.View[ntstr.WChar], error) {
	return Intern[ntstr.WChar](p, s)
}

// Contains reports whether v refers to storage in this pool.
func Contains[T ntstr.Unit](p *Pool, v ntstr.View[T]) bool {
	if !v.Valid() {
		return false
	}
	ptr := uintptr(v.Ptr())

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, chunk := range p.chunks {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(chunk)))
		if ptr >= base && ptr < base+uintptr(len(chunk)) {
			return true
		}
	}
	return false
}

// Size returns total mapped bytes.
func (p *Pool) Size() (n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, chunk := range p.chunks {
		n += len(chunk)
	}
	return n
}

// Close unmaps all chunks.
// Views obtained from the pool must not be used afterwards.
func (p *Pool) Close() (e error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	p.index.Purge()
	for _, chunk := range p.chunks {
		e = multierr.Append(e, unix.Munmap(chunk))
	}
	p.chunks = nil
	return e
}

// Package codec converts between Go strings and null-terminated code unit sequences.
//
// Narrow units carry UTF-8 bytes unchanged, 16-bit units carry UTF-16, 32-bit units carry UTF-32.
package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/usnistgov/nulterm/ntstr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Order selects byte order of serialized wide code units.
type Order int

// Byte orders.
const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseOrder parses "le" or "be".
func ParseOrder(s string) (o Order, e error) {
	switch strings.ToLower(s) {
	case "le", "little":
		return LittleEndian, nil
	case "be", "big":
		return BigEndian, nil
	}
	return LittleEndian, fmt.Errorf("unknown byte order %q", s)
}

var (
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32le = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

func transcoder[T ntstr.Unit]() encoding.Encoding {
	switch ntstr.Width[T]() {
	case 2:
		return utf16le
	case 4:
		return utf32le
	}
	return nil
}

// Encode converts s to code units, with a terminator appended.
// Invalid UTF-8 in s becomes U+FFFD in wide units.
func Encode[T ntstr.Unit](s string) ([]T, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("%q: %w", s, ntstr.ErrEmbeddedZero)
	}

	enc := transcoder[T]()
	if enc == nil {
		units := make([]T, len(s)+1)
		for i := 0; i < len(s); i++ {
			units[i] = T(s[i])
		}
		return units, nil
	}

	b, e := enc.NewEncoder().Bytes([]byte(s))
	if e != nil {
		return nil, e
	}
	return unpack[T](b, LittleEndian), nil
}

// MustEncode is like Encode but panics on error.
func MustEncode[T ntstr.Unit](s string) []T {
	units, e := Encode[T](s)
	if e != nil {
		panic(e)
	}
	return units
}

// Borrow encodes s and returns a View over the result.
func Borrow[T ntstr.Unit](s string) (ntstr.View[T], error) {
	units, e := Encode[T](s)
	if e != nil {
		return ntstr.View[T]{}, e
	}
	return ntstr.Borrow(units), nil
}

// Decode converts the sequence in v to a Go string.
// Unpaired surrogates and invalid code points become U+FFFD.
func Decode[T ntstr.Unit](v ntstr.View[T]) (string, error) {
	units := v.Append(nil)
	enc := transcoder[T]()
	if enc == nil {
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return string(b), nil
	}

	b, e := enc.NewDecoder().Bytes(pack(units, LittleEndian))
	if e != nil {
		return "", e
	}
	return string(b), nil
}

// Bytes serializes the sequence in v, including the terminator.
func Bytes[T ntstr.Unit](v ntstr.View[T], order Order) []byte {
	units := append(v.Append(nil), 0)
	return pack(units, order)
}

func pack[T ntstr.Unit](units []T, order Order) []byte {
	w, bo := ntstr.Width[T](), order.binary()
	b := make([]byte, len(units)*w)
	for i, u := range units {
		switch w {
		case 1:
			b[i] = byte(u)
		case 2:
			bo.PutUint16(b[i*2:], uint16(u))
		case 4:
			bo.PutUint32(b[i*4:], uint32(u))
		}
	}
	return b
}

func unpack[T ntstr.Unit](b []byte, order Order) []T {
	w, bo := ntstr.Width[T](), order.binary()
	units := make([]T, len(b)/w+1)
	for i := range units[:len(units)-1] {
		switch w {
		case 1:
			units[i] = T(b[i])
		case 2:
			units[i] = T(bo.Uint16(b[i*2:]))
		case 4:
			units[i] = T(bo.Uint32(b[i*4:]))
		}
	}
	return units
}

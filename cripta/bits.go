package cripta

import (
	"fmt"
	"strings"
)

// Bits is an ordered sequence of binary digits, one digit per element.
// Values are treated as immutable: every operation returns a new sequence.
type Bits []uint8

// ParseBits reads a string of '0' and '1'. Spaces and underscores are ignored
// so that grouped literals like "0001 1011" can be used.
func ParseBits(s string) (Bits, error) {
	out := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("parse bits: %w: unexpected %q at offset %d", ErrInvalidInput, r, i)
		}
	}
	return out, nil
}

// MustParseBits is like ParseBits but panics on malformed input. Intended for
// literals in tests and tables.
func MustParseBits(s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BitsFromBytes expands data MSB first, 8 bits per byte.
func BitsFromBytes(data []uint8) Bits {
	out := make(Bits, 0, len(data)*8)
	for _, byteVal := range data {
		for i := 7; i >= 0; i-- {
			out = append(out, (byteVal>>i)&1)
		}
	}
	return out
}

// BitsFromUint64 returns the n low-order bits of v, most significant first.
func BitsFromUint64(v uint64, n int) Bits {
	out := make(Bits, n)
	for i := 0; i < n; i++ {
		out[i] = uint8(v>>(n-1-i)) & 1
	}
	return out
}

// Validate checks that b is exactly n binary digits long.
func (b Bits) Validate(op string, n int) error {
	if len(b) != n {
		return &LengthError{Op: op, Got: len(b), Want: n, Kind: ErrInvalidInput}
	}
	return b.validateSymbols(op)
}

func (b Bits) validateSymbols(op string) error {
	for i, v := range b {
		if v > 1 {
			return &SymbolError{Op: op, Pos: i, Value: v, Kind: ErrInvalidInput}
		}
	}
	return nil
}

// Bytes packs the sequence MSB first. The length must be a multiple of 8.
func (b Bits) Bytes() ([]uint8, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("pack bytes: %w: length %d is not a multiple of 8", ErrInvalidInput, len(b))
	}
	if err := b.validateSymbols("pack bytes"); err != nil {
		return nil, err
	}
	out := make([]uint8, len(b)/8)
	for i, v := range b {
		out[i/8] |= v << (7 - i%8)
	}
	return out, nil
}

// Uint64 interprets up to 64 bits as an unsigned big-endian number.
func (b Bits) Uint64() uint64 {
	var v uint64
	for _, bit := range b {
		v = v<<1 | uint64(bit&1)
	}
	return v
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// Clone returns an independent copy.
func (b Bits) Clone() Bits {
	out := make(Bits, len(b))
	copy(out, b)
	return out
}

func (b Bits) Equal(other Bits) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Xor returns the bitwise exclusive or of two equal-length sequences.
func Xor(a, b Bits) (Bits, error) {
	if len(a) != len(b) {
		return nil, &LengthError{Op: "xor", Got: len(b), Want: len(a), Kind: ErrInvalidInput}
	}
	out := make(Bits, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// Concat joins sequences in order.
func Concat(parts ...Bits) Bits {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Bits, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Split cuts an even-length sequence into its left and right halves.
func (b Bits) Split() (Bits, Bits, error) {
	if len(b) == 0 || len(b)%2 != 0 {
		return nil, nil, fmt.Errorf("split: %w: length %d cannot be halved", ErrInvalidInput, len(b))
	}
	half := len(b) / 2
	return b[:half].Clone(), b[half:].Clone(), nil
}

// Chunks cuts b into consecutive pieces of size n. len(b) must be a multiple of n.
func (b Bits) Chunks(n int) ([]Bits, error) {
	if n <= 0 || len(b)%n != 0 {
		return nil, fmt.Errorf("chunks of %d: %w: length %d is not a multiple", n, ErrInvalidInput, len(b))
	}
	out := make([]Bits, 0, len(b)/n)
	for i := 0; i < len(b); i += n {
		out = append(out, b[i:i+n].Clone())
	}
	return out, nil
}

// RotateLeft performs a circular left shift by n positions.
func (b Bits) RotateLeft(n int) Bits {
	out := make(Bits, len(b))
	if len(b) == 0 {
		return out
	}
	n %= len(b)
	copy(out, b[n:])
	copy(out[len(b)-n:], b[:n])
	return out
}

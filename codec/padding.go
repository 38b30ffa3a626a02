package codec

import (
	"fmt"
	"strings"

	"github.com/nPaBwaYT/desblock/cripta"
)

const blockBytes = cripta.BlockBits / 8

// PKCS7 appends N bytes of value N (1 <= N <= 8). An aligned message gets a
// full extra block, so unpadding is always unambiguous.
type PKCS7 struct{}

func (PKCS7) Pad(data cripta.Bits) (cripta.Bits, error) {
	raw, err := data.Bytes()
	if err != nil {
		return nil, fmt.Errorf("pkcs7 pad: %w", err)
	}
	n := blockBytes - len(raw)%blockBytes
	padded := make([]uint8, len(raw)+n)
	copy(padded, raw)
	for i := len(raw); i < len(padded); i++ {
		padded[i] = uint8(n)
	}
	return cripta.BitsFromBytes(padded), nil
}

func (PKCS7) Unpad(data cripta.Bits) (cripta.Bits, error) {
	if len(data) == 0 || len(data)%cripta.BlockBits != 0 {
		return nil, fmt.Errorf("pkcs7 unpad: %w: %d bits is not a whole number of blocks", ErrInvalidPadding, len(data))
	}
	raw, err := data.Bytes()
	if err != nil {
		return nil, fmt.Errorf("pkcs7 unpad: %w", err)
	}

	n := int(raw[len(raw)-1])
	if n == 0 || n > blockBytes {
		return nil, fmt.Errorf("pkcs7 unpad: %w: length byte %d", ErrInvalidPadding, n)
	}
	for i := len(raw) - n; i < len(raw); i++ {
		if raw[i] != uint8(n) {
			return nil, fmt.Errorf("pkcs7 unpad: %w: byte %d is %d, want %d", ErrInvalidPadding, i, raw[i], n)
		}
	}
	return data[:len(data)-n*8].Clone(), nil
}

// ZeroBits fills with zero bits up to the next block boundary and adds nothing
// to an aligned message. Unpadding strips trailing zero bytes, so a message
// that itself ends in NUL bytes does not survive a round trip.
type ZeroBits struct{}

func (ZeroBits) Pad(data cripta.Bits) (cripta.Bits, error) {
	rem := len(data) % cripta.BlockBits
	if rem == 0 {
		return data.Clone(), nil
	}
	return cripta.Concat(data, make(cripta.Bits, cripta.BlockBits-rem)), nil
}

func (ZeroBits) Unpad(data cripta.Bits) (cripta.Bits, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("zero unpad: %w: %d bits is not a whole number of bytes", ErrInvalidPadding, len(data))
	}
	end := len(data)
	for end >= 8 && data[end-8:end].Uint64() == 0 {
		end -= 8
	}
	return data[:end].Clone(), nil
}

// PaddingByName maps a configuration value to a padding scheme.
func PaddingByName(name string) (cripta.IPadding, error) {
	switch strings.ToLower(name) {
	case "", "pkcs7":
		return PKCS7{}, nil
	case "zeros":
		return ZeroBits{}, nil
	default:
		return nil, fmt.Errorf("unsupported padding mode %q", name)
	}
}

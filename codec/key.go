package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nPaBwaYT/desblock/cripta"
)

// KeyFromText encodes key text and zero-pads it on the right to 64 bits.
// Text longer than 8 characters fails with cripta.ErrKeyTooLong.
func KeyFromText(text string) (cripta.Bits, error) {
	bits, err := TextToBits(text)
	if err != nil {
		return nil, fmt.Errorf("key text: %w", err)
	}
	if len(bits) > cripta.KeyBits {
		return nil, fmt.Errorf("%w: %d bits, at most %d allowed", cripta.ErrKeyTooLong, len(bits), cripta.KeyBits)
	}
	return cripta.Concat(bits, make(cripta.Bits, cripta.KeyBits-len(bits))), nil
}

// KeyFromHex parses exactly 16 hex digits, optionally prefixed with 0x or 0X.
func KeyFromHex(s string) (cripta.Bits, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cripta.ErrInvalidKey, err)
	}
	if len(raw)*8 != cripta.KeyBits {
		return nil, fmt.Errorf("%w: %d bits, need %d", cripta.ErrInvalidKey, len(raw)*8, cripta.KeyBits)
	}
	return cripta.BitsFromBytes(raw), nil
}

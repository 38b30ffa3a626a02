// Package codec converts between the values people type or read and the bit
// sequences the cipher core works on.
package codec

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/nPaBwaYT/desblock/cripta"
)

// TextToBits encodes every character as its 8-bit ISO-8859-1 code, MSB first.
func TextToBits(text string) (cripta.Bits, error) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w: %v", text, ErrUnencodable, err)
	}
	return cripta.BitsFromBytes([]byte(encoded)), nil
}

// BitsToText regroups bits into 8-bit codes and maps each back to its character.
func BitsToText(bits cripta.Bits) (string, error) {
	raw, err := bits.Bytes()
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(decoded), nil
}

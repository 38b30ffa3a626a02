package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nPaBwaYT/desblock/cripta"
)

// ToHex renders bits as lowercase hex, two digits per 8-bit group.
func ToHex(bits cripta.Bits) (string, error) {
	raw, err := bits.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func FromHex(s string) (cripta.Bits, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cripta.ErrInvalidInput, err)
	}
	return cripta.BitsFromBytes(raw), nil
}

package codec

import (
	"fmt"

	"github.com/nPaBwaYT/desblock/cripta"
)

// SplitBlocks cuts a padded message into 64-bit blocks.
func SplitBlocks(bits cripta.Bits) ([]cripta.Bits, error) {
	if len(bits)%cripta.BlockBits != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of blocks", cripta.ErrInvalidInput, len(bits))
	}
	return bits.Chunks(cripta.BlockBits)
}

func JoinBlocks(blocks []cripta.Bits) cripta.Bits {
	return cripta.Concat(blocks...)
}

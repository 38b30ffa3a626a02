package cripta

import (
	"fmt"
)

// FeistelNetwork runs a round function over the halves of a block. It holds
// no key material: round keys are passed in per call, so one network can be
// shared by any number of goroutines.
type FeistelNetwork struct {
	roundFunction IRoundFunction

	blockSize   int
	roundsCount int
}

func NewFeistelNetwork(
	roundFunctionImpl IRoundFunction,
	blockSize int,
	roundsCount int,
) (*FeistelNetwork, error) {

	if roundFunctionImpl == nil {
		return nil, fmt.Errorf("round function implementation cannot be nil")
	}
	if blockSize%2 != 0 {
		return nil, fmt.Errorf("block size must be even for Feistel network")
	}

	fBlockSize := blockSize
	if fBlockSize == 0 {
		fBlockSize = BlockBits
	}

	fRoundsCount := roundsCount
	if fRoundsCount == 0 {
		fRoundsCount = Rounds
	}

	return &FeistelNetwork{
		roundFunction: roundFunctionImpl,
		blockSize:     fBlockSize,
		roundsCount:   fRoundsCount,
	}, nil
}

func (fn *FeistelNetwork) BlockSize() int { return fn.blockSize }

func (fn *FeistelNetwork) RoundsCount() int { return fn.roundsCount }

// Run applies one round per key, in the order given, and returns right || left.
// Swapping the halves after the last round makes the network its own inverse
// when the keys are supplied in reverse.
func (fn *FeistelNetwork) Run(block Bits, keys []Bits) (Bits, error) {
	if err := block.Validate("feistel input", fn.blockSize); err != nil {
		return nil, err
	}
	if len(keys) != fn.roundsCount {
		return nil, fmt.Errorf("%w: got %d round keys, need %d", ErrInvalidKey, len(keys), fn.roundsCount)
	}

	left, right, err := block.Split()
	if err != nil {
		return nil, fmt.Errorf("failed to split block: %w", err)
	}

	for round, key := range keys {
		left, right, err = feistelStep(fn.roundFunction, left, right, key)
		if err != nil {
			return nil, fmt.Errorf("round function error in round %d: %w", round+1, err)
		}
	}

	return Concat(right, left), nil
}

func (fn *FeistelNetwork) EncryptBlock(block Bits, keys RoundKeys) (Bits, error) {
	return fn.Run(block, keys[:])
}

func (fn *FeistelNetwork) DecryptBlock(block Bits, keys RoundKeys) (Bits, error) {
	reversed := keys.Reversed()
	return fn.Run(block, reversed[:])
}

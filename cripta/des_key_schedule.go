package cripta

import (
	"fmt"
)

// RoundKeys holds the 16 round keys of one DES key; index 0 is round 1.
type RoundKeys [Rounds]Bits

// Clone returns a deep copy; the result shares no memory with rk.
func (rk RoundKeys) Clone() RoundKeys {
	var out RoundKeys
	for i, k := range rk {
		if k != nil {
			out[i] = k.Clone()
		}
	}
	return out
}

// Reversed returns the keys in decryption order.
func (rk RoundKeys) Reversed() RoundKeys {
	var out RoundKeys
	for i := range rk {
		out[i] = rk[Rounds-1-i]
	}
	return out
}

// DESKeySchedule derives round keys from a 64-bit key. Parity bits are
// discarded by PC-1 and not checked unless CheckParity is set.
type DESKeySchedule struct {
	CheckParity bool
}

// DeriveRoundKeys is the default schedule without a parity check.
func DeriveRoundKeys(key Bits) (RoundKeys, error) {
	return (&DESKeySchedule{}).GenerateRoundKeys(key)
}

// CheckParity verifies that every byte of a 64-bit key has odd parity.
func CheckParity(key Bits) error {
	if err := key.Validate("parity check", KeyBits); err != nil {
		return asKeyError(err)
	}
	for i := 0; i < KeyBits; i += 8 {
		ones := 0
		for _, bit := range key[i : i+8] {
			ones += int(bit)
		}
		if ones%2 == 0 {
			return fmt.Errorf("%w: byte %d has even parity", ErrInvalidKey, i/8)
		}
	}
	return nil
}

func (dks *DESKeySchedule) GenerateRoundKeys(masterKey Bits) (RoundKeys, error) {
	var roundKeys RoundKeys

	if err := masterKey.Validate("key schedule", KeyBits); err != nil {
		return roundKeys, asKeyError(err)
	}
	if dks.CheckParity {
		if err := CheckParity(masterKey); err != nil {
			return roundKeys, err
		}
	}

	permutedKey, err := Permute(PC1, masterKey)
	if err != nil {
		return roundKeys, fmt.Errorf("PC1 permutation failed: %w", err)
	}

	c, d, err := permutedKey.Split()
	if err != nil {
		return roundKeys, fmt.Errorf("splitting permuted key: %w", err)
	}

	for round := 0; round < Rounds; round++ {
		c = c.RotateLeft(shiftSchedule[round])
		d = d.RotateLeft(shiftSchedule[round])

		roundKey, err := Permute(PC2, Concat(c, d))
		if err != nil {
			return roundKeys, fmt.Errorf("PC2 permutation failed in round %d: %w", round+1, err)
		}
		roundKeys[round] = roundKey
	}

	return roundKeys, nil
}

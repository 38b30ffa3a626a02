package cripta

import (
	"fmt"
	"sync"
)

var (
	desNetworkOnce sync.Once
	desNetwork     *FeistelNetwork
)

func network() *FeistelNetwork {
	desNetworkOnce.Do(func() {
		fn, err := NewFeistelNetwork(&DESRoundFunction{}, BlockBits, Rounds)
		if err != nil {
			panic(err)
		}
		desNetwork = fn
	})
	return desNetwork
}

// EncryptBlock enciphers one 64-bit block with a derived key schedule.
func EncryptBlock(block Bits, keys RoundKeys) (Bits, error) {
	return cryptBlock(block, keys, false)
}

// DecryptBlock is the inverse of EncryptBlock for the same keys.
func DecryptBlock(block Bits, keys RoundKeys) (Bits, error) {
	return cryptBlock(block, keys, true)
}

func cryptBlock(block Bits, keys RoundKeys, decrypt bool) (Bits, error) {
	permuted, err := Permute(IP, block)
	if err != nil {
		return nil, fmt.Errorf("IP permutation failed: %w", err)
	}

	var feistelOutput Bits
	if decrypt {
		feistelOutput, err = network().DecryptBlock(permuted, keys)
	} else {
		feistelOutput, err = network().EncryptBlock(permuted, keys)
	}
	if err != nil {
		return nil, fmt.Errorf("feistel network failed: %w", err)
	}

	out, err := Permute(InverseIP, feistelOutput)
	if err != nil {
		return nil, fmt.Errorf("IP^-1 permutation failed: %w", err)
	}
	return out, nil
}

// DESCipher keeps the round keys of one key and implements ISymmetricCipher.
type DESCipher struct {
	schedule  IKeySchedule
	roundKeys RoundKeys
	keyed     bool
}

func NewDESCipher() *DESCipher {
	return &DESCipher{schedule: &DESKeySchedule{}}
}

// NewDESCipherWithSchedule lets callers plug in a schedule such as one with
// parity checking enabled.
func NewDESCipherWithSchedule(schedule IKeySchedule) (*DESCipher, error) {
	if schedule == nil {
		return nil, fmt.Errorf("key schedule implementation cannot be nil")
	}
	return &DESCipher{schedule: schedule}, nil
}

// NewDESCipherFromRoundKeys wraps a copy of an already derived schedule.
func NewDESCipherFromRoundKeys(keys RoundKeys) *DESCipher {
	return &DESCipher{schedule: &DESKeySchedule{}, roundKeys: keys.Clone(), keyed: true}
}

func (des *DESCipher) SetKey(key Bits) error {
	roundKeys, err := des.schedule.GenerateRoundKeys(key)
	if err != nil {
		des.keyed = false
		des.roundKeys = RoundKeys{}
		return fmt.Errorf("failed to generate round keys: %w", err)
	}
	des.roundKeys = roundKeys
	des.keyed = true
	return nil
}

// RoundKeys exposes a deep copy of the current schedule.
func (des *DESCipher) RoundKeys() (RoundKeys, bool) {
	return des.roundKeys.Clone(), des.keyed
}

func (des *DESCipher) EncryptBlock(plainBlock Bits) (Bits, error) {
	if !des.keyed {
		return nil, fmt.Errorf("%w: key not set, call SetKey() before encryption", ErrInvalidKey)
	}
	return EncryptBlock(plainBlock, des.roundKeys)
}

func (des *DESCipher) DecryptBlock(cipherBlock Bits) (Bits, error) {
	if !des.keyed {
		return nil, fmt.Errorf("%w: key not set, call SetKey() before decryption", ErrInvalidKey)
	}
	return DecryptBlock(cipherBlock, des.roundKeys)
}

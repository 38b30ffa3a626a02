package cripta

import "fmt"

// DESRoundFunction is the DES f-function: expansion, key mixing, S-boxes, P.
type DESRoundFunction struct{}

// SBox looks up 6-bit chunk in S-box j (0-based). Row is formed by the first
// and last bit, column by the middle four.
func SBox(j int, chunk Bits) (Bits, error) {
	if j < 0 || j >= len(sBoxes) {
		return nil, fmt.Errorf("s-box %d: %w: no such box", j+1, ErrInvalidInput)
	}
	if err := chunk.Validate(fmt.Sprintf("S%d", j+1), 6); err != nil {
		return nil, err
	}

	row := chunk[0]<<1 | chunk[5]
	col := chunk[1]<<3 | chunk[2]<<2 | chunk[3]<<1 | chunk[4]
	return BitsFromUint64(uint64(sBoxes[j][row][col]), 4), nil
}

func (rf *DESRoundFunction) Apply(right Bits, roundKey Bits) (Bits, error) {
	if err := roundKey.Validate("round key", RoundKeyBits); err != nil {
		return nil, err
	}

	expanded, err := Permute(Expansion, right)
	if err != nil {
		return nil, fmt.Errorf("expansion failed: %w", err)
	}

	mixed, err := Xor(expanded, roundKey)
	if err != nil {
		return nil, err
	}

	chunks, err := mixed.Chunks(6)
	if err != nil {
		return nil, err
	}
	substituted := make(Bits, 0, HalfBits)
	for j, chunk := range chunks {
		nibble, err := SBox(j, chunk)
		if err != nil {
			return nil, err
		}
		substituted = append(substituted, nibble...)
	}

	return Permute(PBox, substituted)
}

// Round performs one Feistel step and returns the new (left, right) halves.
func Round(left, right, roundKey Bits) (Bits, Bits, error) {
	if err := left.Validate("round left half", HalfBits); err != nil {
		return nil, nil, err
	}
	return feistelStep(&DESRoundFunction{}, left, right, roundKey)
}

// feistelStep returns (right, left XOR f(right, key)).
func feistelStep(f IRoundFunction, left, right, roundKey Bits) (Bits, Bits, error) {
	out, err := f.Apply(right, roundKey)
	if err != nil {
		return nil, nil, err
	}
	newRight, err := Xor(left, out)
	if err != nil {
		return nil, nil, err
	}
	return right.Clone(), newRight, nil
}

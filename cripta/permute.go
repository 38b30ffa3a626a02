package cripta

import "fmt"

// PermutationTable is a fixed map of 1-based source positions. Applying it to
// a sequence of Domain() bits yields Len() bits where output[i] = input[table[i]-1].
// The positions are unexported so a table cannot be altered after construction.
type PermutationTable struct {
	name      string
	domain    int
	positions []int
}

func newPermutationTable(name string, domain int, positions []int) PermutationTable {
	for i, p := range positions {
		if p < 1 || p > domain {
			panic(fmt.Sprintf("%s: position %d at index %d outside 1..%d", name, p, i, domain))
		}
	}
	return PermutationTable{name: name, domain: domain, positions: positions}
}

func (t PermutationTable) Name() string { return t.name }

// Domain is the exact input length the table accepts.
func (t PermutationTable) Domain() int { return t.domain }

// Len is the output length.
func (t PermutationTable) Len() int { return len(t.positions) }

// Position returns the 1-based source index feeding output bit i.
func (t PermutationTable) Position(i int) int { return t.positions[i] }

// Permute applies table to input. The input must be exactly table.Domain()
// binary digits; it is never padded or truncated.
func Permute(table PermutationTable, input Bits) (Bits, error) {
	if err := input.Validate(table.name, table.domain); err != nil {
		return nil, err
	}

	result := make(Bits, len(table.positions))
	for i, sourcePos := range table.positions {
		result[i] = input[sourcePos-1]
	}
	return result, nil
}

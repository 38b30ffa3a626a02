package cripta

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a wrong-length or non-binary bit sequence.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidKey reports key material that is not exactly 64 valid bits.
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyTooLong reports key text that encodes to more than 64 bits.
	ErrKeyTooLong = errors.New("key too long")
)

// LengthError is returned when a bit sequence has the wrong length for the
// operation it was passed to.
type LengthError struct {
	Op   string
	Got  int
	Want int
	Kind error
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: %v: got %d bits, need %d", e.Op, e.Kind, e.Got, e.Want)
}

func (e *LengthError) Unwrap() error { return e.Kind }

// SymbolError is returned when a bit sequence holds something other than 0 or 1.
type SymbolError struct {
	Op    string
	Pos   int
	Value uint8
	Kind  error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %v: non-binary symbol %d at position %d", e.Op, e.Kind, e.Value, e.Pos)
}

func (e *SymbolError) Unwrap() error { return e.Kind }

// BlockError identifies the block of a message whose transform failed.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// asKeyError re-tags a length or symbol failure as ErrInvalidKey.
func asKeyError(err error) error {
	var le *LengthError
	if errors.As(err, &le) {
		return &LengthError{Op: le.Op, Got: le.Got, Want: le.Want, Kind: ErrInvalidKey}
	}
	var se *SymbolError
	if errors.As(err, &se) {
		return &SymbolError{Op: se.Op, Pos: se.Pos, Value: se.Value, Kind: ErrInvalidKey}
	}
	return fmt.Errorf("%w: %v", ErrInvalidKey, err)
}

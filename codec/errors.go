package codec

import "errors"

var (
	// ErrUnencodable reports a character with no 8-bit code.
	ErrUnencodable = errors.New("character has no 8-bit code")
	// ErrInvalidPadding reports a message whose trailing padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
)

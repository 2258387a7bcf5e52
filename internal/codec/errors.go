package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter reports a byte outside the alphabet and padding.
	ErrInvalidCharacter = errors.New("codec: invalid character")

	// ErrInvalidPadding reports misplaced padding or non-zero pad bits.
	// Only PolicyStrict returns it.
	ErrInvalidPadding = errors.New("codec: invalid padding")

	// ErrTruncatedInput reports a final group holding a single symbol.
	// Only PolicyStrict returns it.
	ErrTruncatedInput = errors.New("codec: truncated input")
)

// CorruptInputError locates a decode failure in the input.
type CorruptInputError struct {
	Offset int
	Char   byte
	Err    error
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("%v at offset %d (byte 0x%02x)", e.Err, e.Offset, e.Char)
}

func (e *CorruptInputError) Unwrap() error {
	return e.Err
}

func corrupt(err error, offset int, c byte) *CorruptInputError {
	return &CorruptInputError{Offset: offset, Char: c, Err: err}
}

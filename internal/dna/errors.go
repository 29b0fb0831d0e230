package dna

import "fmt"

// InvalidLengthError reports a symbol string whose length is not a
// multiple of four and therefore cannot represent whole bytes.
type InvalidLengthError struct {
	// Length is the offending symbol count.
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid DNA sequence length: %d (must be a multiple of 4)", e.Length)
}

// InvalidCharacterError reports a character outside the four-symbol
// alphabet. Position counts symbols, not bytes, so multi-byte runes
// before the offender do not skew it.
type InvalidCharacterError struct {
	Char     rune
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid DNA character: %q at position %d", e.Char, e.Position)
}

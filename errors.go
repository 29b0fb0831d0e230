package dendec

import (
	"errors"
	"fmt"

	"github.com/dendec/dendec-go/internal/crypto"
	"github.com/dendec/dendec-go/internal/dna"
	"github.com/dendec/dendec-go/internal/packet"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyDerivation is returned when the password KDF cannot run.
	// With the fixed cost constants this indicates misconfiguration or a
	// failing random source, never bad input data.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrDecryptionFailed is returned when the authentication tag does
	// not verify. A wrong password and tampered ciphertext are
	// indistinguishable by this error.
	ErrDecryptionFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrBadMagic is returned when the input is too short to contain a
	// header, or when no alphabet permutation yields a verified packet.
	// Functionally it means "wrong password or not a dendec sequence".
	ErrBadMagic = errors.New("missing or corrupted header: magic bytes not found")
)

// DendecError is implemented by all structured codec errors.
type DendecError interface {
	error
	DendecError() // marker method
}

// UnsupportedVersionError is returned when a packet header parses but
// declares a format version this implementation does not understand.
type UnsupportedVersionError struct {
	Expected byte
	Got      byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version: expected %d, got %d", e.Expected, e.Got)
}

// DendecError implements the DendecError interface.
func (e *UnsupportedVersionError) DendecError() {}

// LengthMismatchError is returned when the header's declared ciphertext
// length disagrees with the bytes actually present.
type LengthMismatchError struct {
	Declared uint64
	Actual   uint64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("payload length mismatch: header says %d, actual %d", e.Declared, e.Actual)
}

// DendecError implements the DendecError interface.
func (e *LengthMismatchError) DendecError() {}

// InvalidLengthError is returned when a symbol string's length is not a
// multiple of four and therefore cannot represent whole bytes.
type InvalidLengthError struct {
	// Length is the offending symbol count, in runes.
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid DNA sequence length: %d (must be a multiple of 4)", e.Length)
}

// DendecError implements the DendecError interface.
func (e *InvalidLengthError) DendecError() {}

// InvalidCharacterError is returned when a symbol string contains a
// character outside the four-symbol alphabet.
type InvalidCharacterError struct {
	Char rune
	// Position is the symbol index of the character, counted in runes.
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid DNA character: %q at position %d", e.Char, e.Position)
}

// DendecError implements the DendecError interface.
func (e *InvalidCharacterError) DendecError() {}

// wrapError converts internal package errors to public errors.
// This ensures that errors.Is() and errors.As() checks work with the
// public taxonomy only.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var verErr *packet.UnsupportedVersionError
	if errors.As(err, &verErr) {
		return &UnsupportedVersionError{Expected: verErr.Expected, Got: verErr.Got}
	}

	var mismatchErr *packet.LengthMismatchError
	if errors.As(err, &mismatchErr) {
		return &LengthMismatchError{Declared: mismatchErr.Declared, Actual: mismatchErr.Actual}
	}

	var lenErr *dna.InvalidLengthError
	if errors.As(err, &lenErr) {
		return &InvalidLengthError{Length: lenErr.Length}
	}

	var charErr *dna.InvalidCharacterError
	if errors.As(err, &charErr) {
		return &InvalidCharacterError{Char: charErr.Char, Position: charErr.Position}
	}

	switch {
	case errors.Is(err, crypto.ErrKeyDerivation):
		return ErrKeyDerivation
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return ErrDecryptionFailed
	case errors.Is(err, packet.ErrBadMagic):
		return ErrBadMagic
	}

	return err
}

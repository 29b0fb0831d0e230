package packet

import (
	"errors"
	"fmt"
)

// ErrBadMagic is returned when the input is too short to contain a
// header or does not begin with the dendec magic bytes.
var ErrBadMagic = errors.New("missing or corrupted header: magic bytes not found")

// UnsupportedVersionError is returned when the header parses but
// declares a format version this implementation does not understand.
type UnsupportedVersionError struct {
	Expected byte
	Got      byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version: expected %d, got %d", e.Expected, e.Got)
}

// LengthMismatchError is returned when the header's declared ciphertext
// length disagrees with the bytes actually present after the header.
type LengthMismatchError struct {
	Declared uint64
	Actual   uint64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("payload length mismatch: header says %d, actual %d", e.Declared, e.Actual)
}

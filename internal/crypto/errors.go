package crypto

import "errors"

var (
	// ErrKeyDerivation is returned when key derivation cannot run, for
	// example on a salt of the wrong size or a failing random source.
	// With the fixed cost constants this is a configuration failure, not
	// a data failure.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrDecryptionFailed is returned when authenticated decryption fails.
	// It carries no detail: a wrong password and tampered ciphertext are
	// indistinguishable to the caller.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the cipher key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)

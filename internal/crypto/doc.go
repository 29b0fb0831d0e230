// Package crypto provides the cryptographic primitives for the dendec
// format: password-based key derivation and authenticated encryption.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - Argon2id (RFC 9106): memory-hard password KDF, configured with
//     3 passes over 64 MiB on a single lane. Produces the cipher key and
//     the alphabet mapping seed in one 40-byte output.
//
//   - ChaCha20-Poly1305 (RFC 8439): authenticated encryption (AEAD) for
//     the payload. Provides confidentiality and integrity; tampering with
//     ciphertext, nonce, or key makes decryption fail.
//
// # Key Layout
//
// One Argon2id invocation produces 40 bytes. Bytes [0,32) become the
// ChaCha20-Poly1305 key; bytes [32,40) are read as a little-endian uint64
// and become the mapping seed. Both halves are bound to the same
// (password, salt) pair, which is what lets a decoder verify a recovered
// alphabet permutation by re-deriving the seed.
//
// # Security Notes
//
// The Argon2id cost constants are wire-format constants, not tunables:
// the packet header stores only the salt, so changing the costs breaks
// decoding of existing packets.
//
// Decrypt reports every authentication failure as the same
// [ErrDecryptionFailed]. The error carries no cause: callers cannot
// tell a wrong password from corrupted data.
//
// Derived key material is scoped to one encode or decode call. It should
// never be logged, persisted, or reused across calls.
package crypto

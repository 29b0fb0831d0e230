// Package packet implements the dendec binary packet format.
//
// A packet is the canonical binary object that gets alphabet-encoded,
// laid out as a fixed 41-byte prefix followed by the ciphertext:
//
//	offset  0  magic "DNDC" (4 bytes)
//	offset  4  format version (1 byte, currently 1)
//	offset  5  KDF salt (16 bytes)
//	offset 21  AEAD nonce (12 bytes)
//	offset 33  ciphertext length (uint64, little-endian)
//	offset 41  ciphertext, authentication tag included
//
// A packet is never partially valid: Parse either returns every header
// field with the ciphertext matching its declared length, or it fails
// with one of the package's error kinds.
package packet

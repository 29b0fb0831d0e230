package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// randReader is the random source used for salt and nonce generation.
// It defaults to crypto/rand and can be overridden for testing.
var randReader io.Reader = rand.Reader

// DerivedKeys holds the key material produced by one Argon2id invocation.
// It lives only for the duration of a single encode or decode call and is
// never persisted.
type DerivedKeys struct {
	// CipherKey is the 32-byte ChaCha20-Poly1305 key.
	CipherKey []byte
	// MappingSeed seeds the alphabet permutation.
	MappingSeed uint64
	// Salt is the 16-byte salt the keys were derived with.
	Salt []byte
}

// Derive stretches a password and salt into a cipher key and a mapping
// seed. The 40-byte Argon2id output is split as bytes [0,32) for the key
// and bytes [32,40), read little-endian, for the seed.
//
// Derive is deterministic: the same password and salt always produce the
// same keys. Decode depends on this to verify a recovered permutation.
func Derive(password string, salt []byte) (*DerivedKeys, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt is %d bytes, want %d", ErrKeyDerivation, len(salt), SaltSize)
	}

	out := argon2.IDKey([]byte(password), salt, ArgonTime, ArgonMemory, ArgonThreads, DerivedSize)

	return &DerivedKeys{
		CipherKey:   out[:KeySize],
		MappingSeed: binary.LittleEndian.Uint64(out[KeySize:]),
		Salt:        append([]byte(nil), salt...),
	}, nil
}

// DeriveWithFreshSalt generates a random 16-byte salt and derives keys
// from it. This is the only salt source on the encode path.
func DeriveWithFreshSalt(password string) (*DerivedKeys, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return Derive(password, salt)
}

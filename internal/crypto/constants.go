package crypto

const (
	// SaltSize is the size of the Argon2id salt in bytes.
	SaltSize = 16
	// KeySize is the size of the ChaCha20-Poly1305 cipher key in bytes.
	KeySize = 32
	// NonceSize is the size of the ChaCha20-Poly1305 nonce in bytes.
	NonceSize = 12
	// TagSize is the size of the Poly1305 authentication tag in bytes.
	TagSize = 16
	// SeedSize is the size of the alphabet mapping seed in bytes.
	SeedSize = 8
	// DerivedSize is the total Argon2id output size in bytes: a cipher key
	// followed by a mapping seed.
	DerivedSize = KeySize + SeedSize

	// Argon2id cost parameters. The packet header carries no KDF
	// parameters, so these are part of the wire format: a decoder must
	// run Argon2id with exactly the costs the encoder used.
	ArgonTime    = 3
	ArgonMemory  = 64 * 1024 // KiB
	ArgonThreads = 1
)

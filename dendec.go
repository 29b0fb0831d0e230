package dendec

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/dendec/dendec-go/internal/crypto"
	"github.com/dendec/dendec-go/internal/dna"
	"github.com/dendec/dendec-go/internal/packet"
)

// headerSymbols is the number of DNA symbols that encode the packet
// header. Mapping recovery trial-decodes exactly this prefix.
const headerSymbols = packet.HeaderSize * dna.SymbolsPerByte

// Encode encrypts plaintext under password and renders the result as a
// DNA symbol string. Every call derives a fresh random salt and nonce,
// so encoding the same input twice produces different output.
//
// The mapping between bytes and symbols is itself derived from the
// password, so without it an attacker cannot even locate the packet
// header in the symbol stream.
func Encode(plaintext []byte, password string, opts ...EncodeOption) (string, error) {
	cfg := encodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	keys, err := crypto.DeriveWithFreshSalt(password)
	if err != nil {
		return "", wrapError(err)
	}

	nonce, ciphertext, err := crypto.Encrypt(keys.CipherKey, plaintext)
	if err != nil {
		return "", wrapError(err)
	}

	raw := packet.Build(packet.Header{
		Salt:       keys.Salt,
		Nonce:      nonce,
		PayloadLen: uint64(len(ciphertext)),
	}, ciphertext)

	mapping := dna.MappingFromSeed(keys.MappingSeed)
	symbols := dna.Encode(raw, mapping)
	if cfg.groupSize > 0 {
		symbols = dna.Group(symbols, cfg.groupSize)
	}
	return symbols, nil
}

// Decode recovers the plaintext from a DNA symbol string produced by
// Encode. Whitespace anywhere in the input is ignored, so grouped
// output decodes unchanged.
//
// Decode first recovers the byte-to-symbol mapping by trial-decoding
// the header prefix under each candidate alphabet ordering and keeping
// the one whose embedded salt re-derives it. A wrong password almost
// always fails that search with ErrBadMagic; when its rederived
// mapping happens to coincide with the packet's, the failure surfaces
// as ErrDecryptionFailed once authentication runs.
func Decode(symbols string, password string) ([]byte, error) {
	stripped := stripWhitespace(symbols)
	if len(stripped) < headerSymbols {
		return nil, ErrBadMagic
	}

	keys, mapping, err := recoverMapping(stripped[:headerSymbols], password)
	if err != nil {
		return nil, wrapError(err)
	}

	raw, err := dna.Decode(stripped, mapping)
	if err != nil {
		return nil, wrapError(err)
	}

	header, ciphertext, err := packet.Parse(raw)
	if err != nil {
		return nil, wrapError(err)
	}

	plaintext, err := crypto.Decrypt(keys.CipherKey, header.Nonce, ciphertext)
	if err != nil {
		return nil, wrapError(err)
	}
	return plaintext, nil
}

// recoverMapping finds the alphabet ordering the header prefix was
// encoded with. A candidate survives only if the prefix decodes to a
// valid magic and version AND the salt it carries derives a mapping
// seed that reproduces the candidate itself. Candidates that fail to
// decode at all are skipped, not reported.
//
// The derived keys are returned alongside the mapping so Decode does
// not pay for a second Argon2id pass.
func recoverMapping(headerSyms string, password string) (*crypto.DerivedKeys, dna.Mapping, error) {
	for _, candidate := range dna.AllMappings() {
		headerBytes, err := dna.Decode(headerSyms, candidate)
		if err != nil {
			continue
		}
		if !bytes.Equal(headerBytes[:len(packet.Magic)], packet.Magic[:]) {
			continue
		}
		if headerBytes[len(packet.Magic)] != packet.Version {
			continue
		}

		salt := headerBytes[len(packet.Magic)+1 : len(packet.Magic)+1+crypto.SaltSize]
		keys, err := crypto.Derive(password, salt)
		if err != nil {
			return nil, dna.Mapping{}, err
		}
		if dna.MappingFromSeed(keys.MappingSeed) == candidate {
			return keys, candidate, nil
		}
	}
	return nil, dna.Mapping{}, ErrBadMagic
}

// stripWhitespace drops every Unicode whitespace rune from s.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

package packet

import (
	"bytes"
	"encoding/binary"

	"github.com/dendec/dendec-go/internal/crypto"
)

// Magic identifies the dendec packet format. Spells "DNDC".
var Magic = [4]byte{0x44, 0x4E, 0x44, 0x43}

// Version is the only format version this implementation reads and writes.
const Version byte = 0x01

const (
	versionOffset = 4
	saltOffset    = 5
	nonceOffset   = saltOffset + crypto.SaltSize
	lengthOffset  = nonceOffset + crypto.NonceSize

	// HeaderSize is the fixed-size packet prefix: magic, version, salt,
	// nonce and payload length.
	HeaderSize = lengthOffset + 8

	// MinPacketSize is the smallest input Parse accepts: a full header
	// plus at least one ciphertext byte.
	MinPacketSize = HeaderSize + 1
)

// Header carries the per-packet material a decoder needs before it can
// decrypt: the KDF salt, the AEAD nonce and the declared ciphertext
// length. It is reconstructed field by field on every parse and never
// persisted on its own.
type Header struct {
	Salt       []byte
	Nonce      []byte
	PayloadLen uint64
}

// Build serializes a header and ciphertext into one packet.
//
// The caller is responsible for sizing: Salt and Nonce must be exactly
// crypto.SaltSize and crypto.NonceSize bytes, and PayloadLen must equal
// len(ciphertext), or the result will not parse.
func Build(h Header, ciphertext []byte) []byte {
	out := make([]byte, 0, HeaderSize+len(ciphertext))
	out = append(out, Magic[:]...)
	out = append(out, Version)
	out = append(out, h.Salt...)
	out = append(out, h.Nonce...)
	out = binary.LittleEndian.AppendUint64(out, h.PayloadLen)
	return append(out, ciphertext...)
}

// Parse splits a packet into its header and ciphertext.
//
// Inputs shorter than MinPacketSize or without the magic prefix fail
// with ErrBadMagic; a foreign version byte fails with
// UnsupportedVersionError; a declared length that disagrees with the
// remaining byte count fails with LengthMismatchError. On success the
// returned header fields and ciphertext are subslices of raw, not
// copies.
func Parse(raw []byte) (Header, []byte, error) {
	if len(raw) < MinPacketSize || !bytes.Equal(raw[:len(Magic)], Magic[:]) {
		return Header{}, nil, ErrBadMagic
	}

	if v := raw[versionOffset]; v != Version {
		return Header{}, nil, &UnsupportedVersionError{Expected: Version, Got: v}
	}

	h := Header{
		Salt:       raw[saltOffset:nonceOffset],
		Nonce:      raw[nonceOffset:lengthOffset],
		PayloadLen: binary.LittleEndian.Uint64(raw[lengthOffset:HeaderSize]),
	}

	body := raw[HeaderSize:]
	if h.PayloadLen != uint64(len(body)) {
		return Header{}, nil, &LengthMismatchError{Declared: h.PayloadLen, Actual: uint64(len(body))}
	}

	return h, body, nil
}

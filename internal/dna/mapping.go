package dna

import (
	"encoding/binary"

	"github.com/cloudflare/circl/xof"
)

// SymbolsPerByte is the number of alphabet symbols one byte encodes to.
const SymbolsPerByte = 4

// Mapping assigns the four 2-bit values to alphabet symbols:
// mapping[0b00] is the symbol for 00, and so on.
type Mapping [4]byte

// Canonical is the alphabet in canonical order. Every mapping in use is
// a permutation of it.
var Canonical = Mapping{'A', 'T', 'G', 'C'}

// MappingFromSeed derives the alphabet permutation for a seed.
//
// A SHAKE128 XOF is keyed with the seed's 8 little-endian bytes, then a
// Fisher-Yates pass walks the canonical alphabet from the last position
// down to 1, drawing one little-endian 64-bit value per step and
// swapping position i with position v mod (i+1). The same seed yields
// the same permutation on every platform; decode relies on recomputing
// this exactly.
func MappingFromSeed(seed uint64) Mapping {
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)

	x := xof.SHAKE128.New()
	// Absorbing into and squeezing from a SHAKE sponge cannot fail.
	x.Write(seedBytes[:])

	m := Canonical
	var buf [8]byte
	for i := len(m) - 1; i >= 1; i-- {
		x.Read(buf[:])
		v := binary.LittleEndian.Uint64(buf[:])
		j := v % uint64(i+1)
		m[i], m[j] = m[j], m[i]
	}
	return m
}

// allMappings holds every permutation of the canonical alphabet,
// generated once with Heap's algorithm. Ordering is irrelevant to
// decode correctness; the list only has to be exhaustive and free of
// duplicates.
var allMappings = permutations(Canonical)

// AllMappings returns the 24 permutations of the canonical alphabet.
// The returned slice is a fresh copy on every call.
func AllMappings() []Mapping {
	out := make([]Mapping, len(allMappings))
	copy(out, allMappings)
	return out
}

func permutations(m Mapping) []Mapping {
	perms := make([]Mapping, 0, 24)
	var heap func(k int)
	heap = func(k int) {
		if k == 1 {
			perms = append(perms, m)
			return
		}
		for i := 0; i < k; i++ {
			heap(k - 1)
			if k%2 == 0 {
				m[i], m[k-1] = m[k-1], m[i]
			} else {
				m[0], m[k-1] = m[k-1], m[0]
			}
		}
	}
	heap(len(m))
	return perms
}

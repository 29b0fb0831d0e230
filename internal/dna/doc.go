// Package dna converts between bytes and the four-symbol DNA alphabet
// under a key-dependent permutation.
//
// # Mapping
//
// A [Mapping] assigns the four 2-bit values 0..3 to the four bases. The
// canonical order is A, T, G, C; the mapping actually used for a packet
// is one of the 24 permutations of that order, selected by a 64-bit seed
// that comes out of key derivation.
//
// [MappingFromSeed] is a pure function: the seed keys a SHAKE128 XOF and
// a fixed Fisher-Yates pass over the canonical alphabet. Both the
// generator and the shuffle are wire-format constants. Changing either
// would silently re-map every existing packet, so neither is
// configurable.
//
// # Symbol Layout
//
// Every byte becomes exactly four symbols, most significant 2-bit pair
// first. 0x00 encodes as four copies of mapping[0]; 0xFF as four copies
// of mapping[3]. Decoding validates length (a multiple of four symbols)
// and alphabet membership, reporting symbol positions in rune terms.
package dna

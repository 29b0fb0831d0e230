package dna

import "strings"

// Encode converts a byte slice to a symbol string under the given
// mapping: four symbols per byte, most significant 2-bit pair first.
func Encode(data []byte, m Mapping) string {
	out := make([]byte, 0, len(data)*SymbolsPerByte)
	for _, b := range data {
		out = append(out,
			m[b>>6&0b11],
			m[b>>4&0b11],
			m[b>>2&0b11],
			m[b&0b11],
		)
	}
	return string(out)
}

// Decode converts a symbol string back to bytes under the given mapping.
//
// The symbol count must be a multiple of four, and every symbol must be
// one of the mapping's four. Errors report the rune count and rune
// position respectively.
func Decode(s string, m Mapping) ([]byte, error) {
	// Reverse lookup: symbol byte value to 2-bit value, -1 for unknown.
	var inverse [128]int8
	for i := range inverse {
		inverse[i] = -1
	}
	for v, sym := range m {
		inverse[sym] = int8(v)
	}

	runes := []rune(s)
	if len(runes)%SymbolsPerByte != 0 {
		return nil, &InvalidLengthError{Length: len(runes)}
	}

	out := make([]byte, len(runes)/SymbolsPerByte)
	for i, r := range runes {
		v := int8(-1)
		if r >= 0 && r < 128 {
			v = inverse[r]
		}
		if v < 0 {
			return nil, &InvalidCharacterError{Char: r, Position: i}
		}
		// MSB-first: the first symbol of a group lands in bits 7-6.
		out[i/SymbolsPerByte] |= byte(v) << (6 - (i%SymbolsPerByte)*2)
	}
	return out, nil
}

// Group formats a symbol string into space-separated runs of n symbols.
// Group(s, 0) returns s unchanged. Purely presentational: decode strips
// all whitespace before processing.
func Group(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/n)
	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}

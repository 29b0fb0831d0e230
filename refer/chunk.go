package refer

import "strings"

// splitKmers cuts a symbol string into successive 8-mers, validating
// that the length divides evenly and every byte is A, T, G or C. The
// error carries the position of the first offence; for a bad length
// that is the total length.
func splitKmers(dna []byte) ([][KmerLen]byte, error) {
	if len(dna)%KmerLen != 0 {
		return nil, &InvalidBasesError{Position: len(dna)}
	}

	kmers := make([][KmerLen]byte, 0, len(dna)/KmerLen)
	for base := 0; base < len(dna); base += KmerLen {
		var kmer [KmerLen]byte
		for i := 0; i < KmerLen; i++ {
			b := dna[base+i]
			switch b {
			case 'A', 'T', 'G', 'C':
				kmer[i] = b
			default:
				return nil, &InvalidBasesError{Position: base + i}
			}
		}
		kmers = append(kmers, kmer)
	}
	return kmers, nil
}

// reassemble concatenates 8-mers back into a flat symbol string.
// Inputs come from splitKmers or reverseLookup, so the bytes are
// already validated.
func reassemble(kmers [][KmerLen]byte) string {
	var b strings.Builder
	b.Grow(len(kmers) * KmerLen)
	for _, kmer := range kmers {
		b.Write(kmer[:])
	}
	return b.String()
}

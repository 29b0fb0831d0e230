package refer

// ReverseComplement returns the reverse complement of an uppercase
// A/T/G/C sequence: A and T swap, G and C swap, and the result is
// reversed. Bytes outside the alphabet pass through unchanged.
func ReverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		b := seq[len(seq)-1-i]
		switch b {
		case 'A':
			b = 'T'
		case 'T':
			b = 'A'
		case 'G':
			b = 'C'
		case 'C':
			b = 'G'
		}
		rc[i] = b
	}
	return string(rc)
}

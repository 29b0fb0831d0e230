package refer

import (
	"strings"
	"unicode"
)

// ToBED converts an encoded symbol string into a BED document using
// the table's forward index. Whitespace anywhere in the input is
// ignored, so grouped codec output converts unchanged.
func (t *Table) ToBED(dna string) (*Document, error) {
	stripped := stripWhitespace(dna)

	kmers, err := splitKmers([]byte(stripped))
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(kmers))
	for i, kmer := range kmers {
		coord, ok := t.lookup(kmer[:])
		if !ok {
			return nil, &ChunkNotFoundError{Chunk: i}
		}
		accession, ok := t.accessionFor(coord.ChromIndex)
		if !ok {
			return nil, ErrTableCorrupt
		}
		records = append(records, Record{
			Accession:  accession,
			Start:      coord.Start,
			Strand:     coord.Strand,
			ChunkIndex: i,
		})
	}

	return &Document{
		DNALength:  len(stripped),
		ChunkCount: len(records),
		Records:    records,
	}, nil
}

// FromBED reassembles the symbol string a document stands for using
// the table's reverse index. Records must be in chunk order, which
// ReadDocument guarantees. The result is trimmed to the header's
// recorded length when one is present.
func (t *Table) FromBED(doc *Document) (string, error) {
	kmers := make([][KmerLen]byte, 0, len(doc.Records))
	for _, r := range doc.Records {
		chromIndex, ok := t.chromIndex(r.Accession)
		if !ok {
			return "", &AssemblyMismatchError{
				Expected: "known hg38 accession",
				Got:      r.Accession,
			}
		}

		kmer, ok := t.reverseLookup(coordKey{
			chromIndex: chromIndex,
			start:      r.Start,
			strand:     r.Strand,
		})
		if !ok {
			return "", &ChunkNotFoundError{Chunk: r.ChunkIndex}
		}
		kmers = append(kmers, kmer)
	}

	dna := reassemble(kmers)
	if doc.DNALength > 0 && len(dna) > doc.DNALength {
		dna = dna[:doc.DNALength]
	}
	return dna, nil
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

package refer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// TableBuilder accumulates 8-mer placements and serializes them in the
// table file format. It is the write-side counterpart of LoadTable,
// used by the offline table builder.
type TableBuilder struct {
	maxPerEntry int
	accessions  []string
	chromIndex  map[string]uint8
	entries     [TableSize][]Coord
	covered     int
	saturated   int
}

// NewTableBuilder returns a builder keeping at most maxPerEntry
// coordinates per 8-mer. The per-entry count is stored in one byte, so
// values outside [1, 255] are clamped to that range.
func NewTableBuilder(maxPerEntry int) *TableBuilder {
	if maxPerEntry < 1 {
		maxPerEntry = 1
	}
	if maxPerEntry > 255 {
		maxPerEntry = 255
	}
	return &TableBuilder{
		maxPerEntry: maxPerEntry,
		chromIndex:  make(map[string]uint8),
	}
}

// AddChromosome registers an accession and returns its chromosome
// index. Registering the same accession again returns the existing
// index.
func (b *TableBuilder) AddChromosome(accession string) (uint8, error) {
	if idx, ok := b.chromIndex[accession]; ok {
		return idx, nil
	}
	if accession == "" {
		return 0, errors.New("empty accession")
	}
	if len(accession) > 255 {
		return 0, fmt.Errorf("accession %q exceeds 255 bytes", accession)
	}
	if len(b.accessions) == 256 {
		return 0, errors.New("table supports at most 256 chromosomes")
	}

	idx := uint8(len(b.accessions))
	b.accessions = append(b.accessions, accession)
	b.chromIndex[accession] = idx
	return idx, nil
}

// Record stores one placement of kmer. It reports false without
// storing anything when the kmer is not exactly KmerLen bases of
// A/T/G/C, or when the entry is already at capacity.
func (b *TableBuilder) Record(kmer []byte, chrom uint8, start uint32, strand byte) bool {
	if len(kmer) != KmerLen {
		return false
	}
	idx, ok := kmerToIndex(kmer)
	if !ok {
		return false
	}

	entry := b.entries[idx]
	if len(entry) >= b.maxPerEntry {
		return false
	}
	if len(entry) == 0 {
		b.covered++
	}
	b.entries[idx] = append(entry, Coord{ChromIndex: chrom, Start: start, Strand: strand})
	if len(b.entries[idx]) == b.maxPerEntry {
		b.saturated++
	}
	return true
}

// Covered returns how many of the TableSize entries hold at least one
// coordinate.
func (b *TableBuilder) Covered() int { return b.covered }

// Saturated returns how many entries are at capacity.
func (b *TableBuilder) Saturated() int { return b.saturated }

// Full reports whether every entry is at capacity, at which point
// scanning more genome adds nothing.
func (b *TableBuilder) Full() bool { return b.saturated == TableSize }

// WriteTo serializes the builder in the format LoadTable reads.
func (b *TableBuilder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(p []byte) error {
		m, err := bw.Write(p)
		n += int64(m)
		return err
	}

	if err := write(tableMagic[:]); err != nil {
		return n, err
	}
	if err := write([]byte{tableVersion}); err != nil {
		return n, err
	}

	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(len(b.accessions)))
	if err := write(u16[:]); err != nil {
		return n, err
	}
	for _, acc := range b.accessions {
		if err := write([]byte{byte(len(acc))}); err != nil {
			return n, err
		}
		if err := write([]byte(acc)); err != nil {
			return n, err
		}
	}

	var coord [6]byte
	for idx := 0; idx < TableSize; idx++ {
		entry := b.entries[idx]
		if err := write([]byte{byte(len(entry))}); err != nil {
			return n, err
		}
		for _, c := range entry {
			coord[0] = c.ChromIndex
			binary.LittleEndian.PutUint32(coord[1:5], c.Start)
			coord[5] = c.Strand
			if err := write(coord[:]); err != nil {
				return n, err
			}
		}
	}

	return n, bw.Flush()
}

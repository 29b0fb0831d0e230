package refer

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"unicode/utf8"
)

const (
	// TableSize is the number of distinct 8-mers, 4^8.
	TableSize = 65536
	// KmerLen is the chunk length in bases. Input whose length is not
	// a multiple of KmerLen is rejected, not padded.
	KmerLen = 8

	tableVersion = 0x01
)

// Strand values as stored in the table and in Record.
const (
	StrandForward byte = 0
	StrandReverse byte = 1
)

var tableMagic = [4]byte{0x44, 0x52, 0x46, 0x54}

// Coord is one genome placement of an 8-mer.
type Coord struct {
	// ChromIndex indexes the table's accession list.
	ChromIndex uint8
	// Start is the 0-based position, BED convention.
	Start  uint32
	Strand byte
}

// coordKey identifies a coordinate for the reverse index.
type coordKey struct {
	chromIndex uint8
	start      uint32
	strand     byte
}

// Table is a loaded lookup table with both directions indexed: 8-mer
// index to candidate coordinates for encoding, and coordinate to 8-mer
// index for decoding.
type Table struct {
	accessions []string
	forward    [][]Coord
	reverse    map[coordKey]uint16
}

// LoadTableFile loads a table from disk. See LoadTable.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}

// LoadTable parses a DRFT table and builds both indices. Structural
// problems report ErrTableCorrupt; read failures are returned as-is.
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) < 7 || !bytes.Equal(data[:4], tableMagic[:]) {
		return nil, ErrTableCorrupt
	}
	cur := 4

	if data[cur] != tableVersion {
		return nil, ErrTableCorrupt
	}
	cur++

	chromCount := int(binary.LittleEndian.Uint16(data[cur:]))
	cur += 2

	accessions := make([]string, 0, chromCount)
	for i := 0; i < chromCount; i++ {
		if cur >= len(data) {
			return nil, ErrTableCorrupt
		}
		n := int(data[cur])
		cur++
		if cur+n > len(data) {
			return nil, ErrTableCorrupt
		}
		if !utf8.Valid(data[cur : cur+n]) {
			return nil, ErrTableCorrupt
		}
		accessions = append(accessions, string(data[cur:cur+n]))
		cur += n
	}

	forward := make([][]Coord, TableSize)
	reverse := make(map[coordKey]uint16, TableSize*4)

	for idx := 0; idx < TableSize; idx++ {
		if cur >= len(data) {
			return nil, ErrTableCorrupt
		}
		count := int(data[cur])
		cur++

		coords := make([]Coord, 0, count)
		for j := 0; j < count; j++ {
			if cur+6 > len(data) {
				return nil, ErrTableCorrupt
			}
			c := Coord{
				ChromIndex: data[cur],
				Start:      binary.LittleEndian.Uint32(data[cur+1 : cur+5]),
				Strand:     data[cur+5],
			}
			cur += 6

			reverse[coordKey{c.ChromIndex, c.Start, c.Strand}] = uint16(idx)
			coords = append(coords, c)
		}
		forward[idx] = coords
	}

	return &Table{accessions: accessions, forward: forward, reverse: reverse}, nil
}

// Accessions returns the chromosome accession strings in index order.
func (t *Table) Accessions() []string {
	out := make([]string, len(t.accessions))
	copy(out, t.accessions)
	return out
}

// kmerToIndex converts an 8-mer to its base-4 index with the fixed
// A=0 T=1 G=2 C=3 ordering. ok is false for any other byte.
func kmerToIndex(kmer []byte) (int, bool) {
	idx := 0
	for _, b := range kmer {
		idx <<= 2
		switch b {
		case 'A':
		case 'T':
			idx |= 1
		case 'G':
			idx |= 2
		case 'C':
			idx |= 3
		default:
			return 0, false
		}
	}
	return idx, true
}

// indexToKmer is the inverse of kmerToIndex.
func indexToKmer(idx uint16) [KmerLen]byte {
	var kmer [KmerLen]byte
	for i := KmerLen - 1; i >= 0; i-- {
		kmer[i] = "ATGC"[idx&0b11]
		idx >>= 2
	}
	return kmer
}

// lookup picks a coordinate for the 8-mer at random from the entry's
// candidates, so repeated chunks produce varied coordinates instead of
// a mechanical repetition.
func (t *Table) lookup(kmer []byte) (Coord, bool) {
	idx, ok := kmerToIndex(kmer)
	if !ok {
		return Coord{}, false
	}
	options := t.forward[idx]
	if len(options) == 0 {
		return Coord{}, false
	}
	return options[rand.Intn(len(options))], true
}

// reverseLookup recovers the 8-mer a coordinate stands for. ok is
// false for coordinates not in the table, which indicates a tampered
// or incompatible BED file.
func (t *Table) reverseLookup(key coordKey) ([KmerLen]byte, bool) {
	idx, ok := t.reverse[key]
	if !ok {
		return [KmerLen]byte{}, false
	}
	return indexToKmer(idx), true
}

// chromIndex resolves an accession string to its table index.
func (t *Table) chromIndex(accession string) (uint8, bool) {
	for i, a := range t.accessions {
		if a == accession {
			return uint8(i), true
		}
	}
	return 0, false
}

// accessionFor returns the accession string for a chromosome index.
func (t *Table) accessionFor(chromIndex uint8) (string, bool) {
	if int(chromIndex) >= len(t.accessions) {
		return "", false
	}
	return t.accessions[chromIndex], true
}

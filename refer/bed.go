package refer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Header values written to every document. The assembly line names the
// genome build the table was derived from; FromBED rejects records
// whose accession the table does not know.
const (
	formatVersion = "0.1.0"
	assemblyID    = "GCF_000001405.40 hg38"
)

// Record is one BED data line: one 8-mer placed at a genome
// coordinate.
type Record struct {
	Accession string
	Start     uint32
	Strand    byte
	// ChunkIndex orders records for reassembly.
	ChunkIndex int
}

// Document is a parsed or generated dendec-refer BED file.
type Document struct {
	// DNALength is the symbol count of the source string, recorded so
	// decoding can trim any excess.
	DNALength int
	// ChunkCount mirrors the record count as written in the header.
	ChunkCount int
	// Records are kept sorted by ChunkIndex.
	Records []Record
}

// WriteTo renders the document in BED format. The ## comment header
// follows the VCF/GFF convention so the file passes for routine
// annotation output.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(format string, args ...any) error {
		m, err := fmt.Fprintf(bw, format, args...)
		n += int64(m)
		return err
	}

	if err := write("##dendec-refer v%s\n", formatVersion); err != nil {
		return n, err
	}
	if err := write("##assembly %s\n", assemblyID); err != nil {
		return n, err
	}
	if err := write("##chunk_size %d\n", KmerLen); err != nil {
		return n, err
	}
	if err := write("##dna_length %d\n", d.DNALength); err != nil {
		return n, err
	}
	if err := write("##chunk_count %d\n", len(d.Records)); err != nil {
		return n, err
	}

	for _, r := range d.Records {
		strand := '+'
		if r.Strand == StrandReverse {
			strand = '-'
		}
		err := write("%s\t%d\t%d\tchunk_%08d\t0\t%c\n",
			r.Accession, r.Start, r.Start+KmerLen, r.ChunkIndex, strand)
		if err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}

// ReadDocument parses a dendec-refer BED file. Records are sorted by
// chunk index on the way in, so a reordered file still decodes.
// Unknown ## headers and blank lines are ignored.
func ReadDocument(r io.Reader) (*Document, error) {
	doc := &Document{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "##dna_length") {
			doc.DNALength = headerValue(line)
			continue
		}
		if strings.HasPrefix(line, "##chunk_count") {
			doc.ChunkCount = headerValue(line)
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 6 {
			return nil, &InvalidBEDError{
				Detail: fmt.Sprintf("expected 6 tab-separated columns, got %d: %q", len(cols), line),
			}
		}

		start, err := strconv.ParseUint(cols[1], 10, 32)
		if err != nil {
			return nil, &InvalidBEDError{
				Detail: fmt.Sprintf("invalid start coordinate %q in line: %s", cols[1], line),
			}
		}

		var strand byte
		switch cols[5] {
		case "+":
			strand = StrandForward
		case "-":
			strand = StrandReverse
		default:
			return nil, &InvalidBEDError{
				Detail: fmt.Sprintf("invalid strand %q: expected '+' or '-'", cols[5]),
			}
		}

		name, ok := strings.CutPrefix(cols[3], "chunk_")
		if !ok {
			return nil, &InvalidBEDError{
				Detail: fmt.Sprintf("invalid chunk name %q: expected chunk_NNNNNNNN", cols[3]),
			}
		}
		chunkIndex, err := strconv.Atoi(name)
		if err != nil || chunkIndex < 0 {
			return nil, &InvalidBEDError{
				Detail: fmt.Sprintf("invalid chunk name %q: expected chunk_NNNNNNNN", cols[3]),
			}
		}

		doc.Records = append(doc.Records, Record{
			Accession:  cols[0],
			Start:      uint32(start),
			Strand:     strand,
			ChunkIndex: chunkIndex,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(doc.Records, func(i, j int) bool {
		return doc.Records[i].ChunkIndex < doc.Records[j].ChunkIndex
	})

	return doc, nil
}

// headerValue pulls the numeric argument out of a ## header line,
// tolerating malformed values as zero.
func headerValue(line string) int {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return v
}

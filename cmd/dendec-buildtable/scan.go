package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/dendec/dendec-go/refer"
)

// progressEvery is the base interval between progress lines. A full
// human assembly is about three billion bases, so this keeps the log
// to a few hundred lines.
const progressEvery = 10_000_000

// scanFASTA streams one gzip-compressed FASTA file into the builder,
// recording every 8-base window on both strands. Windows containing
// anything but A/T/G/C, ambiguity codes and runs of N included, are
// dropped. It returns the number of bases read.
func scanFASTA(r io.Reader, b *refer.TableBuilder, log logrus.FieldLogger) (uint64, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	var (
		window    [refer.KmerLen]byte
		filled    int
		chrom     uint8
		haveChrom bool
		pos       uint32
		processed uint64
	)

	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			acc := accessionFromHeader(line)
			if acc == "" {
				return processed, fmt.Errorf("FASTA header with no accession: %q", line)
			}
			idx, err := b.AddChromosome(acc)
			if err != nil {
				return processed, err
			}
			chrom, haveChrom = idx, true
			filled, pos = 0, 0
			log.Infof("scanning %s", acc)
			continue
		}
		if !haveChrom {
			return processed, errors.New("sequence data before first FASTA header")
		}

		for _, c := range line {
			// hg38 soft-masks repeats as lowercase.
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			copy(window[:], window[1:])
			window[refer.KmerLen-1] = c
			pos++
			processed++
			if filled < refer.KmerLen {
				filled++
				if filled < refer.KmerLen {
					continue
				}
			}

			start := pos - refer.KmerLen
			b.Record(window[:], chrom, start, refer.StrandForward)
			rc := revcomp8(window)
			b.Record(rc[:], chrom, start, refer.StrandReverse)

			if processed%progressEvery == 0 {
				log.Infof("%s bases in, %d/%d 8-mers covered",
					humanize.Comma(int64(processed)), b.Covered(), refer.TableSize)
			}
		}

		if b.Full() {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return processed, err
	}
	return processed, nil
}

// accessionFromHeader extracts the accession, the first
// whitespace-delimited token after '>'.
func accessionFromHeader(line []byte) string {
	fields := bytes.Fields(line[1:])
	if len(fields) == 0 {
		return ""
	}
	return string(fields[0])
}

// revcomp8 reverse-complements one window without allocating. Bytes
// outside A/T/G/C become 'N', which Record then rejects.
func revcomp8(w [refer.KmerLen]byte) [refer.KmerLen]byte {
	var out [refer.KmerLen]byte
	for i, c := range w {
		switch c {
		case 'A':
			c = 'T'
		case 'T':
			c = 'A'
		case 'G':
			c = 'C'
		case 'C':
			c = 'G'
		default:
			c = 'N'
		}
		out[refer.KmerLen-1-i] = c
	}
	return out
}

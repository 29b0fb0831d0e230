package main

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dendec/dendec-go/refer"
)

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// scanToTable runs one FASTA payload through the scanner and loads the
// resulting table.
func scanToTable(t *testing.T, fasta string, maxPerEntry int) (*refer.Table, uint64) {
	t.Helper()
	b := refer.NewTableBuilder(maxPerEntry)
	n, err := scanFASTA(bytes.NewReader(gzipBytes(t, fasta)), b, quietLogger())
	if err != nil {
		t.Fatalf("scanFASTA() error = %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	table, err := refer.LoadTable(&buf)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	return table, n
}

func TestScanFASTA_RecordsWindows(t *testing.T) {
	table, n := scanToTable(t, ">NC_TEST.1 test chromosome\nATGCATGCATGC\n", 8)
	if n != 12 {
		t.Errorf("scanned %d bases, want 12", n)
	}
	if accs := table.Accessions(); len(accs) != 1 || accs[0] != "NC_TEST.1" {
		t.Errorf("Accessions() = %v, want [NC_TEST.1]", accs)
	}

	doc, err := table.ToBED("ATGCATGC")
	if err != nil {
		t.Fatalf("ToBED() error = %v", err)
	}
	got, err := table.FromBED(doc)
	if err != nil {
		t.Fatalf("FromBED() error = %v", err)
	}
	if got != "ATGCATGC" {
		t.Errorf("round trip = %q, want ATGCATGC", got)
	}
}

func TestScanFASTA_WindowSpansLines(t *testing.T) {
	// GGCCAATT only exists across the line break.
	table, n := scanToTable(t, ">NC_TEST.1\nGGCC\nAATT\n", 8)
	if n != 8 {
		t.Errorf("scanned %d bases, want 8", n)
	}
	if _, err := table.ToBED("GGCCAATT"); err != nil {
		t.Errorf("window spanning a line break not recorded: %v", err)
	}
}

func TestScanFASTA_UppercasesSoftMask(t *testing.T) {
	table, _ := scanToTable(t, ">NC_TEST.1\natgcatgc\n", 8)
	if _, err := table.ToBED("ATGCATGC"); err != nil {
		t.Errorf("soft-masked window not recorded: %v", err)
	}
}

func TestScanFASTA_SkipsWindowsWithN(t *testing.T) {
	table, _ := scanToTable(t, ">NC_TEST.1\nATGCNTTTTGGGG\n", 8)

	// The only window clear of the N.
	if _, err := table.ToBED("TTTTGGGG"); err != nil {
		t.Errorf("clean window not recorded: %v", err)
	}

	var notFound *refer.ChunkNotFoundError
	if _, err := table.ToBED("AAAAAAAA"); !errors.As(err, &notFound) {
		t.Errorf("ToBED(absent kmer) error = %v, want ChunkNotFoundError", err)
	}
}

func TestScanFASTA_RecordsReverseComplement(t *testing.T) {
	table, _ := scanToTable(t, ">NC_TEST.1\nAAAACCCC\n", 8)

	doc, err := table.ToBED("GGGGTTTT")
	if err != nil {
		t.Fatalf("ToBED(revcomp) error = %v", err)
	}
	if len(doc.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(doc.Records))
	}
	if doc.Records[0].Strand != refer.StrandReverse {
		t.Errorf("strand = %d, want reverse", doc.Records[0].Strand)
	}
	got, err := table.FromBED(doc)
	if err != nil {
		t.Fatalf("FromBED() error = %v", err)
	}
	if got != "GGGGTTTT" {
		t.Errorf("round trip = %q, want GGGGTTTT", got)
	}
}

func TestScanFASTA_MultipleChromosomes(t *testing.T) {
	table, n := scanToTable(t, ">NC_A.1 first\nATGCATGC\n>NC_B.1 second\nGGGGTTTT\n", 8)
	if n != 16 {
		t.Errorf("scanned %d bases, want 16", n)
	}
	accs := table.Accessions()
	if len(accs) != 2 || accs[0] != "NC_A.1" || accs[1] != "NC_B.1" {
		t.Errorf("Accessions() = %v, want [NC_A.1 NC_B.1]", accs)
	}

	// The window straddling the two records must not exist; headers
	// reset the scanner.
	var notFound *refer.ChunkNotFoundError
	if _, err := table.ToBED("ATGCGGGG"); !errors.As(err, &notFound) {
		t.Errorf("cross-chromosome window recorded: %v", err)
	}
}

func TestScanFASTA_DataBeforeHeader(t *testing.T) {
	b := refer.NewTableBuilder(8)
	_, err := scanFASTA(bytes.NewReader(gzipBytes(t, "ATGC\n>NC_A.1\nATGCATGC\n")), b, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "before first FASTA header") {
		t.Errorf("scanFASTA() error = %v, want data-before-header", err)
	}
}

func TestScanFASTA_HeaderWithoutAccession(t *testing.T) {
	b := refer.NewTableBuilder(8)
	_, err := scanFASTA(bytes.NewReader(gzipBytes(t, ">\nATGCATGC\n")), b, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "no accession") {
		t.Errorf("scanFASTA() error = %v, want missing-accession", err)
	}
}

func TestScanFASTA_RejectsPlainText(t *testing.T) {
	b := refer.NewTableBuilder(8)
	if _, err := scanFASTA(strings.NewReader(">NC_A.1\nATGC\n"), b, quietLogger()); err == nil {
		t.Error("uncompressed input accepted, want gzip header error")
	}
}

func TestRevcomp8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ATGCATGC", "GCATGCAT"},
		{"AAAACCCC", "GGGGTTTT"},
		{"TTTTTTTT", "AAAAAAAA"},
	}
	for _, tt := range tests {
		var w [refer.KmerLen]byte
		copy(w[:], tt.in)
		got := revcomp8(w)
		if string(got[:]) != tt.want {
			t.Errorf("revcomp8(%s) = %s, want %s", tt.in, got[:], tt.want)
		}
		if ref := refer.ReverseComplement(tt.in); string(got[:]) != ref {
			t.Errorf("revcomp8(%s) = %s, disagrees with ReverseComplement %s", tt.in, got[:], ref)
		}
	}

	var w [refer.KmerLen]byte
	copy(w[:], "ATGCATGN")
	if got := revcomp8(w); got[0] != 'N' {
		t.Errorf("revcomp8 of window with N = %s, want leading N", got[:])
	}
}

func TestBuildTable_Validation(t *testing.T) {
	if err := run([]string{"dendec-buildtable"}); err == nil ||
		!strings.Contains(err.Error(), "at least one --fasta") {
		t.Errorf("run() without --fasta error = %v", err)
	}
	err := run([]string{"dendec-buildtable", "--fasta", "x.fa.gz", "--max-per-entry", "0"})
	if err == nil || !strings.Contains(err.Error(), "between 1 and 255") {
		t.Errorf("run() with bad max-per-entry error = %v", err)
	}
}

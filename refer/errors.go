package refer

import (
	"errors"
	"fmt"
)

// ErrTableCorrupt is returned when a table file fails its magic or
// version check, or ends before all entries have been read.
var ErrTableCorrupt = errors.New("reference table is corrupt or incompatible: reinstall dendec")

// InvalidBEDError reports a BED line that could not be parsed.
type InvalidBEDError struct {
	Detail string
}

func (e *InvalidBEDError) Error() string {
	return fmt.Sprintf("invalid BED file: %s", e.Detail)
}

// ChunkNotFoundError reports a chunk that could not be mapped through
// the table in either direction.
type ChunkNotFoundError struct {
	Chunk int
}

func (e *ChunkNotFoundError) Error() string {
	return fmt.Sprintf("chunk %d not found during refer decode: BED file may be incomplete", e.Chunk)
}

// InvalidBasesError reports a character outside A/T/G/C, or a sequence
// whose length is not a whole number of chunks.
type InvalidBasesError struct {
	Position int
}

func (e *InvalidBasesError) Error() string {
	return fmt.Sprintf("invalid base in DNA string at position %d: only A/T/G/C are permitted", e.Position)
}

// AssemblyMismatchError reports a BED record whose accession is not in
// the loaded table.
type AssemblyMismatchError struct {
	Expected string
	Got      string
}

func (e *AssemblyMismatchError) Error() string {
	return fmt.Sprintf("assembly mismatch: expected %s, got %q: BED file may be from a different genome build", e.Expected, e.Got)
}

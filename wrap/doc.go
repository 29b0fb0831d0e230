// Package wrap runs a command, finds the files it produced, and
// encodes or decodes them in place.
//
// The typical use is fetching a tree of encoded sources and restoring
// them in one step:
//
//	summary, err := wrap.Run(ctx, wrap.ModeDecode,
//		[]string{"git", "clone", "https://example.com/repo.git"},
//		password)
//
// Produced files are discovered by diffing a snapshot of the working
// directory taken before and after the command runs. A command that
// writes its payload to stdout instead (bare curl) has its output
// captured and transformed directly. Passing a single existing
// directory instead of a command transforms that tree without running
// anything.
//
// Text files are replaced by ".dna" siblings on encode, and ".dna"
// files are replaced by their decoded originals on decode. Binary
// files, VCS metadata and dependency directories are skipped.
package wrap

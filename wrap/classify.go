package wrap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// encodedExt is the extension given to encoded files.
const encodedExt = ".dna"

// binarySniffLen bounds how much of a file the content sniff reads.
const binarySniffLen = 512

// binaryExtensions is the fast path for skipping obvious binaries
// without opening them.
var binaryExtensions = map[string]bool{
	// images
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true,
	"ico": true, "webp": true, "tiff": true, "svg": true,
	// archives
	"zip": true, "tar": true, "gz": true, "bz2": true, "xz": true,
	"zst": true, "7z": true, "rar": true,
	// compiled
	"wasm": true, "bin": true, "exe": true, "dll": true, "so": true,
	"dylib": true, "a": true, "o": true,
	// documents
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true,
	// media
	"mp3": true, "mp4": true, "wav": true, "ogg": true, "flac": true,
	"avi": true, "mkv": true, "mov": true,
	// other
	"db": true, "sqlite": true, "pyc": true, "class": true,
}

// excludedDirs are path components whose contents are never touched.
var excludedDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	"target":       true,
}

// skipReason explains why a file was left alone.
type skipReason int

const (
	// skipNone means the file should be transformed.
	skipNone skipReason = iota
	skipBinary
	skipAlreadyEncoded
	skipNotEncoded
	skipExcludedDir
)

func (r skipReason) String() string {
	switch r {
	case skipNone:
		return "none"
	case skipBinary:
		return "binary"
	case skipAlreadyEncoded:
		return "already .dna"
	case skipNotEncoded:
		return "not .dna"
	case skipExcludedDir:
		return "excluded dir"
	default:
		return "unknown"
	}
}

// classifyForEncode decides whether path should be encoded. skipNone
// means yes. extra names additional excluded directories beyond the
// built-in set; nil is fine.
func classifyForEncode(path string, extra map[string]bool) skipReason {
	if inExcludedDir(path, extra) {
		return skipExcludedDir
	}
	if hasEncodedExt(path) {
		return skipAlreadyEncoded
	}
	if hasBinaryExtension(path) {
		return skipBinary
	}
	if hasBinaryContent(path) {
		return skipBinary
	}
	return skipNone
}

// classifyForDecode decides whether path should be decoded. Only
// encoded files qualify.
func classifyForDecode(path string, extra map[string]bool) skipReason {
	if inExcludedDir(path, extra) {
		return skipExcludedDir
	}
	if hasEncodedExt(path) {
		return skipNone
	}
	return skipNotEncoded
}

func inExcludedDir(path string, extra map[string]bool) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if excludedDirs[part] || extra[part] {
			return true
		}
	}
	return false
}

func hasEncodedExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), encodedExt)
}

func hasBinaryExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return binaryExtensions[strings.ToLower(ext)]
}

// hasBinaryContent samples the start of the file. A NUL byte is
// decisive; otherwise more than 10% control bytes outside the usual
// whitespace range marks the file as binary. Unreadable files are
// treated as text so the transform step reports the real error.
func hasBinaryContent(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	sample := buf[:n]
	if len(sample) == 0 {
		return false
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 0x08 || (b > 0x0D && b < 0x20 && b != 0x1B) {
			nonText++
		}
	}
	return nonText*10 > len(sample)
}

package wrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyForEncode_SkipsEncodedFiles(t *testing.T) {
	tests := []string{"file.rs.dna", "notes.dna", "FILE.DNA"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if got := classifyForEncode(path, nil); got != skipAlreadyEncoded {
				t.Errorf("classifyForEncode(%q) = %v, want skipAlreadyEncoded", path, got)
			}
		})
	}
}

func TestClassifyForEncode_SkipsExcludedDirs(t *testing.T) {
	tests := []string{
		filepath.Join(".git", "config"),
		filepath.Join("a", "node_modules", "pkg", "index.js"),
		filepath.Join("target", "debug", "main.rs"),
		filepath.Join("x", ".svn", "entries"),
		filepath.Join("y", ".hg", "store"),
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if got := classifyForEncode(path, nil); got != skipExcludedDir {
				t.Errorf("classifyForEncode(%q) = %v, want skipExcludedDir", path, got)
			}
		})
	}
}

func TestClassifyForEncode_SkipsBinaryExtensions(t *testing.T) {
	tests := []string{"image.png", "IMG.PNG", "archive.zip", "lib.so", "doc.pdf", "song.mp3"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if got := classifyForEncode(path, nil); got != skipBinary {
				t.Errorf("classifyForEncode(%q) = %v, want skipBinary", path, got)
			}
		})
	}
}

func TestClassifyForEncode_AcceptsTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if got := classifyForEncode(path, nil); got != skipNone {
		t.Errorf("classifyForEncode(%q) = %v, want skipNone", path, got)
	}
}

func TestClassifyForEncode_NullByteIsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.dat")
	if err := os.WriteFile(path, []byte("hello\x00world"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if got := classifyForEncode(path, nil); got != skipBinary {
		t.Errorf("classifyForEncode(%q) = %v, want skipBinary", path, got)
	}
}

func TestClassifyForEncode_ControlBytesAreBinary(t *testing.T) {
	sample := make([]byte, 100)
	for i := range sample {
		sample[i] = 0x01
	}
	path := filepath.Join(t.TempDir(), "ctl.dat")
	if err := os.WriteFile(path, sample, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if got := classifyForEncode(path, nil); got != skipBinary {
		t.Errorf("classifyForEncode(%q) = %v, want skipBinary", path, got)
	}
}

func TestClassifyForEncode_EmptyFileIsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if got := classifyForEncode(path, nil); got != skipNone {
		t.Errorf("classifyForEncode(%q) = %v, want skipNone", path, got)
	}
}

func TestClassifyForEncode_UnreadableFileIsText(t *testing.T) {
	// Let the transform step surface the real read error instead of
	// silently skipping the file.
	path := filepath.Join(t.TempDir(), "missing.txt")
	if got := classifyForEncode(path, nil); got != skipNone {
		t.Errorf("classifyForEncode(%q) = %v, want skipNone", path, got)
	}
}

func TestClassifyForEncode_ExtraExcludedDirs(t *testing.T) {
	extra := map[string]bool{"vendor": true, "dist": true}

	path := filepath.Join("app", "vendor", "lib", "mod.go")
	if got := classifyForEncode(path, extra); got != skipExcludedDir {
		t.Errorf("classifyForEncode(%q, extra) = %v, want skipExcludedDir", path, got)
	}

	// The built-in set still applies alongside the extras.
	path = filepath.Join(".git", "config")
	if got := classifyForEncode(path, extra); got != skipExcludedDir {
		t.Errorf("classifyForEncode(%q, extra) = %v, want skipExcludedDir", path, got)
	}
}

func TestClassifyForDecode(t *testing.T) {
	tests := []struct {
		path string
		want skipReason
	}{
		{"file.rs.dna", skipNone},
		{"FILE.DNA", skipNone},
		{"file.rs", skipNotEncoded},
		{"image.png", skipNotEncoded},
		{filepath.Join(".git", "blob.dna"), skipExcludedDir},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := classifyForDecode(tt.path, nil); got != tt.want {
				t.Errorf("classifyForDecode(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

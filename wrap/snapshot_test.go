package wrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSnapshot_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	before := captureSnapshot(dir)

	path := filepath.Join(dir, "new.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	after := captureSnapshot(dir)

	diff := before.diff(after)
	if len(diff) != 1 {
		t.Fatalf("diff has %d entries, want 1", len(diff))
	}
	if !strings.HasSuffix(diff[0], "new.txt") {
		t.Errorf("diff[0] = %q, want path ending in new.txt", diff[0])
	}
}

func TestSnapshot_UnchangedFileNotInDiff(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	before := captureSnapshot(dir)
	after := captureSnapshot(dir)

	if diff := before.diff(after); len(diff) != 0 {
		t.Errorf("diff has %d entries, want none: %v", len(diff), diff)
	}
}

func TestSnapshot_DetectsModifiedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "touched.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	before := captureSnapshot(dir)

	// Push the mtime forward explicitly so the test does not depend
	// on filesystem timestamp granularity.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
	after := captureSnapshot(dir)

	diff := before.diff(after)
	if len(diff) != 1 {
		t.Fatalf("diff has %d entries, want 1", len(diff))
	}
}

func TestSnapshot_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	snap := captureSnapshot(dir)
	if len(snap.files) != 0 {
		t.Errorf("snapshot has %d files, want none", len(snap.files))
	}
}

func TestSnapshot_WalksNestedDirs(t *testing.T) {
	dir := t.TempDir()
	before := captureSnapshot(dir)

	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	after := captureSnapshot(dir)

	diff := before.diff(after)
	if len(diff) != 1 || !strings.HasSuffix(diff[0], "deep.txt") {
		t.Errorf("diff = %v, want single deep.txt entry", diff)
	}
}

func TestSnapshot_DiffIsSorted(t *testing.T) {
	dir := t.TempDir()
	before := captureSnapshot(dir)

	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	after := captureSnapshot(dir)

	diff := before.diff(after)
	if len(diff) != 3 {
		t.Fatalf("diff has %d entries, want 3", len(diff))
	}
	for i := 1; i < len(diff); i++ {
		if diff[i-1] > diff[i] {
			t.Errorf("diff not sorted: %v", diff)
		}
	}
}

package wrap

import (
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

// snapshot records every regular file under a root with its
// modification time, so a later capture can be diffed against it to
// find what a command produced.
type snapshot struct {
	files map[string]time.Time
}

// captureSnapshot walks root without following symlinks. Entries that
// cannot be read are left out rather than failing the capture.
func captureSnapshot(root string) *snapshot {
	s := &snapshot{files: make(map[string]time.Time)}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		s.files[path] = info.ModTime()
		return nil
	})
	return s
}

// diff returns the paths in after that are new or have a different
// modification time, sorted for stable processing order.
func (s *snapshot) diff(after *snapshot) []string {
	var changed []string
	for path, mtime := range after.files {
		before, ok := s.files[path]
		if !ok || !mtime.Equal(before) {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

package wrap

import (
	"errors"
	"fmt"
)

// ErrNoFiles is returned when the wrapped command succeeds but the
// snapshot diff finds nothing to transform, or a directory walk turns
// up no files.
var ErrNoFiles = errors.New("wrap command produced no transformable files")

// CommandError is returned when the wrapped command exits non-zero.
type CommandError struct {
	Command string
	Code    int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("wrap command failed with exit code %d: %s", e.Code, e.Command)
}

// FileError reports a batch in which one or more files could not be
// transformed. Per-file detail is in the Summary's Failures list.
type FileError struct {
	Path   string
	Reason string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("wrap failed on %s: %s", e.Path, e.Reason)
}

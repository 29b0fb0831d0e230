package wrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"

	dendec "github.com/dendec/dendec-go"
)

// Mode selects the transform direction for a wrap run.
type Mode int

const (
	// ModeEncode replaces produced files with encoded .dna siblings.
	ModeEncode Mode = iota
	// ModeDecode restores produced .dna files to their originals.
	ModeDecode
)

func (m Mode) String() string {
	if m == ModeDecode {
		return "decode"
	}
	return "encode"
}

// Summary reports what a wrap run did.
type Summary struct {
	// Examined counts candidate files considered, including skips.
	Examined    int
	Transformed int
	Skipped     int
	Failed      int

	// BytesIn and BytesOut total the sizes read and written across
	// all transformed files.
	BytesIn  uint64
	BytesOut uint64

	Failures []Failure
}

// Failure records one file that could not be transformed.
type Failure struct {
	Path   string
	Reason string
}

type config struct {
	logger  logrus.FieldLogger
	workDir string
	output  io.Writer
	exclude map[string]bool
}

// Option configures a wrap run.
type Option func(*config)

// WithLogger routes progress reporting through l instead of the
// standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithWorkDir runs the wrapped command in dir and snapshots that tree
// instead of the current directory.
func WithWorkDir(dir string) Option {
	return func(c *config) {
		c.workDir = dir
	}
}

// WithOutput redirects transformed stdout payloads and inherited
// command output, which otherwise go to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithExcludeDirs skips files under the named directories, in addition
// to the built-in VCS and build-output set.
func WithExcludeDirs(names ...string) Option {
	return func(c *config) {
		if c.exclude == nil {
			c.exclude = make(map[string]bool, len(names))
		}
		for _, name := range names {
			c.exclude[name] = true
		}
	}
}

// Run executes command, discovers the files it produced, and encodes
// or decodes them according to mode. The command's own stderr passes
// through so download progress stays visible.
//
// Three shapes of command are understood. A single argument naming an
// existing directory skips execution and transforms that tree. A
// command that writes files (git, wget, anything unknown) is bracketed
// by filesystem snapshots and the diff is transformed, narrowed to the
// clone target for git clone. A command known to write to stdout
// (bare curl) has its output captured, transformed, and written to the
// output writer.
//
// Per-file problems are recorded in the Summary and do not stop the
// batch; Run returns a FileError alongside the Summary when any file
// failed.
func Run(ctx context.Context, mode Mode, command []string, password string, opts ...Option) (*Summary, error) {
	cfg := &config{
		logger: logrus.StandardLogger(),
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(command) == 0 {
		return nil, ErrNoFiles
	}

	if len(command) == 1 {
		if info, err := os.Stat(command[0]); err == nil && info.IsDir() {
			return transformDirectory(ctx, mode, command[0], password, cfg)
		}
	}

	workDir := cfg.workDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	toDisk := writesToDisk(command)

	before := captureSnapshot(workDir)

	stdout, err := runCommand(ctx, command, workDir, !toDisk, cfg)
	if err != nil {
		return nil, err
	}

	if stdout != nil {
		return transformStream(mode, stdout, password, cfg)
	}

	after := captureSnapshot(workDir)
	changed := before.diff(after)
	if len(changed) == 0 {
		return nil, ErrNoFiles
	}

	// git clone creates a fresh subdirectory; restrict the transform
	// to it so unrelated files that changed during the run are left
	// alone.
	if isGitClone(command) {
		if target, ok := gitCloneTarget(command); ok {
			prefix := filepath.Join(workDir, target) + string(filepath.Separator)
			kept := changed[:0]
			for _, p := range changed {
				if strings.HasPrefix(p, prefix) {
					kept = append(kept, p)
				}
			}
			changed = kept
		}
	}

	return transformFiles(ctx, mode, changed, password, cfg)
}

// transformDirectory walks dir and transforms every regular file in
// it, without running any command.
func transformDirectory(ctx context.Context, mode Mode, dir, password string, cfg *config) (*Summary, error) {
	cfg.logger.Infof("scanning %s", dir)

	var files []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return transformFiles(ctx, mode, files, password, cfg)
}

// transformFiles applies mode to each path, collecting results into a
// Summary. Classification decides per file; failures are recorded and
// the batch continues.
func transformFiles(ctx context.Context, mode Mode, paths []string, password string, cfg *config) (*Summary, error) {
	log := cfg.logger
	if mode == ModeEncode {
		log.Infof("encoding %d file(s)", len(paths))
	} else {
		log.Infof("decoding %d file(s)", len(paths))
	}

	s := &Summary{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		s.Examined++

		var reason skipReason
		if mode == ModeEncode {
			reason = classifyForEncode(path, cfg.exclude)
		} else {
			reason = classifyForDecode(path, cfg.exclude)
		}
		if reason != skipNone {
			log.WithFields(logrus.Fields{"path": path, "reason": reason.String()}).Debug("skipping")
			s.Skipped++
			continue
		}

		var (
			outPath string
			in, out uint64
			err     error
		)
		if mode == ModeEncode {
			outPath, in, out, err = encodeFile(path, password)
		} else {
			outPath, in, out, err = decodeFile(path, password)
		}
		if err != nil {
			log.WithField("path", path).WithError(err).Errorf("%s failed", mode)
			s.Failed++
			s.Failures = append(s.Failures, Failure{Path: path, Reason: err.Error()})
			continue
		}

		if err := os.Remove(path); err != nil {
			log.WithField("path", path).WithError(err).Warn("could not remove source file")
		}

		log.WithFields(logrus.Fields{"path": outPath, "in": in, "out": out}).Infof("%sd", mode)
		s.Transformed++
		s.BytesIn += in
		s.BytesOut += out
	}

	if s.Failed > 0 {
		return s, &FileError{
			Path:   "<multiple>",
			Reason: fmt.Sprintf("%d file(s) failed to %s", s.Failed, mode),
		}
	}
	return s, nil
}

// transformStream handles a command that delivered its payload on
// stdout: the bytes are transformed in memory and written to the
// configured output.
func transformStream(mode Mode, data []byte, password string, cfg *config) (*Summary, error) {
	s := &Summary{Examined: 1}

	if mode == ModeEncode {
		cfg.logger.Info("encoding stdout output")
		symbols, err := dendec.Encode(data, password)
		if err != nil {
			return s, err
		}
		if _, err := fmt.Fprintln(cfg.output, symbols); err != nil {
			return s, err
		}
		s.Transformed = 1
		s.BytesIn = uint64(len(data))
		s.BytesOut = uint64(len(symbols))
		return s, nil
	}

	cfg.logger.Info("decoding stdout output")
	plaintext, err := dendec.Decode(string(data), password)
	if err != nil {
		return s, err
	}
	if _, err := cfg.output.Write(plaintext); err != nil {
		return s, err
	}
	s.Transformed = 1
	s.BytesIn = uint64(len(data))
	s.BytesOut = uint64(len(plaintext))
	return s, nil
}

// encodeFile writes an encoded sibling with the .dna extension and
// reports the path written plus byte counts. The source file is left
// for the caller to remove.
func encodeFile(path, password string) (string, uint64, uint64, error) {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return "", 0, 0, err
	}

	symbols, err := dendec.Encode(plaintext, password)
	if err != nil {
		return "", 0, 0, err
	}

	outPath := path + encodedExt
	if err := atomic.WriteFile(outPath, strings.NewReader(symbols)); err != nil {
		return "", 0, 0, err
	}
	return outPath, uint64(len(plaintext)), uint64(len(symbols)), nil
}

// decodeFile restores the original file next to the .dna source and
// reports the path written plus byte counts.
func decodeFile(path, password string) (string, uint64, uint64, error) {
	symbols, err := os.ReadFile(path)
	if err != nil {
		return "", 0, 0, err
	}

	plaintext, err := dendec.Decode(string(symbols), password)
	if err != nil {
		return "", 0, 0, err
	}

	outPath := stripEncodedExt(path)
	if err := atomic.WriteFile(outPath, bytes.NewReader(plaintext)); err != nil {
		return "", 0, 0, err
	}
	return outPath, uint64(len(symbols)), uint64(len(plaintext)), nil
}

// stripEncodedExt removes a trailing .dna extension, matching
// case-insensitively the way classification does.
func stripEncodedExt(path string) string {
	if len(path) >= len(encodedExt) && strings.EqualFold(path[len(path)-len(encodedExt):], encodedExt) {
		return path[:len(path)-len(encodedExt)]
	}
	return path
}

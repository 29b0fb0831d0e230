package wrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path"
	"strings"
)

// runCommand executes the wrapped command in dir. Stderr passes
// through so the user sees the tool's own progress. When
// captureStdout is set the command's stdout is collected and returned
// for direct transformation; otherwise stdout goes to out and the
// caller is expected to diff the filesystem.
func runCommand(ctx context.Context, args []string, dir string, captureStdout bool, cfg *config) ([]byte, error) {
	cfg.logger.Infof("running: %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr

	var captured *bytes.Buffer
	if captureStdout {
		captured = &bytes.Buffer{}
		cmd.Stdout = captured
	} else {
		cmd.Stdout = cfg.output
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{
				Command: strings.Join(args, " "),
				Code:    exitErr.ExitCode(),
			}
		}
		return nil, err
	}

	if captured != nil {
		return captured.Bytes(), nil
	}
	return nil, nil
}

// writesToDisk reports whether the tool produces files rather than
// stdout output. Unknown tools are assumed to write files, which
// keeps the snapshot path as the default.
func writesToDisk(args []string) bool {
	switch args[0] {
	case "git", "wget":
		return true
	case "curl":
		for _, a := range args {
			if a == "-o" || a == "--output" || a == "-O" {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func isGitClone(args []string) bool {
	return len(args) >= 2 && args[0] == "git" && args[1] == "clone"
}

// gitCloneTarget extracts the directory a git clone will create, so
// the transform can be narrowed to just the cloned tree.
//
//	git clone https://host/user/repo      -> repo
//	git clone https://host/user/repo.git  -> repo
//	git clone <url> mydir                 -> mydir
func gitCloneTarget(args []string) (string, bool) {
	clonePos := -1
	for i, a := range args {
		if a == "clone" {
			clonePos = i
			break
		}
	}
	if clonePos < 0 {
		return "", false
	}

	var positional []string
	for _, a := range args[clonePos+1:] {
		if !strings.HasPrefix(a, "-") {
			positional = append(positional, a)
		}
	}

	switch len(positional) {
	case 1:
		url := strings.TrimRight(positional[0], "/")
		name := strings.TrimSuffix(path.Base(url), ".git")
		if name == "" || name == "." || name == "/" {
			return "", false
		}
		return name, true
	case 2:
		return positional[1], true
	default:
		return "", false
	}
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// passphraseEnv names the environment variable that bypasses the
// interactive prompt, for scripting.
const passphraseEnv = "DENDEC_PASSPHRASE"

var errPasswordMismatch = errors.New("password mismatch: confirmation did not match")

// resolvePassword obtains the passphrase for this invocation. The
// DENDEC_PASSPHRASE environment variable wins; otherwise the user is
// prompted, twice when confirm is set. An empty passphrase on an
// encoding path draws a warning but is allowed.
func resolvePassword(cfg *Config, confirm bool) (string, error) {
	password, fromEnv := os.LookupEnv(passphraseEnv)
	if !fromEnv {
		var err error
		password, err = cfg.ReadPassword("Enter password: ")
		if err != nil {
			return "", err
		}
		if confirm {
			again, err := cfg.ReadPassword("Confirm password: ")
			if err != nil {
				return "", err
			}
			if password != again {
				return "", errPasswordMismatch
			}
		}
	}

	if confirm && password == "" {
		fmt.Fprintln(cfg.Stderr, "Warning: using an empty password provides no security.")
	}
	return password, nil
}

// stdinLines is shared across prompts so input buffered by the first
// read is still available to the confirmation read.
var stdinLines *bufio.Reader

// promptPassword writes prompt to stderr and reads the passphrase with
// echo disabled when stdin is a terminal. Piped stdin falls back to
// plain line reading.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		entered, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(entered), nil
	}

	if stdinLines == nil {
		stdinLines = bufio.NewReader(os.Stdin)
	}
	line, err := stdinLines.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

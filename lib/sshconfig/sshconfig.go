// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshconfig adds a host entry to the user's OpenSSH client
// configuration exactly once.
//
// The file is treated as line-oriented text that hsdev only ever
// appends to. [Ensure] looks for a marker substring (the entry's
// "Host <alias>" line) and appends the block only when no line
// contains it. Existing content is never rewritten or removed.
//
// The check and the append happen while holding an exclusive flock(2)
// on the config file, so two concurrent "hsdev setup-zed" runs cannot
// both observe the marker as absent and append the entry twice.
package sshconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Block is a configuration block guarded by a marker.
type Block struct {
	// Marker is the substring whose presence on any line means the
	// block was already added.
	Marker string `json:"marker"`

	// Text is appended verbatim when the marker is absent.
	Text string `json:"text"`
}

// Host describes an SSH client entry for a development container.
type Host struct {
	// Alias is the name used on the ssh command line ("Host <alias>").
	Alias string

	// Comment is written as a "# ..." line above the entry.
	Comment string

	HostName string
	Port     int
	User     string
}

// Block renders the host entry. The marker is the "Host <alias>" line.
// Host key checking is disabled because the container's host key
// changes on every rebuild.
func (h Host) Block() Block {
	marker := "Host " + h.Alias
	var text strings.Builder
	text.WriteString("\n")
	if h.Comment != "" {
		text.WriteString("# " + h.Comment + "\n")
	}
	text.WriteString(marker + "\n")
	text.WriteString("    HostName " + h.HostName + "\n")
	text.WriteString("    Port " + strconv.Itoa(h.Port) + "\n")
	text.WriteString("    User " + h.User + "\n")
	text.WriteString("    StrictHostKeyChecking no\n")
	text.WriteString("    UserKnownHostsFile /dev/null\n")
	return Block{Marker: marker, Text: text.String()}
}

// Outcome reports what [Ensure] did.
type Outcome int

const (
	// Added means the block was appended.
	Added Outcome = iota
	// AlreadyPresent means the marker was found and nothing was written.
	AlreadyPresent
	// Pending means the block is absent and a dry run left it unwritten.
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already present"
	case Pending:
		return "pending"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ConfigAccessError reports a failure to locate, create, read, or
// write the SSH config file.
type ConfigAccessError struct {
	// Op is the failed step: "resolve home", "create directory",
	// "open", "lock", "read", or "write".
	Op string

	// Path is the file or directory involved, empty for "resolve home".
	Path string

	Err error
}

func (e *ConfigAccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ssh config: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ssh config: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigAccessError) Unwrap() error {
	return e.Err
}

// ErrNoHome is wrapped by the ConfigAccessError [ConfigPath] returns
// when HOME is unset or empty.
var ErrNoHome = errors.New("HOME is not set")

// ConfigPath returns $HOME/.ssh/config. lookupEnv is normally
// os.LookupEnv. A missing or empty HOME is an error; there is no
// fallback to the password database.
func ConfigPath(lookupEnv func(string) (string, bool)) (string, error) {
	home, ok := lookupEnv("HOME")
	if !ok || home == "" {
		return "", &ConfigAccessError{Op: "resolve home", Err: ErrNoHome}
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Ensure appends block to the file at path unless a line already
// contains block.Marker. The parent directory is created if needed.
// New files are created with mode 0600 and new directories with 0700,
// which is what OpenSSH expects for ~/.ssh.
func Ensure(path string, block Block) (Outcome, error) {
	if block.Marker == "" {
		return 0, fmt.Errorf("sshconfig: block has no marker")
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return 0, &ConfigAccessError{Op: "create directory", Path: directory, Err: err}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return 0, &ConfigAccessError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		return 0, &ConfigAccessError{Op: "lock", Path: path, Err: err}
	}
	// Closing the descriptor releases the lock.

	present, err := containsMarker(file, block.Marker)
	if err != nil {
		return 0, &ConfigAccessError{Op: "read", Path: path, Err: err}
	}
	if present {
		return AlreadyPresent, nil
	}

	if _, err := io.WriteString(file, block.Text); err != nil {
		return 0, &ConfigAccessError{Op: "write", Path: path, Err: err}
	}
	if err := file.Sync(); err != nil {
		return 0, &ConfigAccessError{Op: "write", Path: path, Err: err}
	}
	return Added, nil
}

// containsMarker scans reader line by line for marker. Lines are read
// with bufio.Reader rather than bufio.Scanner so an overlong line in a
// hand-edited config cannot fail the scan.
func containsMarker(reader io.Reader, marker string) (bool, error) {
	buffered := bufio.NewReader(reader)
	for {
		line, err := buffered.ReadString('\n')
		if strings.Contains(line, marker) {
			return true, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

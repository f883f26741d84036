// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package sshconfig

import (
	"errors"
	"io/fs"
	"os"
)

// UserConfig targets the invoking user's ~/.ssh/config. HOME is looked
// up on each call rather than at construction, so commands that never
// touch the SSH config do not require it.
type UserConfig struct {
	// LookupEnv is normally os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// DryRun reports whether the block would be added without creating
	// directories or writing.
	DryRun bool
}

// Ensure resolves the config path and applies [Ensure], or in dry-run
// mode reports [AlreadyPresent] or [Pending] from a read-only check.
func (u UserConfig) Ensure(block Block) (Outcome, error) {
	lookupEnv := u.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	path, err := ConfigPath(lookupEnv)
	if err != nil {
		return 0, err
	}
	if !u.DryRun {
		return Ensure(path, block)
	}

	present, err := Contains(path, block.Marker)
	if err != nil {
		return 0, err
	}
	if present {
		return AlreadyPresent, nil
	}
	return Pending, nil
}

// Contains reports whether any line of the file at path contains
// marker. A missing file contains nothing.
func Contains(path, marker string) (bool, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &ConfigAccessError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	present, err := containsMarker(file, marker)
	if err != nil {
		return false, &ConfigAccessError{Op: "read", Path: path, Err: err}
	}
	return present, nil
}

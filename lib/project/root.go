// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package project locates the HarborShield project root that every
// hsdev invocation runs in.
//
// hsdev lives in a subdirectory of the project it drives (conventionally
// <project>/hsdev), so the root is the parent of the directory holding
// hsdev's own go.mod. Resolution order:
//
//  1. HSDEV_ROOT, when set and non-empty.
//  2. The compiled-in source path of this package, walked upward to the
//     go.mod declaring [ModulePath]. This is what "go run ./hsdev/cmd/hsdev"
//     from anywhere in the checkout relies on.
//  3. The running executable's path, walked upward the same way, for
//     binaries built into the checkout (e.g. hsdev/bin/hsdev).
//
// The caller's working directory is never consulted.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/mod/modfile"
)

// ModulePath is the module path hsdev's own go.mod declares.
const ModulePath = "github.com/harborshield/hsdev"

// EnvRoot names the environment variable that overrides discovery.
const EnvRoot = "HSDEV_ROOT"

// ErrNotFound is returned when no source yields a project root.
var ErrNotFound = errors.New("project root not found")

// Sources are the inputs [Resolve] searches, in priority order after
// the environment.
type Sources struct {
	// LookupEnv is normally os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// SourceFile is an absolute path of a file compiled into hsdev.
	// Ignored when relative, which is what -trimpath produces.
	SourceFile string

	// Executable is the running binary's path.
	Executable string
}

// Resolve returns the absolute project root.
func Resolve(sources Sources) (string, error) {
	if sources.LookupEnv != nil {
		if root, ok := sources.LookupEnv(EnvRoot); ok && root != "" {
			return checkOverride(root)
		}
	}

	// A source whose walk hits an unreadable go.mod is abandoned in
	// favour of the next one; the read errors are reported only when
	// no source resolves.
	var readErrors []error
	for _, start := range []string{sources.SourceFile, sources.Executable} {
		if start == "" || !filepath.IsAbs(start) {
			continue
		}
		manifestDir, err := findManifest(filepath.Dir(start))
		if err != nil {
			readErrors = append(readErrors, err)
			continue
		}
		if manifestDir != "" {
			return filepath.Dir(manifestDir), nil
		}
	}

	notFound := fmt.Errorf("%w: no go.mod declaring %s above %q or %q; set %s",
		ErrNotFound, ModulePath, sources.SourceFile, sources.Executable, EnvRoot)
	return "", errors.Join(append([]error{notFound}, readErrors...)...)
}

func checkOverride(root string) (string, error) {
	absolute, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s=%q: %w", EnvRoot, root, err)
	}
	info, err := os.Stat(absolute)
	if err != nil {
		return "", fmt.Errorf("%s=%q: %w", EnvRoot, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s=%q is not a directory", EnvRoot, root)
	}
	return absolute, nil
}

// findManifest walks from directory toward the filesystem root and
// returns the first directory whose go.mod declares ModulePath, or ""
// when there is none. go.mod files of other modules are skipped.
func findManifest(directory string) (string, error) {
	for {
		manifest := filepath.Join(directory, "go.mod")
		data, err := os.ReadFile(manifest)
		switch {
		case err == nil:
			if modfile.ModulePath(data) == ModulePath {
				return directory, nil
			}
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("reading %s: %w", manifest, err)
		}

		parent := filepath.Dir(directory)
		if parent == directory {
			return "", nil
		}
		directory = parent
	}
}

var root = sync.OnceValues(func() (string, error) {
	_, sourceFile, _, _ := runtime.Caller(0)
	executable, _ := os.Executable()
	return Resolve(Sources{
		LookupEnv:  os.LookupEnv,
		SourceFile: sourceFile,
		Executable: executable,
	})
})

// Root resolves the project root for this process. The result is
// computed once and cached.
func Root() (string, error) {
	return root()
}

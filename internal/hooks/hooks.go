// Package hooks manages the git pre-commit hook that regenerates the
// catalog before each commit.
//
// The installed script carries a marker line so install and uninstall can
// tell an ockit-managed hook from one the user wrote themselves. Foreign
// hooks are never touched without force.
package hooks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/git"
)

// Marker identifies a hook written by ockit. It must survive verbatim in
// the installed script.
const Marker = "# ockit:managed pre-commit hook"

// Status describes the state of a repository's pre-commit hook.
type Status int

// Hook states.
const (
	StatusMissing Status = iota
	StatusOurs
	StatusForeign
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusOurs:
		return "ours"
	case StatusForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Script renders the hook body. The catalog output file is baked in at
// install time so the hook stages exactly the file the catalog command
// writes.
func Script(output string) []byte {
	var buf bytes.Buffer
	buf.WriteString("#!/bin/sh\n")
	buf.WriteString(Marker + "\n")
	buf.WriteString("#\n")
	buf.WriteString("# Regenerates the catalog so every commit carries a fresh index.\n")
	buf.WriteString("# Remove with: ockit hooks uninstall\n")
	buf.WriteString("set -e\n\n")
	buf.WriteString("ockit catalog\n")
	fmt.Fprintf(&buf, "git add %q\n", output)
	return buf.Bytes()
}

// HookPath returns the pre-commit hook location for the repository
// containing dir.
func HookPath(dir string) (string, error) {
	gitDir, err := git.GitDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

// Check reports the state of the repository's pre-commit hook and its
// path.
func Check(dir string) (Status, string, error) {
	path, err := HookPath(dir)
	if err != nil {
		return StatusMissing, "", err
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return StatusMissing, path, nil
	}
	if err != nil {
		return StatusMissing, path, errors.Wrap(err, "reading pre-commit hook")
	}
	if bytes.Contains(content, []byte(Marker)) {
		return StatusOurs, path, nil
	}
	return StatusForeign, path, nil
}

// Install writes the pre-commit hook for the repository containing dir,
// staging output after regeneration. Reinstalling over our own hook is
// always allowed; a foreign hook is only replaced with force.
func Install(dir, output string, force bool) (string, error) {
	status, path, err := Check(dir)
	if err != nil {
		return "", err
	}
	if status == StatusForeign && !force {
		return "", errors.Wrapf(errors.ErrAlreadyExists, "a pre-commit hook not managed by ockit exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "creating hooks directory")
	}
	if err := os.WriteFile(path, Script(output), 0o755); err != nil {
		return "", errors.Wrap(err, "writing pre-commit hook")
	}
	// WriteFile only applies the mode on create.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", errors.Wrap(err, "marking pre-commit hook executable")
	}
	return path, nil
}

// Uninstall removes the pre-commit hook when ockit installed it. Returns
// false when no hook exists, and an error when the hook is foreign.
func Uninstall(dir string) (bool, error) {
	status, path, err := Check(dir)
	if err != nil {
		return false, err
	}
	switch status {
	case StatusMissing:
		return false, nil
	case StatusForeign:
		return false, errors.Newf("refusing to remove a pre-commit hook ockit did not install: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return false, errors.Wrap(err, "removing pre-commit hook")
	}
	return true, nil
}

// Fresh reports whether the installed hook matches what Install would
// write for output. A missing or foreign hook is never fresh.
func Fresh(dir, output string) (bool, error) {
	status, path, err := Check(dir)
	if err != nil {
		return false, err
	}
	if status != StatusOurs {
		return false, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(err, "reading pre-commit hook")
	}
	return bytes.Equal(content, Script(output)), nil
}

// Package git shells out to the git binary for cloning catalog sources
// and locating repository paths for hook management.
package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

// allowedSchemes lists the URL schemes git may be asked to clone.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ssh":   true,
	"git":   true,
	"file":  true,
}

// scpLikeRegex matches scp-style remotes such as git@github.com:user/repo.git.
// The .git suffix is mandatory so bare hostnames and option-like strings
// never match.
var scpLikeRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+:[A-Za-z0-9._~/-]+\.git$`)

// IsURL reports whether s looks like a git remote rather than a local path.
// It is a cheap syntactic check for routing; use ValidateURL before handing
// the string to the git binary.
func IsURL(s string) bool {
	return strings.Contains(s, "://") ||
		strings.HasSuffix(s, ".git") ||
		strings.HasPrefix(s, "git@")
}

// ValidateURL rejects clone sources that git could misinterpret as options
// or reach over an unexpected transport. Only whitelisted schemes and
// scp-like remotes ending in .git pass.
func ValidateURL(s string) error {
	if s == "" {
		return errors.New("empty git URL")
	}
	if strings.HasPrefix(s, "-") {
		return errors.Newf("git URL cannot start with a dash: %s", s)
	}
	if scheme, _, ok := strings.Cut(s, "://"); ok {
		if !allowedSchemes[strings.ToLower(scheme)] {
			return errors.Newf("unsupported git URL scheme %q", scheme)
		}
		return nil
	}
	if scpLikeRegex.MatchString(s) {
		return nil
	}
	return errors.Newf("invalid git URL: %s", s)
}

// Clone clones url into dest, shallow when depth > 0. Progress streams to
// the caller's terminal, and stdin stays connected for interactive
// authentication.
func Clone(url, dest string, depth int) error {
	if err := ValidateURL(url); err != nil {
		return err
	}

	args := []string{"clone"}
	if depth > 0 {
		args = append(args, fmt.Sprintf("--depth=%d", depth))
	}
	args = append(args, "--", url, dest)

	cmd := exec.Command("git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git clone failed")
	}
	return nil
}

// RepoRoot returns the absolute path of the working tree containing dir.
func RepoRoot(dir string) (string, error) {
	out, err := output(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.Wrapf(err, "not a git repository: %s", dir)
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the absolute path of the .git directory for the repository
// containing dir. Worktrees and submodules resolve through their gitdir
// indirection.
func GitDir(dir string) (string, error) {
	out, err := output(dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", errors.Wrapf(err, "not a git repository: %s", dir)
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether dir is inside a git working tree.
func IsRepo(dir string) bool {
	_, err := RepoRoot(dir)
	return err == nil
}

func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Newf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

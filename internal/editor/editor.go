// Package editor launches the user's preferred text editor on a definition file.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

// Open launches the editor on path and blocks until it exits. The editor
// inherits the terminal so full-screen editors work.
func Open(path string) error {
	name, args := Command()

	cmd := exec.Command(name, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", name)
	}

	return nil
}

// Command returns the editor binary and any arguments baked into the
// environment value, so settings like EDITOR="code --wait" are honored.
// Fallback chain: $EDITOR, $VISUAL, nano if installed, vi.
func Command() (string, []string) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			fields := strings.Fields(value)
			return fields[0], fields[1:]
		}
	}

	// nano is friendlier for people who never learned vi keybindings.
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano", nil
	}

	return "vi", nil
}

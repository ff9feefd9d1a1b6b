package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommand_PrefersEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	name, args := Command()
	if name != "nvim" {
		t.Errorf("Command() name = %q, want %q", name, "nvim")
	}
	if len(args) != 0 {
		t.Errorf("Command() args = %v, want none", args)
	}
}

func TestCommand_FallsBackToVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code --wait")

	name, args := Command()
	if name != "code" {
		t.Errorf("Command() name = %q, want %q", name, "code")
	}
	if len(args) != 1 || args[0] != "--wait" {
		t.Errorf("Command() args = %v, want [--wait]", args)
	}
}

func TestCommand_SplitsEditorArguments(t *testing.T) {
	t.Setenv("EDITOR", "emacsclient -t -a vim")
	t.Setenv("VISUAL", "")

	name, args := Command()
	if name != "emacsclient" {
		t.Errorf("Command() name = %q, want %q", name, "emacsclient")
	}
	want := []string{"-t", "-a", "vim"}
	if len(args) != len(want) {
		t.Fatalf("Command() args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Command() args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestCommand_BlankEnvFallsThrough(t *testing.T) {
	t.Setenv("EDITOR", "   ")
	t.Setenv("VISUAL", "")

	name, _ := Command()

	// nano wins when installed, vi otherwise.
	if _, err := exec.LookPath("nano"); err == nil {
		if name != "nano" {
			t.Errorf("Command() name = %q, want %q", name, "nano")
		}
	} else if name != "vi" {
		t.Errorf("Command() name = %q, want %q", name, "vi")
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping integration test on windows (uses shell script mock)")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	// A stand-in editor that records its arguments instead of opening anything.
	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EDITOR", mockEditor)

	targetFile := filepath.Join(tmpDir, "architect.md")
	if err := os.WriteFile(targetFile, []byte("---\nname: architect\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Open(targetFile); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), targetFile) {
		t.Errorf("mock editor received %q, want it to contain %q", string(got), targetFile)
	}
}

func TestOpen_MissingBinary(t *testing.T) {
	t.Setenv("EDITOR", "ockit-no-such-editor-54321")
	t.Setenv("VISUAL", "")

	if err := Open("unused.md"); err == nil {
		t.Error("Open() = nil, want error for a missing editor binary")
	}
}

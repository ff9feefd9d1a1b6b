package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/logging"
)

// resetInstallFlags restores the install command flags to their defaults.
func resetInstallFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		installAll = false
		installForce = false
		installNoBackup = false
		installGlobal = false
		installTarget = "."
		installFrom = ""
	})
}

func TestResolveInstallTarget_Project(t *testing.T) {
	resetInstallFlags(t)
	installTarget = "/some/project"

	target, err := resolveInstallTarget()
	if err != nil {
		t.Fatalf("resolveInstallTarget() error = %v", err)
	}
	if target.BaseDir != filepath.Join("/some/project", ".opencode") {
		t.Errorf("BaseDir = %q, want /some/project/.opencode", target.BaseDir)
	}
}

func TestResolveInstallTarget_Global(t *testing.T) {
	resetInstallFlags(t)
	installGlobal = true

	target, err := resolveInstallTarget()
	if err != nil {
		t.Fatalf("resolveInstallTarget() error = %v", err)
	}
	if target.Label != "global" {
		t.Errorf("Label = %q, want global", target.Label)
	}
}

func TestRunInstall_Tokens(t *testing.T) {
	resetInstallFlags(t)
	setSource(t, writeSourceTree(t))
	project := t.TempDir()
	installTarget = project
	installNoBackup = true

	var buf bytes.Buffer
	err := runInstallWithWriter(testCommand(t), []string{"agent:architect", "skill:planning"}, &buf)
	if err != nil {
		t.Fatalf("runInstallWithWriter() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "installed agent:architect") {
		t.Errorf("output missing agent line, got:\n%s", output)
	}
	if !strings.Contains(output, "installed skill:planning") {
		t.Errorf("output missing skill line, got:\n%s", output)
	}

	agentPath := filepath.Join(project, ".opencode", "agent", "architect.md")
	if _, err := os.Stat(agentPath); err != nil {
		t.Errorf("agent not installed at %s: %v", agentPath, err)
	}
	skillPath := filepath.Join(project, ".opencode", "skill", "planning", "SKILL.md")
	if _, err := os.Stat(skillPath); err != nil {
		t.Errorf("skill not installed at %s: %v", skillPath, err)
	}
}

func TestRunInstall_All(t *testing.T) {
	resetInstallFlags(t)
	setSource(t, writeSourceTree(t))
	project := t.TempDir()
	installTarget = project
	installNoBackup = true
	installAll = true

	var buf bytes.Buffer
	if err := runInstallWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("runInstallWithWriter() error = %v", err)
	}

	if got := strings.Count(buf.String(), "✓ installed"); got != 4 {
		t.Errorf("installed %d entities, want 4\nGot:\n%s", got, buf.String())
	}
	commandPath := filepath.Join(project, ".opencode", "commands", "create-skill.md")
	if _, err := os.Stat(commandPath); err != nil {
		t.Errorf("command not installed at %s: %v", commandPath, err)
	}
}

func TestRunInstall_RejectsPathTokens(t *testing.T) {
	resetInstallFlags(t)
	setSource(t, writeSourceTree(t))
	installTarget = t.TempDir()
	installNoBackup = true

	for _, token := range []string{"agents/architect.md", "./architect", "architect.md"} {
		var buf bytes.Buffer
		err := runInstallWithWriter(testCommand(t), []string{token}, &buf)
		if err == nil {
			t.Fatalf("token %q should be rejected", token)
		}
		if !strings.Contains(err.Error(), "not a selector") {
			t.Errorf("token %q: error = %q", token, err.Error())
		}
	}
}

func TestRunInstall_ConflictWithoutForce(t *testing.T) {
	resetInstallFlags(t)
	setSource(t, writeSourceTree(t))
	project := t.TempDir()
	installTarget = project
	installNoBackup = true

	var buf bytes.Buffer
	if err := runInstallWithWriter(testCommand(t), []string{"agent:architect"}, &buf); err != nil {
		t.Fatalf("first install: %v", err)
	}

	err := runInstallWithWriter(testCommand(t), []string{"agent:architect"}, &buf)
	if err == nil {
		t.Fatal("second install should refuse to overwrite")
	}
	if !errors.Is(err, errors.ErrAlreadyExists) {
		t.Errorf("error = %v, want ErrAlreadyExists", err)
	}
	if !strings.Contains(err.Error(), "architect") {
		t.Errorf("error = %q, should name the conflicting entity", err.Error())
	}
}

func TestRunInstall_ForceOverwrites(t *testing.T) {
	resetInstallFlags(t)
	source := writeSourceTree(t)
	setSource(t, source)
	project := t.TempDir()
	installTarget = project
	installNoBackup = true

	var buf bytes.Buffer
	if err := runInstallWithWriter(testCommand(t), []string{"agent:architect"}, &buf); err != nil {
		t.Fatalf("first install: %v", err)
	}

	writeTestFile(t, filepath.Join(source, "agents", "architect.md"),
		"---\ndescription: Updated architect\n---\n\nNew content.\n")

	installForce = true
	if err := runInstallWithWriter(testCommand(t), []string{"agent:architect"}, &buf); err != nil {
		t.Fatalf("forced install: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(project, ".opencode", "agent", "architect.md"))
	if err != nil {
		t.Fatalf("reading installed file: %v", err)
	}
	if !strings.Contains(string(data), "New content.") {
		t.Error("forced install should replace the file")
	}
}

func TestRunInstall_AllEmptySource(t *testing.T) {
	resetInstallFlags(t)
	setSource(t, t.TempDir())
	installTarget = t.TempDir()
	installNoBackup = true
	installAll = true

	var buf bytes.Buffer
	err := runInstallWithWriter(testCommand(t), nil, &buf)
	if err == nil {
		t.Fatal("installing --all from an empty tree should fail")
	}
	if !strings.Contains(err.Error(), "no entities found") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestResolveInstallSource_Directory(t *testing.T) {
	resetInstallFlags(t)
	dir := writeSourceTree(t)
	installFrom = dir

	root, cleanup, err := resolveInstallSource(testCommand(t), logging.ForTest(t))
	if err != nil {
		t.Fatalf("resolveInstallSource() error = %v", err)
	}
	defer cleanup()

	if root != dir {
		t.Errorf("root = %q, want %q", root, dir)
	}
}

func TestResolveInstallSource_BadPath(t *testing.T) {
	resetInstallFlags(t)
	installFrom = filepath.Join(t.TempDir(), "nope")

	_, _, err := resolveInstallSource(testCommand(t), logging.ForTest(t))
	if err == nil {
		t.Fatal("resolveInstallSource() should reject a missing path")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("error = %q", err.Error())
	}
}

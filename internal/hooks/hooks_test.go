package hooks

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	return dir
}

func TestScript(t *testing.T) {
	script := string(Script("catalog.yaml"))

	if !strings.HasPrefix(script, "#!/bin/sh\n") {
		t.Errorf("script missing shebang:\n%s", script)
	}
	if !strings.Contains(script, Marker) {
		t.Errorf("script missing marker line:\n%s", script)
	}
	if !strings.Contains(script, "ockit catalog\n") {
		t.Errorf("script missing catalog command:\n%s", script)
	}
	if !strings.Contains(script, `git add "catalog.yaml"`) {
		t.Errorf("script missing git add line:\n%s", script)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusMissing: "missing",
		StatusOurs:    "ours",
		StatusForeign: "foreign",
		Status(99):    "unknown",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

func TestHookLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := initRepo(t)

	status, _, err := Check(dir)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if status != StatusMissing {
		t.Fatalf("status = %v, want missing", status)
	}

	path, err := Install(dir, "catalog.json", false)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("installed hook missing: %v", err)
	}
	if info.Mode()&0o111 == 0 {
		t.Errorf("hook is not executable: %v", info.Mode())
	}

	status, _, err = Check(dir)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if status != StatusOurs {
		t.Fatalf("status = %v, want ours", status)
	}

	fresh, err := Fresh(dir, "catalog.json")
	if err != nil {
		t.Fatalf("Fresh() error = %v", err)
	}
	if !fresh {
		t.Error("freshly installed hook reported stale")
	}

	fresh, err = Fresh(dir, "catalog.yaml")
	if err != nil {
		t.Fatalf("Fresh() error = %v", err)
	}
	if fresh {
		t.Error("hook reported fresh for a different output file")
	}

	// Reinstalling over our own hook never needs force.
	if _, err := Install(dir, "catalog.yaml", false); err != nil {
		t.Fatalf("reinstall error = %v", err)
	}

	removed, err := Uninstall(dir)
	if err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if !removed {
		t.Error("Uninstall() removed nothing")
	}
	if status, _, _ := Check(dir); status != StatusMissing {
		t.Errorf("status after uninstall = %v, want missing", status)
	}
}

func TestInstall_ForeignHook_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := initRepo(t)

	path, err := HookPath(dir)
	if err != nil {
		t.Fatalf("HookPath() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho custom\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Install(dir, "catalog.json", false); !errors.Is(err, errors.ErrAlreadyExists) {
		t.Fatalf("Install() over a foreign hook error = %v, want ErrAlreadyExists", err)
	}

	if _, err := Uninstall(dir); err == nil {
		t.Fatal("Uninstall() removed a foreign hook")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("foreign hook no longer present: %v", err)
	}

	if _, err := Install(dir, "catalog.json", true); err != nil {
		t.Fatalf("forced Install() error = %v", err)
	}
	if status, _, _ := Check(dir); status != StatusOurs {
		t.Errorf("status after forced install = %v, want ours", status)
	}
}

func TestUninstall_Missing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	removed, err := Uninstall(initRepo(t))
	if err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if removed {
		t.Error("Uninstall() reported removal with no hook installed")
	}
}

func TestCheck_NotARepo(t *testing.T) {
	if _, _, err := Check(t.TempDir()); err == nil {
		t.Fatal("expected error outside a git repository")
	}
}

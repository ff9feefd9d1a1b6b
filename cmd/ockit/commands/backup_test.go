package commands

import (
	"bytes"
	"strings"
	"testing"
)

// resetBackupFlags restores the backup command flags to their defaults.
func resetBackupFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		backupTargetDir = ""
		backupGlobal = false
		backupListJSON = false
	})
}

func TestFlaggedBackupTarget_None(t *testing.T) {
	resetBackupFlags(t)

	_, ok, err := flaggedBackupTarget()
	if err != nil {
		t.Fatalf("flaggedBackupTarget() error = %v", err)
	}
	if ok {
		t.Error("no flags should resolve to no explicit target")
	}
}

func TestFlaggedBackupTarget_Project(t *testing.T) {
	resetBackupFlags(t)
	backupTargetDir = t.TempDir()

	label, ok, err := flaggedBackupTarget()
	if err != nil {
		t.Fatalf("flaggedBackupTarget() error = %v", err)
	}
	if !ok {
		t.Fatal("--target should resolve to an explicit target")
	}
	if label == "" {
		t.Error("label should not be empty")
	}
	if label == "global" {
		t.Error("a project target should not be labeled global")
	}
}

func TestFlaggedBackupTarget_Global(t *testing.T) {
	resetBackupFlags(t)
	backupGlobal = true

	label, ok, err := flaggedBackupTarget()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}
	if !ok {
		t.Fatal("--global should resolve to an explicit target")
	}
	if label != "global" {
		t.Errorf("label = %q, want global", label)
	}
}

func TestRunBackupRestore_RequiresTarget(t *testing.T) {
	resetBackupFlags(t)

	var buf bytes.Buffer
	err := runBackupRestoreWithWriter(nil, &buf)
	if err == nil {
		t.Fatal("restore without a target flag should fail")
	}
	if !strings.Contains(err.Error(), "explicit target") {
		t.Errorf("error = %q, want explicit target mention", err.Error())
	}
}

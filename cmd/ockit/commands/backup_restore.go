package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore files from a backup set",
	Long: `Restore files from a backup set to their original locations.

If no backup ID is given, the most recent set for the target is used. The
target must be named explicitly with --target or --global so files cannot be
restored to the wrong place by accident.

Every file in the set is verified against its recorded checksum before
anything is written. Existing files are overwritten and permissions are
preserved.`,
	Example: `  # Restore the most recent set for the current project
  ockit backup restore --target .

  # Restore a specific set for the global directory
  ockit backup restore 20260822T101500 --global

  # List available sets first
  ockit backup list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupRestore,
}

func runBackupRestore(_ *cobra.Command, args []string) error {
	return runBackupRestoreWithWriter(args, os.Stdout)
}

func runBackupRestoreWithWriter(args []string, w io.Writer) error {
	label, ok, err := flaggedBackupTarget()
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewUserError(
			errors.New("restore needs an explicit target"),
			"Pass --target <dir> or --global to pick whose files to restore")
	}

	mgr := backup.NewManager()

	var backupID string
	if len(args) > 0 {
		backupID = args[0]
	} else {
		manifests, err := mgr.List(label)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackups) {
				return errors.NewUserError(
					errors.Wrapf(backup.ErrNoBackups, "no backup sets for %s", label),
					"Run: ockit backup list")
			}
			return errors.Wrap(err, "listing backups")
		}
		backupID = manifests[0].ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", backupID)
	}

	manifest, err := mgr.Get(label, backupID)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackups) {
			return errors.NewUserError(
				errors.Wrapf(err, "getting backup %s", backupID),
				"Run: ockit backup list")
		}
		return errors.Wrapf(err, "getting backup %s", backupID)
	}

	fmt.Fprintf(w, "Restoring %d files from backup %s...\n", len(manifest.Files), backupID)

	if err := mgr.Restore(label, backupID); err != nil {
		return errors.Wrap(err, "restoring backup")
	}

	fmt.Fprintf(w, "%s✓ Restored %s from backup %s%s\n",
		colorGreen, label, backupID, colorReset)

	return nil
}

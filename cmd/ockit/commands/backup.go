package commands

import (
	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/install"
)

var (
	backupTargetDir string
	backupGlobal    bool
)

func init() {
	backupCmd.PersistentFlags().StringVarP(&backupTargetDir, "target", "t", "", "project directory whose backup sets to manage")
	backupCmd.PersistentFlags().BoolVarP(&backupGlobal, "global", "g", false, "manage backup sets of the global OpenCode directory")
	backupCmd.MarkFlagsMutuallyExclusive("global", "target")
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage install backups",
	Long: `Manage the backup sets ockit install creates before overwriting files.

Each set is filed under the install target it came from: "global" for the
user-wide OpenCode directory, or a label derived from the project directory.
Without --target or --global, list and prune cover every target that has at
least one set.`,
	Example: `  # List every backup set
  ockit backup list

  # Restore the most recent set for the current project
  ockit backup restore --target .

  # Drop sets beyond the retention count
  ockit backup prune`,
}

// backupTargets resolves the target labels a subcommand operates on.
// With no flags, every label that has at least one set.
func backupTargets(mgr *backup.Manager) ([]string, error) {
	if label, ok, err := flaggedBackupTarget(); err != nil {
		return nil, err
	} else if ok {
		return []string{label}, nil
	}
	targets, err := mgr.Targets()
	if err != nil {
		return nil, errors.Wrap(err, "listing backup targets")
	}
	return targets, nil
}

// flaggedBackupTarget returns the label selected by --global or --target,
// or ok=false when neither flag was given.
func flaggedBackupTarget() (label string, ok bool, err error) {
	if backupGlobal {
		target, err := install.GlobalTarget()
		if err != nil {
			return "", false, err
		}
		return target.Label, true, nil
	}
	if backupTargetDir != "" {
		return install.ProjectTarget(backupTargetDir).Label, true, nil
	}
	return "", false, nil
}

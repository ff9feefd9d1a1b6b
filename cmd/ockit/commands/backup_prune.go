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
	backupCmd.AddCommand(backupPruneCmd)
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove backup sets beyond the retention count",
	Long: `Remove old backup sets, keeping the newest ones up to the retention
count from configuration (backup.retention, default 10).

Without --target or --global, every target is pruned.`,
	Example: `  # Prune every target
  ockit backup prune

  # Prune only the current project's sets
  ockit backup prune --target .`,
	Args: cobra.NoArgs,
	RunE: runBackupPrune,
}

func runBackupPrune(_ *cobra.Command, _ []string) error {
	return runBackupPruneWithWriter(os.Stdout)
}

func runBackupPruneWithWriter(w io.Writer) error {
	conf := effectiveConfig()
	mgr := backup.NewManager(backup.WithRetention(conf.Backup.Retention))

	targets, err := backupTargets(mgr)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(w, "No backup sets to prune.")
		return nil
	}

	for _, target := range targets {
		manifests, err := mgr.List(target)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackups) {
				continue
			}
			return errors.Wrapf(err, "listing backups for %s", target)
		}

		removed := len(manifests) - mgr.Retention()
		if removed < 0 {
			removed = 0
		}
		if err := mgr.Prune(target); err != nil {
			return errors.Wrapf(err, "pruning backups for %s", target)
		}

		if removed == 0 {
			fmt.Fprintf(w, "%s: nothing to prune (%d sets, retention %d)\n",
				target, len(manifests), mgr.Retention())
			continue
		}
		fmt.Fprintf(w, "%s✓ Pruned %d sets for %s (retention %d)%s\n",
			colorGreen, removed, target, mgr.Retention(), colorReset)
	}

	return nil
}

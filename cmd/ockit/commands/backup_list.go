package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "output in JSON format")
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup sets",
	Long: `List backup sets grouped by install target, most recent first.

By default every target with at least one set is shown. Use --target or
--global to limit the listing to one target.`,
	Example: `  # List all backup sets
  ockit backup list

  # List sets for the global OpenCode directory
  ockit backup list --global

  # Output as JSON
  ockit backup list --json`,
	Args: cobra.NoArgs,
	RunE: runBackupList,
}

// backupTargetOutput represents one target's sets in JSON output.
type backupTargetOutput struct {
	Target  string            `json:"target"`
	Backups []backupSetOutput `json:"backups"`
}

// backupSetOutput represents a single backup set in JSON output.
type backupSetOutput struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FileCount   int       `json:"file_count"`
	ToolVersion string    `json:"tool_version"`
}

func runBackupList(_ *cobra.Command, _ []string) error {
	return runBackupListWithWriter(os.Stdout)
}

func runBackupListWithWriter(w io.Writer) error {
	mgr := backup.NewManager()
	targets, err := backupTargets(mgr)
	if err != nil {
		return err
	}

	if backupListJSON {
		return outputBackupListJSON(w, targets, mgr)
	}
	return outputBackupListTabular(w, targets, mgr)
}

func outputBackupListJSON(w io.Writer, targets []string, mgr *backup.Manager) error {
	output := make([]backupTargetOutput, 0, len(targets))

	for _, target := range targets {
		manifests, err := mgr.List(target)
		if err != nil && !errors.Is(err, backup.ErrNoBackups) {
			return errors.Wrapf(err, "listing backups for %s", target)
		}

		sets := make([]backupSetOutput, len(manifests))
		for i, m := range manifests {
			sets[i] = backupSetOutput{
				ID:          m.ID,
				CreatedAt:   m.CreatedAt,
				FileCount:   len(m.Files),
				ToolVersion: m.ToolVersion,
			}
		}

		output = append(output, backupTargetOutput{
			Target:  target,
			Backups: sets,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputBackupListTabular(w io.Writer, targets []string, mgr *backup.Manager) error {
	hasBackups := false

	for i, target := range targets {
		manifests, err := mgr.List(target)
		if err != nil && !errors.Is(err, backup.ErrNoBackups) {
			return errors.Wrapf(err, "listing backups for %s", target)
		}

		if len(manifests) > 0 {
			hasBackups = true
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%sTarget: %s%s\n", colorCyan+colorBold, target, colorReset)

		if len(manifests) == 0 {
			fmt.Fprintf(w, "  %s(no backup sets)%s\n", colorGray, colorReset)
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %sID%s\t%sCREATED%s\t%sFILES%s\t%sVERSION%s\n",
			colorBold, colorReset,
			colorBold, colorReset,
			colorBold, colorReset,
			colorBold, colorReset)

		for _, m := range manifests {
			fmt.Fprintf(tw, "  %s%s%s\t%s\t%d\t%s\n",
				colorGreen, m.ID, colorReset,
				m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				len(m.Files),
				m.ToolVersion)
		}
		tw.Flush()
	}

	if !hasBackups {
		if len(targets) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "No backup sets found")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Sets are created automatically when ockit install overwrites files.")
	}

	return nil
}

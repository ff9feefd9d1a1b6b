package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/editor"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <token|path>",
	Short: "Open an entity's definition file in your editor",
	Long: `Resolve an entity and open its definition file in your preferred
editor ($EDITOR, then $VISUAL, then nano, then vi).

The argument may be a selector token (agent:architect), a bare name, or a
path to a definition file.`,
	Example: `  ockit edit agent:architect
  ockit edit planning
  ockit edit agents/architect.md`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(c *cobra.Command, args []string) error {
	path, err := resolveEditPath(c, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Location: %s\n", path)
	return editor.Open(path)
}

// resolveEditPath treats the argument as a file path first, then as a
// selector token against the source tree.
func resolveEditPath(c *cobra.Command, target string) (string, error) {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(target)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s", target)
		}
		return abs, nil
	}

	scanner := scannerFromConfig(c)
	match, err := resolveToken(scanner, effectiveSource(), target)
	if err != nil {
		return "", err
	}
	return match.Entry.Path, nil
}

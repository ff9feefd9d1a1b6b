package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/scaffold"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"rewrite the starter config file if it exists")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold an empty source tree",
	Long: `Create the agents/, skills/, and commands/ directories plus a
starter config.yaml with the documented defaults.

Existing directories are left alone; an existing config.yaml is only
rewritten with --force.`,
	Example: `  # Initialize the current directory
  ockit init

  # Initialize a dedicated tree
  ockit init ~/dotfiles/opencode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	return runInitWithWriter(args, os.Stdout)
}

// runInitWithWriter allows injecting a writer for testing.
func runInitWithWriter(args []string, w io.Writer) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	created, err := scaffold.Init(dir, initForce)
	if err != nil {
		return err
	}

	if len(created) == 0 {
		fmt.Fprintf(w, "Source tree in %s is already initialized.\n", dir)
		return nil
	}

	for _, path := range created {
		fmt.Fprintf(w, "%s✓ created %s%s\n", colorGreen, path, colorReset)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  ockit new agent:<name>   scaffold your first agent")
	fmt.Fprintln(w, "  ockit catalog            generate the catalog index")
	fmt.Fprintln(w, "  ockit hooks install      keep it fresh on every commit")
	return nil
}

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/scaffold"
)

var (
	newDescription string
	newReferences  bool
	newForce       bool
)

func init() {
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "",
		"description placed in the frontmatter")
	newCmd.Flags().BoolVar(&newReferences, "references", false,
		"create a references/ directory (skills only)")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false,
		"overwrite an existing definition")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <token>",
	Short: "Scaffold a new agent, skill, or command definition",
	Long: `Create a skeleton definition file in the source tree.

The token must carry an explicit category: agents become
agents/<name>.md, commands become commands/<name>.md, and skills become
skills/<name>/SKILL.md. Names follow the catalog naming rules
(lowercase alphanumerics separated by single hyphens).`,
	Example: `  ockit new agent:code-reviewer -d "Reviews pull requests"
  ockit new skill:data-wrangling --references
  ockit new command:deploy`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(_ *cobra.Command, args []string) error {
	return runNewWithWriter(args, os.Stdout)
}

// runNewWithWriter allows injecting a writer for testing.
func runNewWithWriter(args []string, w io.Writer) error {
	sel, err := catalog.ParseSelector(args[0])
	if err != nil {
		return errors.NewUserError(err, "Tokens look like agent:architect, skill:planning, or command:create-skill")
	}

	path, err := scaffold.New(effectiveSource(), sel, scaffold.Options{
		Description: newDescription,
		References:  newReferences,
		Force:       newForce,
	})
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrAlreadyExists):
			return errors.NewUserError(err, "Re-run with --force to overwrite it")
		case errors.Is(err, errors.ErrInvalidSelector):
			return errors.NewUserError(err, "Qualify the name: agent:<name>, skill:<name>, or command:<name>")
		case errors.Is(err, errors.ErrInvalidName):
			return errors.NewUserError(err, "Names are lowercase alphanumerics separated by single hyphens")
		}
		return err
	}

	fmt.Fprintf(w, "%s✓ Created %s%s\n", colorGreen, path, colorReset)
	fmt.Fprintf(w, "Edit it with: ockit edit %s\n", sel)
	return nil
}

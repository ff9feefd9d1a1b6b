package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/validate"
)

var (
	validateJSON   bool
	validateStrict bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"treat warnings as failures")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [token...]",
	Short: "Validate entity names and frontmatter",
	Long: `Check definitions against the catalog rules.

Every entity's name must be lowercase alphanumerics separated by single
hyphens. Skills additionally require frontmatter with a description, and
their name field (when present) must equal the directory name. Unknown
frontmatter keys are reported as notes.

With no tokens the whole source tree is validated; tokens restrict the
run to the named entities.`,
	Example: `  # Validate the whole tree
  ockit validate

  # Validate one skill, failing on warnings too
  ockit validate skill:planning --strict

  # Machine-readable report
  ockit validate --json`,
	RunE: runValidate,
}

func runValidate(c *cobra.Command, args []string) error {
	return runValidateWithWriter(c, args, os.Stdout)
}

// runValidateWithWriter allows injecting a writer for testing.
func runValidateWithWriter(c *cobra.Command, args []string, w io.Writer) error {
	source := effectiveSource()
	scanner := scannerFromConfig(c)

	result := &validate.Result{}
	if len(args) == 0 {
		treeResult, err := validate.Tree(scanner, source)
		if err != nil {
			return errors.Wrap(err, "validating source tree")
		}
		result = treeResult
	} else {
		matches, err := resolveTokens(scanner, source, args)
		if err != nil {
			return err
		}
		for _, m := range matches {
			result.Merge(validate.File(m.Category, m.Entry.Name, m.Entry.Path))
		}
	}

	format := validate.FormatText
	if validateJSON {
		format = validate.FormatJSON
	}
	if err := validate.NewReporter(w, format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewUserError(errors.New("validation failed"), "Fix the errors above and re-run")
	}
	if validateStrict && result.HasWarnings() {
		return errors.NewUserError(errors.New("validation produced warnings (strict mode)"),
			"Fix the warnings above or drop --strict")
	}
	return nil
}

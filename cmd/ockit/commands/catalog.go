package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/logging"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/watch"
)

var (
	catalogOutput  string
	catalogFormat  string
	catalogCheck   bool
	catalogWatch   bool
	catalogRecurse bool
	catalogExclude []string
)

func init() {
	catalogCmd.Flags().StringVarP(&catalogOutput, "output", "o", "",
		"catalog file path (default: catalog.<format> in the working directory)")
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "",
		"catalog format: json, yaml, toml")
	catalogCmd.Flags().BoolVar(&catalogCheck, "check", false,
		"verify the catalog is current instead of writing it")
	catalogCmd.Flags().BoolVar(&catalogWatch, "watch", false,
		"regenerate on source tree changes until interrupted")
	catalogCmd.Flags().BoolVar(&catalogRecurse, "recurse", false,
		"discover nested skill directories")
	catalogCmd.Flags().StringSliceVar(&catalogExclude, "exclude", nil,
		"glob patterns to skip, relative to the category root")
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [source]",
	Short: "Generate the catalog index for a source tree",
	Long: `Scan a source tree and write its catalog index.

The catalog lists every agent, skill, and command with its description,
grouped per category, plus a generation timestamp. With no arguments the
current directory is scanned and catalog.json written next to it.

The output file is written atomically: a failed run never leaves a
half-written catalog behind.

Modes:
  --check   Regenerate in memory and diff against the existing file
            (timestamp ignored). Exits non-zero when stale.
  --watch   Keep regenerating as definition files change.`,
	Example: `  # Scan . and write catalog.json
  ockit catalog

  # Scan a different tree into a YAML catalog
  ockit catalog ~/dotfiles/opencode --format yaml -o index.yaml

  # CI freshness gate
  ockit catalog --check

  See Also: ockit validate, ockit hooks install`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func runCatalog(c *cobra.Command, args []string) error {
	return runCatalogWithWriter(c, args, os.Stdout)
}

func runCatalogWithWriter(c *cobra.Command, args []string, w io.Writer) error {
	source := effectiveSource()
	if len(args) == 1 {
		source = args[0]
	}

	info, err := os.Stat(source)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "resolving source directory"), "Run: ockit init")
	}
	if !info.IsDir() {
		return errors.NewUserError(errors.Newf("source %s is not a directory", source),
			"Point --source at the tree root")
	}

	format, err := effectiveFormat(catalogFormat)
	if err != nil {
		return err
	}
	output := effectiveOutput(catalogOutput, format)

	scanner := catalogScanner(c)

	if catalogCheck {
		return runCatalogCheck(scanner, source, output, format, w)
	}
	if catalogWatch {
		return runCatalogWatch(c, scanner, source, output, format, w)
	}
	return generateAndWrite(scanner, source, output, format, w)
}

// catalogScanner builds the scanner for the catalog command, letting the
// --recurse and --exclude flags override the config file when set.
func catalogScanner(c *cobra.Command) *catalog.Scanner {
	conf := effectiveConfig()

	recurse := conf.Recurse
	if c.Flags().Changed("recurse") {
		recurse = catalogRecurse
	}

	exclude := conf.Exclude
	if c.Flags().Changed("exclude") {
		exclude = catalogExclude
	}

	return catalog.NewScannerWithLogger(logging.FromContext(c.Context()), catalog.Options{
		Recurse: recurse,
		Exclude: exclude,
	})
}

func generateAndWrite(s *catalog.Scanner, source, output string, format catalog.Format, w io.Writer) error {
	doc := s.Generate(source)
	if err := doc.WriteFile(output, format); err != nil {
		return errors.NewSystemError(err, "Check that the output directory exists and is writable")
	}

	fmt.Fprintf(w, "%s✓ Cataloged %d agents, %d skills, %d commands%s -> %s\n",
		colorGreen, len(doc.Agents), len(doc.Skills), len(doc.Commands), colorReset, output)
	return nil
}

func runCatalogCheck(s *catalog.Scanner, source, output string, format catalog.Format, w io.Writer) error {
	fresh := s.Generate(source)

	current, diff, err := catalog.Check(fresh, output, format)
	if err != nil {
		return errors.Wrap(err, "checking catalog")
	}
	if current {
		fmt.Fprintf(w, "%s✓ %s is up to date%s\n", colorGreen, output, colorReset)
		return nil
	}

	if diff != "" {
		fmt.Fprint(w, diff)
	}
	return errors.NewUserError(
		errors.Wrapf(errors.ErrCatalogStale, "%s does not match the source tree", output),
		"Run: ockit catalog")
}

func runCatalogWatch(c *cobra.Command, s *catalog.Scanner, source, output string, format catalog.Format, w io.Writer) error {
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := watch.Run(ctx, source, func() error {
		return generateAndWrite(s, source, output, format, w)
	}, watch.Options{Logger: logging.FromContext(c.Context())})

	// Interruption is how the watch ends, not a failure.
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

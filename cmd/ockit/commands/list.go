package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List entities in the source tree",
	Long: `List the agents, skills, and commands discovered in the source tree.

With a category argument (agent, skill, or command, singular or plural),
only that category is listed.`,
	Example: `  # List everything
  ockit list

  # List only skills
  ockit list skills

  # Output as JSON
  ockit list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

// entryJSON represents an entity in JSON output format.
type entryJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runList(c *cobra.Command, args []string) error {
	return runListWithWriter(c, args, os.Stdout)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(c *cobra.Command, args []string, w io.Writer) error {
	source := effectiveSource()
	scanner := scannerFromConfig(c)

	cats := catalog.Categories
	if len(args) == 1 {
		cat, err := catalog.ParseCategory(args[0])
		if err != nil {
			return errors.NewUserError(err, "Valid categories: agent, skill, command")
		}
		cats = []catalog.Category{cat}
	}

	if listJSON {
		return outputListJSON(scanner, source, cats, w)
	}
	return outputListTabular(scanner, source, cats, w)
}

func outputListJSON(s *catalog.Scanner, source string, cats []catalog.Category, w io.Writer) error {
	output := make(map[string][]entryJSON, len(cats))

	for _, cat := range cats {
		entries, err := s.ScanCategory(source, cat)
		if err != nil {
			return errors.Wrapf(err, "scanning %s", cat.Plural())
		}

		infos := make([]entryJSON, len(entries))
		for i, e := range entries {
			infos[i] = entryJSON{
				Name:        e.Name,
				Description: e.Description,
			}
		}
		output[cat.Plural()] = infos
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputListTabular(s *catalog.Scanner, source string, cats []catalog.Category, w io.Writer) error {
	total := 0

	for i, cat := range cats {
		entries, err := s.ScanCategory(source, cat)
		if err != nil {
			return errors.Wrapf(err, "scanning %s", cat.Plural())
		}
		total += len(entries)

		// Blank line between categories (but not before first)
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, cat.Plural(), colorReset)

		if len(entries) == 0 {
			fmt.Fprintf(w, "  %s(none)%s\n", colorGray, colorReset)
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %sNAME%s\t%sDESCRIPTION%s\n", colorBold, colorReset, colorBold, colorReset)

		for _, e := range entries {
			desc := truncate(e.Description, 80)
			fmt.Fprintf(tw, "  %s%s%s\t%s\n", colorGreen, e.Name, colorReset, desc)
		}
		tw.Flush()
	}

	if total == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No entities found. Scaffold one with: ockit new agent:<name>")
	}

	return nil
}

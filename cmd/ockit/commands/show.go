package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/fileutil"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/frontmatter"
)

const showBodyPreviewLines = 10

var (
	showJSON bool
	showFull bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showFull, "full", false, "Show the complete body (default truncated)")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <token>",
	Short: "Display one entity's metadata and body",
	Long: `Display an entity's frontmatter metadata and a preview of its body.

The token may be qualified (agent:architect) or a bare name, which is
resolved against all categories.`,
	Example: `  ockit show agent:architect
  ockit show planning --full
  ockit show command:create-skill --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// showDetail holds the unified entity information for display.
type showDetail struct {
	Category    string         `json:"category"`
	Name        string         `json:"name"`
	Path        string         `json:"path"`
	Description string         `json:"description,omitempty"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Body        string         `json:"body,omitempty"`
}

func runShow(c *cobra.Command, args []string) error {
	return runShowWithWriter(c, args[0], os.Stdout)
}

// runShowWithWriter allows injecting a writer for testing.
func runShowWithWriter(c *cobra.Command, token string, w io.Writer) error {
	source := effectiveSource()
	scanner := scannerFromConfig(c)

	match, err := resolveToken(scanner, source, token)
	if err != nil {
		return err
	}

	detail, err := loadShowDetail(match.Entry.Name, match.Entry.Path)
	if err != nil {
		return err
	}
	detail.Category = string(match.Category)
	detail.Description = match.Entry.Description

	if !showFull {
		detail.Body = previewBody(detail.Body, showBodyPreviewLines)
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}
	return outputShowText(w, detail)
}

func loadShowDetail(name, path string) (*showDetail, error) {
	matter, body, err := frontmatter.ParseFile[map[string]any](path)
	if err != nil {
		// Agents and commands may omit frontmatter entirely.
		if errors.Is(err, frontmatter.ErrNoFrontmatter) {
			raw, readErr := fileutil.ReadFileWithLimit(path)
			if readErr != nil {
				return nil, errors.Wrapf(readErr, "reading %s", path)
			}
			return &showDetail{Name: name, Path: path, Body: string(raw)}, nil
		}
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	detail := &showDetail{
		Name: name,
		Path: path,
		Body: body,
	}
	if matter != nil {
		detail.Frontmatter = *matter
	}
	return detail, nil
}

// previewBody keeps the first n lines of body.
func previewBody(body string, n int) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= n {
		return body
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}

func outputShowText(w io.Writer, detail *showDetail) error {
	fmt.Fprintf(w, "%s%s%s %s(%s)%s\n", colorBold, detail.Name, colorReset, colorCyan, detail.Category, colorReset)
	fmt.Fprintf(w, "%sPath:%s %s\n", colorGray, colorReset, detail.Path)
	if detail.Description != "" {
		fmt.Fprintf(w, "%sDescription:%s %s\n", colorGray, colorReset, detail.Description)
	}

	if len(detail.Frontmatter) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%sFrontmatter:%s\n", colorBold, colorReset)

		keys := make([]string, 0, len(detail.Frontmatter))
		for k := range detail.Frontmatter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, detail.Frontmatter[k])
		}
	}

	if strings.TrimSpace(detail.Body) != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%sBody:%s\n", colorBold, colorReset)
		fmt.Fprintln(w, detail.Body)
	}

	return nil
}

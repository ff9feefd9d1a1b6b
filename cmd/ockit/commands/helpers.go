package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/cli/prompt"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/config"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/logging"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// effectiveConfig returns the loaded configuration, or documented defaults
// when no config file was read yet.
func effectiveConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.Default()
}

// effectiveSource resolves the source tree root: the --source flag wins,
// then the config file, then the current directory.
func effectiveSource() string {
	if sourceFlag != "" {
		return sourceFlag
	}
	if src := effectiveConfig().Source; src != "" {
		return src
	}
	return "."
}

// effectiveFormat resolves the catalog format from a command flag and the
// config file.
func effectiveFormat(flagValue string) (catalog.Format, error) {
	raw := flagValue
	if raw == "" {
		raw = effectiveConfig().Format
	}
	if raw == "" {
		return catalog.FormatJSON, nil
	}
	format, err := catalog.ParseFormat(raw)
	if err != nil {
		return "", errors.NewUserError(err, "Valid formats: json, yaml, toml")
	}
	return format, nil
}

// effectiveOutput resolves the catalog output path. An explicit flag wins,
// then the config file; otherwise the filename derives from the format.
func effectiveOutput(flagValue string, format catalog.Format) string {
	if flagValue != "" {
		return flagValue
	}
	if out := effectiveConfig().Output; out != "" {
		return out
	}
	return format.Filename()
}

// scannerFromConfig builds a scanner honoring the configured recursion and
// exclusion settings, logging through the command's context logger.
func scannerFromConfig(c *cobra.Command) *catalog.Scanner {
	conf := effectiveConfig()
	return catalog.NewScannerWithLogger(logging.FromContext(c.Context()), catalog.Options{
		Recurse: conf.Recurse,
		Exclude: conf.Exclude,
	})
}

// interactiveTerminal reports whether both stdin and stdout are terminals,
// the precondition for any prompt or picker.
func interactiveTerminal() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

// resolveToken resolves one selector token to exactly one entity. A bare
// name hitting several categories is disambiguated interactively on a
// terminal and rejected with a hint otherwise.
func resolveToken(s *catalog.Scanner, root, token string) (*catalog.Match, error) {
	sel, err := catalog.ParseSelector(token)
	if err != nil {
		return nil, errors.NewUserError(err, "Tokens look like agent:architect, skill:planning, or command:create-skill")
	}

	matches, err := s.Resolve(root, sel)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "%q did not match any agent, skill, or command in %s", token, root),
			"Run: ockit list")
	case 1:
		return &matches[0], nil
	}

	if !interactiveTerminal() {
		return nil, errors.NewUserError(
			errors.Newf("%q is ambiguous: matches %s", token, selectorList(matches)),
			"Qualify the token with its category")
	}

	return prompt.NewSelector().PickMatch(token, matches)
}

// resolveTokens resolves a token list for commands operating on several
// entities at once.
func resolveTokens(s *catalog.Scanner, root string, tokens []string) ([]catalog.Match, error) {
	matches := make([]catalog.Match, 0, len(tokens))
	for _, token := range tokens {
		m, err := resolveToken(s, root, token)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, nil
}

// allMatches scans the whole tree and returns every entity as a match, in
// catalog order.
func allMatches(s *catalog.Scanner, root string) []catalog.Match {
	var matches []catalog.Match
	doc := s.Generate(root)
	for _, cat := range catalog.Categories {
		for _, e := range doc.Entries(cat) {
			matches = append(matches, catalog.Match{Category: cat, Entry: e})
		}
	}
	return matches
}

// selectorList renders matches as a comma-separated selector list for
// error messages.
func selectorList(matches []catalog.Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Selector().String()
	}
	return strings.Join(parts, ", ")
}

// Package scaffold creates new definition files and bootstraps empty
// source trees.
package scaffold

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/validate"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/frontmatter"
)

// Options configures New.
type Options struct {
	// Description pre-fills the frontmatter description. Empty gets a
	// category-appropriate placeholder.
	Description string

	// References also creates a references/ directory next to a new
	// skill's SKILL.md.
	References bool

	// Force overwrites an existing definition file.
	Force bool
}

// New scaffolds the definition file for sel under root and returns its
// path. The selector must carry an explicit category, and the name must
// pass the naming rules; for agents and commands the name becomes the
// filename, so even warning-level naming issues block creation here.
func New(root string, sel catalog.Selector, opts Options) (string, error) {
	if sel.Category == "" {
		return "", errors.Wrap(errors.ErrInvalidSelector, "an explicit category is required, e.g. agent:architect")
	}
	if result := validate.Name(sel.Category, sel.Name); len(result.Issues) > 0 {
		return "", errors.Wrapf(errors.ErrInvalidName, "%q: %s", sel.Name, result.Issues[0].Message)
	}

	dest := DefinitionPath(root, sel)
	if _, err := os.Stat(dest); err == nil && !opts.Force {
		return "", errors.Wrapf(errors.ErrAlreadyExists, "%s already exists", dest)
	}

	content, err := render(sel, opts.Description)
	if err != nil {
		return "", errors.Wrap(err, "generating template")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", errors.Wrap(err, "creating directory")
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", dest)
	}

	if sel.Category == catalog.CategorySkill && opts.References {
		refs := filepath.Join(filepath.Dir(dest), "references")
		if err := os.MkdirAll(refs, 0o755); err != nil {
			return "", errors.Wrap(err, "creating references directory")
		}
		if err := os.WriteFile(filepath.Join(refs, ".keep"), []byte{}, 0o644); err != nil {
			return "", errors.Wrap(err, "creating references/.keep")
		}
	}

	return dest, nil
}

// DefinitionPath returns where sel's definition file lives under root.
// Agents and commands are flat files named after the entity; skills get a
// directory (nested for slash-joined names) holding SKILL.md.
func DefinitionPath(root string, sel catalog.Selector) string {
	if sel.Category == catalog.CategorySkill {
		return filepath.Join(root, paths.SourceSkillsDir, filepath.FromSlash(sel.Name), "SKILL.md")
	}
	return filepath.Join(root, sel.Category.SourceDir(), sel.Name+".md")
}

func render(sel catalog.Selector, description string) ([]byte, error) {
	switch sel.Category {
	case catalog.CategoryAgent:
		if description == "" {
			description = "A helpful AI agent"
		}
		meta := struct {
			Description string `yaml:"description"`
		}{Description: description}
		body := fmt.Sprintf(`# %s Agent

%s

## Instructions

Your agent instructions go here.

<!-- Add your agent's system prompt below -->
`, formatTitle(sel.Name), description)
		return frontmatter.Format(meta, body)

	case catalog.CategoryCommand:
		if description == "" {
			description = "A helpful slash command"
		}
		meta := struct {
			Description string `yaml:"description"`
		}{Description: description}
		body := fmt.Sprintf(`# %s Command

%s

## Instructions

Your command instructions go here.

<!-- Add your command logic, prompts, and workflows below -->
`, formatTitle(sel.Name), description)
		return frontmatter.Format(meta, body)

	case catalog.CategorySkill:
		if description == "" {
			description = "A helpful AI skill"
		}
		// The frontmatter name must match the skill's directory, which
		// for nested names is the last slash segment.
		meta := struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
		}{Name: path.Base(sel.Name), Description: description}
		body := `# Instructions

You are a helpful assistant for [describe purpose].

## Guidelines

- Guideline 1
- Guideline 2

## Examples

When the user asks to [do something], you should...
`
		return frontmatter.Format(meta, body)
	}
	return nil, errors.Wrapf(errors.ErrInvalidSelector, "unknown category %q", sel.Category)
}

// formatTitle converts a hyphenated name to a title case string.
// e.g., "my-command" -> "My Command"
func formatTitle(name string) string {
	parts := strings.Split(path.Base(name), "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

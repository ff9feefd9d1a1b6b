package catalog

import (
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

// Category identifies one of the three entity kinds in the source tree.
type Category string

// Category constants.
const (
	CategoryAgent   Category = "agent"
	CategorySkill   Category = "skill"
	CategoryCommand Category = "command"
)

// Categories lists every category in catalog order. The catalog document
// always presents agents first, then skills, then commands.
var Categories = []Category{CategoryAgent, CategorySkill, CategoryCommand}

// ParseCategory accepts a category name in singular or plural form,
// case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "agent", "agents":
		return CategoryAgent, nil
	case "skill", "skills":
		return CategorySkill, nil
	case "command", "commands":
		return CategoryCommand, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidSelector, "unknown category %q (valid categories: agent, skill, command)", s)
	}
}

// Plural returns the category's plural form, which doubles as its key in the
// catalog document.
func (c Category) Plural() string {
	return string(c) + "s"
}

// SourceDir returns the category's directory name under the source root.
func (c Category) SourceDir() string {
	switch c {
	case CategoryAgent:
		return paths.SourceAgentsDir
	case CategorySkill:
		return paths.SourceSkillsDir
	case CategoryCommand:
		return paths.SourceCommandsDir
	}
	return string(c) + "s"
}

// Entry is one agent, skill, or command in the catalog. Name always comes
// from the file or directory basename, never from frontmatter, so the catalog
// key matches the selector used to address the entity on disk.
type Entry struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`

	// Path is the definition file's absolute or root-relative location at
	// scan time. It is not part of the catalog document.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// Catalog is the aggregated index of all discovered entities. The three
// category arrays are always present, encoding as [] rather than null when a
// category is empty.
type Catalog struct {
	Agents      []Entry `json:"agents" yaml:"agents" toml:"agents"`
	Skills      []Entry `json:"skills" yaml:"skills" toml:"skills"`
	Commands    []Entry `json:"commands" yaml:"commands" toml:"commands"`
	GeneratedAt string  `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
}

// Entries returns the catalog's entries for the given category.
func (c *Catalog) Entries(cat Category) []Entry {
	switch cat {
	case CategoryAgent:
		return c.Agents
	case CategorySkill:
		return c.Skills
	case CategoryCommand:
		return c.Commands
	}
	return nil
}

// Total returns the number of entries across all categories.
func (c *Catalog) Total() int {
	return len(c.Agents) + len(c.Skills) + len(c.Commands)
}

// normalize guarantees the category arrays are non-nil so an empty category
// encodes as [] rather than null.
func (c *Catalog) normalize() {
	if c.Agents == nil {
		c.Agents = []Entry{}
	}
	if c.Skills == nil {
		c.Skills = []Entry{}
	}
	if c.Commands == nil {
		c.Commands = []Entry{}
	}
}

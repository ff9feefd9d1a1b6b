package catalog

import (
	"time"
)

// Builder accumulates entries per category and assembles the final document.
// The generation timestamp is captured when the builder is created so it
// reflects the start of the run, not the moment of serialization.
type Builder struct {
	generatedAt time.Time
	agents      []Entry
	skills      []Entry
	commands    []Entry
}

// NewBuilder creates a Builder stamped with the current UTC time.
func NewBuilder() *Builder {
	return &Builder{generatedAt: time.Now().UTC()}
}

// Add appends one entry to the given category. Entries keep their insertion
// order.
func (b *Builder) Add(cat Category, e Entry) {
	switch cat {
	case CategoryAgent:
		b.agents = append(b.agents, e)
	case CategorySkill:
		b.skills = append(b.skills, e)
	case CategoryCommand:
		b.commands = append(b.commands, e)
	}
}

// AddAll appends entries to the given category in order.
func (b *Builder) AddAll(cat Category, entries []Entry) {
	for _, e := range entries {
		b.Add(cat, e)
	}
}

// Build assembles the catalog document. Category arrays are always non-nil.
func (b *Builder) Build() *Catalog {
	c := &Catalog{
		Agents:      b.agents,
		Skills:      b.skills,
		Commands:    b.commands,
		GeneratedAt: b.generatedAt.Format(time.RFC3339),
	}
	c.normalize()
	return c
}

// Generate scans the source tree rooted at root and assembles a complete
// catalog in the fixed category order. A category whose scan fails is logged
// and left empty; the remaining categories are unaffected.
func (s *Scanner) Generate(root string) *Catalog {
	b := NewBuilder()
	for _, cat := range Categories {
		entries, err := s.ScanCategory(root, cat)
		if err != nil {
			s.logger.Warn("failed to scan category",
				"category", cat,
				"error", err)
			continue
		}
		b.AddAll(cat, entries)
	}
	return b.Build()
}

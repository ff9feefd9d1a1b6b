package validate

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/frontmatter"
)

// maxNameLength is the maximum allowed length for entity names.
const maxNameLength = 64

// nameRegex validates a name segment: lowercase alphanumeric, single hyphens
// between segments, no start/end hyphen, no consecutive hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// knownKeys lists the frontmatter keys each category is expected to carry.
// Anything else is reported as an info-level note, never an error.
var knownKeys = map[catalog.Category][]string{
	catalog.CategoryAgent:   {"name", "description", "mode", "model", "temperature"},
	catalog.CategorySkill:   {"name", "description", "license", "compatibility", "metadata", "allowed-tools"},
	catalog.CategoryCommand: {"name", "description", "agent", "model"},
}

// Name checks an entity name against the naming rules: lowercase
// alphanumeric segments joined by single hyphens, at most 64 characters
// total. Nested skill names are checked slash segment by slash segment.
// Violations are errors for skills and warnings for agents and commands,
// whose names only mirror their filenames.
func Name(cat catalog.Category, name string) *Result {
	result := &Result{}
	entity := catalog.Selector{Category: cat, Name: name}.String()

	sev := SeverityWarning
	if cat == catalog.CategorySkill {
		sev = SeverityError
	}
	add := func(message string, value any) {
		result.Add(Issue{Severity: sev, Entity: entity, Field: "name", Message: message, Value: value})
	}

	if name == "" {
		add("name is required", nil)
		return result
	}
	if len(name) > maxNameLength {
		add("name exceeds maximum length of 64 characters", name)
	}

	for _, segment := range strings.Split(name, "/") {
		if nameRegex.MatchString(segment) {
			continue
		}
		msg := "name must be lowercase alphanumeric with single hyphens between segments"
		switch {
		case strings.HasPrefix(segment, "-") || strings.HasSuffix(segment, "-"):
			msg = "name cannot start or end with a hyphen"
		case strings.Contains(segment, "--"):
			msg = "name cannot contain consecutive hyphens"
		case strings.ToLower(segment) != segment:
			msg = "name must be lowercase"
		}
		add(msg, name)
	}

	return result
}

// File validates one definition file: the naming rules plus the category's
// frontmatter contract. Skills require frontmatter with a description and a
// name matching their directory; agents and commands may omit frontmatter
// entirely, at warning level.
func File(cat catalog.Category, name, path string) *Result {
	result := Name(cat, name)
	entity := catalog.Selector{Category: cat, Name: name}.String()

	f, err := os.Open(path)
	if err != nil {
		result.Add(Issue{
			Severity: SeverityError,
			Entity:   entity,
			Message:  "cannot read definition file",
			Context:  map[string]string{"path": path, "error": err.Error()},
		})
		return result
	}
	defer f.Close()

	matter, _, err := frontmatter.Parse[map[string]any](f)
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter):
		if cat == catalog.CategorySkill {
			result.Add(Issue{Severity: SeverityError, Entity: entity, Message: "frontmatter is required"})
		} else {
			result.Add(Issue{Severity: SeverityWarning, Entity: entity, Field: "description", Message: "description is missing"})
		}
		return result
	case errors.Is(err, frontmatter.ErrInvalidYAML):
		result.Add(Issue{
			Severity: SeverityError,
			Entity:   entity,
			Message:  "frontmatter is not valid YAML",
			Context:  map[string]string{"error": err.Error()},
		})
		return result
	case err != nil:
		result.Add(Issue{
			Severity: SeverityError,
			Entity:   entity,
			Message:  "cannot parse definition file",
			Context:  map[string]string{"error": err.Error()},
		})
		return result
	}

	var fields map[string]any
	if matter != nil {
		fields = *matter
	}

	checkDescription(result, cat, entity, fields)
	if cat == catalog.CategorySkill {
		checkSkillName(result, entity, fields, path)
	}
	checkUnknownKeys(result, cat, entity, fields)

	return result
}

// Tree validates every entity the scanner discovers under root.
func Tree(s *catalog.Scanner, root string) (*Result, error) {
	result := &Result{}
	for _, cat := range catalog.Categories {
		entries, err := s.ScanCategory(root, cat)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			result.Merge(File(cat, e.Name, e.Path))
		}
	}
	return result, nil
}

func checkDescription(result *Result, cat catalog.Category, entity string, fields map[string]any) {
	sev, msg := SeverityWarning, "description is missing"
	if cat == catalog.CategorySkill {
		sev, msg = SeverityError, "description is required"
	}

	raw, present := fields["description"]
	if !present {
		result.Add(Issue{Severity: sev, Entity: entity, Field: "description", Message: msg})
		return
	}
	desc, ok := raw.(string)
	if !ok {
		result.Add(Issue{Severity: sev, Entity: entity, Field: "description", Message: "description must be a string", Value: raw})
		return
	}
	if strings.TrimSpace(desc) == "" {
		result.Add(Issue{Severity: sev, Entity: entity, Field: "description", Message: "description cannot be only whitespace", Value: desc})
	}
}

// checkSkillName enforces the frontmatter name matching the skill's
// directory, when the name key is present at all.
func checkSkillName(result *Result, entity string, fields map[string]any, path string) {
	raw, present := fields["name"]
	if !present {
		return
	}
	name, ok := raw.(string)
	if !ok {
		result.Add(Issue{Severity: SeverityError, Entity: entity, Field: "name", Message: "name must be a string", Value: raw})
		return
	}
	dir := filepath.Base(filepath.Dir(path))
	if name != dir {
		result.Add(Issue{
			Severity: SeverityError,
			Entity:   entity,
			Field:    "name",
			Message:  "skill name must match directory name",
			Value:    name,
			Context:  map[string]string{"directory": dir, "path": path},
		})
	}
}

func checkUnknownKeys(result *Result, cat catalog.Category, entity string, fields map[string]any) {
	known := make(map[string]bool, len(knownKeys[cat]))
	for _, k := range knownKeys[cat] {
		known[k] = true
	}

	var unknown []string
	for key := range fields {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		result.Add(Issue{
			Severity: SeverityInfo,
			Entity:   entity,
			Field:    key,
			Message:  "unknown frontmatter key",
		})
	}
}

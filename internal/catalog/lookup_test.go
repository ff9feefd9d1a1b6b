package catalog

import (
	"path/filepath"
	"testing"
)

func TestResolve_QualifiedSelector(t *testing.T) {
	root := writeTree(t, map[string]string{
		"agents/deploy.md":   withDescription("Deployment agent"),
		"commands/deploy.md": withDescription("Deployment command"),
	})

	scanner := NewScanner(Options{})
	matches, err := scanner.Resolve(root, Selector{Category: CategoryAgent, Name: "deploy"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Category != CategoryAgent {
		t.Errorf("category = %s, want agent", matches[0].Category)
	}
	wantPath := filepath.Join(root, "agents", "deploy.md")
	if matches[0].Entry.Path != wantPath {
		t.Errorf("path = %q, want %q", matches[0].Entry.Path, wantPath)
	}
}

func TestResolve_BareNameSearchesAllCategories(t *testing.T) {
	root := writeTree(t, map[string]string{
		"agents/deploy.md":       withDescription("Deployment agent"),
		"skills/deploy/SKILL.md": withDescription("Deployment skill"),
		"commands/deploy.md":     withDescription("Deployment command"),
	})

	scanner := NewScanner(Options{})
	matches, err := scanner.Resolve(root, Selector{Name: "deploy"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	wantOrder := []Category{CategoryAgent, CategorySkill, CategoryCommand}
	for i, want := range wantOrder {
		if matches[i].Category != want {
			t.Errorf("matches[%d].Category = %s, want %s", i, matches[i].Category, want)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	root := writeTree(t, map[string]string{
		"agents/architect.md": withDescription("Software Architect"),
	})

	scanner := NewScanner(Options{})
	matches, err := scanner.Resolve(root, Selector{Name: "missing"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestResolve_NestedSkill(t *testing.T) {
	root := writeTree(t, map[string]string{
		"skills/data/frames/SKILL.md": withDescription("Nested frames skill"),
	})

	scanner := NewScanner(Options{Recurse: true})
	matches, err := scanner.Resolve(root, Selector{Category: CategorySkill, Name: "data/frames"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	wantPath := filepath.Join(root, "skills", "data", "frames", "SKILL.md")
	if matches[0].Entry.Path != wantPath {
		t.Errorf("path = %q, want %q", matches[0].Entry.Path, wantPath)
	}
}

func TestMatch_Selector(t *testing.T) {
	m := Match{Category: CategoryAgent, Entry: Entry{Name: "architect"}}
	if got := m.Selector().String(); got != "agent:architect" {
		t.Errorf("Selector() = %q, want agent:architect", got)
	}
}

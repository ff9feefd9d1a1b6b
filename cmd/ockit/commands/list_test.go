package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// resetListFlags restores the list command flags to their defaults.
func resetListFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { listJSON = false })
}

func TestRunList_AllCategories(t *testing.T) {
	resetListFlags(t)
	setSource(t, writeSourceTree(t))

	var buf bytes.Buffer
	if err := runListWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("runListWithWriter() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"agents", "skills", "commands", "NAME", "DESCRIPTION",
		"architect", "reviewer", "planning", "create-skill", "Designs system architecture"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, output)
		}
	}
}

func TestRunList_SingleCategory(t *testing.T) {
	resetListFlags(t)
	setSource(t, writeSourceTree(t))

	var buf bytes.Buffer
	if err := runListWithWriter(testCommand(t), []string{"skills"}, &buf); err != nil {
		t.Fatalf("runListWithWriter() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "planning") {
		t.Errorf("output should list the skill, got:\n%s", output)
	}
	if strings.Contains(output, "architect") {
		t.Errorf("output should not list agents, got:\n%s", output)
	}
}

func TestRunList_InvalidCategory(t *testing.T) {
	resetListFlags(t)
	setSource(t, writeSourceTree(t))

	var buf bytes.Buffer
	err := runListWithWriter(testCommand(t), []string{"widgets"}, &buf)
	if err == nil {
		t.Fatal("runListWithWriter() should reject an unknown category")
	}
	if !strings.Contains(err.Error(), "widgets") {
		t.Errorf("error = %q, should name the bad category", err.Error())
	}
}

func TestRunList_EmptyTree(t *testing.T) {
	resetListFlags(t)
	setSource(t, t.TempDir())

	var buf bytes.Buffer
	if err := runListWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("runListWithWriter() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "(none)") {
		t.Errorf("output should mark empty categories, got:\n%s", output)
	}
	if !strings.Contains(output, "No entities found") {
		t.Errorf("output should suggest scaffolding, got:\n%s", output)
	}
}

func TestRunList_JSON(t *testing.T) {
	resetListFlags(t)
	setSource(t, writeSourceTree(t))
	listJSON = true

	var buf bytes.Buffer
	if err := runListWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("runListWithWriter() error = %v", err)
	}

	var output map[string][]entryJSON
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v\nGot:\n%s", err, buf.String())
	}

	if len(output["agents"]) != 2 {
		t.Errorf("agents = %d, want 2", len(output["agents"]))
	}
	if len(output["skills"]) != 1 {
		t.Errorf("skills = %d, want 1", len(output["skills"]))
	}
	if output["commands"][0].Name != "create-skill" {
		t.Errorf("command name = %q, want create-skill", output["commands"][0].Name)
	}
	if output["skills"][0].Description != "Breaks work into steps" {
		t.Errorf("skill description = %q", output["skills"][0].Description)
	}
}

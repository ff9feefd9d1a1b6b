package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// resetValidateFlags restores the validate command flags to their defaults.
func resetValidateFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		validateJSON = false
		validateStrict = false
	})
}

func TestRunValidate_CleanTree(t *testing.T) {
	resetValidateFlags(t)
	setSource(t, writeSourceTree(t))

	var buf bytes.Buffer
	if err := runValidateWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("runValidateWithWriter() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Validation passed") {
		t.Errorf("output = %q, want pass notice", buf.String())
	}
}

func TestRunValidate_SkillMissingDescription(t *testing.T) {
	resetValidateFlags(t)
	dir := writeSourceTree(t)
	setSource(t, dir)
	writeTestFile(t, filepath.Join(dir, "skills", "broken", "SKILL.md"),
		"---\nname: broken\n---\n\n# Broken\n")

	var buf bytes.Buffer
	err := runValidateWithWriter(testCommand(t), nil, &buf)
	if err == nil {
		t.Fatal("a skill without a description should fail validation")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error = %q", err.Error())
	}
	if !strings.Contains(buf.String(), "description is required") {
		t.Errorf("report should name the missing description, got:\n%s", buf.String())
	}
}

func TestRunValidate_WarningsPassWithoutStrict(t *testing.T) {
	resetValidateFlags(t)
	dir := writeSourceTree(t)
	setSource(t, dir)
	// An agent without frontmatter only warns.
	writeTestFile(t, filepath.Join(dir, "agents", "plain.md"), "# Plain\n")

	var buf bytes.Buffer
	if err := runValidateWithWriter(testCommand(t), nil, &buf); err != nil {
		t.Fatalf("warnings alone should not fail, got %v", err)
	}

	buf.Reset()
	validateStrict = true
	err := runValidateWithWriter(testCommand(t), nil, &buf)
	if err == nil {
		t.Fatal("--strict should fail on warnings")
	}
	if !strings.Contains(err.Error(), "strict") {
		t.Errorf("error = %q, want strict mention", err.Error())
	}
}

func TestRunValidate_SingleToken(t *testing.T) {
	resetValidateFlags(t)
	setSource(t, writeSourceTree(t))

	var buf bytes.Buffer
	if err := runValidateWithWriter(testCommand(t), []string{"skill:planning"}, &buf); err != nil {
		t.Fatalf("runValidateWithWriter() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Validation passed") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunValidate_JSON(t *testing.T) {
	resetValidateFlags(t)
	dir := writeSourceTree(t)
	setSource(t, dir)
	writeTestFile(t, filepath.Join(dir, "skills", "broken", "SKILL.md"),
		"---\nname: broken\n---\n")
	validateJSON = true

	var buf bytes.Buffer
	err := runValidateWithWriter(testCommand(t), nil, &buf)
	if err == nil {
		t.Fatal("broken tree should fail validation")
	}

	var report struct {
		Issues []struct {
			Severity string `json:"severity"`
			Entity   string `json:"entity"`
			Message  string `json:"message"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\nGot:\n%s", err, buf.String())
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Entity == "skill:broken" && issue.Severity == "error" {
			found = true
		}
	}
	if !found {
		t.Errorf("JSON report should carry the skill error, got:\n%s", buf.String())
	}
}

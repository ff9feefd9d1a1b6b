package doctor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	name     string
	category string
	status   Severity
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return c.category }
func (c *stubCheck) Run() *CheckResult {
	return &CheckResult{Name: c.name, Category: c.category, Status: c.status, Message: "stub"}
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "one", category: "a", status: SeverityPass})
	r.AddCheck(&stubCheck{name: "two", category: "a", status: SeverityInfo})
	r.AddCheck(&stubCheck{name: "three", category: "b", status: SeverityWarning})
	r.AddCheck(&stubCheck{name: "four", category: "b", status: SeverityError})

	report := r.Run()
	require.Len(t, report.Results, 4)

	// Registration order is execution order.
	for i, want := range []string{"one", "two", "three", "four"} {
		assert.Equal(t, want, report.Results[i].Name)
	}

	assert.Equal(t, Summary{Passed: 1, Info: 1, Warnings: 1, Errors: 1}, report.Summary)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.False(t, report.Timestamp.IsZero())
}

func TestRunner_Empty(t *testing.T) {
	report := NewRunner().Run()

	assert.Empty(t, report.Results)
	assert.Equal(t, Summary{}, report.Summary)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "pass", SeverityPass.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestCheckResult_JSONSeverityNames(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "x", Status: SeverityWarning, Message: "m"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
}

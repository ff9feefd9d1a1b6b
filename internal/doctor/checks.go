package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/config"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/git"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/hooks"
)

// TreeCheck verifies the source tree layout: the root exists and holds at
// least one category directory.
type TreeCheck struct {
	Root string
}

var _ Check = (*TreeCheck)(nil)

// Name returns the unique identifier for this check.
func (c *TreeCheck) Name() string {
	return "source-tree"
}

// Category returns the grouping for this check.
func (c *TreeCheck) Category() string {
	return "source"
}

// Run executes the source tree layout check.
func (c *TreeCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.Root)
	if os.IsNotExist(err) {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("source root %s does not exist", c.Root)
		result.FixHint = "check the source setting, or run: ockit init"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat source root: %v", err)
		return result
	}
	if !info.IsDir() {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("source root %s is not a directory", c.Root)
		return result
	}

	var found, missing []string
	for _, cat := range catalog.Categories {
		dir := cat.SourceDir()
		if fi, err := os.Stat(filepath.Join(c.Root, dir)); err == nil && fi.IsDir() {
			found = append(found, dir)
		} else {
			missing = append(missing, dir)
		}
	}
	result.Details = map[string]any{"found": found, "missing": missing}

	if len(found) == 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("no category directories under %s", c.Root)
		result.FixHint = "run: ockit init"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("found %d of 3 category directories (%s)", len(found), strings.Join(found, ", "))
	return result
}

// ConfigCheck verifies the resolved config file parses and names a known
// catalog format.
type ConfigCheck struct {
	// Path is the config file in effect. Empty means none was found and
	// defaults apply.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the config validity check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.Path == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, defaults in effect"
		return result
	}
	result.Details = map[string]any{"path": c.Path}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read config file: %v", err)
		return result
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config file has invalid YAML: %v", err)
		result.FixHint = "fix the syntax in " + c.Path
		return result
	}

	switch cfg.Format {
	case "", "json", "yaml", "toml":
	default:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("unknown catalog format %q", cfg.Format)
		result.FixHint = "set format to json, yaml, or toml"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("config file %s is valid", c.Path)
	return result
}

// HookCheck reports the git repository and pre-commit hook state.
type HookCheck struct {
	// Dir is the directory whose enclosing repository is inspected.
	Dir string

	// Output is the catalog file the hook should stage.
	Output string
}

var _ Check = (*HookCheck)(nil)

// Name returns the unique identifier for this check.
func (c *HookCheck) Name() string {
	return "pre-commit-hook"
}

// Category returns the grouping for this check.
func (c *HookCheck) Category() string {
	return "git"
}

// Run executes the hook state check.
func (c *HookCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if !git.IsRepo(c.Dir) {
		result.Status = SeverityInfo
		result.Message = "not inside a git repository"
		return result
	}

	status, path, err := hooks.Check(c.Dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot inspect pre-commit hook: %v", err)
		return result
	}
	result.Details = map[string]any{"path": path, "state": status.String()}

	switch status {
	case hooks.StatusMissing:
		result.Status = SeverityWarning
		result.Message = "pre-commit hook not installed"
		result.FixHint = "run: ockit hooks install"
	case hooks.StatusForeign:
		result.Status = SeverityWarning
		result.Message = "a pre-commit hook not managed by ockit is installed"
		result.FixHint = "run: ockit hooks install --force to replace it"
	case hooks.StatusOurs:
		fresh, err := hooks.Fresh(c.Dir, c.Output)
		if err != nil {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("cannot inspect pre-commit hook: %v", err)
			return result
		}
		if !fresh {
			result.Status = SeverityWarning
			result.Message = "pre-commit hook is out of date"
			result.FixHint = "run: ockit hooks install"
			return result
		}
		result.Status = SeverityPass
		result.Message = "pre-commit hook installed and current"
	}
	return result
}

// CatalogCheck reports whether the on-disk catalog matches the source
// tree.
type CatalogCheck struct {
	Scanner *catalog.Scanner
	Root    string
	Output  string
	Format  catalog.Format
}

var _ Check = (*CatalogCheck)(nil)

// Name returns the unique identifier for this check.
func (c *CatalogCheck) Name() string {
	return "catalog-freshness"
}

// Category returns the grouping for this check.
func (c *CatalogCheck) Category() string {
	return "catalog"
}

// Run executes the catalog staleness check.
func (c *CatalogCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	fresh := c.Scanner.Generate(c.Root)
	upToDate, _, err := catalog.Check(fresh, c.Output, c.Format)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot compare catalog: %v", err)
		return result
	}
	result.Details = map[string]any{"output": c.Output, "entries": fresh.Total()}

	if !upToDate {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("catalog %s is out of date with the source tree", c.Output)
		result.FixHint = "run: ockit catalog"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("catalog %s matches the source tree (%d entries)", c.Output, fresh.Total())
	return result
}

// OutputCheck verifies the catalog output location is writable.
type OutputCheck struct {
	Output string
}

var _ Check = (*OutputCheck)(nil)

// Name returns the unique identifier for this check.
func (c *OutputCheck) Name() string {
	return "output-writable"
}

// Category returns the grouping for this check.
func (c *OutputCheck) Category() string {
	return "filesystem"
}

// Run executes the output writability check.
func (c *OutputCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	dir := filepath.Dir(c.Output)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("output directory %s does not exist", dir)
		result.FixHint = "mkdir -p " + dir
		return result
	}

	tmp, err := os.CreateTemp(dir, ".ockit-doctor-*")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("output directory %s is not writable", dir)
		result.FixHint = "chmod u+w " + dir
		return result
	}
	tmp.Close()
	os.Remove(tmp.Name())

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("output location %s is writable", dir)
	return result
}

package scaffold

import (
	"os"
	"path/filepath"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/config"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/fileutil"
)

// Init bootstraps dir as a source tree: the agents/, skills/, and
// commands/ directories plus a starter config.yaml carrying the documented
// defaults. Existing directories are left alone and an existing config
// file is only rewritten with force. Returns the paths it created.
func Init(dir string, force bool) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	var created []string
	for _, cat := range catalog.Categories {
		sub := filepath.Join(dir, cat.SourceDir())
		if _, err := os.Stat(sub); err == nil {
			continue
		}
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return created, errors.Wrapf(err, "creating %s", sub)
		}
		created = append(created, sub)
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return created, nil
	}
	if err := fileutil.AtomicWriteYAML(cfgPath, config.Default()); err != nil {
		return created, errors.Wrap(err, "writing starter config")
	}
	created = append(created, cfgPath)

	return created, nil
}

// Package install copies catalog entities into an OpenCode config
// directory, backing up anything it overwrites.
//
// Source trees keep categories under agents/, skills/, and commands/;
// OpenCode reads installed entities from agent/, skill/, and commands/.
// Installing maps one onto the other: agents and commands are single
// files, skills are whole directories.
package install

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

// Options control conflict handling and backups.
type Options struct {
	// Force allows overwriting entities already present in the target.
	Force bool

	// Backup captures overwritten files into a backup set first.
	Backup bool
}

// Item records one installed entity.
type Item struct {
	Selector string
	Dest     string
}

// Report summarizes a completed install.
type Report struct {
	Items []Item

	// BackupID identifies the backup set taken before overwriting, empty
	// when nothing needed backing up.
	BackupID string
}

// Installer copies selected entities into a target.
type Installer struct {
	logger  *slog.Logger
	backups *backup.Manager
	opts    Options
}

// New returns an Installer. The backup manager is only consulted when
// Options.Backup is set.
func New(logger *slog.Logger, backups *backup.Manager, opts Options) *Installer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}
	return &Installer{logger: logger, backups: backups, opts: opts}
}

// DestPath returns where a resolved entity lands inside the target: the
// definition file for agents and commands, the skill directory for
// skills.
func DestPath(target Target, m catalog.Match) string {
	switch m.Category {
	case catalog.CategoryAgent:
		return paths.AgentPath(target.BaseDir, m.Entry.Name)
	case catalog.CategoryCommand:
		return paths.CommandPath(target.BaseDir, m.Entry.Name)
	case catalog.CategorySkill:
		return paths.SkillInstallDir(target.BaseDir, m.Entry.Name)
	}
	return ""
}

// Install copies every match into the target. Existing destinations fail
// the whole run unless Options.Force is set; with Force, the about-to-be
// overwritten files are captured as one backup set first (when
// Options.Backup is on) and the set is pruned to the manager's retention.
func (ins *Installer) Install(matches []catalog.Match, target Target) (*Report, error) {
	if len(matches) == 0 {
		return nil, errors.New("nothing to install")
	}
	if target.BaseDir == "" {
		return nil, errors.New("install target is not resolved")
	}

	type plan struct {
		match  catalog.Match
		src    string
		dest   string
		exists bool
	}

	plans := make([]plan, 0, len(matches))
	var existing []string
	var firstConflict string
	for _, m := range matches {
		p := plan{
			match: m,
			src:   m.Entry.Path,
			dest:  DestPath(target, m),
		}
		if m.Category == catalog.CategorySkill {
			p.src = filepath.Dir(m.Entry.Path)
		}
		if _, err := os.Stat(p.dest); err == nil {
			p.exists = true
			existing = append(existing, p.dest)
			if firstConflict == "" {
				firstConflict = m.Selector().String()
			}
		}
		plans = append(plans, p)
	}

	if len(existing) > 0 && !ins.opts.Force {
		return nil, errors.Wrapf(errors.ErrAlreadyExists, "%s is already installed in %s", firstConflict, target.BaseDir)
	}

	report := &Report{}
	if len(existing) > 0 && ins.opts.Backup && ins.backups != nil {
		manifest, err := ins.backups.Backup(target.Label, existing)
		if err != nil {
			return nil, errors.Wrap(err, "backing up existing files")
		}
		report.BackupID = manifest.ID
		if err := ins.backups.Prune(target.Label); err != nil {
			ins.logger.Warn("failed to prune old backups",
				"target", target.Label,
				"error", err)
		}
		ins.logger.Info("backed up existing files",
			"target", target.Label,
			"backup_id", manifest.ID,
			"files", len(existing))
	}

	for _, p := range plans {
		if err := ins.installOne(p.match, p.src, p.dest, p.exists); err != nil {
			return nil, err
		}
		sel := p.match.Selector().String()
		ins.logger.Debug("installed entity", "selector", sel, "dest", p.dest)
		report.Items = append(report.Items, Item{Selector: sel, Dest: p.dest})
	}

	return report, nil
}

func (ins *Installer) installOne(m catalog.Match, src, dest string, exists bool) error {
	sel := m.Selector().String()

	if m.Category == catalog.CategorySkill {
		if exists {
			if err := os.RemoveAll(dest); err != nil {
				return errors.Wrapf(err, "removing existing %s", sel)
			}
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", sel)
		}
		if err := copyDir(src, dest); err != nil {
			return errors.Wrapf(err, "installing %s", sel)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", sel)
	}
	if err := copyFile(src, dest); err != nil {
		return errors.Wrapf(err, "installing %s", sel)
	}
	return nil
}

// copyDir recursively copies the contents of src into dst, which must
// already exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return errors.Wrapf(err, "creating directory %s", dstPath)
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file, preserving the source mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return nil
}

package catalog

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/frontmatter"
)

// Options control scanning behavior beyond the fixed per-category rules.
type Options struct {
	// Recurse enables discovery of skills nested below the first directory
	// level of the skills root. Nested skills are named by their slash-joined
	// relative path, e.g. "data/frames". Off by default: a skill's own
	// subdirectories (references, fixtures) are not visited.
	Recurse bool

	// Exclude holds glob patterns (doublestar syntax) matched against each
	// entity's path relative to its category root: the file name for agents
	// and commands, the skill directory path for skills. Matching entities
	// are skipped.
	Exclude []string
}

// Scanner discovers agents, skills, and commands in a source tree.
type Scanner struct {
	logger *slog.Logger
	opts   Options
}

// NewScanner creates a Scanner that logs warnings to stderr.
func NewScanner(opts Options) *Scanner {
	return &Scanner{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
		opts: opts,
	}
}

// NewScannerWithLogger creates a Scanner with the given logger.
func NewScannerWithLogger(logger *slog.Logger, opts Options) *Scanner {
	return &Scanner{logger: logger, opts: opts}
}

// ScanCategory discovers every entity of the given category under root,
// applying that category's location rule:
//
//   - agents: every *.md file directly inside agents/; name = basename
//     minus .md.
//   - skills: every immediate subdirectory of skills/ containing SKILL.md;
//     name = subdirectory name. With Options.Recurse, nested SKILL.md files
//     are found too.
//   - commands: every *.md file directly inside commands/; name = basename
//     minus .md.
//
// A missing category root yields an empty result, not an error. Entries come
// back in directory iteration order.
func (s *Scanner) ScanCategory(root string, cat Category) ([]Entry, error) {
	dir := filepath.Join(root, cat.SourceDir())
	if cat == CategorySkill {
		return s.scanSkills(dir)
	}
	return s.scanFlat(dir, cat)
}

// scanFlat handles the agents and commands rule: flat *.md files.
func (s *Scanner) scanFlat(dir string, cat Category) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		if os.IsPermission(err) {
			s.logger.Warn("permission denied reading category directory",
				"path", dir,
				"error", err)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s directory %s", cat.Plural(), dir)
	}

	entries := make([]Entry, 0, len(dirents))

	for _, dirent := range dirents {
		if dirent.IsDir() || !strings.HasSuffix(dirent.Name(), ".md") {
			continue
		}
		if s.excluded(dirent.Name()) {
			s.logger.Debug("entity excluded",
				"category", cat,
				"path", dirent.Name())
			continue
		}

		defPath := filepath.Join(dir, dirent.Name())
		entries = append(entries, Entry{
			Name:        strings.TrimSuffix(dirent.Name(), ".md"),
			Description: s.description(defPath),
			Path:        defPath,
		})
	}

	return entries, nil
}

// scanSkills handles the skills rule: subdirectories containing SKILL.md.
func (s *Scanner) scanSkills(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		if os.IsPermission(err) {
			s.logger.Warn("permission denied reading skills directory",
				"path", dir,
				"error", err)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading skills directory %s", dir)
	}

	entries := make([]Entry, 0, len(dirents))

	for _, dirent := range dirents {
		if !dirent.IsDir() {
			continue
		}
		entries = append(entries, s.scanSkillDir(dir, dirent.Name())...)
	}

	return entries, nil
}

// scanSkillDir inspects one subdirectory below the skills root. rel is the
// directory's slash-separated path relative to the root and doubles as the
// skill name. Directories without SKILL.md contribute nothing; with
// Options.Recurse their subdirectories are still descended into.
func (s *Scanner) scanSkillDir(root, rel string) []Entry {
	if s.excluded(rel) {
		s.logger.Debug("skill excluded", "path", rel)
		return nil
	}

	var entries []Entry

	dir := filepath.Join(root, filepath.FromSlash(rel))
	skillPath := filepath.Join(dir, "SKILL.md")
	if info, err := os.Stat(skillPath); err == nil && info.Mode().IsRegular() {
		entries = append(entries, Entry{
			Name:        rel,
			Description: s.description(skillPath),
			Path:        skillPath,
		})
	}

	if !s.opts.Recurse {
		return entries
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("failed to read skill directory",
			"path", dir,
			"error", err)
		return entries
	}
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		entries = append(entries, s.scanSkillDir(root, path.Join(rel, child.Name()))...)
	}

	return entries
}

// entryMeta holds the single frontmatter field the catalog consumes.
type entryMeta struct {
	Description string `yaml:"description"`
}

// description extracts the frontmatter description from a definition file.
// Files without frontmatter, or without a description key, yield an empty
// string. Unreadable or malformed files are logged and also yield an empty
// string so the entity still appears in the catalog.
func (s *Scanner) description(defPath string) string {
	file, err := os.Open(defPath)
	if err != nil {
		s.logger.Warn("failed to open definition file",
			"path", defPath,
			"error", err)
		return ""
	}
	defer file.Close()

	var meta entryMeta
	if err := frontmatter.ParseHeader(file, &meta); err != nil {
		s.logger.Warn("failed to parse frontmatter",
			"path", defPath,
			"error", err)
		return ""
	}
	return meta.Description
}

// excluded reports whether rel matches any configured exclude pattern.
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.opts.Exclude {
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			s.logger.Warn("invalid exclude pattern",
				"pattern", pattern,
				"error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Manager creates, lists, restores, and prunes backup sets. Sets are
// keyed by an install-target label and identified by a timestamp.
type Manager struct {
	rootDir   string
	retention int
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir overrides the root backup directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetention sets how many sets are kept per target when pruning.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// NewManager returns a Manager rooted at the data-dir backup location.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:   paths.BackupsDir(),
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Retention returns the configured per-target retention count.
func (m *Manager) Retention() int {
	return m.retention
}

// Backup captures the given paths into a new timestamped set for target.
// Directories are captured recursively, single files as-is, and paths
// that do not exist are skipped. Capturing nothing is an error.
func (m *Manager) Backup(target string, capturePaths []string) (*Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}
	if len(capturePaths) == 0 {
		return nil, errors.New("at least one path is required")
	}

	if err := os.MkdirAll(m.targetDir(target), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}
	id, setDir, err := m.claimSet(target)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, p := range capturePaths {
		expanded := expandHome(p)

		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if info.IsDir() {
			dirFiles, err := m.captureDir(expanded, setDir)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up directory %s", p)
			}
			files = append(files, dirFiles...)
		} else {
			f, err := m.captureFile(expanded, setDir)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up file %s", p)
			}
			files = append(files, *f)
		}
	}

	if len(files) == 0 {
		os.RemoveAll(setDir)
		return nil, errors.New("no files to back up")
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   time.Now().UTC(),
		Target:      target,
		Files:       files,
		ToolVersion: Version,
		ID:          id,
	}

	manifestPath := filepath.Join(setDir, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

func (m *Manager) captureFile(src, setDir string) (*File, error) {
	relPath := storageRelPath(src)
	dst := filepath.Join(setDir, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &File{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256:       hash,
		Mode:         mode,
	}, nil
}

func (m *Manager) captureDir(srcDir, setDir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := m.captureFile(path, setDir)
		if err != nil {
			return err
		}
		files = append(files, *f)
		return nil
	})
	return files, err
}

// Restore copies every file of the identified set back to its original
// location, verifying checksums first. A mismatch aborts before anything
// is written.
func (m *Manager) Restore(target, id string) error {
	manifest, err := m.Get(target, id)
	if err != nil {
		return err
	}

	setDir := m.setDir(target, id)
	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(setDir, f.RelPath))
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256 {
			return errors.Wrapf(ErrCorrupted, "file %s hash mismatch", f.RelPath)
		}
	}

	for _, f := range manifest.Files {
		src := filepath.Join(setDir, f.RelPath)
		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if _, _, err := copyFile(src, f.OriginalPath); err != nil {
			return errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
		if err := os.Chmod(f.OriginalPath, f.Mode); err != nil {
			return errors.Wrapf(err, "setting permissions for %s", f.OriginalPath)
		}
	}
	return nil
}

// List returns every set for target, newest first. ErrNoBackups when the
// target has none.
func (m *Manager) List(target string) ([]Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}

	entries, err := os.ReadDir(m.targetDir(target))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackups
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(target, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackups
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return manifests, nil
}

// Targets returns the labels that have at least one backup set.
func (m *Manager) Targets() ([]string, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading backup root")
	}

	var targets []string
	for _, entry := range entries {
		if entry.IsDir() {
			targets = append(targets, entry.Name())
		}
	}
	return targets, nil
}

// Prune removes sets beyond the retention count, keeping the newest.
func (m *Manager) Prune(target string) error {
	manifests, err := m.List(target)
	if err != nil {
		if errors.Is(err, ErrNoBackups) {
			return nil
		}
		return err
	}

	for i := m.retention; i < len(manifests); i++ {
		if err := os.RemoveAll(m.setDir(target, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get loads the manifest for one set.
func (m *Manager) Get(target, id string) (*Manifest, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}
	if id == "" {
		return nil, errors.New("backup ID is required")
	}

	data, err := os.ReadFile(filepath.Join(m.setDir(target, id), "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackups, "backup %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// claimSet reserves a fresh set directory. Same-second backups get a
// numeric suffix so IDs never collide.
func (m *Manager) claimSet(target string) (id, setDir string, err error) {
	base := time.Now().Format("20060102T150405")
	id = base
	for i := 2; ; i++ {
		setDir = m.setDir(target, id)
		err = os.Mkdir(setDir, 0o755)
		if err == nil {
			return id, setDir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func (m *Manager) setDir(target, id string) string {
	return filepath.Join(m.targetDir(target), id)
}

func (m *Manager) targetDir(target string) string {
	return filepath.Join(m.rootDir, target)
}

var labelUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// TargetLabel derives a filesystem-safe backup key for an install target.
// The label combines the directory's base name with a short hash of its
// absolute path so distinct projects never collide.
func TargetLabel(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	sum := sha256.Sum256([]byte(abs))
	base := labelUnsafe.ReplaceAllString(filepath.Base(abs), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "target"
	}
	return base + "-" + hex.EncodeToString(sum[:])[:8]
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, returning the content hash and the source
// mode, which is applied to dst after the copy.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// storageRelPath maps an absolute source path to its location inside the
// set directory. The leading separator goes, and so does every colon,
// which would otherwise break Windows drive-letter paths.
func storageRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	if filepath.IsAbs(clean) && len(clean) > 0 && clean[0] == filepath.Separator {
		clean = clean[1:]
	}
	return strings.ReplaceAll(clean, ":", "")
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

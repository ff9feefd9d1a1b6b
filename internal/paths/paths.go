package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Source tree directory names. These are the category directories ockit
// scans for entries.
const (
	SourceAgentsDir   = "agents"
	SourceSkillsDir   = "skills"
	SourceCommandsDir = "commands"
)

// Installed tree directory names. OpenCode reads agents from agent/
// (singular), commands from commands/ (plural), and skills from skill/
// (singular).
const (
	InstallAgentDir    = "agent"
	InstallCommandsDir = "commands"
	InstallSkillDir    = "skill"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
// On Windows: %LOCALAPPDATA%\cache
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns the ockit config directory.
// Returns: <ConfigHome>/ockit/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), "ockit")
}

// ArchiveCacheDir returns the directory for downloaded archive files.
// Returns: <CacheHome>/ockit/archives/
func ArchiveCacheDir() string {
	return filepath.Join(CacheHome(), "ockit", "archives")
}

// BackupsDir returns the directory where overwritten files are preserved.
// Returns: <DataHome>/ockit/backups/
func BackupsDir() string {
	return filepath.Join(DataHome(), "ockit", "backups")
}

// GlobalOpenCodeDir returns the user-scope OpenCode config directory.
// OpenCode always reads ~/.config/opencode regardless of XDG overrides,
// so this is resolved against the home directory directly.
func GlobalOpenCodeDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "opencode")
}

// ProjectOpenCodeDir returns the project-scope OpenCode config directory.
// Returns: <projectRoot>/.opencode/
// Returns an empty string for an empty projectRoot.
func ProjectOpenCodeDir(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Join(projectRoot, ".opencode")
}

// AgentPath returns the installed path for an agent within an OpenCode
// config directory: <base>/agent/<name>.md
func AgentPath(base, name string) string {
	return filepath.Join(base, InstallAgentDir, name+".md")
}

// CommandPath returns the installed path for a command within an OpenCode
// config directory: <base>/commands/<name>.md
func CommandPath(base, name string) string {
	return filepath.Join(base, InstallCommandsDir, name+".md")
}

// SkillInstallDir returns the directory a skill installs into:
// <base>/skill/<name>/
func SkillInstallDir(base, name string) string {
	return filepath.Join(base, InstallSkillDir, name)
}

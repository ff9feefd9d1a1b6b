// Package paths provides path resolution utilities for ockit's source trees,
// OpenCode configuration directories, and application state.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. Application state lives under the standard bases:
//
//	paths.ConfigDir()       // <XDG_CONFIG_HOME>/ockit/
//	paths.ArchiveCacheDir() // <XDG_CACHE_HOME>/ockit/archives/
//	paths.BackupsDir()      // <XDG_DATA_HOME>/ockit/backups/
//
// # OpenCode Directories
//
// OpenCode reads its user-scope configuration from ~/.config/opencode
// regardless of XDG overrides, and project-scope configuration from
// <projectRoot>/.opencode:
//
//	paths.GlobalOpenCodeDir()          // ~/.config/opencode/
//	paths.ProjectOpenCodeDir(root)     // <root>/.opencode/
//
// Within either directory the entry layout uses singular directory names for
// agents and skills but plural for commands:
//
//	paths.AgentPath(base, "reviewer")          // <base>/agent/reviewer.md
//	paths.CommandPath(base, "deploy")          // <base>/commands/deploy.md
//	paths.SkillInstallDir(base, "code-review") // <base>/skill/code-review/
//
// Source trees managed by ockit use plural names for all three categories
// (agents/, skills/, commands/); see the Source*Dir constants.
package paths

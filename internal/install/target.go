package install

import (
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/backup"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

// Target is an install destination: the OpenCode config directory files
// land in, plus the label backups are filed under.
type Target struct {
	BaseDir string
	Label   string
}

// ProjectTarget returns the target for a project directory, installing
// into <dir>/.opencode/.
func ProjectTarget(dir string) Target {
	return Target{
		BaseDir: paths.ProjectOpenCodeDir(dir),
		Label:   backup.TargetLabel(dir),
	}
}

// GlobalTarget returns the user-global OpenCode target
// (~/.config/opencode/).
func GlobalTarget() (Target, error) {
	dir := paths.GlobalOpenCodeDir()
	if dir == "" {
		return Target{}, errors.Wrap(paths.ErrHomeDirNotFound, "resolving global OpenCode directory")
	}
	return Target{BaseDir: dir, Label: "global"}, nil
}

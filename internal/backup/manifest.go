package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetention is the default number of backup sets kept per target.
const DefaultRetention = 10

// Sentinel errors for backup operations.
var (
	// ErrNoBackups indicates no backup sets exist for the target.
	ErrNoBackups = errors.New("no backups found")

	// ErrCorrupted indicates a backed-up file failed its checksum check.
	ErrCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup set. It is stored as manifest.json inside
// the set's directory.
type Manifest struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the backup set was created.
	CreatedAt time.Time `json:"created_at"`

	// Target is the label of the install target the files came from.
	Target string `json:"target"`

	// Files lists every file captured in this set.
	Files []File `json:"files"`

	// ToolVersion is the ockit version that wrote the set.
	ToolVersion string `json:"ockit_version"`

	// ID is the set identifier (timestamp form 20060102T150405). Populated
	// from the directory name on load, never stored in the JSON.
	ID string `json:"-"`
}

// File records one captured file.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`

	// RelPath is the file's location inside the set directory.
	RelPath string `json:"rel_path"`

	// SHA256 is the hex-encoded checksum of the contents.
	SHA256 string `json:"sha256"`

	// Mode holds the original permission bits.
	Mode fs.FileMode `json:"mode"`
}

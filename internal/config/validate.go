package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidPattern indicates an exclude glob that doublestar cannot parse.
	ErrInvalidPattern = errors.New("invalid exclude pattern")

	// ErrNegativeRetention indicates a backup retention below zero.
	ErrNegativeRetention = errors.New("backup retention must be >= 0")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
//
// The format field is deliberately not validated here; the catalog encoder
// owns the format whitelist and rejects unknown values at use time.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Source != "" {
		if err := validatePath(cfg.Source); err != nil {
			errs = append(errs, &PathError{
				Field: "source",
				Path:  cfg.Source,
				Err:   err,
			})
		}
	}

	if cfg.Output != "" {
		if err := validatePath(cfg.Output); err != nil {
			errs = append(errs, &PathError{
				Field: "output",
				Path:  cfg.Output,
				Err:   err,
			})
		}
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &PatternError{
				Pattern: pattern,
				Err:     ErrInvalidPattern,
			})
		}
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, ErrNegativeRetention)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return ErrInvalidPath
	}

	return nil
}

// PatternError represents an error for a specific exclude pattern.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return e.Err.Error() + ": " + e.Pattern
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

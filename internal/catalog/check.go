package catalog

import (
	"bytes"
	"os"

	"github.com/aymanbagabas/go-udiff"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

// Check reports whether the catalog file at path is up to date with fresh,
// ignoring the generation timestamp. It returns true with an empty diff when
// the documents match, or false with a unified diff from the on-disk document
// to the freshly generated one. A missing or undecodable file counts as
// stale.
func Check(fresh *Catalog, path string, format Format) (bool, string, error) {
	want, err := fresh.Encode(format)
	if err != nil {
		return false, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, udiff.Unified(path, path, "", string(want)), nil
		}
		return false, "", errors.Wrapf(err, "reading catalog %s", path)
	}

	existing, err := Decode(data, format)
	if err != nil {
		return false, udiff.Unified(path, path, string(data), string(want)), nil
	}

	existing.GeneratedAt = fresh.GeneratedAt
	got, err := existing.Encode(format)
	if err != nil {
		return false, "", err
	}

	if bytes.Equal(got, want) {
		return true, "", nil
	}
	return false, udiff.Unified(path, path, string(got), string(want)), nil
}

package catalog

import (
	"encoding/json"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/pkg/fileutil"
)

// Format selects the serialization of the catalog document.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name coming from a flag or a config file.
// It accepts "yml" as an alias for yaml and ignores case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf("unknown catalog format %q (valid formats: json, yaml, toml)", s)
	}
}

// Filename returns the default output filename for the format, e.g.
// catalog.json.
func (f Format) Filename() string {
	return "catalog." + string(f)
}

// Encode serializes the catalog. JSON output is indented with two spaces and
// ends with a trailing newline; YAML and TOML use their encoders' defaults.
func (c *Catalog) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding catalog as JSON")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "encoding catalog as YAML")
		}
		return data, nil
	case FormatTOML:
		data, err := toml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "encoding catalog as TOML")
		}
		return data, nil
	default:
		return nil, errors.Newf("unknown catalog format %q", format)
	}
}

// Decode parses a catalog document previously written in the given format.
// Category arrays absent from the document come back as empty, not nil.
func Decode(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &c)
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	case FormatTOML:
		err = toml.Unmarshal(data, &c)
	default:
		return nil, errors.Newf("unknown catalog format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s catalog", format)
	}
	c.normalize()
	return &c, nil
}

// WriteFile encodes the catalog and writes it to path atomically, so a
// failed run never leaves a half-written catalog behind.
func (c *Catalog) WriteFile(path string, format Format) error {
	data, err := c.Encode(format)
	if err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing catalog to %s", path)
	}
	return nil
}

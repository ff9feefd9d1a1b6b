// Package frontmatter provides utilities for parsing and formatting
// YAML frontmatter in markdown files.
package frontmatter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for frontmatter parsing.
var (
	// ErrNoFrontmatter indicates the content does not begin with a
	// frontmatter block, or the block is never closed.
	ErrNoFrontmatter = errors.New("no frontmatter found")

	// ErrInvalidYAML indicates the frontmatter block contains YAML that
	// cannot be unmarshaled into the target type.
	ErrInvalidYAML = errors.New("invalid YAML")
)

// Parse extracts YAML frontmatter and body content from a reader.
//
// The frontmatter block must start on the first line with "---" and end
// with a line containing only "---" (the closing delimiter may sit at EOF
// without a trailing newline). CRLF line endings are normalized to LF.
//
// Returns ErrNoFrontmatter if the block is absent or unclosed, and
// ErrInvalidYAML if the block cannot be unmarshaled into T.
func Parse[T any](r io.Reader) (*T, string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	fm, body, err := split(content)
	if err != nil {
		return nil, "", err
	}

	var matter T
	if err := yaml.Unmarshal(fm, &matter); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &matter, string(body), nil
}

// ParseFile is like Parse but reads from the file at path.
func ParseFile[T any](path string) (*T, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return Parse[T](f)
}

// split separates content into the raw frontmatter block and the body.
// The returned frontmatter excludes both delimiter lines; the body excludes
// the closing delimiter's line ending.
func split(content []byte) (fm, body []byte, err error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, ErrNoFrontmatter
	}
	rest := normalized[4:]

	switch {
	case bytes.Equal(rest, []byte("---")):
		// Empty frontmatter, closing delimiter at EOF.
		return nil, nil, nil
	case bytes.HasPrefix(rest, []byte("---\n")):
		// Empty frontmatter.
		return nil, rest[4:], nil
	}

	if idx := bytes.Index(rest, []byte("\n---\n")); idx >= 0 {
		return rest[:idx+1], rest[idx+5:], nil
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		// Closing delimiter at EOF without a trailing newline.
		return rest[:len(rest)-3], nil, nil
	}

	return nil, nil, ErrNoFrontmatter
}

// ParseHeader parses only the frontmatter from the reader.
// It stops reading after the closing delimiter "---".
// The body is not consumed or returned.
// Returns nil if no frontmatter is found (silent success, matter remains empty).
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)

	// Check first line
	if !scanner.Scan() {
		return scanner.Err()
	}
	line := strings.TrimSpace(scanner.Text())
	if line != "---" {
		// No frontmatter start delimiter
		return nil
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			// Found closing delimiter
			if err := yaml.Unmarshal(buf.Bytes(), matter); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
			}
			return nil
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return scanner.Err()
}

// Format formats content with YAML frontmatter.
// The matter struct is serialized to YAML and wrapped in "---" delimiters,
// followed by the body content.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

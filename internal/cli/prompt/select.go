// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

// Sentinel errors for interactive selection.
var (
	ErrNoMatches        = errors.New("no matches to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("selection cancelled")
)

// Selector handles interactive disambiguation when a bare name resolves to
// entities in more than one category.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// PickMatch prompts the user to choose from the matches a token resolved to.
//
// Returns:
//   - ErrNoMatches if the list is empty
//   - the match if only one exists (auto-selects without prompting)
//   - the chosen match based on user input (empty input picks the first)
//   - ErrInvalidSelection if the selection is not a number or out of range
//   - ErrCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) PickMatch(token string, matches []catalog.Match) (*catalog.Match, error) {
	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	if len(matches) == 1 {
		return &matches[0], nil
	}

	fmt.Fprintf(s.writer, "Multiple entities match %q:\n", token)
	for i, m := range matches {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, m.Selector(), m.Entry.Description)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &matches[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(matches) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(matches))
	}

	return &matches[selection-1], nil
}

package catalog

import (
	"strings"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

// Selector identifies an entity the way the command line names one: an
// optional category, a colon, and the entity name. "agent:architect",
// "skill:planning", and "command:create-skill" address one category; a bare
// "architect" searches every category.
type Selector struct {
	// Category restricts the search to one category. Empty means any.
	Category Category

	// Name is the entity name. Nested skill names contain slashes.
	Name string
}

// ParseSelector parses a category:name token. The category part may be
// singular or plural and is optional.
func ParseSelector(token string) (Selector, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Selector{}, errors.Wrap(errors.ErrInvalidSelector, "empty selector")
	}

	catPart, name, found := strings.Cut(token, ":")
	if !found {
		return Selector{Name: token}, nil
	}

	cat, err := ParseCategory(catPart)
	if err != nil {
		return Selector{}, err
	}
	if name == "" {
		return Selector{}, errors.Wrapf(errors.ErrInvalidSelector, "missing name in %q", token)
	}

	return Selector{Category: cat, Name: name}, nil
}

// String renders the selector in its token form.
func (s Selector) String() string {
	if s.Category == "" {
		return s.Name
	}
	return string(s.Category) + ":" + s.Name
}

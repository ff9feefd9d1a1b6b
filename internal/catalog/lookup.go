package catalog

// Match pairs an entry with the category it was found in.
type Match struct {
	Category Category
	Entry    Entry
}

// Selector returns the fully qualified selector for the match.
func (m Match) Selector() Selector {
	return Selector{Category: m.Category, Name: m.Entry.Name}
}

// Resolve locates entities matching sel in the source tree rooted at root. A
// selector with a category searches only that category; a bare name searches
// all three in catalog order. An empty result means nothing matched; it is
// not an error.
func (s *Scanner) Resolve(root string, sel Selector) ([]Match, error) {
	cats := Categories
	if sel.Category != "" {
		cats = []Category{sel.Category}
	}

	var matches []Match
	for _, cat := range cats {
		entries, err := s.ScanCategory(root, cat)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Name == sel.Name {
				matches = append(matches, Match{Category: cat, Entry: e})
			}
		}
	}
	return matches, nil
}

// Package catalog discovers agents, skills, and commands in an OpenCode
// source tree and assembles them into a single index document.
//
// The source tree has three category roots with different location rules:
//
//	agents/    flat *.md files, one agent per file
//	skills/    one subdirectory per skill, each containing SKILL.md
//	commands/  flat *.md files, one command per file
//
// A Scanner applies these rules and extracts each entity's description from
// its frontmatter. A Builder folds the scanned entries into a Catalog, which
// encodes to JSON (the default), YAML, or TOML:
//
//	scanner := catalog.NewScannerWithLogger(logger, catalog.Options{})
//	cat := scanner.Generate(".")
//	err := cat.WriteFile("catalog.json", catalog.FormatJSON)
//
// Every run rebuilds the document from current disk state; the output file is
// replaced atomically and never updated in place. Check compares a fresh
// catalog against the on-disk file, ignoring the generation timestamp, for
// CI and pre-commit staleness checks.
//
// Selectors address individual entities in the category:name form the
// installer commands accept ("agent:architect", "skill:planning"), and
// Resolve maps a selector back to the files it names.
package catalog

// Package validate checks entity definition files against the naming and
// frontmatter rules.
//
// It defines shared types for representing validation issues (errors,
// warnings, info) and results, per-category checks, and text/JSON reporters.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes blocking errors from non-blocking warnings
//     and informational notes.
//   - [Issue]: A single validation problem, tied to the entity it was found
//     on.
//   - [Result]: Aggregates issues across entities and provides helper
//     methods.
//
// # Category rules
//
// Skills must carry frontmatter with a description, and a frontmatter name
// (when present) must match the skill's directory. Agents and commands may
// omit frontmatter entirely; a missing description only warns, since the
// catalog lists them with an empty description. Unknown frontmatter keys are
// informational for every category.
//
// # Basic Usage
//
//	result, err := validate.Tree(scanner, ".")
//	if err != nil {
//		return err
//	}
//	if result.HasErrors() {
//		// handle validation failure
//	}
package validate

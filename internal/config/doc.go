// Package config provides configuration management for the ockit CLI.
//
// This package handles loading and validating the ockit tool's own
// configuration file. It is distinct from the OpenCode configuration trees
// that ockit manages.
//
// # Configuration File
//
// The configuration file is searched in the current directory and then in
// ~/.config/ockit/config.yaml. It uses YAML format with the following
// structure:
//
//	source: .                 # source tree root
//	output: catalog.json      # optional explicit catalog path
//	format: json              # json | yaml | toml
//	recurse: false            # discover nested skills
//	exclude:                  # doublestar glob patterns
//	  - "drafts/**"
//	backup:
//	  enabled: true
//	  retention: 10
//
// Every key can also be supplied via an OCKIT_-prefixed environment variable
// (OCKIT_SOURCE, OCKIT_FORMAT, ...). Command-line flags take precedence over
// config values, which take precedence over environment, which take
// precedence over defaults.
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// Passing a non-empty path to Load reads that exact file and fails if it is
// missing; an empty path searches the default locations and falls back to
// defaults when nothing is found.
//
// # Validation
//
// Loaded configurations are not validated automatically; commands that care
// (doctor, catalog) call [Validate]:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
//
// # Default Values
//
// The [Default] function returns a configuration with the documented
// defaults; ockit init serializes it as the starter config file.
package config

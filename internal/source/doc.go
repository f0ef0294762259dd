// Package source loads the configuration sources merged into release-it
// options.
//
// Three sources come from the project directory: the local config file
// (.release-it.json, or JSONC/YAML/TOML variants, or an explicit path), the
// "release-it" block of package.json, and fields derived from package.json
// itself (version, name, private, publish). The fourth, the built-in
// default configuration, is embedded in the binary.
//
// All file access goes through an afero.Fs so callers and tests can supply
// an in-memory filesystem.
package source

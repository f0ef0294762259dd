// Package output renders resolved release options for display or machine
// consumption.
//
// Five formats are supported:
//   - text: human-readable terminal output with colored provenance (default)
//   - json: the resolved options as a JSON document
//   - yaml: the resolved options as YAML
//   - toml: the resolved options as TOML (unset values are omitted)
//   - markdown: a table of options and their sources, suitable for a PR comment
//
// A [Report] carries either the resolved options or every source layer,
// selected by its [View]. Use [NewReport] to build one from a
// [*config.Config], [GetWriter] to obtain a [Writer] for a format string and
// [WriteReportTo] to send it to a file or stdout.
package output

// Package cli wires together the Cobra command tree for the release-it
// binary.
//
// The root command hands its argument list to the release argument parser
// unchanged, resolves the configuration and prints the release plan. The
// config subcommands (show, sources, get) inspect the resolved options and
// their provenance. Exit codes are deterministic: 0 success, 2 usage error,
// 3 configuration error, 4 runtime error.
package cli

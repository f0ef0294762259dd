// Package config resolves the effective options of a release-it run.
//
// Precedence (highest to lowest):
//  1. CLI arguments
//  2. Constructor overlay (options passed to [New] by an embedding program)
//  3. Local config file (.release-it.json in the project directory, or the
//     file named by --config)
//  4. The "release-it" block of package.json
//  5. Fields derived from package.json (merged under "npm")
//  6. Built-in defaults
//
// Use [New] with an invocation string, or [NewFromArgs] with an argument
// list, to obtain a resolved [Config]. Every intermediate source stays
// readable, [Config.Origin] reports which source supplied a value, and
// [Config.AssignOptions] layers caller-supplied values over the result.
//
// After merging, pre-release shorthand is expanded: --preRelease=beta sets
// preReleaseId to "beta", forces github.preRelease and infers npm.tag unless
// --npm.tag was given on the command line.
package config

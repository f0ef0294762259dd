// Release-it resolves the configuration of a release run.
//
// It merges built-in defaults, package.json, a local .release-it.* file and
// command-line arguments, then prints the release plan. Exit codes are
// deterministic so the tool can gate CI jobs.
//
// Usage:
//
//	release-it major --preRelease=beta      # plan a beta pre-release
//	release-it -d --no-npm.publish          # dry run without publishing
//	release-it config show --format json    # resolved options as JSON
//	release-it config sources -- -c ci.yml  # every source layer
//	release-it config get npm.tag -- --preRelease=rc
package main

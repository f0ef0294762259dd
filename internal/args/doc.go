// Package args turns a release-it invocation into a nested tree of CLI
// arguments.
//
// Grammar:
//
//	major                        first bare token → increment
//	--git.commitMessage=value    dotted path, value after the first '='
//	--npm.tag next               value from the following token
//	--github.release             boolean true when no value follows
//	--no-npm.publish             explicit false (also --no.config)
//	-eV                          combined shorthand letters, see [Shorthands]
//	-i 1.0.0                     shorthand taking a value
//	--                           everything after is a bare token
//
// Parsing is permissive: unknown flags are captured under their own dotted
// path and no input makes [Parse] fail. [Split] never fails either: input the
// shell parser rejects falls back to whitespace splitting.
package args

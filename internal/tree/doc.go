// Package tree implements the generic option tree that every configuration
// source is parsed into.
//
// A [Tree] is a nested mapping of string keys to scalars (string, bool,
// numbers, nil), slices, or nested map[string]any subtrees. Values are
// addressed by dot-separated option paths such as "git.commitMessage".
//
// [Merge] deep-merges one tree into another, the source winning on
// conflicts; it is shared by the configuration merger and by late option assignment so
// both apply identical override rules.
package tree

package config

import (
	"github.com/dshills/release-it/internal/args"
	"github.com/dshills/release-it/internal/tree"
)

const defaultNpmTag = "latest"

// derive applies the post-merge rules to opts in place and returns the
// paths whose value it changed. cli is consulted for explicit overrides.
func derive(opts, cli tree.Tree) []string {
	var written []string
	set := func(path string, v any) {
		if cur, ok := opts.Get(path); ok && sameScalar(cur, v) {
			return
		}
		opts.Set(path, v)
		written = append(written, path)
	}

	if id, active := preRelease(opts); active {
		set(args.PathPreRelease, true)
		set(args.PathPreReleaseID, id)
		set("github.preRelease", true)

		if explicit, ok := cli.Get(args.PathNpmTag); ok {
			set(args.PathNpmTag, explicit)
		} else if id != nil {
			set(args.PathNpmTag, id)
		} else if prior, ok := opts.Get(args.PathNpmTag); !ok || prior == nil {
			set(args.PathNpmTag, defaultNpmTag)
		}
	}

	if !opts.Has(args.PathIncrement) {
		set(args.PathIncrement, nil)
	}
	return written
}

// sameScalar reports whether a and b are equal nil, bool or string values.
func sameScalar(a, b any) bool {
	switch a.(type) {
	case nil, bool, string:
	default:
		return false
	}
	switch b.(type) {
	case nil, bool, string:
		return a == b
	}
	return false
}

// preRelease reports whether pre-release mode is on and the identifier to
// use: the preRelease string itself, else a configured preReleaseId, else
// nil.
func preRelease(opts tree.Tree) (any, bool) {
	v, ok := opts.Get(args.PathPreRelease)
	if !ok {
		return nil, false
	}
	switch val := v.(type) {
	case bool:
		if !val {
			return nil, false
		}
	case string:
		if val == "" {
			return nil, false
		}
		return val, true
	default:
		return nil, false
	}
	if id, ok := opts.String(args.PathPreReleaseID); ok && id != "" {
		return id, true
	}
	return nil, true
}

// flags are the convenience booleans derived from resolved options.
type flags struct {
	verbose     bool
	dryRun      bool
	debug       bool
	interactive bool
	showVersion bool
	showHelp    bool
}

func deriveFlags(opts tree.Tree, nonInteractiveEnv func() bool) flags {
	f := flags{
		verbose:     isTrue(opts, args.PathVerbose),
		dryRun:      isTrue(opts, args.PathDryRun),
		debug:       isTrue(opts, args.PathDebug),
		showVersion: isTrue(opts, args.PathVersion),
		showHelp:    isTrue(opts, args.PathHelp),
	}
	if b, ok := opts.Bool(args.PathNonInteractive); ok {
		f.interactive = !b
	} else {
		f.interactive = !nonInteractiveEnv()
	}
	return f
}

// isTrue reports whether path holds the boolean true. Strings such as the
// manifest's version never count.
func isTrue(opts tree.Tree, path string) bool {
	b, ok := opts.Bool(path)
	return ok && b
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dshills/release-it/internal/config"
	"github.com/dshills/release-it/internal/redact"
	"github.com/dshills/release-it/internal/tree"
)

// View selects what a report shows.
type View int

const (
	// ViewOptions shows the resolved options.
	ViewOptions View = iota
	// ViewSources shows each merged source layer separately.
	ViewSources
)

// Report is a rendering-ready snapshot of one resolved configuration.
type Report struct {
	Tool            string
	Version         string
	View            View
	Increment       any
	LocalConfigPath string
	Flags           Flags
	Entries         []Entry
	Options         tree.Tree
	Layers          []Layer
}

// Flags are the convenience booleans of the configuration.
type Flags struct {
	DryRun      bool
	Verbose     bool
	Debug       bool
	Interactive bool
}

// Entry is one resolved leaf and the source that supplied it.
type Entry struct {
	Path   string
	Value  any
	Source config.Source
}

// Layer is one configuration source and the values it contributed.
type Layer struct {
	Source config.Source
	// Path is the file the layer was read from, if any.
	Path   string
	Values tree.Tree
}

// ReportOptions control how NewReport builds a report.
type ReportOptions struct {
	Tool    string
	Version string
	View    View
	// NoRedact prints secret values as they are.
	NoRedact bool
	// RedactPaths are extra option path patterns to mask.
	RedactPaths []string
}

// NewReport snapshots c. Secrets are masked unless opts.NoRedact is set.
func NewReport(c *config.Config, opts ReportOptions) *Report {
	mask := func(t tree.Tree) tree.Tree {
		if t == nil {
			return tree.New()
		}
		if opts.NoRedact {
			return t.Clone()
		}
		return redact.Options(t, opts.RedactPaths)
	}

	r := &Report{
		Tool:            opts.Tool,
		Version:         opts.Version,
		View:            opts.View,
		LocalConfigPath: c.LocalConfigPath(),
		Flags: Flags{
			DryRun:      c.IsDryRun(),
			Verbose:     c.IsVerbose(),
			Debug:       c.IsDebug(),
			Interactive: c.IsInteractive(),
		},
		Options: mask(c.Options()),
	}
	r.Increment, _ = r.Options.Get("increment")

	for _, p := range r.Options.Paths() {
		v, _ := r.Options.Get(p)
		r.Entries = append(r.Entries, Entry{Path: p, Value: v, Source: c.Origin(p)})
	}

	for _, src := range config.Sources {
		l := Layer{Source: src, Values: mask(c.Layer(src))}
		switch src {
		case config.SourceLocal:
			l.Path = c.LocalConfigPath()
		case config.SourcePackage, config.SourceManifest:
			if len(l.Values) > 0 {
				l.Path = "package.json"
			}
		}
		r.Layers = append(r.Layers, l)
	}
	return r
}

// Document returns the tree the machine-readable formats encode: the
// resolved options, or a map of source name to layer values.
func (r *Report) Document() tree.Tree {
	if r.View == ViewOptions {
		return r.Options
	}
	doc := tree.New()
	for _, l := range r.Layers {
		doc[string(l.Source)] = map[string]any(l.Values)
	}
	return doc
}

// formatValue renders a leaf value on one line using JSON notation, so
// strings are quoted and unset values read as null.
func formatValue(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "?"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/release-it/internal/config"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("%s %s\n", report.Tool, report.Version)
	if report.LocalConfigPath != "" {
		ew.printf("Config:    %s\n", report.LocalConfigPath)
	} else {
		ew.println("Config:    (none)")
	}
	ew.printf("Increment: %s\n", formatValue(report.Increment))
	ew.printf("Mode:      %s\n", modeLine(report.Flags))
	ew.println(strings.Repeat("─", 60))

	if report.View == ViewSources {
		writeLayersText(ew, report.Layers)
		return ew.err
	}

	width := 0
	for _, e := range report.Entries {
		width = max(width, len(e.Path))
	}
	for _, e := range report.Entries {
		ew.printf("  %-*s  %s  %s\n", width, e.Path, formatValue(e.Value), sourceLabel(e.Source))
	}
	return ew.err
}

func writeLayersText(ew *errWriter, layers []Layer) {
	for _, l := range layers {
		paths := l.Values.Paths()
		ew.printf("\n%s", sourceLabel(l.Source))
		if l.Path != "" {
			ew.printf(" %s", l.Path)
		}
		ew.printf(" (%d)\n", len(paths))
		if len(paths) == 0 {
			ew.println("  (empty)")
			continue
		}
		width := 0
		for _, p := range paths {
			width = max(width, len(p))
		}
		for _, p := range paths {
			v, _ := l.Values.Get(p)
			ew.printf("  %-*s  %s\n", width, p, formatValue(v))
		}
	}
}

func modeLine(f Flags) string {
	var parts []string
	if f.Interactive {
		parts = append(parts, "interactive")
	} else {
		parts = append(parts, "non-interactive")
	}
	if f.DryRun {
		parts = append(parts, "dry run")
	}
	if f.Verbose {
		parts = append(parts, "verbose")
	}
	if f.Debug {
		parts = append(parts, "debug")
	}
	return strings.Join(parts, ", ")
}

// sourceColors gives each source a stable color. color.NoColor disables
// them when stdout is not a terminal.
var sourceColors = map[config.Source]*color.Color{
	config.SourceCLI:      color.New(color.FgGreen, color.Bold),
	config.SourceOverlay:  color.New(color.FgGreen),
	config.SourceLocal:    color.New(color.FgCyan),
	config.SourcePackage:  color.New(color.FgBlue),
	config.SourceManifest: color.New(color.FgMagenta),
	config.SourceDefault:  color.New(color.Faint),
	config.SourceDerived:  color.New(color.FgYellow),
	config.SourceAssigned: color.New(color.FgYellow, color.Bold),
}

func sourceLabel(src config.Source) string {
	label := "[" + string(src) + "]"
	if c, ok := sourceColors[src]; ok {
		return c.Sprint(label)
	}
	return label
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

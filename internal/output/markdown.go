package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("## %s configuration\n\n", report.Tool)
	ew.printf("- **Version:** %s\n", report.Version)
	if report.LocalConfigPath != "" {
		ew.printf("- **Config file:** `%s`\n", report.LocalConfigPath)
	}
	ew.printf("- **Increment:** `%s`\n", formatValue(report.Increment))
	ew.printf("- **Mode:** %s\n\n", modeLine(report.Flags))

	if report.View == ViewSources {
		for _, l := range report.Layers {
			title := string(l.Source)
			if l.Path != "" {
				title += fmt.Sprintf(" (`%s`)", l.Path)
			}
			paths := l.Values.Paths()
			ew.printf("<details>\n<summary>%s: %d</summary>\n\n", title, len(paths))
			if len(paths) > 0 {
				ew.println("| Option | Value |")
				ew.println("|--------|-------|")
				for _, p := range paths {
					v, _ := l.Values.Get(p)
					ew.printf("| `%s` | `%s` |\n", p, mdCell(formatValue(v)))
				}
				ew.println("")
			}
			ew.println("</details>\n")
		}
		return ew.err
	}

	ew.println("| Option | Value | Source |")
	ew.println("|--------|-------|--------|")
	for _, e := range report.Entries {
		ew.printf("| `%s` | `%s` | %s |\n", e.Path, mdCell(formatValue(e.Value)), e.Source)
	}
	return ew.err
}

// mdCell escapes characters that would break a table cell.
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

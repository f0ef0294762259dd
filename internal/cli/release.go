package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/release-it/internal/config"
	"github.com/dshills/release-it/internal/logging"
	"github.com/dshills/release-it/internal/output"
)

func runRelease(cmd *cobra.Command, argv []string) {
	c, err := resolve(cmd, "", argv)
	if err != nil {
		fail(cmd, err)
		return
	}

	out := cmd.OutOrStdout()
	switch {
	case c.IsShowHelp():
		if err := cmd.Help(); err != nil {
			fail(cmd, err)
		}
		return
	case c.IsShowVersion():
		fmt.Fprintln(out, version)
		return
	}

	logging.Logger.Info().
		Str("config", c.LocalConfigPath()).
		Bool("dryRun", c.IsDryRun()).
		Bool("interactive", c.IsInteractive()).
		Msg("configuration resolved")

	if err := writePlan(out, c); err != nil {
		fail(cmd, err)
		return
	}

	if c.IsVerbose() {
		report := output.NewReport(c, output.ReportOptions{Tool: "release-it", Version: version})
		if err := (&output.TextWriter{}).Write(out, report); err != nil {
			fail(cmd, err)
		}
	}
}

// planStep is one release step and the option that switches it on.
type planStep struct {
	label  string
	option string
	detail string
}

var planSteps = []planStep{
	{"Commit", "git.commit", "git.commitMessage"},
	{"Tag", "git.tag", "git.tagName"},
	{"Push", "git.push", "git.pushRepo"},
	{"Publish to npm", "npm.publish", "npm.tag"},
	{"GitHub release", "github.release", "github.releaseName"},
}

// writePlan prints what a release run with c would do.
func writePlan(w io.Writer, c *config.Config) error {
	opts := c.Options()
	var b strings.Builder

	title := "Release plan"
	if c.IsDryRun() {
		title += " (dry run)"
	}
	fmt.Fprintln(&b, title)

	name, _ := opts.String("npm.name")
	current, _ := opts.String("npm.version")
	if name != "" || current != "" {
		fmt.Fprintf(&b, "  Package:     %s %s\n", name, current)
	}
	inc, _ := opts.Get("increment")
	if inc == nil {
		inc = "(prompt)"
		if !c.IsInteractive() {
			inc = "(from commits)"
		}
	}
	fmt.Fprintf(&b, "  Increment:   %v\n", inc)
	if pre, _ := opts.Bool("preRelease"); pre {
		id, _ := opts.Get("preReleaseId")
		if id == nil {
			id = "(none)"
		}
		fmt.Fprintf(&b, "  Pre-release: %v\n", id)
	}

	for _, step := range planSteps {
		on, _ := opts.Bool(step.option)
		mark := "skip"
		if on {
			mark = "yes"
		}
		fmt.Fprintf(&b, "  %-15s %-4s", step.label+":", mark)
		if detail, ok := opts.Get(step.detail); on && ok && detail != nil {
			fmt.Fprintf(&b, " %v", detail)
		}
		fmt.Fprintln(&b)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

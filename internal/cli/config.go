package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/release-it/internal/logging"
	"github.com/dshills/release-it/internal/output"
)

// Shared config flags
var (
	flagFormat      string
	flagOut         string
	flagNoRedact    bool
	flagRedactPaths []string
	flagDir         string
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format ("+strings.Join(output.Formats, ", ")+")")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().StringSliceVar(&flagRedactPaths, "redact", nil, "Additional option paths to mask (globs, comma-separated)")
	cmd.Flags().StringVar(&flagDir, "dir", "", "Project directory (default: current directory)")
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect resolved configuration",
		Long: "Inspect the options a release run would use. Release arguments go after --,\n" +
			"for example: release-it config show --format json -- major --preRelease=beta",
	}

	showCmd := &cobra.Command{
		Use:   "show [flags] [-- RELEASE ARGS]",
		Short: "Show resolved options and where each value came from",
		Run: func(cmd *cobra.Command, argv []string) {
			runReport(cmd, argv, output.ViewOptions)
		},
	}
	addConfigFlags(showCmd)

	sourcesCmd := &cobra.Command{
		Use:   "sources [flags] [-- RELEASE ARGS]",
		Short: "Show every configuration source separately",
		Run: func(cmd *cobra.Command, argv []string) {
			runReport(cmd, argv, output.ViewSources)
		},
	}
	addConfigFlags(sourcesCmd)

	getCmd := &cobra.Command{
		Use:   "get <path> [-- RELEASE ARGS]",
		Short: "Print one resolved option",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGet,
	}
	getCmd.Flags().StringVar(&flagDir, "dir", "", "Project directory (default: current directory)")

	configCmd.AddCommand(showCmd, sourcesCmd, getCmd)
	return configCmd
}

// releaseArgs returns the arguments after --, or all of them when the
// command line has none.
func releaseArgs(cmd *cobra.Command, argv []string) (own, release []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return argv, nil
	}
	return argv[:dash], argv[dash:]
}

func runReport(cmd *cobra.Command, argv []string, view output.View) {
	own, release := releaseArgs(cmd, argv)
	if len(own) > 0 {
		fail(cmd, fmt.Errorf("%w: unexpected arguments %v (release arguments go after --)", errUsage, own))
		return
	}
	if _, err := output.GetWriter(flagFormat); err != nil {
		fail(cmd, fmt.Errorf("%w: %v", errUsage, err))
		return
	}

	c, err := resolve(cmd, flagDir, release)
	if err != nil {
		fail(cmd, err)
		return
	}

	report := output.NewReport(c, output.ReportOptions{
		Tool:        "release-it",
		Version:     version,
		View:        view,
		NoRedact:    flagNoRedact,
		RedactPaths: flagRedactPaths,
	})
	if flagNoRedact {
		fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: secret redaction is disabled")
	}
	if err := output.WriteReportTo(cmd.OutOrStdout(), report, flagFormat, flagOut); err != nil {
		fail(cmd, err)
	}
}

func runGet(cmd *cobra.Command, argv []string) {
	own, release := releaseArgs(cmd, argv)
	if len(own) != 1 {
		fail(cmd, fmt.Errorf("%w: expected exactly one option path, got %v", errUsage, own))
		return
	}
	path := own[0]

	c, err := resolve(cmd, flagDir, release)
	if err != nil {
		fail(cmd, err)
		return
	}

	v, ok := c.Get(path)
	if !ok {
		fail(cmd, fmt.Errorf("option %q is not set", path))
		return
	}
	logging.Logger.Info().Str("path", path).Str("source", string(c.Origin(path))).Msg("resolved option")

	if s, isString := v.(string); isString {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(cmd, fmt.Errorf("marshaling %s: %w", path, err))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}

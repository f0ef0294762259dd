package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/release-it/internal/args"
	"github.com/dshills/release-it/internal/config"
	"github.com/dshills/release-it/internal/logging"
	"github.com/dshills/release-it/internal/source"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitRuntimeError = 4
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the command tree against os.Args and returns an exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(argv []string, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	logging.Init(logging.Config{Level: logging.WarnLevel, Output: stderr, Pretty: true})

	root := newRootCmd()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "release-it [increment] [flags]",
		Short: "Resolve release configuration",
		Long: "release-it merges built-in defaults, package.json, the local config file and\n" +
			"command-line arguments into the options of one release run and prints the plan.\n\n" +
			"Flags use dotted paths (--git.tagName=v${version}), negation (--no-npm.publish)\n" +
			"and shorthands: -c config, -d dry run, -e debug, -f force, -h help,\n" +
			"-i increment, -n non-interactive, -p publish, -v version, -V verbose.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		Run:                runRelease,
	}
	root.AddCommand(newConfigCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print release-it version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "release-it version %s\n", version)
		},
	}
}

// resolve builds the configuration for argv. Logging is switched to the
// level the command line asks for before any source is read, then to the
// level the resolved options ask for.
func resolve(cmd *cobra.Command, dir string, argv []string) (*config.Config, error) {
	pre := args.Parse(argv).Args
	verbose, _ := pre.Bool(args.PathVerbose)
	debug, _ := pre.Bool(args.PathDebug)
	initLogging(cmd, verbose, debug)

	opts := []config.Option{config.WithLogger(logging.Logger)}
	if dir != "" {
		opts = append(opts, config.WithDir(dir))
	}
	c, err := config.NewFromArgs(nil, argv, opts...)
	if err != nil {
		return nil, err
	}
	initLogging(cmd, c.IsVerbose(), c.IsDebug())
	return c, nil
}

func initLogging(cmd *cobra.Command, verbose, debug bool) {
	logging.Init(logging.Config{
		Level:  logging.LevelFor(verbose, debug),
		Output: cmd.ErrOrStderr(),
		Pretty: true,
	})
}

// fail reports err and records the exit code matching its class.
func fail(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	exitCode = exitCodeFor(err)
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, source.ErrFileNotFound), errors.Is(err, source.ErrParse):
		return ExitConfigError
	case errors.Is(err, errUsage):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// errUsage marks errors caused by how a command was invoked.
var errUsage = errors.New("usage error")

package config

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/dshills/release-it/internal/args"
	"github.com/dshills/release-it/internal/ci"
	"github.com/dshills/release-it/internal/logging"
	"github.com/dshills/release-it/internal/source"
	"github.com/dshills/release-it/internal/tree"
)

// Keys that switch sources off when set to false.
const (
	KeyConfig         = "config"
	KeyManifestConfig = "manifestConfig"
	KeyManifestFields = "manifestFields"
)

// State is the construction stage a Config has reached.
type State int

// Construction stages in order.
const (
	StateUninitialized State = iota
	StateParsed
	StateLoaded
	StateMerged
	StateDerived
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateParsed:
		return "parsed"
	case StateLoaded:
		return "loaded"
	case StateMerged:
		return "merged"
	case StateDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Option customizes how a Config loads its sources.
type Option func(*Config)

// WithFs sets the filesystem sources are read from.
func WithFs(fsys afero.Fs) Option {
	return func(c *Config) { c.fs = fsys }
}

// WithDir sets the project directory holding the local config file and
// package.json. Defaults to the process working directory.
func WithDir(dir string) Option {
	return func(c *Config) { c.dir = dir }
}

// WithLogger sets the logger used while loading sources.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

// WithNonInteractiveDetector replaces environment detection used when no
// source sets nonInteractive.
func WithNonInteractiveDetector(detect func() bool) Option {
	return func(c *Config) { c.nonInteractiveEnv = detect }
}

// WithDefaults replaces the built-in default configuration.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) { c.defaults = tree.FromMap(defaults) }
}

// Config holds every configuration source of one release run and the
// options resolved from them.
type Config struct {
	fs                afero.Fs
	dir               string
	logger            zerolog.Logger
	nonInteractiveEnv func() bool
	defaults          tree.Tree

	state State

	cliArguments               tree.Tree
	extraArguments             []string
	overlay                    tree.Tree
	defaultConfig              tree.Tree
	localConfig                tree.Tree
	localConfigPath            string
	localPackageManifestConfig tree.Tree
	npmConfig                  tree.Tree

	options  tree.Tree
	derived  map[string]bool
	assigned map[string]bool
	flags    flags
}

// New resolves configuration from an overlay and an invocation string such
// as `major --preRelease=beta -V`. Only source loading can fail.
func New(overlay map[string]any, invocation string, opts ...Option) (*Config, error) {
	return NewFromArgs(overlay, args.Split(invocation), opts...)
}

// NewFromArgs resolves configuration from an overlay and an argument list.
// A failed source load returns a nil Config.
func NewFromArgs(overlay map[string]any, argv []string, opts ...Option) (*Config, error) {
	c := &Config{
		logger:            logging.Logger,
		nonInteractiveEnv: ci.NonInteractive,
		derived:           map[string]bool{},
		assigned:          map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}

	parsed := args.Parse(argv)
	c.cliArguments = parsed.Args
	c.extraArguments = parsed.Extra
	c.overlay = tree.FromMap(overlay)
	c.state = StateParsed
	if len(parsed.Extra) > 0 {
		c.logger.Debug().Strs("extra", parsed.Extra).Msg("ignoring extra positional arguments")
	}

	if err := c.load(); err != nil {
		return nil, err
	}
	c.state = StateLoaded

	c.options = mergeLayers(c.layers())
	c.state = StateMerged

	for _, path := range derive(c.options, c.cliArguments) {
		c.derived[path] = true
	}
	c.refresh()
	c.state = StateDerived

	return c, nil
}

func (c *Config) load() error {
	loader := source.NewLoader(c.fs, c.dir, c.logger)

	if c.defaults != nil {
		c.defaultConfig = c.defaults.Clone()
	} else {
		c.defaultConfig = source.Defaults()
	}

	path, explicit := c.explicitLocalConfig()
	switch {
	case explicit:
		local, used, err := loader.LoadLocal(path)
		if err != nil {
			return err
		}
		c.localConfig, c.localConfigPath = local, used
	case c.disabled(KeyConfig):
		c.logger.Debug().Msg("local config disabled")
		c.localConfig = tree.New()
	default:
		local, used, err := loader.LoadLocal("")
		if err != nil {
			return err
		}
		c.localConfig, c.localConfigPath = local, used
	}

	c.localPackageManifestConfig = tree.New()
	c.npmConfig = tree.New()
	skipBlock, skipFields := c.disabled(KeyManifestConfig), c.disabled(KeyManifestFields)
	if skipBlock && skipFields {
		c.logger.Debug().Msg("package manifest disabled")
		return nil
	}
	manifest, err := loader.LoadManifest()
	if err != nil {
		return err
	}
	if !skipBlock {
		c.localPackageManifestConfig = manifest.Config()
	}
	if !skipFields {
		c.npmConfig = manifest.Fields()
	}
	return nil
}

// explicitLocalConfig returns a config path given on the command line or in
// the overlay. An explicit path wins over --no.config.
func (c *Config) explicitLocalConfig() (string, bool) {
	for _, t := range []tree.Tree{c.cliArguments, c.overlay} {
		if p, ok := t.String(KeyConfig); ok && p != "" {
			return p, true
		}
	}
	return "", false
}

// disabled reports whether key is explicitly false on the command line or
// in the overlay.
func (c *Config) disabled(key string) bool {
	for _, t := range []tree.Tree{c.cliArguments, c.overlay} {
		if b, ok := t.Bool(key); ok && !b {
			return true
		}
	}
	return false
}

// layers returns the merge inputs, lowest precedence first.
func (c *Config) layers() []layer {
	manifest := tree.New()
	if len(c.npmConfig) > 0 {
		manifest["npm"] = map[string]any(c.npmConfig)
	}
	return []layer{
		{SourceDefault, c.defaultConfig},
		{SourceManifest, manifest},
		{SourcePackage, c.localPackageManifestConfig},
		{SourceLocal, c.localConfig},
		{SourceOverlay, c.overlay},
		{SourceCLI, c.cliArguments},
	}
}

func (c *Config) refresh() {
	c.flags = deriveFlags(c.options, c.nonInteractiveEnv)
}

// AssignOptions deep-merges partial into the resolved options, letting the
// caller's values win, and recomputes the convenience flags.
func (c *Config) AssignOptions(partial map[string]any) {
	t := tree.FromMap(partial)
	tree.Merge(c.options, t)
	for _, path := range t.Paths() {
		c.assigned[path] = true
	}
	c.refresh()
	c.state = StateDerived
}

// Origin reports which source supplied the resolved value at path, or ""
// when path is not set.
func (c *Config) Origin(path string) Source {
	if !c.options.Has(path) {
		return ""
	}
	if c.assigned[path] {
		return SourceAssigned
	}
	if c.derived[path] {
		return SourceDerived
	}
	if src, ok := originOf(c.layers(), path); ok {
		return src
	}
	return SourceDerived
}

// Layer returns the raw values of one merged source.
func (c *Config) Layer(src Source) tree.Tree {
	for _, l := range c.layers() {
		if l.source == src {
			return l.values
		}
	}
	return nil
}

// Get returns the resolved value at path.
func (c *Config) Get(path string) (any, bool) {
	return c.options.Get(path)
}

// Options returns the resolved options. The tree is owned by c.
func (c *Config) Options() tree.Tree { return c.options }

// CliArguments returns the parsed command-line arguments.
func (c *Config) CliArguments() tree.Tree { return c.cliArguments }

// ExtraArguments returns bare tokens that followed the increment.
func (c *Config) ExtraArguments() []string { return c.extraArguments }

// Overlay returns the options passed to New.
func (c *Config) Overlay() tree.Tree { return c.overlay }

// DefaultConfig returns the built-in defaults used for this run.
func (c *Config) DefaultConfig() tree.Tree { return c.defaultConfig }

// LocalConfig returns the local config file contents.
func (c *Config) LocalConfig() tree.Tree { return c.localConfig }

// LocalConfigPath returns the local config file that was read, or "".
func (c *Config) LocalConfigPath() string { return c.localConfigPath }

// LocalPackageManifestConfig returns the "release-it" block of package.json.
func (c *Config) LocalPackageManifestConfig() tree.Tree { return c.localPackageManifestConfig }

// NpmConfig returns the fields derived from package.json.
func (c *Config) NpmConfig() tree.Tree { return c.npmConfig }

// State returns the construction stage reached.
func (c *Config) State() State { return c.state }

// IsVerbose mirrors the verbose option.
func (c *Config) IsVerbose() bool { return c.flags.verbose }

// IsDryRun mirrors the dryRun option.
func (c *Config) IsDryRun() bool { return c.flags.dryRun }

// IsDebug mirrors the debug option.
func (c *Config) IsDebug() bool { return c.flags.debug }

// IsInteractive is false when nonInteractive is true, or when it is unset
// and the environment is non-interactive.
func (c *Config) IsInteractive() bool { return c.flags.interactive }

// IsShowVersion reports whether --version was requested.
func (c *Config) IsShowVersion() bool { return c.flags.showVersion }

// IsShowHelp reports whether --help was requested.
func (c *Config) IsShowHelp() bool { return c.flags.showHelp }

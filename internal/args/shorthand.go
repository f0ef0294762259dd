package args

// Canonical option paths the parser treats specially.
const (
	PathIncrement      = "increment"
	PathPreRelease     = "preRelease"
	PathPreReleaseID   = "preReleaseId"
	PathConfig         = "config"
	PathNpmTag         = "npm.tag"
	PathVerbose        = "verbose"
	PathDebug          = "debug"
	PathDryRun         = "dryRun"
	PathNonInteractive = "nonInteractive"
	PathVersion        = "version"
	PathHelp           = "help"
)

// Shorthand binds a single-letter flag to a canonical option path.
type Shorthand struct {
	Path string
	// Value is assigned when the flag appears on its own. Ignored when
	// TakesValue is set.
	Value any
	// TakesValue makes the flag read its value from the rest of the token
	// or from the next token.
	TakesValue bool
}

// Shorthands is the fixed single-letter flag table.
var Shorthands = map[rune]Shorthand{
	'c': {Path: PathConfig, TakesValue: true},
	'd': {Path: PathDryRun, Value: true},
	'e': {Path: PathDebug, Value: true},
	'f': {Path: "force", Value: true},
	'h': {Path: PathHelp, Value: true},
	'i': {Path: PathIncrement, TakesValue: true},
	'n': {Path: PathNonInteractive, Value: true},
	'p': {Path: "npm.publish", Value: true},
	'v': {Path: PathVersion, Value: true},
	'V': {Path: PathVerbose, Value: true},
}

// LongAliases maps kebab-case long flags onto their canonical paths.
var LongAliases = map[string]string{
	"dry-run":         PathDryRun,
	"non-interactive": PathNonInteractive,
	"pre-release":     PathPreRelease,
	"pre-release-id":  PathPreReleaseID,
}

// Booleans lists paths that never take the following token as their value
// unless it is the literal true or false.
var Booleans = map[string]bool{
	PathDebug:                true,
	PathDryRun:               true,
	PathHelp:                 true,
	PathNonInteractive:       true,
	PathVerbose:              true,
	PathVersion:              true,
	PathPreRelease:           true,
	"force":                  true,
	"requireCleanWorkingDir": true,
	"requireUpstream":        true,
	"git.commit":             true,
	"git.tag":                true,
	"git.push":               true,
	"github.release":         true,
	"github.preRelease":      true,
	"github.draft":           true,
	"npm.publish":            true,
	"npm.private":            true,
}

// stringOnly lists paths whose values are never coerced to numbers.
var stringOnly = map[string]bool{
	PathIncrement:    true,
	PathPreRelease:   true,
	PathPreReleaseID: true,
	PathConfig:       true,
	PathNpmTag:       true,
}

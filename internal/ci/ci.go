// Package ci detects whether the process runs without a human at the
// terminal.
package ci

import (
	"os"

	"golang.org/x/term"
)

// envVars are set by common CI providers.
var envVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"BUILD_NUMBER",
	"RUN_ID",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_URL",
	"TEAMCITY_VERSION",
	"TF_BUILD",
}

// Detected reports whether a CI environment variable is set. CI=false is
// honored as an opt-out.
func Detected() bool {
	return detected(os.LookupEnv)
}

func detected(lookup func(string) (string, bool)) bool {
	if v, ok := lookup("CI"); ok && v == "false" {
		return false
	}
	for _, name := range envVars {
		if v, ok := lookup(name); ok && v != "" {
			return true
		}
	}
	return false
}

// NonInteractive reports whether prompts cannot be answered: either a CI
// environment is detected or stdin is not a terminal.
func NonInteractive() bool {
	if Detected() {
		return true
	}
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

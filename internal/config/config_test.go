package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/dshills/release-it/internal/source"
	"github.com/dshills/release-it/internal/tree"
)

const (
	testDir      = "/project"
	testManifest = `{"name": "release-it", "version": "9.1.0", "release-it": {}}`
	testLocal    = `{"github": {"release": true}, "git": {"requireCleanWorkingDir": false}}`
)

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, testDir+"/"+name, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return fsys
}

func projectFs(t *testing.T) afero.Fs {
	return newTestFs(t, map[string]string{
		"package.json":     testManifest,
		".release-it.json": testLocal,
	})
}

func testOptions(fsys afero.Fs, opts ...Option) []Option {
	base := []Option{
		WithFs(fsys),
		WithDir(testDir),
		WithLogger(zerolog.Nop()),
		WithNonInteractiveDetector(func() bool { return false }),
	}
	return append(base, opts...)
}

// getConfig resolves cli with the local config file switched off.
func getConfig(t *testing.T, overlay map[string]any, cli string, opts ...Option) *Config {
	t.Helper()
	c, err := New(overlay, cli+" --no.config", testOptions(projectFs(t), opts...)...)
	if err != nil {
		t.Fatalf("New(%q) error: %v", cli, err)
	}
	return c
}

func TestNew_Sources(t *testing.T) {
	c, err := New(nil, "", testOptions(projectFs(t))...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if diff := cmp.Diff(tree.Tree{}, c.CliArguments()); diff != "" {
		t.Errorf("CliArguments mismatch (-want +got):\n%s", diff)
	}
	wantLocal := tree.Tree{
		"github": map[string]any{"release": true},
		"git":    map[string]any{"requireCleanWorkingDir": false},
	}
	if diff := cmp.Diff(wantLocal, c.LocalConfig()); diff != "" {
		t.Errorf("LocalConfig mismatch (-want +got):\n%s", diff)
	}
	if c.LocalConfigPath() != "/project/.release-it.json" {
		t.Errorf("LocalConfigPath = %q", c.LocalConfigPath())
	}
	if diff := cmp.Diff(tree.Tree{}, c.LocalPackageManifestConfig()); diff != "" {
		t.Errorf("LocalPackageManifestConfig mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(source.Defaults(), c.DefaultConfig()); diff != "" {
		t.Errorf("DefaultConfig mismatch (-want +got):\n%s", diff)
	}
	wantNpm := tree.Tree{"version": "9.1.0", "name": "release-it", "publish": true}
	if diff := cmp.Diff(wantNpm, c.NpmConfig()); diff != "" {
		t.Errorf("NpmConfig mismatch (-want +got):\n%s", diff)
	}
	if c.State() != StateDerived {
		t.Errorf("State = %v, want derived", c.State())
	}
}

func TestParseArgs(t *testing.T) {
	c := getConfig(t, nil, `1.0.0 --git.commitMessage="release ${version}" -V`)
	cli := c.CliArguments()
	if v, _ := cli.Bool("verbose"); !v {
		t.Error("cliArguments.verbose should be true")
	}
	if v, _ := cli.String("increment"); v != "1.0.0" {
		t.Errorf("cliArguments.increment = %q, want 1.0.0", v)
	}
	if v, _ := cli.String("git.commitMessage"); v != "release ${version}" {
		t.Errorf("cliArguments.git.commitMessage = %q", v)
	}
}

func TestParseArgs_IncrementForms(t *testing.T) {
	for _, cli := range []string{"--increment=1.0.0", "-i 1.0.0"} {
		t.Run(cli, func(t *testing.T) {
			c := getConfig(t, nil, cli)
			if v, _ := c.CliArguments().String("increment"); v != "1.0.0" {
				t.Errorf("increment = %q, want 1.0.0", v)
			}
		})
	}
}

func TestMergeOptions(t *testing.T) {
	c := getConfig(t, nil, "1.0.0 -eV --github.release")
	if !c.IsVerbose() {
		t.Error("IsVerbose should be true")
	}
	if c.IsDryRun() {
		t.Error("IsDryRun should be false")
	}
	if !c.IsInteractive() {
		t.Error("IsInteractive should follow the detector (interactive)")
	}
	if c.IsShowVersion() {
		t.Error("IsShowVersion should be false even though npm.version is set")
	}
	if c.IsShowHelp() {
		t.Error("IsShowHelp should be false")
	}
	if v, _ := c.Options().String("increment"); v != "1.0.0" {
		t.Errorf("options.increment = %q", v)
	}
	if v, _ := c.Options().Bool("github.release"); !v {
		t.Error("options.github.release should be true")
	}
}

func TestIsInteractive_Environment(t *testing.T) {
	c := getConfig(t, nil, "", WithNonInteractiveDetector(func() bool { return true }))
	if c.IsInteractive() {
		t.Error("IsInteractive should be false in a non-interactive environment")
	}

	c = getConfig(t, nil, "-n")
	if c.IsInteractive() {
		t.Error("-n should switch interactive mode off")
	}
}

func TestIsInteractive_NegatedShorthand(t *testing.T) {
	c := getConfig(t, nil, "--no-n", WithNonInteractiveDetector(func() bool { return true }))
	if !c.IsInteractive() {
		t.Error("--no-n should restore interactive mode")
	}
}

func TestAssignOptions(t *testing.T) {
	c := getConfig(t, nil, "1.0.0 -eV --github.release")
	before := c.Options().Clone()

	c.AssignOptions(map[string]any{
		"verbose":   false,
		"increment": "major",
		"github":    map[string]any{"release": false},
	})

	if c.IsVerbose() {
		t.Error("IsVerbose should re-derive to false")
	}
	if v, _ := c.Options().String("increment"); v != "major" {
		t.Errorf("increment = %q, want major", v)
	}
	if v, ok := c.Options().Bool("github.release"); !ok || v {
		t.Error("github.release should be false")
	}

	// Everything else is untouched.
	after := c.Options().Flatten()
	for path, want := range before.Flatten() {
		switch path {
		case "verbose", "increment", "github.release":
			continue
		}
		if diff := cmp.Diff(want, after[path]); diff != "" {
			t.Errorf("%s changed (-before +after):\n%s", path, diff)
		}
	}
	if c.Origin("github.release") != SourceAssigned {
		t.Errorf("Origin(github.release) = %q, want assigned", c.Origin("github.release"))
	}
	if c.State() != StateDerived {
		t.Errorf("State = %v, want derived", c.State())
	}
}

func TestNegatedNestedPath(t *testing.T) {
	c := getConfig(t, nil, "--no-npm.publish")
	v, ok := c.Options().Bool("npm.publish")
	if !ok || v {
		t.Errorf("npm.publish = %v, %v, want false, true", v, ok)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	_, err := New(map[string]any{"config": "nofile"}, "", testOptions(projectFs(t))...)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !errors.Is(err, source.ErrFileNotFound) {
		t.Errorf("error %v is not ErrFileNotFound", err)
	}
	if !strings.Contains(err.Error(), "File not found") || !strings.Contains(err.Error(), "nofile") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestExplicitConfigWinsOverDisable(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"custom.json": `{"npm": {"tag": "custom"}}`})
	c, err := New(nil, "--no.config --config=custom.json", testOptions(fsys)...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if v, _ := c.Options().String("npm.tag"); v != "custom" {
		t.Errorf("npm.tag = %q, want custom", v)
	}

	_, err = New(map[string]any{"config": "missing.json"}, "--no.config", testOptions(fsys)...)
	if !errors.Is(err, source.ErrFileNotFound) {
		t.Errorf("overlay path should be loaded despite --no.config, got %v", err)
	}
}

func TestMalformedLocalConfig(t *testing.T) {
	fsys := newTestFs(t, map[string]string{".release-it.json": `{"git": `})
	c, err := New(nil, "", testOptions(fsys)...)
	if c != nil {
		t.Error("Config should be nil on failure")
	}
	if !errors.Is(err, source.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestInvocationValuesVerbatim(t *testing.T) {
	tests := []struct {
		name string
		cli  string
		want string
	}{
		{"bare variable", `--git.commitMessage="release $version"`, "release $version"},
		{"arithmetic", `--git.commitMessage="build $((1+1))"`, "build $((1+1))"},
		{"command substitution", `--git.commitMessage="release $(date)"`, "release $(date)"},
		{"unbalanced quote", `--git.commitMessage="unterminated`, `"unterminated`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(nil, tt.cli+" --no.config", testOptions(projectFs(t))...)
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.cli, err)
			}
			if v, _ := c.Options().String("git.commitMessage"); v != tt.want {
				t.Errorf("git.commitMessage = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestPreRelease(t *testing.T) {
	tests := []struct {
		name          string
		cli           string
		wantIncrement any
		wantID        any
		wantTag       string
	}{
		{"identifier", "major --preRelease=beta", "major", "beta", "beta"},
		{"no identifier", "--preRelease", nil, nil, "latest"},
		{"explicit tag", "--preRelease --npm.tag=alpha", nil, nil, "alpha"},
		{"identifier without increment", "--preRelease=alpha", nil, "alpha", "alpha"},
		{"explicit tag beats identifier", "minor --preRelease=rc --npm.tag=next", "minor", "rc", "next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := getConfig(t, nil, tt.cli).Options()

			if v, ok := opts.Get("increment"); !ok || v != tt.wantIncrement {
				t.Errorf("increment = %v (present %v), want %v", v, ok, tt.wantIncrement)
			}
			if v, ok := opts.Get("preReleaseId"); !ok || v != tt.wantID {
				t.Errorf("preReleaseId = %v (present %v), want %v", v, ok, tt.wantID)
			}
			if v, _ := opts.Bool("preRelease"); !v {
				t.Error("preRelease should be true")
			}
			if v, _ := opts.Bool("github.preRelease"); !v {
				t.Error("github.preRelease should be true")
			}
			if v, _ := opts.String("npm.tag"); v != tt.wantTag {
				t.Errorf("npm.tag = %q, want %q", v, tt.wantTag)
			}
		})
	}
}

func TestPreRelease_DefaultTagWithoutDefaults(t *testing.T) {
	c := getConfig(t, nil, "--preRelease", WithDefaults(map[string]any{}))
	if v, _ := c.Options().String("npm.tag"); v != "latest" {
		t.Errorf("npm.tag = %q, want latest", v)
	}
	if c.Origin("npm.tag") != SourceDerived {
		t.Errorf("Origin(npm.tag) = %q, want derived", c.Origin("npm.tag"))
	}
}

func TestPreRelease_ConfiguredID(t *testing.T) {
	c := getConfig(t, map[string]any{"preReleaseId": "next"}, "--preRelease")
	if v, _ := c.Options().String("npm.tag"); v != "next" {
		t.Errorf("npm.tag = %q, want next", v)
	}
}

func TestPreRelease_Origin(t *testing.T) {
	c := getConfig(t, nil, "--preRelease")
	if o := c.Origin("preRelease"); o != SourceCLI {
		t.Errorf("Origin(preRelease) = %q, want cli", o)
	}
	if o := c.Origin("preReleaseId"); o != SourceDefault {
		t.Errorf("Origin(preReleaseId) = %q, want default", o)
	}
	if o := c.Origin("github.preRelease"); o != SourceDerived {
		t.Errorf("Origin(github.preRelease) = %q, want derived", o)
	}

	c = getConfig(t, nil, "--preRelease=beta")
	if o := c.Origin("preRelease"); o != SourceDerived {
		t.Errorf("Origin(preRelease) = %q, want derived for a converted identifier", o)
	}
}

func TestPreRelease_Off(t *testing.T) {
	c := getConfig(t, nil, "--preRelease=false")
	if v, _ := c.Options().Bool("github.preRelease"); v {
		t.Error("github.preRelease should stay false")
	}
}

func TestPrecedence(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"package.json": `{
			"name": "pkg", "version": "1.0.0",
			"release-it": {"git": {"tagName": "package", "pushRepo": "package"}, "npm": {"publish": false}}
		}`,
		".release-it.json": `{"git": {"tagName": "local", "commitMessage": "local"}}`,
	})
	defaults := map[string]any{
		"git": map[string]any{"tagName": "default", "commitMessage": "default", "pushRepo": "default", "pushArgs": "default"},
		"npm": map[string]any{"publish": true, "access": "default"},
	}
	c, err := New(map[string]any{"git": map[string]any{"commitMessage": "overlay"}}, "--git.tagName=cli",
		testOptions(fsys, WithDefaults(defaults))...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tests := []struct {
		path   string
		want   any
		origin Source
	}{
		{"git.tagName", "cli", SourceCLI},
		{"git.commitMessage", "overlay", SourceOverlay},
		{"git.pushRepo", "package", SourcePackage},
		{"git.pushArgs", "default", SourceDefault},
		{"npm.publish", false, SourcePackage},
		{"npm.name", "pkg", SourceManifest},
		{"npm.access", "default", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := c.Get(tt.path)
			if !ok || got != tt.want {
				t.Errorf("%s = %v (present %v), want %v", tt.path, got, ok, tt.want)
			}
			if o := c.Origin(tt.path); o != tt.origin {
				t.Errorf("Origin(%s) = %q, want %q", tt.path, o, tt.origin)
			}
		})
	}
	if c.Origin("no.such.path") != "" {
		t.Error("Origin of missing path should be empty")
	}
}

func TestLocalBeatsPackageBlock(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"package.json":     `{"release-it": {"github": {"release": false}}}`,
		".release-it.json": `{"github": {"release": true}}`,
	})
	c, err := New(nil, "", testOptions(fsys)...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if v, _ := c.Options().Bool("github.release"); !v {
		t.Error("local config should win over the package.json block")
	}

	c, err = New(nil, "--no-github.release", testOptions(fsys)...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if v, ok := c.Options().Bool("github.release"); !ok || v {
		t.Error("negated CLI flag should override a local true")
	}
}

func TestDisableManifestSources(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"package.json": `{"name": "pkg", "private": true, "release-it": {"npm": {"tag": "from-package"}}}`,
	})
	c, err := New(nil, "--no.manifestConfig", testOptions(fsys)...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if len(c.LocalPackageManifestConfig()) != 0 {
		t.Errorf("package block should be skipped, got %v", c.LocalPackageManifestConfig())
	}
	if v, _ := c.Options().Bool("npm.publish"); v {
		t.Error("private manifest should still disable publishing")
	}

	c, err = New(nil, "--no.manifestFields", testOptions(fsys)...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if len(c.NpmConfig()) != 0 {
		t.Errorf("manifest fields should be skipped, got %v", c.NpmConfig())
	}
	if v, _ := c.Options().String("npm.tag"); v != "from-package" {
		t.Errorf("npm.tag = %q, want from-package", v)
	}
}

func TestIdempotentMerge(t *testing.T) {
	a, err := New(nil, "", testOptions(projectFs(t))...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	b, err := New(nil, "", testOptions(projectFs(t))...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if diff := cmp.Diff(a.Options(), b.Options()); diff != "" {
		t.Errorf("options differ between identical runs (-a +b):\n%s", diff)
	}
}

func TestSourcesNotMutated(t *testing.T) {
	c := getConfig(t, nil, "--preRelease=beta")
	if v, _ := c.CliArguments().String("preRelease"); v != "beta" {
		t.Errorf("cliArguments.preRelease = %q, derivation must not touch sources", v)
	}
	if _, ok := c.DefaultConfig().Get("github.preRelease"); !ok {
		t.Fatal("defaults should define github.preRelease")
	}
	if v, _ := c.DefaultConfig().Bool("github.preRelease"); v {
		t.Error("defaults mutated by derivation")
	}
}

func TestNewFromArgs(t *testing.T) {
	c, err := NewFromArgs(nil, []string{"patch", "--git.commitMessage=release ${version}", "extra"}, testOptions(projectFs(t))...)
	if err != nil {
		t.Fatalf("NewFromArgs error: %v", err)
	}
	if v, _ := c.Options().String("git.commitMessage"); v != "release ${version}" {
		t.Errorf("git.commitMessage = %q", v)
	}
	if diff := cmp.Diff([]string{"extra"}, c.ExtraArguments()); diff != "" {
		t.Errorf("ExtraArguments mismatch (-want +got):\n%s", diff)
	}
}

func TestLayer(t *testing.T) {
	c := getConfig(t, map[string]any{"verbose": true}, "major")
	if v, _ := c.Layer(SourceOverlay).Bool("verbose"); !v {
		t.Error("overlay layer should hold verbose")
	}
	if v, _ := c.Layer(SourceManifest).String("npm.name"); v != "release-it" {
		t.Errorf("manifest layer npm.name = %q", v)
	}
	if c.Layer(Source("bogus")) != nil {
		t.Error("unknown source should return nil")
	}
}

func TestStateString(t *testing.T) {
	if StateParsed.String() != "parsed" || State(99).String() != "unknown" {
		t.Errorf("unexpected state names")
	}
}

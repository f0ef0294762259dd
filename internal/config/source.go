package config

// Source indicates where a resolved option value came from.
type Source string

// Configuration source constants, lowest precedence first.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceManifest indicates the value was derived from package.json
	// fields (version, name, private, publish).
	SourceManifest Source = "manifest"

	// SourcePackage indicates the value came from the "release-it" block
	// of package.json.
	SourcePackage Source = "package"

	// SourceLocal indicates the value came from the local config file.
	SourceLocal Source = "local"

	// SourceOverlay indicates the value was passed to New by the caller.
	SourceOverlay Source = "overlay"

	// SourceCLI indicates the value came from a command-line argument.
	SourceCLI Source = "cli"

	// SourceDerived indicates the value was computed after merging.
	SourceDerived Source = "derived"

	// SourceAssigned indicates the value was set through AssignOptions.
	SourceAssigned Source = "assigned"
)

// Sources lists the merged layers, highest precedence first.
var Sources = []Source{
	SourceCLI,
	SourceOverlay,
	SourceLocal,
	SourcePackage,
	SourceManifest,
	SourceDefault,
}

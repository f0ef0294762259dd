package output

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLWriter outputs the report document as TOML. TOML has no null, so
// unset options are left out.
type TOMLWriter struct{}

func (t *TOMLWriter) Write(w io.Writer, report *Report) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(map[string]any(report.Document())); err != nil {
		return fmt.Errorf("writing TOML: %w", err)
	}
	return nil
}

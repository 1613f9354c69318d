package scriptorium

import (
	"strings"

	"github.com/tsawler/scriptorium/layout"
)

// Warning describes a non-fatal issue met while analyzing a page, such as a
// line dropped during refinement or a column with fewer lines than expected.
type Warning = layout.Warning

// FormatWarnings joins warnings into one human-readable string, one warning
// per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

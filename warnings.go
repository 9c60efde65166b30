package wikitable

import (
	"strings"

	"github.com/tsawler/wikitable/resolve"
)

// Warning reports a non-fatal, row-local condition encountered while
// resolving: a missing link, an unreachable secondary page, or a label
// that did not match in lenient mode. The affected row is still
// emitted with its extraction slots filled by the absent marker.
type Warning = resolve.Warning

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

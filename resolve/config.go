package resolve

import (
	"fmt"

	"github.com/tsawler/wikitable/format"
	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/rule"
)

// NoLinkColumn disables link following.
const NoLinkColumn = -1

// Config describes one resolution pass.
type Config struct {
	// Source is a URL, a local file path, or inline HTML markup.
	Source string

	// Kind pins how Source is acquired. The zero value classifies
	// Source by inspection.
	Kind format.SourceKind

	// Filter and Ordinal select the primary table.
	Filter  htmldoc.Filter
	Ordinal int

	// HasHeader strips the first row and uses its th cells as column
	// names. td cells in the header row contribute their column
	// ordinal instead.
	HasHeader bool

	// LinkColumn is the expanded-grid column whose links are followed,
	// or NoLinkColumn.
	LinkColumn int

	// OnLink is applied to each followed link's document. Nil means
	// links are not followed even when LinkColumn is set.
	OnLink *rule.Rule

	// Lenient downgrades a rule's failure to match on a resolvable
	// link from fatal to an absent marker plus warning.
	Lenient bool

	// AbsentMarker fills extraction slots for rows whose link is
	// missing or unusable. Defaults to the empty string.
	AbsentMarker string
}

func (c *Config) validate() error {
	if c.Source == "" {
		return fmt.Errorf("resolve: source is required")
	}
	if c.Ordinal < 0 {
		return fmt.Errorf("resolve: table ordinal %d is negative", c.Ordinal)
	}
	if c.LinkColumn < NoLinkColumn {
		return fmt.Errorf("resolve: link column %d is negative", c.LinkColumn)
	}
	return nil
}

// Warning records a non-fatal, row-local condition encountered during
// a pass. Row is the data-row index in the final result.
type Warning struct {
	Row     int
	Ref     string // the link target involved, if any
	Message string
}

func (w Warning) String() string {
	if w.Ref == "" {
		return fmt.Sprintf("row %d: %s", w.Row, w.Message)
	}
	return fmt.Sprintf("row %d (%s): %s", w.Row, w.Ref, w.Message)
}

// Result is the outcome of a resolution pass.
type Result struct {
	Header   []string   // nil unless HasHeader was set
	Rows     [][]string // primary grid rows plus appended extractions
	Warnings []Warning
}

package wikitable

import (
	"go.uber.org/zap"

	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/resolve"
	"github.com/tsawler/wikitable/rule"
)

// extractOptions holds configuration for a resolution pass.
type extractOptions struct {
	// Primary table selection
	filter  htmldoc.Filter
	ordinal int

	// Row handling
	hasHeader bool
	columns   []int // projection of output columns; nil means all

	// Link following
	linkColumn   int
	onLink       *rule.Rule
	lenient      bool
	absentMarker string

	// Collaborators
	fetcher resolve.Fetcher
	logger  *zap.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		ordinal:    0,
		linkColumn: resolve.NoLinkColumn,
		logger:     zap.NewNop(),
	}
}

// clone creates a deep copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	newOpts := o

	if o.columns != nil {
		newOpts.columns = make([]int, len(o.columns))
		copy(newOpts.columns, o.columns)
	}

	return newOpts
}

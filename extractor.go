package wikitable

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/wikitable/format"
	"github.com/tsawler/wikitable/grid"
	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/resolve"
	"github.com/tsawler/wikitable/rule"
)

// Extractor provides a fluent interface for normalizing an HTML table
// and following its links. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	source string
	kind   format.SourceKind

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:  e.source,
		kind:    e.kind,
		options: e.options.clone(),
		err:     e.err,
	}
}

// fail records the first configuration error; later calls keep it.
func (e *Extractor) fail(err error) *Extractor {
	newExt := e.clone()
	if newExt.err == nil {
		newExt.err = err
	}
	return newExt
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// TableFilter restricts the primary table to those carrying the given
// attribute. For class, the value matches any one class token.
//
// Example:
//
//	ds, _, err := wikitable.FromURL(url).TableFilter("class", "toccolours").Dataset(ctx)
func (e *Extractor) TableFilter(attr, value string) *Extractor {
	newExt := e.clone()
	newExt.options.filter = htmldoc.Filter{Attr: attr, Value: value}
	return newExt
}

// TableOrdinal selects which matching table to extract (zero-based,
// default 0).
func (e *Extractor) TableOrdinal(n int) *Extractor {
	if n < 0 {
		return e.fail(fmt.Errorf("wikitable: table ordinal %d is negative", n))
	}
	newExt := e.clone()
	newExt.options.ordinal = n
	return newExt
}

// HeaderRow treats the table's first row as a header: th cells become
// column names, td cells keep their column ordinal, and the row is
// excluded from the data.
func (e *Extractor) HeaderRow() *Extractor {
	newExt := e.clone()
	newExt.options.hasHeader = true
	return newExt
}

// Columns projects the output to the given column indices, in the
// given order. Indices refer to the expanded grid.
func (e *Extractor) Columns(indices ...int) *Extractor {
	for _, idx := range indices {
		if idx < 0 {
			return e.fail(fmt.Errorf("wikitable: column index %d is negative", idx))
		}
	}
	newExt := e.clone()
	newExt.options.columns = append(newExt.options.columns, indices...)
	return newExt
}

// LinkColumn designates the expanded-grid column whose hyperlinks are
// followed when an OnLink rule is attached.
func (e *Extractor) LinkColumn(n int) *Extractor {
	if n < 0 {
		return e.fail(fmt.Errorf("wikitable: link column %d is negative", n))
	}
	newExt := e.clone()
	newExt.options.linkColumn = n
	return newExt
}

// OnLink attaches the extraction rule applied to each followed link's
// document. Build rules with the rule package.
func (e *Extractor) OnLink(r *rule.Rule) *Extractor {
	newExt := e.clone()
	newExt.options.onLink = r
	return newExt
}

// Lenient downgrades a rule that fails to match on a resolvable link
// from a fatal error to an absent marker plus warning.
func (e *Extractor) Lenient() *Extractor {
	newExt := e.clone()
	newExt.options.lenient = true
	return newExt
}

// AbsentMarker sets the value used to fill extraction slots for rows
// whose link is missing or unusable (default empty string).
func (e *Extractor) AbsentMarker(marker string) *Extractor {
	newExt := e.clone()
	newExt.options.absentMarker = marker
	return newExt
}

// WithFetcher replaces the default HTTP fetch client, e.g. with a
// customized fetch.Client or a test double.
func (e *Extractor) WithFetcher(f resolve.Fetcher) *Extractor {
	newExt := e.clone()
	newExt.options.fetcher = f
	return newExt
}

// WithLogger attaches a logger for pass tracing. The default is a
// no-op logger.
func (e *Extractor) WithLogger(l *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations (execute the pass and return results)
// ============================================================================

// config assembles the resolver configuration for this extractor.
func (e *Extractor) config() resolve.Config {
	return resolve.Config{
		Source:       e.source,
		Kind:         e.kind,
		Filter:       e.options.filter,
		Ordinal:      e.options.ordinal,
		HasHeader:    e.options.hasHeader,
		LinkColumn:   e.options.linkColumn,
		OnLink:       e.options.onLink,
		Lenient:      e.options.lenient,
		AbsentMarker: e.options.absentMarker,
	}
}

func (e *Extractor) resolver() *resolve.Resolver {
	opts := []resolve.Option{resolve.WithLogger(e.options.logger)}
	if e.options.fetcher != nil {
		opts = append(opts, resolve.WithFetcher(e.options.fetcher))
	}
	return resolve.New(opts...)
}

// Grid normalizes the primary table and returns the dense grid without
// following links. The header row, if any, is included.
//
// Example:
//
//	g, err := wikitable.FromFile("page.html").Grid(ctx)
func (e *Extractor) Grid(ctx context.Context) (*grid.Grid, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.resolver().Grid(ctx, e.config())
}

// Resolve runs the full pass and returns the raw result: header, rows
// with appended extractions, and warnings.
func (e *Extractor) Resolve(ctx context.Context) (*resolve.Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.resolver().Resolve(ctx, e.config())
}

// Dataset runs the full pass and assembles the rows into an
// exportable dataset, applying any configured column projection.
//
// Example:
//
//	ds, warnings, err := wikitable.FromURL(url).HeaderRow().Dataset(ctx)
func (e *Extractor) Dataset(ctx context.Context) (*format.Dataset, []Warning, error) {
	result, err := e.Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}

	header, rows := result.Header, result.Rows
	if e.options.columns != nil {
		header, rows, err = project(header, rows, e.options.columns)
		if err != nil {
			return nil, nil, err
		}
	}

	ds, err := format.NewDataset(header, rows)
	if err != nil {
		return nil, nil, err
	}
	return ds, result.Warnings, nil
}

// WriteCSV runs the full pass and writes the dataset to a CSV file
// with every field quoted.
func (e *Extractor) WriteCSV(ctx context.Context, path string) ([]Warning, error) {
	ds, warnings, err := e.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return warnings, ds.SaveCSV(path)
}

// WriteJSON runs the full pass and writes the dataset to a JSON file.
func (e *Extractor) WriteJSON(ctx context.Context, path string) ([]Warning, error) {
	ds, warnings, err := e.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return warnings, ds.SaveJSON(path)
}

// project keeps only the requested column indices, in order.
func project(header []string, rows [][]string, columns []int) ([]string, [][]string, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	} else if header != nil {
		width = len(header)
	}
	for _, idx := range columns {
		if idx >= width {
			return nil, nil, fmt.Errorf("wikitable: column index %d out of range (width %d)", idx, width)
		}
	}

	pick := func(row []string) []string {
		out := make([]string, len(columns))
		for i, idx := range columns {
			out[i] = row[idx]
		}
		return out
	}

	var newHeader []string
	if header != nil {
		newHeader = pick(header)
	}
	newRows := make([][]string, len(rows))
	for i, row := range rows {
		newRows[i] = pick(row)
	}
	return newHeader, newRows, nil
}

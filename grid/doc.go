// Package grid normalizes HTML table rows into dense rectangular grids.
//
// HTML tables may declare cells that span multiple rows (rowspan) or
// multiple columns (colspan). This package expands those spans so that
// every (row, column) position holds exactly one value, duplicating the
// spanning cell's text into each position it covers.
//
// # Building a Grid
//
// Build a grid from the raw rows of a table:
//
//	g, err := grid.Build(rows)
//	if err != nil {
//	    // malformed table
//	}
//	fmt.Println(g.At(0, 0))
//
// The grid width is established by the first row. A later row whose
// expansion produces a different width is reported as a
// [MalformedTableError]; the table cannot be normalized.
//
// # Hyperlink References
//
// Cell hyperlinks live on the raw cells, not on the flattened values.
// [References] re-runs the same span expansion and reports, for each
// output row, the link target found in a designated column:
//
//	refs, err := grid.References(rows, 1)
//
// A row-spanned cell's link applies to every expanded row it covers,
// consistent with its text being duplicated into those rows.
package grid

package grid

import (
	"fmt"
	"strings"
)

// Cell is a single table cell as read from the source document.
// Spans default to 1; a span of 0 is treated as 1 during expansion.
type Cell struct {
	Text     string
	RowSpan  int
	ColSpan  int
	Ref      string // outbound link target, if the cell contains one
	IsHeader bool   // true for <th> cells
}

// Row is an ordered sequence of cells in source document order.
type Row []Cell

// Grid is the dense, span-free expansion of a table. Every position
// holds exactly one value and every row has the same width.
type Grid struct {
	Cells [][]string
	Width int
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int { return len(g.Cells) }

// At returns the value at the given position. It panics if the position
// is out of bounds; use InBounds to check first.
func (g *Grid) At(row, col int) string { return g.Cells[row][col] }

// InBounds reports whether the given position lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.Cells) && col >= 0 && col < g.Width
}

// Row returns a copy of the values in the given row.
func (g *Grid) Row(row int) []string {
	out := make([]string, g.Width)
	copy(out, g.Cells[row])
	return out
}

func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.Cells {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// MalformedTableError reports a table whose spans cannot be reconciled
// into a rectangular grid. It is fatal: no grid is produced.
type MalformedTableError struct {
	Row    int    // zero-based source row index
	Reason string // human-readable description
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table at row %d: %s", e.Row, e.Reason)
}

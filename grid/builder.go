package grid

import "fmt"

// carry tracks a column occupied by a rowspan from an earlier row: the
// originating cell and the number of rows it still covers.
type carry struct {
	cell      Cell
	remaining int
}

// Build expands the given rows into a dense grid. The grid width is
// fixed by the first row; every subsequent row must expand to the same
// width or a MalformedTableError is returned. Negative spans are
// rejected; zero spans are floored to 1. A rowspan that extends past
// the last row simply stops contributing.
func Build(rows []Row) (*Grid, error) {
	expanded, err := expand(rows)
	if err != nil {
		return nil, err
	}

	g := &Grid{Cells: make([][]string, len(expanded))}
	if len(expanded) > 0 {
		g.Width = len(expanded[0])
	}
	for i, row := range expanded {
		vals := make([]string, len(row))
		for j, c := range row {
			vals[j] = c.Text
		}
		g.Cells[i] = vals
	}
	return g, nil
}

// expand performs the span-cursor walk shared by Build and References.
// The returned rows contain the originating cell at every expanded
// position, so both text and link targets survive duplication.
func expand(rows []Row) ([][]Cell, error) {
	carries := make(map[int]carry) // column -> pending rowspan
	var out [][]Cell
	width := -1 // established by the first row

	for rowIdx, row := range rows {
		var expanded []Cell
		next := 0 // next unconsumed source cell

		for col := 0; ; col++ {
			if c, ok := carries[col]; ok {
				// Column still occupied by an earlier rowspan.
				expanded = append(expanded, c.cell)
				c.remaining--
				if c.remaining == 0 {
					delete(carries, col)
				} else {
					carries[col] = c
				}
				continue
			}

			if next >= len(row) {
				break
			}

			cell := row[next]
			next++

			rowSpan, colSpan := cell.RowSpan, cell.ColSpan
			if rowSpan < 0 || colSpan < 0 {
				return nil, &MalformedTableError{Row: rowIdx, Reason: fmt.Sprintf("negative span %dx%d", rowSpan, colSpan)}
			}
			if rowSpan == 0 {
				rowSpan = 1
			}
			if colSpan == 0 {
				colSpan = 1
			}

			for off := 0; off < colSpan; off++ {
				target := col + off
				if _, occupied := carries[target]; occupied && off > 0 {
					return nil, &MalformedTableError{Row: rowIdx, Reason: fmt.Sprintf("colspan collides with rowspan at column %d", target)}
				}
				expanded = append(expanded, cell)
				if rowSpan > 1 {
					carries[target] = carry{cell: cell, remaining: rowSpan - 1}
				}
			}
			col += colSpan - 1
		}

		if width < 0 {
			width = len(expanded)
		} else if len(expanded) != width {
			return nil, &MalformedTableError{
				Row:    rowIdx,
				Reason: fmt.Sprintf("row expands to %d columns, grid is %d wide", len(expanded), width),
			}
		}
		out = append(out, expanded)
	}

	return out, nil
}

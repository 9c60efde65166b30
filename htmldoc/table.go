package htmldoc

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tsawler/wikitable/grid"
	"github.com/tsawler/wikitable/internal/clean"
)

// Table is a single table element selected from a document.
type Table struct {
	sel *goquery.Selection
}

// Rows reads the table's rows in document order. Cell text is cleaned,
// rowspan/colspan attributes are parsed (a missing or unparseable span
// counts as 1), and the first anchor target inside each cell is kept
// as the cell's outbound reference. Rows of nested tables are not
// included.
func (t *Table) Rows() []grid.Row {
	var rows []grid.Row
	for _, tr := range t.rowSelections() {
		var row grid.Row
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, readCell(cell))
		})
		rows = append(rows, row)
	}
	return rows
}

// rowSelections collects the table's own tr elements, looking through
// thead/tbody/tfoot sections but not into nested tables.
func (t *Table) rowSelections() []*goquery.Selection {
	var rows []*goquery.Selection
	t.sel.Children().Each(func(_ int, child *goquery.Selection) {
		if child.Is("tr") {
			rows = append(rows, child)
			return
		}
		if child.Is("thead, tbody, tfoot") {
			child.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
				rows = append(rows, tr)
			})
		}
	})
	return rows
}

func readCell(cell *goquery.Selection) grid.Cell {
	c := grid.Cell{
		Text:     clean.Cell(cell),
		RowSpan:  spanAttr(cell, "rowspan"),
		ColSpan:  spanAttr(cell, "colspan"),
		IsHeader: cell.Is("th"),
	}
	if href, ok := cell.Find("a[href]").First().Attr("href"); ok {
		c.Ref = strings.TrimSpace(href)
	}
	return c
}

// spanAttr parses a span attribute. Missing or non-numeric values
// count as 1; negative values are passed through so grid expansion can
// reject them.
func spanAttr(cell *goquery.Selection, name string) int {
	val, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 1
	}
	return n
}

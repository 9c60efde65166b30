package rule

import (
	"fmt"

	"github.com/tsawler/wikitable/grid"
)

// NoMatchError reports that no cell in the secondary grid matched any
// of the rule's label patterns.
type NoMatchError struct {
	Patterns []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no cell matches label patterns %q", e.Patterns)
}

// AmbiguousMatchError reports a match cap that cannot select anything.
// The cap is validated at construction, so seeing this error means a
// Rule value was built without New.
type AmbiguousMatchError struct {
	Cap int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("match cap %d cannot select any match", e.Cap)
}

// BoundsError reports an offset target outside the grid under strict
// bounds mode.
type BoundsError struct {
	Row int
	Col int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("offset target (%d, %d) outside grid", e.Row, e.Col)
}

// match records a label cell position and the pattern that matched it.
type match struct {
	row     int
	col     int
	pattern int
}

// Extract scans the grid in row-major order for cells matching the
// rule's label patterns and returns the values at the offset positions,
// in match order. At most cap matches are honored; extra candidates
// are dropped, not an error. Zero matches is a *NoMatchError.
func (r *Rule) Extract(g *grid.Grid) ([]string, error) {
	if r.cap < 0 {
		return nil, &AmbiguousMatchError{Cap: r.cap}
	}

	matches := r.scan(g)
	if len(matches) == 0 {
		patterns := make([]string, len(r.patterns))
		for i, p := range r.patterns {
			patterns[i] = p.String()
		}
		return nil, &NoMatchError{Patterns: patterns}
	}

	values := make([]string, 0, len(matches))
	for _, m := range matches {
		off := r.offsets[m.pattern]
		row, col := m.row+off.Row, m.col+off.Col
		if !g.InBounds(row, col) {
			if r.strictBounds {
				return nil, &BoundsError{Row: row, Col: col}
			}
			row, col = clamp(row, g.RowCount()-1), clamp(col, g.Width-1)
		}
		values = append(values, g.At(row, col))
	}
	return values, nil
}

// scan collects label matches in row-major order, stopping once the
// cap is reached. The first pattern to match a cell wins; later
// patterns are not tried against that cell.
func (r *Rule) scan(g *grid.Grid) []match {
	var matches []match
	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.Width; col++ {
			for i, p := range r.patterns {
				if p.MatchString(g.At(row, col)) {
					matches = append(matches, match{row: row, col: col, pattern: i})
					break
				}
			}
			if r.cap > 0 && len(matches) == r.cap {
				return matches
			}
		}
	}
	return matches
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

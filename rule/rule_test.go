package rule

import (
	"errors"
	"testing"

	"github.com/tsawler/wikitable/grid"
	"github.com/tsawler/wikitable/htmldoc"
)

// infobox builds a two-column grid of label/value pairs.
func infobox(pairs ...[2]string) *grid.Grid {
	g := &grid.Grid{Width: 2}
	for _, p := range pairs {
		g.Cells = append(g.Cells, []string{p[0], p[1]})
	}
	return g
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		opts     []Option
		wantErr  bool
	}{
		{
			name:     "valid minimal",
			patterns: []string{"Conservation status"},
		},
		{
			name:     "no patterns",
			patterns: nil,
			wantErr:  true,
		},
		{
			name:     "bad regexp",
			patterns: []string{"(unclosed"},
			wantErr:  true,
		},
		{
			name:     "more offsets than patterns",
			patterns: []string{"a"},
			opts:     []Option{WithOffsets(Offset{}, Offset{Row: 1})},
			wantErr:  true,
		},
		{
			name:     "negative ordinal",
			patterns: []string{"a"},
			opts:     []Option{WithOrdinal(-1)},
			wantErr:  true,
		},
		{
			name:     "negative cap",
			patterns: []string{"a"},
			opts:     []Option{WithCap(-1)},
			wantErr:  true,
		},
		{
			name:     "offsets padded",
			patterns: []string{"a", "b"},
			opts:     []Option{WithOffsets(Offset{Row: 1})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.patterns, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(r.offsets) != len(r.patterns) {
				t.Errorf("New() left %d offsets for %d patterns", len(r.offsets), len(r.patterns))
			}
		})
	}
}

func TestExtract_ValueBelowLabel(t *testing.T) {
	g := &grid.Grid{
		Cells: [][]string{
			{"Conservation status"},
			{"Least Concern"},
		},
		Width: 1,
	}

	r, err := New([]string{"Conservation status"}, WithOffsets(Offset{Row: 1, Col: 0}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	values, err := r.Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(values) != 1 || values[0] != "Least Concern" {
		t.Errorf("Extract() = %v, want [Least Concern]", values)
	}
}

func TestExtract_ValueRightOfLabel(t *testing.T) {
	g := infobox(
		[2]string{"City of license", "Seattle"},
		[2]string{"Transmitter coordinates", "47.6; -122.3"},
	)

	r, err := New([]string{"Transmitter.*"}, WithOffsets(Offset{Row: 0, Col: 1}), WithCap(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	values, err := r.Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(values) != 1 || values[0] != "47.6; -122.3" {
		t.Errorf("Extract() = %v, want the coordinate value", values)
	}
}

func TestExtract_CapTruncatesInScanOrder(t *testing.T) {
	g := infobox(
		[2]string{"Status", "first"},
		[2]string{"Status", "second"},
		[2]string{"Status", "third"},
	)

	r, err := New([]string{"Status"}, WithOffsets(Offset{Col: 1}), WithCap(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	values, err := r.Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(values) != 1 || values[0] != "first" {
		t.Errorf("Extract() = %v, want exactly [first]", values)
	}
}

func TestExtract_NoMatch(t *testing.T) {
	g := infobox([2]string{"Population", "12"})

	r, err := New([]string{"Conservation status"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Extract(g)
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("Extract() error = %v, want *NoMatchError", err)
	}
}

func TestExtract_FirstPatternWinsPerCell(t *testing.T) {
	g := infobox([2]string{"Status here", "value"})

	// Both patterns match the label cell; the first one's offset is used.
	r, err := New([]string{"Status", "here"}, WithOffsets(Offset{Col: 1}, Offset{Row: 5, Col: 5}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	values, err := r.Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(values) != 1 || values[0] != "value" {
		t.Errorf("Extract() = %v, want [value]", values)
	}
}

func TestExtract_Bounds(t *testing.T) {
	g := infobox([2]string{"Label", "value"})

	t.Run("clamped by default", func(t *testing.T) {
		r, err := New([]string{"Label"}, WithOffsets(Offset{Row: 10, Col: 10}))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		values, err := r.Extract(g)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if values[0] != "value" {
			t.Errorf("Extract() = %v, want clamped corner value", values)
		}
	})

	t.Run("strict bounds errors", func(t *testing.T) {
		r, err := New([]string{"Label"}, WithOffsets(Offset{Row: 10, Col: 10}), WithStrictBounds())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		_, err = r.Extract(g)
		var bounds *BoundsError
		if !errors.As(err, &bounds) {
			t.Fatalf("Extract() error = %v, want *BoundsError", err)
		}
	})
}

func TestExtract_UnbuiltRuleCapViolation(t *testing.T) {
	r := &Rule{cap: -1}
	_, err := r.Extract(infobox([2]string{"a", "b"}))
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Extract() error = %v, want *AmbiguousMatchError", err)
	}
}

func TestNew_Chain(t *testing.T) {
	inner, err := New([]string{"Transmitter.*"}, WithFilter(htmldoc.Filter{Attr: "class", Value: "infobox"}))
	if err != nil {
		t.Fatalf("New(inner) error = %v", err)
	}
	outer, err := New([]string{"Station"}, WithNext(inner))
	if err != nil {
		t.Fatalf("New(outer) error = %v", err)
	}
	if outer.Next() != inner {
		t.Error("Next() does not return the chained rule")
	}
	if inner.Next() != nil {
		t.Error("terminal rule reports a next rule")
	}
}

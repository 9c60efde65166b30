package wikitable

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/rule"
)

const habitatTable = `<html><body>
<table class="animal-table">
  <tr><th>Habitat</th><th>Species</th></tr>
  <tr><td rowspan="3">Sahara</td><td><a href="/species/hedgehog">Desert Hedgehog</a></td></tr>
  <tr><td><a href="/species/fennec">Fennec Fox</a></td></tr>
  <tr><td><a href="/species/addax">Addax</a></td></tr>
  <tr><td rowspan="2">Tibet</td><td><a href="/species/leopard">Snow Leopard</a></td></tr>
  <tr><td><a href="/species/kiang">Kiang</a></td></tr>
</table>
</body></html>`

var speciesStatus = map[string]string{
	"/species/hedgehog": "Least Concern",
	"/species/fennec":   "Least Concern",
	"/species/addax":    "Critically Endangered",
	"/species/leopard":  "Vulnerable",
	"/species/kiang":    "Least Concern",
}

func habitatServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/habitats" {
			fmt.Fprint(w, habitatTable)
			return
		}
		status, ok := speciesStatus[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><body><table class="infobox">
		  <tr><th>Conservation status</th></tr>
		  <tr><td>%s</td></tr>
		</table></body></html>`, status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func statusRule(t *testing.T) *rule.Rule {
	t.Helper()
	r, err := rule.New([]string{"Conservation status"},
		rule.WithFilter(htmldoc.Filter{Attr: "class", Value: "infobox"}),
		rule.WithOffsets(rule.Offset{Row: 1, Col: 0}),
		rule.WithCap(1),
	)
	if err != nil {
		t.Fatalf("rule.New() error = %v", err)
	}
	return r
}

func TestExtractor_EndToEnd(t *testing.T) {
	srv := habitatServer(t)

	ds, warnings, err := FromURL(srv.URL+"/habitats").
		TableFilter("class", "animal-table").
		HeaderRow().
		LinkColumn(1).
		OnLink(statusRule(t)).
		Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := [][]string{
		{"Sahara", "Desert Hedgehog", "Least Concern"},
		{"Sahara", "Fennec Fox", "Least Concern"},
		{"Sahara", "Addax", "Critically Endangered"},
		{"Tibet", "Snow Leopard", "Vulnerable"},
		{"Tibet", "Kiang", "Least Concern"},
	}
	if len(ds.Records) != 5 || ds.Width() != 3 {
		t.Fatalf("Dataset() = %d records x %d columns, want 5x3", len(ds.Records), ds.Width())
	}
	for i, row := range want {
		for j, v := range row {
			if ds.Records[i][j] != v {
				t.Errorf("record %d col %d = %q, want %q", i, j, ds.Records[i][j], v)
			}
		}
	}
	if ds.Header[0] != "Habitat" || ds.Header[1] != "Species" {
		t.Errorf("Header = %v", ds.Header)
	}
}

func TestExtractor_GridOnly(t *testing.T) {
	g, err := FromHTML(habitatTable).
		TableFilter("class", "animal-table").
		Grid(context.Background())
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if g.RowCount() != 6 || g.Width != 2 {
		t.Fatalf("Grid() = %dx%d, want 6x2", g.RowCount(), g.Width)
	}
	if g.At(2, 0) != "Sahara" || g.At(5, 0) != "Tibet" {
		t.Errorf("unexpected habitat column: %q, %q", g.At(2, 0), g.At(5, 0))
	}
}

func TestExtractor_ColumnsProjection(t *testing.T) {
	ds, _, err := FromHTML(habitatTable).
		TableFilter("class", "animal-table").
		HeaderRow().
		Columns(1).
		Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if ds.Width() != 1 || ds.Header[0] != "Species" {
		t.Fatalf("projected header = %v, want [Species]", ds.Header)
	}
	if ds.Records[0][0] != "Desert Hedgehog" {
		t.Errorf("record 0 = %v", ds.Records[0])
	}
}

func TestExtractor_ColumnsOutOfRange(t *testing.T) {
	_, _, err := FromHTML(habitatTable).
		TableFilter("class", "animal-table").
		Columns(9).
		Dataset(context.Background())
	if err == nil {
		t.Fatal("Dataset() succeeded with out-of-range projection")
	}
}

func TestExtractor_FileSourceNotSniffed(t *testing.T) {
	// An explicit constructor pins the source kind: a file path that
	// happens to look like markup is still read from disk.
	_, err := FromFile("<table></table>").Grid(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Grid() error = %v, want fs.ErrNotExist", err)
	}
}

func TestExtractor_ConfigurationErrorFailsFast(t *testing.T) {
	_, err := FromHTML(habitatTable).TableOrdinal(-1).Grid(context.Background())
	if err == nil {
		t.Fatal("Grid() succeeded with negative ordinal")
	}
}

func TestExtractor_CloneIsolation(t *testing.T) {
	base := FromHTML(habitatTable).TableFilter("class", "animal-table")
	withHeader := base.HeaderRow()

	g1, err := base.Grid(context.Background())
	if err != nil {
		t.Fatalf("base Grid() error = %v", err)
	}
	res, err := withHeader.Resolve(context.Background())
	if err != nil {
		t.Fatalf("withHeader Resolve() error = %v", err)
	}
	if g1.RowCount() != 6 {
		t.Errorf("base grid rows = %d, want 6 (header kept)", g1.RowCount())
	}
	if len(res.Rows) != 5 {
		t.Errorf("withHeader rows = %d, want 5 (header stripped)", len(res.Rows))
	}
}

func TestExtractor_WriteCSV(t *testing.T) {
	srv := habitatServer(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := FromURL(srv.URL+"/habitats").
		TableFilter("class", "animal-table").
		HeaderRow().
		LinkColumn(1).
		OnLink(statusRule(t)).
		WriteCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Fatalf("CSV has %d lines, want 6", len(lines))
	}
	if lines[3] != `"Sahara","Addax","Critically Endangered"` {
		t.Errorf("line 3 = %s", lines[3])
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Errorf("line %d not fully quoted: %s", i, line)
		}
	}
}

func TestMustResolve(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustResolve did not panic on error")
		}
	}()
	MustResolve(FromHTML("<p>no tables here</p>").Dataset(context.Background()))
}

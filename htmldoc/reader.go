package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Filter selects candidate tables by a single attribute predicate.
// The zero value matches every table. For the class attribute the
// value is matched against the individual class tokens; any other
// attribute must match exactly.
type Filter struct {
	Attr  string
	Value string
}

// Matches reports whether a table carrying the given attribute value
// satisfies the filter.
func (f Filter) Matches(attrValue string, present bool) bool {
	if f.Attr == "" {
		return true
	}
	if !present {
		return false
	}
	if f.Attr == "class" {
		for _, token := range strings.Fields(attrValue) {
			if token == f.Value {
				return true
			}
		}
		return false
	}
	return attrValue == f.Value
}

func (f Filter) String() string {
	if f.Attr == "" {
		return "any table"
	}
	return fmt.Sprintf("table[%s=%q]", f.Attr, f.Value)
}

// TableIndexError reports a table ordinal past the number of tables
// that matched the filter.
type TableIndexError struct {
	Ordinal int
	Count   int
	Filter  Filter
}

func (e *TableIndexError) Error() string {
	return fmt.Sprintf("table ordinal %d out of range: %d tables match %s", e.Ordinal, e.Count, e.Filter)
}

// Reader provides access to the tables of a parsed HTML document.
type Reader struct {
	doc *goquery.Document
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader, decoding the document's
// declared character encoding when it is not UTF-8.
func OpenReader(r io.Reader) (*Reader, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Reader{doc: doc}, nil
}

// Parse parses an HTML document held in memory.
func Parse(rawHTML string) (*Reader, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Reader{doc: doc}, nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string {
	return strings.TrimSpace(r.doc.Find("head title").First().Text())
}

// Tables returns every table satisfying the filter, in document order.
func (r *Reader) Tables(f Filter) []*Table {
	var tables []*Table
	r.doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		attrValue, present := s.Attr(f.Attr)
		if f.Matches(attrValue, present) {
			tables = append(tables, &Table{sel: s})
		}
	})
	return tables
}

// TableAt returns the table at the given ordinal among those matching
// the filter. The ordinal is zero-based; an out-of-range ordinal is a
// *TableIndexError.
func (r *Reader) TableAt(f Filter, ordinal int) (*Table, error) {
	tables := r.Tables(f)
	if ordinal < 0 || ordinal >= len(tables) {
		return nil, &TableIndexError{Ordinal: ordinal, Count: len(tables), Filter: f}
	}
	return tables[ordinal], nil
}

// Package wikitable provides a fluent API for normalizing HTML tables
// with merged cells into dense rectangular datasets, optionally
// following a link column into secondary tables and splicing extracted
// values back into each row.
//
// Basic usage:
//
//	ds, warnings, err := wikitable.FromURL(url).
//	    TableFilter("class", "wikitable").
//	    HeaderRow().
//	    Dataset(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", wikitable.FormatWarnings(warnings))
//	}
//
// With link following:
//
//	status, _ := rule.New([]string{"Conservation status"},
//	    rule.WithFilter(htmldoc.Filter{Attr: "class", Value: "infobox"}),
//	    rule.WithOffsets(rule.Offset{Row: 1, Col: 0}),
//	    rule.WithCap(1))
//
//	ds, _, err := wikitable.FromURL(url).
//	    TableFilter("class", "animal-table").
//	    HeaderRow().
//	    LinkColumn(1).
//	    OnLink(status).
//	    Dataset(ctx)
//
// For callers who want the normalized grid without link following, the
// Grid terminal operation returns the intermediate representation.
package wikitable

import (
	"github.com/tsawler/wikitable/format"
)

// FromURL creates an Extractor that fetches its primary table over
// HTTP.
//
// Example:
//
//	ds, _, err := wikitable.FromURL("https://en.wikipedia.org/wiki/...").Dataset(ctx)
func FromURL(url string) *Extractor {
	return &Extractor{source: url, kind: format.URL, options: defaultOptions()}
}

// FromFile creates an Extractor that reads its primary table from a
// local HTML file.
func FromFile(path string) *Extractor {
	return &Extractor{source: path, kind: format.File, options: defaultOptions()}
}

// FromHTML creates an Extractor over raw HTML markup held in memory.
func FromHTML(rawHTML string) *Extractor {
	return &Extractor{source: rawHTML, kind: format.Inline, options: defaultOptions()}
}

// From creates an Extractor, classifying the source as a URL, file
// path, or inline markup by inspection. Prefer the explicit
// constructors when the source kind is known.
func From(source string) *Extractor {
	return &Extractor{source: source, kind: format.DetectSource(source), options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResolve wraps a terminal operation returning (T, []Warning, error)
// and panics on error, discarding warnings.
//
// Example:
//
//	ds := wikitable.MustResolve(wikitable.FromFile("page.html").Dataset(ctx))
func MustResolve[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

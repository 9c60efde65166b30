// Package htmldoc provides HTML document parsing and table selection.
//
// A [Reader] wraps a parsed HTML document and exposes its tables in
// document order. Tables can be filtered by a single attribute
// predicate and picked by ordinal, matching the way wiki pages are
// usually addressed ("the first table with class infobox"):
//
//	r, err := htmldoc.OpenReader(resp.Body)
//	if err != nil {
//	    // handle error
//	}
//	table, err := r.TableAt(htmldoc.Filter{Attr: "class", Value: "infobox"}, 0)
//
// A selected [Table] yields its raw rows with rowspan/colspan counts
// and per-cell link targets preserved, ready for grid expansion:
//
//	rows := table.Rows()
//	g, err := grid.Build(rows)
//
// Character encodings are detected from the document itself via
// x/net/html/charset, so non-UTF-8 pages decode correctly.
package htmldoc

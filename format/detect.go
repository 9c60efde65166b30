// Package format assembles resolved rows into exportable datasets and
// detects how a table source should be acquired.
package format

import (
	"strings"
)

// SourceKind represents how a table source string should be acquired.
type SourceKind int

const (
	// Unknown indicates an unrecognized source.
	Unknown SourceKind = iota
	// URL indicates a document to fetch over HTTP(S).
	URL
	// File indicates a local HTML file path.
	File
	// Inline indicates raw HTML markup held in memory.
	Inline
)

// String returns the string representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case URL:
		return "URL"
	case File:
		return "File"
	case Inline:
		return "Inline"
	default:
		return "Unknown"
	}
}

// DetectSource classifies a source string as a URL, a file path, or
// inline markup.
func DetectSource(source string) SourceKind {
	s := strings.TrimSpace(source)
	switch {
	case s == "":
		return Unknown
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return URL
	case strings.HasPrefix(s, "<"):
		return Inline
	default:
		return File
	}
}

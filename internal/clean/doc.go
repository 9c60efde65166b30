// Package clean normalizes the visible text of table cells.
//
// Wikipedia-style tables decorate cell text with footnote markers,
// fine print, and coordinate spans. This package strips that noise so
// that grid values compare and match predictably:
//
//   - <sup> and <small> subtrees are dropped (footnotes, annotations)
//   - <br> elements read as a single space
//   - a <span class="geo"> child, when present, replaces the cell text
//     (the machine-readable coordinate form)
//   - whitespace is collapsed, en dashes become plain hyphens, and the
//     result is NFC-normalized
package clean

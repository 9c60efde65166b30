package clean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// droppedTags are removed from a cell before its text is read.
var droppedTags = []string{"sup", "small"}

// Cell returns the cleaned visible text of a table cell selection.
// The selection is cloned first; the underlying document is not
// modified.
func Cell(s *goquery.Selection) string {
	c := s.Clone()
	for _, tag := range droppedTags {
		c.Find(tag).Remove()
	}
	c.Find("br").ReplaceWithHtml(" ")

	// Prefer the machine-readable coordinate span when present.
	text := c.Text()
	if geo := c.Find("span.geo").First(); geo.Length() > 0 {
		text = geo.Text()
	}

	return Text(text)
}

// Text normalizes already-extracted text: whitespace is collapsed to
// single spaces, en dashes become hyphens, and the result is
// NFC-normalized and trimmed.
func Text(s string) string {
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

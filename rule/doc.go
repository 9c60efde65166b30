// Package rule describes how to locate values inside a normalized grid.
//
// A [Rule] pairs a table selector (attribute filter plus ordinal) with
// a list of label patterns and per-pattern offsets. Evaluating a rule
// scans the grid in row-major order for cells matching any pattern,
// then reads the value at the matched cell's position shifted by that
// pattern's offset:
//
//	r, err := rule.New([]string{"Conservation status"},
//	    rule.WithFilter(htmldoc.Filter{Attr: "class", Value: "infobox"}),
//	    rule.WithOffsets(rule.Offset{Row: 1, Col: 0}),
//	    rule.WithCap(1),
//	)
//	values, err := r.Extract(g)
//
// # Validation
//
// Rules are validated at construction, not at evaluation time: every
// pattern must compile, explicit offsets may not outnumber patterns
// (missing offsets default to (0,0)), and a match cap may not be
// negative (zero means unlimited). Invalid rules are rejected by [New].
//
// # Chaining
//
// A rule may chain to a next rule via [WithNext]. A chained rule
// treats each extracted value as a fresh link target; the resolver
// follows it and applies the next rule to the secondary grid. Chains
// are walked depth-first. Cyclic chains are detected and rejected at
// construction rather than looping at evaluation time.
package rule

// Package resolve orchestrates table normalization and link following.
//
// A [Resolver] builds the primary table's grid, then walks its data
// rows strictly in order. For each row it looks up the outbound link
// in the configured column; when an on-link rule is attached, the
// referenced document is fetched, its candidate table normalized with
// the same grid expansion, and the rule's extracted values appended to
// the row:
//
//	res := resolve.New(resolve.WithFetcher(client))
//	result, err := res.Resolve(ctx, resolve.Config{
//	    Source:     "https://en.wikipedia.org/wiki/...",
//	    Filter:     htmldoc.Filter{Attr: "class", Value: "toccolours"},
//	    HasHeader:  true,
//	    LinkColumn: 1,
//	    OnLink:     infoboxRule,
//	})
//
// # Failure Model
//
// Fatal conditions (a malformed table or a table ordinal out of range,
// on the primary page or on a linked one, and cap contract violations)
// abort the pass with no partial result. Row-local conditions (a secondary document that cannot be
// fetched or parsed, a missing link, a label that does not match in
// lenient mode) fill that row's extraction slots with the absent
// marker and are reported as warnings; the pass continues.
//
// # Caching
//
// Each Resolve call owns a private cache of fetched documents and
// built secondary grids, keyed by resolved reference target. Rows
// sharing a link target reuse the earlier fetch. The cache dies with
// the call; concurrent Resolve calls never share state.
package resolve

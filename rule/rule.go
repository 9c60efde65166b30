package rule

import (
	"fmt"
	"regexp"

	"github.com/tsawler/wikitable/htmldoc"
)

// maxChainDepth bounds rule chains. Real configurations are one or two
// levels deep; anything near the limit indicates a cycle.
const maxChainDepth = 16

// Offset shifts a matched label cell's position to the position of the
// value to extract.
type Offset struct {
	Row int
	Col int
}

// Rule locates values inside a secondary grid. Rules are immutable
// once constructed; configuration happens through New and its options.
type Rule struct {
	filter       htmldoc.Filter
	ordinal      int
	patterns     []*regexp.Regexp
	offsets      []Offset
	cap          int // 0 means unlimited
	next         *Rule
	strictBounds bool
}

// Option configures a Rule during construction.
type Option func(*Rule)

// WithFilter restricts candidate tables to those satisfying the given
// attribute filter.
func WithFilter(f htmldoc.Filter) Option {
	return func(r *Rule) { r.filter = f }
}

// WithOrdinal selects which matching table to use (zero-based,
// default 0).
func WithOrdinal(n int) Option {
	return func(r *Rule) { r.ordinal = n }
}

// WithOffsets sets the per-pattern offsets, in pattern order. Patterns
// without an explicit offset use (0, 0).
func WithOffsets(offsets ...Offset) Option {
	return func(r *Rule) { r.offsets = offsets }
}

// WithCap limits how many matches are honored. Matches beyond the cap
// are dropped, keeping the first matches in row-major scan order.
func WithCap(n int) Option {
	return func(r *Rule) { r.cap = n }
}

// WithNext chains another rule: each value this rule extracts is
// treated as a link target and the next rule is applied to the
// document it resolves to.
func WithNext(next *Rule) Option {
	return func(r *Rule) { r.next = next }
}

// WithStrictBounds makes an offset target outside the grid an error
// instead of clamping it to the nearest edge.
func WithStrictBounds() Option {
	return func(r *Rule) { r.strictBounds = true }
}

// New builds a validated rule from label patterns and options.
func New(labelPatterns []string, opts ...Option) (*Rule, error) {
	if len(labelPatterns) == 0 {
		return nil, fmt.Errorf("rule: at least one label pattern is required")
	}

	r := &Rule{}
	for _, opt := range opts {
		opt(r)
	}

	if r.cap < 0 {
		return nil, fmt.Errorf("rule: match cap %d is negative", r.cap)
	}
	if r.ordinal < 0 {
		return nil, fmt.Errorf("rule: table ordinal %d is negative", r.ordinal)
	}
	if len(r.offsets) > len(labelPatterns) {
		return nil, fmt.Errorf("rule: %d offsets for %d patterns", len(r.offsets), len(labelPatterns))
	}

	r.patterns = make([]*regexp.Regexp, len(labelPatterns))
	for i, p := range labelPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("rule: pattern %d: %w", i, err)
		}
		r.patterns[i] = re
	}

	// Pad missing offsets with the identity offset.
	for len(r.offsets) < len(r.patterns) {
		r.offsets = append(r.offsets, Offset{})
	}

	if err := r.checkChain(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkChain rejects cyclic or excessively deep rule chains.
func (r *Rule) checkChain() error {
	visited := make(map[*Rule]bool)
	depth := 0
	for cur := r; cur != nil; cur = cur.next {
		if visited[cur] {
			return fmt.Errorf("rule: chain contains a cycle")
		}
		visited[cur] = true
		depth++
		if depth > maxChainDepth {
			return fmt.Errorf("rule: chain deeper than %d rules", maxChainDepth)
		}
	}
	return nil
}

// Filter returns the table selection filter.
func (r *Rule) Filter() htmldoc.Filter { return r.filter }

// Ordinal returns the zero-based index of the table to use among those
// matching the filter.
func (r *Rule) Ordinal() int { return r.ordinal }

// Next returns the chained rule, or nil for a terminal rule.
func (r *Rule) Next() *Rule { return r.next }

// Slots returns how many values the rule chain is expected to
// contribute to a row: the match cap per rule (1 when uncapped), summed
// along the chain. Used to pad rows whose link cannot be followed.
func (r *Rule) Slots() int {
	total := 0
	for cur := r; cur != nil; cur = cur.next {
		if cur.cap > 0 {
			total += cur.cap
		} else {
			total++
		}
	}
	return total
}

package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/tsawler/wikitable/fetch"
	"github.com/tsawler/wikitable/format"
	"github.com/tsawler/wikitable/grid"
	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/rule"
)

// Fetcher retrieves a raw document by URL. *fetch.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolver runs resolution passes. It is safe for concurrent use:
// all per-pass state lives in the pass, not the Resolver.
type Resolver struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher replaces the default HTTP fetch client.
func WithFetcher(f Fetcher) Option {
	return func(r *Resolver) { r.fetcher = f }
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = fetch.NewClient()
	}
	return r
}

// pass holds the state of a single Resolve call: the base URL for
// resolving relative links, the per-call caches, and the warnings
// accumulated so far.
type pass struct {
	resolver *Resolver
	cfg      Config
	base     *url.URL
	docs     map[string]*htmldoc.Reader // by absolute URL
	grids    map[string]*grid.Grid      // by absolute URL + table selector
	warnings []Warning
}

// Grid builds the primary table's normalized grid without following
// links. Header stripping is not applied; the grid is the full table.
func (r *Resolver) Grid(ctx context.Context, cfg Config) (*grid.Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p := r.newPass(cfg)
	_, g, err := p.primary(ctx)
	return g, err
}

// Resolve runs a full pass: normalize the primary table, follow each
// data row's link when configured, and append extracted values. Fatal
// errors abort with no partial result.
func (r *Resolver) Resolve(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p := r.newPass(cfg)

	rawRows, g, err := p.primary(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	startRow := 0
	if cfg.HasHeader && g.RowCount() > 0 {
		result.Header = headerNames(rawRows[0], g.Width)
		startRow = 1
	}

	var refs map[int]string
	if cfg.LinkColumn != NoLinkColumn {
		refs, err = grid.References(rawRows, cfg.LinkColumn)
		if err != nil {
			return nil, err
		}
	}

	for i := startRow; i < g.RowCount(); i++ {
		row := g.Row(i)
		if cfg.OnLink != nil && cfg.LinkColumn != NoLinkColumn {
			outIdx := len(result.Rows)
			extracted, err := p.follow(ctx, outIdx, refs[i], cfg.OnLink)
			if err != nil {
				return nil, err
			}
			row = append(row, extracted...)
		}
		result.Rows = append(result.Rows, row)
	}

	p.squareOff(result)
	result.Warnings = p.warnings
	return result, nil
}

// squareOff pads the result to a rectangle: an uncapped rule may
// extract different value counts per row. Short rows are padded with
// the absent marker and the header gains ordinal names for the
// appended columns.
func (p *pass) squareOff(result *Result) {
	width := len(result.Header)
	for _, row := range result.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range result.Rows {
		for len(row) < width {
			row = append(row, p.cfg.AbsentMarker)
		}
		result.Rows[i] = row
	}
	if result.Header != nil {
		for len(result.Header) < width {
			result.Header = append(result.Header, strconv.Itoa(len(result.Header)))
		}
	}
}

func (r *Resolver) newPass(cfg Config) *pass {
	p := &pass{
		resolver: r,
		cfg:      cfg,
		docs:     make(map[string]*htmldoc.Reader),
		grids:    make(map[string]*grid.Grid),
	}
	if p.cfg.Kind == format.Unknown {
		p.cfg.Kind = format.DetectSource(cfg.Source)
	}
	if p.cfg.Kind == format.URL {
		if base, err := url.Parse(cfg.Source); err == nil {
			p.base = base
		}
	}
	return p
}

// primary acquires the primary document and normalizes its table.
// Every failure here is fatal.
func (p *pass) primary(ctx context.Context) ([]grid.Row, *grid.Grid, error) {
	rd, err := p.document(ctx, p.cfg.Source, p.cfg.Kind)
	if err != nil {
		return nil, nil, err
	}

	table, err := rd.TableAt(p.cfg.Filter, p.cfg.Ordinal)
	if err != nil {
		return nil, nil, err
	}

	rawRows := table.Rows()
	g, err := grid.Build(rawRows)
	if err != nil {
		return nil, nil, err
	}
	return rawRows, g, nil
}

// document acquires and parses a source, consulting the per-pass cache
// for URLs.
func (p *pass) document(ctx context.Context, source string, kind format.SourceKind) (*htmldoc.Reader, error) {
	switch kind {
	case format.URL:
		if rd, ok := p.docs[source]; ok {
			p.resolver.logger.Debug("document cache hit", zap.String("url", source))
			return rd, nil
		}
		body, err := p.resolver.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		rd, err := htmldoc.OpenReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}
		p.docs[source] = rd
		return rd, nil
	case format.Inline:
		return htmldoc.Parse(source)
	case format.File:
		return htmldoc.Open(source)
	default:
		return nil, fmt.Errorf("resolve: empty source")
	}
}

// follow resolves one row's link and applies the rule chain
// depth-first. Row-local failures produce absent markers and a
// warning; fatal failures propagate.
func (p *pass) follow(ctx context.Context, row int, ref string, r *rule.Rule) ([]string, error) {
	if ref == "" {
		p.warn(row, "", "no link in column")
		return p.absent(r), nil
	}

	target, err := p.absolute(ref)
	if err != nil {
		p.warn(row, ref, fmt.Sprintf("unusable link: %v", err))
		return p.absent(r), nil
	}

	g, err := p.secondaryGrid(ctx, target, r)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		p.warn(row, target, err.Error())
		return p.absent(r), nil
	}

	values, err := r.Extract(g)
	if err != nil {
		var noMatch *rule.NoMatchError
		if errors.As(err, &noMatch) && p.cfg.Lenient {
			p.warn(row, target, err.Error())
			return p.absent(r), nil
		}
		return nil, fmt.Errorf("extracting from %s: %w", target, err)
	}

	// A chained rule treats each extracted value as a fresh link.
	if next := r.Next(); next != nil {
		chained := values[:len(values):len(values)]
		for _, v := range values {
			more, err := p.follow(ctx, row, v, next)
			if err != nil {
				return nil, err
			}
			chained = append(chained, more...)
		}
		values = chained
	}
	return values, nil
}

// secondaryGrid fetches, parses, and normalizes the table a rule
// selects from the referenced document, consulting the per-pass grid
// cache first.
func (p *pass) secondaryGrid(ctx context.Context, target string, r *rule.Rule) (*grid.Grid, error) {
	key := target + "\x00" + r.Filter().String() + "\x00" + strconv.Itoa(r.Ordinal())
	if g, ok := p.grids[key]; ok {
		p.resolver.logger.Debug("grid cache hit", zap.String("url", target))
		return g, nil
	}

	rd, err := p.document(ctx, target, format.DetectSource(target))
	if err != nil {
		return nil, err
	}

	table, err := rd.TableAt(r.Filter(), r.Ordinal())
	if err != nil {
		return nil, err
	}

	g, err := grid.Build(table.Rows())
	if err != nil {
		return nil, err
	}
	p.grids[key] = g
	return g, nil
}

// absolute resolves a reference against the pass's base URL.
func (p *pass) absolute(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if u.IsAbs() || p.base == nil {
		return ref, nil
	}
	return p.base.ResolveReference(u).String(), nil
}

// absent fills the rule chain's extraction slots with the marker.
func (p *pass) absent(r *rule.Rule) []string {
	slots := make([]string, r.Slots())
	for i := range slots {
		slots[i] = p.cfg.AbsentMarker
	}
	return slots
}

func (p *pass) warn(row int, ref, message string) {
	p.warnings = append(p.warnings, Warning{Row: row, Ref: ref, Message: message})
	p.resolver.logger.Warn("row-local condition",
		zap.Int("row", row),
		zap.String("ref", ref),
		zap.String("message", message))
}

// fatal reports whether an error from secondary-document handling must
// abort the whole pass. A malformed secondary table cannot be
// normalized at all, and a table ordinal past the matching tables
// means the rule selects something the page does not have; everything
// else is row-local.
func fatal(err error) bool {
	var malformed *grid.MalformedTableError
	if errors.As(err, &malformed) {
		return true
	}
	var index *htmldoc.TableIndexError
	return errors.As(err, &index)
}

// headerNames derives column names from the raw header row: th cells
// contribute their text, td cells their ordinal. Names are padded with
// ordinals out to the grid width.
func headerNames(headerRow grid.Row, width int) []string {
	names := make([]string, 0, width)
	for i, cell := range headerRow {
		if len(names) == width {
			break
		}
		if cell.IsHeader {
			names = append(names, cell.Text)
		} else {
			names = append(names, strconv.Itoa(i))
		}
	}
	for len(names) < width {
		names = append(names, strconv.Itoa(len(names)))
	}
	return names
}

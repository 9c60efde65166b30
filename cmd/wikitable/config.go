package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/tsawler/wikitable"
	"github.com/tsawler/wikitable/htmldoc"
	"github.com/tsawler/wikitable/rule"
)

// jobSpec describes one extraction, either assembled from flags or
// decoded from a TOML job file.
type jobSpec struct {
	Name       string    `toml:"name"`
	Source     string    `toml:"source"`
	Filter     string    `toml:"filter"` // attr=value
	Ordinal    int       `toml:"ordinal"`
	Header     bool      `toml:"header"`
	LinkColumn int       `toml:"link_column"`
	Output     string    `toml:"output"`
	JSON       bool      `toml:"json"`
	Lenient    bool      `toml:"lenient"`
	Absent     string    `toml:"absent"`
	OnLink     *linkSpec `toml:"on_link"`
}

// linkSpec describes the extraction rule applied to followed links.
type linkSpec struct {
	Filter   string    `toml:"filter"`
	Ordinal  int       `toml:"ordinal"`
	Patterns []string  `toml:"patterns"`
	Offsets  [][]int   `toml:"offsets"`
	Cap      int       `toml:"cap"`
	Next     *linkSpec `toml:"next"`
}

// jobFile is the top-level TOML document.
type jobFile struct {
	Jobs []jobSpec `toml:"job"`
}

// loadJobs returns the jobs to run: the contents of --config when
// given, otherwise a single job assembled from the flags.
func loadJobs() ([]jobSpec, error) {
	if flagConfig != "" {
		data, err := os.ReadFile(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		var file jobFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if len(file.Jobs) == 0 {
			return nil, fmt.Errorf("config %s defines no jobs", flagConfig)
		}
		for i := range file.Jobs {
			if file.Jobs[i].Name == "" {
				file.Jobs[i].Name = fmt.Sprintf("job-%d", i)
			}
		}
		return file.Jobs, nil
	}

	if flagSource == "" {
		return nil, fmt.Errorf("either --source or --config is required")
	}

	job := jobSpec{
		Name:       "cli",
		Source:     flagSource,
		Filter:     flagFilter,
		Ordinal:    flagOrdinal,
		Header:     flagHeader,
		LinkColumn: flagLinkColumn,
		Output:     flagOutput,
		JSON:       flagJSON,
		Lenient:    flagLenient,
		Absent:     flagAbsent,
	}
	if len(flagPatterns) > 0 {
		offsets, err := parseOffsets(flagOffsets)
		if err != nil {
			return nil, err
		}
		job.OnLink = &linkSpec{
			Filter:   flagLinkFilter,
			Ordinal:  flagLinkOrdinal,
			Patterns: flagPatterns,
			Offsets:  offsets,
			Cap:      flagCap,
		}
	}
	return []jobSpec{job}, nil
}

// extractor builds the configured fluent extractor for the job.
func (j jobSpec) extractor(logger *zap.Logger) (*wikitable.Extractor, error) {
	ext := wikitable.From(j.Source).
		TableOrdinal(j.Ordinal).
		WithLogger(logger)

	if j.Filter != "" {
		attr, value, err := parseFilter(j.Filter)
		if err != nil {
			return nil, err
		}
		ext = ext.TableFilter(attr, value)
	}
	if j.Header {
		ext = ext.HeaderRow()
	}
	if j.LinkColumn >= 0 {
		ext = ext.LinkColumn(j.LinkColumn)
	}
	if j.Lenient {
		ext = ext.Lenient()
	}
	if j.Absent != "" {
		ext = ext.AbsentMarker(j.Absent)
	}
	if j.OnLink != nil {
		r, err := j.OnLink.rule()
		if err != nil {
			return nil, err
		}
		ext = ext.OnLink(r)
	}
	return ext, nil
}

// rule builds the rule chain for a link spec, innermost first.
func (l *linkSpec) rule() (*rule.Rule, error) {
	opts := []rule.Option{rule.WithOrdinal(l.Ordinal)}

	if l.Filter != "" {
		attr, value, err := parseFilter(l.Filter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rule.WithFilter(htmldoc.Filter{Attr: attr, Value: value}))
	}
	if len(l.Offsets) > 0 {
		offsets := make([]rule.Offset, len(l.Offsets))
		for i, pair := range l.Offsets {
			if len(pair) != 2 {
				return nil, fmt.Errorf("offset %d: want [row, col], got %v", i, pair)
			}
			offsets[i] = rule.Offset{Row: pair[0], Col: pair[1]}
		}
		opts = append(opts, rule.WithOffsets(offsets...))
	}
	if l.Cap > 0 {
		opts = append(opts, rule.WithCap(l.Cap))
	}
	if l.Next != nil {
		next, err := l.Next.rule()
		if err != nil {
			return nil, err
		}
		opts = append(opts, rule.WithNext(next))
	}
	return rule.New(l.Patterns, opts...)
}

// parseFilter splits an attr=value pair.
func parseFilter(s string) (string, string, error) {
	attr, value, ok := strings.Cut(s, "=")
	if !ok || attr == "" {
		return "", "", fmt.Errorf("filter %q: want attr=value", s)
	}
	return attr, value, nil
}

// parseOffsets parses repeated "row,col" flag values.
func parseOffsets(raw []string) ([][]int, error) {
	offsets := make([][]int, 0, len(raw))
	for _, s := range raw {
		rowStr, colStr, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("offset %q: want row,col", s)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", s, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("offset %q: %w", s, err)
		}
		offsets = append(offsets, []int{row, col})
	}
	return offsets, nil
}

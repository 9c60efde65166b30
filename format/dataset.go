package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

// Dataset is the final tabular result: an optional header row followed
// by data records, all the same width.
type Dataset struct {
	Header  []string
	Records [][]string
}

// NewDataset assembles a dataset from an optional header and records.
// The only validation performed is column-count consistency; everything
// else is guaranteed upstream by grid expansion.
func NewDataset(header []string, records [][]string) (*Dataset, error) {
	width := len(header)
	for i, rec := range records {
		if width == 0 {
			width = len(rec)
		}
		if len(rec) != width {
			return nil, fmt.Errorf("record %d has %d columns, want %d", i, len(rec), width)
		}
	}
	return &Dataset{Header: header, Records: records}, nil
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	if len(d.Header) > 0 {
		return len(d.Header)
	}
	if len(d.Records) > 0 {
		return len(d.Records[0])
	}
	return 0
}

// WriteCSV writes the dataset as CSV with every field quoted,
// regardless of content. Interior quotes are doubled per RFC 4180.
func (d *Dataset) WriteCSV(w io.Writer) error {
	write := func(fields []string) error {
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
		return err
	}

	if len(d.Header) > 0 {
		if err := write(d.Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, rec := range d.Records {
		if err := write(rec); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	return nil
}

// SaveCSV writes the dataset to a CSV file.
func (d *Dataset) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := d.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON writes the dataset as a JSON array of records. With a
// header, each record becomes an object keyed by column name;
// otherwise each record is an array of values.
func (d *Dataset) WriteJSON(w io.Writer) error {
	var payload any
	if len(d.Header) > 0 {
		objs := make([]map[string]string, 0, len(d.Records))
		for _, rec := range d.Records {
			obj := make(map[string]string, len(rec))
			for i, v := range rec {
				obj[d.Header[i]] = v
			}
			objs = append(objs, obj)
		}
		payload = objs
	} else {
		payload = d.Records
	}

	data, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

// SaveJSON writes the dataset to a JSON file.
func (d *Dataset) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := d.WriteJSON(f); err != nil {
		return err
	}
	return f.Close()
}

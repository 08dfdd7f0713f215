// Package csvio reads and writes the CSV files exchanged with users:
// catalog imports and exports and the per-document client summary.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows
// detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by header name.
type Row map[string]string

// Get returns the value under header, matched case-insensitively. Missing
// columns read as "".
func (r Row) Get(header string) string {
	if v, ok := r[header]; ok {
		return v
	}
	for k, v := range r {
		if strings.EqualFold(k, header) {
			return v
		}
	}
	return ""
}

// ReadRows parses CSV with a header row. Quoted fields may contain commas,
// short rows are padded with "" and rows whose cells are all empty are
// skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		records = append(records, rec)
	}
	return FromTable(records), nil
}

// FromTable converts a header-first table, such as a spreadsheet sheet, into
// rows with the same rules as ReadRows.
func FromTable(records [][]string) []Row {
	if len(records) == 0 {
		return []Row{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = string(bytes.TrimPrefix([]byte(h), BOM))
		}
		headers[i] = strings.Trim(strings.TrimSpace(h), `"`)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(headers))
		hasData := false
		for i, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[h] = v
			if v != "" {
				hasData = true
			}
		}
		if hasData {
			rows = append(rows, row)
		}
	}
	return rows
}

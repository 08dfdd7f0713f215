// Package xlsx reads and writes Excel workbooks for catalog import/export
// and sales report downloads.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/csvio"
)

// ContentType is the MIME type of .xlsx files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// ReadRows parses the first sheet of a workbook with the same header and
// empty-row rules as csvio.ReadRows.
func ReadRows(r io.Reader) ([]csvio.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []csvio.Row{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return csvio.FromTable(records), nil
}

// WriteTable writes a single-sheet workbook whose first row is bold.
func WriteTable(w io.Writer, sheet string, table [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	rows := make([][]interface{}, 0, len(table))
	for _, rec := range table {
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	return f.SetRowStyle(sheet, 1, 1, bold)
}

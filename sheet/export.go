package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Filtered"

// Export writes rows under the given columns to path. The format follows the
// extension: .csv writes CSV, anything else writes an xlsx workbook.
func Export(path string, cols []string, rows []Row) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ExportCSV(path, cols, rows)
	}
	return ExportXLSX(path, cols, rows)
}

// ExportCSV writes a header line and one record per row.
func ExportCSV(path string, cols []string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			rec[i] = r.Text(c)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// ExportXLSX writes a single-sheet workbook. Absent cells are left empty.
func ExportXLSX(path string, cols []string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for n, r := range rows {
		for i, c := range cols {
			v, ok := r.Get(c)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, n+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(exportSheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", r.Index, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

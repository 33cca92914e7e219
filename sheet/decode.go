package sheet

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// DecodeOptions tunes how a workbook is turned into a Dataset.
type DecodeOptions struct {
	Duplicates DuplicatePolicy
}

// Decode reads an xlsx workbook and builds a Dataset from its first sheet.
// The first row supplies header names; every later row becomes a Row.
// Cells keep both their displayed text and, where it differs, their raw
// value (see Row.Raw).
func Decode(r io.Reader, opts DecodeOptions) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Dataset{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrDecode, sheets[0], err)
	}
	rawRows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrDecode, sheets[0], err)
	}
	return buildDataset(rows, rawRows, opts.Duplicates), nil
}

// DecodeBytes is Decode over an in-memory workbook.
func DecodeBytes(data []byte, opts DecodeOptions) (*Dataset, error) {
	return Decode(bytes.NewReader(data), opts)
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string, opts DecodeOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, opts)
}

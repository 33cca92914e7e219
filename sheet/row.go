package sheet

import (
	"strconv"
	"strings"
)

// Row is one data row of a sheet, keyed by header name.
type Row struct {
	// Index is the 1-based position of the row among the sheet's data rows
	// (the header row is not counted).
	Index  int
	values map[string]string
	// raw holds the unformatted cell value where it differs from values,
	// e.g. the serial number behind a date cell.
	raw map[string]string
}

// NewRow builds a Row from an explicit column map. Used by tests and by
// callers that already hold keyed data.
func NewRow(index int, values map[string]string) Row {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Row{Index: index, values: cp}
}

// Get returns the cell under col and whether the row has that cell at all.
// Cells missing from the end of a short row are absent.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Text returns the cell under col, or "" when absent.
func (r Row) Text(col string) string {
	return r.values[col]
}

// Raw returns the cell under col before the workbook's number format was
// applied. It falls back to Text for cells whose raw and display values
// agree, and for rows built with NewRow.
func (r Row) Raw(col string) string {
	if v, ok := r.raw[col]; ok {
		return v
	}
	return r.values[col]
}

// Len is the number of present cells.
func (r Row) Len() int {
	return len(r.values)
}

// Join renders the given columns joined by sep, blank for absent cells.
func (r Row) Join(cols []string, sep string) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(r.values[c])
	}
	return b.String()
}

func (r Row) String() string {
	return "#" + strconv.Itoa(r.Index)
}

// Dataset is the ordered, read-only result of decoding a sheet.
type Dataset struct {
	Headers []string
	Rows    []Row
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Row returns the row at position i in load order.
func (d *Dataset) Row(i int) Row {
	return d.Rows[i]
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-bhs/dialogs"
	"github.com/andareed/siftly-bhs/logging"
	"github.com/andareed/siftly-bhs/sheet"
)

const defaultExportName = "bhs_filtered.xlsx"

// exportView writes the rows currently on screen, in view order, to path.
// The extension picks the format (.csv or .xlsx).
func (m *model) exportView(path string) tea.Cmd {
	cols := columnNames(m.data.header)
	rows := m.data.visibleRows()
	return func() tea.Msg {
		logging.Infof("export: %d rows to %s", len(rows), path)
		if err := sheet.Export(path, cols, rows); err != nil {
			return dialogs.ExportErrorMsg{Err: err}
		}
		return dialogs.ExportOKMsg{Path: path, Rows: len(rows)}
	}
}

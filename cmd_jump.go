package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-bhs/logging"
)

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filteredIndices) > 0
}

func (m *model) jumpToStart() {
	logging.Debug("jumpToStart called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	logging.Debug("jumpToEnd called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filteredIndices) - 1
}

// jumpToLine moves the cursor to the row numbered lineNo in the sheet, the
// number shown in the gutter, provided it is part of the current view.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.checkViewPortHasData() {
		return m.startNotice("No rows to jump to", "warn", noticeDuration)
	}
	if lineNo <= 0 || lineNo > m.data.dataset.Len() {
		return m.startNotice(fmt.Sprintf("Row %d out of bounds", lineNo), "warn", noticeDuration)
	}
	for i, idx := range m.data.filteredIndices {
		if m.data.dataset.Row(idx).Index == lineNo {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice(fmt.Sprintf("Row %d not in current filter", lineNo), "warn", noticeDuration)
}

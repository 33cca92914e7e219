package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/andareed/siftly-bhs/logging"
)

// horizontalStep is how many cells h/l scroll the table by.
const horizontalStep = 4

// gutterWidth is the row-number column plus one space.
func (m *model) gutterWidth() int {
	return len(strconv.Itoa(max(1, m.data.dataset.Len()))) + 1
}

// columnsWidth is the room left for cells beside the gutter.
func (m *model) columnsWidth() int {
	return max(0, m.viewport.Width-m.gutterWidth())
}

// cutColumns returns the slice of a rendered header or row line that is in
// view at the current horizontal offset. The header and every row go
// through here so they stay aligned.
func (m *model) cutColumns(line string) string {
	return ansi.Cut(line, m.xOffset, m.xOffset+m.columnsWidth())
}

func (m *model) headerView() string {
	var cells []string

	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, renderCell(col.Name, cellStyle, col.Width))
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	return headerStyle.Render(
		strings.Repeat(" ", m.gutterWidth()) + m.cutColumns(headerRow),
	)
}

// footerView renders the 2-line footer. width is the rendered table width.
func (m *model) footerView(width int) string {
	styles := DefaultFooterStyles()

	footerMode := CmdNone
	modeInput := ""
	switch m.ui.mode {
	case modeFilter:
		footerMode = CmdFilter
	case modeCommand:
		footerMode = m.ui.command.cmd
		modeInput = m.activeCommandLine()
	}

	st := FooterState{
		Mode:          footerMode,
		ModeInput:     modeInput,
		Source:        m.source.Name(),
		FilterLabel:   m.data.criteria.String(),
		Row:           m.cursor + 1,
		TotalRows:     len(m.data.filteredIndices),
		StatusMessage: noticeText(m.ui.noticeMsg, m.ui.noticeType),
		Legend:        "(? help · f filter · F reset · : jump · y copy · x export · q quit)",
	}
	if st.TotalRows == 0 {
		st.Row = 0
	}

	if logging.IsDebugMode() {
		debug := fmt.Sprintf(" dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d page=%d ch=%d hf=%d abv=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.pageRowSize,
			m.ui.debugCursorHeight, m.ui.debugHeightFree, m.ui.debugDesiredAboveHeight,
		)
		st.Legend = st.Legend + " |" + debug
	}

	return RenderFooter(width, st, styles)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.data.state == loadPending {
		return appstyle.Render(m.spinner.View() + " Loading data...")
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	bordered := tableStyle.Render(m.viewport.View())
	contentW := lipgloss.Width(bordered)

	var parts []string
	if m.data.state == loadFailed {
		parts = append(parts, errorStyle.Render(loadErrorMessage))
	}
	parts = append(parts, m.headerView(), bordered)
	if m.ui.filterForm.open {
		parts = append(parts, m.filterDrawerView(contentW))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *model) renderRowAt(filteredIdx int) (string, int, bool) {
	row, ok := m.data.rowAt(filteredIdx)
	if !ok {
		return "", 0, false
	}

	selected := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	gutter := m.gutterWidth() - 1
	firstLineMarker := rowBgStyle.Render(fmt.Sprintf("%*d ", gutter, row.Index))
	additionalLineMarker := rowBgStyle.Render(strings.Repeat(" ", gutter+1))

	content, height := renderRow(row, cellStyle, m.data.header)
	lines := strings.Split(content, "\n")

	for i := range lines {
		left := additionalLineMarker
		if i == 0 {
			left = firstLineMarker
		}
		// cells end in a reset, so the row colours are re-applied after each
		lines[i] = left + rowPrefix + restoreRowStyleAfterReset(m.cutColumns(lines[i]), rowPrefix) + rowSuffix
	}

	return strings.Join(lines, "\n"), height, true
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" {
		return s
	}
	reset := termenv.CSI + "0m"
	if !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	tc := lipgloss.ColorProfile().Color(value)
	if tc == nil {
		return ""
	}
	seq := tc.Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

func (m *model) renderViewport() string {
	logging.Debug("renderViewport called")
	if len(m.data.filteredIndices) == 0 {
		m.ui.visibleStart, m.ui.visibleEnd = 0, 0
		m.pageRowSize = 0
		m.lastVisibleRowCount = 0
		return ""
	}

	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.pageRowSize = len(renderedRows)
	m.lastVisibleRowCount = len(renderedRows)

	return strings.Join(renderedRows, "\n")
}

// computeVisibleRows fills viewportHeight around the cursor, keeping the
// cursor roughly centred once there is enough above it.
func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(0, heightFree/2)
	m.ui.debugCursorHeight = cursorHeight
	m.ui.debugHeightFree = heightFree
	m.ui.debugDesiredAboveHeight = desiredAboveHeight
	upIndex := cursor - 1
	downIndex := cursor + 1
	n := len(m.data.filteredIndices)

	var above []string
	var below []string

	aboveHeight := 0
	for heightFree > 0 && (upIndex >= 0 || downIndex < n) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < n {
			rendered, height, ok := m.renderRowAt(downIndex)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}

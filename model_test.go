package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-bhs/dialogs"
	"github.com/andareed/siftly-bhs/filter"
	"github.com/andareed/siftly-bhs/sheet"
)

type fakeSource struct {
	ds  *sheet.Dataset
	err error
}

func (f fakeSource) Name() string { return "http://localhost:5000/excel" }

func (f fakeSource) Load(ctx context.Context) (*sheet.Dataset, error) {
	return f.ds, f.err
}

func fixture() *sheet.Dataset {
	return sheet.BuildDataset([][]string{
		tableColumns,
		{"1", "2024-01-05", "08:00", "BHS-100", "EDS-1", "CDG", "CLEAR", "L2", "PASS", "T2"},
		{"2", "2024-01-06", "09:00", "BHS-200", "EDS-2", "ORY", "ALARM", "L3", "HOLD", "T1"},
		{"3", "2024-01-07", "10:00", "BHS-101", "EDS-3", "CDGX", "CLEAR", "L2", "PASS", "T3"},
	}, sheet.DuplicateLastWins)
}

func send(m *model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T, src fakeSource) *model {
	t.Helper()
	m := newModel(src)
	send(m, tea.WindowSizeMsg{Width: 220, Height: 40})
	msg := m.loadDataset()()
	send(m, msg)
	return m
}

func TestLoadingShowsSpinnerOnly(t *testing.T) {
	m := newModel(fakeSource{ds: fixture()})
	send(m, tea.WindowSizeMsg{Width: 220, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Loading data...")
	assert.NotContains(t, view, "DATE01")

	// keys other than quit wait for the data
	send(m, runes("f"))
	assert.Equal(t, modeView, m.ui.mode)
}

func TestLoadSuccess(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	assert.Equal(t, loadReady, m.data.state)
	assert.Equal(t, []int{0, 1, 2}, m.data.filteredIndices)
	view := m.View()
	assert.Contains(t, view, "BHS-100")
	assert.Contains(t, view, "destination")
	assert.Contains(t, view, "Rows 1/3")
	assert.NotContains(t, view, loadErrorMessage)
}

func TestLoadFailureShowsFixedMessage(t *testing.T) {
	m := loadedModel(t, fakeSource{err: errors.New("connection refused")})

	assert.Equal(t, loadFailed, m.data.state)
	assert.Empty(t, m.data.filteredIndices)
	view := m.View()
	assert.Contains(t, view, loadErrorMessage)
	assert.NotContains(t, view, "connection refused")
	assert.Contains(t, view, "Rows 0/0")

	// navigation on the empty table is harmless
	for _, k := range []string{"j", "k", "d", "u", "G", "g", "y"} {
		send(m, runes(k))
	}
	assert.Equal(t, 0, m.cursor)
}

func TestFilterFormApply(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	send(m, runes("f"))
	require.Equal(t, modeFilter, m.ui.mode)
	assert.True(t, m.ui.filterForm.open)
	assert.Equal(t, filterFocusIDBHS, m.ui.filterForm.focus)

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, filterFocusIATA, m.ui.filterForm.focus)
	send(m, runes("CDG"))

	// typing alone changes nothing
	assert.Equal(t, []int{0, 1, 2}, m.data.filteredIndices)

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filter.Criteria{IATA: "CDG"}, m.data.criteria)
	assert.Equal(t, []int{0, 2}, m.data.filteredIndices)
	assert.Equal(t, modeView, m.ui.mode)
	assert.False(t, m.ui.filterForm.open)
	assert.Contains(t, m.View(), "IATA=CDG")
}

func TestFilterFormDateRange(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	send(m, runes("f"))
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, filterFocusStart, m.ui.filterForm.focus)
	send(m, runes("2024-01-06"))
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, runes("2024-01-06"))
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []int{1}, m.data.filteredIndices)
}

func TestFilterFormInvalidDateKeepsView(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	send(m, runes("f"))
	m.ui.filterForm.setFocus(filterFocusStart)
	send(m, runes("2024-13-45"))
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeFilter, m.ui.mode)
	assert.Contains(t, m.ui.filterForm.errorMsg, "Invalid start date")
	assert.Equal(t, []int{0, 1, 2}, m.data.filteredIndices)
	assert.True(t, m.data.criteria.IsEmpty())
	assert.Contains(t, m.View(), "Invalid start date")
}

func TestFilterFormEscKeepsCommitted(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IDBHS: "BHS-10"}))

	send(m, runes("f"))
	assert.Equal(t, "BHS-10", m.ui.filterForm.inputs[filterFocusIDBHS].Value())
	send(m, runes("0"))
	send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, "BHS-10", m.data.criteria.IDBHS)
	assert.Equal(t, []int{0, 2}, m.data.filteredIndices)
}

func TestResetFilters(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IATA: "ORY"}))
	require.Equal(t, []int{1}, m.data.filteredIndices)

	send(m, runes("F"))
	assert.True(t, m.data.criteria.IsEmpty())
	assert.Equal(t, []int{0, 1, 2}, m.data.filteredIndices)

	// and from inside the drawer
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IATA: "ORY"}))
	send(m, runes("f"))
	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, m.data.criteria.IsEmpty())
	assert.Equal(t, []int{0, 1, 2}, m.data.filteredIndices)
	assert.Empty(t, m.ui.filterForm.inputs[filterFocusIATA].Value())
	assert.Equal(t, modeFilter, m.ui.mode)
}

func TestNavigation(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	send(m, runes("j"))
	send(m, runes("j"))
	send(m, runes("j"))
	assert.Equal(t, 2, m.cursor)
	send(m, runes("g"))
	assert.Equal(t, 0, m.cursor)
	send(m, runes("G"))
	assert.Equal(t, 2, m.cursor)

	// cursor is clamped when the view shrinks
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IATA: "ORY"}))
	m.refreshView("test")
	assert.Equal(t, 0, m.cursor)
}

func TestJumpToRow(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IATA: "CDG"}))

	send(m, runes(":"))
	require.Equal(t, modeCommand, m.ui.mode)
	send(m, runes("3"))
	assert.Contains(t, m.View(), "row: 3")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, 1, m.cursor)

	send(m, runes(":"))
	send(m, runes("2"))
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Row 2 not in current filter", m.ui.noticeMsg)

	send(m, runes(":"))
	send(m, runes("9"))
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Row 9 out of bounds", m.ui.noticeMsg)
}

func TestCopyRow(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	var copied string
	m.copyText = func(s string) error { copied = s; return nil }

	send(m, runes("j"))
	send(m, runes("y"))
	assert.Equal(t, "2\t2024-01-06\t09:00\tBHS-200\tEDS-2\tORY\tALARM\tL3\tHOLD\tT1", copied)
	assert.Equal(t, "Row 2 copied", m.ui.noticeMsg)

	m.copyText = func(string) error { return errors.New("no clipboard") }
	send(m, runes("y"))
	assert.Equal(t, "error", m.ui.noticeType)
}

func TestExportFilteredView(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	require.NoError(t, m.data.applyCriteria(filter.Criteria{IATA: "ORY"}))

	send(m, runes("x"))
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, m.View(), "Export as:")

	path := filepath.Join(t.TempDir(), "out.csv")
	send(m, dialogs.ExportConfirmedMsg{Path: path})
	assert.Nil(t, m.activeDialog)

	cmd := m.exportView(path)
	msg := cmd()
	require.IsType(t, dialogs.ExportOKMsg{}, msg)
	send(m, msg)
	assert.Equal(t, "Exported 1 rows to "+path, m.ui.noticeMsg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(tableColumns, ","), lines[0])
	assert.Equal(t, "2,2024-01-06,09:00,BHS-200,EDS-2,ORY,ALARM,L3,HOLD,T1", lines[1])
}

func TestExportRemembersDirectory(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	dir := t.TempDir()

	send(m, dialogs.ExportOKMsg{Path: filepath.Join(dir, "out.csv"), Rows: 3})
	send(m, runes("x"))
	d, ok := m.activeDialog.(*dialogs.Export)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, defaultExportName), d.Path())
}

func TestExportFailureIsNotice(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	msg := m.exportView(filepath.Join(t.TempDir(), "missing", "out.csv"))()
	require.IsType(t, dialogs.ExportErrorMsg{}, msg)
	send(m, msg)
	assert.Equal(t, "error", m.ui.noticeType)
}

func TestHelpDialog(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})

	send(m, runes("?"))
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, m.View(), "reset filters")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.activeDialog)
}

func TestNoticeClearsOnlyLatest(t *testing.T) {
	m := loadedModel(t, fakeSource{ds: fixture()})
	m.startNotice("first", "info", noticeDuration)
	first := m.ui.noticeSeq
	m.startNotice("second", "info", noticeDuration)

	send(m, clearNoticeMsg{id: first})
	assert.Equal(t, "second", m.ui.noticeMsg)
	send(m, clearNoticeMsg{id: m.ui.noticeSeq})
	assert.Empty(t, m.ui.noticeMsg)
}

func TestLayoutColumns(t *testing.T) {
	cols := layoutColumns(newColumns(), 300)
	total := 0
	for _, c := range cols {
		assert.GreaterOrEqual(t, c.Width, c.MinWidth)
		total += c.Width
	}
	assert.LessOrEqual(t, total, 300)

	tight := layoutColumns(newColumns(), 20)
	for _, c := range tight {
		assert.Equal(t, c.MinWidth, c.Width)
	}
}

func narrowModel(t *testing.T) *model {
	t.Helper()
	m := newModel(fakeSource{ds: fixture()})
	send(m, tea.WindowSizeMsg{Width: 80, Height: 20})
	send(m, m.loadDataset()())
	return m
}

// column offset of want within a plain rendered line
func columnOf(t *testing.T, line, want string) int {
	t.Helper()
	i := strings.Index(line, want)
	require.GreaterOrEqual(t, i, 0, "%q not in %q", want, line)
	return ansi.StringWidth(line[:i])
}

func TestHorizontalScrollKeepsHeaderAligned(t *testing.T) {
	m := narrowModel(t)
	require.Greater(t, tableWidth(m.data.header), m.columnsWidth())

	for i := 0; i < 10; i++ {
		send(m, runes("l"))
	}
	assert.Equal(t, 40, m.xOffset)

	header := ansi.Strip(m.headerView())
	row, _, ok := m.renderRowAt(0)
	require.True(t, ok)
	row = ansi.Strip(row)

	assert.NotContains(t, header, "TIME01")
	assert.LessOrEqual(t, ansi.StringWidth(row), m.viewport.Width)
	// the header carries one extra border cell on the left
	assert.Equal(t, columnOf(t, header, "ID_EDS")-1, columnOf(t, row, "EDS-1"))
	assert.Equal(t, columnOf(t, header, "IATA")-1, columnOf(t, row, "CDG"))
	assert.Equal(t, columnOf(t, header, "Decision_BHS")-1, columnOf(t, row, "PASS"))

	// offset stops at the last column
	for i := 0; i < 20; i++ {
		send(m, runes("l"))
	}
	assert.Equal(t, tableWidth(m.data.header)-m.columnsWidth(), m.xOffset)

	for i := 0; i < 20; i++ {
		send(m, runes("h"))
	}
	assert.Equal(t, 0, m.xOffset)
	assert.Contains(t, ansi.Strip(m.headerView()), "ID")
}

func TestNarrowLayoutShowsFullDate(t *testing.T) {
	m := narrowModel(t)
	row, _, ok := m.renderRowAt(0)
	require.True(t, ok)
	assert.Contains(t, ansi.Strip(row), "2024-01-05")
	assert.Contains(t, ansi.Strip(m.headerView()), "DATE01")

	// text that exactly fills a cell is not cut
	assert.Equal(t, " 2024-01-05 ", ansi.Strip(renderCell("2024-01-05", cellStyle, 12)))
	assert.Equal(t, " 2024-01-… ", ansi.Strip(renderCell("2024-01-05", cellStyle, 11)))
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter(160, FooterState{
		Mode:        CmdFilter,
		Source:      "http://localhost:5000/excel",
		FilterLabel: "IATA=CDG",
		Row:         1,
		TotalRows:   2,
	}, DefaultFooterStyles())

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "FILTER")
	assert.Contains(t, lines[0], "IATA=CDG")
	assert.Contains(t, lines[0], "Rows 1/2")
	assert.Contains(t, lines[0], "localhost:5000")
	assert.Empty(t, RenderFooter(0, FooterState{}, DefaultFooterStyles()))
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-bhs/clipboard"
	"github.com/andareed/siftly-bhs/dialogs"
	"github.com/andareed/siftly-bhs/logging"
	"github.com/andareed/siftly-bhs/sheet"
)

type (
	datasetLoadedMsg struct{ ds *sheet.Dataset }
	datasetFailedMsg struct{ err error }
)

type model struct {
	data                dataState
	ui                  uiState
	source              sheet.Source
	viewport            viewport.Model
	spinner             spinner.Model
	ready               bool
	cursor              int // index into data.filteredIndices
	xOffset             int // columns scrolled off the left edge of the table
	lastVisibleRowCount int
	pageRowSize         int
	terminalWidth       int
	terminalHeight      int
	activeDialog        dialogs.Dialog
	copyText            func(string) error
}

func newModel(src sheet.Source) *model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &model{
		data:     newDataState(),
		ui:       uiState{mode: modeView, filterForm: newFilterForm()},
		source:   src,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		copyText: clipboard.Copy,
	}
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-bhs: loading from %s", m.source.Name())
	return tea.Batch(m.spinner.Tick, m.loadDataset())
}

// loadDataset runs the one fetch of the session off the update loop.
func (m *model) loadDataset() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ds, err := src.Load(context.Background())
		if err != nil {
			return datasetFailedMsg{err: err}
		}
		return datasetLoadedMsg{ds: ds}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.refreshView("resize")
		return m, nil

	case datasetLoadedMsg:
		m.data.setDataset(msg.ds)
		m.cursor = 0
		logging.Infof("dataset ready: %d rows", m.data.dataset.Len())
		m.refreshView("loaded")
		return m, nil

	case datasetFailedMsg:
		logging.Errorf("load from %s failed: %v", m.source.Name(), msg.err)
		m.data.fail(msg.err)
		m.cursor = 0
		m.refreshView("load-failed")
		return m, nil

	case spinner.TickMsg:
		if m.data.state != loadPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportView(msg.Path)

	case dialogs.ExportCanceledMsg:
		m.closeDialog()
		return m, nil

	case dialogs.ExportOKMsg:
		m.ui.lastExportDir = filepath.Dir(msg.Path)
		return m, m.startNotice(fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path), "success", noticeDuration)

	case dialogs.ExportErrorMsg:
		logging.Errorf("export failed: %v", msg.Err)
		return m, m.startNotice("Export failed: "+msg.Err.Error(), "error", noticeDuration)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		if !d.IsVisible() {
			m.closeDialog()
		}
		return m, cmd
	}

	switch m.ui.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeCommand:
		return m.handleCommandKey(msg)
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Quit) {
		return m, tea.Quit
	}
	// Nothing to act on until the sheet has arrived.
	if m.data.state == loadPending {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, Keys.Filter):
		return m, m.openFilterDrawer()
	case key.Matches(msg, Keys.ClearFilter):
		cmd = m.resetFilters()
	case key.Matches(msg, Keys.RowDown):
		if m.cursor < len(m.data.filteredIndices)-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.PageDown):
		m.pageDown()
	case key.Matches(msg, Keys.PageUp):
		m.pageUp()
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.ScrollLeft):
		m.xOffset -= horizontalStep
	case key.Matches(msg, Keys.ScrollRight):
		m.xOffset += horizontalStep
	case key.Matches(msg, Keys.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(Keys.Legend())
		return m, nil
	case key.Matches(msg, Keys.Export):
		d := dialogs.NewExportDialog(defaultExportName, m.ui.lastExportDir)
		m.activeDialog = d
		return m, d.Focus()
	case key.Matches(msg, Keys.CopyRow):
		cmd = m.copyCurrentRow()
	case key.Matches(msg, Keys.JumpToRow):
		m.enterCommandMode(CommandFromPrefix(':'))
		return m, nil
	}

	m.refreshView("key")
	return m, cmd
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
}

func (m *model) pageDown() {
	step := max(1, m.lastVisibleRowCount)
	if m.cursor+step < len(m.data.filteredIndices) {
		m.cursor += step
	} else {
		m.cursor = max(0, len(m.data.filteredIndices)-1)
	}
}

func (m *model) pageUp() {
	m.cursor -= max(1, m.lastVisibleRowCount)
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) copyCurrentRow() tea.Cmd {
	row, ok := m.data.rowAt(m.cursor)
	if !ok {
		return m.startNotice("No row selected", "warn", noticeDuration)
	}
	if err := m.copyText(row.Join(columnNames(m.data.header), "\t")); err != nil {
		logging.Warnf("copy row %d: %v", row.Index, err)
		return m.startNotice("Copy failed: "+err.Error(), "error", noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Row %d copied", row.Index), "success", noticeDuration)
}

// refreshView recomputes the layout for the current terminal size and
// redraws the table into the viewport.
func (m *model) refreshView(reason string) {
	logging.Debugf("refreshView: %s", reason)
	if !m.ready {
		return
	}
	if n := len(m.data.filteredIndices); m.cursor >= n {
		m.cursor = max(0, n-1)
	}

	// appstyle margin, table border, header line and the two footer lines
	w := max(0, m.terminalWidth-appstyle.GetHorizontalFrameSize()-tableStyle.GetHorizontalFrameSize())
	h := m.terminalHeight - appstyle.GetVerticalFrameSize() - tableStyle.GetVerticalFrameSize() - 1 - 2
	if m.data.state == loadFailed {
		h--
	}
	if m.ui.filterForm.open {
		h -= filterDrawerHeight
	}
	h = max(1, h)

	m.viewport.Width = w
	m.viewport.Height = h
	m.data.header = layoutColumns(m.data.header, w-m.gutterWidth())
	m.xOffset = max(0, min(m.xOffset, tableWidth(m.data.header)-m.columnsWidth()))
	m.viewport.SetContent(m.renderViewport())
}

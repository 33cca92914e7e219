package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-bhs/filter"
	"github.com/andareed/siftly-bhs/logging"
)

const (
	filterFocusIDBHS = iota
	filterFocusIDEDS
	filterFocusIATA
	filterFocusStart
	filterFocusEnd
	filterFieldCount
)

const (
	filterDrawerContentHeight = 3
	filterDrawerHeight        = filterDrawerContentHeight + 2
)

var filterLabels = [filterFieldCount]string{
	filterFocusIDBHS: "ID_BHS",
	filterFocusIDEDS: "ID_EDS",
	filterFocusIATA:  "IATA",
	filterFocusStart: "Start",
	filterFocusEnd:   "End",
}

// filterForm holds the draft criteria. Nothing typed here affects the table
// until it is applied.
type filterForm struct {
	open     bool
	focus    int
	inputs   [filterFieldCount]textinput.Model
	errorMsg string
}

func newFilterForm() filterForm {
	var f filterForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 14
		if i == filterFocusStart || i == filterFocusEnd {
			ti.Placeholder = filter.DateLayout
			ti.CharLimit = 32
			ti.Width = len(filter.DateLayout)
		}
		f.inputs[i] = ti
	}
	return f
}

func (f *filterForm) draft() filter.Criteria {
	return filter.Criteria{
		IDBHS:     f.inputs[filterFocusIDBHS].Value(),
		IDEDS:     f.inputs[filterFocusIDEDS].Value(),
		IATA:      f.inputs[filterFocusIATA].Value(),
		StartDate: strings.TrimSpace(f.inputs[filterFocusStart].Value()),
		EndDate:   strings.TrimSpace(f.inputs[filterFocusEnd].Value()),
	}
}

func (f *filterForm) load(c filter.Criteria) {
	f.inputs[filterFocusIDBHS].SetValue(c.IDBHS)
	f.inputs[filterFocusIDEDS].SetValue(c.IDEDS)
	f.inputs[filterFocusIATA].SetValue(c.IATA)
	f.inputs[filterFocusStart].SetValue(c.StartDate)
	f.inputs[filterFocusEnd].SetValue(c.EndDate)
}

func (f *filterForm) clear() {
	f.load(filter.Criteria{})
}

func (f *filterForm) setFocus(focus int) tea.Cmd {
	f.focus = focus
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (m *model) openFilterDrawer() tea.Cmd {
	ff := &m.ui.filterForm
	ff.open = true
	ff.errorMsg = ""
	ff.load(m.data.criteria)
	m.ui.mode = modeFilter
	m.refreshView("filter-open")
	return ff.setFocus(filterFocusIDBHS)
}

func (m *model) closeFilterDrawer() {
	ff := &m.ui.filterForm
	ff.open = false
	ff.errorMsg = ""
	ff.setFocus(-1)
	m.ui.mode = modeView
	m.refreshView("filter-close")
}

func (m *model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ff := &m.ui.filterForm

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeFilterDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.applyFilterFromForm()
	case msg.Type == tea.KeyCtrlR:
		return m, m.resetFilters()
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		return m, ff.setFocus((ff.focus + 1) % filterFieldCount)
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		return m, ff.setFocus((ff.focus + filterFieldCount - 1) % filterFieldCount)
	}

	if ff.focus < 0 || ff.focus >= filterFieldCount {
		return m, nil
	}
	var cmd tea.Cmd
	ff.inputs[ff.focus], cmd = ff.inputs[ff.focus].Update(msg)
	return m, cmd
}

func (m *model) applyFilterFromForm() tea.Cmd {
	ff := &m.ui.filterForm
	c := ff.draft()
	if err := m.data.applyCriteria(c); err != nil {
		logging.Warnf("filter rejected: %v", err)
		ff.errorMsg = filterErrorText(err)
		return nil
	}
	logging.Infof("filter applied: %s (%d/%d rows)", c, len(m.data.filteredIndices), m.data.dataset.Len())
	m.cursor = 0
	m.closeFilterDrawer()
	return m.startNotice("Filters applied", "success", noticeDuration)
}

// resetFilters empties both the committed criteria and the form.
func (m *model) resetFilters() tea.Cmd {
	m.data.resetCriteria()
	m.ui.filterForm.clear()
	m.ui.filterForm.errorMsg = ""
	m.cursor = 0
	logging.Infof("filters reset (%d rows)", len(m.data.filteredIndices))
	m.refreshView("filter-reset")
	return m.startNotice("Filters reset", "info", noticeDuration)
}

func filterErrorText(err error) string {
	switch {
	case errors.Is(err, filter.ErrInvalidStartDate):
		return "Invalid start date, use " + filter.DateLayout
	case errors.Is(err, filter.ErrInvalidEndDate):
		return "Invalid end date, use " + filter.DateLayout
	case errors.Is(err, filter.ErrInvertedRange):
		return "Start date is after end date"
	default:
		return err.Error()
	}
}

func (m *model) filterDrawerView(width int) string {
	ff := &m.ui.filterForm

	field := func(i int) string {
		label := filterLabelStyle
		if ff.focus == i {
			label = filterLabelFocusStyle
		}
		return label.Render(filterLabels[i]+": ") + ff.inputs[i].View()
	}

	line1 := strings.Join([]string{
		field(filterFocusIDBHS),
		field(filterFocusIDEDS),
		field(filterFocusIATA),
	}, "   ")
	line2 := field(filterFocusStart) + "   " + field(filterFocusEnd)

	line3 := filterHintStyle.Render("tab next · shift+tab prev · enter apply · ctrl+r reset · esc close")
	if ff.errorMsg != "" {
		line3 = errorStyle.Render(ff.errorMsg)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
	return filterArea.Width(max(0, width-filterArea.GetHorizontalBorderSize())).Render(body)
}

package main

import (
	"github.com/andareed/siftly-bhs/filter"
	"github.com/andareed/siftly-bhs/sheet"
)

// Shown in place of the table whenever the initial load fails. The underlying
// error only goes to the log.
const loadErrorMessage = "Failed to load the Excel file. Please ensure the server is running."

type loadState int

const (
	loadPending loadState = iota
	loadReady
	loadFailed
)

type dataState struct {
	state           loadState
	err             error
	dataset         *sheet.Dataset
	header          []ColumnMeta
	criteria        filter.Criteria // committed, not the form draft
	filteredIndices []int           // positions in dataset that pass criteria
}

func newDataState() dataState {
	return dataState{
		state:   loadPending,
		dataset: &sheet.Dataset{},
		header:  newColumns(),
	}
}

func (d *dataState) setDataset(ds *sheet.Dataset) {
	if ds == nil {
		ds = &sheet.Dataset{}
	}
	d.state = loadReady
	d.err = nil
	d.dataset = ds
	d.criteria = filter.Criteria{}
	d.filteredIndices = filter.All(ds)
}

func (d *dataState) fail(err error) {
	d.state = loadFailed
	d.err = err
	d.dataset = &sheet.Dataset{}
	d.criteria = filter.Criteria{}
	d.filteredIndices = nil
}

// applyCriteria commits c only when it compiles; on error the view is left
// exactly as it was.
func (d *dataState) applyCriteria(c filter.Criteria) error {
	idx, err := filter.Apply(d.dataset, c)
	if err != nil {
		return err
	}
	d.criteria = c
	d.filteredIndices = idx
	return nil
}

func (d *dataState) resetCriteria() {
	d.criteria = filter.Criteria{}
	d.filteredIndices = filter.All(d.dataset)
}

func (d *dataState) rowAt(filteredIdx int) (sheet.Row, bool) {
	if filteredIdx < 0 || filteredIdx >= len(d.filteredIndices) {
		return sheet.Row{}, false
	}
	return d.dataset.Row(d.filteredIndices[filteredIdx]), true
}

// visibleRows copies out the rows of the current view, in view order.
func (d *dataState) visibleRows() []sheet.Row {
	rows := make([]sheet.Row, 0, len(d.filteredIndices))
	for _, idx := range d.filteredIndices {
		rows = append(rows, d.dataset.Row(idx))
	}
	return rows
}

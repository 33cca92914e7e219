package sheet

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when two header cells share a name.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the value of the right-most column with the name.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateFirstWins keeps the value of the left-most column with the name.
	DuplicateFirstWins
	// DuplicateSuffix renames repeats to NAME_2, NAME_3, ... so every column stays addressable.
	DuplicateSuffix
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateFirstWins:
		return "first-wins"
	case DuplicateSuffix:
		return "suffix"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

type column struct {
	name  string
	index int
}

// Builder pairs header names with positional cell values.
//
// Blank header cells are skipped. Cells past the last header are dropped and
// missing trailing cells are left absent.
type Builder struct {
	headers []string
	cols    []column
	next    int
}

// NewBuilder prepares a builder for the given header row.
func NewBuilder(header []string, policy DuplicatePolicy) *Builder {
	b := &Builder{}
	seen := make(map[string]int)
	owner := make(map[string]int) // name -> position in b.cols

	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		if name == "" {
			continue
		}
		seen[name]++

		if seen[name] > 1 {
			switch policy {
			case DuplicateFirstWins:
				continue
			case DuplicateSuffix:
				name = fmt.Sprintf("%s_%d", name, seen[name])
			default:
				// last wins: the later column takes over the name
				b.cols[owner[name]].index = i
				continue
			}
		}

		owner[name] = len(b.cols)
		b.cols = append(b.cols, column{name: name, index: i})
		b.headers = append(b.headers, name)
	}
	return b
}

// Headers returns the addressable column names in sheet order.
func (b *Builder) Headers() []string {
	return append([]string(nil), b.headers...)
}

// Build turns one sheet row into a Row. Rows are numbered in call order.
func (b *Builder) Build(cells []string) Row {
	return b.BuildRaw(cells, nil)
}

// BuildRaw is Build with the unformatted cell values alongside the
// displayed ones. Only raw values that differ from the display are kept.
func (b *Builder) BuildRaw(cells, rawCells []string) Row {
	b.next++
	values := make(map[string]string, len(b.cols))
	var raw map[string]string
	for _, c := range b.cols {
		if c.index >= len(cells) {
			continue
		}
		v := cells[c.index]
		values[c.name] = v
		if c.index < len(rawCells) && rawCells[c.index] != v {
			if raw == nil {
				raw = make(map[string]string)
			}
			raw[c.name] = rawCells[c.index]
		}
	}
	return Row{Index: b.next, values: values, raw: raw}
}

// BuildDataset treats rows[0] as the header row and the rest as data.
func BuildDataset(rows [][]string, policy DuplicatePolicy) *Dataset {
	return buildDataset(rows, nil, policy)
}

// buildDataset pairs each displayed row with the raw row at the same
// position, if any.
func buildDataset(rows, rawRows [][]string, policy DuplicatePolicy) *Dataset {
	if len(rows) == 0 {
		return &Dataset{}
	}
	b := NewBuilder(rows[0], policy)
	ds := &Dataset{
		Headers: b.Headers(),
		Rows:    make([]Row, 0, len(rows)-1),
	}
	for i, cells := range rows[1:] {
		var rawCells []string
		if i+1 < len(rawRows) {
			rawCells = rawRows[i+1]
		}
		ds.Rows = append(ds.Rows, b.BuildRaw(cells, rawCells))
	}
	return ds
}

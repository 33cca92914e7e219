package main

import "github.com/andareed/siftly-bhs/filter"

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // decisions and destination
	RoleSecondary
	RoleDate
)

// tableColumns is the fixed display order. Headers in the sheet that are not
// listed here are loaded but never shown.
var tableColumns = []string{
	"ID",
	filter.ColDate,
	"TIME01",
	filter.ColIDBHS,
	filter.ColIDEDS,
	filter.ColIATA,
	"Decision_EDS",
	"Decision_EDS_NIVEAU2",
	"Decision_BHS",
	"destination",
}

type ColumnMeta struct {
	Name     string
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func newColumns() []ColumnMeta {
	cols := make([]ColumnMeta, 0, len(tableColumns))
	for _, name := range tableColumns {
		role := detectRole(name)
		cols = append(cols, ColumnMeta{
			Name:     name,
			Role:     role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		})
	}
	return cols
}

func columnNames(cols []ColumnMeta) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	return names
}

func detectRole(name string) ColumnRole {
	switch name {
	case "Decision_EDS", "Decision_EDS_NIVEAU2", "Decision_BHS", "destination":
		return RolePrimary
	case filter.ColIDBHS, filter.ColIDEDS:
		return RoleSecondary
	case filter.ColDate:
		return RoleDate
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 14
	case RoleSecondary:
		return 12
	case RoleDate:
		// a full DateLayout day plus cell padding and one spare
		return len(filter.DateLayout) + 4
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 2.0
	case RoleSecondary, RoleDate:
		return 1.5
	default:
		return 1.0
	}
}

func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0

	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// Too tight: every column gets its minimum and the viewport scrolls
		// horizontally.
		for i := range cols {
			if !cols[i].Visible {
				cols[i].Width = 0
				continue
			}
			cols[i].Width = cols[i].MinWidth
		}
		return cols
	}

	remaining := totalWidth - minSum

	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}

		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}

	return cols
}

// tableWidth is the width of the visible columns laid side by side.
func tableWidth(cols []ColumnMeta) int {
	w := 0
	for _, c := range cols {
		if c.Visible && c.Width > 0 {
			w += c.Width
		}
	}
	return w
}

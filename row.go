package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/andareed/siftly-bhs/sheet"
)

const cellTail = "…"

// renderRow lays a sheet row out under colsMeta. Cells are cut to their
// column so every row is a single line. Absent cells render blank.
func renderRow(r sheet.Row, style lipgloss.Style, colsMeta []ColumnMeta) (string, int) {
	var rendered []string

	for _, meta := range colsMeta {
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		rendered = append(rendered, renderCell(r.Text(meta.Name), style, meta.Width))
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return joined, lipgloss.Height(joined)
}

func renderCell(text string, style lipgloss.Style, width int) string {
	inner := width - style.GetHorizontalFrameSize()
	if inner < 0 {
		inner = 0
	}
	// StringWithTail reserves room for the tail even when text already fits
	if runewidth.StringWidth(text) > inner {
		text = truncate.StringWithTail(text, uint(inner), cellTail)
	}
	return style.Width(width).MaxHeight(1).Render(text)
}

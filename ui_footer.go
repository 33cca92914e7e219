package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type FooterState struct {
	Mode      Command
	ModeInput string

	Source string

	FilterLabel string

	Row       int
	TotalRows int

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	SourceFG   lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func DefaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		SourceFG:   lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.FilterLabel == "" {
		st.FilterLabel = "None"
	}
	if st.Legend == "" {
		st.Legend = "(? help · f filter)"
	}
	st.Row = max(0, st.Row)
	st.TotalRows = max(0, st.TotalRows)

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	gapW := 1
	filterValW := 28
	filterFixedW := runewidth.StringWidth(fmt.Sprintf("[FILTER: %s]", strings.Repeat("X", filterValW)))

	rightPlain := fmt.Sprintf(" Rows %d/%d", st.Row, st.TotalRows)
	rightPlain = truncatePlain(rightPlain, width)
	rightW := runewidth.StringWidth(rightPlain)

	leftW := max(0, width-rightW)

	modeColW := clamp(leftW/4, 10, 24)
	filterColW := filterFixedW
	sourceColW := leftW - modeColW - filterColW - 2*gapW
	if sourceColW < 0 {
		deficit := -sourceColW
		if filterColW > 10 {
			shrink := min(deficit, filterColW-10)
			filterColW -= shrink
			deficit -= shrink
		}
		if deficit > 0 && modeColW > 8 {
			shrink := min(deficit, modeColW-8)
			modeColW -= shrink
		}
		sourceColW = leftW - modeColW - filterColW - 2*gapW
		if sourceColW < 0 {
			modeColW = max(0, modeColW+sourceColW)
			sourceColW = 0
		}
	}

	// shrink the pill to its label and hand the slack to the source column
	modeText := commandLabel(st.Mode)
	if pillW := runewidth.StringWidth(modeText) + 2; pillW < modeColW {
		sourceColW += modeColW - pillW
		modeColW = pillW
	}

	modeSeg := renderModeSegment(modeColW, st, styles)
	sourceSeg := renderSourceSegment(sourceColW, st, styles)
	filterSeg := renderFilterSegment(filterColW, st, styles, filterValW)

	left := modeSeg + strings.Repeat(" ", gapW) + sourceSeg + strings.Repeat(" ", gapW) + filterSeg
	if leftWActual := modeColW + sourceColW + filterColW + 2*gapW; leftWActual < leftW {
		left += strings.Repeat(" ", leftW-leftWActual)
	}

	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	legendW := runewidth.StringWidth(legendPlain)

	leftW := max(0, width-legendW)

	msgPlain := truncatePlain(st.StatusMessage, leftW)
	msgPlain = padRightPlain(msgPlain, leftW)

	linePlain := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(linePlain, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	content := truncatePlain(commandLabel(st.Mode), max(0, colW-2))
	pillPlain := truncatePlain(" "+content+" ", colW)
	pad := strings.Repeat(" ", colW-runewidth.StringWidth(pillPlain))

	pill := bgSeq(styles.ModePillBG) + fgSeq(styles.ModePillFG) + pillPlain
	pill += bgSeq(styles.BarBG) + fgSeq(styles.TextFG) + pad
	return pill
}

// renderSourceSegment shows where the sheet came from, followed by the
// command line while one is being typed.
func renderSourceSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.Source)
	if name == "" {
		name = "(no source)"
	}
	remaining := colW
	sourcePlain := truncatePlain("▸ "+name, remaining)
	remaining -= runewidth.StringWidth(sourcePlain)

	inputPlain := ""
	if input := strings.TrimSpace(st.ModeInput); input != "" && remaining > 0 {
		inputPlain = truncatePlain(" ▸ "+input, remaining)
		remaining -= runewidth.StringWidth(inputPlain)
	}

	pad := strings.Repeat(" ", max(0, remaining))
	return applyFG(sourcePlain, styles.SourceFG, styles.TextFG) + inputPlain + pad
}

func renderFilterSegment(colW int, st FooterState, styles FooterStyles, filterValW int) string {
	if colW <= 0 {
		return ""
	}
	filterVal := truncatePlain(strings.TrimSpace(st.FilterLabel), filterValW)

	plain := fmt.Sprintf("[FILTER: %s]", filterVal)
	plain = truncatePlain(plain, colW)
	plain = padRightPlain(plain, colW)
	return applyFG(plain, styles.DimFG, styles.TextFG)
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return bgSeq(bg) + fgSeq(baseFG) + s + "\x1b[0m"
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "JUMP"
	case CmdFilter:
		return "FILTER"
	default:
		return "NORMAL"
	}
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return fgSeq(fg) + s + fgSeq(resetFG)
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(s, w)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

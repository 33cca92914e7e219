package main

type mode int

const (
	modeView mode = iota
	modeFilter
	modeCommand
)

type uiState struct {
	mode                    mode
	command                 CommandInput
	filterForm              filterForm
	noticeMsg               string
	noticeType              string
	noticeSeq               int
	lastExportDir           string // where the previous export went
	visibleStart            int
	visibleEnd              int
	debugCursorHeight       int
	debugHeightFree         int
	debugDesiredAboveHeight int
}

package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	errorFGColor           = "#ff5f5f"
)

var (
	appstyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	filterArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
	filterLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	filterLabelFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c")).Bold(true)
	filterHintStyle       = lipgloss.NewStyle().Faint(true)

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(errorFGColor)).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c"))
)

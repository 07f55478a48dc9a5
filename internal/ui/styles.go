package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("203") // Red
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var headerCellStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

var headerSelectedStyle = headerCellStyle.
	Foreground(colorHighlight).
	Underline(true)

var selectedRowStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

var unknownCellStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

var identifiedCellStyle = lipgloss.NewStyle().
	Foreground(colorSuccess)

var answeredMarkStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

var noAnswerMarkStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true)

var statusBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

var statusKeyStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

var statusTextStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

var errorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true)

var noticeStyle = lipgloss.NewStyle().
	Foreground(colorSuccess)

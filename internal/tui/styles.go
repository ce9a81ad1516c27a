package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorConnected    = lipgloss.Color("#16a34a")
	colorDisconnected = lipgloss.Color("#dc2626")
	colorMuted        = lipgloss.Color("#6b7280")
	colorAccent       = lipgloss.Color("#f59e0b")
	colorKey          = lipgloss.Color("#e5e7eb")
	colorSharp        = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	statusOK   = lipgloss.NewStyle().Foreground(colorConnected).Bold(true)
	statusDown = lipgloss.NewStyle().Foreground(colorDisconnected).Bold(true)

	naturalKey = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#111827")).
			Background(colorKey)

	sharpKey = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Foreground(colorKey).
			Background(colorSharp)

	litKey = lipgloss.NewStyle().
		Width(4).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("#111827")).
		Background(colorAccent).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorDisconnected)
)

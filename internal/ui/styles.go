package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the watch screen
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - live devices
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

var (
	// TitleStyle renders the screen header.
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// StatusStyle renders the running/listening line under the header.
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// HeaderRowStyle renders the device table column headers.
	HeaderRowStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(2)

	// DeviceRowStyle renders one device line.
	DeviceRowStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(2)

	// FreshStyle marks devices seen within the last sweep interval.
	FreshStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// StaleStyle marks devices approaching the stale timeout.
	StaleStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// HelpStyle renders the key help footer.
	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2).
			PaddingTop(1)
)

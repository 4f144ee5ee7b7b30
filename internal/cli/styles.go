// Package cli renders finsight results in the terminal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#4D96FF")
	IncomeColor  = lipgloss.Color("#4ECDC4") // Teal
	ExpenseColor = lipgloss.Color("#FF6B6B") // Red
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	BorderColor  = lipgloss.Color("#333")
)

var (
	// TitleStyle is used for table and box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// SubtleStyle is used for footnotes such as truncated row counts.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(IncomeColor)
	errorStyle   = lipgloss.NewStyle().Foreground(ExpenseColor)
	warningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	infoStyle    = lipgloss.NewStyle().Foreground(InfoColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	// Numeric cells are right-aligned; negative amounts are expenses.
	numberCellStyle   = cellStyle.Align(lipgloss.Right)
	negativeCellStyle = numberCellStyle.Foreground(ExpenseColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	LedgerIcon  = "💰"
	ChartIcon   = "📊"
)

func message(style lipgloss.Style, icon, text string) string {
	return style.Render(icon + " " + text)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(text string) string { return message(successStyle, SuccessIcon, text) }

// FormatError formats an error message with icon.
func FormatError(text string) string { return message(errorStyle, ErrorIcon, text) }

// FormatWarning formats a warning message with icon.
func FormatWarning(text string) string { return message(warningStyle, WarningIcon, text) }

// FormatInfo formats an info message with icon.
func FormatInfo(text string) string { return message(infoStyle, InfoIcon, text) }

// FormatTitle formats a title with the ledger icon.
func FormatTitle(title string) string { return message(TitleStyle, LedgerIcon, title) }

// RenderBox renders a titled summary in a rounded box.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), content))
}

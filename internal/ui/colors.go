package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors, plain ANSI codes so they follow the terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// DisableColor switches all lipgloss rendering to plain text. Used for
// --no-color and the NO_COLOR environment variable.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Success renders text in the success color with a leading check mark.
func Success(text string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess) + " " + text
}

// Failure renders text with a leading red cross.
func Failure(text string) string {
	return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail) + " " + text
}

// Alert renders a warning line.
func Alert(text string) string {
	return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Render(SymbolAlert + " " + text)
}

// Muted renders secondary text.
func Muted(text string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(text)
}

// Package ui provides the visual styling for the claudechat terminal client,
// with light and dark themes.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Dark theme (default)
	darkBackground = lipgloss.Color("#1a1915")
	darkForeground = lipgloss.Color("#eeece2")
	darkPrimary    = lipgloss.Color("#d97757") // terracotta
	darkAccent     = lipgloss.Color("#c2c0b6")
	darkMuted      = lipgloss.Color("#6b6a63")
	darkBorder     = lipgloss.Color("#3e3d38")
	darkSurface    = lipgloss.Color("#262520")

	// Light theme
	lightBackground = lipgloss.Color("#faf9f5")
	lightForeground = lipgloss.Color("#29261b")
	lightPrimary    = lipgloss.Color("#c15f3c")
	lightAccent     = lipgloss.Color("#5c5a52")
	lightMuted      = lipgloss.Color("#9c9a92")
	lightBorder     = lipgloss.Color("#e8e6dc")
	lightSurface    = lipgloss.Color("#f0eee6")

	// Semantic colors, shared by both themes
	colorError   = lipgloss.Color("#d13438")
	colorWarning = lipgloss.Color("#c19c00")
	colorSuccess = lipgloss.Color("#4f9d69")
)

// Theme is a named color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Surface    lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Background: darkBackground,
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Accent:     darkAccent,
		Muted:      darkMuted,
		Border:     darkBorder,
		Surface:    darkSurface,
		IsDark:     true,
	}
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Background: lightBackground,
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Accent:     lightAccent,
		Muted:      lightMuted,
		Border:     lightBorder,
		Surface:    lightSurface,
		IsDark:     false,
	}
}

// ThemeByName resolves a configured theme name. "auto" and unknown names fall
// back to terminal detection.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG and defaults to
// dark when nothing is known.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; low ANSI indexes mean dark.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx == 7 || bgIdx == 15 {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds the rendered lipgloss styles for every UI element.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style

	Title     lipgloss.Style
	Muted     lipgloss.Style
	UserTag   lipgloss.Style
	ClaudeTag lipgloss.Style

	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style

	Prompt  lipgloss.Style
	Spinner lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	Divider lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		UserTag: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		ClaudeTag: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		UserMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider draws a horizontal rule of the given width.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

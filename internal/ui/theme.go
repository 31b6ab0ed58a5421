package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/ffind/internal/config"
)

// Catppuccin Mocha palette, mutable so config can override.
var (
	ColorPath   = lipgloss.Color("#cba6f7")
	ColorMatch  = lipgloss.Color("#f38ba8")
	ColorLineNo = lipgloss.Color("#a6e3a1")
	ColorSep    = lipgloss.Color("#5a6278")
	ColorWarn   = lipgloss.Color("#f9e2af")
	ColorLabel  = lipgloss.Color("#89b4fa")
)

// Pre-built styles, rebuilt by rebuildStyles() after color changes.
var (
	stylePath   lipgloss.Style
	styleDir    lipgloss.Style
	styleMatch  lipgloss.Style
	styleLineNo lipgloss.Style
	styleSep    lipgloss.Style
	styleWarn   lipgloss.Style
	styleLabel  lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	stylePath = lipgloss.NewStyle().Foreground(ColorPath)
	styleDir = lipgloss.NewStyle().Foreground(ColorLabel).Bold(true)
	styleMatch = lipgloss.NewStyle().Foreground(ColorMatch).Bold(true)
	styleLineNo = lipgloss.NewStyle().Foreground(ColorLineNo)
	styleSep = lipgloss.NewStyle().Foreground(ColorSep)
	styleWarn = lipgloss.NewStyle().Foreground(ColorWarn)
	styleLabel = lipgloss.NewStyle().Foreground(ColorLabel).Bold(true)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Path != nil {
		ColorPath = lipgloss.Color(*tc.Path)
	}
	if tc.Match != nil {
		ColorMatch = lipgloss.Color(*tc.Match)
	}
	if tc.LineNo != nil {
		ColorLineNo = lipgloss.Color(*tc.LineNo)
	}
	if tc.Separator != nil {
		ColorSep = lipgloss.Color(*tc.Separator)
	}
	if tc.Warning != nil {
		ColorWarn = lipgloss.Color(*tc.Warning)
	}
	rebuildStyles()
}

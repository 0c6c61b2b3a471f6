package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each field is a lipgloss color usable with lipgloss.Style.Foreground().
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary lipgloss.TerminalColor
	// Secondary is used for less prominent elements.
	Secondary lipgloss.TerminalColor
	// Success indicates positive outcomes or completed operations.
	Success lipgloss.TerminalColor
	// Warning is used for caution messages or non-critical issues.
	Warning lipgloss.TerminalColor
	// Error indicates failures or critical issues.
	Error lipgloss.TerminalColor
	// Info is used for informational messages.
	Info lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	// Uses bright, vibrant colors for good contrast.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("39"),  // Bright blue
		Secondary: lipgloss.Color("245"), // Grey
		Success:   lipgloss.Color("82"),  // Bright green
		Warning:   lipgloss.Color("220"), // Yellow
		Error:     lipgloss.Color("196"), // Red
		Info:      lipgloss.Color("141"), // Purple
	}

	// NoColorTheme disables all color output.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Info:      lipgloss.NoColor{},
	}

	// currentTheme is the active theme used throughout the application.
	// Defaults to DarkTheme but can be changed via InitTheme.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the color-free theme when noColor is set and the dark
// theme otherwise.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

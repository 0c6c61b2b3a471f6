// Package ui provides theme and color support for the application's user interface.
// It defines color schemes and lipgloss styles for consistent styling of the
// batch report, with a color-free variant selected by -no-color.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between business logic and presentation.
package ui

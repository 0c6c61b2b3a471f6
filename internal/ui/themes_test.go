package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests mutate package state and therefore do not run in parallel.

func TestInitTheme_NoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestInitTheme_ColorByDefault(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(NoColorTheme)
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("InitTheme(false) -> %q, want dark", GetCurrentTheme().Name)
	}
}

func TestNoColorStyles_RenderPlainText(t *testing.T) {
	styles := NewStyles(NoColorTheme)
	for name, style := range map[string]lipgloss.Style{
		"Label": styles.Label,
		"Value": styles.Value,
	} {
		if got := style.Render("data/a.data"); got != "data/a.data" {
			t.Errorf("%s.Render = %q, want plain text", name, got)
		}
	}
	if got := styles.Error.Render("failed"); !strings.Contains(got, "failed") {
		t.Errorf("Error.Render dropped the text: %q", got)
	}
}

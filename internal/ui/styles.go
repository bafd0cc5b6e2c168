package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/docco/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// Section list styles
	Header lipgloss.Style
	Cursor lipgloss.Style
	Dim    lipgloss.Style

	// Preview styles
	PreviewHeader lipgloss.Style
	PreviewLine   lipgloss.Style

	// Chrome styles
	Divider lipgloss.Style
	Status  lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header:        lipgloss.NewStyle(),
		Cursor:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PreviewHeader: lipgloss.NewStyle().Bold(true),
		PreviewLine:   lipgloss.NewStyle(),
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SelectedBg:    lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig(cfg *config.Config) {
	headerColor := parseANSIColor(cfg.ColorHeader)
	dimColor := parseANSIColor(cfg.ColorDim)
	borderColor := lipgloss.Color(cfg.ColorBorder)
	selectedBg := lipgloss.Color(cfg.ColorSelected)

	s.Header = lipgloss.NewStyle().Foreground(headerColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)

	// Preview header is bold
	s.PreviewHeader = lipgloss.NewStyle().Bold(true).Foreground(headerColor)

	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
	s.Status = lipgloss.NewStyle().Foreground(dimColor)
	s.SelectedBg = selectedBg
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles(cfg *config.Config) {
	styles.LoadFromConfig(cfg)
}

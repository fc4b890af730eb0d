// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	MutedStyle         lipgloss.Style

	// Tab bar.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style

	// Lists.
	RowSelectedStyle lipgloss.Style
	RowNormalStyle   lipgloss.Style

	// Status message levels.
	LevelInfoStyle  lipgloss.Style
	LevelWarnStyle  lipgloss.Style
	LevelErrorStyle lipgloss.Style
	LevelDebugStyle lipgloss.Style

	// Bundle states.
	StateActiveStyle  lipgloss.Style
	StateLoadingStyle lipgloss.Style
	StateIdleStyle    lipgloss.Style

	// Settings editor.
	SettingLabelStyle lipgloss.Style
	SettingValueStyle lipgloss.Style
	SettingErrorStyle lipgloss.Style

	// Modal overlays.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true)
	RowNormalStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)

	LevelInfoStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	LevelWarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	LevelErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	LevelDebugStyle = lipgloss.NewStyle().Foreground(p.Muted)

	StateActiveStyle = lipgloss.NewStyle().Foreground(p.Success)
	StateLoadingStyle = lipgloss.NewStyle().Foreground(p.Warning)
	StateIdleStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SettingLabelStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Width(28)
	SettingValueStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	SettingErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Secondary).Foreground(p.Foreground)
	ToastWarningStyle = toast.BorderForeground(p.Warning).Foreground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error).Foreground(p.Error)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

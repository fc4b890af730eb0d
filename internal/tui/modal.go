package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/adminctl/internal/core/styles"
)

// Modal is a yes/no confirmation dialog.
type Modal struct {
	title           string
	message         string
	confirmSelected bool
}

// NewModal creates a modal with the confirm button selected.
func NewModal(title, message string) Modal {
	return Modal{
		title:           title,
		message:         message,
		confirmSelected: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Overlay renders the modal centered over background.
func (m Modal) Overlay(background string, width, height int) string {
	var confirmBtn, cancelBtn string
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render(m.title)
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	} else {
		confirmBtn = styles.ModalButtonStyle.Render(m.title)
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return centerOverlay(background, styles.ModalStyle.Render(content), width, height)
}

func centerOverlay(background, overlay string, width, height int) string {
	w := lipgloss.Width(overlay)
	h := lipgloss.Height(overlay)

	bgLayer := lipgloss.NewLayer(background)
	fgLayer := lipgloss.NewLayer(overlay).
		X(max((width-w)/2, 0)).
		Y(max((height-h)/2, 0)).
		Z(1)

	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}

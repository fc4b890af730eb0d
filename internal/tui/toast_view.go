package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/core/ui"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and composites them as an overlay.
type ToastView struct {
	controller *ToastController
	icons      styles.Icons
}

func NewToastView(controller *ToastController, icons styles.Icons) *ToastView {
	return &ToastView{controller: controller, icons: icons}
}

// View renders the toast stack, oldest at top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, v.renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.level {
	case ui.LevelError:
		icon = v.icons.Error
		style = styles.ToastErrorStyle
	case ui.LevelWarning:
		icon = v.icons.Warning
		style = styles.ToastWarningStyle
	default:
		icon = v.icons.Info
		style = styles.ToastInfoStyle
	}

	text := icon + " " + t.message
	if t.repeats > 0 {
		text += fmt.Sprintf(" (×%d)", t.repeats+1)
	}
	return style.Width(toastWidth).Render(text)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	toastW := lipgloss.Width(toastContent)
	toastH := lipgloss.Height(toastContent)

	toastLayer.X(max(width-toastW-1, 0)).Y(max(height-toastH, 0)).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}

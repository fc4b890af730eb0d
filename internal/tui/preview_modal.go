package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
)

// PreviewModal shows the full text of a status message rendered as markdown.
type PreviewModal struct {
	message  status.Message
	viewport viewport.Model
	width    int
	height   int
}

// NewPreviewModal creates a preview sized relative to the terminal.
func NewPreviewModal(msg status.Message, width, height int) PreviewModal {
	modalWidth := max(int(float64(width)*0.8), 20)
	modalHeight := max(int(float64(height)*0.8), 8)

	contentWidth := max(modalWidth-4, 10)
	contentHeight := max(modalHeight-6, 3)

	vp := viewport.New(
		viewport.WithWidth(contentWidth),
		viewport.WithHeight(contentHeight),
	)
	vp.SetContent(renderMarkdown(msg.Text, contentWidth))

	return PreviewModal{
		message:  msg,
		viewport: vp,
		width:    modalWidth,
		height:   modalHeight,
	}
}

func renderMarkdown(text string, width int) string {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// Message returns the previewed message.
func (p PreviewModal) Message() status.Message {
	return p.message
}

// ScrollUp scrolls the content up one line.
func (p *PreviewModal) ScrollUp() {
	p.viewport.ScrollUp(1)
}

// ScrollDown scrolls the content down one line.
func (p *PreviewModal) ScrollDown() {
	p.viewport.ScrollDown(1)
}

// Overlay renders the preview centered over background.
func (p PreviewModal) Overlay(background string, width, height int) string {
	title := fmt.Sprintf("%s  %s", p.message.Level, p.message.Date.Format("2006-01-02 15:04:05"))
	if p.message.ModuleName != "" {
		title += "  " + p.message.ModuleName
	}

	scroll := ""
	if p.viewport.TotalLineCount() > p.viewport.VisibleLineCount() {
		scroll = fmt.Sprintf(" (%d%%)", int(p.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		"",
		p.viewport.View(),
		"",
		styles.ModalHelpStyle.Render("↑/↓ scroll  x dismiss  esc close"+scroll),
	)

	modal := styles.ModalStyle.Width(p.width).Render(content)
	return centerOverlay(background, modal, width, height)
}

package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
)

const statusPanelRows = 5

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	mainView := m.renderMain()
	w, h := m.viewWidth(), m.viewHeight()

	var content string
	switch m.state {
	case stateConfirming:
		content = m.modal.Overlay(mainView, w, h)
	case statePreviewing:
		content = m.preview.Overlay(mainView, w, h)
	case stateEditing, stateFiltering, stateUploading:
		content = m.renderInputOverlay(mainView, w, h)
	default:
		content = mainView
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) viewWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

func (m Model) viewHeight() int {
	if m.height == 0 {
		return 24
	}
	return m.height
}

func (m Model) renderMain() string {
	w := m.viewWidth()
	divider := styles.DividerStyle.Render(strings.Repeat("─", w))

	var body string
	switch m.tab {
	case tabBundles:
		body = m.renderBundles()
	case tabPlatform:
		body = m.renderSettings(m.platform.Options(), m.platformCursor)
	case tabModule:
		body = m.renderModule()
	}

	bodyHeight := max(m.viewHeight()-statusPanelRows-6, 3)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		divider,
		body,
		divider,
		m.renderStatusPanel(),
		m.renderHelp(),
	)
}

func (m Model) renderTabs() string {
	labels := []string{
		m.catalog.Message(keyTabBundles),
		m.catalog.Message(keyTabPlatform),
		m.catalog.Message(keyTabModule),
	}

	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if tab(i) == m.tab && m.focus == focusMain {
			parts = append(parts, styles.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderBundles() string {
	bundles := m.visibleBundles()

	var b strings.Builder
	if m.filter != "" {
		b.WriteString(styles.MutedStyle.Render("filter: "+m.filter) + "\n")
	}

	for i, bd := range bundles {
		row := fmt.Sprintf("%s %-4s %-28s %-36s %-10s %s",
			m.bundleIcon(bd),
			bd.Key(),
			ansi.Truncate(bd.DisplayName(), 28, "…"),
			ansi.Truncate(bd.SymbolicName, 36, "…"),
			bd.Version,
			m.stateLabel(bd.State),
		)
		b.WriteString(m.renderRow(row, i == m.bundleCursor && m.focus == focusMain))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) bundleIcon(b bundle.Bundle) string {
	switch {
	case !bundle.IsStable(b):
		return styles.StateLoadingStyle.Render(m.spinner.View())
	case bundle.IsActive(b):
		return styles.StateActiveStyle.Render(m.icons.Active)
	default:
		return styles.StateIdleStyle.Render(m.icons.Inactive)
	}
}

func (m Model) stateLabel(s bundle.State) string {
	return m.catalog.Message("bundles.state." + string(s))
}

func (m Model) renderModule() string {
	b := m.module.Bundle()
	if b.ID == 0 {
		return styles.MutedStyle.Render(m.catalog.Message(keyNoModule))
	}

	header := styles.SettingLabelStyle.Render(m.icons.Module+" "+b.DisplayName()) +
		styles.MutedStyle.Render("  "+strings.Join(m.module.Files(), ", "))

	if !m.module.ShowSettings() {
		return header + "\n\n" + styles.MutedStyle.Render(m.catalog.Message(keySettingsNone))
	}
	return header + "\n\n" + m.renderSettings(m.module.Options(), m.moduleCursor)
}

func (m Model) renderSettings(opts []settings.Option, cursor int) string {
	if len(opts) == 0 {
		return styles.MutedStyle.Render(m.catalog.Message(keySettingsNone))
	}

	width := 0
	for _, o := range opts {
		width = max(width, lipgloss.Width(m.settingLabel(o.Key)))
	}

	var b strings.Builder
	for i, o := range opts {
		label := m.settingLabel(o.Key)
		label += strings.Repeat(" ", width-lipgloss.Width(label))

		icon := " "
		switch o.State {
		case settings.StateLoading:
			icon = styles.StateLoadingStyle.Render(m.spinner.View())
		case settings.StateError:
			icon = styles.SettingErrorStyle.Render(settings.Icon(o.State))
		}

		selected := i == cursor && m.focus == focusMain
		line := fmt.Sprintf("%s  %s  %s", icon, styles.SettingLabelStyle.Render(label), styles.SettingValueStyle.Render(o.Value))
		if selected {
			line = styles.RowSelectedStyle.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) settingLabel(key string) string {
	if m.catalog.Has("settings." + key) {
		return settings.Label(m.catalog, key)
	}
	return key
}

func (m Model) renderStatusPanel() string {
	title := m.catalog.Message(keyStatusTitle)
	if m.focus == focusStatus {
		title = styles.TabActiveStyle.Render(title)
	} else {
		title = styles.TabInactiveStyle.Render(title)
	}

	msgs := m.poller.Displayed()
	if len(msgs) == 0 {
		return title + "\n" + styles.MutedStyle.Render(m.catalog.Message(keyStatusNone))
	}

	start := 0
	if m.statusCursor >= statusPanelRows {
		start = m.statusCursor - statusPanelRows + 1
	}
	end := min(start+statusPanelRows, len(msgs))

	lines := []string{title}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.statusLine(msgs[i]), i == m.statusCursor && m.focus == focusStatus))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusLine(msg status.Message) string {
	text, _, _ := strings.Cut(msg.Text, "\n")
	line := fmt.Sprintf("%s %s %s",
		levelStyle(msg.Level).Render(fmt.Sprintf("%-8s", msg.Level)),
		styles.MutedStyle.Render(status.ToDate(msg).Format("15:04:05")),
		text,
	)
	if msg.ModuleName != "" {
		line += styles.MutedStyle.Render("  [" + msg.ModuleName + "]")
	}
	return ansi.Truncate(line, max(m.viewWidth()-2, 10), "…")
}

func levelStyle(l status.Level) lipgloss.Style {
	switch l {
	case status.LevelError, status.LevelCritical:
		return styles.LevelErrorStyle
	case status.LevelWarn:
		return styles.LevelWarnStyle
	case status.LevelDebug:
		return styles.LevelDebugStyle
	default:
		return styles.LevelInfoStyle
	}
}

func (m Model) renderRow(row string, selected bool) string {
	if selected {
		return styles.RowSelectedStyle.Render("› " + row)
	}
	return styles.RowNormalStyle.Render("  " + row)
}

func (m Model) renderHelp() string {
	bindings := m.keys.helpFor(m.tab, m.focus)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.MutedStyle.Render(ansi.Truncate(strings.Join(parts, " • "), m.viewWidth(), "…"))
}

func (m Model) renderInputOverlay(background string, w, h int) string {
	var title string
	switch m.state {
	case stateFiltering:
		title = m.catalog.Message(keyFilterTitle)
	case stateUploading:
		title = m.catalog.Message(keyUploadTitle)
	default:
		title = m.settingLabel(m.editKey)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		"",
		m.input.View(),
		"",
		styles.ModalHelpStyle.Render("enter: confirm • esc: cancel"),
	)
	return centerOverlay(background, styles.ModalStyle.Width(60).Render(content), w, h)
}

package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/ui"
)

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfirming:
		return m.handleConfirmKey(msg)
	case stateEditing, stateFiltering, stateUploading:
		return m.handleInputKey(msg)
	case statePreviewing:
		return m.handlePreviewKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.poller.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusMain {
			m.focus = focusStatus
		} else {
			m.focus = focusMain
		}
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.focus = focusMain
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.focus = focusMain
		return m, nil
	}

	if m.focus == focusStatus {
		return m.handleStatusKey(msg)
	}

	switch m.tab {
	case tabBundles:
		return m.handleBundlesKey(msg)
	default:
		return m.handleSettingsKey(msg)
	}
}

func (m Model) handleBundlesKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	n := len(m.visibleBundles())

	switch {
	case key.Matches(msg, m.keys.Up):
		m.bundleCursor = clamp(m.bundleCursor-1, n)
	case key.Matches(msg, m.keys.Down):
		m.bundleCursor = clamp(m.bundleCursor+1, n)
	case key.Matches(msg, m.keys.Filter):
		return m.beginInput(stateFiltering, m.filter, "org.example.*")
	case key.Matches(msg, m.keys.Upload):
		m.uploadStart = msg.String() == "A"
		return m.beginInput(stateUploading, "", "/path/to/module.jar")
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadBundles()
	}

	sel, ok := m.selectedBundle()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Start):
		return m, m.bundleAction(m.bundles.Start, sel.ID)
	case key.Matches(msg, m.keys.Stop):
		return m, m.bundleAction(m.bundles.Stop, sel.ID)
	case key.Matches(msg, m.keys.Restart):
		return m, m.bundleAction(m.bundles.Restart, sel.ID)
	case key.Matches(msg, m.keys.Uninstall):
		message, title := m.bundles.UninstallPrompt()
		m.modal = NewModal(title, message)
		m.pendingUninstall = sel.ID
		m.state = stateConfirming
	case key.Matches(msg, m.keys.Open):
		m.tab = tabModule
		return m, m.loadModule(sel.ID)
	}

	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	opts, cursor := m.settingsOptions()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.setSettingsCursor(clamp(cursor-1, len(opts)))
	case key.Matches(msg, m.keys.Down):
		m.setSettingsCursor(clamp(cursor+1, len(opts)))
	case key.Matches(msg, m.keys.SaveAll):
		if len(opts) == 0 {
			return m, nil
		}
		return m, m.saveAll()
	case key.Matches(msg, m.keys.Reload):
		if m.tab == tabModule {
			if id := m.module.Bundle().ID; id != 0 {
				return m, m.loadModule(id)
			}
			return m, nil
		}
		return m, m.loadPlatform()
	case key.Matches(msg, m.keys.Open):
		if cursor >= len(opts) {
			return m, nil
		}
		m.editKey = opts[cursor].Key
		return m.beginInput(stateEditing, opts[cursor].Value, "")
	}

	return m, nil
}

func (m *Model) setSettingsCursor(i int) {
	if m.tab == tabModule {
		m.moduleCursor = i
	} else {
		m.platformCursor = i
	}
}

func (m Model) handleStatusKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	n := len(m.poller.Displayed())

	switch {
	case key.Matches(msg, m.keys.Up):
		m.statusCursor = clamp(m.statusCursor-1, n)
	case key.Matches(msg, m.keys.Down):
		m.statusCursor = clamp(m.statusCursor+1, n)
	case key.Matches(msg, m.keys.Preview):
		if sel, ok := m.selectedStatus(); ok {
			m.preview = NewPreviewModal(sel, m.viewWidth(), m.viewHeight())
			m.state = statePreviewing
		}
	case key.Matches(msg, m.keys.Dismiss):
		if sel, ok := m.selectedStatus(); ok {
			return m.dismiss(sel.ID)
		}
	}

	return m, nil
}

func (m Model) dismiss(id string) (tea.Model, tea.Cmd) {
	for _, msg := range m.poller.Displayed() {
		if msg.ID == id {
			m.poller.Dismiss(msg)
			break
		}
	}
	m.statusCursor = clamp(m.statusCursor, len(m.poller.Displayed()))
	return m, m.showToast(Notification{Level: ui.LevelInfo, Message: m.catalog.Message(keyStatusDismiss)})
}

func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	case "y":
		m.state = stateNormal
		return m, m.uninstall(m.pendingUninstall)
	case "n", "esc":
		m.state = stateNormal
		return m, nil
	case "enter":
		m.state = stateNormal
		if m.modal.ConfirmSelected() {
			return m, m.uninstall(m.pendingUninstall)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.preview.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.preview.ScrollDown()
	case key.Matches(msg, m.keys.Dismiss):
		m.state = stateNormal
		return m.dismiss(m.preview.Message().ID)
	case key.Matches(msg, m.keys.Cancel), msg.String() == "q":
		m.state = stateNormal
	}
	return m, nil
}

func (m Model) beginInput(state uiState, value, placeholder string) (tea.Model, tea.Cmd) {
	m.state = state
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateNormal
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		state := m.state
		m.state = stateNormal
		m.input.Blur()
		return m.commitInput(state, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput(state uiState, value string) (tea.Model, tea.Cmd) {
	switch state {
	case stateFiltering:
		value = strings.TrimSpace(value)
		if !bundle.ValidPattern(value) {
			return m, m.showToast(Notification{Level: ui.LevelWarning, Message: m.catalog.Message(keyInvalidPattern)})
		}
		m.filter = value
		m.bundleCursor = 0
		return m, nil

	case stateUploading:
		path := strings.TrimSpace(value)
		if path == "" {
			return m, nil
		}
		return m, m.upload(path, m.uploadStart)

	case stateEditing:
		if m.tab == tabModule {
			if err := m.module.Set(m.editKey, value); err != nil {
				return m, m.showToast(Notification{Level: ui.LevelError, Message: err.Error()})
			}
			return m, nil
		}
		if err := m.platform.Set(m.editKey, value); err != nil {
			return m, m.showToast(Notification{Level: ui.LevelError, Message: err.Error()})
		}
		return m, m.savePlatformSetting(m.editKey)
	}

	return m, nil
}

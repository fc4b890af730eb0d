package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/adminctl/internal/client"
	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/mockserver"
	"github.com/colonyops/adminctl/pkg/tuitest"
)

func newTestModel(t *testing.T) (Model, *mockserver.Server) {
	t.Helper()

	backend := mockserver.New(mockserver.Options{Seed: true})
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	api, err := client.New(client.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	catalog := i18n.Default()
	notifications := NewNotificationBuffer(catalog)
	signal := NewStatusSignal()
	poller := status.NewPoller(api, status.Options{Interval: time.Hour, OnChange: signal.OnChange})
	t.Cleanup(poller.Stop)

	m := New(Options{
		Bundles:       bundle.NewController(api, notifications, api, catalog),
		Platform:      settings.NewPlatformController(api, notifications, api, catalog),
		Module:        settings.NewModuleController(api, api, notifications, api, catalog),
		Poller:        poller,
		Signal:        signal,
		Notifications: notifications,
		Catalog:       catalog,
		Icons:         styles.PlainIcons,
	})

	ctx := context.Background()
	require.NoError(t, m.bundles.Load(ctx))
	require.NoError(t, m.platform.Load(ctx))
	poller.Initialize(ctx)

	return update(t, m, tuitest.WindowSize(140, 40)), backend
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press delivers msg and feeds the message produced by the returned command
// back into the model.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func toastMessages(m Model) []string {
	var out []string
	for _, t := range m.toastController.Toasts() {
		out = append(out, t.message)
	}
	return out
}

func drain(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, drainNotificationsMsg{})
}

func lineContaining(s, sub string) string {
	for line := range strings.SplitSeq(tuitest.StripANSI(s), "\n") {
		if strings.Contains(line, sub) {
			return line
		}
	}
	return ""
}

func TestModel_startBundle(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyDown())
	m = press(t, m, tuitest.KeyPress('s'))

	b, ok := m.bundles.Find(3)
	require.True(t, ok)
	assert.Equal(t, bundle.StateActive, b.State)
	assert.Contains(t, lineContaining(m.renderMain(), "Scheduler"), "Active")
}

func TestModel_startBundle_failure(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Fail(mockserver.RouteBundleAction, http.StatusInternalServerError)

	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyDown())
	m = press(t, m, tuitest.KeyPress('s'))
	m = drain(t, m)

	b, _ := m.bundles.Find(3)
	assert.Equal(t, bundle.StateResolved, b.State)
	assert.Contains(t, toastMessages(m), "Error starting the module")
}

func TestModel_stopBundle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tuitest.KeyPress('t'))

	b, _ := m.bundles.Find(1)
	assert.Equal(t, bundle.StateResolved, b.State)
	assert.Contains(t, lineContaining(m.renderMain(), "Platform Core"), "Resolved")
}

func TestModel_uninstall(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.Msg
		removed bool
	}{
		{name: "enter confirms", keys: []tea.Msg{tuitest.KeyEnter()}, removed: true},
		{name: "y confirms", keys: []tea.Msg{tuitest.KeyText('y')}, removed: true},
		{name: "esc cancels", keys: []tea.Msg{tuitest.KeyEsc()}},
		{name: "n cancels", keys: []tea.Msg{tuitest.KeyText('n')}},
		{name: "cancel button", keys: []tea.Msg{tea.KeyPressMsg(tea.Key{Code: tea.KeyRight}), tuitest.KeyEnter()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			for range 3 {
				m = update(t, m, tuitest.KeyDown())
			}

			m = update(t, m, tuitest.KeyPress('u'))
			require.Equal(t, stateConfirming, m.state)
			overlay := tuitest.StripANSI(m.modal.Overlay(m.renderMain(), 140, 40))
			assert.Contains(t, overlay, "Are you sure you want to uninstall this module?")

			for _, k := range tt.keys {
				m = press(t, m, k)
			}

			assert.Equal(t, stateNormal, m.state)
			_, ok := m.bundles.Find(4)
			assert.Equal(t, tt.removed, !ok)
		})
	}
}

func TestModel_uninstall_failure_keeps_bundle(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Fail(mockserver.RouteBundleAction, http.StatusConflict)

	m = update(t, m, tuitest.KeyPress('u'))
	m = press(t, m, tuitest.KeyEnter())
	m = drain(t, m)

	b, ok := m.bundles.Find(1)
	require.True(t, ok)
	assert.Equal(t, bundle.StateActive, b.State)
	assert.Contains(t, toastMessages(m), "Error uninstalling the module")
}

func TestModel_filter(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyPress('/'))
	require.Equal(t, stateFiltering, m.state)
	for _, r := range "*mail*" {
		m = update(t, m, tuitest.KeyText(r))
	}
	m = press(t, m, tuitest.KeyEnter())

	assert.Equal(t, "*mail*", m.filter)
	require.Len(t, m.visibleBundles(), 1)
	assert.Equal(t, "Mail Service", m.visibleBundles()[0].Name)
	assert.Contains(t, tuitest.StripANSI(m.renderMain()), "filter: *mail*")
}

func TestModel_filter_invalid_pattern(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyPress('/'))
	m.input.SetValue("org.[a")
	m = press(t, m, tuitest.KeyEnter())

	assert.Empty(t, m.filter)
	assert.Len(t, m.visibleBundles(), 4)
	assert.Contains(t, toastMessages(m), "Invalid filter pattern")
}

func TestModel_upload(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(t.TempDir(), "Reports.jar")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))

	m = update(t, m, tuitest.KeyText('A'))
	require.Equal(t, stateUploading, m.state)
	assert.True(t, m.uploadStart)

	m.input.SetValue(path)
	m = press(t, m, tuitest.KeyEnter())

	bundles := m.visibleBundles()
	require.Len(t, bundles, 5)
	assert.Equal(t, "Reports", bundles[4].Name)
	assert.Equal(t, bundle.StateActive, bundles[4].State)
	assert.Contains(t, toastMessages(m), "Module uploaded")
}

func TestModel_editPlatformSetting(t *testing.T) {
	m, _ := newTestModel(t)
	ctx := context.Background()

	m = update(t, m, tuitest.KeyTab())
	require.Equal(t, tabPlatform, m.tab)
	for range 3 {
		m = update(t, m, tuitest.KeyDown())
	}

	m = update(t, m, tuitest.KeyEnter())
	require.Equal(t, stateEditing, m.state)
	assert.Equal(t, "upload.size", m.editKey)
	assert.Equal(t, "50", m.input.Value())

	m.input.SetValue("75")
	m = press(t, m, tuitest.KeyEnter())

	opt := m.platform.Options()[3]
	assert.Equal(t, "75", opt.Value)
	assert.Equal(t, settings.StateIdle, opt.State)

	require.NoError(t, m.platform.Load(ctx))
	assert.Equal(t, "75", m.platform.Options()[3].Value)
	assert.Contains(t, lineContaining(m.renderMain(), "Max upload size"), "75")
}

func TestModel_editPlatformSetting_invalid(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyTab())
	for range 3 {
		m = update(t, m, tuitest.KeyDown())
	}
	m = update(t, m, tuitest.KeyEnter())
	m.input.SetValue("lots")
	m = press(t, m, tuitest.KeyEnter())

	assert.Equal(t, "50", m.platform.Options()[3].Value)
	require.Len(t, toastMessages(m), 1)
	assert.Contains(t, toastMessages(m)[0], "upload.size")
}

func TestModel_editPlatformSetting_saveFailure(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Fail(mockserver.RoutePlatformSave, http.StatusInternalServerError)

	m = update(t, m, tuitest.KeyTab())
	m = update(t, m, tuitest.KeyEnter())
	m.input.SetValue("de")
	m = press(t, m, tuitest.KeyEnter())

	opt := m.platform.Options()[0]
	assert.Equal(t, settings.StateError, opt.State)
	assert.Contains(t, lineContaining(m.renderMain(), "Language"), settings.Icon(settings.StateError))
	assert.Empty(t, toastMessages(m))
}

func TestModel_saveAllPlatform(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyTab())
	m = press(t, m, tuitest.KeyCtrl('s'))

	assert.Contains(t, toastMessages(m), "Platform settings saved")
}

func TestModel_openModuleSettings(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyDown())
	m = press(t, m, tuitest.KeyEnter())

	require.Equal(t, tabModule, m.tab)
	out := tuitest.StripANSI(m.renderMain())
	assert.Contains(t, out, "Mail Service")
	assert.Contains(t, out, "mail.cfg, mail-queue.cfg")
	assert.Contains(t, out, "smtp.example.com")
	assert.Contains(t, out, "Event queue")

	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyEnter())
	require.Equal(t, "mail.port", m.editKey)
	m.input.SetValue("2525")
	m = press(t, m, tuitest.KeyEnter())
	assert.Equal(t, "2525", m.module.Options()[1].Value)

	m = press(t, m, tuitest.KeyCtrl('s'))
	assert.Contains(t, toastMessages(m), "Settings saved")

	require.NoError(t, m.module.Load(context.Background(), 2))
	assert.Equal(t, "2525", m.module.Options()[1].Value)
}

func TestModel_moduleWithoutSettings(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tuitest.KeyEnter())

	out := tuitest.StripANSI(m.renderMain())
	assert.Contains(t, out, "Platform Core")
	assert.Contains(t, out, "This module has no settings")
}

func TestModel_moduleTab_empty(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))

	require.Equal(t, tabModule, m.tab)
	assert.Contains(t, tuitest.StripANSI(m.renderMain()), "Select a module")
}

func TestModel_statusPanel_dismiss(t *testing.T) {
	m, _ := newTestModel(t)
	first := m.poller.Displayed()[0]

	m = update(t, m, tuitest.KeyCtrl('w'))
	require.Equal(t, focusStatus, m.focus)
	m = update(t, m, tuitest.KeyPress('x'))

	assert.Len(t, m.poller.Displayed(), 2)
	assert.True(t, m.poller.IsIgnored(first.ID))
	assert.Contains(t, toastMessages(m), "Status message dismissed")

	m.poller.Refresh(context.Background())
	assert.Len(t, m.poller.Displayed(), 2)
	assert.NotContains(t, tuitest.StripANSI(m.renderMain()), first.Text)
}

func TestModel_statusPanel_preview(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tuitest.KeyCtrl('w'))
	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyPress('p'))

	require.Equal(t, statePreviewing, m.state)
	overlay := tuitest.StripANSI(m.preview.Overlay(m.renderMain(), 140, 40))
	assert.Contains(t, overlay, "ERROR")
	assert.Contains(t, overlay, "out of date")

	m = update(t, m, tuitest.KeyEsc())
	assert.Equal(t, stateNormal, m.state)
	assert.Len(t, m.poller.Displayed(), 3)
}

func TestModel_statusChanged_clampsCursor(t *testing.T) {
	m, backend := newTestModel(t)

	m = update(t, m, tuitest.KeyCtrl('w'))
	m = update(t, m, tuitest.KeyDown())
	m = update(t, m, tuitest.KeyDown())

	for _, msg := range m.poller.Displayed() {
		backend.RemoveStatus(msg.ID)
	}
	require.True(t, m.poller.Refresh(context.Background()))
	m = update(t, m, statusChangedMsg{})

	assert.Equal(t, 0, m.statusCursor)
	assert.Contains(t, tuitest.StripANSI(m.renderMain()), "No status messages")
}

func TestModel_tabs(t *testing.T) {
	m, _ := newTestModel(t)

	for _, want := range []tab{tabPlatform, tabModule, tabBundles} {
		m = update(t, m, tuitest.KeyTab())
		assert.Equal(t, want, m.tab)
	}
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tuitest.KeyPress('q'))
	m = next.(Model)

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.True(t, m.quitting)
}

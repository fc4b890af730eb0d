// Package tui implements the interactive admin console.
package tui

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/core/ui"
)

type tab int

const (
	tabBundles tab = iota
	tabPlatform
	tabModule
	tabCount
)

type focus int

const (
	focusMain focus = iota
	focusStatus
)

type uiState int

const (
	stateNormal uiState = iota
	stateConfirming
	stateEditing
	stateFiltering
	stateUploading
	statePreviewing
)

// Messages produced by commands.
type (
	bundlesLoadedMsg  struct{ err error }
	bundleActionMsg   struct{ err error }
	platformLoadedMsg struct{ err error }
	uploadDoneMsg     struct {
		bundle bundle.Bundle
		err    error
	}
	settingSavedMsg struct {
		key string
		err error
	}
	moduleLoadedMsg struct {
		id  int64
		err error
	}
	savedAllMsg struct {
		text string
		err  error
	}
)

// Options wires the console to its controllers. Bundles, Platform, Module
// and Poller must share Notifications as their alert presenter, and Poller
// must report changes to Signal.
type Options struct {
	Context       context.Context
	Bundles       *bundle.Controller
	Platform      *settings.PlatformController
	Module        *settings.ModuleController
	Poller        *status.Poller
	Signal        *StatusSignal
	Notifications *NotificationBuffer
	Catalog       *i18n.Catalog
	Icons         styles.Icons
}

// Model is the main Bubble Tea model.
type Model struct {
	ctx           context.Context
	bundles       *bundle.Controller
	platform      *settings.PlatformController
	module        *settings.ModuleController
	poller        *status.Poller
	signal        *StatusSignal
	notifications *NotificationBuffer
	catalog       *i18n.Catalog
	icons         styles.Icons
	keys          keyMap

	width  int
	height int

	tab   tab
	focus focus
	state uiState

	bundleCursor     int
	platformCursor   int
	moduleCursor     int
	statusCursor     int
	filter           string
	uploadStart      bool
	editKey          string
	pendingUninstall int64

	input   textinput.Model
	modal   Modal
	preview PreviewModal
	spinner spinner.Model

	toastController *ToastController
	toastView       *ToastView

	quitting bool
}

// New creates a console model.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Signal == nil {
		opts.Signal = NewStatusSignal()
	}
	if opts.Notifications == nil {
		opts.Notifications = NewNotificationBuffer(opts.Catalog)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	ti := textinput.New()
	ti.CharLimit = 512
	ti.SetWidth(50)

	toasts := NewToastController()

	return Model{
		ctx:             opts.Context,
		bundles:         opts.Bundles,
		platform:        opts.Platform,
		module:          opts.Module,
		poller:          opts.Poller,
		signal:          opts.Signal,
		notifications:   opts.Notifications,
		catalog:         opts.Catalog,
		icons:           opts.Icons,
		keys:            newKeyMap(),
		input:           ti,
		spinner:         s,
		toastController: toasts,
		toastView:       NewToastView(toasts, opts.Icons),
	}
}

// Init loads the initial data and starts the background signals.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadBundles(),
		m.loadPlatform(),
		m.startPoller(),
		m.notifications.WaitForSignal(),
		m.signal.Wait(),
		m.spinner.Tick,
	)
}

func (m Model) loadBundles() tea.Cmd {
	return func() tea.Msg {
		return bundlesLoadedMsg{err: m.bundles.Load(m.ctx)}
	}
}

func (m Model) loadPlatform() tea.Cmd {
	return func() tea.Msg {
		return platformLoadedMsg{err: m.platform.Load(m.ctx)}
	}
}

func (m Model) loadModule(id int64) tea.Cmd {
	return func() tea.Msg {
		return moduleLoadedMsg{id: id, err: m.module.Load(m.ctx, id)}
	}
}

func (m Model) startPoller() tea.Cmd {
	return func() tea.Msg {
		m.poller.Initialize(m.ctx)
		return nil
	}
}

func (m Model) bundleAction(fn func(context.Context, int64) error, id int64) tea.Cmd {
	return func() tea.Msg {
		return bundleActionMsg{err: fn(m.ctx, id)}
	}
}

func (m Model) uninstall(id int64) tea.Cmd {
	return func() tea.Msg {
		return bundleActionMsg{err: m.bundles.Uninstall(m.ctx, id, ui.Answer(true))}
	}
}

func (m Model) upload(path string, start bool) tea.Cmd {
	return func() tea.Msg {
		b, err := m.bundles.Upload(m.ctx, path, start)
		return uploadDoneMsg{bundle: b, err: err}
	}
}

func (m Model) savePlatformSetting(key string) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{key: key, err: m.platform.Save(m.ctx, key)}
	}
}

func (m Model) saveAll() tea.Cmd {
	return func() tea.Msg {
		var (
			text string
			err  error
		)
		if m.tab == tabModule {
			text, err = m.module.SaveAll(m.ctx)
		} else {
			text, err = m.platform.SaveAll(m.ctx)
		}
		return savedAllMsg{text: text, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(min(msg.Width-10, 60), 10))
		return m, nil

	case bundlesLoadedMsg:
		return m.handleLoaded(msg.err)
	case platformLoadedMsg:
		return m.handleLoaded(msg.err)
	case moduleLoadedMsg:
		return m.handleModuleLoaded(msg)
	case bundleActionMsg:
		m.bundleCursor = clamp(m.bundleCursor, len(m.visibleBundles()))
		return m, nil
	case uploadDoneMsg:
		return m.handleUploadDone(msg)
	case settingSavedMsg:
		return m, nil
	case savedAllMsg:
		return m.handleSavedAll(msg)

	case drainNotificationsMsg:
		return m.handleDrainNotifications()
	case statusChangedMsg:
		m.statusCursor = clamp(m.statusCursor, len(m.poller.Displayed()))
		return m, m.signal.Wait()
	case toastTickMsg:
		return m.handleToastTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		return m, m.showToast(Notification{Level: ui.LevelError, Message: err.Error()})
	}
	return m, nil
}

func (m Model) handleModuleLoaded(msg moduleLoadedMsg) (tea.Model, tea.Cmd) {
	m.moduleCursor = 0
	if msg.err != nil {
		return m, m.showToast(Notification{Level: ui.LevelError, Message: msg.err.Error()})
	}
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil
	}
	return m, m.showToast(Notification{Level: ui.LevelInfo, Message: m.catalog.Message(keyUploaded)})
}

func (m Model) handleSavedAll(msg savedAllMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil
	}
	return m, m.showToast(Notification{Level: ui.LevelInfo, Message: msg.text})
}

func (m Model) handleDrainNotifications() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.notifications.WaitForSignal()}
	for _, n := range m.notifications.Drain() {
		if cmd := m.showToast(n); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	if m.toastController.Tick(toastTickInterval) {
		return m, scheduleToastTick()
	}
	return m, nil
}

// showToast pushes n and starts the expiry ticker if it is not running.
func (m Model) showToast(n Notification) tea.Cmd {
	if m.toastController.Push(n.Level, n.Message) {
		return scheduleToastTick()
	}
	return nil
}

func (m Model) visibleBundles() []bundle.Bundle {
	return m.bundles.Bundles(m.filter)
}

func (m Model) selectedBundle() (bundle.Bundle, bool) {
	bundles := m.visibleBundles()
	if m.bundleCursor < 0 || m.bundleCursor >= len(bundles) {
		return bundle.Bundle{}, false
	}
	return bundles[m.bundleCursor], true
}

func (m Model) selectedStatus() (status.Message, bool) {
	msgs := m.poller.Displayed()
	if m.statusCursor < 0 || m.statusCursor >= len(msgs) {
		return status.Message{}, false
	}
	return msgs[m.statusCursor], true
}

// settingsOptions returns the options and cursor of the active settings tab.
func (m Model) settingsOptions() ([]settings.Option, int) {
	if m.tab == tabModule {
		return m.module.Options(), m.moduleCursor
	}
	return m.platform.Options(), m.platformCursor
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

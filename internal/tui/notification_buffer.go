package tui

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/ui"
)

// Notification is a translated alert waiting to be shown as a toast.
type Notification struct {
	Level     ui.Level
	Message   string
	CreatedAt time.Time
}

type drainNotificationsMsg struct{}

// NotificationBuffer collects alerts raised by controllers running inside
// commands and emits coalesced drain signals to the update loop. It
// implements ui.AlertPresenter.
type NotificationBuffer struct {
	catalog *i18n.Catalog

	mu            sync.Mutex
	notifications []Notification
	signal        chan struct{}
}

// NewNotificationBuffer constructs a buffer that translates alert keys
// with catalog.
func NewNotificationBuffer(catalog *i18n.Catalog) *NotificationBuffer {
	return &NotificationBuffer{
		catalog:       catalog,
		notifications: make([]Notification, 0),
		signal:        make(chan struct{}, 1),
	}
}

// Alert implements ui.AlertPresenter.
func (b *NotificationBuffer) Alert(key string, level ui.Level) {
	b.Push(Notification{Level: level, Message: b.catalog.Message(key)})
}

// Push appends a notification and emits a non-blocking drain signal.
func (b *NotificationBuffer) Push(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered notifications and clears the buffer.
func (b *NotificationBuffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}

	out := make([]Notification, len(b.notifications))
	copy(out, b.notifications)
	b.notifications = b.notifications[:0]
	return out
}

// WaitForSignal blocks until there are notifications ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}

var _ ui.AlertPresenter = (*NotificationBuffer)(nil)

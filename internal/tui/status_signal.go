package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/adminctl/internal/core/status"
)

type statusChangedMsg struct{}

// StatusSignal wakes the update loop when the poller replaces the displayed
// status messages. Signals coalesce; the view always reads the poller's
// current set.
type StatusSignal struct {
	ch chan struct{}
}

// NewStatusSignal creates a signal.
func NewStatusSignal() *StatusSignal {
	return &StatusSignal{ch: make(chan struct{}, 1)}
}

// OnChange is passed to the poller as its change listener.
func (s *StatusSignal) OnChange([]status.Message) {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the next change.
func (s *StatusSignal) Wait() tea.Cmd {
	return func() tea.Msg {
		<-s.ch
		return statusChangedMsg{}
	}
}

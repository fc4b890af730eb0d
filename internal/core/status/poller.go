package status

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the delay between two refreshes.
const DefaultInterval = 30 * time.Second

// Source fetches the full, ordered set of current status messages.
type Source interface {
	StatusMessages(ctx context.Context) ([]Message, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Message, error)

// StatusMessages implements Source.
func (f SourceFunc) StatusMessages(ctx context.Context) ([]Message, error) {
	return f(ctx)
}

// Options configures a Poller. Zero values select the defaults.
type Options struct {
	Interval  time.Duration
	Scheduler Scheduler
	Logger    zerolog.Logger
	// OnChange is called with the new displayed set after a refresh that
	// replaced it. It runs on the refreshing goroutine without the poller
	// lock held.
	OnChange func([]Message)
}

// Poller keeps a displayed list of status messages approximately in sync
// with the server. It refreshes at a fixed interval, only replaces the
// displayed list when the ids changed, and never shows a message again once
// it was dismissed.
//
// All state transitions are serialized by mu. Fetches run without the lock
// so a Dismiss issued while a fetch is outstanding always completes before
// that fetch's result is filtered.
type Poller struct {
	source    Source
	interval  time.Duration
	scheduler Scheduler
	log       zerolog.Logger
	onChange  func([]Message)

	mu        sync.Mutex
	ctx       context.Context
	displayed []Message
	ignored   map[string]struct{}
	timer     Timer
	stopped   bool
}

// NewPoller creates a poller reading from source.
func NewPoller(source Source, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}

	return &Poller{
		source:    source,
		interval:  opts.Interval,
		scheduler: opts.Scheduler,
		log:       opts.Logger,
		onChange:  opts.OnChange,
		ignored:   make(map[string]struct{}),
	}
}

// Initialize performs an immediate fetch, populates the displayed set and
// schedules the first periodic refresh. ctx is retained for the scheduled
// refreshes; cancelling it makes later fetches fail fast but does not stop
// the schedule, use Stop for that. A poller that was stopped stays stopped:
// Initialize still fetches once but arms no timer.
func (p *Poller) Initialize(ctx context.Context) {
	p.mu.Lock()
	p.ctx = ctx
	p.mu.Unlock()

	msgs, err := p.source.StatusMessages(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("initial status fetch failed")
	} else {
		p.mu.Lock()
		p.displayed = Filter(msgs, p.ignored)
		snapshot := slices.Clone(p.displayed)
		p.mu.Unlock()
		p.notify(snapshot)
	}

	p.schedule()
}

// Refresh fetches the current messages, drops dismissed ones and replaces
// the displayed set if the ids differ. The next refresh is always scheduled
// afterwards, whatever the fetch outcome. It reports whether the displayed
// set was replaced.
func (p *Poller) Refresh(ctx context.Context) bool {
	defer p.schedule()

	msgs, err := p.source.StatusMessages(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("status refresh failed")
		return false
	}

	p.mu.Lock()
	candidate := Filter(msgs, p.ignored)
	if Equal(candidate, p.displayed) {
		p.mu.Unlock()
		return false
	}
	p.displayed = candidate
	snapshot := slices.Clone(candidate)
	p.mu.Unlock()

	p.log.Debug().Int("count", len(snapshot)).Msg("status messages changed")
	p.notify(snapshot)
	return true
}

// Dismiss hides msg immediately and permanently for the lifetime of the
// poller. No request is made to the server.
func (p *Poller) Dismiss(msg Message) {
	p.mu.Lock()
	p.ignored[msg.ID] = struct{}{}
	p.displayed = slices.DeleteFunc(p.displayed, func(m Message) bool {
		return m.ID == msg.ID
	})
	p.mu.Unlock()
}

// Stop cancels the pending refresh. A refresh that is in flight completes
// but does not schedule another one.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Displayed returns a copy of the messages currently shown.
func (p *Poller) Displayed() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.displayed)
}

// IsIgnored reports whether id was dismissed.
func (p *Poller) IsIgnored(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ignored[id]
	return ok
}

// Ignored returns the dismissed ids in sorted order.
func (p *Poller) Ignored() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.ignored))
	for id := range p.ignored {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Interval returns the delay between refreshes.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// schedule arms the next refresh, replacing any pending one.
func (p *Poller) schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}

	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	p.timer = p.scheduler.AfterFunc(p.interval, func() {
		p.Refresh(ctx)
	})
}

func (p *Poller) notify(msgs []Message) {
	if p.onChange != nil {
		p.onChange(msgs)
	}
}

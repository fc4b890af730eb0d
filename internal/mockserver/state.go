package mockserver

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
	"github.com/colonyops/adminctl/pkg/kv"
)

// state is the in-memory backend data.
type state struct {
	bundles  *kv.Store[int64, bundle.Bundle]
	modules  *kv.Store[int64, []settings.ModuleSettings]
	failures *kv.Store[string, int]

	mu       sync.Mutex
	nextID   int64
	platform []settings.Option
	messages []status.Message
}

func newState() *state {
	return &state{
		bundles:  kv.New[int64, bundle.Bundle](),
		modules:  kv.New[int64, []settings.ModuleSettings](),
		failures: kv.New[string, int](),
		nextID:   1,
	}
}

func (s *state) addBundle(b bundle.Bundle) bundle.Bundle {
	s.mu.Lock()
	if b.ID == 0 {
		b.ID = s.nextID
	}
	if b.ID >= s.nextID {
		s.nextID = b.ID + 1
	}
	s.mu.Unlock()

	s.bundles.Set(b.ID, b)
	return b
}

func (s *state) platformOptions() []settings.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.platform)
}

// setPlatform stores value under key, appending unknown keys.
func (s *state) setPlatform(opt settings.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.platform, func(o settings.Option) bool { return o.Key == opt.Key }); i >= 0 {
		s.platform[i].Value = opt.Value
		return
	}
	s.platform = append(s.platform, opt)
}

func (s *state) statusMessages() []status.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *state) addStatus(level status.Level, module, text string) status.Message {
	msg := status.Message{
		ID:         uuid.NewString(),
		Level:      level,
		Date:       status.Timestamp{Time: time.Now().UTC()},
		Text:       text,
		ModuleName: module,
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

func (s *state) removeStatus(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.messages)
	s.messages = slices.DeleteFunc(s.messages, func(m status.Message) bool { return m.ID == id })
	return len(s.messages) != n
}

// seed fills the state with a small demo platform.
func (s *state) seed() {
	s.addBundle(bundle.Bundle{ID: 1, Name: "Platform Core", SymbolicName: "org.platform.core", Version: "4.2.0", State: bundle.StateActive, Location: "file:bundles/core.jar"})
	s.addBundle(bundle.Bundle{ID: 2, Name: "Mail Service", SymbolicName: "org.platform.mail", Version: "2.3.1", State: bundle.StateActive, Location: "file:bundles/mail.jar"})
	s.addBundle(bundle.Bundle{ID: 3, Name: "Scheduler", SymbolicName: "org.platform.scheduler", Version: "1.8.0", State: bundle.StateResolved, Location: "file:bundles/scheduler.jar"})
	s.addBundle(bundle.Bundle{ID: 4, Name: "Search", SymbolicName: "com.acme.search", Version: "0.9.3", State: bundle.StateInstalled, Location: "file:bundles/search.jar"})

	s.modules.Set(2, []settings.ModuleSettings{
		{Bundle: 2, Filename: "mail.cfg", Settings: []settings.Option{
			{Key: "mail.host", Value: "smtp.example.com", Type: settings.TypeString},
			{Key: "mail.port", Value: "587", Type: settings.TypeNumber},
			{Key: "mail.tls", Value: "true", Type: settings.TypeBoolean},
		}},
		{Bundle: 2, Filename: "mail-queue.cfg", Settings: []settings.Option{
			{Key: "jms.queue.for.events", Value: "mail.events", Type: settings.TypeString},
		}},
	})
	s.modules.Set(3, []settings.ModuleSettings{
		{Bundle: 3, Filename: "scheduler.cfg", Settings: []settings.Option{
			{Key: "jms.queue.for.scheduler", Value: "scheduler.jobs", Type: settings.TypeString},
			{Key: "scheduler.threads", Value: "4", Type: settings.TypeNumber},
		}},
	})

	s.platform = []settings.Option{
		{Key: "language", Value: "en", Type: settings.TypeString},
		{Key: "login.mode", Value: "form", Type: settings.TypeString},
		{Key: "server.url", Value: "http://localhost:8080", Type: settings.TypeString},
		{Key: "upload.size", Value: "50", Type: settings.TypeNumber},
		{Key: "status.msg.timeout", Value: "30", Type: settings.TypeNumber},
		{Key: "jms.cache.producers", Value: "true", Type: settings.TypeBoolean},
	}

	s.addStatus(status.LevelInfo, "org.platform.core", "Platform started")
	s.addStatus(status.LevelWarn, "org.platform.mail", "SMTP server responded slowly")
	s.addStatus(status.LevelError, "com.acme.search", "Search index is **out of date**; rebuild required")
}

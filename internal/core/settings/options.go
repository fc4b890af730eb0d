package settings

import (
	"fmt"
	"slices"
	"sync"
)

// optionList is a mutex-guarded list of options shared by the controllers.
type optionList struct {
	mu   sync.Mutex
	opts []Option
}

func (l *optionList) replace(opts []Option) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opts = opts
}

func (l *optionList) snapshot() []Option {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.opts)
}

func (l *optionList) get(key string) (Option, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.index(key)
	if i < 0 {
		return Option{}, false
	}
	return l.opts[i], true
}

// set updates every option with key. Module settings files may repeat a
// key, and the submitted form has one field per key, so all copies must
// agree.
func (l *optionList) set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index(key) < 0 {
		return fmt.Errorf("%s: %w", key, ErrUnknownKey)
	}
	for _, o := range l.opts {
		if o.Key != key {
			continue
		}
		if err := ValidateValue(o.Type, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	for i := range l.opts {
		if l.opts[i].Key == key {
			l.opts[i].Value = value
		}
	}
	return nil
}

func (l *optionList) setState(key string, s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.opts {
		if l.opts[i].Key == key {
			l.opts[i].State = s
		}
	}
}

// fields returns the options as form fields.
func (l *optionList) fields() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]string, len(l.opts))
	for _, o := range l.opts {
		out[o.Key] = o.Value
	}
	return out
}

func (l *optionList) index(key string) int {
	return slices.IndexFunc(l.opts, func(o Option) bool { return o.Key == key })
}

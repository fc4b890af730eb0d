package tui

import (
	"slices"
	"time"

	"github.com/colonyops/adminctl/internal/core/ui"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

// toast is one visible alert. repeats counts identical alerts folded into it.
type toast struct {
	level     ui.Level
	message   string
	repeats   int
	remaining time.Duration
}

// ToastController holds the visible alerts, oldest first, and counts down
// their lifetime. It is owned by the Update loop and is not safe for
// concurrent use.
type ToastController struct {
	toasts  []toast
	ttl     time.Duration
	limit   int
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{ttl: defaultToastTTL, limit: defaultMaxToasts}
}

// Push shows message at level. An alert equal to the newest one restarts
// its lifetime instead of stacking, so a failing action retried from the
// keyboard does not flood the screen. Push reports whether the caller must
// start the expiry ticker.
func (c *ToastController) Push(level ui.Level, message string) bool {
	if n := len(c.toasts); n > 0 && c.toasts[n-1].level == level && c.toasts[n-1].message == message {
		c.toasts[n-1].repeats++
		c.toasts[n-1].remaining = c.ttl
	} else {
		c.toasts = append(c.toasts, toast{level: level, message: message, remaining: c.ttl})
		if len(c.toasts) > c.limit {
			c.toasts = slices.Delete(c.toasts, 0, len(c.toasts)-c.limit)
		}
	}

	if c.ticking {
		return false
	}
	c.ticking = true
	return true
}

// Tick ages every toast by d and drops the expired ones. It reports whether
// the ticker should keep running.
func (c *ToastController) Tick(d time.Duration) bool {
	c.toasts = slices.DeleteFunc(c.toasts, func(t toast) bool {
		return t.remaining <= d
	})
	for i := range c.toasts {
		c.toasts[i].remaining -= d
	}

	c.ticking = len(c.toasts) > 0
	return c.ticking
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns a copy of the visible toasts, oldest first.
func (c *ToastController) Toasts() []toast {
	return slices.Clone(c.toasts)
}

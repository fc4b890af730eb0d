package tui

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/adminctl/internal/core/styles"
	"github.com/colonyops/adminctl/internal/core/ui"
	"github.com/colonyops/adminctl/pkg/tuitest"
)

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(ui.LevelInfo, strconv.Itoa(i))
	}

	toasts := c.Toasts()
	require.Len(t, toasts, defaultMaxToasts)
	assert.Equal(t, "2", toasts[0].message)
	assert.Equal(t, "6", toasts[len(toasts)-1].message)
}

func TestToastController_Push_starts_ticker_once(t *testing.T) {
	c := NewToastController()

	assert.True(t, c.Push(ui.LevelError, "a"))
	assert.False(t, c.Push(ui.LevelError, "b"))

	c.Dismiss()
	c.Dismiss()
	assert.False(t, c.Tick(toastTickInterval), "ticker stops once empty")
	assert.True(t, c.Push(ui.LevelInfo, "c"))
}

func TestToastController_Push_folds_repeats(t *testing.T) {
	c := NewToastController()
	c.Push(ui.LevelError, "Error starting the module")
	c.Tick(time.Second)
	c.Push(ui.LevelError, "Error starting the module")
	c.Push(ui.LevelInfo, "Error starting the module")

	toasts := c.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, 1, toasts[0].repeats)
	assert.Equal(t, defaultToastTTL, toasts[0].remaining)
	assert.Equal(t, ui.LevelInfo, toasts[1].level)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController()
	c.Push(ui.LevelInfo, "expires")
	c.Push(ui.LevelInfo, "survives")

	c.toasts[0].remaining = 50 * time.Millisecond
	assert.True(t, c.Tick(100*time.Millisecond))

	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "survives", toasts[0].message)
	assert.Equal(t, defaultToastTTL-100*time.Millisecond, toasts[0].remaining)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Push(ui.LevelInfo, "a")
	c.Push(ui.LevelInfo, "b")

	c.Dismiss()
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "a", c.Toasts()[0].message)

	c.Dismiss()
	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastView_View(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c, styles.PlainIcons)
	assert.Empty(t, v.View())

	c.Push(ui.LevelError, "boom")
	c.Push(ui.LevelError, "boom")
	c.Push(ui.LevelInfo, "done")

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "x boom (×2)")
	assert.Contains(t, out, "i done")
	assert.Less(t, strings.Index(out, "boom"), strings.Index(out, "done"))
}

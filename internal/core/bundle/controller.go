package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/logging"
	"github.com/colonyops/adminctl/internal/core/ui"
)

// Alert keys raised by the controller.
const (
	AlertStartFailed     = "bundles.error.start"
	AlertStopFailed      = "bundles.error.stop"
	AlertRestartFailed   = "bundles.error.restart"
	AlertUninstallFailed = "bundles.error.uninstall"
	AlertUploadFailed    = "bundles.error.upload"

	keyUninstallConfirm = "bundles.uninstall.confirm"
	keyConfirmTitle     = "confirm"

	// UploadAction is the API path bundle files are posted to.
	UploadAction = "/bundles/upload"
)

// ErrNotFound is returned for actions on a bundle that is not loaded.
var ErrNotFound = errors.New("bundle not found")

// API is the subset of the admin REST API the controller needs.
type API interface {
	Bundles(ctx context.Context) ([]Bundle, error)
	Bundle(ctx context.Context, id int64) (Bundle, error)
	StartBundle(ctx context.Context, id int64) (Bundle, error)
	StopBundle(ctx context.Context, id int64) (Bundle, error)
	RestartBundle(ctx context.Context, id int64) (Bundle, error)
	UninstallBundle(ctx context.Context, id int64) error
}

// Controller holds the list of bundles shown to the user and applies
// lifecycle actions to it. Every action is a single request with no retry;
// failures revert the displayed state and raise an alert.
type Controller struct {
	api     API
	alerts  ui.AlertPresenter
	forms   ui.FormSubmitter
	catalog *i18n.Catalog
	log     zerolog.Logger

	mu      sync.Mutex
	bundles []Bundle
}

// NewController creates a bundle controller.
func NewController(api API, alerts ui.AlertPresenter, forms ui.FormSubmitter, catalog *i18n.Catalog) *Controller {
	return &Controller{
		api:     api,
		alerts:  alerts,
		forms:   forms,
		catalog: catalog,
		log:     logging.Component("bundles"),
	}
}

// Load replaces the list with the bundles reported by the server.
func (c *Controller) Load(ctx context.Context) error {
	bundles, err := c.api.Bundles(ctx)
	if err != nil {
		return fmt.Errorf("list bundles: %w", err)
	}

	c.mu.Lock()
	c.bundles = bundles
	c.mu.Unlock()
	return nil
}

// Get fetches a single bundle and updates it in the list if present.
func (c *Controller) Get(ctx context.Context, id int64) (Bundle, error) {
	b, err := c.api.Bundle(ctx, id)
	if err != nil {
		return Bundle{}, fmt.Errorf("get bundle %d: %w", id, err)
	}
	c.replace(b)
	return b, nil
}

// Bundles returns a snapshot of the list, filtered by pattern (see Match).
func (c *Controller) Bundles(pattern string) []Bundle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Bundle, 0, len(c.bundles))
	for _, b := range c.bundles {
		if Match(pattern, b) {
			out = append(out, b)
		}
	}
	return out
}

// Find returns the bundle with id from the list.
func (c *Controller) Find(id int64) (Bundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return Bundle{}, false
	}
	return c.bundles[i], true
}

// Start starts a bundle. The bundle shows as loading until the server
// answers; on failure it falls back to resolved.
func (c *Controller) Start(ctx context.Context, id int64) error {
	return c.transition(ctx, id, "start", c.api.StartBundle, AlertStartFailed)
}

// Restart restarts a bundle, with the same display rules as Start.
func (c *Controller) Restart(ctx context.Context, id int64) error {
	return c.transition(ctx, id, "restart", c.api.RestartBundle, AlertRestartFailed)
}

// Stop stops a bundle. The displayed state is left untouched until the
// server answers.
func (c *Controller) Stop(ctx context.Context, id int64) error {
	if _, ok := c.Find(id); !ok {
		return fmt.Errorf("stop bundle %d: %w", id, ErrNotFound)
	}

	ctx = logging.WithBundleID(ctx, strconv.FormatInt(id, 10))
	b, err := c.api.StopBundle(ctx, id)
	if err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Msg("stop failed")
		c.alerts.Alert(AlertStopFailed, ui.LevelError)
		return fmt.Errorf("stop bundle %d: %w", id, err)
	}

	c.replace(b)
	return nil
}

// UninstallPrompt returns the translated question and title used to
// confirm an uninstall.
func (c *Controller) UninstallPrompt() (message, title string) {
	return c.catalog.Message(keyUninstallConfirm), c.catalog.Message(keyConfirmTitle)
}

// Uninstall asks for confirmation and removes the bundle. A declined
// prompt leaves everything untouched. On failure the previous state is
// restored.
func (c *Controller) Uninstall(ctx context.Context, id int64, prompt ui.ConfirmationPrompt) error {
	if _, ok := c.Find(id); !ok {
		return fmt.Errorf("uninstall bundle %d: %w", id, ErrNotFound)
	}

	message, title := c.UninstallPrompt()
	ok, err := prompt.Confirm(ctx, message, title)
	if err != nil {
		return fmt.Errorf("confirm uninstall: %w", err)
	}
	if !ok {
		return nil
	}

	ctx = logging.WithBundleID(ctx, strconv.FormatInt(id, 10))
	old, ok := c.setState(id, StateLoading)
	if !ok {
		return fmt.Errorf("uninstall bundle %d: %w", id, ErrNotFound)
	}

	if err := c.api.UninstallBundle(ctx, id); err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Msg("uninstall failed")
		c.alerts.Alert(AlertUninstallFailed, ui.LevelError)
		c.setState(id, old)
		return fmt.Errorf("uninstall bundle %d: %w", id, err)
	}

	c.mu.Lock()
	c.bundles = slices.DeleteFunc(c.bundles, func(b Bundle) bool { return b.ID == id })
	c.mu.Unlock()

	c.log.Info().Ctx(ctx).Msg("bundle uninstalled")
	return nil
}

// Upload posts a bundle file and appends the installed bundle to the list.
func (c *Controller) Upload(ctx context.Context, path string, start bool) (Bundle, error) {
	body, err := c.forms.Submit(ctx, ui.Form{
		Action: UploadAction,
		Fields: map[string]string{"startBundle": strconv.FormatBool(start)},
		Files:  []ui.FormFile{{Field: "bundleFile", Path: path}},
	})
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("upload failed")
		c.alerts.Alert(AlertUploadFailed, ui.LevelError)
		return Bundle{}, fmt.Errorf("upload bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(body, &b); err != nil {
		c.alerts.Alert(AlertUploadFailed, ui.LevelError)
		return Bundle{}, fmt.Errorf("decode uploaded bundle: %w", err)
	}

	c.mu.Lock()
	c.bundles = append(c.bundles, b)
	c.mu.Unlock()
	return b, nil
}

type actionFunc func(ctx context.Context, id int64) (Bundle, error)

func (c *Controller) transition(ctx context.Context, id int64, name string, call actionFunc, alertKey string) error {
	ctx = logging.WithBundleID(ctx, strconv.FormatInt(id, 10))
	if _, ok := c.setState(id, StateLoading); !ok {
		return fmt.Errorf("%s bundle %d: %w", name, id, ErrNotFound)
	}

	b, err := call(ctx, id)
	if err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Str("action", name).Msg("bundle action failed")
		c.setState(id, StateResolved)
		c.alerts.Alert(alertKey, ui.LevelError)
		return fmt.Errorf("%s bundle %d: %w", name, id, err)
	}

	c.replace(b)
	c.log.Debug().Ctx(ctx).Str("action", name).Str("state", string(b.State)).Msg("bundle action complete")
	return nil
}

// setState sets the state of bundle id and returns the previous one.
func (c *Controller) setState(id int64, s State) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return "", false
	}
	old := c.bundles[i].State
	c.bundles[i].State = s
	return old, true
}

// replace swaps in b if a bundle with the same id is listed.
func (c *Controller) replace(b Bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(b.ID); i >= 0 {
		c.bundles[i] = b
	}
}

func (c *Controller) index(id int64) int {
	return slices.IndexFunc(c.bundles, func(b Bundle) bool { return b.ID == id })
}

package settings

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/logging"
	"github.com/colonyops/adminctl/internal/core/ui"
)

// Message keys used by the controllers.
const (
	KeyPlatformSaved     = "platformSettings.saved"
	AlertPlatformSave    = "platformSettings.error.save"
	KeyModuleSaved       = "settings.saved"
	AlertModuleSave      = "settings.error.save"
	PlatformFormAction   = "/settings/platform/list"
	moduleFormActionBase = "/settings/"
)

// ModuleFormAction returns the form path for a bundle's settings.
func ModuleFormAction(bundleID int64) string {
	return moduleFormActionBase + strconv.FormatInt(bundleID, 10)
}

// API is the subset of the admin REST API the settings controllers need.
type API interface {
	PlatformSettings(ctx context.Context) ([]Option, error)
	SavePlatformSetting(ctx context.Context, opt Option) error
	ModuleSettings(ctx context.Context, bundleID int64) ([]ModuleSettings, error)
}

// BundleGetter fetches a single bundle.
type BundleGetter interface {
	Bundle(ctx context.Context, id int64) (bundle.Bundle, error)
}

// PlatformController edits the platform-wide settings.
type PlatformController struct {
	api     API
	alerts  ui.AlertPresenter
	forms   ui.FormSubmitter
	catalog *i18n.Catalog
	log     zerolog.Logger

	list optionList
}

// NewPlatformController creates a platform settings controller.
func NewPlatformController(api API, alerts ui.AlertPresenter, forms ui.FormSubmitter, catalog *i18n.Catalog) *PlatformController {
	return &PlatformController{
		api:     api,
		alerts:  alerts,
		forms:   forms,
		catalog: catalog,
		log:     logging.Component("platform-settings"),
	}
}

// Load replaces the options with the ones reported by the server.
func (c *PlatformController) Load(ctx context.Context) error {
	opts, err := c.api.PlatformSettings(ctx)
	if err != nil {
		return fmt.Errorf("load platform settings: %w", err)
	}
	c.list.replace(opts)
	return nil
}

// Options returns a snapshot of the options.
func (c *PlatformController) Options() []Option {
	return c.list.snapshot()
}

// Set changes the value of a loaded option without saving it.
func (c *PlatformController) Set(key, value string) error {
	return c.list.set(key, value)
}

// Save stores a single option. The option is in the loading state while
// the request is outstanding and in the error state if it fails. Failures
// are shown by the option's icon only.
func (c *PlatformController) Save(ctx context.Context, key string) error {
	opt, ok := c.list.get(key)
	if !ok {
		return fmt.Errorf("save %s: %w", key, ErrUnknownKey)
	}

	c.list.setState(key, StateLoading)
	if err := c.api.SavePlatformSetting(ctx, Option{Key: opt.Key, Value: opt.Value, Type: opt.Type}); err != nil {
		c.log.Debug().Ctx(ctx).Err(err).Str("key", key).Msg("save failed")
		c.list.setState(key, StateError)
		return fmt.Errorf("save %s: %w", key, err)
	}
	c.list.setState(key, StateIdle)
	return nil
}

// SaveAll submits every option in one form and returns the translated
// confirmation.
func (c *PlatformController) SaveAll(ctx context.Context) (string, error) {
	return saveAll(ctx, c.forms, c.alerts, c.catalog, c.log, &c.list, PlatformFormAction, KeyPlatformSaved, AlertPlatformSave)
}

// ModuleController edits the settings of one bundle.
type ModuleController struct {
	api     API
	bundles BundleGetter
	alerts  ui.AlertPresenter
	forms   ui.FormSubmitter
	catalog *i18n.Catalog
	log     zerolog.Logger

	mu     sync.Mutex
	bundle bundle.Bundle
	files  []string
	list   optionList
}

// NewModuleController creates a module settings controller.
func NewModuleController(api API, bundles BundleGetter, alerts ui.AlertPresenter, forms ui.FormSubmitter, catalog *i18n.Catalog) *ModuleController {
	return &ModuleController{
		api:     api,
		bundles: bundles,
		alerts:  alerts,
		forms:   forms,
		catalog: catalog,
		log:     logging.Component("module-settings"),
	}
}

// Load fetches the bundle and its settings files. Options of all files are
// shown as one list.
func (c *ModuleController) Load(ctx context.Context, bundleID int64) error {
	ctx = logging.WithBundleID(ctx, strconv.FormatInt(bundleID, 10))

	files, err := c.api.ModuleSettings(ctx, bundleID)
	if err != nil {
		return fmt.Errorf("load module settings: %w", err)
	}

	b, err := c.bundles.Bundle(ctx, bundleID)
	if err != nil {
		return fmt.Errorf("load module settings: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}

	c.mu.Lock()
	c.bundle = b
	c.files = names
	c.mu.Unlock()
	c.list.replace(Flatten(files))
	c.log.Debug().Ctx(ctx).Int("files", len(files)).Msg("module settings loaded")
	return nil
}

// Bundle returns the loaded bundle.
func (c *ModuleController) Bundle() bundle.Bundle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bundle
}

// Files returns the names of the loaded settings files.
func (c *ModuleController) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.files)
}

// Options returns a snapshot of the options.
func (c *ModuleController) Options() []Option {
	return c.list.snapshot()
}

// ShowSettings reports whether the bundle has any options to edit.
func (c *ModuleController) ShowSettings() bool {
	return len(c.list.snapshot()) > 0
}

// Set changes the value of a loaded option without saving it.
func (c *ModuleController) Set(key, value string) error {
	return c.list.set(key, value)
}

// SaveAll submits every option in one form and returns the translated
// confirmation.
func (c *ModuleController) SaveAll(ctx context.Context) (string, error) {
	b := c.Bundle()
	ctx = logging.WithBundleID(ctx, b.Key())
	return saveAll(ctx, c.forms, c.alerts, c.catalog, c.log, &c.list, ModuleFormAction(b.ID), KeyModuleSaved, AlertModuleSave)
}

func saveAll(
	ctx context.Context,
	forms ui.FormSubmitter,
	alerts ui.AlertPresenter,
	catalog *i18n.Catalog,
	log zerolog.Logger,
	list *optionList,
	action, savedKey, alertKey string,
) (string, error) {
	if err := Validate(list.snapshot()); err != nil {
		alerts.Alert(alertKey, ui.LevelError)
		return "", err
	}

	if _, err := forms.Submit(ctx, ui.Form{Action: action, Fields: list.fields()}); err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("action", action).Msg("save failed")
		alerts.Alert(alertKey, ui.LevelError)
		return "", fmt.Errorf("save settings: %w", err)
	}

	return catalog.Message(savedKey), nil
}

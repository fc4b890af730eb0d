package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/colonyops/adminctl/internal/core/bundle"
	"github.com/colonyops/adminctl/internal/core/settings"
	"github.com/colonyops/adminctl/internal/core/status"
)

// API paths.
const (
	PathStatusMessages   = "/status-messages"
	PathBundles          = "/bundles"
	PathPlatformSettings = "/settings/platform"
	pathSettings         = "/settings/"
)

// StatusMessages returns the full current set of status messages.
func (c *Client) StatusMessages(ctx context.Context) ([]status.Message, error) {
	var out []status.Message
	if err := c.getJSON(ctx, PathStatusMessages, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bundles lists installed bundles.
func (c *Client) Bundles(ctx context.Context) ([]bundle.Bundle, error) {
	var out []bundle.Bundle
	if err := c.getJSON(ctx, PathBundles, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bundle fetches one bundle.
func (c *Client) Bundle(ctx context.Context, id int64) (bundle.Bundle, error) {
	var out bundle.Bundle
	err := c.getJSON(ctx, bundlePath(id), &out)
	return out, err
}

// StartBundle starts a bundle and returns its new state.
func (c *Client) StartBundle(ctx context.Context, id int64) (bundle.Bundle, error) {
	return c.bundleAction(ctx, id, "start")
}

// StopBundle stops a bundle and returns its new state.
func (c *Client) StopBundle(ctx context.Context, id int64) (bundle.Bundle, error) {
	return c.bundleAction(ctx, id, "stop")
}

// RestartBundle restarts a bundle and returns its new state.
func (c *Client) RestartBundle(ctx context.Context, id int64) (bundle.Bundle, error) {
	return c.bundleAction(ctx, id, "restart")
}

// UninstallBundle removes a bundle.
func (c *Client) UninstallBundle(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, bundlePath(id)+"/uninstall", nil, nil)
}

func (c *Client) bundleAction(ctx context.Context, id int64, action string) (bundle.Bundle, error) {
	var out bundle.Bundle
	err := c.doJSON(ctx, http.MethodPost, bundlePath(id)+"/"+action, nil, &out)
	return out, err
}

// PlatformSettings lists the platform-wide options.
func (c *Client) PlatformSettings(ctx context.Context) ([]settings.Option, error) {
	var out []settings.Option
	if err := c.getJSON(ctx, PathPlatformSettings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SavePlatformSetting stores a single platform option.
func (c *Client) SavePlatformSetting(ctx context.Context, opt settings.Option) error {
	return c.doJSON(ctx, http.MethodPost, PathPlatformSettings, opt, nil)
}

// ModuleSettings lists the settings files of a bundle.
func (c *Client) ModuleSettings(ctx context.Context, bundleID int64) ([]settings.ModuleSettings, error) {
	var out []settings.ModuleSettings
	if err := c.getJSON(ctx, pathSettings+strconv.FormatInt(bundleID, 10), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func bundlePath(id int64) string {
	return PathBundles + "/" + strconv.FormatInt(id, 10)
}

var (
	_ bundle.API            = (*Client)(nil)
	_ settings.API          = (*Client)(nil)
	_ settings.BundleGetter = (*Client)(nil)
	_ status.Source         = (*Client)(nil)
)

package tui

// Message catalog keys used by the console itself.
const (
	keyUploaded       = "bundles.uploaded"
	keyInvalidPattern = "bundles.error.pattern"
	keyStatusNone     = "status.none"
	keyStatusDismiss  = "status.dismissed"
	keySettingsNone   = "settings.none"
	keyNoModule       = "module.none"
	keyTabBundles     = "tab.bundles"
	keyTabPlatform    = "tab.platform"
	keyTabModule      = "tab.module"
	keyStatusTitle    = "tab.status"
	keyUploadTitle    = "bundles.upload.title"
	keyFilterTitle    = "bundles.filter.title"
)

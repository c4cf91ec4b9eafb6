package config

import "errors"

// Configuration validation errors returned by Config.Validate and the
// site-config loader. Package-level sentinels so callers can use
// errors.Is while the messages stay human-readable.
var (
	// ErrInvalidTimeout is returned when the per-page timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrNoOutputDir is returned when no output directory is configured.
	ErrNoOutputDir = errors.New("no output directory configured")

	// ErrInvalidFailOn is returned when the fail gate names an unknown
	// impact level.
	ErrInvalidFailOn = errors.New("invalid fail-on level: must be one of minor, moderate, serious, critical")

	// ErrNoSites is returned when a scan run resolves to zero sites.
	ErrNoSites = errors.New("no sites to scan: provide --base-url with slugs, or configure sites in the config file")

	// ErrNoSlugs is returned when a site has no slugs configured.
	ErrNoSlugs = errors.New("site has no slugs configured")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

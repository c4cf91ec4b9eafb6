package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These are chosen for CI-friendly scans of
// ordinary public sites; everything is overridable via CLI flags or the
// configuration file.
const (
	// DefaultTimeout is the per-page budget covering navigation and the
	// in-page engine run. Headless Chrome plus axe on a heavy page can
	// take tens of seconds, so one minute leaves headroom without
	// letting a hung page stall the run forever.
	DefaultTimeout = 60 * time.Second

	// DefaultBatchSize is the number of concurrent page visits. Each
	// visit owns a browser tab; four tabs keep a CI runner busy without
	// exhausting memory on typical 2-4 core machines.
	DefaultBatchSize = 4

	// DefaultOutputDir is where per-page result files are written and
	// where the merge pipeline looks for them.
	DefaultOutputDir = "a11y-results"

	// DefaultDevice is the browser profile name stamped on records when
	// no device profiles are configured.
	DefaultDevice = "chromium"

	// DefaultAxeScriptURL is where the axe-core engine source is fetched
	// from when no local script path is configured. Pinned to a specific
	// release so scan results stay comparable across runs.
	DefaultAxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

	// AppName is the application name used for XDG directory paths.
	AppName = "a11yscan"
)

// Config holds all runtime options for a scan run. It is populated from
// CLI flags plus the configuration file and passed through the
// application by dependency injection rather than global state.
type Config struct {
	// OutputDir is the directory for per-page result files.
	OutputDir string

	// BaseURL, when set, overrides the configuration file: positional
	// arguments are treated as slugs under this base instead of site
	// names from the file.
	BaseURL string

	// Timeout is the per-page budget for navigation plus scan.
	Timeout time.Duration

	// BatchSize is the number of concurrent page visits.
	BatchSize int

	// FailOn is the minimum impact level that makes the run exit
	// nonzero. Empty means any violation fails the run.
	FailOn string

	// AxeScriptPath is a local path to the axe-core source. When empty
	// the engine is fetched once from DefaultAxeScriptURL.
	AxeScriptPath string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .a11yscan.yaml in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// Sites holds the site and device configurations loaded from the
	// configuration file.
	Sites *File

	// Targets is the list of positional arguments: site names from the
	// configuration file, or slugs when BaseURL is set.
	Targets []string

	// Devices restricts the run to the named device profiles. Empty
	// means all configured profiles (or the built-in default).
	Devices []string

	// SaveHistory controls whether completed page visits are recorded
	// in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: A constructor rather than zero values, because most
// defaults are non-zero and this doubles as documentation of what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for a11yscan.
// On Linux: ~/.local/share/a11yscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for a11yscan.
// On Linux: ~/.config/a11yscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// Called once after CLI parsing, before any browser work begins.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.FailOn != "" {
		switch c.FailOn {
		case "minor", "moderate", "serious", "critical":
		default:
			return ErrInvalidFailOn
		}
	}
	return nil
}

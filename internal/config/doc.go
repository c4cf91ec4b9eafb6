// Package config holds the runtime configuration for a11yscan: CLI
// defaults, the YAML site-configuration file, and XDG directory helpers.
package config

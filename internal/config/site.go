package config

// SiteConfig describes one site under test: where it lives, which pages
// to visit, and how the scan engine should be tuned for it.
type SiteConfig struct {
	// BaseURL is the scheme-and-host prefix every slug is resolved
	// against (e.g. "https://www.example.com").
	BaseURL string `yaml:"baseUrl"`

	// Slugs are the site-relative paths to visit, in order.
	Slugs []string `yaml:"slugs"`

	// ExcludeRules disables the named axe rules for this site.
	// Rule selection is configuration data, not logic.
	ExcludeRules []string `yaml:"excludeRules,omitempty"`

	// Headers are extra HTTP headers sent with every navigation,
	// typically for basic-auth protected staging environments.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookie is an HTTP cookie set before navigation, typically a
	// session cookie for pages behind a login.
	Cookie string `yaml:"cookie,omitempty"`
}

// Device describes one browser profile. Records carry the profile name
// in their device field, and per-device result files are suffixed with
// it.
type Device struct {
	// Name identifies the profile in records and filenames.
	Name string `yaml:"name"`

	// UserAgent overrides the browser's user agent when set.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Width and Height set the viewport. Zero means browser default.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// File represents the structure of the .a11yscan.yaml configuration file.
type File struct {
	// Sites maps site names to their configurations.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains site configuration applied to all sites unless
	// overridden per site.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Devices lists the browser profiles each page is visited with.
	// When empty a single default profile is used.
	Devices []Device `yaml:"devices,omitempty"`
}

// GetSiteConfig returns the configuration for a named site, with file
// defaults merged in underneath the site-specific values.
func (cf *File) GetSiteConfig(name string) (SiteConfig, bool) {
	site, ok := cf.Sites[name]
	if !ok {
		return SiteConfig{}, false
	}
	return mergeSiteConfig(cf.Defaults, site), true
}

// mergeSiteConfig overlays non-zero override values on the defaults.
func mergeSiteConfig(defaults, override SiteConfig) SiteConfig {
	result := defaults

	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if len(override.Slugs) > 0 {
		result.Slugs = override.Slugs
	}
	if len(override.ExcludeRules) > 0 {
		result.ExcludeRules = override.ExcludeRules
	}
	if override.Cookie != "" {
		result.Cookie = override.Cookie
	}
	if len(override.Headers) > 0 {
		// Clone before merging so the shared defaults map is never
		// mutated by a per-site overlay.
		merged := make(map[string]string, len(defaults.Headers)+len(override.Headers))
		for k, v := range defaults.Headers {
			merged[k] = v
		}
		for k, v := range override.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	return result
}

// DeviceProfiles returns the configured device profiles, filtered to the
// requested names when any are given. With no configured profiles the
// built-in default profile is returned so every scan has exactly one
// device at minimum.
func (cf *File) DeviceProfiles(names []string) []Device {
	devices := cf.Devices
	if len(devices) == 0 {
		devices = []Device{{Name: DefaultDevice}}
	}
	if len(names) == 0 {
		return devices
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var filtered []Device
	for _, d := range devices {
		if wanted[d.Name] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

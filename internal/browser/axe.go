package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrEmptyScript is returned when the configured axe-core source loads
// to an empty document. Injecting nothing would make every page pass.
var ErrEmptyScript = errors.New("axe script source is empty")

// scriptFetchTimeout bounds the one-time engine download.
const scriptFetchTimeout = 30 * time.Second

// LoadAxeSource returns the axe-core engine source, either from a local
// file or fetched once from url when path is empty. The source is loaded
// a single time per run and injected into every visited page.
func LoadAxeSource(ctx context.Context, path, url string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // User-provided script path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to read axe script %s: %w", path, err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return "", fmt.Errorf("%s: %w", path, ErrEmptyScript)
		}
		return string(data), nil
	}

	ctx, cancel := context.WithTimeout(ctx, scriptFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build axe script request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch axe script from %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only response body

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch axe script from %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read axe script body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("%s: %w", url, ErrEmptyScript)
	}
	return string(data), nil
}

// axeRunOptions is the options object passed to axe.run in the page.
type axeRunOptions struct {
	ResultTypes []string                   `json:"resultTypes"`
	Rules       map[string]axeRuleToggle   `json:"rules,omitempty"`
}

type axeRuleToggle struct {
	Enabled bool `json:"enabled"`
}

// BuildAxeOptions serializes the axe.run options for a scan, disabling
// the given rule ids. Only violations are requested; passes and
// incomplete results are dead weight for this harness.
func BuildAxeOptions(excludeRules []string) (string, error) {
	opts := axeRunOptions{
		ResultTypes: []string{"violations"},
	}
	if len(excludeRules) > 0 {
		opts.Rules = make(map[string]axeRuleToggle, len(excludeRules))
		for _, id := range excludeRules {
			opts.Rules[id] = axeRuleToggle{Enabled: false}
		}
	}

	data, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal axe options: %w", err)
	}
	return string(data), nil
}

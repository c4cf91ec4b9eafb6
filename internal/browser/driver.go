package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/model"
)

// Driver owns one headless browser process configured for a single
// device profile. Page visits each get a fresh tab context from the
// shared allocator, so concurrent visits never share page state.
type Driver struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc

	// axeSource is the engine script injected into every page.
	axeSource string

	device config.Device
	logger *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets a custom logger for the driver.
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver starts a browser allocator for the given device profile.
// The caller must Close the driver to release the browser process.
func NewDriver(ctx context.Context, axeSource string, device config.Device, opts ...DriverOption) (*Driver, error) {
	if strings.TrimSpace(axeSource) == "" {
		return nil, ErrEmptyScript
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if device.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(device.UserAgent))
	}
	if device.Width > 0 && device.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(device.Width, device.Height))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)

	d := &Driver{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		axeSource:   axeSource,
		device:      device,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d, nil
}

// Device returns the profile name this driver browses as.
func (d *Driver) Device() string {
	return d.device.Name
}

// Close shuts down the browser allocator.
func (d *Driver) Close() {
	d.allocCancel()
}

// Visit navigates to pageURL in a fresh tab, injects axe-core, runs the
// engine with the site's rule exclusions, and returns the decoded scan
// result. The whole visit is bounded by timeout; a navigation or engine
// failure is fatal to this page only.
func (d *Driver) Visit(ctx context.Context, pageURL string, site config.SiteConfig, timeout time.Duration) (*model.ScanResult, error) {
	optsJSON, err := BuildAxeOptions(site.ExcludeRules)
	if err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(d.allocCtx)
	defer cancel()

	tabCtx, cancel = context.WithTimeout(tabCtx, timeout)
	defer cancel()

	// Propagate cancellation of the caller's context (e.g. Ctrl-C)
	// into the tab without tying the tab's lifetime to it.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		}
	}()

	var result model.ScanResult

	tasks := chromedp.Tasks{network.Enable()}
	if len(site.Headers) > 0 {
		headers := make(network.Headers, len(site.Headers))
		for k, v := range site.Headers {
			headers[k] = v
		}
		tasks = append(tasks, network.SetExtraHTTPHeaders(headers))
	}
	if site.Cookie != "" {
		cookies, err := cookieParams(site.Cookie, pageURL)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, storage.SetCookies(cookies))
	}

	tasks = append(tasks,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Inject the engine, then run it. axe.run returns a promise,
		// so the evaluation must await it before decoding.
		chromedp.Evaluate(d.axeSource, nil),
		chromedp.Evaluate(
			fmt.Sprintf("axe.run(document, %s)", optsJSON),
			&result,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			},
		),
	)

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return nil, fmt.Errorf("visit %s failed: %w", pageURL, err)
	}

	d.logger.Debug("page scanned",
		"url", pageURL,
		"device", d.device.Name,
		"violations", len(result.Violations),
		"nodes", result.NodeCount(),
	)

	return &result, nil
}

// cookieParams parses a "name=value; name2=value2" cookie string into
// CDP cookie parameters scoped to the page's host.
func cookieParams(cookie, pageURL string) ([]*network.CookieParam, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	var params []*network.CookieParam
	for _, pair := range strings.Split(cookie, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("malformed cookie pair %q", pair)
		}
		params = append(params, &network.CookieParam{
			Name:   name,
			Value:  value,
			Domain: u.Hostname(),
			Path:   "/",
		})
	}
	return params, nil
}

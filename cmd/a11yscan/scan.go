package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/browser"
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/database"
	alog "github.com/a11yscan/a11yscan/internal/log"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/pipeline"
	"github.com/a11yscan/a11yscan/internal/report"
)

// errViolationsFound signals a nonzero exit for a run whose pages
// reported violations at or above the configured gate. Result files are
// written regardless; this error only carries the pass/fail verdict.
var errViolationsFound = errors.New("accessibility violations found")

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [site...]",
		Short: "Scan configured pages for accessibility violations",
		Long: `Scan visits each configured page in a headless browser, runs the
axe-core engine on it, and writes one xlsx result file per page that has
violations. Pages with zero violations produce no file, so the output
directory only contains pages with problems.

The exit code is nonzero when any scanned page reports violations at or
above the --fail-on level, independent of file-write success.

Examples:
  # Scan every site in .a11yscan.yaml
  a11yscan scan

  # Scan two named sites from the config file
  a11yscan scan corporate-site docs-site

  # Scan ad-hoc slugs under one base URL
  a11yscan scan --base-url https://www.example.com / about/ "case-studies/allianz-trade/"

  # Only fail the run on serious or critical findings
  a11yscan scan --fail-on serious`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("base-url", "u", "",
		"Scan slugs (positional args) under this base URL instead of config-file sites")
	cmd.Flags().StringP("out", "o", config.DefaultOutputDir,
		"Output directory for per-page result files")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-page budget covering navigation and the engine run")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent page visits")
	cmd.Flags().StringP("fail-on", "f", "",
		"Minimum impact that fails the run (minor|moderate|serious|critical). Empty: any violation")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .a11yscan.yaml in current or home directory)")
	cmd.Flags().StringSliceP("device", "d", nil,
		"Restrict the run to the named device profiles")
	cmd.Flags().String("axe-script", "",
		"Local path to the axe-core source (default: fetch pinned release from CDN)")
	cmd.Flags().Bool("no-history", false,
		"Do not record completed visits in the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger. All attributes pass through
// the redacting handler so site-config cookies and auth headers never
// reach the log output.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(alog.NewRedactHandler(handler))
}

// buildScanConfig creates a Config from cobra command flags.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = cmd.Flags().GetString("out"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.FailOn, err = cmd.Flags().GetString("fail-on"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.Devices, err = cmd.Flags().GetStringSlice("device"); err != nil {
		return nil, err
	}
	if cfg.AxeScriptPath, err = cmd.Flags().GetString("axe-script"); err != nil {
		return nil, err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	// Load the site configuration file. An explicitly specified path
	// must exist; an absent default file just means empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.Sites, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Sites = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	return cfg, nil
}

// siteTarget pairs a site name with its resolved configuration.
type siteTarget struct {
	name string
	site config.SiteConfig
}

// resolveSites turns CLI targets and the config file into the concrete
// list of sites to scan.
func resolveSites(cfg *config.Config) ([]siteTarget, error) {
	// Ad-hoc mode: positional args are slugs under --base-url.
	if cfg.BaseURL != "" {
		if len(cfg.Targets) == 0 {
			return nil, config.ErrNoSlugs
		}
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
		}
		site := cfg.Sites.Defaults
		site.BaseURL = cfg.BaseURL
		site.Slugs = cfg.Targets
		return []siteTarget{{name: u.Host, site: site}}, nil
	}

	// Named sites from the config file, or every configured site.
	names := cfg.Targets
	if len(names) == 0 {
		for name := range cfg.Sites.Sites {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	if len(names) == 0 {
		return nil, config.ErrNoSites
	}

	targets := make([]siteTarget, 0, len(names))
	for _, name := range names {
		site, ok := cfg.Sites.GetSiteConfig(name)
		if !ok {
			return nil, fmt.Errorf("unknown site %q in configuration", name)
		}
		if site.BaseURL == "" {
			return nil, fmt.Errorf("site %q has no baseUrl configured", name)
		}
		if len(site.Slugs) == 0 {
			return nil, fmt.Errorf("site %q: %w", name, config.ErrNoSlugs)
		}
		targets = append(targets, siteTarget{name: name, site: site})
	}
	return targets, nil
}

// resolveURL joins a base URL and a slug without doubling separators.
func resolveURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(slug, "/")
}

// runScan executes the collection pipeline.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	sites, err := resolveSites(cfg)
	if err != nil {
		return err
	}

	devices := cfg.Sites.DeviceProfiles(cfg.Devices)
	if len(devices) == 0 {
		return fmt.Errorf("no device profiles match %v", cfg.Devices)
	}

	logger.Info("starting scan",
		"sites", len(sites),
		"devices", len(devices),
		"batchSize", cfg.BatchSize,
		"outputDir", cfg.OutputDir,
	)

	axeSource, err := browser.LoadAxeSource(ctx, cfg.AxeScriptPath, config.DefaultAxeScriptURL)
	if err != nil {
		return err
	}

	var db *database.HistoryDB
	if cfg.SaveHistory {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best effort close on exit
	}

	// One browser process per device profile, shared by that profile's
	// visits; each visit still runs in its own tab.
	drivers := make(map[string]*browser.Driver, len(devices))
	defer func() {
		for _, d := range drivers {
			d.Close()
		}
	}()
	for _, device := range devices {
		d, err := browser.NewDriver(ctx, axeSource, device, browser.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to start browser for device %q: %w", device.Name, err)
		}
		drivers[device.Name] = d
	}

	siteConfigs := make(map[string]config.SiteConfig, len(sites))
	var visits []pipeline.Visit
	for _, st := range sites {
		siteConfigs[st.name] = st.site
		for _, slug := range st.site.Slugs {
			for _, device := range devices {
				visits = append(visits, pipeline.Visit{
					Site:   st.name,
					Page:   slug,
					URL:    resolveURL(st.site.BaseURL, slug),
					Device: device.Name,
				})
			}
		}
	}

	writer := report.NewWriter(cfg.OutputDir)
	bp := pipeline.NewBatchProcessor(
		func(v pipeline.Visit) *pipeline.Pipeline {
			p := pipeline.New(pipeline.WithLogger(logger))
			p.AddSteps(
				pipeline.NewVisitStep(drivers[v.Device], siteConfigs[v.Site], cfg.Timeout),
				pipeline.NewFlattenStep(),
				pipeline.NewWriteStep(writer, logger),
			)
			return p
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	threshold := model.ParseImpact(cfg.FailOn)

	var mu sync.Mutex
	var failedVisits, violatingPages, totalViolations int
	err = bp.ProcessBatchWithCallback(ctx, visits, func(result *model.PageResult, index int) {
		mu.Lock()
		defer mu.Unlock()

		switch {
		case result.Failed():
			failedVisits++
			fmt.Fprintf(os.Stderr, "[%d/%d] FAIL %s (%s): %s\n",
				index+1, len(visits), result.Page, result.Device, result.ErrorMessage)
		case len(result.Records) == 0:
			fmt.Printf("[%d/%d] PASS %s (%s)\n",
				index+1, len(visits), result.Page, result.Device)
		default:
			totalViolations += len(result.Records)
			if cfg.FailOn == "" || result.WorstImpact().AtLeast(threshold) {
				violatingPages++
			}
			fmt.Printf("[%d/%d] FAIL %s (%s): %d violations -> %s\n",
				index+1, len(visits), result.Page, result.Device,
				len(result.Records), result.OutputPath)
		}

		if db != nil {
			if err := db.SaveVisit(ctx, result); err != nil {
				logger.Error("failed to save visit history",
					"page", result.Page,
					"error", err,
				)
			}
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nScanned %d pages: %d with violations (%d records), %d visit errors\n",
		len(visits), violatingPages, totalViolations, failedVisits)

	if failedVisits > 0 {
		return fmt.Errorf("%d page visits failed", failedVisits)
	}
	if violatingPages > 0 {
		return errViolationsFound
	}
	return nil
}

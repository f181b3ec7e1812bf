// Package app wires the sediment load run together: fetch, per-site
// estimation, aggregation, and export.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hydrograph/sedload/internal/concentration"
	"github.com/hydrograph/sedload/internal/database"
	"github.com/hydrograph/sedload/internal/estimator"
	"github.com/hydrograph/sedload/internal/export"
	"github.com/hydrograph/sedload/internal/log"
	"github.com/hydrograph/sedload/internal/regression"
	"github.com/hydrograph/sedload/internal/timeseries"
	"github.com/hydrograph/sedload/pkg/config"
)

// App represents one batch estimation run
type App struct {
	configProvider config.Provider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.Provider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run executes the batch estimation end to end. Site-local data problems
// are logged and skipped; only run-level failures (config, database, export
// I/O) return an error.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	runID := uuid.New().String()
	log.Infow("starting sediment load run",
		"run_id", runID,
		"window_start", cfg.Window.Start,
		"window_end", cfg.Window.End,
		"sites", len(cfg.Sites))

	catalog, err := regression.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("error loading regression catalog: %w", err)
	}
	log.Infof("regression catalog loaded: %d sites", catalog.Len())

	rules := timeseries.DefaultExclusionRules
	if isSQLitePath(cfg.Catalog.Path) {
		loaded, err := timeseries.LoadExclusionRules(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("error loading exclusion rules: %w", err)
		}
		if loaded != nil {
			rules = loaded
		}
	}

	client := database.NewClient(a.logger)
	if err := client.Connect(cfg.Database.ConnectionString); err != nil {
		return fmt.Errorf("error connecting to measurement archive: %w", err)
	}

	kinds := []string{timeseries.KindFlow, timeseries.KindSSC, timeseries.KindSS}
	samples, err := client.FetchSamples(ctx, cfg.Sites, kinds, cfg.Window.Start, cfg.Window.End)
	if err != nil {
		return fmt.Errorf("error fetching samples: %w", err)
	}
	log.Infof("fetched %d raw samples", len(samples))

	flows := timeseries.BuildFlowSeries(samples, rules)
	records, stats := ProcessSites(flows, catalog)

	overlay := concentration.Build(samples, flows)

	if err := writeCSV(cfg.Output.StatisticsFile, func(f *os.File) error {
		return export.WriteStatistics(f, stats)
	}); err != nil {
		return err
	}
	if err := writeCSV(cfg.Output.LoadSeriesFile, func(f *os.File) error {
		return export.WriteLoadSeries(f, records)
	}); err != nil {
		return err
	}
	if cfg.Output.ConcentrationFile != "" {
		if err := writeCSV(cfg.Output.ConcentrationFile, func(f *os.File) error {
			return export.WriteConcentrationSeries(f, overlay)
		}); err != nil {
			return err
		}
	}

	log.Infow("run complete",
		"run_id", runID,
		"sites_processed", len(stats),
		"sites_with_flow", len(flows),
		"load_records", len(records))
	return nil
}

// ProcessSites runs the load estimator for every site with flow data, in
// sorted site order, and combines the per-site outputs. Each site is
// independent; a site-local failure logs a diagnostic and the loop
// continues.
func ProcessSites(flows map[string][]timeseries.FlowRecord, catalog *regression.Catalog) ([]timeseries.LoadRecord, []timeseries.SiteStatistics) {
	sites := make([]string, 0, len(flows))
	for site := range flows {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	var records []timeseries.LoadRecord
	var stats []timeseries.SiteStatistics
	for _, site := range sites {
		curve, ok := catalog.Lookup(site)
		if !ok {
			log.Warnw("site skipped: no regression catalog entry", "site", site)
			continue
		}

		res, err := estimator.Process(site, flows[site], curve)
		if res.DomainDrops > 0 {
			log.Warnw("samples dropped: flow outside regression domain",
				"site", site, "kind", curve.Kind(), "dropped", res.DomainDrops)
		}
		if err != nil {
			switch {
			case errors.Is(err, estimator.ErrEmptySeries):
				log.Warnw("site skipped: no usable flow records", "site", site)
			case errors.Is(err, estimator.ErrNoStatistics):
				log.Warnw("site statistics omitted: summary undefined", "site", site)
				records = append(records, res.Records...)
			default:
				log.Warnw("site skipped", "site", site, "error", err)
			}
			continue
		}

		records = append(records, res.Records...)
		stats = append(stats, *res.Statistics)
	}

	return records, stats
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}
	return nil
}

func isSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

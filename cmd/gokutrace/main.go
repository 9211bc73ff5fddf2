// cmd/gokutrace/main.go
package main

import (
	"fmt"
	"os"

	"gokutrace/internal/adapters/catalog"
	"gokutrace/internal/adapters/output"
	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
	"gokutrace/internal/core/usecases"
	"gokutrace/internal/platform/cache"
	"gokutrace/internal/platform/config"
	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/httpclient"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/platform/metrics"
	"gokutrace/internal/platform/resilience"
	"gokutrace/internal/platform/ui"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// variantCacheSize acota las semillas recordadas por el generador.
const variantCacheSize = 256

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Config
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		config.PrintUsage(os.Stderr)
		return 2
	}
	if cfg.ShowHelp {
		config.PrintHelp(os.Stdout)
		return 0
	}
	if cfg.PrintVersion {
		config.PrintVersion(os.Stdout, version, commit, date)
		return 0
	}
	if cfg.Username == "" {
		config.PrintUsage(os.Stdout)
		return 0
	}

	// 2. Logger: GOKUTRACE_LOG_LEVEL tiene prioridad sobre -v
	logger := logx.NewWithLevel(logx.LevelForVerbosity(cfg.Verbose))
	if lvl, ok := os.LookupEnv(logx.EnvLevel); ok && lvl != "" {
		logger = logx.New()
	}
	logger.Debug("configuration loaded", "workers", cfg.Workers, "timeout", cfg.Timeout, "ui", cfg.UI)

	presenter := ui.New(cfg.UI, os.Stdout)
	defer presenter.Close()

	// 3. Señales
	ctx, intr, cleanup := rootContextWithSignals(logger)
	defer cleanup()

	// 4. Métricas
	m, err := metrics.New()
	if err != nil {
		logger.Err(err, "phase", "metrics")
		return 1
	}
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Err(err, "phase", "metrics")
			}
		}()
	}

	// 5. Catálogo
	cat, warnings := catalog.NewFileLoader(logger).Load(cfg.PlatformsPath)
	for _, w := range warnings {
		presenter.Warning(w)
	}

	// 6. Prober
	prober, closeProber, err := buildProber(cfg, logger, m)
	if err != nil {
		presenter.Error(err.Error())
		logger.Err(err, "phase", "http-client")
		return 2
	}
	defer closeProber()

	// 7. Orchestrator
	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Catalog: cat,
		Prober:  prober,
		Generator: usecases.NewVariantGenerator(usecases.VariantGeneratorOptions{
			Cache:  cache.NewMemoryCache[[]string](variantCacheSize),
			Logger: logger,
		}),
		Workers:     cfg.Workers,
		Metrics:     m,
		Logger:      logger,
		Stealth:     cfg.Stealth,
		TrackMisses: cfg.TrackMisses(),
		OnProgress: func(p ports.ProgressTracker) {
			intr.attach(p)
			presenter.Track(p)
		},
	})

	presenter.Start(ui.RunInfo{
		Seed:      cfg.Username,
		Mode:      cfg.Mode(),
		Platforms: cat.Len(),
		Workers:   cfg.Workers,
		Timeout:   cfg.Timeout,
		Stealth:   cfg.Stealth,
		Proxies:   len(cfg.Proxies),
		Catalog:   cfg.PlatformsPath,
	})

	// 8. Corrida
	report, runErr := orch.Run(ctx, cfg.Username, cfg.Mode())
	if report == nil {
		presenter.Error(runErr.Error())
		logger.Err(runErr, "phase", "run")
		return 1
	}
	for _, w := range warnings {
		report.AddWarning(w)
	}

	presenter.Finish(report, cfg.Verbose)
	if cfg.UI == config.UIRaw {
		if err := output.WriteTable(os.Stdout, report, cfg.TrackMisses()); err != nil {
			logger.Err(err, "phase", "table")
		}
	}

	// 9. Persistencia: un fallo de escritura no invalida la corrida
	if err := saveReport(cfg, report, logger, presenter); err != nil {
		logger.Err(err, "phase", "output")
	}

	if runErr != nil {
		logger.Err(runErr, "phase", "run")
		return 1
	}
	return 0
}

// buildProber arma el cliente HTTP y, si está habilitado, el circuit breaker
// por plataforma. El cleanup libera las conexiones ociosas.
func buildProber(cfg config.Config, logger logx.Logger, m *metrics.Metrics) (ports.Prober, func(), error) {
	// Generate nunca toca la red
	if cfg.Mode() == domain.ModeGenerate {
		return nil, func() {}, nil
	}

	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.Timeout
	hc.MaxRetries = cfg.MaxRetries
	hc.Proxies = cfg.Proxies
	hc.RateLimit = cfg.RateLimit

	client, err := httpclient.New(hc, logger, m)
	if err != nil {
		return nil, nil, errors.Wrap(err, "http client")
	}
	logger.Debug("http client ready", "client", client.String())

	prober := resilience.NewBreakerProber(client, resilience.BreakerOptions{
		Threshold: cfg.BreakerThreshold,
		Logger:    logger,
	})
	return prober, client.CloseIdleConnections, nil
}

func saveReport(cfg config.Config, report *domain.Report, logger logx.Logger, presenter ui.Presenter) error {
	sink := output.NewFileSink(cfg.OutputDir, logger)
	path, err := sink.Save(report, cfg.Format())
	if err != nil {
		presenter.Error("could not save results: " + err.Error())
		return err
	}
	if path == "" {
		return nil
	}
	presenter.Info("Results saved to " + path)
	return nil
}

// Package bootstrap wires configuration, logging, telemetry and the
// pipeline components into a runnable service.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/licitavision/placsp-connector/internal/api"
	"github.com/licitavision/placsp-connector/internal/config"
	"github.com/licitavision/placsp-connector/internal/feed"
	"github.com/licitavision/placsp-connector/internal/logger"
	"github.com/licitavision/placsp-connector/internal/pliegos"
	"github.com/licitavision/placsp-connector/internal/scrape"
	"github.com/licitavision/placsp-connector/internal/session"
	"github.com/licitavision/placsp-connector/internal/telemetry"
)

// App holds the assembled service.
type App struct {
	Config    *config.Config
	Log       logger.Logger
	Telemetry *telemetry.Provider
	Session   *session.Store
	Ingestor  *feed.Ingestor
	Scraper   *scrape.Orchestrator
	Extractor *pliegos.Extractor
	Router    *gin.Engine
}

// NewApp loads configuration and assembles every component. debug, when
// set, overrides the configured log level and gin mode.
func NewApp(configPath string, debug bool) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	provider := telemetry.NewProvider()
	sess := session.New()

	ingestor := feed.NewIngestor(feed.Config{
		Sources:      cfg.Feeds.Sources,
		FetchTimeout: cfg.Feeds.FetchTimeout,
		UserAgent:    cfg.Feeds.UserAgent,
	}, sess, provider.Metrics, log)

	scraper := scrape.NewOrchestrator(scrape.Config{
		Command:           cfg.Scrape.Command,
		Args:              cfg.Scrape.Args,
		Timeout:           cfg.Scrape.Timeout,
		Concurrency:       cfg.Scrape.Concurrency,
		LaunchesPerSecond: cfg.Scrape.LaunchesPerSecond,
	}, sess, provider.Metrics, log)

	extractor := pliegos.NewExtractor(pliegos.Config{
		FetchTimeout: cfg.Feeds.FetchTimeout,
		UserAgent:    cfg.Feeds.UserAgent,
	}, log)

	handler := api.NewHandler(ingestor, scraper, extractor, sess,
		cfg.Feeds.DefaultLimit, cfg.Feeds.MaxLimit, log)
	router := api.NewRouter(cfg.Server, cfg.Debug, handler, provider.Handler(), log)

	log.Info("application assembled",
		logger.Int("feed_sources", len(cfg.Feeds.Sources)),
		logger.String("scrape_command", cfg.Scrape.Command),
	)

	return &App{
		Config:    cfg,
		Log:       log,
		Telemetry: provider,
		Session:   sess,
		Ingestor:  ingestor,
		Scraper:   scraper,
		Extractor: extractor,
		Router:    router,
	}, nil
}

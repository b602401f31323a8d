package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/licitavision/placsp-connector/internal/logger"
)

const (
	defaultServerPort     = 8080
	defaultServerTimeout  = 30 * time.Second
	defaultFeedTimeout    = 30 * time.Second
	defaultResultLimit    = 30
	maxResultLimit        = 300
	defaultScrapeTimeout  = 75 * time.Second
	defaultScrapeWorkers  = 1
	defaultScrapeLaunches = 1
)

// defaultUserAgent mimics a desktop browser. The PLACSP syndication
// endpoints answer generic clients with an anti-bot HTML page instead of
// the Atom document.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// defaultFeeds are the PLACSP contracting-profile syndication documents.
var defaultFeeds = []string{
	"https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_1/licitacionesPerfilesContratanteCompleto3.atom",
	"https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_640/licitacionesPerfilesContratanteCompleto3.atom",
	"https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_641/licitacionesPerfilesContratanteCompleto3.atom",
	"https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_642/licitacionesPerfilesContratanteCompleto3.atom",
	"https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_643/licitacionesPerfilesContratanteCompleto3.atom",
}

// Config is the top-level service configuration.
type Config struct {
	Debug   bool          `env:"APP_DEBUG" yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Feeds   FeedsConfig   `yaml:"feeds"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Logging logger.Config `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"  yaml:"host"`
	Port         int           `env:"SERVER_PORT"  yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
	// CORSOriginSuffix additionally allows any https origin ending with
	// this suffix (e.g. ".vercel.app" for frontend preview deployments).
	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX" yaml:"cors_origin_suffix"`
}

// FeedsConfig holds syndication ingest settings.
type FeedsConfig struct {
	Sources      []string      `env:"FEED_SOURCES" yaml:"sources"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	UserAgent    string        `env:"FEED_USER_AGENT" yaml:"user_agent"`
	DefaultLimit int           `yaml:"default_limit"`
	MaxLimit     int           `yaml:"max_limit"`
}

// ScrapeConfig holds detail-worker settings. Command names the worker
// executable, Args its fixed leading arguments; the detail URL is always
// appended as the final argument.
type ScrapeConfig struct {
	Command string `env:"SCRAPE_COMMAND" yaml:"command"`
	Args    []string `yaml:"args"`
	Timeout time.Duration `env:"SCRAPE_TIMEOUT" yaml:"timeout"`
	// Concurrency bounds the number of worker processes alive at once
	// during batch enrichment.
	Concurrency int `env:"SCRAPE_CONCURRENCY" yaml:"concurrency"`
	// LaunchesPerSecond bounds the rate at which worker processes are
	// spawned.
	LaunchesPerSecond int `yaml:"launches_per_second"`
}

// Load reads, defaults and validates the service configuration.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if len(c.Feeds.Sources) == 0 {
		return errors.New("feeds.sources is required")
	}
	if c.Feeds.DefaultLimit <= 0 || c.Feeds.DefaultLimit > c.Feeds.MaxLimit {
		return errors.New("feeds.default_limit must be in 1..feeds.max_limit")
	}
	if c.Scrape.Command == "" {
		return errors.New("scrape.command is required")
	}
	if c.Scrape.Concurrency <= 0 {
		return errors.New("scrape.concurrency must be positive")
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		// Batch enrichment holds the response open while workers run.
		cfg.Server.WriteTimeout = 10 * time.Minute
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost",
			"http://127.0.0.1",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
	if len(cfg.Feeds.Sources) == 0 {
		cfg.Feeds.Sources = defaultFeeds
	}
	if cfg.Feeds.FetchTimeout == 0 {
		cfg.Feeds.FetchTimeout = defaultFeedTimeout
	}
	if cfg.Feeds.UserAgent == "" {
		cfg.Feeds.UserAgent = defaultUserAgent
	}
	if cfg.Feeds.DefaultLimit == 0 {
		cfg.Feeds.DefaultLimit = defaultResultLimit
	}
	if cfg.Feeds.MaxLimit == 0 {
		cfg.Feeds.MaxLimit = maxResultLimit
	}
	if cfg.Scrape.Command == "" {
		cfg.Scrape.Command = "placsp-worker"
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = defaultScrapeTimeout
	}
	if cfg.Scrape.Concurrency == 0 {
		cfg.Scrape.Concurrency = defaultScrapeWorkers
	}
	if cfg.Scrape.LaunchesPerSecond == 0 {
		cfg.Scrape.LaunchesPerSecond = defaultScrapeLaunches
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

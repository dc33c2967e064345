package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PRICING"

const (
	StoreSpanner = "spanner"
	StoreMemory  = "memory"
)

type Config struct {
	App     AppConfig
	Spanner SpannerConfig
	Redis   RedisConfig
	PubSub  PubSubConfig
	Outbox  OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.App.Store) {
	case StoreSpanner:
		if strings.TrimSpace(c.Spanner.Database) == "" {
			return fmt.Errorf("PRICING_SPANNER_DATABASE is required when PRICING_STORE=%s", StoreSpanner)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported PRICING_STORE %q", c.App.Store)
	}
	if c.PubSub.Topic != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("PRICING_PUBSUB_PROJECT_ID is required when PRICING_PUBSUB_TOPIC is set")
	}
	return nil
}

type AppConfig struct {
	ServiceName  string `envconfig:"PRICING_SERVICE_NAME" default:"pricing-service"`
	Store        string `envconfig:"PRICING_STORE" default:"spanner"`
	HTTPPort     string `envconfig:"PRICING_HTTP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PRICING_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PRICING_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PRICING_LOG_WARN_STACK" default:"false"`
}

// UsesSpanner reports whether the Spanner store is configured.
func (a AppConfig) UsesSpanner() bool {
	return strings.EqualFold(a.Store, StoreSpanner)
}

type SpannerConfig struct {
	Database string `envconfig:"PRICING_SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/pricing-db"`
}

type RedisConfig struct {
	URL      string        `envconfig:"PRICING_REDIS_URL"`
	CacheTTL time.Duration `envconfig:"PRICING_CACHE_TTL" default:"5m"`
}

// Enabled reports whether the calculated price cache should be wired.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type PubSubConfig struct {
	ProjectID string `envconfig:"PRICING_PUBSUB_PROJECT_ID"`
	Topic     string `envconfig:"PRICING_PUBSUB_TOPIC"`
}

// Enabled reports whether change events are published to Pub/Sub.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.Topic) != ""
}

type OutboxConfig struct {
	Enabled bool `envconfig:"PRICING_OUTBOX_ENABLED" default:"true"`
}

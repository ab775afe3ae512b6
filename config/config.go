package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorePostgres = "postgres"
	StoreElastic  = "elastic"
	StoreMemory   = "memory"

	CacheRedis = "redis"
)

type Config struct {
	Env      string `envconfig:"env" default:"production"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":80"`

	DatabaseURL  string `envconfig:"DB_CONN_STR"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`
	GeocodeCache string `envconfig:"GEOCODE_CACHE" default:"postgres"`

	ElasticURL   string `envconfig:"ELASTIC_CONN_STR"`
	ElasticIndex string `envconfig:"ELASTIC_INDEX" default:"interpreters"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	RedisAddr     string `envconfig:"RedisAddr"`
	RedisPassword string `envconfig:"RedisPassword"`

	ApiKey       string `envconfig:"ApiKey"`
	MaskContacts bool   `envconfig:"MASK_CONTACTS" default:"true"`

	GoogleMapsAPIKey string `envconfig:"GOOGLE_MAPS_API_KEY"`
	GeocodeBaseURL   string `envconfig:"GEOCODE_BASE_URL" default:"https://maps.googleapis.com"`

	ResponseCacheTTL  time.Duration `envconfig:"RESPONSE_CACHE_TTL" default:"5m"`
	CandidateLimit    int           `envconfig:"CANDIDATE_LIMIT" default:"5000"`
	GeocodeDelay      time.Duration `envconfig:"GEOCODE_DELAY" default:"2s"`
	RateLimitCooldown time.Duration `envconfig:"RATE_LIMIT_COOLDOWN" default:"1m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DB_CONN_STR must be set for the %s store", c.StoreBackend)
		}
	case StoreElastic:
		if c.ElasticURL == "" {
			return fmt.Errorf("ELASTIC_CONN_STR must be set for the %s store", c.StoreBackend)
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DB_CONN_STR must be set, the %s store is fed from postgres", c.StoreBackend)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.GeocodeCache {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DB_CONN_STR must be set for the %s geocode cache", c.GeocodeCache)
		}
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("RedisAddr must be set for the %s geocode cache", c.GeocodeCache)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown GEOCODE_CACHE %q", c.GeocodeCache)
	}

	if c.CandidateLimit < 1 {
		return fmt.Errorf("CANDIDATE_LIMIT must be positive, got %d", c.CandidateLimit)
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

func (c *Config) HasKafka() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) HasElastic() bool {
	return c.ElasticURL != ""
}

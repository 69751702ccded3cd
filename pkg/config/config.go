package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/matst80/slask-discovery/pkg/common"
)

type Config struct {
	ListenAddress string `env:"LISTEN_ADDRESS" envDefault:":8080"`
	Country       string `env:"COUNTRY" envDefault:"se"`

	Catalog  CatalogConfig
	Redis    RedisConfig
	Rabbit   RabbitConfig
	Session  SessionConfig
	Log      LogConfig
	Timeouts common.TimeoutConfig
}

type CatalogConfig struct {
	URL     string        `env:"CATALOG_URL"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
	Seed    string        `env:"CATALOG_SEED"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type RabbitConfig struct {
	URL string `env:"RABBIT_URL"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL" envDefault:"1m"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

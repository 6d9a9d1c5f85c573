package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Throttle Throttle
	Worker   Worker
	Bot      Bot
	Catalog  Catalog
	Probe    Probe
	Metrics  Metrics
}

type App struct {
	Name     string `env:"APP_NAME" envDefault:"buyback"`
	Version  string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	NoColor  bool   `env:"LOG_NO_COLOR"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen  int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
	AdminToken      string        `env:"ADMIN_TOKEN,notEmpty" json:"-"`
	UserEmailHeader string        `env:"USER_EMAIL_HEADER" envDefault:"X-User-Email"`
}

type Catalog struct {
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
}

type Probe struct {
	ListenAddress string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	CheckTimeout  time.Duration `env:"PROBE_CHECK_TIMEOUT" envDefault:"2s"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

// Load читает .env, если он есть, и окружение процесса.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}

// Migrate нужен только утилите миграции: ей не требуются токены и адреса сервисов.
type Migrate struct {
	App      App
	Postgres Postgres
}

func LoadMigrate() (Migrate, error) {
	_ = godotenv.Load()

	var config Migrate

	if err := env.Parse(&config); err != nil {
		return Migrate{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}

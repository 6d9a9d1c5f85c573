package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"buyback/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://buyback@localhost:5432/buyback")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("THROTTLE_LIMIT", "7")

	r := require.New(t)

	cfg, err := config.Load()
	r.NoError(err)
	r.Equal(":8080", cfg.HTTP.ListenAddress)
	r.Equal("X-User-Email", cfg.HTTP.UserEmailHeader)
	r.Equal(7, cfg.Throttle.Limit)
	r.Equal(100, cfg.Throttle.AdminListLimit)
	r.Equal(60*time.Second, cfg.Throttle.TTL)
	r.Equal(5*time.Minute, cfg.Catalog.CacheTTL)
	r.False(cfg.Bot.Enabled)

	redisWorker := cfg.Redis.AsynqServer(cfg.Worker)
	r.Equal(5, redisWorker.Concurrency)
	r.Equal("localhost:6379", redisWorker.RedisClientOpt().Addr)
}

func TestLoad_RequiresAdminToken(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://buyback@localhost:5432/buyback")
	t.Setenv("ADMIN_TOKEN", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadMigrate(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://buyback@localhost:5432/buyback")
	t.Setenv("ADMIN_TOKEN", "")

	r := require.New(t)

	cfg, err := config.LoadMigrate()
	r.NoError(err)
	r.Equal("postgres://buyback@localhost:5432/buyback", cfg.Postgres.DSN)
	r.Equal("buyback", cfg.App.Name)
}

package config

import (
	"time"

	"buyback/pkg/application/connectors"
	"buyback/pkg/application/modules"
)

type Redis struct {
	Address            string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}

func (r Redis) Connector() *connectors.Redis {
	return &connectors.Redis{
		Address:            r.Address,
		Username:           r.Username,
		Password:           r.Password,
		DatabaseNumber:     r.DatabaseNumber,
		PoolSize:           r.PoolSize,
		MinIdleConnections: r.MinIdleConnections,
		MaxIdleConnections: r.MaxIdleConnections,
	}
}

// Worker настраивает обработчик очереди уведомлений.
type Worker struct {
	Concurrency     int           `env:"WORKER_CONCURRENCY" envDefault:"5"`
	ShutdownTimeout time.Duration `env:"WORKER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (r Redis) AsynqServer(w Worker) modules.AsynqServer {
	return modules.AsynqServer{
		RedisAddress:    r.Address,
		RedisUsername:   r.Username,
		RedisPassword:   r.Password,
		RedisDB:         r.DatabaseNumber,
		Concurrency:     w.Concurrency,
		ShutdownTimeout: w.ShutdownTimeout,
	}
}

// Throttle задаёт лимиты на IP в окне фиксированной длины.
type Throttle struct {
	Limit          int           `env:"THROTTLE_LIMIT" envDefault:"20"`
	TTL            time.Duration `env:"THROTTLE_TTL" envDefault:"60s"`
	AdminListLimit int           `env:"THROTTLE_ADMIN_LIST_LIMIT" envDefault:"100"`
}

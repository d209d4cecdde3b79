package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Agent    Agent
	Storage  Storage
	Postgres Postgres
	SQLite   SQLite
	Redis    Redis
	Bot      Bot
	Asynq    Asynq
}

type App struct {
	Name      string     `env:"APP_NAME" envDefault:"flipper"`
	Version   string     `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
}

type HTTP struct {
	ListenAddress        string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout    time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	CORSAllowedOrigins   []string      `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogFieldMaxLen       int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"2048"`
	MaskSensitiveData    bool          `env:"HTTP_MASK_SENSITIVE_DATA" envDefault:"true"`
}

type Agent struct {
	Budget            float64       `env:"AGENT_BUDGET" envDefault:"5000"`
	MinScore          float64       `env:"AGENT_MIN_SCORE" envDefault:"60"`
	MinProfitMargin   float64       `env:"AGENT_MIN_PROFIT_MARGIN" envDefault:"0.20"`
	MinProfit         float64       `env:"AGENT_MIN_PROFIT" envDefault:"50"`
	MaxPerMarketplace int           `env:"AGENT_MAX_PER_MARKETPLACE" envDefault:"20"`
	Category          string        `env:"AGENT_CATEGORY" envDefault:"electronics"`
	AutoRelist        bool          `env:"AGENT_AUTO_RELIST" envDefault:"true"`
	ScanInterval      time.Duration `env:"AGENT_SCAN_INTERVAL" envDefault:"0s"`
	Concurrency       int           `env:"AGENT_VALUATION_CONCURRENCY" envDefault:"8"`
	NotifyQueueSize   int           `env:"AGENT_NOTIFY_QUEUE_SIZE" envDefault:"100"`
	ReferenceCacheTTL time.Duration `env:"AGENT_REFERENCE_CACHE_TTL" envDefault:"10m"`
}

type Storage struct {
	// Driver is one of memory, redis, postgres, sqlite.
	Driver string `env:"STORAGE_DRIVER" envDefault:"memory"`
}

type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"flipper.db"`
}

type Redis struct {
	Address            string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}

// Bot alerts are disabled when Token is empty.
type Bot struct {
	Token  string `env:"BOT_TOKEN" json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

type Asynq struct {
	Enabled bool `env:"ASYNQ_ENABLED" envDefault:"false"`
	// Cron is the schedule spec of the periodic scan task.
	Cron        string `env:"ASYNQ_SCAN_CRON" envDefault:"@every 5m"`
	Concurrency int    `env:"ASYNQ_CONCURRENCY" envDefault:"1"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres, StorageSQLite:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Storage.Driver == StoragePostgres && c.Postgres.DSN == "" {
		return errors.New("PG_DSN is required for the postgres storage driver")
	}

	if c.Bot.Token != "" && c.Bot.ChatID == 0 {
		return errors.New("BOT_CHAT_ID is required when BOT_TOKEN is set")
	}

	if c.Agent.Budget < 0 {
		return errors.New("AGENT_BUDGET must not be negative")
	}

	return nil
}

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

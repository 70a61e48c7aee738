package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// PathEnv переменная окружения, переопределяющая путь к config.toml
const PathEnv = "SCHEDULER_CONFIG"

// Переменные окружения для секретов, которые не хранятся в config.toml
const (
	envDBPassword    = "SCHEDULER_DB_PASSWORD"
	envRedisPassword = "SCHEDULER_REDIS_PASSWORD"
	envHTTPPort      = "SCHEDULER_HTTP_PORT"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Outbox    OutboxConfig    `toml:"outbox"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MaxTxAttempts   int    `toml:"max_tx_attempts"`   // повторы сериализуемых транзакций
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig пустой Addr отключает Redis: без идемпотентности и без драйвера redis
type RedisConfig struct {
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	IdempotencyTTL int    `toml:"idempotency_ttl"` // секунды
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type NotifierConfig struct {
	Driver   string `toml:"driver"` // log, http или redis
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"` // секунды
	QueueKey string `toml:"queue_key"`
}

type OutboxConfig struct {
	Enabled     bool `toml:"enabled"`
	Interval    int  `toml:"interval"` // секунды
	Timeout     int  `toml:"timeout"`  // секунды
	BatchSize   int  `toml:"batch_size"`
	MaxAttempts int  `toml:"max_attempts"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// RateLimitConfig ограничение запросов на запись для одного клиента
type RateLimitConfig struct {
	Enabled   bool    `toml:"enabled"`
	PerSecond float64 `toml:"per_second"`
	Burst     int     `toml:"burst"`
}

// Default конфигурация для локального запуска
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduling",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MaxTxAttempts:   3,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			IdempotencyTTL: 86400,
		},
		Notifier: NotifierConfig{
			Driver:   "log",
			Timeout:  5,
			QueueKey: "scheduling:notifications",
		},
		Outbox: OutboxConfig{
			Enabled:     true,
			Interval:    5,
			Timeout:     10,
			BatchSize:   50,
			MaxAttempts: 5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "ds_scheduling_service",
			Path:        "/metrics",
		},
		RateLimit: RateLimitConfig{
			Enabled:   true,
			PerSecond: 5,
			Burst:     10,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию.
// Путь из SCHEDULER_CONFIG имеет приоритет, секреты можно задать через .env
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(PathEnv); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv(envHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, envHTTPPort, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	case c.Database.Host == "" || c.Database.DBName == "":
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	case c.Database.MaxOpenConns <= 0:
		return fmt.Errorf("%w: database.max_open_conns must be positive", ErrInvalidConfig)
	case c.Metrics.Enabled && c.Metrics.Path == "":
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	case c.RateLimit.Enabled && (c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0):
		return fmt.Errorf("%w: rate_limit.per_second and rate_limit.burst must be positive", ErrInvalidConfig)
	}

	switch c.Notifier.Driver {
	case "log":
	case "http":
		if c.Notifier.URL == "" {
			return fmt.Errorf("%w: notifier.url is required for http driver", ErrInvalidConfig)
		}
	case "redis":
		if !c.Redis.Enabled() {
			return fmt.Errorf("%w: redis.addr is required for redis driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifier.driver %q", ErrInvalidConfig, c.Notifier.Driver)
	}

	return nil
}

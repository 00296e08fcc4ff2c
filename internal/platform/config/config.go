// Package config は環境変数からアプリケーション設定を読み込みます。
// 設定は起動時に一度だけ構築し、以降は各コンストラクタへ値として渡します。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTP     HTTPConfig
	Database DBConfig
	Gemini   GeminiConfig
	Security SecurityConfig
	Redis    RedisConfig
}

// HTTPConfig はHTTPサーバーの設定です。
type HTTPConfig struct {
	Port              uint16        `env:"HTTP_PORT" env-default:"8000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DBConfig はデータストアの設定です。
// Driver が "sqlite" の場合は Path、"postgres" の場合は DSN を使用します。
type DBConfig struct {
	Driver         string        `env:"DB_DRIVER" env-default:"sqlite"`
	Path           string        `env:"DB_PATH" env-default:"kuber_ai.db"`
	DSN            string        `env:"DB_DSN"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" env-default:"4"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"30s"`
}

// GeminiConfig はGemini API呼び出しの設定です。
// RateLimit は1分あたりのモデル呼び出し上限で、0 は無制限です。
type GeminiConfig struct {
	APIKey      string        `env:"GEMINI_API_KEY" env-required:"true"`
	Model       string        `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	Temperature float32       `env:"GEMINI_TEMPERATURE" env-default:"0.2"`
	Timeout     time.Duration `env:"GEMINI_TIMEOUT" env-default:"30s"`
	BaseURL     string        `env:"GEMINI_BASE_URL"`
	RateLimit   int           `env:"GEMINI_RATE_LIMIT" env-default:"0"`
}

// SecurityConfig は受信リクエストの認証設定です。
type SecurityConfig struct {
	APIKey string `env:"API_KEY" env-required:"true"`
}

// RedisConfig はRedisの設定です。Host が空の場合Redisは無効です。
type RedisConfig struct {
	Host           string        `env:"REDIS_HOST"`
	Port           string        `env:"REDIS_PORT" env-default:"6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
}

// Enabled はRedisが設定されているかを返します。
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr は host:port 形式のアドレスを返します。
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load は環境変数から設定を読み込みます。
// 必須項目（GEMINI_API_KEY, API_KEY）が無い場合はエラーを返します。
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	// cleanenv は空文字で設定された必須項目を通してしまうため明示的に確認する
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if cfg.Security.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is not set")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER is postgres")
	}
	return &cfg, nil
}

// MustLoad は .env を読み込んだ上で設定を構築し、失敗した場合はプロセスを終了します。
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

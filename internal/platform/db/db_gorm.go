// Package db はGORMによるデータベース接続とスキーマ作成を提供します。
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	goldadapters "kuber_backend/internal/feature/gold/adapters"
	"kuber_backend/internal/platform/config"
)

const (
	// retryInterval は接続失敗時の再試行間隔です。
	retryInterval = 3 * time.Second
	// sqliteBusyTimeoutMS はSQLiteのロック待ち時間（ミリ秒）です。
	sqliteBusyTimeoutMS = 5000
)

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からドライバーに渡すDSN文字列を生成します。
// SQLite ではファイルパスにbusy timeoutを付け、PostgreSQL では DSN をそのまま使います。
func BuildDSN(cfg config.DBConfig) string {
	if cfg.Driver == "postgres" {
		return cfg.DSN
	}
	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", cfg.Path, sep, sqliteBusyTimeoutMS)
}

// OpenerFor はドライバー名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ConnectWithRetry は timeout を超えるまで retryInterval ごとに接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open はデータベースに接続し、接続プールを設定した上でスキーマを作成します。
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	slog.Info("database ready", "driver", cfg.Driver)
	return db, nil
}

// Migrate は users と gold_orders テーブルを作成します。既に存在する場合は何もしません。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&goldadapters.UserModel{},
		&goldadapters.GoldOrderModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

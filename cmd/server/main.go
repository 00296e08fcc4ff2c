package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"kuber_backend/internal/app/di"
	"kuber_backend/internal/app/router"
	chathandler "kuber_backend/internal/feature/chat/transport/handler"
	chatusecase "kuber_backend/internal/feature/chat/usecase"
	goldadapters "kuber_backend/internal/feature/gold/adapters"
	goldhandler "kuber_backend/internal/feature/gold/transport/handler"
	goldusecase "kuber_backend/internal/feature/gold/usecase"
	"kuber_backend/internal/platform/config"
	platformdb "kuber_backend/internal/platform/db"
	"kuber_backend/internal/platform/logger"
	platformredis "kuber_backend/internal/platform/redis"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting kuber backend", slog.String("env", cfg.Env))

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// run は依存関係を組み立ててHTTPサーバーを起動し、シグナルを受けるまでブロックします。
// エラーで戻る場合も defer したクローズ処理は実行されます。
func run(cfg *config.Config, log *slog.Logger) error {
	// db
	db, err := platformdb.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("failed to close database", slog.Any("error", err))
			}
		}
	}()

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
			log.Warn("Redis unavailable. Idempotency-Key will be ignored.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", slog.Any("error", err))
				}
			}()
		}
	}

	// Model
	model, err := di.NewChatModel(context.Background(), cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	// Repository
	goldStore := goldadapters.NewGoldStore(db)
	idem := di.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// Usecase
	chatUC := chatusecase.NewChatUsecase(model)
	goldUC := goldusecase.NewGoldUsecase(goldStore, idem)

	// Handler
	chatH := chathandler.NewChatHandler(chatUC)
	goldH := goldhandler.NewGoldHandler(goldUC)

	// ルータ生成
	r := router.NewRouter(log, cfg.Security.APIKey, chatH, goldH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           r,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("failed to run server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to gracefully shutdown HTTP server: %w", err)
	}
	return nil
}

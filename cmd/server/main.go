package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/api/handler"
	"police-personnel/internal/api/router"
	"police-personnel/internal/repository"
	"police-personnel/internal/service"
	"police-personnel/pkg/database"
	"police-personnel/pkg/jwt"
	applogger "police-personnel/pkg/logger"
	"police-personnel/pkg/redis"
)

const sessionSweepInterval = time.Hour

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("PERSONNEL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// 4. Redis (optional: the server runs without it)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without token blacklist, rate limit and cache", zap.Error(err))
			rdb = nil
		}
	}

	// 5. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, rdb, logger)
	h := handler.NewHandler(cfg, svc, logger)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, svc.Auth, rdb, db, logger)

	// 6. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, repo, logger)

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("close redis failed", zap.Error(err))
	}

	logger.Info("server stopped")
}

// sweepSessions removes expired session rows until ctx ends.
func sweepSessions(ctx context.Context, repo *repository.Repository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.Session.DeleteExpired(ctx, now)
			if err != nil {
				logger.Warn("expired session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}

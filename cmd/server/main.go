package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/scouting-api/internal/auth"
	"github.com/Clark-Hu/scouting-api/internal/config"
	httpserver "github.com/Clark-Hu/scouting-api/internal/http"
	"github.com/Clark-Hu/scouting-api/internal/logging"
	"github.com/Clark-Hu/scouting-api/internal/metrics"
	"github.com/Clark-Hu/scouting-api/internal/rating"
	"github.com/Clark-Hu/scouting-api/internal/repository"
	"github.com/Clark-Hu/scouting-api/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		logger.Fatal("connect database", "error", err)
	}
	defer st.Close()

	m := metrics.New()
	m.RegisterPool(st.Stats)

	repo := repository.New(st)
	ratings := rating.NewService(repo.Ratings, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	server := httpserver.New(cfg, st, repo, ratings, tokens, m, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", "error", err)
	}
}

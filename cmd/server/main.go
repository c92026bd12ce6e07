package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/config"
	"github.com/jaminalder/neko-gomoku/internal/domain"
	"github.com/jaminalder/neko-gomoku/internal/logging"
	"github.com/jaminalder/neko-gomoku/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Validate already vetted both values.
	mode, _ := app.ParseMode(cfg.DefaultMode)
	difficulty, _ := domain.ParseDifficulty(cfg.DefaultDifficulty)

	svc := app.NewService(app.Options{
		AIDelay: cfg.AIDelay,
		Rand:    domain.NewLockedRand(uint64(time.Now().UnixNano())),
	}, log.Named("game"))

	handler := web.NewServer(svc, web.Options{
		Heartbeat:         cfg.Heartbeat,
		DefaultMode:       mode,
		DefaultDifficulty: difficulty,
	}, log.Named("http"))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go sweep(sigCtx, svc, cfg.GameTTL)

	log.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.Stringer("default_mode", mode),
		zap.Stringer("default_difficulty", difficulty))
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Error("server error", zap.Error(err))
		}
	}

	// Streams only end when their subscriptions close.
	svc.Close()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error("forced close failed", zap.Error(closeErr))
		}
	}
	return runErr
}

// sweep drops idle games until ctx ends.
func sweep(ctx context.Context, svc *app.Service, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Sweep(ttl)
		}
	}
}

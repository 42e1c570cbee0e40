package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/summitkit/checkin/internal/checkin"
	"github.com/summitkit/checkin/internal/config"
	"github.com/summitkit/checkin/internal/database"
	"github.com/summitkit/checkin/internal/migrations"
	"github.com/summitkit/checkin/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating db directory: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.RunWithLogger(db, logger); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	kv := server.NewKVStore(db)

	// --- Check-in ---
	ctrl, err := checkin.NewController(ctx, checkin.Options{
		Storage:        kv,
		Key:            cfg.StorageKey,
		Goal:           cfg.Goal,
		GreetingTTL:    cfg.GreetingTTL,
		CelebrationTTL: cfg.CelebrationTTL,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("starting check-in: %w", err)
	}
	st := ctrl.State()
	logger.Info("attendance loaded", "total", st.Total, "goal", cfg.Goal, "celebrated", st.GoalCelebrated)

	admin, err := server.NewAdminStore(db, cfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("configuring admin: %w", err)
	}
	if admin == nil {
		logger.Info("admin routes disabled", "reason", "ADMIN_PASSWORD_HASH not set")
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Controller: ctrl,
		Checks:     map[string]server.Checker{"sqlite": kv},
		Admin:      admin,
		EventName:  cfg.EventName,
		PublicURL:  cfg.PublicURL,
		StaticDir:  cfg.StaticDir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

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

	"packmates/internal/adapters/auth/jwtauth"
	"packmates/internal/config"
	"packmates/internal/jobs"
	"packmates/internal/platform/factory"
	"packmates/internal/platform/logger"
	"packmates/internal/ports/auth"
	"packmates/internal/router"

	"github.com/spf13/cobra"
)

var (
	configFlag string
	rootCmd    = &cobra.Command{
		Use:   "packmates",
		Short: "PackMates calendar API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "YAML config file (default $PACKMATES_CONFIG)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.AddCommand(serveCmd)

	// sin subcomando => serve
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply storage schema / indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	stores, err := factory.NewStores(ctx, cfg, true, log)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	log.Info("migrations applied", map[string]any{"driver": cfg.DBDriver})
	return nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	stores, err := factory.NewStores(ctx, cfg, true, log)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	locks, closeLocks := factory.NewLocker(cfg)
	defer func() { _ = closeLocks() }()

	var verifier auth.AuthVerifier // nil => modo dev
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("JWT secret not set: running in dev auth mode (X-Debug-User-ID)", nil)
	}

	handler, svcs := router.Build(router.Options{
		AuthVerifier:   verifier,
		CalendarRepo:   stores.Calendar,
		PetsRepo:       stores.Pets,
		Locker:         locks,
		Logger:         log,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	var sched *jobs.Scheduler
	if cfg.PurgeCron != "" {
		sched = jobs.NewScheduler(log)
		if err := sched.SchedulePurge(cfg.PurgeCron, cfg.PurgeRetention, svcs.Calendar); err != nil {
			return err
		}
		sched.Start()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "driver": cfg.DBDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obahii/data-cleaning/internal/audit"
	"github.com/obahii/data-cleaning/internal/config"
	"github.com/obahii/data-cleaning/internal/db"
	"github.com/obahii/data-cleaning/internal/logging"
	"github.com/obahii/data-cleaning/internal/notify"
	"github.com/obahii/data-cleaning/internal/runner"
	"github.com/obahii/data-cleaning/internal/store"
)

// app carries what every subcommand shares once PersistentPreRunE has run.
type app struct {
	cfg *config.Config
	log *zap.Logger

	logDir   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "cleaner",
		Short:        "Clean applicant CSV exports",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.logDir, "log-dir", "", "log directory (overrides CLEANER_LOG_DIR)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides CLEANER_LOG_LEVEL)")

	root.AddCommand(newRunCmd(a), newServeCmd(a), newCityCmd(a))
	return root
}

// init loads the configuration, applies the persistent flags and builds the
// logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cmd.Flags().Changed("log-dir") {
		cfg.LogDir = a.logDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := logging.New(logging.Options{Dir: cfg.LogDir, File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// sinks connects every configured sink and returns the worker options for
// them. A sink that cannot be reached at startup is an error; once running,
// sink failures only warn. closeAll is safe to call on error.
func (a *app) sinks(ctx context.Context) (opts []runner.Option, closeAll func(), err error) {
	var closers []func()
	closeAll = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if a.cfg.AuditDBPath != "" {
		trail, err := audit.Open(a.cfg.AuditDBPath)
		if err != nil {
			return nil, closeAll, fmt.Errorf("audit store: %w", err)
		}
		closers = append(closers, func() { _ = trail.Close() })
		opts = append(opts, runner.WithTrail(trail))
		a.log.Info("audit store opened", zap.String("path", a.cfg.AuditDBPath))
	}

	if a.cfg.DatabaseURL != "" {
		a.log.Info("connecting to PostgreSQL")
		pool, err := db.NewPostgresPool(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, closeAll, fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		sink := store.NewSink(pool)
		if err := sink.EnsureSchema(ctx); err != nil {
			return nil, closeAll, fmt.Errorf("postgres: %w", err)
		}
		opts = append(opts, runner.WithSink(sink))
		a.log.Info("PostgreSQL connected")
	}

	if a.cfg.RedisURL != "" {
		a.log.Info("connecting to Redis")
		rdb, err := db.NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return nil, closeAll, fmt.Errorf("redis: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		opts = append(opts, runner.WithNotifier(notify.NewPublisher(rdb)))
		a.log.Info("Redis connected")
	}

	return opts, closeAll, nil
}

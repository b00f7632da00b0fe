package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/obahii/data-cleaning/internal/runner"
	"github.com/obahii/data-cleaning/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Clean on a schedule and serve health endpoints until stopped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := a.cfg

	// ── Sinks ────────────────────────────────────────────────────────────────
	opts, closeSinks, err := a.sinks(ctx)
	defer closeSinks()
	if err != nil {
		return err
	}

	var lis net.Listener
	if cfg.GRPCPort != "" {
		if lis, err = net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort)); err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	status := &runStatus{Runner: runner.NewWorker(a.log.Named("worker"), opts...)}
	job := runner.Job{Input: cfg.InputPath, Output: cfg.OutputPath}
	sched := scheduler.New(status, job, cfg.Schedule, a.log.Named("scheduler"))

	g, gctx := errgroup.WithContext(ctx)

	// ── Scheduler ────────────────────────────────────────────────────────────
	if cfg.Schedule != "" {
		if err := sched.Start(gctx); err != nil {
			return err
		}
		defer sched.Stop()
	}
	if cfg.Watch {
		g.Go(func() error { return sched.Watch(gctx, scheduler.DefaultDebounce) })
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", status.healthHandler)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		a.log.Info("http listening", zap.String("version", version), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// ── gRPC health ──────────────────────────────────────────────────────────
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	if lis != nil {
		hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		g.Go(func() error {
			a.log.Info("grpc listening", zap.String("addr", lis.Addr().String()))
			if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	// ── Graceful shutdown ────────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		hs.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		gs.GracefulStop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("http shutdown", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	a.log.Info("stopped")
	return err
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openbp/openbp/pkg/reading"
	"github.com/openbp/openbp/server/internal/api"
	"github.com/openbp/openbp/server/internal/auth"
	"github.com/openbp/openbp/server/internal/config"
	"github.com/openbp/openbp/server/internal/metrics"
	"github.com/openbp/openbp/server/internal/store"
	"github.com/openbp/openbp/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("openbp-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	lvl, _ := cfg.Server.Log.SlogLevel()
	level.Set(lvl)

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"readings_path", cfg.Server.Readings.Path,
		"readings_watch", cfg.Server.Readings.Watch,
		"stream_interval", cfg.Server.Stream.Interval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Readings store, filled from the exported readings file.
	st := store.New(reading.SystemClock)
	rs, err := store.LoadFile(cfg.Server.Readings.Path)
	if err != nil {
		slog.Error("failed to load readings", "err", err)
		os.Exit(1)
	}
	if err := st.Replace(rs); err != nil {
		slog.Error("failed to load readings", "err", err)
		os.Exit(1)
	}
	if latest, ok := st.Latest(); ok {
		slog.Info("readings loaded", "count", st.Count(), "latest", latest)
	} else {
		slog.Warn("readings file is empty", "path", cfg.Server.Readings.Path)
	}

	// WebSocket hub — pushes readings to clients every stream interval.
	hub := ws.New(st, cfg.Server.Stream.Interval)
	go hub.Run(ctx)

	// Reload the readings file on change and push the result right away.
	if cfg.Server.Readings.Watch {
		go func() {
			err := store.Watch(ctx, cfg.Server.Readings.Path, applyReload(st, hub))
			if err != nil {
				slog.Error("readings watcher stopped", "err", err)
			}
		}()
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st))
	httpMux.Handle("/metrics", metrics.Handler(st))
	httpMux.Handle("/ws/stream", hub)

	requireKey := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           requireKey(httpMux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("openbp-server shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

type broadcaster interface {
	Broadcast()
}

// applyReload returns the watcher callback: it swaps the store content and
// pushes a snapshot. Rejected content leaves the store and clients untouched.
func applyReload(st *store.Store, b broadcaster) func([]reading.Reading) {
	return func(rs []reading.Reading) {
		if err := st.Replace(rs); err != nil {
			slog.Error("store: rejected reload, keeping previous readings", "err", err)
			return
		}
		b.Broadcast()
	}
}

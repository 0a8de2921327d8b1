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

	"idlepark/internal/config"
	"idlepark/internal/game"
	"idlepark/internal/save"
	"idlepark/internal/server"
	"idlepark/internal/serverapp"
	"idlepark/internal/telemetry"
)

func main() {
	logger := log.Default()

	cfgPath := os.Getenv("IDLEPARK_CONFIG")
	if cfgPath == "" {
		cfgPath = "idlepark_config.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	repo, err := save.OpenSQLite(cfg.Data.Path)
	if err != nil {
		logger.Fatalf("open save store: %v", err)
	}
	defer repo.Close()

	events := telemetry.NewMemoryRepository()
	engine := game.NewEngine(game.Options{
		Balance:   cfg.EffectiveBalance(),
		Repo:      repo,
		Logger:    logger,
		Telemetry: events,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loaded, err := engine.Load(ctx)
	if err != nil {
		logger.Fatalf("load save: %v", err)
	}
	if loaded {
		engine.ReconcileOffline()
	} else if err := engine.SaveNow(ctx); err != nil {
		logger.Fatalf("write initial save: %v", err)
	}

	hub := server.NewHub()
	go hub.Run()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- engine.Run(ctx, cfg.TickInterval(), cfg.AutoSaveInterval())
	}()

	// Live stats pulse for websocket clients.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				hub.BroadcastJSON("park_stats", engine.Stats())
			}
		}
	}()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:    cfg,
		Engine:    engine,
		Hub:       hub,
		Telemetry: events,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
	go func() {
		logger.Printf("idlepark listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	if err := <-loopDone; err != nil {
		logger.Printf("final save: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	api "biblioteca-gateway/internal/api/http"
	"biblioteca-gateway/internal/cache"
	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/config"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/jobs"
	"biblioteca-gateway/internal/logger"
	"biblioteca-gateway/internal/scheduler"
	"biblioteca-gateway/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Biblioteca Gateway...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Upstream configuration", "base_url", cfg.Upstream.BaseURL, "timeout_seconds", cfg.Upstream.TimeoutSeconds)

	// Upstream library server client
	upstream := client.NewHTTPClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)

	// Cross-view refresh bus and reference-data cache
	bus := events.NewBus()
	refCache := cache.NewReferenceCache(upstream, upstream)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refCache.Watch(ctx, bus)

	// Loan edit sessions
	sessions := session.NewStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)

	// Scheduled maintenance: polling-fallback cache refresh, session expiry
	jobRunner := jobs.NewJobRunner(refCache, sessions, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(api.Deps{
		LoanAPI:  upstream,
		Refs:     refCache,
		Sessions: sessions,
		Bus:      bus,
		Now:      time.Now,
	})

	srv := &http.Server{
		Addr:        cfg.GetServerAddress(),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// No write timeout: /api/events holds a long-lived SSE stream.
	}

	logger.Info("Gateway HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

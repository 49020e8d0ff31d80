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

	"regional-airports/flightboard/internal/api"
	"regional-airports/flightboard/internal/config"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/metrics"
	"regional-airports/flightboard/internal/registry"
	"regional-airports/flightboard/internal/routes"
	"regional-airports/flightboard/internal/workers"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flight board starting up",
		"environment", cfg.AppEnv,
		"default_airport", cfg.DefaultAirport,
		"airports", len(registry.AirportCodes()),
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if !registry.IsRegistered(cfg.DefaultAirport) {
		logging.Warn("DEFAULT_AIRPORT is not a registered airport", "default_airport", cfg.DefaultAirport)
	}

	deps, err := api.InitDependencies(cfg, metrics.Default())
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logging.Warn("Failed to close shared feed store", "error", err.Error())
		}
	}()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.InitWorkers(workerCtx, deps.FlightSvc, cfg.FeedRefresh)

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, upSince)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			logging.Error("Server failed", "error", err.Error())
			return
		}
	case sig := <-stop:
		logging.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
		return
	}
	logging.Info("Server stopped")
}

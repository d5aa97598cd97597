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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/clients/elevation"
	"github.com/pedalpath/server/internal/clients/graphhopper"
	"github.com/pedalpath/server/internal/clients/osrm"
	"github.com/pedalpath/server/internal/clients/valhalla"
	"github.com/pedalpath/server/internal/config"
	"github.com/pedalpath/server/internal/planner"
	"github.com/pedalpath/server/internal/routing"
	"github.com/pedalpath/server/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting pedalpath server", zap.Int("port", cfg.Server.Port))

	orchestrator := buildOrchestrator(cfg, logger)
	store := services.NewStore(cfg.Server.StoreLimit)
	routesService := services.NewRoutesService(orchestrator, store, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	routesService.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// buildOrchestrator assembles the provider chain in priority order from
// the enabled backends, always terminated by the local generator.
func buildOrchestrator(cfg *config.Config, logger *zap.Logger) *routing.Orchestrator {
	var providers []routing.Provider

	if cfg.Providers.Valhalla.Enabled {
		providers = append(providers, valhalla.NewClient(valhalla.Config{
			BaseURL: cfg.Providers.Valhalla.BaseURL,
			Timeout: cfg.Providers.Valhalla.Timeout,
		}, logger))
	}
	if cfg.Providers.GraphHopper.Enabled {
		providers = append(providers, graphhopper.NewClient(graphhopper.Config{
			BaseURL: cfg.Providers.GraphHopper.BaseURL,
			APIKey:  cfg.Providers.GraphHopper.APIKey,
			Timeout: cfg.Providers.GraphHopper.Timeout,
		}, logger))
	}
	if cfg.Providers.OSRM.Enabled {
		providers = append(providers, osrm.NewClient(osrm.Config{
			BaseURL: cfg.Providers.OSRM.BaseURL,
			Timeout: cfg.Providers.OSRM.Timeout,
		}, logger))
	}
	providers = append(providers, routing.NewLocalFallback())

	var wp routing.WaypointPlanner
	if cfg.Planner.Enabled && cfg.Planner.APIKey != "" {
		wp = planner.New(planner.Config{
			APIKey:  cfg.Planner.APIKey,
			Model:   cfg.Planner.Model,
			BaseURL: cfg.Planner.BaseURL,
			Timeout: cfg.Planner.Timeout,
		}, logger)
	}

	var es routing.ElevationSource
	if cfg.Elevation.Enabled {
		es = elevation.NewClient(elevation.Config{
			BaseURL: cfg.Elevation.BaseURL,
			Timeout: cfg.Elevation.Timeout,
		}, logger)
	}

	return routing.NewOrchestrator(providers, wp, es, logger)
}

// Package main provides the long-running ingestion daemon: periodic
// schedule re-syncs through the cache, cache sweeps, and the health
// and metrics endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/health"
	"github.com/yourusername/gridiron-oracle/internal/logger"
	"github.com/yourusername/gridiron-oracle/internal/metrics"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/provider"
	"github.com/yourusername/gridiron-oracle/internal/repository"
	"github.com/yourusername/gridiron-oracle/internal/scheduler"
	"github.com/yourusername/gridiron-oracle/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	if len(cfg.Ingest.Teams) == 0 {
		log.Fatal("No teams configured under ingest.teams")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduleProvider, err := buildScheduleProvider(cfg, log)
	if err != nil {
		log.Fatalf("Failed to build provider: %v", err)
	}
	repos := repository.NewRepositories()

	scheduleCache := cache.New[[]models.Game]("schedule", cfg.Cache.ScheduleTTL())
	oddsCache := cache.New[models.BettingOdds]("odds", cfg.Cache.OddsTTL())

	scheduleSvc := service.NewScheduleService(scheduleProvider, scheduleCache, repos.Game, cfg.Provider.Timeout(), log)

	sched := scheduler.NewScheduler(scheduleSvc, log)
	if err := sched.ScheduleSeasonSync(cfg.Ingest.SyncSchedule, cfg.Ingest.Teams, cfg.Ingest.Season); err != nil {
		log.Fatalf("Failed to schedule season sync: %v", err)
	}
	if err := sched.ScheduleCacheSweep(cfg.Cache.SweepInterval(), scheduleCache, oddsCache); err != nil {
		log.Fatalf("Failed to schedule cache sweep: %v", err)
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        fmt.Sprintf("%d", cfg.Ingest.HealthPort),
		Logger:      log,
		CacheStats: func() map[string]cache.Stats {
			return map[string]cache.Stats{
				scheduleCache.Name(): scheduleCache.Stats(),
				oddsCache.Name():     oddsCache.Stats(),
			}
		},
	})
	if err := healthServer.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}

	// Initial sync before declaring readiness.
	for _, team := range cfg.Ingest.Teams {
		if _, err := scheduleSvc.Games(ctx, team, cfg.Ingest.Season); err != nil {
			log.WithError(err).WithField("team", team).Warn("Initial sync failed")
		}
	}

	sched.Start()
	healthServer.SetReady(true)
	log.WithFields(logrus.Fields{
		"teams":  len(cfg.Ingest.Teams),
		"season": cfg.Ingest.Season,
	}).Info("Ingestion daemon running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.WithField("signal", sig.String()).Info("Shutting down")

	healthServer.SetReady(false)
	sched.Stop()
	cancel()
}

// buildScheduleProvider selects the upstream: a JSON API when base_url
// is configured, local fixtures otherwise.
func buildScheduleProvider(cfg *config.Config, log *logrus.Logger) (provider.ScheduleProvider, error) {
	if cfg.Provider.BaseURL != "" {
		client := provider.NewRateLimitedHTTPClient(provider.HTTPClientConfig{
			Timeout:           cfg.Provider.Timeout(),
			MaxRetries:        cfg.Provider.MaxRetries,
			RetryWaitMin:      100 * time.Millisecond,
			RetryWaitMax:      5 * time.Second,
			RateLimit:         cfg.Provider.RateLimit,
			CircuitBreakerMax: 5,
		}, log)
		return provider.NewHTTPProvider(cfg.Provider.BaseURL, cfg.Provider.APIKey, client, log), nil
	}
	if cfg.Provider.FixturesPath == "" {
		return nil, fmt.Errorf("neither provider.base_url nor provider.fixtures_path is configured")
	}
	return provider.NewFileProvider(cfg.Provider.FixturesPath), nil
}

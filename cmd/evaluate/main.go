// Package main provides the evaluation CLI: it replays stored history
// through the predictor and reports calibration metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/logger"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/predictor"
	"github.com/yourusername/gridiron-oracle/internal/provider"
	"github.com/yourusername/gridiron-oracle/internal/repository"
	"github.com/yourusername/gridiron-oracle/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile   string
	teams        []string
	season       int
	fixturesPath string
	appLogger    *logrus.Logger
	cfg          *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringSliceVarP(&teams, "teams", "t", nil, "Team abbreviations to evaluate (required)")
	rootCmd.Flags().IntVarP(&season, "season", "s", time.Now().Year(), "Season year")
	rootCmd.Flags().StringVarP(&fixturesPath, "fixtures", "f", "", "Override path to schedule fixtures JSON")
	_ = rootCmd.MarkFlagRequired("teams")
}

var rootCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate prediction calibration against recorded outcomes",
	Long: `Replays the stored seasons chronologically, predicting each completed
game from only the results that preceded it, then scores the stored
predictions: accuracy, Brier score, and log-loss.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluation(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runEvaluation(ctx context.Context) error {
	path := cfg.Provider.FixturesPath
	if fixturesPath != "" {
		path = fixturesPath
	}
	if path == "" {
		return fmt.Errorf("no fixtures path configured; set provider.fixtures_path or --fixtures")
	}

	fileProvider := provider.NewFileProvider(path)
	repos := repository.NewRepositories()
	scheduleCache := cache.New[[]models.Game]("schedule", cfg.Cache.ScheduleTTL())
	scheduleSvc := service.NewScheduleService(fileProvider, scheduleCache, repos.Game, cfg.Provider.Timeout(), appLogger)

	baseline := predictor.NewBaseline(repos.Game, cfg.Predictor, appLogger)
	adjuster := predictor.NewAdjuster(repos.Game, cfg.Predictor, appLogger)
	_ = service.NewPredictionService(baseline, adjuster, repos.Game, repos.Prediction, appLogger)

	completed, err := loadCompletedGames(ctx, scheduleSvc, repos.Game)
	if err != nil {
		return err
	}
	if len(completed) == 0 {
		return fmt.Errorf("no completed games found for teams %v in season %d", teams, season)
	}

	// Walk forward chronologically: predict each game from only the
	// results that preceded it, then reveal its outcome.
	replay := repository.NewRepositories()
	replayBaseline := predictor.NewBaseline(replay.Game, cfg.Predictor, appLogger)
	replayAdjuster := predictor.NewAdjuster(replay.Game, cfg.Predictor, appLogger)
	replaySvc := service.NewPredictionService(replayBaseline, replayAdjuster, replay.Game, replay.Prediction, appLogger)

	predicted := 0
	skipped := 0
	for _, game := range completed {
		pending := *game
		pending.Outcome = nil
		if err := replay.Game.Save(ctx, &pending); err != nil {
			return err
		}

		if _, err := replaySvc.Predict(ctx, game.ID, nil); err != nil {
			if errors.Is(err, models.ErrInsufficientHistory) {
				skipped++
			} else {
				return err
			}
		} else {
			predicted++
		}

		if err := replay.Game.Save(ctx, game); err != nil {
			return err
		}
	}

	first := completed[0].ScheduledDate
	last := completed[len(completed)-1].ScheduledDate
	result, err := replaySvc.EvaluateStored(ctx, first, last)
	if err != nil {
		return err
	}

	appLogger.WithFields(logrus.Fields{
		"version":     Version,
		"predicted":   predicted,
		"skipped":     skipped,
		"predictions": result.TotalPredictions,
		"correct":     result.CorrectCount,
		"accuracy":    result.Accuracy,
		"brier_score": result.BrierScore,
		"log_loss":    result.LogLoss,
	}).Info("Evaluation finished")
	return nil
}

func loadCompletedGames(ctx context.Context, svc *service.ScheduleService, games repository.GameRepository) ([]*models.Game, error) {
	for _, team := range teams {
		if _, err := svc.Games(ctx, team, season); err != nil {
			return nil, fmt.Errorf("failed to sync %s: %w", team, err)
		}
	}

	start := time.Date(season, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(season+1, 6, 30, 0, 0, 0, 0, time.UTC)
	all, err := games.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var completed []*models.Game
	for _, game := range all {
		if game.IsCompleted() {
			completed = append(completed, game)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].ScheduledDate.Before(completed[j].ScheduledDate)
	})
	return completed, nil
}

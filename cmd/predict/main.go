// Package main provides the entry point for the prediction CLI tool.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/logger"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/predictor"
	"github.com/yourusername/gridiron-oracle/internal/provider"
	"github.com/yourusername/gridiron-oracle/internal/repository"
	"github.com/yourusername/gridiron-oracle/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		home       = flag.String("home", "", "Home team abbreviation")
		away       = flag.String("away", "", "Away team abbreviation")
		season     = flag.Int("season", time.Now().Year(), "Season year")
		date       = flag.String("date", "", "Scheduled date (YYYY-MM-DD), defaults to next matchup found")
		fixtures   = flag.String("fixtures", "", "Override path to schedule/odds fixtures JSON")
		showOdds   = flag.Bool("odds", false, "Show market odds next to the model probability")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)
	ctx := context.Background()

	if *home == "" || *away == "" {
		log.Fatal("Both -home and -away are required")
	}
	fixturesPath := cfg.Provider.FixturesPath
	if *fixtures != "" {
		fixturesPath = *fixtures
	}
	if fixturesPath == "" {
		log.Fatal("No fixtures path configured; set provider.fixtures_path or -fixtures")
	}

	fileProvider := provider.NewFileProvider(fixturesPath)
	repos := repository.NewRepositories()

	scheduleCache := cache.New[[]models.Game]("schedule", cfg.Cache.ScheduleTTL())
	oddsCache := cache.New[models.BettingOdds]("odds", cfg.Cache.OddsTTL())

	scheduleSvc := service.NewScheduleService(fileProvider, scheduleCache, repos.Game, cfg.Provider.Timeout(), log)
	oddsSvc := service.NewOddsService(fileProvider, oddsCache, cfg.Provider.Timeout(), log)

	baseline := predictor.NewBaseline(repos.Game, cfg.Predictor, log)
	adjuster := predictor.NewAdjuster(repos.Game, cfg.Predictor, log)
	predictionSvc := service.NewPredictionService(baseline, adjuster, repos.Game, repos.Prediction, log)

	syncTeams(ctx, scheduleSvc, log, *home, *away, *season)

	game := findMatchup(ctx, repos.Game, log, *home, *away, *season, *date)
	prediction, err := predictionSvc.Predict(ctx, game.ID, nil)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientHistory) {
			log.Fatalf("Not enough historical data to predict %s vs %s: %v", *home, *away, err)
		}
		log.Fatalf("Prediction failed: %v", err)
	}

	fields := logrus.Fields{
		"home":             *home,
		"away":             *away,
		"home_probability": prediction.HomeWinProbability,
		"away_probability": prediction.AwayWinProbability(),
		"confidence":       prediction.Confidence,
		"winner":           prediction.PredictedWinner(),
	}
	if prediction.PredictedHomeScore != nil && prediction.PredictedAwayScore != nil {
		fields["predicted_score"] = logrus.Fields{
			"home": *prediction.PredictedHomeScore,
			"away": *prediction.PredictedAwayScore,
		}
	}
	log.WithFields(fields).Info(prediction.Reasoning)

	if *showOdds {
		reportMarketOdds(ctx, oddsSvc, log, *home, *away, prediction.HomeWinProbability)
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func syncTeams(ctx context.Context, svc *service.ScheduleService, log *logrus.Logger, home, away string, season int) {
	for _, team := range []string{home, away} {
		if _, err := svc.Games(ctx, team, season); err != nil {
			if errors.Is(err, models.ErrProviderUnavailable) {
				log.Fatalf("Schedule temporarily unavailable for %s, try again: %v", team, err)
			}
			log.Fatalf("Failed to sync schedule for %s: %v", team, err)
		}
	}
}

func findMatchup(ctx context.Context, games repository.GameRepository, log *logrus.Logger, home, away string, season int, date string) *models.Game {
	candidates, err := games.GetByTeamAndSeason(ctx, home, season)
	if err != nil {
		log.Fatalf("Failed to query games: %v", err)
	}

	var target time.Time
	if date != "" {
		target, err = time.Parse("2006-01-02", date)
		if err != nil {
			log.Fatalf("Invalid date: %v", err)
		}
	}

	var match *models.Game
	for _, game := range candidates {
		if game.HomeTeam.Abbreviation != home || game.AwayTeam.Abbreviation != away {
			continue
		}
		if date != "" && !sameDay(game.ScheduledDate, target) {
			continue
		}
		if match == nil || game.ScheduledDate.Before(match.ScheduledDate) {
			match = game
		}
	}
	if match == nil {
		log.Fatalf("No %s vs %s matchup found in season %d", home, away, season)
	}
	return match
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Truncate(24*time.Hour) == b.UTC().Truncate(24*time.Hour)
}

func reportMarketOdds(ctx context.Context, svc *service.OddsService, log *logrus.Logger, home, away string, modelProbability float64) {
	odds, err := svc.Odds(ctx, home, away)
	if err != nil {
		log.WithError(err).Warn("Odds temporarily unavailable")
		return
	}
	if odds == nil {
		log.Info("No market odds available for this matchup")
		return
	}

	fairHome, fairAway := odds.FairProbabilities()
	log.WithFields(logrus.Fields{
		"bookmaker":       odds.Bookmaker,
		"market_home":     fairHome,
		"market_away":     fairAway,
		"model_home":      modelProbability,
		"model_vs_market": modelProbability - fairHome,
	}).Info("Market comparison")
}

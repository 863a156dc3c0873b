package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/predictor"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

func predictorConfig() config.PredictorConfig {
	return config.PredictorConfig{
		HomeFieldAdvantage:    0.06,
		SampleSizeDenominator: 50,
		MinProbability:        0.02,
		MaxProbability:        0.98,
		HeadToHeadSeasons:     3,
		Weights: config.AdjusterWeights{
			HeadToHead:    0.25,
			HomeAwaySplit: 0.12,
			Injury:        0.15,
			Sentiment:     0.08,
			Weather:       0.12,
		},
	}
}

func newPredictionService(repos *repository.Repositories) *PredictionService {
	cfg := predictorConfig()
	logger := testLogger()
	baseline := predictor.NewBaseline(repos.Game, cfg, logger)
	adjuster := predictor.NewAdjuster(repos.Game, cfg, logger)
	return NewPredictionService(baseline, adjuster, repos.Game, repos.Prediction, logger)
}

func completedGame(home, away string, season int, date time.Time, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: home},
		AwayTeam:      models.Team{Abbreviation: away},
		ScheduledDate: date,
		Season:        season,
		Outcome:       &models.GameOutcome{HomeScore: homeScore, AwayScore: awayScore},
	}
}

func seedHistory(t *testing.T, repos *repository.Repositories) {
	t.Helper()
	ctx := context.Background()
	kickoff := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)

	games := []*models.Game{
		completedGame("DAL", "PHI", 2025, kickoff, 27, 13),
		completedGame("WAS", "DAL", 2025, kickoff.AddDate(0, 0, 7), 10, 24),
		completedGame("DAL", "WAS", 2025, kickoff.AddDate(0, 0, 14), 31, 20),
		completedGame("NYG", "PHI", 2025, kickoff, 13, 27),
		completedGame("PHI", "NYG", 2025, kickoff.AddDate(0, 0, 7), 20, 10),
		completedGame("NYG", "WAS", 2025, kickoff.AddDate(0, 0, 14), 17, 14),
	}
	for _, game := range games {
		require.NoError(t, repos.Game.Save(ctx, game))
	}
}

func TestPredictStoresPrediction(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)
	ctx := context.Background()
	seedHistory(t, repos)

	upcoming := &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: "DAL"},
		AwayTeam:      models.Team{Abbreviation: "NYG"},
		ScheduledDate: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Season:        2025,
	}
	require.NoError(t, repos.Game.Save(ctx, upcoming))

	prediction, err := svc.Predict(ctx, upcoming.ID, nil)
	require.NoError(t, err)
	assert.Greater(t, prediction.HomeWinProbability, 0.5, "a 3-0 team at home against 1-2 should be favored")

	stored, err := repos.Prediction.GetByGameID(ctx, upcoming.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, prediction.HomeWinProbability, stored[0].HomeWinProbability)
}

func TestPredictUnknownGame(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)

	_, err := svc.Predict(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, models.ErrGameNotFound)
}

func TestPredictInsufficientHistory(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)
	ctx := context.Background()

	upcoming := &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: "DAL"},
		AwayTeam:      models.Team{Abbreviation: "NYG"},
		ScheduledDate: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Season:        2025,
	}
	require.NoError(t, repos.Game.Save(ctx, upcoming))

	_, err := svc.Predict(ctx, upcoming.ID, nil)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestPredictCancelledBeforeStore(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)
	seedHistory(t, repos)

	upcoming := &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: "DAL"},
		AwayTeam:      models.Team{Abbreviation: "NYG"},
		ScheduledDate: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Season:        2025,
	}
	require.NoError(t, repos.Game.Save(context.Background(), upcoming))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Predict(ctx, upcoming.ID, nil)
	assert.ErrorIs(t, err, context.Canceled)

	stored, err := repos.Prediction.GetByGameID(context.Background(), upcoming.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "an abandoned request must not leave a stored prediction")
}

func TestEvaluateStoredJoinsOutcomes(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)
	ctx := context.Background()

	kickoff := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	game := completedGame("DAL", "NYG", 2025, kickoff, 24, 17)
	require.NoError(t, repos.Game.Save(ctx, game))

	prediction, err := models.NewPrediction(game.ID, 0.8, 0.6, "stored before kickoff")
	require.NoError(t, err)
	require.NoError(t, repos.Prediction.Save(ctx, prediction))

	// A completed game with no prediction and a scheduled game must both
	// be skipped.
	require.NoError(t, repos.Game.Save(ctx, completedGame("PHI", "WAS", 2025, kickoff, 20, 23)))
	require.NoError(t, repos.Game.Save(ctx, &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: "NYG"},
		AwayTeam:      models.Team{Abbreviation: "PHI"},
		ScheduledDate: kickoff,
		Season:        2025,
	}))

	result, err := svc.EvaluateStored(ctx, kickoff.AddDate(0, 0, -1), kickoff.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPredictions)
	assert.InDelta(t, 1.0, result.Accuracy, 1e-9)
	assert.InDelta(t, 0.04, result.BrierScore, 1e-9)
}

func TestEvaluateStoredEmptyRange(t *testing.T) {
	repos := repository.NewRepositories()
	svc := newPredictionService(repos)

	result, err := svc.EvaluateStored(context.Background(),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, result.TotalPredictions)
	assert.Zero(t, result.Accuracy)
}

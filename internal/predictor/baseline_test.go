package predictor

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

func testPredictorConfig() config.PredictorConfig {
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

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// seedRecord stores `wins` wins and `played-wins` losses for team,
// against a throwaway opponent, all in the given season.
func seedRecord(t *testing.T, repo repository.GameRepository, team string, wins, played, season int) {
	t.Helper()
	ctx := context.Background()
	date := time.Date(season, 9, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < played; i++ {
		outcome := &models.GameOutcome{HomeScore: 13, AwayScore: 27}
		if i < wins {
			outcome = &models.GameOutcome{HomeScore: 27, AwayScore: 13}
		}
		game := &models.Game{
			ID:            uuid.New(),
			HomeTeam:      models.Team{Abbreviation: team},
			AwayTeam:      models.Team{Abbreviation: "OPP"},
			ScheduledDate: date.AddDate(0, 0, i*7),
			Season:        season,
			Outcome:       outcome,
		}
		require.NoError(t, repo.Save(ctx, game))
	}
}

func upcoming(home, away string, season int) *models.Game {
	return &models.Game{
		ID:            uuid.New(),
		HomeTeam:      models.Team{Abbreviation: home},
		AwayTeam:      models.Team{Abbreviation: away},
		ScheduledDate: time.Date(season+1, 1, 15, 0, 0, 0, 0, time.UTC),
		Season:        season,
	}
}

func TestBaselineInsufficientHistory(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	seedRecord(t, repo, "DAL", 5, 8, 2025)

	// NYG has no completed games on record.
	_, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestBaselineStrongTeamFavored(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	seedRecord(t, repo, "DAL", 8, 10, 2025)
	seedRecord(t, repo, "NYG", 2, 10, 2025)

	prediction, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
	require.NoError(t, err)

	// 0.5 + (0.8 - 0.2)*0.5 + 0.06 home-field advantage.
	assert.InDelta(t, 0.86, prediction.HomeWinProbability, 1e-9)
	// sample 0.4 + balance 0.2 + certainty 0.288.
	assert.InDelta(t, 0.888, prediction.Confidence, 1e-9)
	assert.Equal(t, models.WinnerHome, prediction.PredictedWinner())
	assert.Equal(t, "baseline", prediction.ModelName)
	assert.NotEmpty(t, prediction.Reasoning)
}

func TestBaselineEvenTeamsLeanHome(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	seedRecord(t, repo, "DAL", 5, 10, 2025)
	seedRecord(t, repo, "NYG", 5, 10, 2025)

	prediction, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
	require.NoError(t, err)

	// Only the home-field advantage separates evenly matched teams.
	assert.InDelta(t, 0.56, prediction.HomeWinProbability, 1e-9)
}

func TestBaselineClampsExtremes(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	seedRecord(t, repo, "DAL", 10, 10, 2025)
	seedRecord(t, repo, "NYG", 0, 10, 2025)

	prediction, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
	require.NoError(t, err)

	// Raw 0.5 + 0.5 + 0.06 exceeds the ceiling.
	assert.InDelta(t, 0.98, prediction.HomeWinProbability, 1e-9)
}

func TestBaselineConfidenceBounded(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	cases := []struct {
		homeWins, homePlayed int
		awayWins, awayPlayed int
	}{
		{1, 1, 0, 1},
		{1, 2, 1, 2},
		{30, 40, 5, 40},
		{20, 40, 1, 3},
	}

	for _, tc := range cases {
		repo = repository.NewMemoryGameRepository()
		baseline = NewBaseline(repo, testPredictorConfig(), testLogger())
		seedRecord(t, repo, "DAL", tc.homeWins, tc.homePlayed, 2025)
		seedRecord(t, repo, "NYG", tc.awayWins, tc.awayPlayed, 2025)

		prediction, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prediction.Confidence, 0.0)
		assert.LessOrEqual(t, prediction.Confidence, 1.0)
	}
}

func TestBaselineIgnoresScheduledGames(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())
	ctx := context.Background()

	seedRecord(t, repo, "DAL", 4, 4, 2025)
	seedRecord(t, repo, "NYG", 2, 4, 2025)

	// A scheduled but unplayed game must not count toward either record.
	require.NoError(t, repo.Save(ctx, upcoming("DAL", "NYG", 2025)))

	prediction, err := baseline.Predict(ctx, upcoming("DAL", "NYG", 2025))
	require.NoError(t, err)
	assert.InDelta(t, 0.5+(1.0-0.5)*0.5+0.06, prediction.HomeWinProbability, 1e-9)
}

func TestBaselinePredictsScores(t *testing.T) {
	repo := repository.NewMemoryGameRepository()
	baseline := NewBaseline(repo, testPredictorConfig(), testLogger())

	seedRecord(t, repo, "DAL", 8, 10, 2025)
	seedRecord(t, repo, "NYG", 2, 10, 2025)

	prediction, err := baseline.Predict(context.Background(), upcoming("DAL", "NYG", 2025))
	require.NoError(t, err)
	require.NotNil(t, prediction.PredictedHomeScore)
	require.NotNil(t, prediction.PredictedAwayScore)
	assert.Greater(t, *prediction.PredictedHomeScore, 0)
	assert.Greater(t, *prediction.PredictedAwayScore, 0)
}

// Package predictor computes win-probability estimates from historical
// game results.
package predictor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

// Baseline computes a win probability and a multi-factor confidence
// score from historical win rates alone. It holds no state of its own;
// each call is a pure function of repository contents at call time and
// is safe for concurrent use.
type Baseline struct {
	games  repository.GameRepository
	cfg    config.PredictorConfig
	logger *logrus.Logger
}

// NewBaseline creates a baseline predictor.
func NewBaseline(games repository.GameRepository, cfg config.PredictorConfig, logger *logrus.Logger) *Baseline {
	return &Baseline{
		games:  games,
		cfg:    cfg,
		logger: logger,
	}
}

// Upper bound for all-history date-range queries.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// teamRecord aggregates a team's completed historical games.
type teamRecord struct {
	played        int
	wins          int
	pointsFor     int
	pointsAgainst int
}

func (r teamRecord) winRate() float64 {
	if r.played == 0 {
		return 0
	}
	return float64(r.wins) / float64(r.played)
}

func (r teamRecord) averagePointsFor() float64 {
	if r.played == 0 {
		return 0
	}
	return float64(r.pointsFor) / float64(r.played)
}

func (r teamRecord) averagePointsAgainst() float64 {
	if r.played == 0 {
		return 0
	}
	return float64(r.pointsAgainst) / float64(r.played)
}

// Predict produces a prediction for the given game from both teams'
// historical win rates. It fails with ErrInsufficientHistory when
// either team has no completed games in the repository: without at
// least one historical result per side the model has nothing to anchor
// on, and a silent 50/50 default would misrepresent certainty.
func (b *Baseline) Predict(ctx context.Context, game *models.Game) (*models.Prediction, error) {
	home := game.HomeTeam.Abbreviation
	away := game.AwayTeam.Abbreviation

	homeRecord, err := b.record(ctx, home)
	if err != nil {
		return nil, err
	}
	awayRecord, err := b.record(ctx, away)
	if err != nil {
		return nil, err
	}

	if homeRecord.played == 0 || awayRecord.played == 0 {
		return nil, fmt.Errorf("%w: %s has %d completed games, %s has %d",
			models.ErrInsufficientHistory, home, homeRecord.played, away, awayRecord.played)
	}

	homeRate := homeRecord.winRate()
	awayRate := awayRecord.winRate()

	raw := 0.5 + (homeRate-awayRate)*0.5 + b.cfg.HomeFieldAdvantage
	probability := clamp(raw, b.cfg.MinProbability, b.cfg.MaxProbability)

	confidence, breakdown := b.confidence(probability, homeRecord.played, awayRecord.played)

	reasoning := fmt.Sprintf(
		"%s win rate %.3f over %d games vs %s win rate %.3f over %d games; home-field advantage +%.2f; %s",
		home, homeRate, homeRecord.played,
		away, awayRate, awayRecord.played,
		b.cfg.HomeFieldAdvantage, breakdown,
	)

	prediction, err := models.NewPrediction(game.ID, probability, confidence, reasoning)
	if err != nil {
		return nil, err
	}
	prediction.ModelName = "baseline"
	prediction.ModelVersion = "1"

	homeScore, awayScore := b.predictScores(homeRecord, awayRecord)
	prediction.PredictedHomeScore = &homeScore
	prediction.PredictedAwayScore = &awayScore

	b.logger.WithFields(logrus.Fields{
		"game_id":     game.ID,
		"home":        home,
		"away":        away,
		"probability": probability,
		"confidence":  confidence,
	}).Debug("Baseline prediction computed")

	return prediction, nil
}

// confidence is a three-factor additive model. Each factor is
// separately capped so that sample size alone cannot saturate the
// score: a naive size-only model reported full confidence for any
// close matchup with 20+ combined games.
func (b *Baseline) confidence(probability float64, homeGames, awayGames int) (float64, string) {
	total := float64(homeGames + awayGames)
	sampleSize := math.Min(0.4, total/b.cfg.SampleSizeDenominator)

	smaller := math.Min(float64(homeGames), float64(awayGames))
	larger := math.Max(float64(homeGames), float64(awayGames))
	balance := 0.2 * (smaller / larger)

	certainty := math.Min(0.4, math.Abs(probability-0.5)*0.8)

	confidence := sampleSize + balance + certainty
	breakdown := fmt.Sprintf("confidence: sample %.2f + balance %.2f + certainty %.2f",
		sampleSize, balance, certainty)
	return confidence, breakdown
}

// predictScores estimates a final score by blending each side's
// average points scored with the opponent's average points allowed.
func (b *Baseline) predictScores(home, away teamRecord) (int, int) {
	homeScore := (home.averagePointsFor() + away.averagePointsAgainst()) / 2
	awayScore := (away.averagePointsFor() + home.averagePointsAgainst()) / 2
	return int(math.Round(homeScore)), int(math.Round(awayScore))
}

// record aggregates all of a team's completed historical games, home
// and away combined, across every stored season.
func (b *Baseline) record(ctx context.Context, team string) (teamRecord, error) {
	games, err := b.games.GetByDateRange(ctx, time.Time{}, farFuture)
	if err != nil {
		return teamRecord{}, err
	}

	var rec teamRecord
	for _, game := range games {
		if !game.IsCompleted() || !game.Involves(team) {
			continue
		}
		rec.played++
		if game.WonBy(team) {
			rec.wins++
		}
		if game.HomeTeam.Abbreviation == team {
			rec.pointsFor += game.Outcome.HomeScore
			rec.pointsAgainst += game.Outcome.AwayScore
		} else {
			rec.pointsFor += game.Outcome.AwayScore
			rec.pointsAgainst += game.Outcome.HomeScore
		}
	}
	return rec, nil
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

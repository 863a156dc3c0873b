package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Prediction represents a win-probability estimate for a single game.
// Predictions are immutable once created; multiple predictions may
// exist for one game (different models or versions).
type Prediction struct {
	ID                 uuid.UUID `json:"id" validate:"required"`
	GameID             uuid.UUID `json:"game_id" validate:"required"`
	HomeWinProbability float64   `json:"home_win_probability" validate:"gte=0,lte=1"`
	Confidence         float64   `json:"confidence" validate:"gte=0,lte=1"`
	Reasoning          string    `json:"reasoning"`
	PredictedHomeScore *int      `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *int      `json:"predicted_away_score,omitempty"`
	ModelName          string    `json:"model_name"`
	ModelVersion       string    `json:"model_version"`
	PredictedAt        time.Time `json:"predicted_at" validate:"required"`
}

// NewPrediction creates a prediction, rejecting probabilities and
// confidence values outside [0,1].
func NewPrediction(gameID uuid.UUID, homeWinProbability, confidence float64, reasoning string) (*Prediction, error) {
	if homeWinProbability < 0 || homeWinProbability > 1 {
		return nil, fmt.Errorf("%w: home win probability %v", ErrInvalidProbability, homeWinProbability)
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v", ErrInvalidProbability, confidence)
	}

	return &Prediction{
		ID:                 uuid.New(),
		GameID:             gameID,
		HomeWinProbability: homeWinProbability,
		Confidence:         confidence,
		Reasoning:          reasoning,
		PredictedAt:        time.Now().UTC(),
	}, nil
}

// AwayWinProbability returns the complement of the home win
// probability. Ties are not separately modeled.
func (p *Prediction) AwayWinProbability() float64 {
	return 1 - p.HomeWinProbability
}

// PredictedWinner derives the predicted side: home above 0.5, away
// below, tie at exactly 0.5.
func (p *Prediction) PredictedWinner() Winner {
	switch {
	case p.HomeWinProbability > 0.5:
		return WinnerHome
	case p.HomeWinProbability < 0.5:
		return WinnerAway
	default:
		return WinnerTie
	}
}

// MeetsThreshold checks if the confidence meets the given threshold.
func (p *Prediction) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/evaluator"
	"github.com/yourusername/gridiron-oracle/internal/metrics"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/predictor"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

// PredictionService orchestrates the prediction pipeline: baseline
// first, then the multi-factor adjuster on its output, then storage.
// It also evaluates stored predictions against recorded outcomes.
type PredictionService struct {
	baseline    *predictor.Baseline
	adjuster    *predictor.Adjuster
	games       repository.GameRepository
	predictions repository.PredictionRepository
	logger      *logrus.Logger
}

// NewPredictionService creates the prediction pipeline service.
func NewPredictionService(
	baseline *predictor.Baseline,
	adjuster *predictor.Adjuster,
	games repository.GameRepository,
	predictions repository.PredictionRepository,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		baseline:    baseline,
		adjuster:    adjuster,
		games:       games,
		predictions: predictions,
		logger:      logger,
	}
}

// Predict produces, stores, and returns a prediction for the game.
// Signals may be nil; the adjuster then works from repository data
// alone. Fails with ErrInsufficientHistory when either team has no
// completed games.
func (s *PredictionService) Predict(ctx context.Context, gameID uuid.UUID, signals *models.GameSignals) (*models.Prediction, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	base, err := s.baseline.Predict(ctx, game)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientHistory) {
			metrics.InsufficientHistoryTotal.Inc()
		}
		return nil, err
	}

	prediction, err := s.adjuster.Adjust(ctx, game, base, signals)
	if err != nil {
		return nil, err
	}

	// Safe point: don't store a prediction for an abandoned request.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.predictions.Save(ctx, prediction); err != nil {
		return nil, err
	}

	metrics.PredictionsTotal.Inc()
	s.logger.WithFields(logrus.Fields{
		"game_id":     gameID,
		"probability": prediction.HomeWinProbability,
		"confidence":  prediction.Confidence,
		"winner":      prediction.PredictedWinner(),
	}).Info("Prediction stored")

	return prediction, nil
}

// EvaluateStored joins every stored prediction for games scheduled in
// [from, to] with the games' recorded outcomes and computes
// calibration metrics. Games without outcomes and games without
// predictions are skipped.
func (s *PredictionService) EvaluateStored(ctx context.Context, from, to time.Time) (models.EvaluationMetrics, error) {
	games, err := s.games.GetByDateRange(ctx, from, to)
	if err != nil {
		return models.EvaluationMetrics{}, err
	}

	var pairs []evaluator.Pair
	for _, game := range games {
		if !game.IsCompleted() {
			continue
		}
		stored, err := s.predictions.GetByGameID(ctx, game.ID)
		if err != nil {
			return models.EvaluationMetrics{}, err
		}
		for _, prediction := range stored {
			pairs = append(pairs, evaluator.Pair{
				Prediction: *prediction,
				Outcome:    *game.Outcome,
			})
		}
	}

	result := evaluator.Evaluate(pairs)
	metrics.RecordEvaluation(result.Accuracy, result.BrierScore, result.LogLoss)

	s.logger.WithFields(logrus.Fields{
		"predictions": result.TotalPredictions,
		"accuracy":    result.Accuracy,
		"brier_score": result.BrierScore,
		"log_loss":    result.LogLoss,
	}).Info("Evaluation complete")

	return result, nil
}

// Package evaluator measures prediction calibration against recorded
// outcomes.
package evaluator

import (
	"math"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// Probabilities are clamped away from 0 and 1 before taking logs.
const epsilon = 1e-15

// Pair joins a stored prediction with the recorded outcome of its
// game. How the prediction was produced is irrelevant here.
type Pair struct {
	Prediction models.Prediction
	Outcome    models.GameOutcome
}

// Evaluate compares predictions against outcomes and computes
// accuracy, Brier score, and log-loss. Empty input returns all zeros,
// never NaN. The functions are stateless and safe to call
// concurrently.
//
// Ties score as a 0.5 actual outcome, granting partial credit on the
// calibration metrics; that is a design decision, since the win
// probability models only the home/away split.
func Evaluate(pairs []Pair) models.EvaluationMetrics {
	metrics := models.EvaluationMetrics{
		TotalPredictions: len(pairs),
	}
	if len(pairs) == 0 {
		return metrics
	}

	brierSum := 0.0
	logLossSum := 0.0
	for _, pair := range pairs {
		if pair.Prediction.PredictedWinner() == pair.Outcome.Winner() {
			metrics.CorrectCount++
		}
		brierSum += brierTerm(pair)
		logLossSum += logLossTerm(pair)
	}

	n := float64(len(pairs))
	metrics.Accuracy = float64(metrics.CorrectCount) / n
	metrics.BrierScore = brierSum / n
	metrics.LogLoss = logLossSum / n
	return metrics
}

// actualOutcome maps the recorded winner onto the probability scale:
// 1.0 home win, 0.0 away win, 0.5 tie.
func actualOutcome(outcome models.GameOutcome) float64 {
	switch outcome.Winner() {
	case models.WinnerHome:
		return 1.0
	case models.WinnerAway:
		return 0.0
	default:
		return 0.5
	}
}

func brierTerm(pair Pair) float64 {
	diff := pair.Prediction.HomeWinProbability - actualOutcome(pair.Outcome)
	return diff * diff
}

// logLossTerm is the negative log-likelihood of the actual outcome. A
// tie contributes the cross-entropy against the 0.5 target.
func logLossTerm(pair Pair) float64 {
	p := clampProbability(pair.Prediction.HomeWinProbability)
	switch pair.Outcome.Winner() {
	case models.WinnerHome:
		return -math.Log(p)
	case models.WinnerAway:
		return -math.Log(1 - p)
	default:
		return (-math.Log(p) - math.Log(1-p)) / 2
	}
}

func clampProbability(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	if p > 1-epsilon {
		return 1 - epsilon
	}
	return p
}

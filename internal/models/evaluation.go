package models

// EvaluationMetrics summarizes how well a set of stored predictions
// matched recorded outcomes. Purely derived; recomputed per evaluation
// call and never persisted as canonical state.
type EvaluationMetrics struct {
	TotalPredictions int     `json:"total_predictions"`
	CorrectCount     int     `json:"correct_count"`
	Accuracy         float64 `json:"accuracy"`
	BrierScore       float64 `json:"brier_score"`
	LogLoss          float64 `json:"log_loss"`
}

package models

import "errors"

// Custom errors
var (
	ErrInvalidProbability  = errors.New("probability outside [0,1]")
	ErrNegativeScore       = errors.New("scores must be non-negative")
	ErrInsufficientHistory = errors.New("insufficient historical data")
	ErrProviderUnavailable = errors.New("upstream provider unavailable")
	ErrGameNotFound        = errors.New("game not found")
)

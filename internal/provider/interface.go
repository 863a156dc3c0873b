// Package provider defines the upstream data-source abstractions the
// prediction core consumes. Concrete third-party wire formats are not
// implemented here; providers surface typed errors so callers can
// distinguish rate limiting from transport failure.
package provider

import (
	"context"
	"errors"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// ScheduleProvider fetches a team's games for a season from an
// upstream schedule/score source.
type ScheduleProvider interface {
	// FetchGames retrieves all of a team's games for the season,
	// completed ones carrying outcomes.
	FetchGames(ctx context.Context, team string, season int) ([]models.Game, error)

	// Name returns the name of the provider
	Name() string
}

// OddsProvider fetches betting odds for a matchup. Odds may not exist
// for every matchup; a nil result with a nil error means none are
// available.
type OddsProvider interface {
	FetchOdds(ctx context.Context, homeTeam, awayTeam string) (*models.BettingOdds, error)

	// Name returns the name of the provider
	Name() string
}

// Error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeTimeout           = "timeout"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeUnknown           = "unknown"
)

// Sentinel errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrTimeout           = errors.New("request timed out")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

// ProviderError represents errors from provider operations
type ProviderError struct {
	Source  string // Provider name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error
func NewProviderError(source, code, message string, err error) ProviderError {
	return ProviderError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

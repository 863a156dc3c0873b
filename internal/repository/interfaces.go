package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// GameRepository defines the interface for game data access. The
// contract is storage-agnostic so a durable backend can be substituted
// without changing callers.
type GameRepository interface {
	// Save upserts by game id. An existing record with the same id is
	// overwritten, which is how an outcome gets attached after the
	// game completes.
	Save(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	// GetByTeamAndSeason returns games where the team is either home
	// or away, filtered by season, in no guaranteed order.
	GetByTeamAndSeason(ctx context.Context, team string, season int) ([]*models.Game, error)
	// GetByDateRange filters inclusively on scheduled date across all teams.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Game, error)
}

// PredictionRepository defines the interface for prediction data access.
type PredictionRepository interface {
	// Save appends; it never overwrites. Multiple predictions per game
	// are retained to support model comparison.
	Save(ctx context.Context, prediction *models.Prediction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error)
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// MemoryGameRepository is the in-memory reference implementation of
// GameRepository. All access serializes on a single lock; accessors
// return copies so no caller holds a mutable reference into the
// internal map.
type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]models.Game
}

// NewMemoryGameRepository creates an empty in-memory game repository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[uuid.UUID]models.Game),
	}
}

// Save upserts the game by id.
func (r *MemoryGameRepository) Save(ctx context.Context, game *models.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *game
	if game.Outcome != nil {
		outcome := *game.Outcome
		stored.Outcome = &outcome
	}

	r.mu.Lock()
	r.games[game.ID] = stored
	r.mu.Unlock()
	return nil
}

// GetByID returns a copy of the game, or ErrGameNotFound.
func (r *MemoryGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.games[id]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrGameNotFound
	}
	return copyGame(stored), nil
}

// GetByTeamAndSeason returns games where the team played home or away
// in the given season. Order is not guaranteed; callers sort if needed.
func (r *MemoryGameRepository) GetByTeamAndSeason(ctx context.Context, team string, season int) ([]*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*models.Game
	for _, stored := range r.games {
		if stored.Season == season && stored.Involves(team) {
			results = append(results, copyGame(stored))
		}
	}
	return results, nil
}

// GetByDateRange returns games scheduled within [start, end] inclusive.
func (r *MemoryGameRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*models.Game
	for _, stored := range r.games {
		d := stored.ScheduledDate
		if !d.Before(start) && !d.After(end) {
			results = append(results, copyGame(stored))
		}
	}
	return results, nil
}

func copyGame(stored models.Game) *models.Game {
	game := stored
	if stored.Outcome != nil {
		outcome := *stored.Outcome
		game.Outcome = &outcome
	}
	return &game
}

// MemoryPredictionRepository is the in-memory reference implementation
// of PredictionRepository. Saves append; nothing is ever overwritten.
type MemoryPredictionRepository struct {
	mu          sync.RWMutex
	predictions map[uuid.UUID][]models.Prediction
}

// NewMemoryPredictionRepository creates an empty in-memory prediction
// repository.
func NewMemoryPredictionRepository() *MemoryPredictionRepository {
	return &MemoryPredictionRepository{
		predictions: make(map[uuid.UUID][]models.Prediction),
	}
}

// Save appends the prediction for its game.
func (r *MemoryPredictionRepository) Save(ctx context.Context, prediction *models.Prediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.predictions[prediction.GameID] = append(r.predictions[prediction.GameID], *prediction)
	r.mu.Unlock()
	return nil
}

// GetByGameID returns copies of all predictions stored for the game,
// in insertion order.
func (r *MemoryPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.predictions[gameID]
	results := make([]*models.Prediction, 0, len(stored))
	for i := range stored {
		p := stored[i]
		results = append(results, &p)
	}
	return results, nil
}

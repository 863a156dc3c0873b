// Package service wires the cache, repositories, providers, and
// predictor into the operations the core exposes to its collaborators.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/metrics"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/provider"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

// Namespace for deriving stable game IDs from provider data, so
// repeated syncs upsert instead of duplicating.
var gameIDNamespace = uuid.MustParse("6f7a1a52-9d0b-4c46-9a1e-2f3f8f0d1b5c")

// ScheduleService populates the game repository from a schedule
// provider, always through its cache. Nothing is permitted to call the
// provider directly once a cache is configured for it; that invariant
// is what keeps the system inside upstream rate limits.
type ScheduleService struct {
	provider provider.ScheduleProvider
	cache    *cache.Cache[[]models.Game]
	games    repository.GameRepository
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewScheduleService creates a cache-fronted schedule service.
func NewScheduleService(
	scheduleProvider provider.ScheduleProvider,
	scheduleCache *cache.Cache[[]models.Game],
	games repository.GameRepository,
	timeout time.Duration,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		provider: scheduleProvider,
		cache:    scheduleCache,
		games:    games,
		timeout:  timeout,
		logger:   logger,
	}
}

// Games returns the team's games for the season. A live cache entry
// short-circuits the provider entirely; on a miss the provider is
// fetched under the configured timeout and the results are written
// into the repository and the cache. Once an entry has expired, a
// failed refetch propagates the error rather than silently serving the
// expired value.
//
// Cancellation is checked at safe points only (before the repository
// mutation and before the cache write) and surfaces unchanged; an
// abandoned request is expected control flow, not an error worth
// alarming on.
func (s *ScheduleService) Games(ctx context.Context, team string, season int) ([]models.Game, error) {
	key := scheduleKey(team, season)
	if games, ok := s.cache.Get(key); ok {
		return games, nil
	}

	fetchCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	games, err := s.provider.FetchGames(fetchCtx, team, season)
	metrics.ProviderFetchDuration.WithLabelValues(s.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.WithField("team", team).Debug("Schedule fetch abandoned by caller")
			return nil, err
		}
		metrics.ProviderErrorsTotal.WithLabelValues(s.provider.Name()).Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"team":   team,
			"season": season,
		}).Warn("Schedule provider fetch failed")
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	// Safe point: don't mutate shared state for an abandoned request.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range games {
		if games[i].ID == uuid.Nil {
			games[i].ID = deriveGameID(&games[i])
		}
		if err := s.games.Save(ctx, &games[i]); err != nil {
			return nil, err
		}
	}

	// Safe point: a cancelled caller must not commit a cache write.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.cache.Set(key, games)

	s.logger.WithFields(logrus.Fields{
		"team":   team,
		"season": season,
		"games":  len(games),
	}).Info("Schedule synced")

	return games, nil
}

// CacheStats exposes the schedule cache's counters for operational
// visibility.
func (s *ScheduleService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ClearCache flushes the schedule cache unconditionally.
func (s *ScheduleService) ClearCache() {
	s.cache.Clear()
}

func scheduleKey(team string, season int) string {
	return fmt.Sprintf("schedule:%s:%d", team, season)
}

// deriveGameID builds a stable id from the matchup and date so the
// same provider row always maps to the same game.
func deriveGameID(game *models.Game) uuid.UUID {
	seed := fmt.Sprintf("%s:%s:%s",
		game.HomeTeam.Abbreviation,
		game.AwayTeam.Abbreviation,
		game.ScheduledDate.UTC().Format(time.RFC3339),
	)
	return uuid.NewSHA1(gameIDNamespace, []byte(seed))
}

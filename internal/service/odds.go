package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/metrics"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/provider"
)

// OddsService fetches betting odds through its cache with the same
// discipline as the schedule service. The odds upstream is the
// rate-limited, expensive one, which is why it gets its own cache
// instance and TTL.
type OddsService struct {
	provider provider.OddsProvider
	cache    *cache.Cache[models.BettingOdds]
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewOddsService creates a cache-fronted odds service.
func NewOddsService(
	oddsProvider provider.OddsProvider,
	oddsCache *cache.Cache[models.BettingOdds],
	timeout time.Duration,
	logger *logrus.Logger,
) *OddsService {
	return &OddsService{
		provider: oddsProvider,
		cache:    oddsCache,
		timeout:  timeout,
		logger:   logger,
	}
}

// Odds returns odds for the matchup, or nil when the provider has
// none. Absence is not cached: odds often appear closer to game time,
// and caching the miss would suppress them for a full TTL.
func (s *OddsService) Odds(ctx context.Context, homeTeam, awayTeam string) (*models.BettingOdds, error) {
	key := oddsKey(homeTeam, awayTeam)
	if odds, ok := s.cache.Get(key); ok {
		return &odds, nil
	}

	fetchCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	odds, err := s.provider.FetchOdds(fetchCtx, homeTeam, awayTeam)
	metrics.ProviderFetchDuration.WithLabelValues(s.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.WithField("matchup", key).Debug("Odds fetch abandoned by caller")
			return nil, err
		}
		metrics.ProviderErrorsTotal.WithLabelValues(s.provider.Name()).Inc()
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	if odds == nil {
		return nil, nil
	}

	// Safe point: a cancelled caller must not commit a cache write.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.cache.Set(key, *odds)

	return odds, nil
}

// CacheStats exposes the odds cache's counters for operational
// visibility.
func (s *OddsService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ClearCache flushes the odds cache unconditionally.
func (s *OddsService) ClearCache() {
	s.cache.Clear()
}

func oddsKey(homeTeam, awayTeam string) string {
	return fmt.Sprintf("odds:%s:%s", homeTeam, awayTeam)
}

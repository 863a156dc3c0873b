package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-oracle/internal/cache"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeScheduleProvider counts calls and serves a canned slice or error.
type fakeScheduleProvider struct {
	games []models.Game
	err   error
	calls int
}

func (f *fakeScheduleProvider) FetchGames(ctx context.Context, team string, season int) ([]models.Game, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Game, len(f.games))
	copy(out, f.games)
	return out, nil
}

func (f *fakeScheduleProvider) Name() string { return "fake" }

func fixtureGames() []models.Game {
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	return []models.Game{
		{
			HomeTeam:      models.Team{Abbreviation: "DAL"},
			AwayTeam:      models.Team{Abbreviation: "NYG"},
			ScheduledDate: kickoff,
			Season:        2025,
			Week:          1,
			Outcome:       &models.GameOutcome{HomeScore: 24, AwayScore: 17},
		},
		{
			HomeTeam:      models.Team{Abbreviation: "PHI"},
			AwayTeam:      models.Team{Abbreviation: "DAL"},
			ScheduledDate: kickoff.AddDate(0, 0, 7),
			Season:        2025,
			Week:          2,
		},
	}
}

func newScheduleService(p *fakeScheduleProvider) (*ScheduleService, repository.GameRepository, *cache.Cache[[]models.Game]) {
	repo := repository.NewMemoryGameRepository()
	scheduleCache := cache.New[[]models.Game]("schedule-test", time.Hour)
	svc := NewScheduleService(p, scheduleCache, repo, time.Second, testLogger())
	return svc, repo, scheduleCache
}

func TestGamesCacheHitSkipsProvider(t *testing.T) {
	provider := &fakeScheduleProvider{games: fixtureGames()}
	svc, _, scheduleCache := newScheduleService(provider)
	defer scheduleCache.Clear()
	ctx := context.Background()

	first, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, provider.calls)

	second, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "live cache entry must short-circuit the provider")
}

func TestGamesPopulatesRepository(t *testing.T) {
	provider := &fakeScheduleProvider{games: fixtureGames()}
	svc, repo, scheduleCache := newScheduleService(provider)
	defer scheduleCache.Clear()
	ctx := context.Background()

	games, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)

	for _, game := range games {
		assert.NotEqual(t, uuid.Nil, game.ID, "provider rows without ids get derived ones")
		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.Season, stored.Season)
	}
}

func TestGamesDerivedIDsAreStable(t *testing.T) {
	provider := &fakeScheduleProvider{games: fixtureGames()}
	svc, repo, scheduleCache := newScheduleService(provider)
	ctx := context.Background()

	first, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)

	// Force a refetch; the same provider rows must upsert, not duplicate.
	scheduleCache.Clear()
	second, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	stored, err := repo.GetByTeamAndSeason(ctx, "DAL", 2025)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGamesProviderFailure(t *testing.T) {
	provider := &fakeScheduleProvider{err: errors.New("upstream 503")}
	svc, _, scheduleCache := newScheduleService(provider)
	defer scheduleCache.Clear()

	_, err := svc.Games(context.Background(), "DAL", 2025)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestGamesExpiredEntryDoesNotMaskFailure(t *testing.T) {
	provider := &fakeScheduleProvider{games: fixtureGames()}
	repo := repository.NewMemoryGameRepository()
	scheduleCache := cache.New[[]models.Game]("schedule-test", 50*time.Millisecond)
	defer scheduleCache.Clear()
	svc := NewScheduleService(provider, scheduleCache, repo, time.Second, testLogger())
	ctx := context.Background()

	_, err := svc.Games(ctx, "DAL", 2025)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	provider.err = errors.New("upstream 503")

	_, err = svc.Games(ctx, "DAL", 2025)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable,
		"an expired entry must not be served in place of the refetch error")
}

func TestGamesCancelledContext(t *testing.T) {
	provider := &fakeScheduleProvider{games: fixtureGames()}
	svc, repo, scheduleCache := newScheduleService(provider)
	defer scheduleCache.Clear()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Games(ctx, "DAL", 2025)
	assert.ErrorIs(t, err, context.Canceled)

	// Neither the repository nor the cache absorbed the abandoned fetch.
	stored, repoErr := repo.GetByTeamAndSeason(context.Background(), "DAL", 2025)
	require.NoError(t, repoErr)
	assert.Empty(t, stored)
	assert.Equal(t, 0, scheduleCache.ItemCount())
}

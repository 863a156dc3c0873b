package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// FileProvider serves schedules and odds from a local JSON fixtures
// file. It backs the CLIs and tests; production deployments swap in a
// real upstream implementation behind the same interfaces.
type FileProvider struct {
	path string

	mu       sync.Mutex
	loaded   bool
	fixtures fixtures
}

type fixtures struct {
	Games []models.Game        `json:"games"`
	Odds  []models.BettingOdds `json:"odds"`
}

// NewFileProvider creates a provider reading from the given JSON file.
// The file is read lazily on first fetch.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Name returns the name of the provider
func (p *FileProvider) Name() string {
	return "file"
}

// FetchGames returns the team's games for the season from the fixtures
// file.
func (p *FileProvider) FetchGames(ctx context.Context, team string, season int) ([]models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.load(); err != nil {
		return nil, err
	}

	var games []models.Game
	for _, game := range p.fixtures.Games {
		if game.Season == season && game.Involves(team) {
			games = append(games, game)
		}
	}
	if len(games) == 0 {
		return nil, NewProviderError(p.Name(), ErrCodeNotFound,
			fmt.Sprintf("no games for %s in season %d", team, season), ErrNotFound)
	}
	return games, nil
}

// FetchOdds returns odds for the matchup, or nil when the fixtures
// carry none.
func (p *FileProvider) FetchOdds(ctx context.Context, homeTeam, awayTeam string) (*models.BettingOdds, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.load(); err != nil {
		return nil, err
	}

	for _, odds := range p.fixtures.Odds {
		if strings.EqualFold(odds.HomeTeam, homeTeam) && strings.EqualFold(odds.AwayTeam, awayTeam) {
			result := odds
			if result.FetchedAt.IsZero() {
				result.FetchedAt = time.Now().UTC()
			}
			return &result, nil
		}
	}
	return nil, nil
}

func (p *FileProvider) load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return NewProviderError(p.Name(), ErrCodeNetworkError,
			fmt.Sprintf("failed to read fixtures at %s", p.path), err)
	}
	if err := json.Unmarshal(data, &p.fixtures); err != nil {
		return NewProviderError(p.Name(), ErrCodeUnknown, "failed to parse fixtures", err)
	}
	p.loaded = true
	return nil
}

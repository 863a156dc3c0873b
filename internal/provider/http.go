package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/models"
)

// HTTPProvider serves schedules and odds from a JSON API upstream. All
// requests go through the shared rate-limited client, so retries, rate
// limiting, and the circuit breaker apply uniformly.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewHTTPProvider creates a provider against the given API base URL.
func NewHTTPProvider(baseURL, apiKey string, client *RateLimitedHTTPClient, logger *logrus.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

// Name returns the name of the provider
func (p *HTTPProvider) Name() string {
	return "http"
}

type scheduleResponse struct {
	Games []models.Game `json:"games"`
}

type oddsResponse struct {
	Odds *models.BettingOdds `json:"odds"`
}

// FetchGames retrieves the team's games for the season from the
// upstream schedule endpoint.
func (p *HTTPProvider) FetchGames(ctx context.Context, team string, season int) ([]models.Game, error) {
	query := url.Values{}
	query.Set("team", team)
	query.Set("season", fmt.Sprintf("%d", season))

	resp, err := p.get(ctx, "/v1/schedules", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := p.checkStatus(resp, "schedule fetch"); err != nil {
		return nil, err
	}

	var parsed scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeUnknown, "failed to decode schedule response", err)
	}
	if len(parsed.Games) == 0 {
		return nil, NewProviderError(p.Name(), ErrCodeNotFound,
			fmt.Sprintf("no games for %s in season %d", team, season), ErrNotFound)
	}
	return parsed.Games, nil
}

// FetchOdds retrieves odds for the matchup. A 404 from the upstream
// means no odds are posted yet and is not an error.
func (p *HTTPProvider) FetchOdds(ctx context.Context, homeTeam, awayTeam string) (*models.BettingOdds, error) {
	query := url.Values{}
	query.Set("home", homeTeam)
	query.Set("away", awayTeam)

	resp, err := p.get(ctx, "/v1/odds", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := p.checkStatus(resp, "odds fetch"); err != nil {
		return nil, err
	}

	var parsed oddsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeUnknown, "failed to decode odds response", err)
	}
	return parsed.Odds, nil
}

func (p *HTTPProvider) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, NewProviderError(p.Name(), ErrCodeNetworkError, "request failed", err)
	}
	return resp, nil
}

// checkStatus maps upstream status codes onto typed provider errors.
func (p *HTTPProvider) checkStatus(resp *http.Response, operation string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return NewProviderError(p.Name(), ErrCodeNotFound, operation+" returned 404", ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewProviderError(p.Name(), ErrCodeRateLimitExceeded, operation+" rate limited", ErrRateLimitExceeded)
	case resp.StatusCode >= 500:
		return NewProviderError(p.Name(), ErrCodeServerError,
			fmt.Sprintf("%s returned %d", operation, resp.StatusCode), ErrServerError)
	default:
		return NewProviderError(p.Name(), ErrCodeUnknown,
			fmt.Sprintf("%s returned unexpected status %d", operation, resp.StatusCode), nil)
	}
}

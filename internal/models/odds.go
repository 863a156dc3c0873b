package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BettingOdds represents a point-in-time snapshot of decimal betting
// odds for a matchup. Odds may not exist for every matchup.
type BettingOdds struct {
	HomeTeam  string          `json:"home_team" validate:"required"`
	AwayTeam  string          `json:"away_team" validate:"required"`
	HomePrice decimal.Decimal `json:"home_price"`
	AwayPrice decimal.Decimal `json:"away_price"`
	Bookmaker string          `json:"bookmaker"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// ImpliedHomeProbability returns the raw implied probability from the
// home decimal price, overround included.
func (o *BettingOdds) ImpliedHomeProbability() float64 {
	price, _ := o.HomePrice.Float64()
	if price <= 0 {
		return 0
	}
	return 1.0 / price
}

// ImpliedAwayProbability returns the raw implied probability from the
// away decimal price, overround included.
func (o *BettingOdds) ImpliedAwayProbability() float64 {
	price, _ := o.AwayPrice.Float64()
	if price <= 0 {
		return 0
	}
	return 1.0 / price
}

// FairProbabilities strips the bookmaker's overround and returns
// normalized home and away probabilities.
func (o *BettingOdds) FairProbabilities() (home, away float64) {
	rawHome := o.ImpliedHomeProbability()
	rawAway := o.ImpliedAwayProbability()
	total := rawHome + rawAway
	if total <= 0 {
		return 0, 0
	}
	return rawHome / total, rawAway / total
}

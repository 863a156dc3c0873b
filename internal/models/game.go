package models

import (
	"time"

	"github.com/google/uuid"
)

// Winner identifies which side of a game won.
type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
	WinnerTie  Winner = "tie"
)

// Game represents a scheduled or completed game between two teams.
// A game is created when a schedule is ingested and mutated only by
// attaching an outcome once it completes.
type Game struct {
	ID            uuid.UUID    `json:"id" validate:"required"`
	HomeTeam      Team         `json:"home_team" validate:"required"`
	AwayTeam      Team         `json:"away_team" validate:"required"`
	ScheduledDate time.Time    `json:"scheduled_date" validate:"required"`
	Week          int          `json:"week" validate:"gte=0"`
	Season        int          `json:"season" validate:"required,gt=0"`
	Outcome       *GameOutcome `json:"outcome,omitempty"`
}

// IsCompleted checks whether the game has a recorded outcome.
func (g *Game) IsCompleted() bool {
	return g.Outcome != nil
}

// Involves checks whether the team with the given abbreviation played
// in this game, home or away.
func (g *Game) Involves(abbreviation string) bool {
	return g.HomeTeam.Abbreviation == abbreviation || g.AwayTeam.Abbreviation == abbreviation
}

// WonBy checks whether the team with the given abbreviation is on the
// winning side of the recorded outcome. Always false for incomplete
// games and ties.
func (g *Game) WonBy(abbreviation string) bool {
	if g.Outcome == nil {
		return false
	}
	switch g.Outcome.Winner() {
	case WinnerHome:
		return g.HomeTeam.Abbreviation == abbreviation
	case WinnerAway:
		return g.AwayTeam.Abbreviation == abbreviation
	default:
		return false
	}
}

// GameOutcome represents the final score of a completed game.
type GameOutcome struct {
	HomeScore int `json:"home_score" validate:"gte=0"`
	AwayScore int `json:"away_score" validate:"gte=0"`
}

// NewGameOutcome creates an outcome, rejecting negative scores.
func NewGameOutcome(homeScore, awayScore int) (*GameOutcome, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}
	return &GameOutcome{HomeScore: homeScore, AwayScore: awayScore}, nil
}

// Winner returns which side won the game.
func (o *GameOutcome) Winner() Winner {
	switch {
	case o.HomeScore > o.AwayScore:
		return WinnerHome
	case o.AwayScore > o.HomeScore:
		return WinnerAway
	default:
		return WinnerTie
	}
}

// PointDifferential returns home score minus away score.
func (o *GameOutcome) PointDifferential() int {
	return o.HomeScore - o.AwayScore
}

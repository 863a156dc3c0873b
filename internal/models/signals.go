package models

import "time"

// InjurySeverity classifies an injured player's expected availability.
type InjurySeverity string

const (
	SeverityQuestionable InjurySeverity = "questionable"
	SeverityDoubtful     InjurySeverity = "doubtful"
	SeverityOut          InjurySeverity = "out"
)

// InjuryReport represents a single injured player on a team's report.
type InjuryReport struct {
	Player   string         `json:"player" validate:"required"`
	Position string         `json:"position" validate:"required"`
	Severity InjurySeverity `json:"severity" validate:"required,oneof=questionable doubtful out"`
}

// NewsItem represents a keyword-scored recent article about a team.
// Sentiment is signed, -1 (strongly negative) to +1 (strongly positive).
type NewsItem struct {
	Headline    string    `json:"headline"`
	Sentiment   float64   `json:"sentiment" validate:"gte=-1,lte=1"`
	PublishedAt time.Time `json:"published_at"`
}

// WeatherForecast represents game-time conditions at the venue.
type WeatherForecast struct {
	WindSpeedMPH        float64 `json:"wind_speed_mph" validate:"gte=0"`
	TemperatureF        float64 `json:"temperature_f"`
	PrecipitationChance float64 `json:"precipitation_chance" validate:"gte=0,lte=1"`
}

// GameSignals carries the optional auxiliary inputs to the multi-factor
// adjuster. Every field may be empty or nil; absent signals contribute
// nothing to the adjusted probability.
type GameSignals struct {
	HomeInjuries []InjuryReport   `json:"home_injuries,omitempty"`
	AwayInjuries []InjuryReport   `json:"away_injuries,omitempty"`
	HomeNews     []NewsItem       `json:"home_news,omitempty"`
	AwayNews     []NewsItem       `json:"away_news,omitempty"`
	Weather      *WeatherForecast `json:"weather,omitempty"`

	// Estimated share of offensive plays that are passes, 0..1.
	// Zero means unknown; the weather signal falls back to a league
	// average in that case.
	HomePassRatio float64 `json:"home_pass_ratio,omitempty" validate:"gte=0,lte=1"`
	AwayPassRatio float64 `json:"away_pass_ratio,omitempty" validate:"gte=0,lte=1"`
}

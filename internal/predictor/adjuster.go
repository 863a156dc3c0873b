package predictor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/config"
	"github.com/yourusername/gridiron-oracle/internal/models"
	"github.com/yourusername/gridiron-oracle/internal/repository"
)

// Severity weights for injury impact.
var severityWeights = map[models.InjurySeverity]float64{
	models.SeverityQuestionable: 0.25,
	models.SeverityDoubtful:     0.6,
	models.SeverityOut:          1.0,
}

// Position weights for injury impact. Unlisted positions carry a small
// default weight.
var positionWeights = map[string]float64{
	"QB": 1.0,
	"RB": 0.5,
	"WR": 0.45,
	"TE": 0.35,
	"OL": 0.4,
	"DL": 0.35,
	"LB": 0.35,
	"CB": 0.4,
	"S":  0.35,
	"K":  0.15,
}

const defaultPositionWeight = 0.25

// Each additional injury beyond the first contributes less.
var injuryDiminish = []float64{1.0, 0.5, 0.25}

// Typical share of passing plays when a team's ratio is unknown.
const leagueAveragePassRatio = 0.58

// Adjuster is the optional enrichment layer that nudges a baseline
// probability using auxiliary signals, each carrying a fixed weight.
// Absent signals contribute zero; the weights are not renormalized, so
// a missing-but-neutral signal can never swing the result by more than
// its own maximum weight.
type Adjuster struct {
	games  repository.GameRepository
	cfg    config.PredictorConfig
	logger *logrus.Logger
}

// NewAdjuster creates a multi-factor adjuster.
func NewAdjuster(games repository.GameRepository, cfg config.PredictorConfig, logger *logrus.Logger) *Adjuster {
	return &Adjuster{
		games:  games,
		cfg:    cfg,
		logger: logger,
	}
}

// adjustment is one signal's signed contribution.
type adjustment struct {
	name   string
	signal float64 // signed, -1..+1
	weight float64
}

func (a adjustment) contribution() float64 {
	return a.signal * a.weight
}

// Adjust applies the weighted signal adjustments to a baseline
// prediction and returns a new prediction. Home-field advantage is
// already folded into the baseline and is deliberately not a signal
// here, to avoid double counting.
func (a *Adjuster) Adjust(ctx context.Context, game *models.Game, base *models.Prediction, signals *models.GameSignals) (*models.Prediction, error) {
	var adjustments []adjustment

	h2h, ok, err := a.headToHead(ctx, game)
	if err != nil {
		return nil, err
	}
	if ok {
		adjustments = append(adjustments, adjustment{"head_to_head", h2h, a.cfg.Weights.HeadToHead})
	}

	split, ok, err := a.homeAwaySplit(ctx, game)
	if err != nil {
		return nil, err
	}
	if ok {
		adjustments = append(adjustments, adjustment{"home_away_split", split, a.cfg.Weights.HomeAwaySplit})
	}

	if signals != nil {
		if len(signals.HomeInjuries) > 0 || len(signals.AwayInjuries) > 0 {
			signal := injuryImpact(signals.AwayInjuries) - injuryImpact(signals.HomeInjuries)
			adjustments = append(adjustments, adjustment{"injury", clamp(signal, -1, 1), a.cfg.Weights.Injury})
		}
		if len(signals.HomeNews) > 0 || len(signals.AwayNews) > 0 {
			signal := (averageSentiment(signals.HomeNews) - averageSentiment(signals.AwayNews)) / 2
			adjustments = append(adjustments, adjustment{"sentiment", clamp(signal, -1, 1), a.cfg.Weights.Sentiment})
		}
		if signals.Weather != nil {
			signal := weatherSignal(signals.Weather, signals.HomePassRatio, signals.AwayPassRatio)
			adjustments = append(adjustments, adjustment{"weather", clamp(signal, -1, 1), a.cfg.Weights.Weather})
		}
	}

	if len(adjustments) == 0 {
		return base, nil
	}

	total := 0.0
	parts := make([]string, 0, len(adjustments))
	for _, adj := range adjustments {
		total += adj.contribution()
		parts = append(parts, fmt.Sprintf("%s %+.3f", adj.name, adj.contribution()))
	}

	probability := clamp(base.HomeWinProbability+total, a.cfg.MinProbability, a.cfg.MaxProbability)
	reasoning := fmt.Sprintf("%s; adjustments: %s", base.Reasoning, strings.Join(parts, ", "))

	adjusted, err := models.NewPrediction(base.GameID, probability, base.Confidence, reasoning)
	if err != nil {
		return nil, err
	}
	adjusted.ModelName = "multi_factor"
	adjusted.ModelVersion = "1"
	adjusted.PredictedHomeScore = base.PredictedHomeScore
	adjusted.PredictedAwayScore = base.PredictedAwayScore

	a.logger.WithFields(logrus.Fields{
		"game_id":  game.ID,
		"baseline": base.HomeWinProbability,
		"adjusted": probability,
		"signals":  len(adjustments),
	}).Debug("Multi-factor adjustment applied")

	return adjusted, nil
}

// headToHead returns the home team's signed edge in direct matchups
// over the configured lookback window. Second return is false when no
// direct matchups exist.
func (a *Adjuster) headToHead(ctx context.Context, game *models.Game) (float64, bool, error) {
	home := game.HomeTeam.Abbreviation
	away := game.AwayTeam.Abbreviation
	firstSeason := game.Season - a.cfg.HeadToHeadSeasons + 1

	played, wins := 0, 0
	for season := firstSeason; season <= game.Season; season++ {
		games, err := a.games.GetByTeamAndSeason(ctx, home, season)
		if err != nil {
			return 0, false, err
		}
		for _, g := range games {
			if !g.IsCompleted() || !g.Involves(away) {
				continue
			}
			played++
			if g.WonBy(home) {
				wins++
			}
		}
	}

	if played == 0 {
		return 0, false, nil
	}
	rate := float64(wins) / float64(played)
	return (rate - 0.5) * 2, true, nil
}

// homeAwaySplit compares the home team's win rate at home against the
// away team's win rate on the road, current season only.
func (a *Adjuster) homeAwaySplit(ctx context.Context, game *models.Game) (float64, bool, error) {
	homeRate, homePlayed, err := a.splitRate(ctx, game.HomeTeam.Abbreviation, game.Season, true)
	if err != nil {
		return 0, false, err
	}
	awayRate, awayPlayed, err := a.splitRate(ctx, game.AwayTeam.Abbreviation, game.Season, false)
	if err != nil {
		return 0, false, err
	}

	if homePlayed == 0 || awayPlayed == 0 {
		return 0, false, nil
	}
	return homeRate - awayRate, true, nil
}

func (a *Adjuster) splitRate(ctx context.Context, team string, season int, atHome bool) (float64, int, error) {
	games, err := a.games.GetByTeamAndSeason(ctx, team, season)
	if err != nil {
		return 0, 0, err
	}

	played, wins := 0, 0
	for _, g := range games {
		if !g.IsCompleted() {
			continue
		}
		isHome := g.HomeTeam.Abbreviation == team
		if isHome != atHome {
			continue
		}
		played++
		if g.WonBy(team) {
			wins++
		}
	}
	if played == 0 {
		return 0, 0, nil
	}
	return float64(wins) / float64(played), played, nil
}

// injuryImpact scores a team's injury report: the top three injuries
// by impact, each weighted by position and severity, with diminishing
// contribution per additional injury.
func injuryImpact(injuries []models.InjuryReport) float64 {
	if len(injuries) == 0 {
		return 0
	}

	impacts := make([]float64, 0, len(injuries))
	for _, injury := range injuries {
		position := positionWeights[strings.ToUpper(injury.Position)]
		if position == 0 {
			position = defaultPositionWeight
		}
		impacts = append(impacts, position*severityWeights[injury.Severity])
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(impacts)))

	total := 0.0
	for i, impact := range impacts {
		if i >= len(injuryDiminish) {
			break
		}
		total += impact * injuryDiminish[i]
	}
	return total
}

func averageSentiment(items []models.NewsItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range items {
		sum += item.Sentiment
	}
	return sum / float64(len(items))
}

// weatherSignal converts conditions into a signed signal. Bad weather
// suppresses passing offenses more than running ones, so the penalty
// lands asymmetrically based on each team's estimated pass/run ratio.
// Positive output favors the home side.
func weatherSignal(weather *models.WeatherForecast, homePassRatio, awayPassRatio float64) float64 {
	penalty := 0.0
	if weather.WindSpeedMPH > 15 {
		penalty += math.Min(0.5, (weather.WindSpeedMPH-15)/30)
	}
	if weather.TemperatureF < 25 {
		penalty += math.Min(0.3, (25-weather.TemperatureF)/50)
	}
	penalty += 0.2 * weather.PrecipitationChance

	if homePassRatio == 0 {
		homePassRatio = leagueAveragePassRatio
	}
	if awayPassRatio == 0 {
		awayPassRatio = leagueAveragePassRatio
	}

	// Penalty hits the more pass-heavy side harder.
	return penalty * (awayPassRatio - homePassRatio)
}

// Package training estimates how fast a skill improves.
package training

import (
	"fmt"
	"math"
	"slices"
)

// SeasonWeeks is the number of training weeks in a season.
const SeasonWeeks = 16

// TrainType is a training type as named on the training page.
type TrainType string

const (
	Goalkeeping    TrainType = "GK"
	Defending      TrainType = "DF"
	Playmaking     TrainType = "PM"
	Winger         TrainType = "W"
	Passing        TrainType = "PS"
	Scoring        TrainType = "SC"
	SetPieces      TrainType = "SP"
	ScoringPassing TrainType = "SC_and_PS"
	FirstPassing   TrainType = "FirstPS"
	ZoneDefending  TrainType = "ZoneDF"
	WingAttack     TrainType = "WingAttack"
)

var trainTypeCoeff = map[TrainType]float64{
	Goalkeeping:    0.0510,
	Defending:      0.0288,
	Playmaking:     0.0336,
	Winger:         0.0480,
	Passing:        0.0360,
	Scoring:        0.0324,
	SetPieces:      0.01470,
	ScoringPassing: 0.0150,
	FirstPassing:   3.15,
	ZoneDefending:  1.38,
	WingAttack:     0.0312,
}

// share of the full training a player gets on a background slot
var backgroundRatio = map[TrainType]float64{
	Defending:     1.0 / 6,
	Playmaking:    1.0 / 8,
	Winger:        1.0 / 8,
	Passing:       1.0 / 6,
	Scoring:       1.0 / 6,
	FirstPassing:  1.0 / 6,
	ZoneDefending: 1.0 / 6,
	WingAttack:    5.0 / 39,
}

var coachCoeff = map[int]float64{
	8: 1.0375,
	7: 1.0000,
	6: 0.9200,
	5: 0.8324,
	4: 0.7343,
}

// TrainTypes returns every known training type, sorted.
func TrainTypes() []TrainType {
	out := make([]TrainType, 0, len(trainTypeCoeff))
	for t := range trainTypeCoeff {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func ParseTrainType(s string) (TrainType, error) {
	for t := range trainTypeCoeff {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown training type '%s', expected one of %v", s, TrainTypes())
}

func LevelCoeff(level float64) float64 {
	if level < 9 {
		return 16.289 * math.Exp(-0.1396*level)
	}
	return 54.676/level - 1.438
}

func CoachCoeff(level int) (float64, error) {
	c, ok := coachCoeff[level]
	if !ok {
		return 0, fmt.Errorf("unsupported coach level %d, expected 4 to 8", level)
	}
	return c, nil
}

func AssistantCoeff(level int) (float64, error) {
	if level < 0 || level > 10 {
		return 0, fmt.Errorf("unsupported assistant level %d, expected 0 to 10", level)
	}
	return 1 + 0.035*float64(level), nil
}

func IntensityCoeff(percent int) float64 {
	return float64(percent) / 100
}

func StaminaCoeff(percent int) float64 {
	return float64(100-percent) / 100
}

func TrainCoeff(t TrainType, full bool) (float64, error) {
	c, ok := trainTypeCoeff[t]
	if !ok {
		return 0, fmt.Errorf("unknown training type '%s'", t)
	}
	if full {
		return c, nil
	}
	ratio, ok := backgroundRatio[t]
	if !ok {
		return 0, fmt.Errorf("'%s' cannot be trained on a background slot", t)
	}
	return c * ratio, nil
}

func AgeCoeff(age float64) float64 {
	return 54 / (age + 37)
}

// PlayTimeCoeff assumes full matches by default.
func PlayTimeCoeff(minutes int) float64 {
	return float64(minutes) / 90
}

type Params struct {
	Level     float64
	Coach     int
	Assistant int
	// percentages, 100 means 100%
	Intensity int
	Stamina   int
	TrainType TrainType
	// false means the player is trained on a background slot
	Full bool
	Age  float64
	// zero means 90 minutes
	PlayTime int
}

func (p Params) Validate() error {
	if p.Intensity < 0 || p.Intensity > 100 {
		return fmt.Errorf("intensity %d%% is out of range", p.Intensity)
	}
	if p.Stamina < 0 || p.Stamina > 100 {
		return fmt.Errorf("stamina %d%% is out of range", p.Stamina)
	}
	if p.Level <= 0 {
		return fmt.Errorf("skill level %v must be positive", p.Level)
	}
	_, err := CoachCoeff(p.Coach)
	if err != nil {
		return err
	}
	_, err = AssistantCoeff(p.Assistant)
	if err != nil {
		return err
	}
	_, err = TrainCoeff(p.TrainType, p.Full)
	return err
}

// Progress returns the fraction of a level gained in one week, at most 1.
func Progress(p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	coach, _ := CoachCoeff(p.Coach)
	assistant, _ := AssistantCoeff(p.Assistant)
	train, _ := TrainCoeff(p.TrainType, p.Full)
	playTime := p.PlayTime
	if playTime == 0 {
		playTime = 90
	}

	progress := LevelCoeff(p.Level) *
		coach *
		assistant *
		IntensityCoeff(p.Intensity) *
		StaminaCoeff(p.Stamina) *
		train *
		AgeCoeff(p.Age) *
		PlayTimeCoeff(playTime)
	return math.Min(progress, 1), nil
}

// NextLevelAfterSeason trains the player for a season and returns the level
// reached. The player ages one week per training.
func NextLevelAfterSeason(p Params) (int, error) {
	level := p.Level
	for week := 0; week < SeasonWeeks; week++ {
		current := p
		current.Level = level
		current.Age = p.Age + float64(week)/SeasonWeeks
		progress, err := Progress(current)
		if err != nil {
			return 0, err
		}
		level += progress
	}
	return int(math.Floor(level)), nil
}

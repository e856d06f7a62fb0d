// Package hattrick holds the records scraped from the site.
package hattrick

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysPerYear is the length of a season, a player ages one year per season.
const DaysPerYear = 112

// AgeFormat documents the textual form accepted by ParseAge.
const AgeFormat = "<years>.<days>"

type Age struct {
	Years int
	Days  int
}

// ParseAge parses "17.23" as 17 years and 23 days.
func ParseAge(s string) (Age, error) {
	years, days, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Age{}, fmt.Errorf("'%s' is not an age in '%s' format", s, AgeFormat)
	}
	y, err := strconv.Atoi(years)
	if err != nil {
		return Age{}, fmt.Errorf("parse years of '%s': %w", s, err)
	}
	d, err := strconv.Atoi(days)
	if err != nil {
		return Age{}, fmt.Errorf("parse days of '%s': %w", s, err)
	}
	return NewAge(y, d)
}

func NewAge(years, days int) (Age, error) {
	if years < 0 || days < 0 || days >= DaysPerYear {
		return Age{}, fmt.Errorf("%d years and %d days is not a valid age", years, days)
	}
	return Age{Years: years, Days: days}, nil
}

// InDays returns the age counted in days.
func (a Age) InDays() int {
	return a.Years*DaysPerYear + a.Days
}

// InYears returns the age as a fraction of years.
func (a Age) InYears() float64 {
	return float64(a.Years) + float64(a.Days)/DaysPerYear
}

func (a Age) String() string {
	return fmt.Sprintf("%d.%d", a.Years, a.Days)
}

var ErrNationalStatusConflict = errors.New("a player cannot be a national team player and a prospect at the same time")

// NationalStatus tells whether a player plays for (or is considered by) the
// national team.
type NationalStatus struct {
	Player   bool
	Prospect bool
}

func NewNationalStatus(player, prospect bool) (NationalStatus, error) {
	if player && prospect {
		return NationalStatus{}, ErrNationalStatusConflict
	}
	return NationalStatus{Player: player, Prospect: prospect}, nil
}

func (s NationalStatus) String() string {
	return fmt.Sprintf("NTP:%t NTPP:%t", s.Player, s.Prospect)
}

type Ability struct {
	Form    int
	Stamina int
}

type Skills struct {
	Playmaking int
	Winger     int
	Passing    int
	Scoring    int
	// empty when the player has no speciality
	Speciality string
}

type Player struct {
	Id            int
	Name          string
	Link          string
	Age           Age
	TSI           int
	Ability       Ability
	Skills        Skills
	Status        NationalStatus
	SellBasePrice int
}

func (p Player) String() string {
	return fmt.Sprintf(
		"'%s' (id:'%d') age:'%s' TSI:'%d' %s SBP:%d",
		p.Name, p.Id, p.Age, p.TSI, p.Status, p.SellBasePrice,
	)
}

type Finance struct {
	Total         int
	BoardReserves int
}

type Team struct {
	Id      int
	Name    string
	Finance Finance
}

func (t Team) String() string {
	return fmt.Sprintf(
		"'%s' (id:'%d') total:%d board reserves:%d",
		t.Name, t.Id, t.Finance.Total, t.Finance.BoardReserves,
	)
}

// Source is where a player came from.
type Source string

const (
	SourceYouthAcademy Source = "youth"
	SourceTransfer     Source = "transfer"
	SourceOther        Source = "other"
)

func Sources() []Source {
	return []Source{SourceYouthAcademy, SourceTransfer, SourceOther}
}

func ParseSource(s string) (Source, error) {
	for _, source := range Sources() {
		if string(source) == s {
			return source, nil
		}
	}
	names := make([]string, len(Sources()))
	for i, source := range Sources() {
		names[i] = string(source)
	}
	return "", fmt.Errorf("unknown source '%s', expected one of (%s)", s, strings.Join(names, ", "))
}

// ArrivalFormat is the layout of arrival dates on the command line.
const ArrivalFormat = time.DateOnly

// ExtraInfo is what the site cannot tell about a newly added player.
type ExtraInfo struct {
	Source       Source
	Stars        float64
	ReservePrice float64
	BuyPrice     float64
	Arrival      time.Time
}

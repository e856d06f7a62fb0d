// Package ledger keeps the daily history of the team and of the monitored
// players. There is at most one snapshot per player (and per team) a day,
// updating on the same day replaces that day's snapshot.
package ledger

import (
	"context"
	"errors"
	"time"

	"htassist/lib/hattrick"
	"htassist/lib/telemetry"
)

var tracer = telemetry.Tracer("htassist.services.ledger")

const (
	report_read_only_skip = "ledger.read-only.skip"
	report_player_added   = "ledger.player.added"
	report_player_sold    = "ledger.player.sold"
)

var (
	ErrUnknownPlayer = errors.New("player is not in the ledger")
	ErrPlayerExists  = errors.New("player is already in the ledger")
)

// Ledger is what the use cases need from persistence.
type Ledger interface {
	// ListMonitoredNames returns the players that were not sold, in arrival
	// order.
	ListMonitoredNames(ctx context.Context) ([]string, error)
	UpdateTeam(ctx context.Context, team hattrick.Team, at time.Time) error
	UpdatePlayer(ctx context.Context, player hattrick.Player, at time.Time) error
	// AddPlayer starts monitoring a player, its first snapshot is filed at
	// the arrival date.
	AddPlayer(ctx context.Context, player hattrick.Player, extra hattrick.ExtraInfo) error
	SellPlayer(ctx context.Context, name string, at time.Time) error
	Players(ctx context.Context) ([]Entry, error)
	PlayerHistory(ctx context.Context, name string) (Entry, []PlayerSnapshot, error)
	TeamHistory(ctx context.Context, teamId int) ([]TeamSnapshot, error)
}

// Entry is a player as the ledger knows it.
type Entry struct {
	Id    int
	Name  string
	Link  string
	Extra hattrick.ExtraInfo
	// zero while the player is monitored
	Sold time.Time
}

func (e Entry) IsSold() bool {
	return !e.Sold.IsZero()
}

type PlayerSnapshot struct {
	Time   time.Time
	Player hattrick.Player
}

type TeamSnapshot struct {
	Time time.Time
	Team hattrick.Team
}

// Package monitor runs the use cases: refreshing the ledger from the site
// and adding newly arrived players to it.
package monitor

import (
	"context"
	"fmt"
	"time"

	"htassist/lib/hattrick"
	"htassist/lib/scrapers/hattrick/view"
	"htassist/lib/telemetry"
	"htassist/lib/timezone"
	"htassist/services/ledger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("htassist.services.monitor")

var meter = otel.Meter("htassist.services.monitor")
var totalGauge, _ = meter.Int64Gauge("team_total", metric.WithDescription("the team's money after the last update"))
var reservesGauge, _ = meter.Int64Gauge("board_reserves", metric.WithDescription("the board's reserves after the last update"))
var playerCounter, _ = meter.Int64Counter("player_updates", metric.WithDescription("player snapshots filed"))

const (
	report_update_player = "monitor.update.player"
	report_update_count  = "monitor.update.players"
	report_add_player    = "monitor.add.player"
)

// Scraper reads the site, view.Client is the implementation.
type Scraper interface {
	Team(ctx context.Context) (hattrick.Team, error)
	PlayerListPage(ctx context.Context) (view.PlayerListPage, error)
	PlayerByName(ctx context.Context, name string, list view.PlayerListPage) (hattrick.Player, error)
}

type Service struct {
	ledger ledger.Ledger
	tel    telemetry.API
	now    func() time.Time
}

func NewService(l ledger.Ledger, tel telemetry.API) Service {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Service{
		ledger: l,
		tel:    telemetry.NewScopedAPI("monitor", tel),
		now:    timezone.Now,
	}
}

// Summary is what an update found.
type Summary struct {
	Time    time.Time
	Team    hattrick.Team
	Players []hattrick.Player
}

// Update files today's snapshot of the team and of every monitored player.
// The player list is downloaded once, the first failure stops the update.
func (s Service) Update(ctx context.Context, scraper Scraper) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	summary := Summary{Time: s.now()}

	team, err := scraper.Team(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read team")
		return Summary{}, fmt.Errorf("team: %w", err)
	}
	err = s.ledger.UpdateTeam(ctx, team, summary.Time)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store team")
		return Summary{}, err
	}
	summary.Team = team
	teamAttr := metric.WithAttributes(attribute.Int("team_id", team.Id))
	totalGauge.Record(ctx, int64(team.Finance.Total), teamAttr)
	reservesGauge.Record(ctx, int64(team.Finance.BoardReserves), teamAttr)

	names, err := s.ledger.ListMonitoredNames(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list monitored players")
		return Summary{}, err
	}
	if len(names) == 0 {
		return summary, nil
	}

	list, err := scraper.PlayerListPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read player list")
		return Summary{}, err
	}
	for _, name := range names {
		player, err := scraper.PlayerByName(ctx, name, list)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read player")
			return Summary{}, fmt.Errorf("player '%s': %w", name, err)
		}
		err = s.ledger.UpdatePlayer(ctx, player, summary.Time)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to store player")
			return Summary{}, err
		}
		s.tel.ReportDebug(report_update_player, player.String())
		playerCounter.Add(ctx, 1, teamAttr)
		summary.Players = append(summary.Players, player)
	}

	span.SetAttributes(attribute.Int("players", len(summary.Players)))
	s.tel.ReportCount(report_update_count, int64(len(summary.Players)))
	return summary, nil
}

// AddPlayerRequest describes a newly arrived player. The optional values
// replace what the site shows, for players that arrived before today.
type AddPlayerRequest struct {
	Name          string
	Extra         hattrick.ExtraInfo
	Age           *hattrick.Age
	TSI           *int
	SellBasePrice *int
}

func (r AddPlayerRequest) validate() error {
	if r.Name == "" {
		return fmt.Errorf("the player's name is required")
	}
	if _, err := hattrick.ParseSource(string(r.Extra.Source)); err != nil {
		return err
	}
	if r.Extra.Arrival.IsZero() {
		return fmt.Errorf("the arrival date of '%s' is required", r.Name)
	}
	if r.Extra.Stars < 0 || r.Extra.ReservePrice < 0 || r.Extra.BuyPrice < 0 {
		return fmt.Errorf("stars and prices of '%s' cannot be negative", r.Name)
	}
	return nil
}

// AddPlayer reads the player from the site and starts monitoring it.
func (s Service) AddPlayer(ctx context.Context, scraper Scraper, req AddPlayerRequest) (hattrick.Player, error) {
	ctx, span := tracer.Start(ctx, "AddPlayer")
	defer span.End()
	span.SetAttributes(attribute.String("name", req.Name))

	err := req.validate()
	if err != nil {
		return hattrick.Player{}, err
	}

	list, err := scraper.PlayerListPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read player list")
		return hattrick.Player{}, err
	}
	player, err := scraper.PlayerByName(ctx, req.Name, list)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read player")
		return hattrick.Player{}, err
	}
	if req.Age != nil {
		player.Age = *req.Age
	}
	if req.TSI != nil {
		player.TSI = *req.TSI
	}
	if req.SellBasePrice != nil {
		player.SellBasePrice = *req.SellBasePrice
	}

	err = s.ledger.AddPlayer(ctx, player, req.Extra)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store player")
		return hattrick.Player{}, err
	}
	s.tel.ReportDebug(report_add_player, player.String())
	return player, nil
}

package ledger

import (
	"context"
	"time"

	"htassist/lib/hattrick"
	"htassist/lib/telemetry"
)

// ReadOnly serves reads from the wrapped ledger and reports the writes it
// skips.
type ReadOnly struct {
	inner Ledger
	tel   telemetry.API
}

func NewReadOnly(inner Ledger, tel telemetry.API) ReadOnly {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return ReadOnly{inner: inner, tel: telemetry.NewScopedAPI("ledger", tel)}
}

func (r ReadOnly) skip(operation, subject string) {
	r.tel.ReportWarning(report_read_only_skip, operation, subject)
}

func (r ReadOnly) ListMonitoredNames(ctx context.Context) ([]string, error) {
	return r.inner.ListMonitoredNames(ctx)
}

func (r ReadOnly) UpdateTeam(ctx context.Context, team hattrick.Team, at time.Time) error {
	r.skip("update team", team.Name)
	return nil
}

func (r ReadOnly) UpdatePlayer(ctx context.Context, player hattrick.Player, at time.Time) error {
	r.skip("update player", player.Name)
	return nil
}

func (r ReadOnly) AddPlayer(ctx context.Context, player hattrick.Player, extra hattrick.ExtraInfo) error {
	r.skip("add player", player.Name)
	return nil
}

func (r ReadOnly) SellPlayer(ctx context.Context, name string, at time.Time) error {
	r.skip("sell player", name)
	return nil
}

func (r ReadOnly) Players(ctx context.Context) ([]Entry, error) {
	return r.inner.Players(ctx)
}

func (r ReadOnly) PlayerHistory(ctx context.Context, name string) (Entry, []PlayerSnapshot, error) {
	return r.inner.PlayerHistory(ctx, name)
}

func (r ReadOnly) TeamHistory(ctx context.Context, teamId int) ([]TeamSnapshot, error) {
	return r.inner.TeamHistory(ctx, teamId)
}

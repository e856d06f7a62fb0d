package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"htassist/lib/hattrick"
	"htassist/lib/telemetry"
	"htassist/lib/timezone"
	"htassist/services/ledger/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Store is the Ledger on a SQL database with db.Schema applied.
type Store struct {
	db  *sql.DB
	qry *db.Queries
	tel telemetry.API
}

func NewStore(database *sql.DB, tel telemetry.API) Store {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Store{
		db:  database,
		qry: db.New(database),
		tel: telemetry.NewScopedAPI("ledger", tel),
	}
}

// Migrate applies the schema, it is idempotent.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

func (s Store) ListMonitoredNames(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ListMonitoredNames")
	defer span.End()

	names, err := s.qry.GetMonitoredNames(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return names, nil
}

func (s Store) UpdateTeam(ctx context.Context, team hattrick.Team, at time.Time) error {
	ctx, span := tracer.Start(ctx, "UpdateTeam")
	defer span.End()
	span.SetAttributes(attribute.Int("team_id", team.Id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	startOfDay, startOfTomorrow := timezone.DayBounds(at)
	err = txqry.DeleteTeamSnapshotsIn(ctx, db.DeleteTeamSnapshotsInParams{
		TeamId: int64(team.Id),
		After:  startOfDay.Unix(),
		Before: startOfTomorrow.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	err = txqry.CreateTeamSnapshot(ctx, db.CreateTeamSnapshotParams{
		TeamId:        int64(team.Id),
		Time:          at.Unix(),
		Name:          team.Name,
		Total:         int64(team.Finance.Total),
		BoardReserves: int64(team.Finance.BoardReserves),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// replaceSnapshot files the player's snapshot under the day of `at`.
func replaceSnapshot(ctx context.Context, qry *db.Queries, player hattrick.Player, at time.Time) error {
	startOfDay, startOfTomorrow := timezone.DayBounds(at)
	err := qry.DeletePlayerSnapshotsIn(ctx, db.DeletePlayerSnapshotsInParams{
		PlayerId: int64(player.Id),
		After:    startOfDay.Unix(),
		Before:   startOfTomorrow.Unix(),
	})
	if err != nil {
		return err
	}
	return qry.CreatePlayerSnapshot(ctx, db.CreatePlayerSnapshotParams{
		PlayerId:      int64(player.Id),
		Time:          at.Unix(),
		AgeDays:       int64(player.Age.InDays()),
		Tsi:           int64(player.TSI),
		Form:          int64(player.Ability.Form),
		Stamina:       int64(player.Ability.Stamina),
		Playmaking:    int64(player.Skills.Playmaking),
		Winger:        int64(player.Skills.Winger),
		Passing:       int64(player.Skills.Passing),
		Scoring:       int64(player.Skills.Scoring),
		Speciality:    player.Skills.Speciality,
		NtPlayer:      player.Status.Player,
		NtProspect:    player.Status.Prospect,
		SellBasePrice: int64(player.SellBasePrice),
	})
}

func (s Store) UpdatePlayer(ctx context.Context, player hattrick.Player, at time.Time) error {
	ctx, span := tracer.Start(ctx, "UpdatePlayer")
	defer span.End()
	span.SetAttributes(attribute.String("name", player.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	row, err := txqry.GetPlayerByName(ctx, player.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("'%s': %w", player.Name, ErrUnknownPlayer)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if row.ID != int64(player.Id) {
		return fmt.Errorf("'%s' has id %d in the ledger, not %d", player.Name, row.ID, player.Id)
	}

	if player.Link != "" && player.Link != row.Link {
		err = txqry.SetPlayerLink(ctx, db.SetPlayerLinkParams{Link: player.Link, ID: row.ID})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	err = replaceSnapshot(ctx, txqry, player, at)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s Store) AddPlayer(ctx context.Context, player hattrick.Player, extra hattrick.ExtraInfo) error {
	ctx, span := tracer.Start(ctx, "AddPlayer")
	defer span.End()
	span.SetAttributes(attribute.String("name", player.Name))

	if extra.Arrival.IsZero() {
		return fmt.Errorf("'%s' has no arrival date", player.Name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	_, err = txqry.GetPlayerByName(ctx, player.Name)
	if err == nil {
		return fmt.Errorf("'%s': %w", player.Name, ErrPlayerExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = txqry.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:           int64(player.Id),
		Name:         player.Name,
		Link:         player.Link,
		Source:       string(extra.Source),
		Stars:        extra.Stars,
		ReservePrice: extra.ReservePrice,
		BuyPrice:     extra.BuyPrice,
		Arrival:      extra.Arrival.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("add '%s': %w", player.Name, err)
	}
	err = replaceSnapshot(ctx, txqry, player, extra.Arrival)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.tel.ReportDebug(report_player_added, player.Name, player.Id)
	return nil
}

func (s Store) SellPlayer(ctx context.Context, name string, at time.Time) error {
	ctx, span := tracer.Start(ctx, "SellPlayer")
	defer span.End()
	span.SetAttributes(attribute.String("name", name))

	affected, err := s.qry.SellPlayer(ctx, db.SellPlayerParams{
		Sold: sql.NullInt64{Int64: at.Unix(), Valid: true},
		Name: name,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if affected == 0 {
		return fmt.Errorf("'%s' is not monitored: %w", name, ErrUnknownPlayer)
	}
	s.tel.ReportDebug(report_player_sold, name)
	return nil
}

func entryFromRow(row db.Player) Entry {
	entry := Entry{
		Id:   int(row.ID),
		Name: row.Name,
		Link: row.Link,
		Extra: hattrick.ExtraInfo{
			Source:       hattrick.Source(row.Source),
			Stars:        row.Stars,
			ReservePrice: row.ReservePrice,
			BuyPrice:     row.BuyPrice,
			Arrival:      time.Unix(row.Arrival, 0).In(timezone.Location),
		},
	}
	if row.Sold.Valid {
		entry.Sold = time.Unix(row.Sold.Int64, 0).In(timezone.Location)
	}
	return entry
}

func (s Store) Players(ctx context.Context) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "Players")
	defer span.End()

	rows, err := s.qry.GetPlayers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = entryFromRow(row)
	}
	return entries, nil
}

func (s Store) PlayerHistory(ctx context.Context, name string) (Entry, []PlayerSnapshot, error) {
	ctx, span := tracer.Start(ctx, "PlayerHistory")
	defer span.End()

	row, err := s.qry.GetPlayerByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, nil, fmt.Errorf("'%s': %w", name, ErrUnknownPlayer)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entry{}, nil, err
	}
	entry := entryFromRow(row)

	rows, err := s.qry.GetPlayerSnapshots(ctx, row.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entry{}, nil, err
	}
	snapshots := make([]PlayerSnapshot, len(rows))
	for i, r := range rows {
		snapshots[i] = PlayerSnapshot{
			Time: time.Unix(r.Time, 0).In(timezone.Location),
			Player: hattrick.Player{
				Id:   entry.Id,
				Name: entry.Name,
				Link: entry.Link,
				Age: hattrick.Age{
					Years: int(r.AgeDays) / hattrick.DaysPerYear,
					Days:  int(r.AgeDays) % hattrick.DaysPerYear,
				},
				TSI:     int(r.Tsi),
				Ability: hattrick.Ability{Form: int(r.Form), Stamina: int(r.Stamina)},
				Skills: hattrick.Skills{
					Playmaking: int(r.Playmaking),
					Winger:     int(r.Winger),
					Passing:    int(r.Passing),
					Scoring:    int(r.Scoring),
					Speciality: r.Speciality,
				},
				Status:        hattrick.NationalStatus{Player: r.NtPlayer, Prospect: r.NtProspect},
				SellBasePrice: int(r.SellBasePrice),
			},
		}
	}
	return entry, snapshots, nil
}

func (s Store) TeamHistory(ctx context.Context, teamId int) ([]TeamSnapshot, error) {
	ctx, span := tracer.Start(ctx, "TeamHistory")
	defer span.End()

	rows, err := s.qry.GetTeamSnapshots(ctx, int64(teamId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	snapshots := make([]TeamSnapshot, len(rows))
	for i, r := range rows {
		snapshots[i] = TeamSnapshot{
			Time: time.Unix(r.Time, 0).In(timezone.Location),
			Team: hattrick.Team{
				Id:   int(r.TeamId),
				Name: r.Name,
				Finance: hattrick.Finance{
					Total:         int(r.Total),
					BoardReserves: int(r.BoardReserves),
				},
			},
		}
	}
	return snapshots, nil
}

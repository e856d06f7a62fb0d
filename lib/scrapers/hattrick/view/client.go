// Package view reads team and player records off the pages of a logged in
// core.Client.
package view

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"htassist/lib/blockscan"
	"htassist/lib/hattrick"
	"htassist/lib/htmlutil"
	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/telemetry"
	"htassist/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("htassist.lib.scrapers.hattrick.view")

type Client struct {
	Core *core.Client
}

func NewClient(coreClient *core.Client) Client {
	return Client{Core: coreClient}
}

func (c Client) session() (core.Session, error) {
	session, ok := c.Core.Session()
	if !ok {
		return core.Session{}, core.ErrNotLoggedIn
	}
	return session, nil
}

// field builds a blockscan field from dictionary entries, an empty name
// leaves the pattern empty.
func (c Client) field(name, blockField, valueField string) (*blockscan.Field, error) {
	f := &blockscan.Field{Name: name}
	var err error
	if blockField != "" {
		f.Block, err = c.Core.Resolve(blockField)
		if err != nil {
			return nil, err
		}
	}
	if valueField != "" {
		f.Value, err = c.Core.Resolve(valueField)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// scan runs the fields over the document, a failure is dumped with `suffix`.
func (c Client) scan(doc core.Document, suffix string, fields ...*blockscan.Field) error {
	err := blockscan.ScanString(doc.Body, fields...)
	if err != nil {
		return c.Core.PageError(doc, suffix, fmt.Sprintf("failed to read the %s page", suffix), err)
	}
	return nil
}

func (c Client) moneyPattern() string {
	return fmt.Sprintf(`(?P<value>[0-9][0-9 ]+) %s`, regexp.QuoteMeta(c.Core.Currency()))
}

// Team reads the team's finances.
func (c Client) Team(ctx context.Context) (hattrick.Team, error) {
	ctx, span := tracer.Start(ctx, "client:Team")
	defer span.End()

	session, err := c.session()
	if err != nil {
		return hattrick.Team{}, err
	}
	doc, err := c.Core.Get(ctx, core.TeamFinanceLink+strconv.Itoa(session.TeamId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch finances")
		return hattrick.Team{}, err
	}

	total, err := c.field(core.FieldTotal, core.FieldTotal, "")
	if err != nil {
		return hattrick.Team{}, err
	}
	reserves, err := c.field(core.FieldBoardReserves, core.FieldBoardReserves, "")
	if err != nil {
		return hattrick.Team{}, err
	}
	for _, f := range []*blockscan.Field{total, reserves} {
		f.Value = c.moneyPattern()
	}

	err = c.scan(doc, "finances", total, reserves)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read finances")
		return hattrick.Team{}, err
	}

	team := hattrick.Team{Id: session.TeamId, Name: session.TeamName}
	team.Finance.Total, err = total.Int()
	if err != nil {
		return hattrick.Team{}, err
	}
	team.Finance.BoardReserves, err = reserves.Int()
	if err != nil {
		return hattrick.Team{}, err
	}
	return team, nil
}

// PlayerLink is an entry of the team's player list.
type PlayerLink htmlutil.Anchor

// Id returns the playerId of the link.
func (p PlayerLink) Id() (int, error) {
	return htmlutil.Anchor(p).QueryInt("playerId")
}

type PlayerListPage struct {
	Players []PlayerLink
}

// Names returns the listed names in page order.
func (p PlayerListPage) Names() []string {
	names := make([]string, len(p.Players))
	for i, player := range p.Players {
		names[i] = player.Name
	}
	return names
}

// PlayerListPage downloads the team's player list, a run only needs it once.
func (c Client) PlayerListPage(ctx context.Context) (PlayerListPage, error) {
	ctx, span := tracer.Start(ctx, "client:PlayerListPage")
	defer span.End()

	session, err := c.session()
	if err != nil {
		return PlayerListPage{}, err
	}
	doc, err := c.Core.Get(ctx, fmt.Sprintf("%s/?TeamID=%d", core.PlayersLink, session.TeamId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player list")
		return PlayerListPage{}, err
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return PlayerListPage{}, c.Core.PageError(doc, "players", "failed to parse the player list", err)
	}
	list := PlayerListPage{}
	for _, a := range htmlutil.Anchors(ctx, page.Find(`a[href*="/Club/Players/Player"]`)) {
		list.Players = append(list.Players, PlayerLink(a))
	}
	span.SetAttributes(attribute.Int("players", len(list.Players)))
	return list, nil
}

type PlayerNotFoundError struct {
	Name string
	// the closest listed name, empty when the list is empty
	Suggestion string
}

func (e *PlayerNotFoundError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("failed to find player '%s' on the player list", e.Name)
	}
	return fmt.Sprintf("failed to find player '%s' on the player list, did you mean '%s'?", e.Name, e.Suggestion)
}

// Find returns the link of the player called `name`.
func (p PlayerListPage) Find(name string) (PlayerLink, error) {
	normalized := textutil.NormalizeName(name)
	suggestion := ""
	best := -1.0
	for _, player := range p.Players {
		candidate := textutil.NormalizeName(player.Name)
		if candidate == normalized {
			return player, nil
		}
		score := matchr.JaroWinkler(normalized, candidate, false)
		if score > best {
			best = score
			suggestion = player.Name
		}
	}
	return PlayerLink{}, &PlayerNotFoundError{Name: name, Suggestion: suggestion}
}

// PlayerByName reads the player called `name` on the list page.
func (c Client) PlayerByName(ctx context.Context, name string, list PlayerListPage) (hattrick.Player, error) {
	link, err := list.Find(name)
	if err != nil {
		return hattrick.Player{}, err
	}
	return c.Player(ctx, link)
}

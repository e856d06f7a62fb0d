package view

import (
	"context"
	"fmt"
	"html"
	"regexp"

	"htassist/lib/blockscan"
	"htassist/lib/hattrick"
	"htassist/lib/scrapers/hattrick/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	tsiBlock        = `TSI</td>`
	tsiValue        = `>(?P<value>[^><]+)</td>`
	skillValue      = `ll=(?P<value>\d+)`
	specialityValue = `<td>(?P<value>[^<]+)</td>`
)

var (
	transferCompareRegex     = regexp.MustCompile(`a href="/(?P<link>Club/Transfers/TransferCompare[^"]+)"`)
	nationalTeamPlayersRegex = regexp.MustCompile(`a href="/(?P<link>Club/NationalTeam/NTPlayers\.aspx[^"]*)"`)
)

// playerPage are the fields of a player page, read in a single pass.
type playerPage struct {
	age        *blockscan.Field
	tsi        *blockscan.Field
	form       *blockscan.Field
	stamina    *blockscan.Field
	playmaking *blockscan.Field
	winger     *blockscan.Field
	passing    *blockscan.Field
	scoring    *blockscan.Field
	speciality *blockscan.Field
	nt         *blockscan.Field
	ntProspect *blockscan.Field
}

func (p playerPage) fields() []*blockscan.Field {
	return []*blockscan.Field{
		p.age, p.tsi, p.form, p.stamina,
		p.playmaking, p.winger, p.passing, p.scoring, p.speciality,
		p.nt, p.ntProspect,
	}
}

func (c Client) newPlayerPage() (playerPage, error) {
	var p playerPage
	var err error

	p.age, err = c.field(core.FieldAge, "", core.FieldAge)
	if err != nil {
		return playerPage{}, err
	}
	p.tsi = &blockscan.Field{Name: "tsi", Block: tsiBlock, Value: tsiValue, MaxLines: 2}

	skills := []struct {
		field **blockscan.Field
		name  string
	}{
		{&p.form, core.FieldForm},
		{&p.stamina, core.FieldStamina},
		{&p.playmaking, core.FieldPlaymaking},
		{&p.winger, core.FieldWinger},
		{&p.passing, core.FieldPassing},
		{&p.scoring, core.FieldScoring},
	}
	for _, s := range skills {
		*s.field, err = c.field(s.name, s.name, "")
		if err != nil {
			return playerPage{}, err
		}
		(*s.field).Value = skillValue
		(*s.field).MaxLines = 1
	}

	p.speciality, err = c.field(core.FieldSpeciality, core.FieldSpeciality, "")
	if err != nil {
		return playerPage{}, err
	}
	p.speciality.Value = specialityValue
	p.speciality.MaxLines = 1
	p.speciality.Optional = true

	p.nt, err = c.field(core.FieldNT, "", core.FieldNT)
	if err != nil {
		return playerPage{}, err
	}
	p.nt.Optional = true
	p.ntProspect, err = c.field(core.FieldNTProspect, "", core.FieldNTProspect)
	if err != nil {
		return playerPage{}, err
	}
	p.ntProspect.Optional = true

	return p, nil
}

func ints(targets map[*blockscan.Field]*int) error {
	for f, target := range targets {
		value, err := f.Int()
		if err != nil {
			return fmt.Errorf("field '%s': %w", f.Name, err)
		}
		*target = value
	}
	return nil
}

// Player reads a player page, the national team page and the transfer
// compare page it links to.
func (c Client) Player(ctx context.Context, link PlayerLink) (hattrick.Player, error) {
	ctx, span := tracer.Start(ctx, "client:Player")
	defer span.End()
	span.SetAttributes(attribute.String("name", link.Name))

	id, err := link.Id()
	if err != nil {
		return hattrick.Player{}, err
	}
	player := hattrick.Player{Id: id, Name: link.Name, Link: link.Href}

	page, err := c.newPlayerPage()
	if err != nil {
		return hattrick.Player{}, err
	}
	doc, err := c.Core.Get(ctx, link.Href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player page")
		return hattrick.Player{}, err
	}
	err = c.scan(doc, "player", page.fields()...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read player page")
		return hattrick.Player{}, err
	}

	years, err := page.age.GroupInt("years")
	if err != nil {
		return hattrick.Player{}, err
	}
	days, err := page.age.GroupInt("days")
	if err != nil {
		return hattrick.Player{}, err
	}
	player.Age, err = hattrick.NewAge(years, days)
	if err != nil {
		return hattrick.Player{}, c.Core.PageError(doc, "player", "unexpected age", err)
	}

	err = ints(map[*blockscan.Field]*int{
		page.tsi:        &player.TSI,
		page.form:       &player.Ability.Form,
		page.stamina:    &player.Ability.Stamina,
		page.playmaking: &player.Skills.Playmaking,
		page.winger:     &player.Skills.Winger,
		page.passing:    &player.Skills.Passing,
		page.scoring:    &player.Skills.Scoring,
	})
	if err != nil {
		return hattrick.Player{}, c.Core.PageError(doc, "player", "unexpected number", err)
	}
	if page.speciality.Found() {
		player.Skills.Speciality, _ = page.speciality.String()
	}

	player.Status, err = c.nationalStatus(ctx, doc, id, page.nt.Found(), page.ntProspect.Found())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to determine national status")
		return hattrick.Player{}, err
	}

	player.SellBasePrice, err = c.SellBasePrice(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to determine sell base price")
		return hattrick.Player{}, err
	}
	return player, nil
}

// nationalStatus completes the markers of the player page with the national
// team's player list when the page links to one and the player marker is
// missing.
func (c Client) nationalStatus(ctx context.Context, doc core.Document, id int, player, prospect bool) (hattrick.NationalStatus, error) {
	if !player {
		match := nationalTeamPlayersRegex.FindStringSubmatch(doc.Body)
		if match != nil {
			ntDoc, err := c.Core.Get(ctx, html.UnescapeString(match[1]))
			if err != nil {
				return hattrick.NationalStatus{}, err
			}
			listed := regexp.MustCompile(fmt.Sprintf(`playerId=%d\b`, id))
			player = listed.MatchString(ntDoc.Body)
		}
	}
	status, err := hattrick.NewNationalStatus(player, prospect)
	if err != nil {
		return hattrick.NationalStatus{}, c.Core.PageError(doc, "national_status", "conflicting national team markers", err)
	}
	return status, nil
}

// SellBasePrice follows the transfer compare link of a player page, loads
// the further transfers once and reads the average price.
func (c Client) SellBasePrice(ctx context.Context, playerDoc core.Document) (int, error) {
	ctx, span := tracer.Start(ctx, "client:SellBasePrice")
	defer span.End()

	match := transferCompareRegex.FindStringSubmatch(playerDoc.Body)
	if match == nil {
		return 0, c.Core.PageError(
			playerDoc, "transfer_compare", "failed to find the transfer compare link",
			fmt.Errorf("regex: '%s'", transferCompareRegex),
		)
	}
	link := html.UnescapeString(match[1])

	doc, err := c.Core.Get(ctx, link)
	if err != nil {
		return 0, err
	}
	doc, err = c.Core.Continue(ctx, doc, core.Continuation{
		Link:      link,
		Form:      core.LoadMoreTransfersForm(),
		Marker:    core.FurtherTransfersLinkId,
		MaxRounds: 1,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load further transfers")
		return 0, err
	}

	price, err := c.field(core.FieldAvgPriceBlock, core.FieldAvgPriceBlock, "")
	if err != nil {
		return 0, err
	}
	price.Value = fmt.Sprintf(
		`right transfer-compare-bid">(?P<value>[0-9 ]+) %s</th>`,
		regexp.QuoteMeta(c.Core.Currency()),
	)

	err = c.scan(doc, "transfer_compare", price)
	if err != nil {
		return 0, err
	}
	value, err := price.Int()
	if err != nil {
		return 0, c.Core.PageError(doc, "transfer_compare", "unexpected price", err)
	}
	span.SetAttributes(attribute.Int("price", value))
	return value, nil
}

package view_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	devenv "htassist/dev/env"
	"htassist/lib/blockscan"
	"htassist/lib/hattrick"
	"htassist/lib/localized"
	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/scrapers/hattrick/hattricktest"
	"htassist/lib/scrapers/hattrick/view"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openView(t *testing.T, site *hattricktest.Site) view.Client {
	t.Helper()
	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)
	require.NoError(t, client.Open(context.Background()))
	t.Cleanup(func() { client.Close(context.Background()) })
	return view.NewClient(client)
}

func TestTeam(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client := openView(t, site)

	team, err := client.Team(context.Background())
	require.NoError(t, err)
	expected := hattrick.Team{
		Id:   123456,
		Name: "Kispest Kutyák",
		Finance: hattrick.Finance{
			Total:         12345678,
			BoardReserves: 500000,
		},
	}
	if diff := cmp.Diff(expected, team); diff != "" {
		t.Fatal(diff)
	}
}

func TestTeamWithOtherCurrency(t *testing.T) {
	site := hattricktest.Default()
	site.Currency = "US$"
	site.Start(t)
	client := openView(t, site)

	team, err := client.Team(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12345678, team.Finance.Total)
}

func TestTeamCurrencyMismatch(t *testing.T) {
	site := hattricktest.Default().Start(t)
	opts := site.ValidOptions()
	opts.Currency = "€"
	client, err := core.NewClient(opts)
	require.NoError(t, err)
	require.NoError(t, client.Open(context.Background()))
	defer client.Close(context.Background())

	_, err = view.NewClient(client).Team(context.Background())
	var notFound *blockscan.NotFoundError
	require.ErrorAs(t, err, &notFound)
	var pageErr *core.PageError
	require.ErrorAs(t, err, &pageErr)
	require.FileExists(t, pageErr.DumpPath)
}

func TestMoneyFarFromItsLabel(t *testing.T) {
	ctx := context.Background()
	site := hattricktest.Default()
	site.MoneyIndent = 5
	site.Start(t)
	client := openView(t, site)

	team, err := client.Team(ctx)
	require.NoError(t, err)
	require.Equal(t, hattrick.Finance{Total: 12345678, BoardReserves: 500000}, team.Finance)

	list, err := client.PlayerListPage(ctx)
	require.NoError(t, err)
	player, err := client.PlayerByName(ctx, "Kovács Bence", list)
	require.NoError(t, err)
	require.Equal(t, 1234000, player.SellBasePrice)
}

func TestFailedDumpKeepsTheFailure(t *testing.T) {
	site := hattricktest.Default().Start(t)
	opts := site.ValidOptions()
	opts.Currency = "€"
	notADir := filepath.Join(t.TempDir(), "dumps")
	require.NoError(t, os.WriteFile(notADir, []byte("a file"), 0600))
	opts.Dumper.Dir = filepath.Join(notADir, "nested")

	client, err := core.NewClient(opts)
	require.NoError(t, err)
	require.NoError(t, client.Open(context.Background()))
	defer client.Close(context.Background())

	_, err = view.NewClient(client).Team(context.Background())
	var notFound *blockscan.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Contains(t, err.Error(), "'total'")
	var pageErr *core.PageError
	require.ErrorAs(t, err, &pageErr)
	require.Empty(t, pageErr.DumpPath)
	require.NotContains(t, err.Error(), "page dump")
	require.Contains(t, err.Error(), "failed to read the finances page")
}

func TestPlayerListPage(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Kovács Bence", "Nagy Ádám"}, list.Names())

	id, err := list.Players[1].Id()
	require.NoError(t, err)
	require.Equal(t, 1002, id)
	require.Equal(t, "/Club/Players/Player.aspx?playerId=1002&BrowseIds=1001,1002", list.Players[1].Href)
}

func TestFindPlayer(t *testing.T) {
	list := view.PlayerListPage{Players: []view.PlayerLink{
		{Name: "Kovács Bence", Href: "/Club/Players/Player.aspx?playerId=1001"},
		{Name: "Nagy Ádám", Href: "/Club/Players/Player.aspx?playerId=1002"},
	}}

	link, err := list.Find("kovács  bence")
	require.NoError(t, err)
	require.Equal(t, list.Players[0], link)

	_, err = list.Find("Nagy Adam")
	var notFound *view.PlayerNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Nagy Ádám", notFound.Suggestion)
	require.Contains(t, err.Error(), "did you mean 'Nagy Ádám'?")

	_, err = view.PlayerListPage{}.Find("Anybody")
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, notFound.Suggestion)
}

func TestPlayerByName(t *testing.T) {
	ctx := context.Background()
	site := hattricktest.Default().Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(ctx)
	require.NoError(t, err)

	cases := []struct {
		name     string
		expected hattrick.Player
	}{
		{
			name: "Kovács Bence",
			expected: hattrick.Player{
				Id:            1001,
				Name:          "Kovács Bence",
				Link:          "/Club/Players/Player.aspx?playerId=1001&BrowseIds=1001,1002",
				Age:           hattrick.Age{Years: 17, Days: 23},
				TSI:           12340,
				Ability:       hattrick.Ability{Form: 6, Stamina: 7},
				Skills:        hattrick.Skills{Playmaking: 8, Winger: 4, Passing: 6, Scoring: 3, Speciality: "Technikás"},
				Status:        hattrick.NationalStatus{Prospect: true},
				SellBasePrice: 1234000,
			},
		},
		{
			// only on the national team's list, no speciality
			name: "Nagy Ádám",
			expected: hattrick.Player{
				Id:            1002,
				Name:          "Nagy Ádám",
				Link:          "/Club/Players/Player.aspx?playerId=1002&BrowseIds=1001,1002",
				Age:           hattrick.Age{Years: 21, Days: 101},
				TSI:           1500,
				Ability:       hattrick.Ability{Form: 5, Stamina: 6},
				Skills:        hattrick.Skills{Playmaking: 3, Winger: 5, Passing: 4, Scoring: 7},
				Status:        hattrick.NationalStatus{Player: true},
				SellBasePrice: 210000,
			},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			player, err := client.PlayerByName(ctx, test.name, list)
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, player); diff != "" {
				t.Fatal(diff)
			}
		})
	}

	// one continuation per transfer compare page
	require.Equal(t, int32(2), site.ContinuationPosts.Load())
}

func TestPlayerWithoutFurtherTransfers(t *testing.T) {
	site := hattricktest.Default()
	site.MoreTransfers = false
	site.Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	player, err := client.PlayerByName(context.Background(), "Kovács Bence", list)
	require.NoError(t, err)
	require.Equal(t, 1234000, player.SellBasePrice)
	require.Equal(t, int32(0), site.ContinuationPosts.Load())
}

func TestNationalStatusMarkerOnPlayerPage(t *testing.T) {
	site := hattricktest.Default()
	site.Players[1].NationalPlayer = true
	site.Players[1].NationalListed = false
	site.Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	player, err := client.PlayerByName(context.Background(), "Nagy Ádám", list)
	require.NoError(t, err)
	require.Equal(t, hattrick.NationalStatus{Player: true}, player.Status)
	for _, req := range site.Requests() {
		require.NotContains(t, req, "NTPlayers")
	}
}

func TestNationalStatusConflict(t *testing.T) {
	site := hattricktest.Default()
	site.Players[0].NationalListed = true
	site.Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	_, err = client.PlayerByName(context.Background(), "Kovács Bence", list)
	require.ErrorIs(t, err, hattrick.ErrNationalStatusConflict)
}

func TestPlayerPageAppError(t *testing.T) {
	site := hattricktest.Default()
	site.Players[0].Broken = true
	site.Start(t)
	client := openView(t, site)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	_, err = client.PlayerByName(context.Background(), "Kovács Bence", list)
	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	dump, err := os.ReadFile(appErr.DumpPath)
	require.NoError(t, err)
	require.Contains(t, string(dump), "Alkalmazáshiba")
}

func TestEnglishPagesLackDefinitions(t *testing.T) {
	site := hattricktest.Default()
	site.Language = "en"
	site.Start(t)
	client := openView(t, site)

	_, err := client.Team(context.Background())
	var missing *localized.NoDefinitionError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, core.FieldTotal, missing.Field)

	list, err := client.PlayerListPage(context.Background())
	require.NoError(t, err)
	_, err = client.PlayerByName(context.Background(), "Nagy Ádám", list)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, core.FieldNT, missing.Field)
}

func TestLive(t *testing.T) {
	config, err := devenv.GetStateConfig[devenv.HattrickTestConfig]("hattrick_config.json5")
	if err != nil || config.Username == "" {
		t.Skip("skipping test because no valid test config was found at dev/.state/hattrick_config.json5")
	}

	err = core.WithSession(context.Background(), core.ClientOptions{
		Credentials: core.StaticCredentials{Username: config.Username, Password: config.Password},
		Currency:    config.Currency,
	}, func(ctx context.Context, coreClient *core.Client) error {
		client := view.NewClient(coreClient)
		team, err := client.Team(ctx)
		if err != nil {
			return err
		}
		t.Log(team)
		if config.Player == "" {
			return nil
		}
		list, err := client.PlayerListPage(ctx)
		if err != nil {
			return err
		}
		player, err := client.PlayerByName(ctx, config.Player, list)
		if err != nil {
			return err
		}
		t.Log(player)
		return nil
	})
	require.NoError(t, err)
}

package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestAnchors(t *testing.T) {
	doc := parse(t, `<div>
<a href="/Club/Players/Player.aspx?playerId=1001&amp;BrowseIds=1001,1002">
	Kovács&nbsp;  Bence
</a>
<a href="/Club/Players/Player.aspx?playerId=1002"><span>Nagy</span> <b>Ádám</b></a>
<a href="/Club/Players/Player.aspx?playerId=1002"><img src="flag.png"></a>
<a href="/Club/Players/Player.aspx?playerId=1002">Nagy Ádám</a>
<a href="/Help/">Help</a>
</div>`)

	anchors := Anchors(context.Background(), doc.Find(`a[href*="/Club/Players/Player"]`))
	expected := []Anchor{
		{Name: "Kovács Bence", Href: "/Club/Players/Player.aspx?playerId=1001&BrowseIds=1001,1002"},
		{Name: "Nagy Ádám", Href: "/Club/Players/Player.aspx?playerId=1002"},
	}
	if diff := cmp.Diff(expected, anchors); diff != "" {
		t.Fatal(diff)
	}
}

func TestAnchorsSkipsBrokenLinks(t *testing.T) {
	doc := parse(t, `<a href="http://[::1">broken</a><a>no link</a>`)
	require.Empty(t, Anchors(context.Background(), doc.Find("a")))
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		href   string
		expect int
		fails  bool
	}{
		{href: "/Club/Players/Player.aspx?playerId=1001&BrowseIds=1001,1002", expect: 1001},
		{href: "/Club/Players/Player.aspx?playerId=abc", fails: true},
		{href: "/Club/Players/Player.aspx", fails: true},
	}
	for _, c := range cases {
		id, err := Anchor{Href: c.href}.QueryInt("playerId")
		if c.fails {
			require.Error(t, err, c.href)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, c.expect, id)
	}
}

package hattricktest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"htassist/lib/scrapers/hattrick/core"

	"github.com/mazen160/go-random"
)

// thousands formats n the way the site does, groups of three digits
// separated by `sep`.
func thousands(n int, sep string) string {
	digits := strconv.Itoa(n)
	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteString(sep)
		}
		out.WriteRune(d)
	}
	return out.String()
}

func (s *Site) hungarian() bool {
	return s.Language != "en"
}

func (s *Site) header(lang string) []string {
	return []string{
		"<!DOCTYPE html>",
		fmt.Sprintf(`<html lang="%s">`, lang),
		"<head><title>Hattrick</title></head>",
		"<body>",
	}
}

func footer() []string {
	return []string{"</body>", "</html>"}
}

func (s *Site) landing(w http.ResponseWriter, r *http.Request) {
	lines := s.header("en")
	lines = append(lines, `<form method="post" action="/en/Startpage3.aspx" id="aspnetForm">`)
	lines = append(lines, hiddenInputs(s.issueTokens())...)
	lines = append(lines,
		`<input name="ctl00$CPContent$ucLogin$txtUserName" type="text" />`,
		`<input name="ctl00$CPContent$ucLogin$txtPassword" type="password" />`,
		"</form>",
	)
	write(w, append(lines, footer()...)...)
}

func (s *Site) login(w http.ResponseWriter, r *http.Request) {
	s.LoginPosts.Add(1)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.checkTokens(r) {
		http.Error(w, "Validation of viewstate MAC failed.", http.StatusInternalServerError)
		return
	}
	if r.PostFormValue(core.UsernameField) != s.Username ||
		r.PostFormValue(core.PasswordField) != s.Password {
		lines := s.header("en")
		lines = append(lines, `<span id="ctl00_CPContent_ucLogin_lblError">Wrong login name or password.</span>`)
		lines = append(lines, hiddenInputs(s.issueTokens())...)
		write(w, append(lines, footer()...)...)
		return
	}

	session, err := random.String(32)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.mutex.Lock()
	s.session = session
	s.mutex.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "ht_session", Value: session, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "currentTeamId", Value: strconv.Itoa(s.TeamId), Path: "/"})
	http.Redirect(w, r, fmt.Sprintf("/www%d/", s.ServerId), http.StatusFound)
}

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") == "logout" {
		s.Logouts.Add(1)
		s.mutex.Lock()
		s.session = ""
		s.mutex.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "ht_session", Path: "/", MaxAge: -1})
		write(w, append(s.header("en"), footer()...)...)
		return
	}

	lines := s.header(s.Language)
	lines = append(lines,
		`<div id="teamLinks">`,
		fmt.Sprintf(`<a href="/Club/?TeamID=%d" title="%s">%s</a>`, s.TeamId, s.TeamName, s.TeamName),
		fmt.Sprintf(`<a href="/Club/Players/?TeamID=%d">Players</a>`, s.TeamId),
		"</div>",
	)
	write(w, append(lines, footer()...)...)
}

func (s *Site) playerList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("TeamID") != strconv.Itoa(s.TeamId) {
		http.NotFound(w, r)
		return
	}
	var ids []string
	for _, p := range s.Players {
		ids = append(ids, strconv.Itoa(p.Id))
	}
	lines := s.header(s.Language)
	lines = append(lines, `<div class="playerList">`)
	for _, p := range s.Players {
		lines = append(lines,
			`<div class="playerInfo">`,
			fmt.Sprintf(
				`<a href="/Club/Players/Player.aspx?playerId=%d&amp;BrowseIds=%s">%s</a>`,
				p.Id, strings.Join(ids, ","), p.Name,
			),
			"</div>",
		)
	}
	lines = append(lines, "</div>")
	write(w, append(lines, footer()...)...)
}

func (s *Site) appErrorPage() []string {
	banner := "Alkalmazáshiba"
	if !s.hungarian() {
		banner = "Application error"
	}
	lines := s.header(s.Language)
	lines = append(lines, fmt.Sprintf(`<h1 class="error">%s</h1>`, banner))
	return append(lines, footer()...)
}

func skillLines(label string, level int) []string {
	return []string{
		fmt.Sprintf(`<tr><td>%s</td>`, label),
		fmt.Sprintf(`<td><a href="/Help/Rules/AppDenominations.aspx?lt=skill&amp;ll=%d#skill" class="skill">level</a></td></tr>`, level),
	}
}

func (s *Site) playerPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.player(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if p.Broken {
		write(w, s.appErrorPage()...)
		return
	}

	labels := map[string]string{
		"form": "Form", "stamina": "Stamina", "playmaking": "Playmaking",
		"winger": "Winger", "passing": "Passing", "scoring": "Scoring",
		"speciality": "Speciality",
	}
	age := fmt.Sprintf("%d years and %d days", p.Age.Years, p.Age.Days)
	if s.hungarian() {
		labels = map[string]string{
			"form": "Forma", "stamina": "Erőnlét", "playmaking": "Játékszervezés",
			"winger": "Szélsőjáték", "passing": "Átadás", "scoring": "Gólszerzés",
			"speciality": "Specialitás",
		}
		age = fmt.Sprintf("%d éves és %d napos", p.Age.Years, p.Age.Days)
	}

	lines := s.header(s.Language)
	lines = append(lines,
		fmt.Sprintf(`<h1 class="hasByline">%s</h1>`, p.Name),
		fmt.Sprintf(`<p class="byline">%s</p>`, age),
		`<table class="playerInfo">`,
		`<tr><td>TSI</td>`,
		fmt.Sprintf(`<td>%s</td></tr>`, thousands(p.TSI, "&nbsp;")),
	)
	lines = append(lines, skillLines(labels["form"], p.Form)...)
	lines = append(lines, skillLines(labels["stamina"], p.Stamina)...)
	if p.Speciality != "" {
		lines = append(lines,
			fmt.Sprintf(`<tr><td>%s</td>`, labels["speciality"]),
			fmt.Sprintf(`<td>%s</td></tr>`, p.Speciality),
		)
	}
	lines = append(lines, "</table>", `<table class="skills">`)
	lines = append(lines, skillLines(labels["playmaking"], p.Playmaking)...)
	lines = append(lines, skillLines(labels["winger"], p.Winger)...)
	lines = append(lines, skillLines(labels["passing"], p.Passing)...)
	lines = append(lines, skillLines(labels["scoring"], p.Scoring)...)
	lines = append(lines, "</table>")

	if s.hungarian() && p.NationalPlayer {
		lines = append(lines, `<p class="nt">A játékos Magyarország válogatott csapatának is tagja!</p>`)
	}
	if s.hungarian() && p.Prospect {
		lines = append(lines, `<p class="nt">A játékos Magyarország U21 nemzeti csapatának jelöltje</p>`)
	}
	if s.NationalTeamId != 0 {
		lines = append(lines, fmt.Sprintf(
			`<a href="/Club/NationalTeam/NTPlayers.aspx?teamId=%d">National team</a>`,
			s.NationalTeamId,
		))
	}
	lines = append(lines, fmt.Sprintf(
		`<a href="/Club/Transfers/TransferCompare.aspx?playerId=%d">Compare</a>`, p.Id,
	))
	write(w, append(lines, footer()...)...)
}

func (s *Site) transferComparePage(p Player, price int, more bool) []string {
	block := "Average"
	if s.hungarian() {
		block = "Átlagérték"
	}
	lines := s.header(s.Language)
	lines = append(lines, `<form method="post" id="aspnetForm">`)
	lines = append(lines, hiddenInputs(s.issueTokens())...)
	lines = append(lines,
		`<table class="transferCompare">`,
		"<tr><th>Játékos</th>",
		// individual transfers render the same cell as the average
		fmt.Sprintf(`<th class="right transfer-compare-bid">%s %s</th></tr>`, thousands(p.SellBasePrice*3, " "), s.Currency),
		fmt.Sprintf("<tr><th>%s</th>", block),
	)
	for i := 0; i < s.MoneyIndent; i++ {
		lines = append(lines, `<th class="spacer"></th>`)
	}
	lines = append(lines,
		fmt.Sprintf(`<th class="right transfer-compare-bid">%s %s</th></tr>`, thousands(price, " "), s.Currency),
		"</table>",
	)
	if more {
		lines = append(lines, fmt.Sprintf(
			`<a id="%s" href="javascript:__doPostBack('ctl00$ctl00$CPContent$CPMain$lnkMoreTransfers','')">More</a>`,
			core.FurtherTransfersLinkId,
		))
	}
	lines = append(lines, "</form>")
	return append(lines, footer()...)
}

func (s *Site) transferCompare(w http.ResponseWriter, r *http.Request) {
	p, ok := s.player(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	price := p.SellBasePrice
	if s.MoreTransfers {
		price = p.FirstBasePrice
	}
	write(w, s.transferComparePage(p, price, s.MoreTransfers)...)
}

func (s *Site) moreTransfers(w http.ResponseWriter, r *http.Request) {
	s.ContinuationPosts.Add(1)
	p, ok := s.player(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.checkTokens(r) ||
		r.PostFormValue("__EVENTTARGET") != core.LoadMoreTransfersForm()["__EVENTTARGET"] {
		http.Error(w, "Validation of viewstate MAC failed.", http.StatusInternalServerError)
		return
	}
	write(w, s.transferComparePage(p, p.SellBasePrice, false)...)
}

func (s *Site) finances(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("teamId") != strconv.Itoa(s.TeamId) {
		http.NotFound(w, r)
		return
	}
	total, reserves, income := "Total:", "Board reserves:", "Income:"
	if s.hungarian() {
		total, reserves, income = "Összesen:", "Az igazgatóság tartaléka:", "Bevételek:"
	}
	lines := s.header(s.Language)
	lines = append(lines, `<table class="finances">`)
	for _, row := range []struct {
		label  string
		amount int
	}{{income, 777000}, {total, s.Total}, {reserves, s.BoardReserves}} {
		lines = append(lines, fmt.Sprintf("<tr><td>%s</td>", row.label))
		for i := 0; i < s.MoneyIndent; i++ {
			lines = append(lines, `<td class="spacer"></td>`)
		}
		lines = append(lines, fmt.Sprintf(`<td class="nowrap">%s %s</td></tr>`, thousands(row.amount, " "), s.Currency))
	}
	lines = append(lines, "</table>")
	write(w, append(lines, footer()...)...)
}

func (s *Site) nationalTeamPlayers(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("teamId") != strconv.Itoa(s.NationalTeamId) {
		http.NotFound(w, r)
		return
	}
	lines := s.header(s.Language)
	for _, p := range s.Players {
		if !p.NationalListed {
			continue
		}
		lines = append(lines, fmt.Sprintf(
			`<a href="/Club/Players/Player.aspx?playerId=%d">%s</a>`, p.Id, p.Name,
		))
	}
	write(w, append(lines, footer()...)...)
}

func (s *Site) broken(w http.ResponseWriter, r *http.Request) {
	write(w, s.appErrorPage()...)
}

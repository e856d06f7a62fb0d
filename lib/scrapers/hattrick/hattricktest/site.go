// Package hattricktest serves a small imitation of the Hattrick website for
// tests: rotating form tokens, a cookie based login on a numbered server and
// the pages the scrapers read.
package hattricktest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"htassist/lib/crashdump"
	"htassist/lib/hattrick"
	"htassist/lib/scrapers/hattrick/core"

	"github.com/mazen160/go-random"
)

type Player struct {
	Id         int
	Name       string
	Age        hattrick.Age
	TSI        int
	Form       int
	Stamina    int
	Playmaking int
	Winger     int
	Passing    int
	Scoring    int
	Speciality string
	// shown with the national team marker on the player page
	NationalPlayer bool
	// only listed on the national team's player page
	NationalListed bool
	Prospect       bool
	// the average price before and after loading more transfers
	FirstBasePrice int
	SellBasePrice  int
	// the player page renders the application error banner
	Broken bool
}

type Site struct {
	Username string
	Password string
	ServerId int
	TeamId   int
	TeamName string
	// "hu" or "en"
	Language       string
	Currency       string
	Total          int
	BoardReserves  int
	Players        []Player
	NationalTeamId int
	// the transfer compare page offers to load more transfers
	MoreTransfers bool
	// markup lines between a money label and its amount
	MoneyIndent int

	LoginPosts        atomic.Int32
	Logouts           atomic.Int32
	ContinuationPosts atomic.Int32
	// shared by every client created from Options
	Transport *Transport

	t       testing.TB
	server  *httptest.Server
	mutex   sync.Mutex
	tokens  map[string]string
	session string
	paths   []string
}

// Default returns a Hungarian team with two players.
func Default() *Site {
	return &Site{
		Username:      "alice",
		Password:      "hunter2",
		ServerId:      85,
		TeamId:        123456,
		TeamName:      "Kispest Kutyák",
		Language:      "hu",
		Currency:      core.DefaultCurrency,
		Total:         12345678,
		BoardReserves: 500000,
		Players: []Player{
			{
				Id:             1001,
				Name:           "Kovács Bence",
				Age:            hattrick.Age{Years: 17, Days: 23},
				TSI:            12340,
				Form:           6,
				Stamina:        7,
				Playmaking:     8,
				Winger:         4,
				Passing:        6,
				Scoring:        3,
				Speciality:     "Technikás",
				Prospect:       true,
				FirstBasePrice: 900000,
				SellBasePrice:  1234000,
			},
			{
				Id:             1002,
				Name:           "Nagy Ádám",
				Age:            hattrick.Age{Years: 21, Days: 101},
				TSI:            1500,
				Form:           5,
				Stamina:        6,
				Playmaking:     3,
				Winger:         5,
				Passing:        4,
				Scoring:        7,
				NationalListed: true,
				FirstBasePrice: 200000,
				SellBasePrice:  210000,
			},
		},
		NationalTeamId: 3033,
		MoreTransfers:  true,
	}
}

// Start serves the site until the test ends.
func (s *Site) Start(t testing.TB) *Site {
	s.t = t
	s.tokens = map[string]string{}

	inner := http.NewServeMux()
	inner.HandleFunc("GET /{$}", s.home)
	inner.HandleFunc("GET /Club/Players/{$}", s.playerList)
	inner.HandleFunc("GET /Club/Players/Player.aspx", s.playerPage)
	inner.HandleFunc("GET /Club/Transfers/TransferCompare.aspx", s.transferCompare)
	inner.HandleFunc("POST /Club/Transfers/TransferCompare.aspx", s.moreTransfers)
	inner.HandleFunc("GET /Club/Finances/{$}", s.finances)
	inner.HandleFunc("GET /Club/NationalTeam/NTPlayers.aspx", s.nationalTeamPlayers)
	inner.HandleFunc("GET /Broken.aspx", s.broken)

	prefix := fmt.Sprintf("/www%d", s.ServerId)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /en/{$}", s.landing)
	mux.HandleFunc("POST /en/Startpage3.aspx", s.login)
	mux.Handle(prefix+"/", http.StripPrefix(prefix, s.authenticated(inner)))

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mutex.Lock()
		s.paths = append(s.paths, r.Method+" "+r.URL.RequestURI())
		s.mutex.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.server.Close)
	s.Transport = &Transport{RoundTripper: s.server.Client().Transport}
	return s
}

func (s *Site) URL() string {
	return s.server.URL
}

// Requests returns "METHOD /path?query" for every request served so far.
func (s *Site) Requests() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.paths...)
}

// Options points a client at the site, page dumps go to a temporary directory.
func (s *Site) Options(username, password string) core.ClientOptions {
	return core.ClientOptions{
		MainPage:         s.server.URL + "/en/",
		LoginPage:        s.server.URL + "/en/Startpage3.aspx",
		Domain:           "127.0.0.1",
		ServerUrlPattern: `^(?P<server_url>http://127\.0\.0\.1:\d+/www(?P<server_id>\d+))`,
		Currency:         s.Currency,
		Credentials:      core.StaticCredentials{Username: username, Password: password},
		Dumper:           crashdump.Dumper{Dir: s.t.TempDir()},
		Transport:        s.Transport,
	}
}

// ValidOptions logs in with the site's own credentials.
func (s *Site) ValidOptions() core.ClientOptions {
	return s.Options(s.Username, s.Password)
}

func (s *Site) issueTokens() map[string]string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range core.TokenKeys {
		value, err := random.String(24)
		if err != nil {
			s.t.Errorf("generate token: %v", err)
		}
		s.tokens[key] = value
	}
	out := make(map[string]string, len(s.tokens))
	for k, v := range s.tokens {
		out[k] = v
	}
	return out
}

// checkTokens reports whether the request echoes the last issued tokens.
func (s *Site) checkTokens(r *http.Request) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range core.TokenKeys {
		if s.tokens[key] == "" || r.PostFormValue(key) != s.tokens[key] {
			return false
		}
	}
	return true
}

func (s *Site) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("ht_session")
		s.mutex.Lock()
		session := s.session
		s.mutex.Unlock()
		if err != nil || session == "" || cookie.Value != session {
			http.Error(w, "not logged in", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Site) player(r *http.Request) (Player, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("playerId"))
	if err != nil {
		return Player{}, false
	}
	for _, p := range s.Players {
		if p.Id == id {
			return p, true
		}
	}
	return Player{}, false
}

func write(w http.ResponseWriter, lines ...string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(strings.Join(lines, "\r\n")))
}

func hiddenInputs(tokens map[string]string) []string {
	var out []string
	for _, key := range core.TokenKeys {
		out = append(out, fmt.Sprintf(
			`<input type="hidden" name="%s" id="%s" value="%s" />`,
			key, key, tokens[key],
		))
	}
	return out
}

// Transport counts how many times its clients released their connections.
type Transport struct {
	http.RoundTripper
	Closes atomic.Int32
}

func (t *Transport) CloseIdleConnections() {
	t.Closes.Add(1)
	if closer, ok := t.RoundTripper.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

package devenv

// HattrickTestConfig is read from dev/.state/hattrick_config.json5 by the
// tests that talk to the live site.
type HattrickTestConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// a name from the team's player list, used by the player page tests
	Player string `json:"player"`
	// page currency, defaults to the site's default
	Currency string `json:"currency"`
}

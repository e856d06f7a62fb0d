package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"htassist/lib/localized"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// State is a step of the login sequence.
type State int

const (
	Disconnected State = iota
	Connecting
	CredentialsGathered
	Submitted
	Authenticated
	LoggedOut
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case CredentialsGathered:
		return "credentials_gathered"
	case Submitted:
		return "submitted"
	case Authenticated:
		return "authenticated"
	case LoggedOut:
		return "logged_out"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session is what the login taught us, it only exists once the whole login
// sequence succeeded.
type Session struct {
	ServerUrl string
	ServerId  int
	TeamId    int
	TeamName  string
	Language  localized.Language

	appError *regexp.Regexp
}

type Credentials struct {
	Username string
	Password string
}

// CredentialSource provides the credentials when the login needs them.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials are known upfront.
type StaticCredentials Credentials

func (c StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(c), nil
}

func (c *Client) State() State {
	return c.state
}

// Session returns the current session, false before login or after logout.
func (c *Client) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Client) setState(state State) {
	c.tel.ReportDebug(report_client_state, c.state.String(), state.String())
	c.state = state
}

// Resolve returns the pattern of a dictionary field in the page language.
func (c *Client) Resolve(field string) (string, error) {
	if c.session == nil {
		return "", fmt.Errorf("resolve '%s': %w", field, ErrNotLoggedIn)
	}
	return c.opts.Dictionary.Resolve(field, c.session.Language)
}

// Open logs in. Any failure leaves the client in the Failed state, the
// caller still has to Close it.
func (c *Client) Open(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "client:Open")
	defer span.End()

	if c.state != Disconnected {
		return fmt.Errorf("cannot open a client that is %s", c.state)
	}
	defer func() {
		if err != nil {
			c.setState(Failed)
			c.tel.ReportBroken(report_client_open, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to login")
		}
	}()

	c.setState(Connecting)
	landing, err := c.Get(ctx, c.opts.MainPage)
	if err != nil {
		return err
	}

	if c.opts.Credentials == nil {
		return errors.New("no credential source configured")
	}
	creds, err := c.opts.Credentials.Credentials(ctx)
	if err != nil {
		return err
	}
	form, err := c.HarvestTokens(landing, LoginForm(creds.Username, creds.Password), TokenKeys...)
	if err != nil {
		return err
	}
	c.setState(CredentialsGathered)

	res, err := c.Post(ctx, c.opts.LoginPage, form)
	if err != nil {
		return err
	}
	c.setState(Submitted)

	if c.loginFailed.MatchString(res.Body) {
		return ErrAuthRejected
	}

	session, err := c.parseSession(res)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int("server_id", session.ServerId),
		attribute.Int("team_id", session.TeamId),
		attribute.String("language", session.Language.String()),
	)

	c.session = &session
	c.setState(Authenticated)
	return nil
}

var teamIdRegex = regexp.MustCompile(`currentTeamId=(?P<team_id>\d+)`)

// parseSession reads everything the session needs from the page the login
// redirected to.
func (c *Client) parseSession(doc Document) (Session, error) {
	groups := c.serverUrl.FindStringSubmatch(doc.Url)
	if groups == nil {
		return Session{}, fmt.Errorf("%w: '%s'", ErrUnexpectedUrl, doc.Url)
	}
	session := Session{
		ServerUrl: groups[c.serverUrl.SubexpIndex("server_url")],
	}
	serverId, err := strconv.Atoi(groups[c.serverUrl.SubexpIndex("server_id")])
	if err != nil {
		return Session{}, fmt.Errorf("%w: '%s': %w", ErrUnexpectedUrl, doc.Url, err)
	}
	session.ServerId = serverId

	cookie := doc.RequestHeader.Get("Cookie")
	teamGroups := teamIdRegex.FindStringSubmatch(cookie)
	if teamGroups == nil {
		return Session{}, fmt.Errorf("%w: '%s'", ErrUnexpectedCookie, cookie)
	}
	session.TeamId, err = strconv.Atoi(teamGroups[1])
	if err != nil {
		return Session{}, fmt.Errorf("%w: '%s': %w", ErrUnexpectedCookie, cookie, err)
	}

	teamName := regexp.MustCompile(fmt.Sprintf(
		`a href="/%s%d" title="(?P<name>[^"]+)"`,
		TeamLinkPattern, session.TeamId,
	))
	nameGroups := teamName.FindStringSubmatch(doc.Body)
	if nameGroups == nil {
		return Session{}, c.PageError(
			doc, "team_name", "failed to find the team's name",
			fmt.Errorf("regex: '%s'", teamName),
		)
	}
	session.TeamName = nameGroups[1]

	session.Language, err = localized.DetectLanguage(doc.Body)
	if errors.Is(err, localized.ErrNoLanguageMarker) {
		return Session{}, c.PageError(doc, "lang", "failed to detect the page's language", err)
	}
	if err != nil {
		return Session{}, err
	}

	pattern, err := c.opts.Dictionary.Resolve(FieldAppError, session.Language)
	if err != nil {
		return Session{}, err
	}
	session.appError, err = regexp.Compile(pattern)
	if err != nil {
		return Session{}, fmt.Errorf("application error pattern: %w", err)
	}

	return session, nil
}

// Close logs out when the client is logged in, then releases the HTTP
// session. It is safe to call more than once.
func (c *Client) Close(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Close")
	defer span.End()

	if c.closed {
		return nil
	}

	var err error
	if c.state == Authenticated {
		// logout even when the operation was cancelled
		_, err = c.Get(context.WithoutCancel(ctx), LogoutLink)
		if err != nil {
			c.tel.ReportBroken(report_client_close, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to logout")
			err = fmt.Errorf("logout: %w", err)
		}
		c.session = nil
		c.setState(LoggedOut)
	}

	c.http.GetClient().CloseIdleConnections()
	c.closed = true
	return err
}

// WithSession logs in, runs fn and always closes the client afterwards. A
// failed close is joined to the error of fn.
func WithSession(ctx context.Context, opts ClientOptions, fn func(ctx context.Context, client *Client) error) (err error) {
	client, err := NewClient(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, client.Close(ctx))
	}()

	err = client.Open(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, client)
}

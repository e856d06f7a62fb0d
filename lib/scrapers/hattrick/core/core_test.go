package core_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	devenv "htassist/dev/env"
	"htassist/lib/localized"
	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/scrapers/hattrick/hattricktest"
	"htassist/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func openClient(t *testing.T, site *hattricktest.Site) *core.Client {
	t.Helper()
	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)
	require.NoError(t, client.Open(context.Background()))
	t.Cleanup(func() { client.Close(context.Background()) })
	return client
}

func TestOpenAndClose(t *testing.T) {
	ctx := context.Background()
	site := hattricktest.Default().Start(t)

	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)
	require.Equal(t, core.Disconnected, client.State())
	_, ok := client.Session()
	require.False(t, ok)

	require.NoError(t, client.Open(ctx))
	require.Equal(t, core.Authenticated, client.State())

	session, ok := client.Session()
	require.True(t, ok)
	expected := core.Session{
		ServerUrl: site.URL() + "/www85",
		ServerId:  85,
		TeamId:    123456,
		TeamName:  "Kispest Kutyák",
		Language:  localized.Hungarian,
	}
	if diff := cmp.Diff(expected, session, cmpopts.IgnoreUnexported(core.Session{})); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, int32(1), site.LoginPosts.Load())

	require.NoError(t, client.Close(ctx))
	require.Equal(t, core.LoggedOut, client.State())
	require.Equal(t, int32(1), site.Logouts.Load())
	require.Equal(t, int32(1), site.Transport.Closes.Load())
	_, ok = client.Session()
	require.False(t, ok)

	// closing twice does nothing
	require.NoError(t, client.Close(ctx))
	require.Equal(t, int32(1), site.Logouts.Load())
	require.Equal(t, int32(1), site.Transport.Closes.Load())

	_, err = client.Get(ctx, site.URL()+"/en/")
	require.Error(t, err)
}

func TestOpenTwice(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client := openClient(t, site)
	require.Error(t, client.Open(context.Background()))
}

func TestRejectedLoginStillReleasesTheSession(t *testing.T) {
	site := hattricktest.Default().Start(t)

	called := false
	err := core.WithSession(
		context.Background(),
		site.Options(site.Username, "wrong"),
		func(ctx context.Context, client *core.Client) error {
			called = true
			return nil
		},
	)
	require.ErrorIs(t, err, core.ErrAuthRejected)
	require.False(t, called)
	require.Equal(t, int32(1), site.LoginPosts.Load())
	require.Equal(t, int32(0), site.Logouts.Load())
	require.Equal(t, int32(1), site.Transport.Closes.Load())
}

func TestWithSessionLogsOutAfterFailure(t *testing.T) {
	site := hattricktest.Default().Start(t)
	failure := errors.New("operation failed")

	err := core.WithSession(
		context.Background(),
		site.ValidOptions(),
		func(ctx context.Context, client *core.Client) error {
			require.Equal(t, core.Authenticated, client.State())
			return failure
		},
	)
	require.ErrorIs(t, err, failure)
	require.Equal(t, int32(1), site.Logouts.Load())
	require.Equal(t, int32(1), site.Transport.Closes.Load())
}

func TestWithSessionLogsOutAfterCancel(t *testing.T) {
	site := hattricktest.Default().Start(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := core.WithSession(ctx, site.ValidOptions(), func(ctx context.Context, client *core.Client) error {
		cancel()
		_, err := client.Get(ctx, "Club/Players/?TeamID=123456")
		return err
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), site.Logouts.Load())
}

func TestCredentialSourceFailure(t *testing.T) {
	site := hattricktest.Default().Start(t)
	opts := site.ValidOptions()
	failure := errors.New("cancelled by user")
	opts.Credentials = credentialsFunc(func(context.Context) (core.Credentials, error) {
		return core.Credentials{}, failure
	})

	client, err := core.NewClient(opts)
	require.NoError(t, err)
	require.ErrorIs(t, client.Open(context.Background()), failure)
	require.Equal(t, core.Failed, client.State())
	require.Equal(t, int32(0), site.LoginPosts.Load())
	require.NoError(t, client.Close(context.Background()))
}

type credentialsFunc func(ctx context.Context) (core.Credentials, error)

func (f credentialsFunc) Credentials(ctx context.Context) (core.Credentials, error) {
	return f(ctx)
}

func TestUnsupportedLanguage(t *testing.T) {
	site := hattricktest.Default()
	site.Language = "de"
	site.Start(t)

	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)
	err = client.Open(context.Background())

	var unsupported *localized.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "de", unsupported.Code)
	require.Contains(t, err.Error(), "'en hu'")
	require.Equal(t, core.Failed, client.State())

	// the site's session is not ours, there is nothing to logout from
	require.NoError(t, client.Close(context.Background()))
	require.Equal(t, int32(0), site.Logouts.Load())
}

func TestRedirectOutsideOfDomain(t *testing.T) {
	site := hattricktest.Default().Start(t)
	opts := site.ValidOptions()
	opts.Domain = "hattrick.org"

	client, err := core.NewClient(opts)
	require.NoError(t, err)
	err = client.Open(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "leaves hattrick.org")
}

func TestNotLoggedIn(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)

	_, err = client.Get(context.Background(), core.PlayersLink)
	require.ErrorIs(t, err, core.ErrNotLoggedIn)
	_, err = client.Resolve(core.FieldAge)
	require.ErrorIs(t, err, core.ErrNotLoggedIn)
}

func TestResolve(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client := openClient(t, site)

	pattern, err := client.Resolve(core.FieldNT)
	require.NoError(t, err)
	require.Equal(t, "válogatott csapatának is tagja!", pattern)

	link, err := client.ResolveLink("/Club/Players/?TeamID=1")
	require.NoError(t, err)
	require.Equal(t, site.URL()+"/www85/Club/Players/?TeamID=1", link)
}

func TestResolveWithoutDefinition(t *testing.T) {
	site := hattricktest.Default()
	site.Language = "en"
	site.Start(t)
	client := openClient(t, site)

	_, err := client.Resolve(core.FieldNT)
	var missing *localized.NoDefinitionError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "'nt' has no definition in english, available definitions: [hungarian]", err.Error())
}

func TestStatusError(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client := openClient(t, site)

	_, err := client.Get(context.Background(), "Club/Missing.aspx")
	var status *core.StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, 404, status.StatusCode)
	require.Equal(t, "GET", status.Method)
	require.True(t, strings.HasSuffix(status.Url, "/www85/Club/Missing.aspx"))
}

func TestAppError(t *testing.T) {
	site := hattricktest.Default().Start(t)
	opts := site.ValidOptions()
	reports := &telemetry.RecordingAPI{}
	opts.Telemetry = reports

	client, err := core.NewClient(opts)
	require.NoError(t, err)
	require.NoError(t, client.Open(context.Background()))
	defer client.Close(context.Background())

	_, err = client.Get(context.Background(), "Broken.aspx")
	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "Alkalmazáshiba", appErr.Pattern)
	require.NotEmpty(t, appErr.DumpPath)

	dump, err := os.ReadFile(appErr.DumpPath)
	require.NoError(t, err)
	require.Contains(t, string(dump), "Alkalmazáshiba")
	require.Len(t, reports.Reports("warning"), 1)
}

func TestHarvestTokens(t *testing.T) {
	site := hattricktest.Default().Start(t)
	client, err := core.NewClient(site.ValidOptions())
	require.NoError(t, err)

	doc := core.Document{
		Url: "http://example.com",
		Body: `<form>
<input type="hidden" name="__VIEWSTATE" value="abc" />
<input type="hidden" name="__EVENTVALIDATION" value="" />
</form>`,
	}
	base := core.Form{"keep": "me"}

	form, err := client.HarvestTokens(doc, base, core.ViewStateKey)
	require.NoError(t, err)
	require.Equal(t, core.Form{"keep": "me", core.ViewStateKey: "abc"}, form)
	require.Equal(t, core.Form{"keep": "me"}, base)

	for _, key := range []string{core.EventValidationKey, core.ViewStateGeneratorKey} {
		_, err = client.HarvestTokens(doc, base, key)
		require.ErrorIs(t, err, core.ErrTokenNotFound)

		var pageErr *core.PageError
		require.ErrorAs(t, err, &pageErr)
		require.NotEmpty(t, pageErr.DumpPath)
		require.Contains(t, err.Error(), pageErr.DumpPath)
		require.FileExists(t, pageErr.DumpPath)
	}
}

func transferCompareLink(id string) string {
	return "Club/Transfers/TransferCompare.aspx?playerId=" + id
}

func TestContinue(t *testing.T) {
	ctx := context.Background()
	site := hattricktest.Default().Start(t)
	client := openClient(t, site)

	link := transferCompareLink("1001")
	first, err := client.Get(ctx, link)
	require.NoError(t, err)
	require.Contains(t, first.Body, "900 000 eFt")

	last, err := client.Continue(ctx, first, core.Continuation{
		Link:      link,
		Form:      core.LoadMoreTransfersForm(),
		Marker:    core.FurtherTransfersLinkId,
		MaxRounds: 1,
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), site.ContinuationPosts.Load())
	require.Contains(t, last.Body, "1 234 000 eFt")
	require.NotContains(t, last.Body, core.FurtherTransfersLinkId)

	// the marker is gone, nothing left to load
	again, err := client.Continue(ctx, last, core.Continuation{
		Link:   link,
		Form:   core.LoadMoreTransfersForm(),
		Marker: core.FurtherTransfersLinkId,
	})
	require.NoError(t, err)
	require.Equal(t, last.Body, again.Body)
	require.Equal(t, int32(1), site.ContinuationPosts.Load())
}

func TestContinueWithStaleTokens(t *testing.T) {
	ctx := context.Background()
	site := hattricktest.Default().Start(t)
	client := openClient(t, site)

	link := transferCompareLink("1001")
	stale, err := client.Get(ctx, link)
	require.NoError(t, err)
	// rendering the page again rotates the tokens
	_, err = client.Get(ctx, link)
	require.NoError(t, err)

	_, err = client.Continue(ctx, stale, core.Continuation{
		Link:      link,
		Form:      core.LoadMoreTransfersForm(),
		Marker:    core.FurtherTransfersLinkId,
		MaxRounds: 1,
	})
	var status *core.StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, 500, status.StatusCode)
}

func TestLive(t *testing.T) {
	config, err := devenv.GetStateConfig[devenv.HattrickTestConfig]("hattrick_config.json5")
	if err != nil || config.Username == "" {
		t.Skip("skipping test because no valid test config was found at dev/.state/hattrick_config.json5")
	}

	err = core.WithSession(context.Background(), core.ClientOptions{
		Credentials: core.StaticCredentials{Username: config.Username, Password: config.Password},
		Currency:    config.Currency,
	}, func(ctx context.Context, client *core.Client) error {
		session, _ := client.Session()
		t.Log(session.ServerUrl, session.TeamId, session.TeamName, session.Language)
		return nil
	})
	require.NoError(t, err)
}

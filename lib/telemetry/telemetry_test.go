package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &RecordingAPI{}
	scoped := NewScopedAPI("hattrick_scraper", rec)

	scoped.ReportBroken("client.login", "boom")
	scoped.ReportWarning("client.request", 1, 2)
	scoped.ReportDebug("start request")
	scoped.ReportCount("players", 12)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "hattrick_scraper: client.login", broken[0].Id)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, []any{1, 2}, warnings[0].Params)

	require.Equal(t, "hattrick_scraper: start request", rec.Reports("debug")[0].Id)
	require.Equal(t, []any{int64(12)}, rec.Reports("count")[0].Params)
}

func TestNestedScopes(t *testing.T) {
	rec := &RecordingAPI{}
	scoped := NewScopedAPI("inner", NewScopedAPI("outer", rec))
	scoped.ReportWarning("id")
	require.Equal(t, "outer: inner: id", rec.Reports("warning")[0].Id)
}

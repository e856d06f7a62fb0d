package restyutil

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex    sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id, contents string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, out, "password")

	_, err := client.R().
		SetContext(context.Background()).
		SetFormData(map[string]string{"username": "alice", "password": "hunter2"}).
		Post(server.URL + "/login")
	require.NoError(t, err)

	require.Len(t, out.messages, 1)
	message := out.messages["1"]
	require.Contains(t, message, "POST "+server.URL+"/login")
	require.Contains(t, message, "username=alice")
	require.NotContains(t, message, "hunter2")
	require.Contains(t, message, "X-Test: yes")
	require.True(t, strings.HasSuffix(message, "<html>ok</html>"))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "messages")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	out.Write("3", "contents")
	written, err := os.ReadFile(filepath.Join(dir, "3.http"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(written))
}

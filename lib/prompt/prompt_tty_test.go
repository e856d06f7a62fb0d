//go:build linux || darwin

package prompt

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

// openTerminal returns the controlling side and the terminal a prompter reads.
func openTerminal(t *testing.T) (*os.File, *os.File) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	// echoed input must not fill up the terminal's buffer
	go io.Copy(io.Discard, ptmx)
	return ptmx, tty
}

func TestLineThenPasswordOnTerminal(t *testing.T) {
	ptmx, tty := openTerminal(t)
	p := New(tty, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ptmx.Write([]byte("alice\n"))
	require.NoError(t, err)
	username, err := p.Line(ctx, "Hattrick login name: ")
	require.NoError(t, err)
	require.Equal(t, "alice", username)

	_, err = ptmx.Write([]byte("secret\n"))
	require.NoError(t, err)
	password, err := p.Password(ctx, "Password: ")
	require.NoError(t, err)
	require.Equal(t, "secret", password)
}

func TestCancelledPasswordRestoresTerminal(t *testing.T) {
	ptmx, tty := openTerminal(t)
	p := New(tty, io.Discard)

	before, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = p.Password(ctx, "Password: ")
	require.ErrorIs(t, err, ErrCancelled)

	after, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)
	require.Equal(t, before, after)

	// the secret typed after the cancelled prompt goes to the next one
	_, err = ptmx.Write([]byte("secret\n"))
	require.NoError(t, err)
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	password, err := p.Password(ctx, "Password: ")
	require.NoError(t, err)
	require.Equal(t, "secret", password)
}

package prompt

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAskRetriesUntilValid(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader("abc\n\n42\n"), out)

	value, err := Ask(context.Background(), p, "tsi", "integer", strconv.Atoi)
	require.NoError(t, err)
	require.Equal(t, 42, value)
	require.Equal(t, 3, strings.Count(out.String(), "tsi (integer): "))
	require.Equal(t, 2, strings.Count(out.String(), "Please specify a valid 'tsi'"))
}

func TestEndOfInputCancels(t *testing.T) {
	p := New(strings.NewReader("abc\n"), io.Discard)
	_, err := Ask(context.Background(), p, "tsi", "integer", strconv.Atoi)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestContextCancels(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := New(reader, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Line(ctx, "name: ")
	require.ErrorIs(t, err, ErrCancelled)

	// the answer typed after the cancelled prompt goes to the next one
	go writer.Write([]byte("Kovács\n"))
	answer, err := p.Line(context.Background(), "name: ")
	require.NoError(t, err)
	require.Equal(t, "Kovács", answer)
}

func TestPasswordFallsBackToLine(t *testing.T) {
	p := New(strings.NewReader("secret\r\n"), io.Discard)
	password, err := p.Password(context.Background(), "Password: ")
	require.NoError(t, err)
	require.Equal(t, "secret", password)
}

// Package prompt asks the user for values on the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user interrupts a prompt (Ctrl+C or end
// of input). It is never returned for a value that failed to parse.
var ErrCancelled = errors.New("user input was cancelled")

type line struct {
	text string
	err  error
}

// pendingRead is the one read in flight on the input. It outlives a
// cancelled prompt and hands its answer to the next one.
type pendingRead struct {
	result chan line
	// terminal state before echo was turned off, nil for plain reads
	state *term.State
}

// Prompter reads answers line by line from In and writes questions to Out.
// Input is only read while a prompt waits for it, so plain lines and
// passwords never compete for the terminal.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader

	mu      sync.Mutex
	pending *pendingRead
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

// Stdio prompts on the process's terminal.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stderr)
}

// terminal returns the input's descriptor when it is a terminal.
func (p *Prompter) terminal() (int, bool) {
	file, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0, false
	}
	return int(file.Fd()), true
}

func (p *Prompter) readLine() line {
	text, err := p.reader.ReadString('\n')
	if err != nil && text == "" {
		return line{err: err}
	}
	return line{text: strings.TrimRight(text, "\r\n")}
}

func readSecret(fd int) line {
	secret, err := term.ReadPassword(fd)
	if err != nil {
		return line{err: fmt.Errorf("read password: %w", err)}
	}
	return line{text: string(secret)}
}

// startRead returns the read in flight, or starts one. A read left over by a
// cancelled prompt is reused whatever its kind.
func (p *Prompter) startRead(secret bool) *pendingRead {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != nil {
		return p.pending
	}

	read := &pendingRead{result: make(chan line, 1)}
	fd, isTerminal := p.terminal()
	if secret && isTerminal {
		state, err := term.GetState(fd)
		if err == nil {
			read.state = state
		}
		go func() { read.result <- readSecret(fd) }()
	} else {
		go func() { read.result <- p.readLine() }()
	}
	p.pending = read
	return read
}

func (p *Prompter) ask(ctx context.Context, question string, secret bool) (line, error) {
	fmt.Fprint(p.out, question)
	read := p.startRead(secret)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		if read.state != nil {
			fd, _ := p.terminal()
			term.Restore(fd, read.state)
		}
		return line{}, ErrCancelled
	case l := <-read.result:
		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()
		if read.state != nil {
			fmt.Fprintln(p.out)
		}
		return l, nil
	}
}

// Line shows `question` and returns the answer without its line ending.
func (p *Prompter) Line(ctx context.Context, question string) (string, error) {
	l, err := p.ask(ctx, question, false)
	if err != nil {
		return "", err
	}
	if l.err != nil {
		return "", ErrCancelled
	}
	return l.text, nil
}

// Password reads a secret without echo when In is a terminal.
func (p *Prompter) Password(ctx context.Context, question string) (string, error) {
	l, err := p.ask(ctx, question, true)
	if err != nil {
		return "", err
	}
	if errors.Is(l.err, io.EOF) {
		return "", ErrCancelled
	}
	if l.err != nil {
		return "", l.err
	}
	return l.text, nil
}

// WaitForEnter blocks until the user presses Enter.
func (p *Prompter) WaitForEnter(ctx context.Context) error {
	_, err := p.Line(ctx, "Press Enter to continue...")
	return err
}

// Ask keeps asking for `name` until `parse` accepts the answer.
func Ask[T any](ctx context.Context, p *Prompter, name, choices string, parse func(string) (T, error)) (T, error) {
	question := fmt.Sprintf("%s (%s): ", name, choices)
	for {
		answer, err := p.Line(ctx, question)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(strings.TrimSpace(answer))
		if err == nil {
			return value, nil
		}
		fmt.Fprintf(p.out, "Please specify a valid '%s' (or hit ctrl+c): %s\n", name, err)
	}
}

// Package blockscan extracts values out of a document in a single forward
// pass over its lines.
//
// A Field first waits for a line matching its Block pattern, from the next
// line on it searches for its Value pattern. Any number of fields can be
// advanced over the same pass, they never influence each other.
package blockscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// State is one of NotEntered, Scanning, Found or Expired.
type State interface {
	terminal() bool
}

// NotEntered means the block marker has not been seen yet.
type NotEntered struct{}

// Scanning means the block marker was seen, LinesLeft is the number of lines
// that may still be examined or a negative number when the window is
// unbounded.
type Scanning struct {
	LinesLeft int
}

// Found holds the captured value, Groups holds every named group of the
// value pattern's match.
type Found struct {
	Value  string
	Groups map[string]string
}

// Expired means the window after the block marker was used up without a match.
type Expired struct{}

func (NotEntered) terminal() bool { return false }
func (Scanning) terminal() bool   { return false }
func (Found) terminal() bool      { return true }
func (Expired) terminal() bool    { return true }

type Field struct {
	Name string
	// Block marks the region of interest, empty means the region starts at
	// the first line.
	Block string
	// Value captures the datum with its `value` group, the whole match is
	// used when there is no such group.
	Value string
	// MaxLines bounds how many lines after the block marker are examined,
	// zero means no bound.
	MaxLines int
	// Optional fields that were not found are not reported as errors.
	Optional bool

	block *regexp.Regexp
	value *regexp.Regexp
	state State
}

func (f *Field) compile() error {
	var err error
	if f.Block != "" {
		f.block, err = regexp.Compile(f.Block)
		if err != nil {
			return fmt.Errorf("field '%s': block pattern: %w", f.Name, err)
		}
	} else {
		f.block = nil
	}
	f.value, err = regexp.Compile(f.Value)
	if err != nil {
		return fmt.Errorf("field '%s': value pattern: %w", f.Name, err)
	}
	f.reset()
	return nil
}

func (f *Field) window() int {
	if f.MaxLines > 0 {
		return f.MaxLines
	}
	return -1
}

func (f *Field) reset() {
	if f.block == nil {
		f.state = Scanning{LinesLeft: f.window()}
		return
	}
	f.state = NotEntered{}
}

// advance feeds one line to the field. The value is tested before the block
// marker so it is never searched on the line that opens the block.
func (f *Field) advance(line string) {
	switch s := f.state.(type) {
	case Scanning:
		if m := f.value.FindStringSubmatch(line); m != nil {
			f.state = f.found(m)
			return
		}
		if s.LinesLeft > 0 {
			s.LinesLeft--
			if s.LinesLeft == 0 {
				f.state = Expired{}
				return
			}
			f.state = s
		}
	case NotEntered:
		if f.block.MatchString(line) {
			f.state = Scanning{LinesLeft: f.window()}
		}
	}
}

func (f *Field) found(match []string) Found {
	result := Found{Value: match[0], Groups: map[string]string{}}
	for i, name := range f.value.SubexpNames() {
		if name == "" {
			continue
		}
		result.Groups[name] = match[i]
		if name == "value" {
			result.Value = match[i]
		}
	}
	return result
}

// State returns the state the last Scan left the field in.
func (f *Field) State() State {
	if f.state == nil {
		return NotEntered{}
	}
	return f.state
}

func (f *Field) Found() bool {
	_, ok := f.state.(Found)
	return ok
}

// String returns the captured value or a *NotFoundError.
func (f *Field) String() (string, error) {
	found, ok := f.state.(Found)
	if !ok {
		return "", f.notFound()
	}
	return found.Value, nil
}

// Group returns a named group of the captured match.
func (f *Field) Group(name string) (string, error) {
	found, ok := f.state.(Found)
	if !ok {
		return "", f.notFound()
	}
	value, ok := found.Groups[name]
	if !ok {
		return "", fmt.Errorf("field '%s' has no group named '%s'", f.Name, name)
	}
	return value, nil
}

// Int converts the captured value to an integer, whitespace inside the value
// (thousands separators) is dropped first.
func (f *Field) Int() (int, error) {
	value, err := f.String()
	if err != nil {
		return 0, err
	}
	return Atoi(value)
}

// GroupInt is Int for a named group.
func (f *Field) GroupInt(name string) (int, error) {
	value, err := f.Group(name)
	if err != nil {
		return 0, err
	}
	return Atoi(value)
}

func (f *Field) notFound() *NotFoundError {
	return &NotFoundError{Field: f.Name, Pattern: f.Value}
}

// Atoi parses an integer after removing every whitespace rune.
func Atoi(raw string) (int, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return strconv.Atoi(stripped)
}

// NotFoundError is reported for a field that was never found, whether its
// block marker was missing or its value was.
type NotFoundError struct {
	Field   string
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("failed to find '%s' regex: '%s'", e.Field, e.Pattern)
}

var lineReplacer = strings.NewReplacer("\u00a0", " ", "&nbsp;", " ")

// NormalizeLine replaces non-breaking spaces with plain ones.
func NormalizeLine(line string) string {
	return lineReplacer.Replace(line)
}

// Scan advances every field over the lines of r in one pass. It stops
// reading once every field is found or expired. The returned error joins a
// *NotFoundError for each mandatory field left unresolved.
func Scan(r io.Reader, fields ...*Field) error {
	for _, f := range fields {
		if err := f.compile(); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(r)
	for !allTerminal(fields) {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			line = NormalizeLine(strings.TrimRight(line, "\r\n"))
			for _, f := range fields {
				f.advance(line)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	var errs []error
	for _, f := range fields {
		if f.Found() || f.Optional {
			continue
		}
		errs = append(errs, f.notFound())
	}
	return errors.Join(errs...)
}

// ScanString is Scan over an in-memory document.
func ScanString(body string, fields ...*Field) error {
	return Scan(strings.NewReader(body), fields...)
}

func allTerminal(fields []*Field) bool {
	for _, f := range fields {
		if !f.State().terminal() {
			return false
		}
	}
	return true
}

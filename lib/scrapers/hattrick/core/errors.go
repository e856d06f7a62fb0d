package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthRejected means the site refused the credentials.
	ErrAuthRejected = errors.New("login rejected, check the username and password")
	// ErrNotLoggedIn is returned for relative links before the server address is known.
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrUnexpectedUrl    = errors.New("unexpected url after login")
	ErrUnexpectedCookie = errors.New("unexpected cookie after login")
	ErrTokenNotFound    = errors.New("failed to find the value of a hidden form field")
)

// StatusError is a response with a non-2xx status code.
type StatusError struct {
	Method     string
	Url        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Url, e.Status)
}

// AppError is a successful response that renders the site's error banner.
type AppError struct {
	Pattern  string
	Url      string
	Form     Form
	DumpPath string
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("application error '%s' at %s", e.Pattern, e.Url)
	if len(e.Form) > 0 {
		msg += fmt.Sprintf(", we've tried to use this data: %v", e.Form)
	}
	if e.DumpPath != "" {
		msg += fmt.Sprintf(", this page dump might help: '%s'", e.DumpPath)
	}
	return msg
}

// PageError wraps a failure to understand a page together with the path of
// the page's dump (empty when dumping failed).
type PageError struct {
	Message  string
	Url      string
	DumpPath string
	Err      error
}

func (e *PageError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Message)
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	if e.DumpPath != "" {
		fmt.Fprintf(&msg, " this page dump might help: '%s'", e.DumpPath)
	}
	return msg.String()
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Package core drives a logged in session with the Hattrick website.
//
// A Client owns one HTTP session. It walks the login sequence, keeps the
// server address, team and page language learnt from it, and turns every
// response into a Document once it made sure the response is not an error in
// disguise.
package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"htassist/lib/crashdump"
	"htassist/lib/localized"
	"htassist/lib/restyutil"
	"htassist/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultMainPage  = "https://www.hattrick.org/en/"
	DefaultLoginPage = "https://www.hattrick.org/en/Startpage3.aspx"
	DefaultDomain    = "hattrick.org"
	DefaultCurrency  = "eFt"

	// the numbered server the login redirects to
	DefaultServerUrlPattern   = `^(?P<server_url>.*www(?P<server_id>\d+)\.hattrick\.org)`
	DefaultLoginFailedPattern = `ucLogin_lblError`

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

type ClientOptions struct {
	MainPage  string
	LoginPage string
	// redirects may only lead to this domain or its subdomains
	Domain             string
	ServerUrlPattern   string
	LoginFailedPattern string
	Currency           string
	Timeout            time.Duration

	Credentials CredentialSource
	Dictionary  localized.Dictionary
	Dumper      crashdump.Dumper
	Telemetry   telemetry.API
	// receives the full HTTP messages while debug logging is enabled
	MessageOutput restyutil.InstrumentOutput
	// replaces the CloudFlare bypass transport, used by tests
	Transport http.RoundTripper
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.MainPage == "" {
		o.MainPage = DefaultMainPage
	}
	if o.LoginPage == "" {
		o.LoginPage = DefaultLoginPage
	}
	if o.Domain == "" {
		o.Domain = DefaultDomain
	}
	if o.ServerUrlPattern == "" {
		o.ServerUrlPattern = DefaultServerUrlPattern
	}
	if o.LoginFailedPattern == "" {
		o.LoginFailedPattern = DefaultLoginFailedPattern
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Dictionary == nil {
		o.Dictionary = Dictionary
	}
	if o.Telemetry == nil {
		o.Telemetry = telemetry.SlogAPI{}
	}
	return o
}

// Document is a response body with the metadata of the request that
// produced it, it is never modified after it was received.
type Document struct {
	Body string
	// effective url after redirects
	Url           string
	RequestHeader http.Header
	StatusCode    int
}

type Client struct {
	opts        ClientOptions
	http        *resty.Client
	tel         telemetry.API
	serverUrl   *regexp.Regexp
	loginFailed *regexp.Regexp

	state   State
	session *Session
	closed  bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	opts = opts.withDefaults()

	serverUrl, err := regexp.Compile(opts.ServerUrlPattern)
	if err != nil {
		return nil, fmt.Errorf("server url pattern: %w", err)
	}
	loginFailed, err := regexp.Compile(opts.LoginFailedPattern)
	if err != nil {
		return nil, fmt.Errorf("login failed pattern: %w", err)
	}

	client := resty.New()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	} else {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(domainRedirectPolicy(opts.Domain))
	client.SetTimeout(opts.Timeout)

	tel := telemetry.NewScopedAPI("hattrick", opts.Telemetry)
	telemetry.InstrumentResty(client, "htassist.lib.scrapers.hattrick.http", tel)
	restyutil.InstrumentClient(client, opts.MessageOutput, PasswordField)

	return &Client{
		opts:        opts,
		http:        client,
		tel:         tel,
		serverUrl:   serverUrl,
		loginFailed: loginFailed,
	}, nil
}

// domainRedirectPolicy only follows redirects within `domain`.
func domainRedirectPolicy(domain string) resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		host := req.URL.Hostname()
		if host != domain && !strings.HasSuffix(host, "."+domain) {
			return fmt.Errorf("redirect to '%s' leaves %s", host, domain)
		}
		return nil
	})
}

func (c *Client) Currency() string {
	return c.opts.Currency
}

func (c *Client) Telemetry() telemetry.API {
	return c.tel
}

func isAbsolute(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// ResolveLink joins a relative link to the server address.
func (c *Client) ResolveLink(link string) (string, error) {
	if isAbsolute(link) {
		return link, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("resolve '%s': %w", link, ErrNotLoggedIn)
	}
	return strings.TrimRight(c.session.ServerUrl, "/") + "/" + strings.TrimLeft(link, "/"), nil
}

// Get is Request with GET.
func (c *Client) Get(ctx context.Context, link string) (Document, error) {
	return c.Request(ctx, http.MethodGet, link, nil)
}

// Post is Request with POST.
func (c *Client) Post(ctx context.Context, link string, form Form) (Document, error) {
	return c.Request(ctx, http.MethodPost, link, form)
}

// Request sends a request and returns its document. Non-2xx responses fail
// with *StatusError. Once logged in, a document showing the localized
// application error banner fails with *AppError.
func (c *Client) Request(ctx context.Context, method, link string, form Form) (Document, error) {
	if c.closed {
		return Document{}, errors.New("client is closed")
	}
	url, err := c.ResolveLink(link)
	if err != nil {
		return Document{}, err
	}

	req := c.http.R().SetContext(ctx)
	if form != nil {
		req.SetFormData(form)
	}
	res, err := req.Execute(method, url)
	if err != nil {
		return Document{}, fmt.Errorf("%s %s: %w", method, url, err)
	}
	if !res.IsSuccess() {
		c.tel.ReportWarning(report_client_request, method, url, res.Status())
		return Document{}, &StatusError{
			Method:     method,
			Url:        url,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
		}
	}

	doc, err := newDocument(res)
	if err != nil {
		return Document{}, fmt.Errorf("%s %s: %w", method, url, err)
	}

	if c.session != nil && c.session.appError != nil && c.session.appError.MatchString(doc.Body) {
		c.tel.ReportWarning(report_client_app_err, method, url)
		return Document{}, &AppError{
			Pattern:  c.session.appError.String(),
			Url:      doc.Url,
			Form:     form.Redacted(),
			DumpPath: c.opts.Dumper.Dump(FieldAppError, doc.Body),
		}
	}
	return doc, nil
}

func newDocument(res *resty.Response) (Document, error) {
	reader, err := charset.NewReader(bytes.NewReader(res.Body()), res.Header().Get("Content-Type"))
	if err != nil {
		return Document{}, fmt.Errorf("decode body: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return Document{}, fmt.Errorf("decode body: %w", err)
	}

	doc := Document{
		Body:       string(body),
		StatusCode: res.StatusCode(),
	}
	// the raw response carries the last request that was sent, after
	// redirects and with the cookies of the jar
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		doc.Url = res.RawResponse.Request.URL.String()
		doc.RequestHeader = res.RawResponse.Request.Header.Clone()
	} else {
		doc.Url = res.Request.URL
		doc.RequestHeader = http.Header{}
	}
	return doc, nil
}

// PageError dumps the document and wraps `err` with the dump's path.
func (c *Client) PageError(doc Document, suffix, message string, err error) *PageError {
	return &PageError{
		Message:  message,
		Url:      doc.Url,
		DumpPath: c.opts.Dumper.Dump(suffix, doc.Body),
		Err:      err,
	}
}

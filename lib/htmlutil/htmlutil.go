package htmlutil

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"htassist/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("htassist.lib.htmlutil")

type Anchor struct {
	Name string
	Href string
}

// QueryInt reads the integer query parameter `key` of the link.
func (a Anchor) QueryInt(key string) (int, error) {
	href, err := url.Parse(a.Href)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(href.Query().Get(key))
	if err != nil {
		return 0, fmt.Errorf("link '%s' has no numeric '%s': %w", a.Href, key, err)
	}
	return value, nil
}

// Text returns the visible text of the selection with runs of whitespace
// (non-breaking spaces included) collapsed into a single space.
func Text(sel *goquery.Selection) string {
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ' ' {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, sel.Text())
	return strings.Join(strings.Fields(text), " ")
}

// Anchors lists the links of the selection in document order. Links without
// text, with a broken href or repeating an earlier href are left out.
func Anchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "Anchors")
	defer span.End()

	anchors := []Anchor{}
	seen := map[string]bool{}
	sel.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			return
		}
		name := Text(s)
		linkStr := link.String()
		if name == "" || seen[linkStr] {
			return
		}
		seen[linkStr] = true

		anchors = append(anchors, Anchor{Name: name, Href: linkStr})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", linkStr),
		))
	})
	return anchors
}

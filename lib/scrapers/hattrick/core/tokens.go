package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// HarvestTokens copies `form` and fills `keys` with the values of the hidden
// inputs of the same name on the page. Every key must be present with a
// non-empty value.
func (c *Client) HarvestTokens(doc Document, form Form, keys ...string) (Form, error) {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, c.PageError(doc, "value", "failed to parse page", err)
	}

	out := form.Clone()
	if out == nil {
		out = Form{}
	}
	for _, key := range keys {
		value := page.Find(fmt.Sprintf(`input[name="%s"]`, key)).AttrOr("value", "")
		if value == "" {
			return nil, c.PageError(
				doc, "value", fmt.Sprintf("failed to find the value of '%s'", key),
				ErrTokenNotFound,
			)
		}
		out[key] = value
	}
	return out, nil
}

// DefaultMaxRounds bounds a Continuation that does not set MaxRounds.
const DefaultMaxRounds = 10

// Continuation reveals more content of a page ("load more") by posting the
// page's form back with fresh tokens.
type Continuation struct {
	Link string
	Form Form
	// present while there is more to load
	Marker    string
	MaxRounds int
}

// Continue posts the continuation while its marker is on the current page
// and rounds remain. The last document received is returned.
func (c *Client) Continue(ctx context.Context, doc Document, cont Continuation) (Document, error) {
	ctx, span := tracer.Start(ctx, "client:Continue")
	defer span.End()

	marker, err := regexp.Compile(cont.Marker)
	if err != nil {
		return Document{}, fmt.Errorf("continuation marker: %w", err)
	}
	maxRounds := cont.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	rounds := 0
	for ; rounds < maxRounds && marker.MatchString(doc.Body); rounds++ {
		form, err := c.HarvestTokens(doc, cont.Form, TokenKeys...)
		if err != nil {
			return Document{}, err
		}
		doc, err = c.Post(ctx, cont.Link, form)
		if err != nil {
			return Document{}, err
		}
	}

	span.SetAttributes(attribute.Int("rounds", rounds))
	c.tel.ReportDebug(report_client_continue, cont.Link, rounds)
	return doc, nil
}

// Package restyutil dumps the full HTTP messages of a resty client.
package restyutil

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type instrumentCtx struct {
	output    InstrumentOutput
	redact    []string
	idcounter *uint64
}

type messageIdKeyType int

var messageIdKey messageIdKeyType

// InstrumentClient writes every request/response pair to `output` while
// debug logging is enabled. The values of the form fields named in `redact`
// are replaced before writing. A nil output makes this a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput, redact ...string) {
	if output == nil {
		return
	}

	var idcounter uint64
	i := instrumentCtx{output: output, redact: redact, idcounter: &idcounter}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	messageId := strconv.FormatUint(atomic.AddUint64(i.idcounter, 1), 10)
	slog.DebugContext(
		ctx, "start request",
		"method", req.Method,
		"url", req.URL,
		"message_id", messageId,
	)
	req.SetContext(context.WithValue(ctx, messageIdKey, messageId))
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	messageId, ok := res.Request.Context().Value(messageIdKey).(string)
	if !ok || res.RawResponse == nil {
		return nil
	}
	i.output.Write(messageId, formatHttpMessage(res, i.redact))
	return nil
}

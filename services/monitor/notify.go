package monitor

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	// recipients of the update report
	To []string `json:"to"`
}

func (c SmtpConfig) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

// NewMessage renders the update report as a plain text e-mail.
func NewMessage(from string, to []string, summary Summary) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("htassist <%s>", from)
	mail.To = to
	mail.Subject = fmt.Sprintf("%s: %s", summary.Team.Name, summary.Time.Format("2006-01-02"))

	var body bytes.Buffer
	Report(&body, summary)
	mail.Text = body.Bytes()
	return mail
}

// Notify mails the update report to the configured recipients.
func Notify(ctx context.Context, config SmtpConfig, summary Summary) error {
	ctx, span := tracer.Start(ctx, "Notify")
	defer span.End()

	mail := NewMessage(config.EmailAddress, config.To, summary)
	addr := fmt.Sprintf("%s:%d", config.Server, config.Port)

	err := mail.Send(addr, smtp.PlainAuth("", config.EmailAddress, config.Password, config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}

// Package mail delivers composed candidate emails over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/types"
	"github.com/spigell/ats-screener/internal/utils"
)

// Config is the SMTP endpoint and credentials.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username.
	From    string
	Timeout time.Duration
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Dispatcher sends drafts through a STARTTLS-protected, authenticated SMTP
// connection opened and closed per message.
type Dispatcher struct {
	client sender
	from   string
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Dispatcher, error) {
	if utils.Blank(cfg.Host) {
		return nil, errors.New("smtp host is required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(cfg.Timeout))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = strings.TrimSpace(cfg.Username)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		client: client,
		from:   from,
		logger: logger.With(zap.String("smtp_host", cfg.Host), zap.Int("smtp_port", cfg.Port)),
	}, nil
}

// Send delivers draft. Failures are returned as *DeliveryError and are not retried.
func (d *Dispatcher) Send(ctx context.Context, draft *types.EmailDraft) error {
	if draft == nil {
		return errors.New("email draft is required")
	}

	msg, err := d.message(draft)
	if err != nil {
		return &DeliveryError{Recipient: draft.Recipient, Cause: err}
	}

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		return &DeliveryError{Recipient: draft.Recipient, Cause: err}
	}

	d.logger.Info("email sent", zap.String("recipient", draft.Recipient), zap.String("subject", draft.Subject))
	return nil
}

func (d *Dispatcher) message(draft *types.EmailDraft) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.From(d.from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", d.from, err)
	}
	if err := msg.To(draft.Recipient); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(draft.Subject)

	plain, err := PlainText(draft.HTMLBody)
	if err != nil {
		return nil, err
	}

	msg.SetBodyString(gomail.TypeTextPlain, plain)
	msg.AddAlternativeString(gomail.TypeTextHTML, draft.HTMLBody)

	return msg, nil
}

// PlainText renders an HTML body as readable text for the plain part of the
// message: one line per block, list items prefixed with "- ".
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html body: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("p, h1, h2, h3, li, ul").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

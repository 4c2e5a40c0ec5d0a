// Package email sends transactional mail (invitations, reminders, roster
// notifications) behind a provider-agnostic Sender interface. Postmark backs
// production; DevSender writes mail to disk for local development.
package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrInvalidParams     = errors.New("email: invalid params")
	ErrFailedToSendEmail = errors.New("email: failed to send")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Config holds sender identity and the Postmark credentials. Tokens are
// optional so development environments can run on DevSender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}

// SendParams describes one outbound message.
type SendParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the parameters before any provider call.
func (p SendParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: recipient %q", ErrInvalidParams, p.SendTo)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidParams)
	}
	return nil
}

// Sender sends transactional email.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

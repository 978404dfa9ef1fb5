package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTPSender delivers mail through a plain SMTP relay. The corpus carries no
// mail library, so the standard library client is used behind the Sender
// interface; swapping in a richer client touches only this file.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

func (s *SMTPSender) SendOne(_ context.Context, recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, recipient, subject, body)
	if err := smtp.SendMail(s.addr, nil, s.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender writes each message to the log instead of delivering it. Default
// outside production.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendOne(_ context.Context, recipient, subject, body string) error {
	s.log.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("mock email sent")
	return nil
}

package notify

import (
	"context"
	"fmt"

	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/wneessen/go-mail"
)

// Email готовое к отправке письмо
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer транспорт исходящей почты
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPConfig параметры SMTP сервера
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer отправляет письма через SMTP, одна попытка на письмо
type SMTPMailer struct {
	cfg  SMTPConfig
	from string
}

// NewSMTPMailer создает SMTP транспорт. Отправитель по умолчанию совпадает с логином.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, from: from}
}

// Send отправляет письмо
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.cfg.Host, err)
	}
	return nil
}

// LogMailer пишет письма в лог вместо отправки. Используется без SMTP.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer создает LogMailer
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send логирует письмо
func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.log.Infow("Email not sent, SMTP disabled", "to", email.To, "subject", email.Subject, "bytes", len(email.HTML))
	return nil
}

package notifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"foodnest/internal/config"
	"foodnest/internal/logger"
)

// Mailer delivers out-of-band notifications. Callers treat delivery as
// best-effort; a transport failure must never fail the calling operation.
type Mailer interface {
	SendResetCode(ctx context.Context, to, name, code string, ttlMinutes int) error
	SendApproval(ctx context.Context, to, name, role string) error
	SendDeclined(ctx context.Context, to, name string) error
}

// SMTPMailer sends mail through a configured SMTP relay. When the SMTP
// section is incomplete the mailer is disabled and every send becomes a
// logged no-op, mirroring local development setups without a relay.
type SMTPMailer struct {
	cfg     config.SMTPConfig
	enabled bool
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	enabled := cfg.Host != "" && cfg.Port != 0 && cfg.User != "" && cfg.Password != "" && cfg.FromEmail != ""
	if !enabled {
		logger.Warn("SMTP is not fully configured; outgoing mail is disabled")
	}

	return &SMTPMailer{cfg: cfg, enabled: enabled}
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, to, name, code string, ttlMinutes int) error {
	subject := "Your FoodNest password reset code"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is: %s\n\nIt expires in %d minutes. "+
			"If you did not request this, you can ignore this email.\n\n— The FoodNest Team",
		name, code, ttlMinutes,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendApproval(ctx context.Context, to, name, role string) error {
	subject := "Your FoodNest account is approved"
	body := fmt.Sprintf(
		"You're approved, %s!\n\nYour FoodNest account request has been approved for the role: %s.\n"+
			"Open the FoodNest app and log in with the same email and password.\n\n— The FoodNest Team",
		name, role,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendDeclined(ctx context.Context, to, name string) error {
	subject := "FoodNest request status"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe're sorry — your FoodNest account request was not approved.\n"+
			"You may contact your SuperAdmin for more details.\n\n— The FoodNest Team",
		name,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if !m.enabled {
		logger.Debug("Mail delivery skipped, SMTP disabled",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := m.cfg.FromEmail
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

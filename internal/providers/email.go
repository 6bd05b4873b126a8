package providers

import (
	"context"
	"fmt"

	"sgpj-client/internal/config"
	"sgpj-client/internal/models"
	"sgpj-client/pkg/email"
)

// SendEmail mails the reminder to every configured recipient in one
// message.
func SendEmail(ctx context.Context, task models.Task, cfg config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cfg.Email.Recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	smtpServer := cfg.Email.SMTPServer
	smtpPort := cfg.Email.SMTPPort
	username := cfg.Email.Username
	password := cfg.Email.Password

	if smtpServer == "" || smtpPort == 0 || username == "" || password == "" {
		return fmt.Errorf("missing Email configuration: SMTPServer, SMTPPort, Username, or Password is empty")
	}

	msg := email.Message{
		FromName: cfg.Email.FromName,
		To:       cfg.Email.Recipients,
		Subject:  task.Subject,
		Body:     task.Body,
		Date:     task.Timestamp,
	}
	if err := email.Send(smtpServer, smtpPort, username, password, msg); err != nil {
		return fmt.Errorf("failed to send email for %s: %w", task.Key, err)
	}
	return nil
}

package mailer

import (
	"fmt"

	"marketplace_api/internal/pkg/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail (activation, password reset).
type Mailer interface {
	SendActivationMail(to, username, activeToken string) error
	SendResetPasswordMail(to, username, resetToken string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// GlobalMailer is nil when SMTP is not configured; callers must check.
var GlobalMailer Mailer

func Init() {
	cfg := config.GlobalConfig.SMTP
	if cfg.Host == "" {
		return
	}
	GlobalMailer = &smtpMailer{cfg: cfg}
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendActivationMail(to, username, activeToken string) error {
	urlActive := fmt.Sprintf("%s/auth/active-account/%s", config.GlobalConfig.App.ClientSite, activeToken)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to the marketplace. Activate your account using the link below:</p><p><a href=%q>Activate account</a></p>",
		username, urlActive)
	return m.send(to, "Activate your account", body)
}

func (m *smtpMailer) SendResetPasswordMail(to, username, resetToken string) error {
	urlReset := fmt.Sprintf("%s/auth/reset-password/%s", config.GlobalConfig.App.ClientSite, resetToken)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A password reset was requested for your account. Use the link below to choose a new password:</p><p><a href=%q>Reset password</a></p>",
		username, urlReset)
	return m.send(to, "Reset your password", body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

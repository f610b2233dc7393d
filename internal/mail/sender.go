package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
)

// Sender delivers account verification emails. The auth handlers only depend
// on this interface; transport is wired in main.
type Sender interface {
	SendVerification(to, name, token string) error
}

// SMTPSender sends through a plain SMTP relay configured from the environment.
type SMTPSender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	BaseURL  string // public URL the verification link points at
}

// LogSender logs the verification link instead of sending it. Development
// fallback when SMTP_HOST is not configured.
type LogSender struct{}

// NewFromEnv returns an SMTPSender when SMTP_HOST is set, otherwise a LogSender.
func NewFromEnv() Sender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		slog.Warn("SMTP_HOST not set, verification emails will only be logged")
		return LogSender{}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8008"
	}
	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		BaseURL:  baseURL,
	}
}

func verificationBody(from, to, name, link string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your campus board account\r\n"+
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"Hi %s,\r\n\r\n"+
			"Welcome to the campus notice board. Confirm your email address by opening:\r\n\r\n"+
			"%s\r\n\r\n"+
			"If you did not register, ignore this message.\r\n",
		from, to, name, link))
}

// SendVerification sends the verification link to the address.
func (s *SMTPSender) SendVerification(to, name, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", s.BaseURL, token)
	addr := s.Host + ":" + s.Port

	var a smtp.Auth
	if s.Username != "" {
		a = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	return smtp.SendMail(addr, a, s.From, []string{to}, verificationBody(s.From, to, name, link))
}

// SendVerification logs the link at info level.
func (LogSender) SendVerification(to, name, token string) error {
	slog.Info("verification email (not sent)", "to", to, "name", name, "token", token)
	return nil
}

package mailx

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPMailer sends mail over SMTP with implicit TLS (port 465 style).
// Credentials are injected at construction; there is no ambient mail config.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string // defaults to Username when empty
}

func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

func (m *SMTPMailer) from() string {
	if m.From != "" {
		return m.From
	}
	return m.Username
}

// Send delivers one HTML message. The context bounds the TCP dial; the SMTP
// conversation itself runs to completion or error.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	addr := net.JoinHostPort(m.Host, m.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.Host}}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mailx: dial %s: %w", addr, err)
	}
	defer rawConn.Close()

	client, err := smtp.NewClient(rawConn, m.Host)
	if err != nil {
		return fmt.Errorf("mailx: smtp handshake: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("mailx: auth: %w", err)
	}

	if err := client.Mail(m.from()); err != nil {
		return fmt.Errorf("mailx: MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("mailx: RCPT TO: %w", err)
	}

	msg := []byte(
		"From: " + m.from() + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailx: DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("mailx: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailx: close body: %w", err)
	}
	return nil
}

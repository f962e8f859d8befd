// Package email delivers watering reminders over SMTP.
package email

import (
	"fmt"

	"gopkg.in/mail.v2"
)

// Client sends plain text emails through one SMTP server.
type Client struct {
	dialer *mail.Dialer
	from   string
}

// NewClient creates an email Client for the given SMTP server and sender address.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		dialer: mail.NewDialer(smtpHost, smtpPort, username, password),
		from:   from,
	}
}

// Send emails body to the recipient with the given subject.
func (c *Client) Send(to, subject, body string) error {
	if err := c.dialer.DialAndSend(c.message(to, subject, body)); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}

func (c *Client) message(to, subject, body string) *mail.Message {
	m := mail.NewMessage()

	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return m
}

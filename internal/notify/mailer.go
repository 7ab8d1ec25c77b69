package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/h0rv/bugsquash/internal/config"
)

// NewMailer picks SMTP when it is enabled and Resend otherwise.
func NewMailer(cfg config.EmailConfig) (Mailer, error) {
	if cfg.SMTPEnabled {
		if cfg.SMTPHost == "" {
			return nil, errors.New("SMTP_HOST is required when SMTP is enabled")
		}
		return &SMTPMailer{cfg: cfg}, nil
	}
	if cfg.ResendAPIKey == "" {
		return nil, errors.New("RESEND_API_KEY is required unless SMTP is enabled")
	}
	return &ResendMailer{
		URL:    cfg.ResendURL,
		APIKey: cfg.ResendAPIKey,
		Client: http.DefaultClient,
	}, nil
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	URL    string
	APIKey string
	Client *http.Client
}

// Send posts the e-mail to the Resend API.
func (m *ResendMailer) Send(ctx context.Context, e Email) error {
	body := resendRequest{
		From:    e.From,
		To:      []string{e.To},
		Subject: e.Subject,
		HTML:    e.HTML,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	return nil
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	cfg config.EmailConfig
}

// Send delivers the message. net/smtp has no context support; ctx is ignored.
func (m *SMTPMailer) Send(_ context.Context, e Email) error {
	addr := net.JoinHostPort(m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, e.From, []string{e.To}, buildMessage(e)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// headerValue keeps user text from terminating a header line.
var headerValue = strings.NewReplacer("\r", "", "\n", " ")

func buildMessage(e Email) []byte {
	msg := "From: " + headerValue.Replace(e.From) + "\r\n" +
		"To: " + headerValue.Replace(e.To) + "\r\n" +
		"Subject: " + headerValue.Replace(e.Subject) + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		e.HTML
	return []byte(msg)
}

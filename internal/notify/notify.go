// Package notify delivers BugSquash notifications: it records a notification
// row for the recipient and e-mails them. The Relay runs the flow; the
// recorder, directory and mailer behind it are chosen by configuration.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMissingUserID is returned by Validate when a request has no recipient.
	ErrMissingUserID = errors.New("userId is required")
	// ErrMissingTitle is returned by Validate when a request has no title.
	ErrMissingTitle = errors.New("title is required")
	// ErrRecipientUnknown is returned when the directory has no such user.
	ErrRecipientUnknown = errors.New("recipient not found")
	// ErrNoEmail is returned when the recipient exists but cannot be mailed.
	ErrNoEmail = errors.New("recipient has no email address")
)

// Request is the payload accepted by the relay.
type Request struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link,omitempty"`
}

// Validate checks the fields the relay cannot work without.
func (r Request) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// Notification is a stored notification row.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Link      string
	CreatedAt time.Time
}

// Recipient is who an e-mail goes to.
type Recipient struct {
	ID    string
	Name  string
	Email string
}

// Email is a rendered message ready for a Mailer.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Recorder persists notification rows.
type Recorder interface {
	Record(ctx context.Context, n Notification) error
}

// Directory resolves a user id to an addressable recipient.
type Directory interface {
	Lookup(ctx context.Context, userID string) (Recipient, error)
}

// Mailer sends a rendered e-mail.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Relay runs the record, look up, mail flow for one request.
type Relay struct {
	recorder  Recorder
	directory Directory
	mailer    Mailer
	from      string
	now       func() time.Time
	log       *zap.Logger
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) RelayOption {
	return func(r *Relay) { r.now = now }
}

// WithRelayLogger sets the logger used for delivery events.
func WithRelayLogger(log *zap.Logger) RelayOption {
	return func(r *Relay) { r.log = log }
}

// NewRelay creates a Relay. from is the sender address of every e-mail.
func NewRelay(recorder Recorder, directory Directory, mailer Mailer, from string, opts ...RelayOption) *Relay {
	r := &Relay{
		recorder:  recorder,
		directory: directory,
		mailer:    mailer,
		from:      from,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send records the notification and e-mails the recipient.
// The first failing step aborts the flow and its error is returned.
func (r *Relay) Send(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Link:      req.Link,
		CreatedAt: r.now().UTC(),
	}
	if err := r.recorder.Record(ctx, n); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	to, err := r.directory.Lookup(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to look up recipient: %w", err)
	}
	if to.Email == "" {
		return fmt.Errorf("%w: %s", ErrNoEmail, req.UserID)
	}

	email := Email{
		From:    r.from,
		To:      to.Email,
		Subject: req.Title,
		HTML:    RenderHTML(req),
	}
	if err := r.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	r.log.Info("notification sent",
		zap.String("notification_id", n.ID),
		zap.String("user_id", req.UserID),
	)
	return nil
}

// RenderHTML builds the e-mail body. User supplied text is escaped.
func RenderHTML(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(req.Title))
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(req.Content))
	if req.Link != "" {
		fmt.Fprintf(&b, "<p><a href=\"%s\">View in BugSquash</a></p>\n", html.EscapeString(req.Link))
	}
	return b.String()
}

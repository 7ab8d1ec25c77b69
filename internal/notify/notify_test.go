package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/h0rv/bugsquash/internal/domain"
)

type fakeRecorder struct {
	recorded []Notification
	err      error
}

func (f *fakeRecorder) Record(_ context.Context, n Notification) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, n)
	return nil
}

type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, e Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

func testUsers() []domain.User {
	return []domain.User{
		{ID: "user-1", Name: "John Doe", Email: "john@example.com"},
		{ID: "user-2", Name: "Jane Smith", Email: "jane@example.com"},
		{ID: "user-4", Name: "No Mail"},
	}
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRelay(rec Recorder, mail Mailer, opts ...RelayOption) *Relay {
	opts = append([]RelayOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewRelay(rec, NewFixtureDirectory(testUsers()), mail, "notifications@bugsquash.com", opts...)
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"valid", Request{UserID: "user-1", Title: "Hi"}, nil},
		{"missing user", Request{Title: "Hi"}, ErrMissingUserID},
		{"blank user", Request{UserID: "  ", Title: "Hi"}, ErrMissingUserID},
		{"missing title", Request{UserID: "user-1"}, ErrMissingTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRelay_Send(t *testing.T) {
	rec := &fakeRecorder{}
	mail := &fakeMailer{}
	core, logs := observer.New(zap.InfoLevel)
	relay := newTestRelay(rec, mail, WithRelayLogger(zap.New(core)))

	err := relay.Send(context.Background(), Request{
		UserID:  "user-2",
		Title:   "Assigned: WEB-1",
		Content: "Login page not working on Safari",
		Link:    "http://localhost:5173/issues/issue-1",
	})
	require.NoError(t, err)

	require.Len(t, rec.recorded, 1)
	n := rec.recorded[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "user-2", n.UserID)
	assert.Equal(t, "Assigned: WEB-1", n.Title)
	assert.Equal(t, fixedNow, n.CreatedAt)

	require.Len(t, mail.sent, 1)
	e := mail.sent[0]
	assert.Equal(t, "notifications@bugsquash.com", e.From)
	assert.Equal(t, "jane@example.com", e.To)
	assert.Equal(t, "Assigned: WEB-1", e.Subject)
	assert.Contains(t, e.HTML, `<a href="http://localhost:5173/issues/issue-1">View in BugSquash</a>`)

	assert.Equal(t, 1, logs.FilterMessage("notification sent").Len())
}

func TestRelay_Send_InvalidRequest(t *testing.T) {
	rec := &fakeRecorder{}
	mail := &fakeMailer{}

	err := newTestRelay(rec, mail).Send(context.Background(), Request{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.Empty(t, rec.recorded)
	assert.Empty(t, mail.sent)
}

func TestRelay_Send_RecorderFailureStopsFlow(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	mail := &fakeMailer{}

	err := newTestRelay(rec, mail).Send(context.Background(), Request{UserID: "user-1", Title: "Hi"})

	assert.ErrorContains(t, err, "failed to record notification: disk full")
	assert.Empty(t, mail.sent)
}

func TestRelay_Send_UnknownRecipient(t *testing.T) {
	rec := &fakeRecorder{}
	mail := &fakeMailer{}

	err := newTestRelay(rec, mail).Send(context.Background(), Request{UserID: "user-9", Title: "Hi"})

	assert.ErrorIs(t, err, ErrRecipientUnknown)
	assert.Len(t, rec.recorded, 1, "the row is written before the lookup")
	assert.Empty(t, mail.sent)
}

func TestRelay_Send_RecipientWithoutEmail(t *testing.T) {
	mail := &fakeMailer{}

	err := newTestRelay(&fakeRecorder{}, mail).Send(context.Background(), Request{UserID: "user-4", Title: "Hi"})

	assert.ErrorIs(t, err, ErrNoEmail)
	assert.Empty(t, mail.sent)
}

func TestRelay_Send_MailerFailure(t *testing.T) {
	mail := &fakeMailer{err: errors.New("resend API error: status 500")}

	err := newTestRelay(&fakeRecorder{}, mail).Send(context.Background(), Request{UserID: "user-1", Title: "Hi"})

	assert.ErrorContains(t, err, "failed to send email")
}

func TestRenderHTML(t *testing.T) {
	t.Run("escapes user text", func(t *testing.T) {
		out := RenderHTML(Request{Title: "<b>Hi</b>", Content: "a & b"})
		assert.Contains(t, out, "<h2>&lt;b&gt;Hi&lt;/b&gt;</h2>")
		assert.Contains(t, out, "<p>a &amp; b</p>")
		assert.NotContains(t, out, "View in BugSquash")
	})

	t.Run("includes link when set", func(t *testing.T) {
		out := RenderHTML(Request{Title: "Hi", Link: `http://x/"y"`})
		assert.Contains(t, out, `<a href="http://x/&#34;y&#34;">View in BugSquash</a>`)
	})
}

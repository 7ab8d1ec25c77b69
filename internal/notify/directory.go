package notify

import (
	"context"
	"fmt"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/supabase"
)

// FixtureDirectory resolves recipients from an in-memory user list.
type FixtureDirectory struct {
	users map[string]domain.User
}

// NewFixtureDirectory indexes users by id.
func NewFixtureDirectory(users []domain.User) *FixtureDirectory {
	idx := make(map[string]domain.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return &FixtureDirectory{users: idx}
}

// Lookup returns the user with the given id.
func (d *FixtureDirectory) Lookup(_ context.Context, userID string) (Recipient, error) {
	u, ok := d.users[userID]
	if !ok {
		return Recipient{}, fmt.Errorf("%w: %s", ErrRecipientUnknown, userID)
	}
	return Recipient{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// Supabase adapts the pg_graphql client to Recorder and Directory.
type Supabase struct {
	client *supabase.Client
}

// NewSupabase wraps an existing client.
func NewSupabase(client *supabase.Client) *Supabase {
	return &Supabase{client: client}
}

// Record inserts the notification through insertIntonotificationsCollection.
func (s *Supabase) Record(ctx context.Context, n Notification) error {
	_, err := s.client.InsertNotification(ctx, supabase.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	})
	return err
}

// Lookup reads the recipient's profile.
func (s *Supabase) Lookup(ctx context.Context, userID string) (Recipient, error) {
	p, err := s.client.GetProfile(ctx, userID)
	if err != nil {
		return Recipient{}, err
	}
	return Recipient{ID: p.ID, Name: p.Name, Email: p.Email}, nil
}

package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/machinebox/graphql"
)

// Notification is a row of the notifications table.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Link      string
	CreatedAt time.Time
}

// InsertNotification stores a notification row and returns the ID assigned by the database.
func (c *Client) InsertNotification(ctx context.Context, n Notification) (string, error) {
	req := graphql.NewRequest(`
		mutation($objects: [notificationsInsertInput!]!) {
			insertIntonotificationsCollection(objects: $objects) {
				records {
					id
				}
			}
		}
	`)

	object := map[string]interface{}{
		"user_id": n.UserID,
		"title":   n.Title,
		"content": n.Content,
		"link":    n.Link,
	}
	if n.ID != "" {
		object["id"] = n.ID
	}
	if !n.CreatedAt.IsZero() {
		object["created_at"] = n.CreatedAt.Format(time.RFC3339)
	}
	req.Var("objects", []map[string]interface{}{object})

	var resp struct {
		InsertIntoNotificationsCollection struct {
			Records []struct {
				ID string `json:"id"`
			} `json:"records"`
		} `json:"insertIntonotificationsCollection"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to insert notification: %w", err)
	}

	records := resp.InsertIntoNotificationsCollection.Records
	if len(records) == 0 {
		return "", fmt.Errorf("insert notification returned no records")
	}
	return records[0].ID, nil
}

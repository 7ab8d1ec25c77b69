package notify

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryOnlyPostgres() *Postgres {
	return &Postgres{builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

func TestPostgres_InsertNotificationQuery(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	query, args, err := newQueryOnlyPostgres().insertNotification(Notification{
		ID: "n-1", UserID: "user-2", Title: "Hi", Content: "c", Link: "/l", CreatedAt: created,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO notifications (id,user_id,title,content,link,created_at) VALUES ($1,$2,$3,$4,$5,$6)",
		query)
	assert.Equal(t, []interface{}{"n-1", "user-2", "Hi", "c", "/l", created}, args)
}

func TestPostgres_SelectProfileQuery(t *testing.T) {
	query, args, err := newQueryOnlyPostgres().selectProfile("user-2")
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, COALESCE(email, '') FROM profiles WHERE id = $1 LIMIT 1", query)
	assert.Equal(t, []interface{}{"user-2"}, args)
}

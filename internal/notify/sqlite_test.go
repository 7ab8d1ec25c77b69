package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RecordAndList(t *testing.T) {
	rec, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })

	ctx := context.Background()
	older := Notification{
		ID: "n-1", UserID: "user-2", Title: "First", Content: "one",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	newer := Notification{
		ID: "n-2", UserID: "user-2", Title: "Second", Link: "/issues/issue-2",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 500, time.UTC),
	}
	other := Notification{
		ID: "n-3", UserID: "user-1", Title: "Other",
		CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	for _, n := range []Notification{older, newer, other} {
		require.NoError(t, rec.Record(ctx, n))
	}

	got, err := rec.ListForUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer, got[0])
	assert.Equal(t, older, got[1])
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	rec, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })

	n := Notification{ID: "n-1", UserID: "user-1", Title: "Hi", CreatedAt: time.Now()}
	require.NoError(t, rec.Record(context.Background(), n))
	assert.Error(t, rec.Record(context.Background(), n))
}

func TestOpenSQLite_Reopen(t *testing.T) {
	dir := t.TempDir()

	rec, err := OpenSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, rec.Record(context.Background(), Notification{
		ID: "n-1", UserID: "user-1", Title: "Hi", CreatedAt: time.Now(),
	}))
	require.NoError(t, rec.Close())

	rec, err = OpenSQLite(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })

	got, err := rec.ListForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

package fixtures

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/h0rv/bugsquash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	s := Snapshot()

	assert.Len(t, s.Users, 3)
	assert.Len(t, s.Projects, 2)
	assert.Len(t, s.Issues, 4)
	assert.Equal(t, "project-1", s.CurrentProjectID)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)

	t.Run("issues reference their own workflow", func(t *testing.T) {
		for _, issue := range s.Issues {
			assert.NoError(t, store.Check(s, store.AddIssue{Issue: issue}), issue.ID)
		}
	})

	t.Run("timestamps are ordered", func(t *testing.T) {
		for _, issue := range s.Issues {
			assert.False(t, issue.UpdatedAt.Before(issue.CreatedAt), issue.ID)
		}
	})

	t.Run("fresh copy each call", func(t *testing.T) {
		a := Snapshot()
		a.Projects[0].Name = "changed"
		assert.Equal(t, "Web Application", Snapshot().Projects[0].Name)
	})
}

func TestWriteAndLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Snapshot(), FormatYAML))
	assert.Contains(t, buf.String(), "key: WEB")

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)

	orig := Snapshot()
	assert.Equal(t, store.ProjectIDs(orig), store.ProjectIDs(loaded))
	assert.Equal(t, store.IssueIDs(orig), store.IssueIDs(loaded))
	assert.Equal(t, store.CommentIDs(orig), store.CommentIDs(loaded))
	assert.Equal(t, orig.CurrentProjectID, loaded.CurrentProjectID)
	assert.True(t, orig.Issues[0].UpdatedAt.Equal(loaded.Issues[0].UpdatedAt))
	assert.Equal(t, orig.Projects[1].Statuses, loaded.Projects[1].Statuses)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Snapshot(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded["issues"], 4)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Snapshot(), Format("toml"))
	assert.ErrorContains(t, err, "unknown output format")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

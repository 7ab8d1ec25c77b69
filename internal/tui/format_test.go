package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/h0rv/bugsquash/internal/domain"
)

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC), "Today at 03:04 PM"},
		{"yesterday", time.Date(2024, 3, 9, 9, 30, 0, 0, time.UTC), "Yesterday at 09:30 AM"},
		{"this year", time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), "Jan 2"},
		{"older", time.Date(2023, 4, 15, 13, 30, 0, 0, time.UTC), "Apr 15, 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.t, now))
		})
	}
}

func TestFormatDate_YesterdayAcrossMonth(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday at 11:00 PM", formatDate(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), now))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", timeAgo(now.Add(-72*time.Hour), now))
	assert.Equal(t, "2 hours ago", timeAgo(now.Add(-2*time.Hour), now))
}

func TestIssueCount(t *testing.T) {
	assert.Equal(t, "0 issues", issueCount(0))
	assert.Equal(t, "1 issue", issueCount(1))
	assert.Equal(t, "4 issues", issueCount(4))
}

func TestIssueURL(t *testing.T) {
	issue := domain.Issue{ID: "issue-3", ProjectID: "project-1"}

	assert.Equal(t, "https://app.test/projects/project-1/issues/issue-3", issueURL("https://app.test/", issue))
	assert.Empty(t, issueURL("", issue))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "…", truncate("abc", 1))
	assert.Empty(t, truncate("abc", 0))
	// Counts runes, not bytes
	assert.Equal(t, "héll…", truncate("héllo wörld", 5))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░]", progressBar(0, 10))
	assert.Equal(t, "[█████░░░░░]", progressBar(50, 10))
	assert.Equal(t, "[██████████]", progressBar(100, 10))
	assert.Equal(t, "[██████████]", progressBar(150, 10))
	assert.Equal(t, "[░░░░░░░░░░]", progressBar(-5, 10))
}

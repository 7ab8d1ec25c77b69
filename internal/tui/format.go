package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/h0rv/bugsquash/internal/domain"
)

// formatDate renders t relative to now: "Today at 03:04 PM", "Yesterday at ...",
// "Jan 2" within the current year, "Jan 2, 2006" otherwise.
func formatDate(t, now time.Time) string {
	t = t.In(now.Location())

	y, m, d := t.Date()
	ny, nm, nd := now.Date()
	if y == ny && m == nm && d == nd {
		return "Today at " + t.Format("03:04 PM")
	}

	yy, ym, yd := now.AddDate(0, 0, -1).Date()
	if y == yy && m == ym && d == yd {
		return "Yesterday at " + t.Format("03:04 PM")
	}

	if y == ny {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// timeAgo renders t as "3 days ago" relative to now.
func timeAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// issueCount renders "1 issue" or "3 issues".
func issueCount(n int) string {
	return english.Plural(n, "issue", "issues")
}

// issueURL links to an issue in the web client.
func issueURL(baseURL string, i domain.Issue) string {
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/projects/%s/issues/%s", strings.TrimRight(baseURL, "/"), i.ProjectID, i.ID)
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// progressBar draws a fixed-width bar for pct percent.
func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/bugsquash/internal/fixtures"
	"github.com/h0rv/bugsquash/internal/store"
)

// testNow is a few days after the newest fixture timestamp.
var testNow = time.Date(2023, 4, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// newTestStore returns a store seeded with the built-in fixtures.
func newTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	return store.New(fixtures.Snapshot(), opts...)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// runCmd executes cmd and flattens any batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T.
func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

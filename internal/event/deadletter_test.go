package event

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadLetterWriter_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	w, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	w.now = func() time.Time { return fixed }
	require.NoError(t, w.Write(NewLevelUpEvent("u1", 2, 3, 400), 5, errors.New("timeout")))
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Write(NewLevelUpEvent("u1", 3, 4, 900), 1, nil), os.ErrClosed)
	assert.NoError(t, w.Close())

	w, err = NewDeadLetterWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(NewBadgeUnlockedEvent("u2", "saver"), 1, nil))
	require.NoError(t, w.Close())

	entries := readDeadLetterFile(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, fixed, entries[0].Timestamp)
	assert.Equal(t, 5, entries[0].Attempts)
	assert.Equal(t, "timeout", entries[0].LastError)
	assert.Equal(t, BadgeUnlocked, entries[1].Event.Type)
	assert.Empty(t, entries[1].LastError)
}

func TestNewDeadLetterWriter_MissingDirectory(t *testing.T) {
	_, err := NewDeadLetterWriter(filepath.Join(t.TempDir(), "nope", "dl.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgOpenDeadLetter)
}

func TestReadDeadLetters(t *testing.T) {
	input := `{"schema_version":"1.0","timestamp":"2026-03-01T00:00:00Z","event":{"type":"level_up"},"attempts":2}

{"schema_version":"1.0","timestamp":"2026-03-02T00:00:00Z","event":{"type":"badge_unlocked"},"attempts":1}
`
	entries, err := ReadDeadLetters(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, LevelUp, entries[0].Event.Type)

	entries, err = ReadDeadLetters(strings.NewReader(input + "{not json}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
	assert.Len(t, entries, 2, "entries before the bad line are still returned")

	entries, err = ReadDeadLetters(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarizeDeadLetters(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	entries := []DeadLetterEntry{
		{Timestamp: day(2), Event: Event{Type: LevelUp}, LastError: "old"},
		{Timestamp: day(1), Event: Event{Type: BadgeUnlocked}, LastError: "b"},
		{Timestamp: day(5), Event: Event{Type: LevelUp}, LastError: "newest"},
		{Timestamp: day(3), Event: Event{Type: LevelUp}, LastError: "middle"},
		{Timestamp: day(4), Event: Event{Type: XPEarned}},
	}

	got := SummarizeDeadLetters(entries)
	require.Len(t, got, 3)

	assert.Equal(t, DeadLetterSummary{Type: LevelUp, Count: 3, First: day(2), Last: day(5), LastError: "newest"}, got[0])
	// ties on count sort by type name
	assert.Equal(t, BadgeUnlocked, got[1].Type)
	assert.Equal(t, XPEarned, got[2].Type)

	assert.Empty(t, SummarizeDeadLetters(nil))
}

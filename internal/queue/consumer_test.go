package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageWritesActivityLine(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	ev := GigUpdatedEvent{
		EventID:      "evt-1",
		Action:       ActionUpdated,
		GigID:        12,
		OwnerID:      3,
		Title:        "Jazz Night",
		Venue:        "Blue Room",
		City:         "Hamburg",
		StartsAt:     "2026-09-12T20:00:00Z",
		Status:       "CONFIRMED",
		LineupCount:  4,
		SetlistSongs: 18,
		SavedAt:      "2026-08-29T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "gig-activity.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "Gig UPDATED")
	assert.Contains(t, line, "gig_id=12")
	assert.Contains(t, line, `title="Jazz Night"`)
	assert.Contains(t, line, "lineup=4")
	assert.Contains(t, line, "songs=18")

	// A second message appends rather than truncates.
	require.NoError(t, handleMessage(body))
	data, err = os.ReadFile(filepath.Join(dir, "logs", "gig-activity.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, len(splitLines(data)))
}

func TestHandleMessageRejectsBadJSON(t *testing.T) {
	assert.Error(t, handleMessage([]byte("{not json")))
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	return lines
}

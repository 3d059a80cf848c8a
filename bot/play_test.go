package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-spotify-bot/model"
)

func TestParseSelectionIndex(t *testing.T) {
	tests := []struct {
		customID string
		want     int
		ok       bool
	}{
		{"select_video_1", 1, true},
		{"select_video_5", 5, true},
		{"select_video_", 0, false},
		{"select_video_abc", 0, false},
		{"panel_play", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseSelectionIndex(tt.customID)
		require.Equal(t, tt.ok, ok, "customID %q", tt.customID)
		assert.Equal(t, tt.want, got, "customID %q", tt.customID)
	}
}

func TestTakeSearchResult(t *testing.T) {
	b := &Bot{searchResults: make(map[string][]model.VideoInfo)}
	b.setSearchResults("user-1", []model.VideoInfo{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	})

	// Out-of-range and unknown-user picks leave the pending search intact,
	// so the remaining buttons still work.
	_, ok := b.takeSearchResult("user-1", 0)
	assert.False(t, ok)
	_, ok = b.takeSearchResult("user-1", 3)
	assert.False(t, ok)
	_, ok = b.takeSearchResult("user-2", 1)
	assert.False(t, ok)

	video, ok := b.takeSearchResult("user-1", 2)
	require.True(t, ok)
	assert.Equal(t, "Second", video.Title)

	// A successful pick consumes the search.
	_, ok = b.takeSearchResult("user-1", 1)
	assert.False(t, ok)
}

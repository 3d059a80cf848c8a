package youtube

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "mysong", "mysong"},
		{"spaces", "my song title", "my_song_title"},
		{"slashes and colons", "AC/DC: Back in Black", "AC_DC__Back_in_Black"},
		{"keeps dots and dashes", "track-01.final", "track-01.final"},
		{"unicode stripped", "naïve café", "na_ve_caf_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestDecodeVideoLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"a1","title":"First Song","uploader":"ChannelA","webpage_url":"https://youtu.be/a1","duration":215}`,
		`WARNING: some yt-dlp noise`,
		`{"id":"b2","title":"Second Song","uploader":"ChannelB","webpage_url":"https://youtu.be/b2","duration":90.5}`,
	}, "\n")

	videos, err := decodeVideoLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "First Song", videos[0].Title)
	assert.Equal(t, "ChannelA", videos[0].Uploader)
	assert.Equal(t, "https://youtu.be/a1", videos[0].WebURL)
	assert.InDelta(t, 215.0, videos[0].Duration, 0.001)
	assert.Equal(t, "Second Song", videos[1].Title)
}

func TestDecodeVideoLines_Empty(t *testing.T) {
	videos, err := decodeVideoLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestFormatResults(t *testing.T) {
	videos, err := decodeVideoLines(strings.NewReader(
		`{"id":"a1","title":"First Song","uploader":"ChannelA","webpage_url":"https://youtu.be/a1","duration":125}`))
	require.NoError(t, err)

	msg := formatResults(videos)
	assert.Contains(t, msg, "Result #1:")
	assert.Contains(t, msg, "Title: First Song")
	assert.Contains(t, msg, "Duration: 02:05")
}

func TestResolveFFmpeg_Override(t *testing.T) {
	c := NewClient("/opt/ffmpeg/bin/ffmpeg")
	path, ok := c.ResolveFFmpeg()
	assert.True(t, ok)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", path)
}

package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"discord-spotify-bot/model"
)

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "0:00", fmtDuration(0))
	assert.Equal(t, "0:59", fmtDuration(59*time.Second))
	assert.Equal(t, "1:00", fmtDuration(time.Minute))
	assert.Equal(t, "3:07", fmtDuration(3*time.Minute+7*time.Second))
	assert.Equal(t, "61:05", fmtDuration(61*time.Minute+5*time.Second))
}

func TestProgressBar(t *testing.T) {
	full := progressBar(3*time.Minute, 3*time.Minute)
	assert.Contains(t, full, "3:00 / 3:00")
	assert.NotContains(t, full, "▯")

	empty := progressBar(0, 3*time.Minute)
	assert.Contains(t, empty, "0:00 / 3:00")
	assert.NotContains(t, empty, "▮")

	half := progressBar(90*time.Second, 3*time.Minute)
	assert.Contains(t, half, "▮▯")
	assert.Contains(t, half, "1:30 / 3:00")
}

func TestProgressBarClampsOverrun(t *testing.T) {
	// Elapsed can outrun the reported duration on live streams or bad
	// metadata; the bar must not overflow.
	bar := progressBar(10*time.Minute, 3*time.Minute)
	assert.Contains(t, bar, "3:00 / 3:00")
}

func TestProgressBarUnknownTotal(t *testing.T) {
	assert.Equal(t, "1:05", progressBar(65*time.Second, 0))
}

func TestNowPlayingEmbedFields(t *testing.T) {
	track := model.NewTrack()
	track.Title = "Around the World"
	track.Artist = "Daft Punk"
	track.Duration = 428
	track.RequestedBy = "user-1"

	embed := nowPlayingEmbed(track)

	assert.Contains(t, embed.Description, "Around the World")
	assert.Contains(t, embed.Description, "Daft Punk")

	var fields []string
	for _, f := range embed.Fields {
		fields = append(fields, f.Name)
	}
	assert.Contains(t, fields, "Requested By")
	assert.Contains(t, fields, "Duration")
}

package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-spotify-bot/model"
)

func panelCustomIDs(t *testing.T) []string {
	t.Helper()
	var ids []string
	for _, row := range panelComponents() {
		actionsRow, ok := row.(discordgo.ActionsRow)
		require.True(t, ok)
		for _, comp := range actionsRow.Components {
			button, ok := comp.(discordgo.Button)
			require.True(t, ok)
			ids = append(ids, button.CustomID)
		}
	}
	return ids
}

func TestPanelComponents(t *testing.T) {
	ids := panelCustomIDs(t)

	for _, action := range []string{"play", "pause", "resume", "skip", "stop", "shuffle", "repeat", "queue", "save", "leave"} {
		assert.Contains(t, ids, panelPrefix+action)
	}
}

func TestSaveTrackEmbed(t *testing.T) {
	track := model.NewTrack()
	track.Title = "Around the World"
	track.Artist = "Daft Punk"
	track.WebURL = "https://youtu.be/abc123"

	embed := saveTrackEmbed(track)

	assert.Contains(t, embed.Description, "Around the World")
	assert.Contains(t, embed.Description, "Daft Punk")
	assert.Equal(t, "https://youtu.be/abc123", embed.URL)

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Link", embed.Fields[0].Name)
	assert.Equal(t, "https://youtu.be/abc123", embed.Fields[0].Value)
}

func TestSaveTrackEmbedWithoutURL(t *testing.T) {
	track := model.NewTrack()
	track.Title = "Obscure B-Side"

	embed := saveTrackEmbed(track)
	assert.Empty(t, embed.Fields)
}

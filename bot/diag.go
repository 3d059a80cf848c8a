package bot

import (
	"github.com/bwmarrin/discordgo"

	"discord-spotify-bot/youtube"
)

// HandleDiagCommand reports whether the external pieces the bot depends on
// are reachable, so a misconfigured host is obvious from inside Discord.
func (b *Bot) HandleDiagCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ytStatus := "❌ yt-dlp not found on PATH"
	if youtube.Available() {
		ytStatus = "✅ yt-dlp available"
	}

	ffStatus := "❌ ffmpeg not found (set FFMPEG_PATH or install it)"
	if path, ok := b.yt.ResolveFFmpeg(); ok {
		ffStatus = "✅ ffmpeg at `" + path + "`"
	}

	spStatus := "❌ Spotify not configured"
	if b.spotify != nil {
		spStatus = "✅ Spotify credentials loaded"
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "🩺 Diagnostics",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "YouTube (yt-dlp)", Value: ytStatus},
			{Name: "Audio (ffmpeg)", Value: ffStatus},
			{Name: "Spotify", Value: spStatus},
		},
	})
}

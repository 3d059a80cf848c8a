package bot

import (
	"github.com/bwmarrin/discordgo"
)

func (b *Bot) HandleStopCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	if !b.queue.IsInVoiceChannel(guildID) {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "🔇 Not in Voice Channel",
			Description: "I'm not in a voice channel, so there's nothing to stop.",
		})
		return
	}

	dropped := b.queue.Clear(guildID)
	for _, track := range dropped {
		b.removeTrackFile(guildID, track)
	}
	if paused, ok := b.queue.TakePaused(guildID); ok {
		b.removeTrackFile(guildID, paused)
	}

	b.SignalStop(guildID)
	b.leaveVoice(guildID)
	b.updatePanel(guildID)

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "⏹️ Playback Stopped",
		Description: "Stopped playback, cleared the queue and left the voice channel.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Try /play to start again",
		},
	})
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Pause remembers the current track and interrupts it. dgvoice has no true
// pause, so resuming restarts the track from the top.
func (b *Bot) HandlePauseCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	if !b.queue.IsInVoiceChannel(guildID) || !b.queue.IsPlaying(guildID) {
		respondEphemeral(s, i, "⏸️ Nothing is playing to pause.")
		return
	}

	current, ok := b.queue.CurrentlyPlaying(guildID)
	if !ok {
		respondEphemeral(s, i, "⏸️ Nothing is playing to pause.")
		return
	}

	b.queue.SetPaused(guildID, current)
	b.SignalStop(guildID)
	b.queue.SetLastActivity(guildID)
	b.updatePanel(guildID)

	respond(s, i, fmt.Sprintf("⏸️ Paused **%s**.", current.Title))
}

func (b *Bot) HandleResumeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	track, ok := b.queue.TakePaused(guildID)
	if !ok {
		respondEphemeral(s, i, "▶️ Nothing to resume.")
		return
	}

	b.queue.PushFront(guildID, track)
	b.queue.SetLastActivity(guildID)
	b.startPlayback(guildID, i.ChannelID)

	respond(s, i, fmt.Sprintf("▶️ Resuming: **%s**", track.Title))
}

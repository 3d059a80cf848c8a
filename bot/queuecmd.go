package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// maxQueueLines keeps the queue embed under Discord's description limit.
const maxQueueLines = 20

func (b *Bot) HandleGetQueueCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	tracks := b.queue.List(guildID)
	current, playing := b.queue.CurrentlyPlaying(guildID)

	if len(tracks) == 0 && !playing {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "🎵 Queue Empty",
			Description: "Nothing queued. Use `/play` or `/playlist` to add songs.",
		})
		return
	}

	var builder strings.Builder
	if playing {
		fmt.Fprintf(&builder, "▶️ **Now playing:** %s\n\n", current.Title)
	}

	for idx, track := range tracks {
		if idx >= maxQueueLines {
			fmt.Fprintf(&builder, "\n…and %d more.", len(tracks)-maxQueueLines)
			break
		}
		line := track.Title
		if track.Duration > 0 {
			line += fmt.Sprintf(" (%s)", fmtDuration(time.Duration(track.Duration)*time.Second))
		}
		fmt.Fprintf(&builder, "**%d.** %s\n", idx+1, line)
	}

	title := fmt.Sprintf("🎵 Queue — %d track(s)", len(tracks))
	if name := b.queue.PlaylistName(guildID); name != "" {
		title = fmt.Sprintf("🎵 Queue — %s (%d track(s))", name, len(tracks))
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: builder.String(),
	})
}

func (b *Bot) HandleClearQueueCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	dropped := b.queue.Clear(guildID)
	for _, track := range dropped {
		b.removeTrackFile(guildID, track)
	}
	b.queue.SetLastActivity(guildID)
	b.updatePanel(guildID)

	if len(dropped) == 0 {
		respondEphemeral(s, i, "🧹 The queue was already empty.")
		return
	}
	respond(s, i, fmt.Sprintf("🧹 Cleared %d track(s) from the queue.", len(dropped)))
}

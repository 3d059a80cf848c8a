package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) HandleShuffleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	n := b.queue.Len(guildID)
	if n < 2 {
		respondEphemeral(s, i, "🔀 Need at least two queued tracks to shuffle.")
		return
	}

	b.queue.Shuffle(guildID)
	b.queue.SetLastActivity(guildID)
	b.updatePanel(guildID)

	respond(s, i, fmt.Sprintf("🔀 Shuffled %d tracks.", n))
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) HandleRepeatCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID
	mode := ParseRepeatMode(i.ApplicationCommandData().Options[0].StringValue())

	b.queue.SetRepeat(guildID, mode)
	b.updatePanel(guildID)

	respond(s, i, fmt.Sprintf("🔁 Repeat mode set to **%s**.", mode))
}

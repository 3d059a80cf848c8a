package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Interaction is the single gateway handler: it fans out to the slash
// command table, the component prefix registry, modal submissions and
// autocomplete handlers.
func (b *Bot) Interaction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := GetUserID(i)
	if userID == "" || userID == s.State.User.ID {
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if cmd, ok := b.commands[name]; ok {
			cmd.Handler(s, i)
		} else {
			log.Warn().Str("command", name).Msg("unknown slash command")
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for prefix, handler := range b.components {
			if strings.HasPrefix(customID, prefix) {
				handler(s, i)
				return
			}
		}
		log.Warn().Str("custom_id", customID).Msg("unknown component interaction")

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if handler, ok := b.modals[customID]; ok {
			handler(s, i)
		} else {
			log.Warn().Str("custom_id", customID).Msg("unknown modal submission")
		}

	case discordgo.InteractionApplicationCommandAutocomplete:
		name := i.ApplicationCommandData().Name
		if handler, ok := b.autocomplete[name]; ok {
			handler(s, i)
		} else {
			log.Warn().Str("command", name).Msg("unknown autocomplete interaction")
		}
	}
}

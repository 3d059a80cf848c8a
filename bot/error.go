package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// GuildError is a failure that should surface in the guild's text channel,
// not just the logs: download failures, unresolvable tracks, voice trouble.
type GuildError struct {
	GuildID   string
	ChannelID string // optional; falls back to the first writable channel
	Err       error
}

func (b *Bot) reportError(guildID, channelID string, err error) {
	select {
	case b.errors <- GuildError{GuildID: guildID, ChannelID: channelID, Err: err}:
	default:
		log.Warn().Err(err).Str("guild", guildID).Msg("error channel full, dropping")
	}
}

func (b *Bot) reportErrors() {
	for ge := range b.errors {
		log.Error().Err(ge.Err).Str("guild", ge.GuildID).Msg("guild error")

		channelID := ge.ChannelID
		if channelID == "" {
			channelID = firstWritableChannel(b.session, ge.GuildID)
		}
		if channelID == "" {
			continue
		}

		embed := &discordgo.MessageEmbed{
			Title:       "⚠️ Something went wrong",
			Description: ge.Err.Error(),
			Color:       embedColor,
		}
		if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("could not deliver error message")
		}
	}
}

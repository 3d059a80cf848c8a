package bot

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

func (b *Bot) findUserVoiceChannel(guildID, userID string) string {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("failed to fetch guild state")
		return ""
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID
		}
	}
	return ""
}

func (b *Bot) joinVoiceChannel(guildID, channelID string) error {
	vc, err := b.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	b.queue.SaveVoiceConnection(guildID, vc)
	return nil
}

// ensureVoice joins the requester's voice channel unless already connected.
func (b *Bot) ensureVoice(guildID, userID string) error {
	if b.queue.IsInVoiceChannel(guildID) {
		return nil
	}

	channelID := b.findUserVoiceChannel(guildID, userID)
	if channelID == "" {
		return fmt.Errorf("you must be connected to a voice channel")
	}
	return b.joinVoiceChannel(guildID, channelID)
}

func (b *Bot) leaveVoice(guildID string) {
	if vc, ok := b.queue.GetVoiceConnection(guildID); ok {
		if err := vc.Disconnect(); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("voice disconnect failed")
		}
	}
	b.queue.SaveVoiceConnection(guildID, nil)
	b.queue.SetPlaying(guildID, false)
	b.queue.SetCurrentlyPlaying(guildID, nil)
}

package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	idleCheckInterval = time.Minute

	// idleLeaveTimeout is how long the bot stays in voice with nothing
	// playing before it disconnects on its own.
	idleLeaveTimeout = 10 * time.Minute
)

// idleMonitor disconnects from voice channels the bot has no reason to stay
// in: everyone left, or nothing has played for a while.
func (b *Bot) idleMonitor(stop <-chan struct{}) {
	ticker := b.clock.NewTicker(idleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			b.sweepIdleGuilds()
		}
	}
}

func (b *Bot) sweepIdleGuilds() {
	for _, guild := range b.session.State.Guilds {
		guildID := guild.ID
		if !b.queue.IsInVoiceChannel(guildID) {
			continue
		}

		alone := !b.hasHumanListeners(guildID)
		idle := !b.queue.IsPlaying(guildID) && b.queue.IdleFor(guildID) >= idleLeaveTimeout
		if !alone && !idle {
			continue
		}

		reason := "queue idle"
		if alone {
			reason = "voice channel empty"
		}
		log.Info().Str("guild", guildID).Str("reason", reason).Msg("leaving voice channel")

		b.SignalStop(guildID)
		for _, track := range b.queue.Clear(guildID) {
			b.removeTrackFile(guildID, track)
		}
		b.leaveVoice(guildID)
		b.updatePanel(guildID)

		if channelID := firstWritableChannel(b.session, guildID); channelID != "" {
			b.sendLeaveNotice(channelID, alone)
		}
	}
}

// hasHumanListeners reports whether any non-bot user shares the bot's voice
// channel.
func (b *Bot) hasHumanListeners(guildID string) bool {
	vc, ok := b.queue.GetVoiceConnection(guildID)
	if !ok {
		return false
	}

	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		// Can't tell; assume someone is listening rather than cutting
		// playback on a state hiccup.
		return true
	}

	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != vc.ChannelID || vs.UserID == b.session.State.User.ID {
			continue
		}
		member, err := b.session.State.Member(guildID, vs.UserID)
		if err != nil || member.User == nil || !member.User.Bot {
			return true
		}
	}
	return false
}

func (b *Bot) sendLeaveNotice(channelID string, alone bool) {
	desc := "Nothing played for a while, so I left the voice channel."
	if alone {
		desc = "Everyone left the voice channel, so I did too."
	}
	embed := &discordgo.MessageEmbed{
		Title:       "👋 Leaving Voice Channel",
		Description: desc,
		Color:       embedColor,
	}
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Debug().Err(err).Str("channel", channelID).Msg("could not send leave notice")
	}
}

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/model"
)

// progressCells is the width of the text progress bar in panel and
// now-playing embeds.
const progressCells = 18

// progressBar renders elapsed/total as "▮▮▮▯▯… 1:23 / 3:45".
func progressBar(elapsed, total time.Duration) string {
	if total <= 0 {
		return fmtDuration(elapsed)
	}
	if elapsed > total {
		elapsed = total
	}
	filled := int(float64(progressCells) * elapsed.Seconds() / total.Seconds())
	if filled > progressCells {
		filled = progressCells
	}
	var builder strings.Builder
	for c := 0; c < progressCells; c++ {
		if c < filled {
			builder.WriteString("▮")
		} else {
			builder.WriteString("▯")
		}
	}
	return fmt.Sprintf("%s %s / %s", builder.String(), fmtDuration(elapsed), fmtDuration(total))
}

func nowPlayingEmbed(track model.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Now Playing",
		Description: fmt.Sprintf("**%s**", track.Title),
		URL:         track.WebURL,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Requested By",
				Value:  fmt.Sprintf("<@%s>", track.RequestedBy),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /skip to skip, /pause to pause, /queue to see what's next",
		},
	}
	if track.Artist != "" {
		embed.Description = fmt.Sprintf("**%s**\nby %s", track.Title, track.Artist)
	}
	if track.Duration > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Duration",
			Value:  fmtDuration(time.Duration(track.Duration) * time.Second),
			Inline: true,
		})
	}
	if track.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.Thumbnail}
	}
	return embed
}

// SendNowPlayingEmbed announces a track in the guild's text channel.
func (b *Bot) SendNowPlayingEmbed(channelID string, track model.Track) {
	if channelID == "" {
		return
	}
	_, err := b.session.ChannelMessageSendEmbed(channelID, nowPlayingEmbed(track))
	if err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("could not send now playing embed")
	}
}

func (b *Bot) HandleNowPlayingCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	track, ok := b.queue.CurrentlyPlaying(guildID)
	if !ok {
		respondEphemeral(s, i, "🎶 Nothing is playing right now.")
		return
	}

	embed := nowPlayingEmbed(track)
	if elapsed, ok := b.queue.Elapsed(guildID); ok && track.Duration > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Progress",
			Value: progressBar(elapsed, time.Duration(track.Duration)*time.Second),
		})
	}
	respondEmbed(s, i, embed)
}

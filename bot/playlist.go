package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (b *Bot) HandlePlaylistCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	input := i.ApplicationCommandData().Options[0].StringValue()
	userID := GetUserID(i)

	if b.spotify == nil {
		respondEphemeral(s, i, "Spotify is not configured. Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to defer interaction")
		return
	}

	go func() {
		pl, err := b.spotify.FetchPlaylist(context.Background(), input, userID)
		if err != nil {
			b.followupError(s, i, fmt.Sprintf("Could not fetch playlist: %v", err))
			return
		}
		if len(pl.Tracks) == 0 {
			b.followupError(s, i, "That playlist has no playable tracks.")
			return
		}

		b.queue.AddAll(i.GuildID, pl.Tracks)
		b.queue.SetPlaylistName(i.GuildID, pl.Name)

		name := pl.Name
		if name == "" {
			name = "unknown name"
		}
		_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
			Content: fmt.Sprintf("✅ Added %d tracks from Spotify playlist **%s** to the queue.", len(pl.Tracks), name),
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to send followup message")
		}

		b.ensurePanel(i.GuildID, i.ChannelID)
		b.startPlayback(i.GuildID, i.ChannelID)
	}()
}

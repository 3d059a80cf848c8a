package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/model"
)

func (b *Bot) HandlePlayCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	query := i.ApplicationCommandData().Options[0].StringValue()
	userID := GetUserID(i)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to defer interaction")
		return
	}

	go func() {
		result, err := b.yt.Search(context.Background(), query)
		if err != nil || len(result.Videos) == 0 {
			if b.spotify != nil {
				if fallback, ferr := b.spotify.SearchQuery(context.Background(), query); ferr == nil {
					result, err = b.yt.Search(context.Background(), fallback)
				}
			}
		}
		if err != nil {
			b.followupError(s, i, fmt.Sprintf("Search failed: %v", err))
			return
		}
		if len(result.Videos) == 0 {
			b.followupError(s, i, fmt.Sprintf("No results for **%s**.", query))
			return
		}

		b.setSearchResults(userID, result.Videos)

		var buttons []discordgo.MessageComponent
		for idx := range result.Videos {
			buttons = append(buttons, discordgo.Button{
				Label:    fmt.Sprintf("%d", idx+1),
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s%d", selectVideoPrefix, idx+1),
			})
		}

		var builder strings.Builder
		builder.WriteString("Please select a result from the list below:\n\n")
		for idx, v := range result.Videos {
			mins := int(v.Duration) / 60
			secs := int(v.Duration) % 60
			fmt.Fprintf(&builder, "**%d.** %s (%02d:%02d)\n", idx+1, v.Title, mins, secs)
		}

		_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content:    builder.String(),
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to send followup message")
		}
	}()
}

func (b *Bot) HandlePlaySelection(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	userID := GetUserID(i)

	index, ok := parseSelectionIndex(i.MessageComponentData().CustomID)
	if !ok {
		respondEphemeral(s, i, "Invalid selection. Please try again.")
		return
	}
	selected, ok := b.takeSearchResult(userID, index)
	if !ok {
		respondEphemeral(s, i, "Invalid selection. Please try again.")
		return
	}
	track := selected.AsTrack(userID)
	pos := b.queue.Add(i.GuildID, track)

	respond(s, i, fmt.Sprintf(
		"🎶 **Added to queue (position %d):**\n\n**%s**\n%s\n\n_Type `/queue` to view the current queue._",
		pos, selected.Title, selected.WebURL,
	))

	b.ensurePanel(i.GuildID, i.ChannelID)
	b.startPlayback(i.GuildID, i.ChannelID)
}

// parseSelectionIndex extracts N from "select_video_N".
func parseSelectionIndex(customID string) (int, bool) {
	if !strings.HasPrefix(customID, selectVideoPrefix) {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(customID, selectVideoPrefix))
	if err != nil {
		return 0, false
	}
	return index, true
}

func (b *Bot) setSearchResults(userID string, videos []model.VideoInfo) {
	b.searchMu.Lock()
	defer b.searchMu.Unlock()
	b.searchResults[userID] = videos
}

// takeSearchResult picks one video from the user's pending search and clears
// the rest, so stale buttons cannot enqueue twice. A bad index leaves the
// pending search untouched; only a successful pick consumes it.
func (b *Bot) takeSearchResult(userID string, index int) (model.VideoInfo, bool) {
	b.searchMu.Lock()
	defer b.searchMu.Unlock()
	videos, ok := b.searchResults[userID]
	if !ok || index < 1 || index > len(videos) {
		return model.VideoInfo{}, false
	}
	delete(b.searchResults, userID)
	return videos[index-1], true
}

func (b *Bot) followupError(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: "❌ " + msg})
	if err != nil {
		log.Warn().Err(err).Msg("failed to send followup error")
	}
}

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/model"
)

const (
	// panelUpdateInterval is how often the panel's progress bar refreshes
	// while a track is playing.
	panelUpdateInterval = 5 * time.Second

	// panelIdleTimeout is how long a panel may sit with nothing playing
	// before the reaper deletes it.
	panelIdleTimeout = 5 * time.Minute

	panelReapInterval = time.Minute
)

// panelEmbed renders the guild's player state into the control panel embed.
func (b *Bot) panelEmbed(guildID string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎛️ Music Panel",
		Color: embedColor,
	}

	current, playing := b.queue.CurrentlyPlaying(guildID)
	switch {
	case playing:
		line := fmt.Sprintf("▶️ **%s**", current.Title)
		if current.Artist != "" {
			line += fmt.Sprintf("\nby %s", current.Artist)
		}
		embed.Description = line
		if elapsed, ok := b.queue.Elapsed(guildID); ok && current.Duration > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Progress",
				Value: progressBar(elapsed, time.Duration(current.Duration)*time.Second),
			})
		}
	default:
		if paused, ok := pausedTitle(b, guildID); ok {
			embed.Description = fmt.Sprintf("⏸️ Paused: **%s**", paused)
		} else {
			embed.Description = "Nothing playing. Hit ▶️ Play to search for a song."
		}
	}

	queued := b.queue.List(guildID)
	if len(queued) > 0 {
		var builder strings.Builder
		for idx, track := range queued {
			if idx >= 5 {
				fmt.Fprintf(&builder, "…and %d more", len(queued)-5)
				break
			}
			fmt.Fprintf(&builder, "%d. %s\n", idx+1, track.Title)
		}
		name := "Up Next"
		if pl := b.queue.PlaylistName(guildID); pl != "" {
			name = fmt.Sprintf("Up Next — %s", pl)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: builder.String(),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Repeat: %s • %d queued", b.queue.Repeat(guildID), len(queued)),
	}
	return embed
}

// pausedTitle peeks at the paused track without consuming it.
func pausedTitle(b *Bot, guildID string) (string, bool) {
	track, ok := b.queue.TakePaused(guildID)
	if !ok {
		return "", false
	}
	b.queue.SetPaused(guildID, track)
	return track.Title, true
}

func panelComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Play", Emoji: &discordgo.ComponentEmoji{Name: "▶️"}, Style: discordgo.SuccessButton, CustomID: panelPrefix + "play"},
			discordgo.Button{Label: "Pause", Emoji: &discordgo.ComponentEmoji{Name: "⏸️"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "pause"},
			discordgo.Button{Label: "Resume", Emoji: &discordgo.ComponentEmoji{Name: "⏯️"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "resume"},
			discordgo.Button{Label: "Skip", Emoji: &discordgo.ComponentEmoji{Name: "⏭️"}, Style: discordgo.PrimaryButton, CustomID: panelPrefix + "skip"},
			discordgo.Button{Label: "Stop", Emoji: &discordgo.ComponentEmoji{Name: "⏹️"}, Style: discordgo.DangerButton, CustomID: panelPrefix + "stop"},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Shuffle", Emoji: &discordgo.ComponentEmoji{Name: "🔀"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "shuffle"},
			discordgo.Button{Label: "Repeat", Emoji: &discordgo.ComponentEmoji{Name: "🔁"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "repeat"},
			discordgo.Button{Label: "Queue", Emoji: &discordgo.ComponentEmoji{Name: "🎵"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "queue"},
			discordgo.Button{Label: "Save", Emoji: &discordgo.ComponentEmoji{Name: "💾"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "save"},
			discordgo.Button{Label: "Leave", Emoji: &discordgo.ComponentEmoji{Name: "👋"}, Style: discordgo.SecondaryButton, CustomID: panelPrefix + "leave"},
		}},
	}
}

// ensurePanel posts the control panel in the given channel unless the guild
// already has one.
func (b *Bot) ensurePanel(guildID, channelID string) {
	if _, ok := b.panels.Get(guildID); ok {
		b.updatePanel(guildID)
		return
	}

	msg, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{b.panelEmbed(guildID)},
		Components: panelComponents(),
	})
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("could not create panel")
		return
	}
	b.panels.Set(guildID, PanelRef{ChannelID: channelID, MessageID: msg.ID})
}

// updatePanel re-renders the guild's panel in place, if one exists.
func (b *Bot) updatePanel(guildID string) {
	ref, ok := b.panels.Get(guildID)
	if !ok {
		return
	}

	components := panelComponents()
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.ChannelID,
		ID:         ref.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{b.panelEmbed(guildID)},
		Components: &components,
	})
	if err != nil {
		log.Debug().Err(err).Str("guild", guildID).Msg("panel edit failed, dropping ref")
		b.panels.Delete(guildID)
	}
}

// refreshPanel re-attaches a persisted panel after a restart. If the message
// was deleted while the bot was down, the stale ref is dropped.
func (b *Bot) refreshPanel(s *discordgo.Session, guildID string, ref PanelRef) {
	components := panelComponents()
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.ChannelID,
		ID:         ref.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{b.panelEmbed(guildID)},
		Components: &components,
	})
	if err != nil {
		log.Info().Str("guild", guildID).Msg("stored panel message gone, forgetting it")
		b.panels.Delete(guildID)
	}
}

// startPanelUpdater refreshes the panel's progress bar every few seconds
// while a track plays. Close the returned channel to stop it.
func (b *Bot) startPanelUpdater(guildID string) chan struct{} {
	stop := make(chan struct{})
	if _, ok := b.panels.Get(guildID); !ok {
		return stop
	}

	go func() {
		ticker := b.clock.NewTicker(panelUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				b.updatePanel(guildID)
				return
			case <-ticker.Chan():
				b.updatePanel(guildID)
			}
		}
	}()
	return stop
}

// panelReaper deletes panels that have sat idle with nothing playing.
func (b *Bot) panelReaper(stop <-chan struct{}) {
	ticker := b.clock.NewTicker(panelReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			for guildID, ref := range b.panels.All() {
				if b.queue.IsPlaying(guildID) {
					continue
				}
				if b.queue.IdleFor(guildID) < panelIdleTimeout {
					continue
				}
				log.Info().Str("guild", guildID).Msg("deleting idle panel")
				if err := b.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID); err != nil {
					log.Debug().Err(err).Str("guild", guildID).Msg("panel delete failed")
				}
				b.panels.Delete(guildID)
			}
		}
	}
}

// HandlePanelButton dispatches the panel_* buttons.
func (b *Bot) HandlePanelButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action := strings.TrimPrefix(i.MessageComponentData().CustomID, panelPrefix)
	guildID := i.GuildID

	switch action {
	case "play":
		b.showPanelModal(s, i)
	case "pause":
		b.HandlePauseCommand(s, i)
	case "resume":
		b.HandleResumeCommand(s, i)
	case "skip":
		b.HandleSkipCommand(s, i)
	case "stop":
		b.HandleStopCommand(s, i)
	case "shuffle":
		b.HandleShuffleCommand(s, i)
	case "repeat":
		mode := b.queue.CycleRepeat(guildID)
		b.updatePanel(guildID)
		respondEphemeral(s, i, fmt.Sprintf("🔁 Repeat mode is now **%s**.", mode))
	case "queue":
		b.HandleGetQueueCommand(s, i)
	case "save":
		b.handlePanelSave(s, i)
	case "leave":
		b.SignalStop(guildID)
		b.leaveVoice(guildID)
		b.updatePanel(guildID)
		respondEphemeral(s, i, "👋 Left the voice channel.")
	default:
		respondEphemeral(s, i, "Unknown panel action.")
	}
}

// handlePanelSave DMs the pressing user the current track so they can find
// it again later.
func (b *Bot) handlePanelSave(s *discordgo.Session, i *discordgo.InteractionCreate) {
	track, ok := b.queue.CurrentlyPlaying(i.GuildID)
	if !ok {
		respondEphemeral(s, i, "💾 Nothing is playing to save.")
		return
	}

	dm, err := s.UserChannelCreate(GetUserID(i))
	if err != nil {
		respondEphemeral(s, i, "Could not open a DM with you. Check your privacy settings.")
		return
	}
	if _, err := s.ChannelMessageSendEmbed(dm.ID, saveTrackEmbed(track)); err != nil {
		log.Warn().Err(err).Str("user", GetUserID(i)).Msg("could not DM saved track")
		respondEphemeral(s, i, "Could not send you the track. Check your privacy settings.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("💾 Sent **%s** to your DMs.", track.Title))
}

func saveTrackEmbed(track model.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "💾 Saved Track",
		Description: fmt.Sprintf("**%s**", track.Title),
		URL:         track.WebURL,
		Color:       embedColor,
	}
	if track.Artist != "" {
		embed.Description = fmt.Sprintf("**%s**\nby %s", track.Title, track.Artist)
	}
	if track.WebURL != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Link",
			Value: track.WebURL,
		})
	}
	return embed
}

func (b *Bot) showPanelModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: panelModalID,
			Title:    "Play a song",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "panel_play_query",
						Label:       "Song name or YouTube link",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. daft punk around the world",
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not open panel modal")
	}
}

// HandlePanelModal queues the first search hit for the submitted query. The
// panel flow skips the pick-a-result step that /play offers.
func (b *Bot) HandlePanelModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	query := modalInputValue(i, "panel_play_query")
	if query == "" {
		respondEphemeral(s, i, "Empty search, nothing to do.")
		return
	}
	userID := GetUserID(i)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to defer modal response")
		return
	}

	go func() {
		result, err := b.yt.Search(context.Background(), query)
		if err != nil {
			b.followupError(s, i, fmt.Sprintf("Search failed: %v", err))
			return
		}
		if len(result.Videos) == 0 {
			b.followupError(s, i, fmt.Sprintf("No results for **%s**.", query))
			return
		}

		track := result.Videos[0].AsTrack(userID)
		pos := b.queue.Add(i.GuildID, track)

		_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
			Content: fmt.Sprintf("🎶 Added **%s** to the queue (position %d).", track.Title, pos),
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to send followup message")
		}

		b.updatePanel(i.GuildID)
		b.startPlayback(i.GuildID, i.ChannelID)
	}()
}

func modalInputValue(i *discordgo.InteractionCreate, customID string) string {
	for _, row := range i.ModalSubmitData().Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return strings.TrimSpace(input.Value)
			}
		}
	}
	return ""
}

func (b *Bot) HandlePanelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := b.panels.Get(i.GuildID); ok {
		b.updatePanel(i.GuildID)
		respondEphemeral(s, i, "🎛️ The panel is already up; refreshed it.")
		return
	}
	b.ensurePanel(i.GuildID, i.ChannelID)
	respondEphemeral(s, i, "🎛️ Panel posted.")
}

package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) HandleSkipCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	if !b.queue.IsInVoiceChannel(guildID) {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "🔇 Not in Voice Channel",
			Description: "I'm not currently in a voice channel.",
		})
		return
	}

	if !b.queue.IsPlaying(guildID) {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "⏹️ Nothing Playing",
			Description: "There's no track currently playing to skip.",
		})
		return
	}

	b.SignalStop(guildID)
	b.SignalNewTrack(guildID)

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "⏭️ Skipping Current Track",
		Description: "Skipping the current track and moving to the next one in the queue.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Try /play to add new songs, or /help for all commands",
		},
	})
}

func (b *Bot) HandleSkipUserCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID
	userID := i.ApplicationCommandData().Options[0].StringValue()

	removed := b.queue.RemoveByRequester(guildID, userID)
	for _, track := range removed {
		b.removeTrackFile(guildID, track)
	}

	current, playing := b.queue.CurrentlyPlaying(guildID)
	skipCurrent := playing && current.RequestedBy == userID

	description := fmt.Sprintf("Removed %d track(s) requested by <@%s> from the queue.", len(removed), userID)
	if skipCurrent {
		description += "\n\n⏭️ The current track will now be skipped."
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🚫 User Tracks Removed",
		Description: description,
	})

	if skipCurrent {
		b.SignalStop(guildID)
		b.SignalNewTrack(guildID)
	}
}

func (b *Bot) HandleSkipUserAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := i.GuildID

	var members []*discordgo.Member
	after := ""
	const limit = 1000

	for {
		chunk, err := s.GuildMembers(guildID, after, limit)
		if err != nil || len(chunk) == 0 {
			break
		}
		members = append(members, chunk...)
		after = chunk[len(chunk)-1].User.ID
		if len(chunk) < limit {
			break
		}
	}

	sort.Slice(members, func(x, y int) bool {
		return strings.ToLower(members[x].User.Username) < strings.ToLower(members[y].User.Username)
	})

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, member := range members {
		if member.User.Bot {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  member.User.Username,
			Value: member.User.ID,
		})
		if len(choices) >= 25 {
			break
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type SlashCommand struct {
	Command *discordgo.ApplicationCommand
	Handler func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

func (b *Bot) slashCommands() map[string]SlashCommand {
	return map[string]SlashCommand{
		"help": {
			Command: &discordgo.ApplicationCommand{
				Name:        "help",
				Description: "List all commands",
			},
			Handler: b.HandleHelpCommand,
		},
		"ping": {
			Command: &discordgo.ApplicationCommand{
				Name:        "ping",
				Description: "Ping the bot",
			},
			Handler: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
				respond(s, i, "pong")
			},
		},
		"play": {
			Command: &discordgo.ApplicationCommand{
				Name:        "play",
				Description: "Search YouTube and queue a song",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "query",
						Description: "Song name or YouTube link",
						Required:    true,
					},
				},
			},
			Handler: b.HandlePlayCommand,
		},
		"playlist": {
			Command: &discordgo.ApplicationCommand{
				Name:        "playlist",
				Description: "Queue a whole Spotify playlist",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "playlist",
						Description: "Spotify playlist link, URI or id",
						Required:    true,
					},
				},
			},
			Handler: b.HandlePlaylistCommand,
		},
		"queue": {
			Command: &discordgo.ApplicationCommand{
				Name:        "queue",
				Description: "Show the current queue",
			},
			Handler: b.HandleGetQueueCommand,
		},
		"clear": {
			Command: &discordgo.ApplicationCommand{
				Name:        "clear",
				Description: "Clear the current queue",
			},
			Handler: b.HandleClearQueueCommand,
		},
		"pause": {
			Command: &discordgo.ApplicationCommand{
				Name:        "pause",
				Description: "Pause the current track",
			},
			Handler: b.HandlePauseCommand,
		},
		"resume": {
			Command: &discordgo.ApplicationCommand{
				Name:        "resume",
				Description: "Resume a paused track",
			},
			Handler: b.HandleResumeCommand,
		},
		"skip": {
			Command: &discordgo.ApplicationCommand{
				Name:        "skip",
				Description: "Skip the current track",
			},
			Handler: b.HandleSkipCommand,
		},
		"skipuser": {
			Command: &discordgo.ApplicationCommand{
				Name:        "skipuser",
				Description: "Remove every track a user requested",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         "user",
						Description:  "Whose tracks to remove",
						Required:     true,
						Autocomplete: true,
					},
				},
			},
			Handler: b.HandleSkipUserCommand,
		},
		"stop": {
			Command: &discordgo.ApplicationCommand{
				Name:        "stop",
				Description: "Stop playback, clear the queue and leave",
			},
			Handler: b.HandleStopCommand,
		},
		"shuffle": {
			Command: &discordgo.ApplicationCommand{
				Name:        "shuffle",
				Description: "Shuffle the queue",
			},
			Handler: b.HandleShuffleCommand,
		},
		"repeat": {
			Command: &discordgo.ApplicationCommand{
				Name:        "repeat",
				Description: "Set the repeat mode",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "off, all or single",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "off", Value: string(RepeatOff)},
							{Name: "all", Value: string(RepeatAll)},
							{Name: "single", Value: string(RepeatSingle)},
						},
					},
				},
			},
			Handler: b.HandleRepeatCommand,
		},
		"nowplaying": {
			Command: &discordgo.ApplicationCommand{
				Name:        "nowplaying",
				Description: "Show the currently playing track",
			},
			Handler: b.HandleNowPlayingCommand,
		},
		"panel": {
			Command: &discordgo.ApplicationCommand{
				Name:        "panel",
				Description: "Post the music control panel in this channel",
			},
			Handler: b.HandlePanelCommand,
		},
		"diag": {
			Command: &discordgo.ApplicationCommand{
				Name:        "diag",
				Description: "Report yt-dlp, ffmpeg and Spotify availability",
			},
			Handler: b.HandleDiagCommand,
		},
	}
}

func (b *Bot) RegisterSlashCommands() {
	for _, guild := range b.session.State.Guilds {
		for _, cmd := range b.commands {
			if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, guild.ID, cmd.Command); err != nil {
				log.Error().Err(err).Str("guild", guild.ID).Str("command", cmd.Command.Name).Msg("failed to register slash command")
			}
		}
	}
}

func (b *Bot) HandleHelpCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString("📖 **Available Commands:**\n\n")
	for _, name := range names {
		cmd := b.commands[name]
		builder.WriteString(fmt.Sprintf("`/%s` - %s\n", cmd.Command.Name, cmd.Command.Description))
	}
	respond(s, i, builder.String())
}

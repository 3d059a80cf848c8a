package bot

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/config"
	"discord-spotify-bot/model"
	"discord-spotify-bot/spotify"
	"discord-spotify-bot/youtube"
)

// Bot wires the Discord session to the queue, the yt-dlp client and the
// Spotify resolver. All state lives here; nothing reads the environment
// after construction.
type Bot struct {
	cfg     *config.Config
	session *discordgo.Session
	queue   *Queue
	yt      *youtube.Client
	spotify *spotify.Resolver
	panels  *PanelStore
	clock   clockwork.Clock
	errors  chan GuildError

	searchMu      sync.Mutex
	searchResults map[string][]model.VideoInfo

	ctrlMu      sync.Mutex
	controllers map[string]*PlaybackController

	components   map[string]ComponentHandler
	modals       map[string]ComponentHandler
	autocomplete map[string]ComponentHandler
	commands     map[string]SlashCommand
}

// New builds a bot from an already validated config. The Spotify resolver
// may be nil; playlist commands then report that Spotify is unavailable
// instead of failing at startup.
func New(cfg *config.Config, resolver *spotify.Resolver) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	b := &Bot{
		cfg:           cfg,
		session:       session,
		queue:         NewQueue(clock),
		yt:            youtube.NewClient(cfg.FFmpegPath),
		spotify:       resolver,
		panels:        NewPanelStore(cfg.PanelStorePath),
		clock:         clock,
		errors:        make(chan GuildError, 16),
		searchResults: make(map[string][]model.VideoInfo),
		controllers:   make(map[string]*PlaybackController),
	}

	b.commands = b.slashCommands()
	b.components = map[string]ComponentHandler{
		selectVideoPrefix: b.HandlePlaySelection,
		panelPrefix:       b.HandlePanelButton,
	}
	b.modals = map[string]ComponentHandler{
		panelModalID: b.HandlePanelModal,
	}
	b.autocomplete = map[string]ComponentHandler{
		"skipuser": b.HandleSkipUserAutocomplete,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.Interaction)
	return b, nil
}

// Run opens the gateway connection and blocks until SIGINT/SIGTERM.
func (b *Bot) Run() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	defer b.session.Close()

	b.RegisterSlashCommands()
	go b.reportErrors()

	stopBackground := make(chan struct{})
	defer close(stopBackground)
	go b.panelReaper(stopBackground)
	go b.idleMonitor(stopBackground)
	b.startCleanupRoutine(stopBackground)

	log.Info().Str("user", b.session.State.User.Username).Msg("bot running")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info().Msg("shutting down")
	b.disconnectAll()
	return nil
}

// onReady re-attaches persisted panels so their buttons survive restarts.
func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	if err := b.panels.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load panel store")
		return
	}
	for guildID, ref := range b.panels.All() {
		b.refreshPanel(s, guildID, ref)
	}
}

func (b *Bot) disconnectAll() {
	for _, guild := range b.session.State.Guilds {
		if vc, ok := b.queue.GetVoiceConnection(guild.ID); ok {
			if err := vc.Disconnect(); err != nil {
				log.Warn().Err(err).Str("guild", guild.ID).Msg("voice disconnect failed")
			}
		}
	}
}

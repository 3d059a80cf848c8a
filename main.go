package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/bot"
	"discord-spotify-bot/config"
	"discord-spotify-bot/spotify"
)

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		setupLogging("info")
		log.Fatal().Err(err).Msg("configuration error")
	}
	setupLogging(cfg.LogLevel)

	resolver, err := spotify.New(context.Background(), cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.PlaylistTrackLimit)
	if err != nil {
		// Playback from YouTube still works; playlist commands will say so.
		log.Warn().Err(err).Msg("spotify client unavailable")
		resolver = nil
	}

	b, err := bot.New(cfg, resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create bot")
	}

	if err := b.Run(); err != nil {
		log.Fatal().Err(err).Msg("bot exited")
	}
}

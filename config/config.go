package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Placeholder values shipped in .env.example. A deployment that still carries
// any of these has not been provisioned and must not start.
const (
	PlaceholderDiscordToken  = "your_discord_bot_token_here"
	PlaceholderSpotifyID     = "your_spotify_client_id_here"
	PlaceholderSpotifySecret = "your_spotify_client_secret_here"
)

// Config holds everything the bot reads from the environment. It is built
// exactly once in main and passed down; no other package touches os.Getenv.
type Config struct {
	DiscordToken        string `envconfig:"DISCORD_TOKEN"`
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
	FFmpegPath          string `envconfig:"FFMPEG_PATH"`
	PlaylistTrackLimit  int    `envconfig:"SPOTIFY_PLAYLIST_LIMIT" default:"200"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
	PanelStorePath      string `envconfig:"PANEL_STORE_PATH" default:"music_panels.json"`
}

// Load reads an optional .env file into the process environment and then
// builds a validated Config from it. Loading twice is harmless: godotenv
// never overrides variables that are already set, and the resulting Config
// is identical either way.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the provisioning contract: required credentials must be
// present and must not be the template placeholders. FFMPEG_PATH and the
// other optional keys are never an error when absent.
func (c *Config) Validate() error {
	required := []struct {
		key, value, placeholder string
	}{
		{"DISCORD_TOKEN", c.DiscordToken, PlaceholderDiscordToken},
		{"SPOTIFY_CLIENT_ID", c.SpotifyClientID, PlaceholderSpotifyID},
		{"SPOTIFY_CLIENT_SECRET", c.SpotifyClientSecret, PlaceholderSpotifySecret},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
		if r.value == r.placeholder {
			return fmt.Errorf("%s is still the placeholder value, edit your .env", r.key)
		}
	}

	if c.PlaylistTrackLimit < 0 {
		return fmt.Errorf("SPOTIFY_PLAYLIST_LIMIT must be >= 0, got %d", c.PlaylistTrackLimit)
	}
	return nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "abc123")
	t.Setenv("SPOTIFY_CLIENT_ID", "id1")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "sec1")
}

func TestLoad_AllRequiredVarsSet(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.DiscordToken)
	assert.Equal(t, "id1", cfg.SpotifyClientID)
	assert.Equal(t, "sec1", cfg.SpotifyClientSecret)
	assert.Empty(t, cfg.FFmpegPath)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.PlaylistTrackLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "music_panels.json", cfg.PanelStorePath)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		skipEnv string
		wantErr string
	}{
		{"missing DISCORD_TOKEN", "DISCORD_TOKEN", "DISCORD_TOKEN is required"},
		{"missing SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID is required"},
		{"missing SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.skipEnv, "")

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_RejectsPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"placeholder token", "DISCORD_TOKEN", PlaceholderDiscordToken},
		{"placeholder client id", "SPOTIFY_CLIENT_ID", PlaceholderSpotifyID},
		{"placeholder client secret", "SPOTIFY_CLIENT_SECRET", PlaceholderSpotifySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
			assert.Contains(t, err.Error(), "placeholder")
		})
	}
}

// A correctly provisioned deployment never carries the template literals.
func TestLoad_ProvisionedValuesDifferFromPlaceholders(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEqual(t, PlaceholderDiscordToken, cfg.DiscordToken)
	assert.NotEqual(t, PlaceholderSpotifyID, cfg.SpotifyClientID)
	assert.NotEqual(t, PlaceholderSpotifySecret, cfg.SpotifyClientSecret)
}

func TestLoad_Idempotent(t *testing.T) {
	setRequiredEnv(t)

	first, err := Load()
	require.NoError(t, err)

	second, err := Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_OptionalFFmpegPath(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.FFmpegPath)

	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
}

func TestValidate_NegativePlaylistLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SPOTIFY_PLAYLIST_LIMIT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPOTIFY_PLAYLIST_LIMIT")
}

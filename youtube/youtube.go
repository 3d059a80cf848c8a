package youtube

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"discord-spotify-bot/model"
)

const (
	searchTimeout   = 15 * time.Second
	downloadTimeout = 90 * time.Second
)

// Client shells out to yt-dlp for search and audio extraction. FFmpegPath,
// when set, is forwarded with --ffmpeg-location so extraction works even when
// ffmpeg is not on the search path.
type Client struct {
	FFmpegPath  string
	DownloadDir string
}

func NewClient(ffmpegPath string) *Client {
	return &Client{
		FFmpegPath:  ffmpegPath,
		DownloadDir: filepath.Join(os.TempDir(), "discord-spotify-bot"),
	}
}

// Search runs a ytsearch5 query and returns up to five results. URLs are
// passed through yt-dlp unchanged, so direct YouTube links work too.
func (c *Client) Search(ctx context.Context, query string) (model.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	args := []string{
		"--dump-json",
		"--no-download",
		"--flat-playlist",
		"--default-search", "ytsearch5",
		query,
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	cmd.Env = append(cmd.Env, "PYTHONIOENCODING=utf-8")

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return model.SearchResult{}, fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	videos, err := decodeVideoLines(stdoutPipe)
	if err != nil {
		_ = cmd.Wait()
		return model.SearchResult{}, fmt.Errorf("error reading yt-dlp output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return model.SearchResult{}, fmt.Errorf("yt-dlp search failed: %w", err)
	}

	return model.SearchResult{
		Message: formatResults(videos),
		Videos:  videos,
	}, nil
}

// DownloadAudio extracts the best audio stream to an mp3 under DownloadDir
// and returns its path.
func (c *Client) DownloadAudio(ctx context.Context, url, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	if err := os.MkdirAll(c.DownloadDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create download dir: %w", err)
	}
	audioPath := filepath.Join(c.DownloadDir, SanitizeFilename(title)+".mp3")

	args := []string{"-f", "bestaudio", "-x", "--audio-format", "mp3", "-o", audioPath}
	if c.FFmpegPath != "" {
		args = append(args, "--ffmpeg-location", c.FFmpegPath)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w, output: %s", err, string(output))
	}

	log.Debug().Str("url", url).Str("path", audioPath).Msg("downloaded audio")
	return audioPath, nil
}

// decodeVideoLines reads one JSON object per line, skipping lines that do
// not parse. yt-dlp occasionally interleaves warnings on stdout.
func decodeVideoLines(r io.Reader) ([]model.VideoInfo, error) {
	var videos []model.VideoInfo
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var info model.VideoInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			log.Debug().Err(err).Msg("skipping invalid JSON line from yt-dlp")
			continue
		}
		videos = append(videos, info)
	}
	return videos, scanner.Err()
}

func formatResults(videos []model.VideoInfo) string {
	var builder strings.Builder
	for i, video := range videos {
		minutes := int(video.Duration) / 60
		seconds := int(video.Duration) % 60
		fmt.Fprintf(&builder, "Result #%d:\n", i+1)
		fmt.Fprintf(&builder, "Title: %s\n", video.Title)
		fmt.Fprintf(&builder, "Channel: %s\n", video.Uploader)
		fmt.Fprintf(&builder, "URL: %s\n", video.WebURL)
		fmt.Fprintf(&builder, "Duration: %02d:%02d\n\n", minutes, seconds)
	}
	return builder.String()
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]`)

// SanitizeFilename replaces anything outside [\w-.] so titles can be used as
// file names on any filesystem.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Available reports whether the yt-dlp binary can be found.
func Available() bool {
	_, err := exec.LookPath("yt-dlp")
	return err == nil
}

// ResolveFFmpeg returns the ffmpeg path that playback will use: the
// configured override if present, otherwise whatever is on PATH.
func (c *Client) ResolveFFmpeg() (string, bool) {
	if c.FFmpegPath != "" {
		return c.FFmpegPath, true
	}
	path, err := exec.LookPath("ffmpeg")
	return path, err == nil
}

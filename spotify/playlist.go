package spotify

import (
	"fmt"
	"regexp"
	"strings"
)

var playlistIDPattern = regexp.MustCompile(`[A-Za-z0-9_-]{10,50}`)

// ParsePlaylistID accepts the three forms users paste: a full
// https://open.spotify.com/playlist/<id> URL (query params and a trailing
// /tracks segment are tolerated), a spotify:playlist:<id> URI, or a bare id.
func ParsePlaylistID(input string) (string, error) {
	s := strings.TrimSpace(input)
	var candidate string

	switch {
	case strings.HasPrefix(s, "spotify:"):
		parts := strings.Split(s, ":")
		if len(parts) >= 3 && parts[1] == "playlist" {
			candidate = parts[2]
		}
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		path := strings.SplitN(s, "?", 2)[0]
		var segments []string
		for _, p := range strings.Split(path, "/") {
			if p != "" {
				segments = append(segments, p)
			}
		}
		for i, seg := range segments {
			if seg == "playlist" && i+1 < len(segments) && !strings.EqualFold(segments[i+1], "tracks") {
				candidate = segments[i+1]
				break
			}
		}
		if candidate == "" && len(segments) > 0 {
			last := segments[len(segments)-1]
			if !strings.EqualFold(last, "tracks") {
				candidate = last
			}
		}
	default:
		candidate = s
	}

	if m := playlistIDPattern.FindString(candidate); m != "" {
		return m, nil
	}
	return "", fmt.Errorf("could not parse a Spotify playlist id from %q", input)
}

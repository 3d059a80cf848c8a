package model

import "github.com/google/uuid"

// Track is a single queue entry. Tracks from YouTube search arrive with a
// WebURL; tracks from a Spotify playlist arrive lazy, carrying only a
// StreamQuery that is resolved against YouTube when the track reaches the
// head of the queue.
type Track struct {
	ID          string
	Title       string
	Artist      string
	WebURL      string
	StreamQuery string
	Duration    float64 // seconds
	Thumbnail   string
	RequestedBy string
	FilePath    string
}

// NewTrack assigns a fresh identity. Titles are not unique across a queue
// (the same song can be requested twice), so everything downstream keys on ID.
func NewTrack() Track {
	return Track{ID: uuid.NewString()}
}

// Lazy reports whether the track still needs YouTube resolution.
func (t Track) Lazy() bool {
	return t.WebURL == "" && t.StreamQuery != ""
}

// VideoInfo is the shape yt-dlp emits with --dump-json.
type VideoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	WebURL   string  `json:"webpage_url"`
	Duration float64 `json:"duration"`
}

// AsTrack converts a search result into a queue entry for the given requester.
func (v VideoInfo) AsTrack(requestedBy string) Track {
	t := NewTrack()
	t.Title = v.Title
	t.Artist = v.Uploader
	t.WebURL = v.WebURL
	t.Duration = v.Duration
	t.RequestedBy = requestedBy
	return t
}

type SearchResult struct {
	Message string
	Videos  []VideoInfo
}

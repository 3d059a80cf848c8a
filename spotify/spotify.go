package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"discord-spotify-bot/model"
)

// Spotify caps playlist item pages at 100.
const pageSize = 100

// api is the slice of the Spotify Web API the resolver needs. The concrete
// implementation wraps zmb3's client; tests substitute a fake.
type api interface {
	GetPlaylist(ctx context.Context, playlistID string) (*spotifyapi.FullPlaylist, error)
	GetPlaylistItems(ctx context.Context, playlistID string, limit, offset int) (*spotifyapi.PlaylistItemPage, error)
	SearchTrack(ctx context.Context, query string) (*spotifyapi.FullTrack, error)
}

type webAPI struct {
	client *spotifyapi.Client
}

func (w *webAPI) GetPlaylist(ctx context.Context, playlistID string) (*spotifyapi.FullPlaylist, error) {
	return w.client.GetPlaylist(ctx, spotifyapi.ID(playlistID))
}

func (w *webAPI) GetPlaylistItems(ctx context.Context, playlistID string, limit, offset int) (*spotifyapi.PlaylistItemPage, error) {
	return w.client.GetPlaylistItems(ctx, spotifyapi.ID(playlistID),
		spotifyapi.Limit(limit), spotifyapi.Offset(offset))
}

func (w *webAPI) SearchTrack(ctx context.Context, query string) (*spotifyapi.FullTrack, error) {
	res, err := w.client.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(1))
	if err != nil {
		return nil, err
	}
	if res.Tracks == nil || len(res.Tracks.Tracks) == 0 {
		return nil, nil
	}
	return &res.Tracks.Tracks[0], nil
}

// Resolver turns Spotify playlists and track queries into lazy queue entries.
// Spotify is metadata only: playback always goes through YouTube.
type Resolver struct {
	client     api
	trackLimit int // 0 = no cap
}

// New authenticates with the client-credentials flow and returns a resolver.
func New(ctx context.Context, clientID, clientSecret string, trackLimit int) (*Resolver, error) {
	httpClient, err := newAuthClient(ctx, clientID, clientSecret, spotifyauth.TokenURL)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		client:     &webAPI{client: spotifyapi.New(httpClient)},
		trackLimit: trackLimit,
	}, nil
}

// newAuthClient builds an HTTP client backed by the client-credentials token
// source. Client-credentials tokens expire after about an hour and carry no
// refresh token, so the client must come from the config itself: its token
// source fetches a fresh token whenever the cached one expires. An up-front
// fetch makes bad credentials fail at startup instead of on first use.
func newAuthClient(ctx context.Context, clientID, clientSecret, tokenURL string) (*http.Client, error) {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	if _, err := conf.Token(ctx); err != nil {
		return nil, fmt.Errorf("spotify auth failed: %w", err)
	}
	return conf.Client(ctx), nil
}

// Playlist is the enqueueable form of a Spotify playlist.
type Playlist struct {
	Name   string
	Total  int
	Tracks []model.Track
}

// FetchPlaylist resolves the playlist named by input (URL, URI or bare id)
// and pages through its items, honoring the configured track cap. Items
// without a track object (episodes, removed tracks) are skipped.
func (r *Resolver) FetchPlaylist(ctx context.Context, input, requestedBy string) (*Playlist, error) {
	id, err := ParsePlaylistID(input)
	if err != nil {
		return nil, err
	}

	meta, err := r.client.GetPlaylist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch playlist %s: %w", id, err)
	}
	pl := &Playlist{
		Name:  meta.Name,
		Total: int(meta.Tracks.Total),
	}

	offset := 0
	for {
		toFetch := pageSize
		if r.trackLimit > 0 {
			remaining := r.trackLimit - len(pl.Tracks)
			if remaining <= 0 {
				break
			}
			if remaining < toFetch {
				toFetch = remaining
			}
		}

		page, err := r.client.GetPlaylistItems(ctx, id, toFetch, offset)
		if err != nil {
			return nil, fmt.Errorf("could not fetch playlist items: %w", err)
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			full := item.Track.Track
			if full == nil {
				continue
			}
			pl.Tracks = append(pl.Tracks, trackFromFull(full, requestedBy))
			if r.trackLimit > 0 && len(pl.Tracks) >= r.trackLimit {
				break
			}
		}

		offset += len(page.Items)
		if r.trackLimit > 0 && len(pl.Tracks) >= r.trackLimit {
			break
		}
		if pl.Total > 0 && offset >= pl.Total {
			break
		}
		if len(page.Items) < toFetch {
			break
		}
	}

	log.Info().Str("playlist", pl.Name).Int("tracks", len(pl.Tracks)).Msg("fetched spotify playlist")
	return pl, nil
}

// SearchQuery looks a query up on Spotify and returns a "<title> <artists>"
// string suitable for re-searching YouTube. Used as a fallback when yt-dlp
// finds nothing for the user's raw input.
func (r *Resolver) SearchQuery(ctx context.Context, query string) (string, error) {
	t, err := r.client.SearchTrack(ctx, query)
	if err != nil {
		return "", fmt.Errorf("spotify search failed: %w", err)
	}
	if t == nil {
		return "", fmt.Errorf("no spotify tracks matched %q", query)
	}
	return strings.TrimSpace(t.Name + " " + joinArtists(t.Artists)), nil
}

func trackFromFull(full *spotifyapi.FullTrack, requestedBy string) model.Track {
	artists := joinArtists(full.Artists)

	// WebURL stays empty: playback resolves the track against YouTube via
	// StreamQuery, never by fetching the Spotify page.
	t := model.NewTrack()
	t.Title = full.Name
	t.Artist = artists
	t.StreamQuery = strings.TrimSpace(full.Name + " " + artists)
	t.Duration = full.TimeDuration().Seconds()
	t.RequestedBy = requestedBy
	if len(full.Album.Images) > 0 {
		t.Thumbnail = full.Album.Images[0].URL
	}
	return t
}

func joinArtists(artists []spotifyapi.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}

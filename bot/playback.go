package bot

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bwmarrin/dgvoice"
	"github.com/rs/zerolog/log"

	"discord-spotify-bot/model"
)

// PlaybackController carries the per-guild playback signals: NewTrack wakes
// the loop to pull from the queue, and the current track's stop channel is
// swapped in and out as tracks start and finish.
type PlaybackController struct {
	NewTrack chan struct{}

	mu          sync.Mutex
	currentStop chan bool
	interrupted bool
	loopRunning bool
}

func NewPlaybackController() *PlaybackController {
	return &PlaybackController{
		NewTrack: make(chan struct{}, 1),
	}
}

func (ctrl *PlaybackController) SetCurrentStopChan(ch chan bool) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	ctrl.currentStop = ch
	ctrl.interrupted = false
}

func (ctrl *PlaybackController) ClearCurrentStopChan() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	ctrl.currentStop = nil
}

// SendStopSignal interrupts the in-flight track, if any. Returns whether a
// signal was delivered.
func (ctrl *PlaybackController) SendStopSignal() bool {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if ctrl.currentStop == nil {
		return false
	}
	select {
	case ctrl.currentStop <- true:
		ctrl.interrupted = true
		return true
	default:
		return false
	}
}

// takeInterrupted reports and clears whether the last track was cut short.
func (ctrl *PlaybackController) takeInterrupted() bool {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	v := ctrl.interrupted
	ctrl.interrupted = false
	return v
}

func (b *Bot) controller(guildID string) *PlaybackController {
	b.ctrlMu.Lock()
	defer b.ctrlMu.Unlock()
	ctrl, ok := b.controllers[guildID]
	if !ok {
		ctrl = NewPlaybackController()
		b.controllers[guildID] = ctrl
	}
	return ctrl
}

// SignalStop interrupts current playback without touching the queue.
func (b *Bot) SignalStop(guildID string) {
	if !b.controller(guildID).SendStopSignal() {
		log.Debug().Str("guild", guildID).Msg("no active playback to stop")
	}
}

// SignalNewTrack wakes the playback loop. Duplicate signals coalesce.
func (b *Bot) SignalNewTrack(guildID string) {
	ctrl := b.controller(guildID)
	select {
	case ctrl.NewTrack <- struct{}{}:
	default:
	}
}

// startPlayback makes sure the guild's loop goroutine exists and nudges it.
func (b *Bot) startPlayback(guildID, textChannelID string) {
	ctrl := b.controller(guildID)

	ctrl.mu.Lock()
	if !ctrl.loopRunning {
		ctrl.loopRunning = true
		go b.playbackLoop(guildID, textChannelID, ctrl)
	}
	ctrl.mu.Unlock()

	b.SignalNewTrack(guildID)
}

// playbackLoop drains the guild's queue, one download-and-play at a time.
// It never exits; an empty queue parks it on the NewTrack signal.
func (b *Bot) playbackLoop(guildID, textChannelID string, ctrl *PlaybackController) {
	for {
		<-ctrl.NewTrack

		for {
			track, ok := b.queue.Pop(guildID)
			if !ok {
				b.queue.SetPlaying(guildID, false)
				b.queue.SetCurrentlyPlaying(guildID, nil)
				ctrl.ClearCurrentStopChan()
				b.updatePanel(guildID)
				break
			}

			finished := b.playTrack(guildID, textChannelID, ctrl, track)
			if !finished {
				// Interrupted by pause or stop; wait for the next signal.
				break
			}
		}
	}
}

// playTrack resolves, downloads and plays one track. It returns false when
// playback was interrupted, true when the track completed (or was skipped
// over because it could not be resolved).
func (b *Bot) playTrack(guildID, textChannelID string, ctrl *PlaybackController, track model.Track) bool {
	ctx := context.Background()

	resolved, err := b.resolveTrack(ctx, guildID, track)
	if err != nil {
		b.reportError(guildID, textChannelID, fmt.Errorf("skipped %q: %w", track.Title, err))
		return true
	}
	track = resolved

	if err := b.ensureVoice(guildID, track.RequestedBy); err != nil {
		b.reportError(guildID, textChannelID, err)
		// Put the track back so it plays once someone joins voice.
		b.queue.PushFront(guildID, track)
		return false
	}

	vc, ok := b.queue.GetVoiceConnection(guildID)
	if !ok {
		b.reportError(guildID, textChannelID, fmt.Errorf("no voice connection for guild %s", guildID))
		return false
	}

	b.queue.SetCurrentlyPlaying(guildID, &track)
	b.queue.SetPlaying(guildID, true)
	b.SendNowPlayingEmbed(textChannelID, track)

	stopUpdates := b.startPanelUpdater(guildID)

	stop := make(chan bool, 1)
	ctrl.SetCurrentStopChan(stop)

	log.Info().Str("guild", guildID).Str("title", track.Title).Str("file", track.FilePath).Msg("starting playback")
	dgvoice.PlayAudioFile(vc, track.FilePath, stop)

	close(stopUpdates)
	ctrl.ClearCurrentStopChan()
	interrupted := ctrl.takeInterrupted()

	b.queue.SetPlaying(guildID, false)
	b.queue.SetCurrentlyPlaying(guildID, nil)
	b.queue.SetLastActivity(guildID)

	if interrupted {
		// Keep the file: pause resumes this track, and the cleanup
		// routine reaps anything that never plays again.
		log.Info().Str("guild", guildID).Str("title", track.Title).Msg("playback interrupted")
		return false
	}

	if !b.queue.Requeue(guildID, track) {
		b.removeTrackFile(guildID, track)
	}
	return true
}

// resolveTrack makes a track playable: lazy Spotify entries are searched on
// YouTube first, then the audio is downloaded unless already cached.
func (b *Bot) resolveTrack(ctx context.Context, guildID string, track model.Track) (model.Track, error) {
	if track.Lazy() {
		result, err := b.yt.Search(ctx, track.StreamQuery)
		if err != nil || len(result.Videos) == 0 {
			// The raw query found nothing; ask Spotify for a cleaner
			// "<title> <artists>" string and try once more.
			if b.spotify != nil {
				if fallback, ferr := b.spotify.SearchQuery(ctx, track.StreamQuery); ferr == nil {
					result, err = b.yt.Search(ctx, fallback)
				}
			}
		}
		if err != nil {
			return track, fmt.Errorf("youtube search failed: %w", err)
		}
		if len(result.Videos) == 0 {
			return track, fmt.Errorf("no youtube match for %q", track.StreamQuery)
		}

		v := result.Videos[0]
		track.Title = v.Title
		track.WebURL = v.WebURL
		if v.Duration > 0 {
			track.Duration = v.Duration
		}
	}

	if path, ok := b.queue.TrackFile(guildID, track.ID); ok {
		track.FilePath = path
		return track, nil
	}

	path, err := b.yt.DownloadAudio(ctx, track.WebURL, track.Title)
	if err != nil {
		return track, err
	}
	track.FilePath = path
	b.queue.SetTrackFile(guildID, track.ID, path)
	return track, nil
}

func (b *Bot) removeTrackFile(guildID string, track model.Track) {
	b.queue.DeleteTrackFile(guildID, track.ID)
	if track.FilePath == "" {
		return
	}
	if err := os.Remove(track.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", track.FilePath).Msg("could not delete audio file")
	}
}

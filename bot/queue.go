package bot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"

	"discord-spotify-bot/model"
)

// RepeatMode controls what happens to a track when it finishes.
type RepeatMode string

const (
	RepeatOff    RepeatMode = "off"
	RepeatAll    RepeatMode = "all"    // finished track goes to the back
	RepeatSingle RepeatMode = "single" // finished track plays again
)

// ParseRepeatMode falls back to off for anything unrecognized.
func ParseRepeatMode(s string) RepeatMode {
	switch RepeatMode(s) {
	case RepeatAll, RepeatSingle:
		return RepeatMode(s)
	default:
		return RepeatOff
	}
}

// playerState is everything the bot tracks for one guild.
type playerState struct {
	tracks       []model.Track
	current      *model.Track
	paused       *model.Track
	playing      bool
	inVoice      bool
	vc           *discordgo.VoiceConnection
	repeat       RepeatMode
	playlistName string
	lastActivity time.Time
	startedAt    time.Time
	files        map[string]string // track ID -> downloaded audio path
}

// Queue holds per-guild queues and player state under a single mutex.
type Queue struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	guilds map[string]*playerState
}

func NewQueue(clock clockwork.Clock) *Queue {
	return &Queue{
		clock:  clock,
		guilds: make(map[string]*playerState),
	}
}

// state returns the guild's player, creating it on first use. Callers must
// hold q.mu.
func (q *Queue) state(guildID string) *playerState {
	p, ok := q.guilds[guildID]
	if !ok {
		p = &playerState{
			repeat: RepeatOff,
			files:  make(map[string]string),
		}
		q.guilds[guildID] = p
	}
	return p
}

// Add appends a track and returns its 1-based queue position.
func (q *Queue) Add(guildID string, track model.Track) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	p.tracks = append(p.tracks, track)
	p.lastActivity = q.clock.Now()
	return len(p.tracks)
}

// AddAll appends tracks in order and returns the new queue length.
func (q *Queue) AddAll(guildID string, tracks []model.Track) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	p.tracks = append(p.tracks, tracks...)
	p.lastActivity = q.clock.Now()
	return len(p.tracks)
}

// PushFront puts a track at the head of the queue (resume, repeat-single).
func (q *Queue) PushFront(guildID string, track model.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	p.tracks = append([]model.Track{track}, p.tracks...)
}

func (q *Queue) Pop(guildID string) (model.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if len(p.tracks) == 0 {
		return model.Track{}, false
	}
	track := p.tracks[0]
	p.tracks = p.tracks[1:]
	return track, true
}

func (q *Queue) Peek(guildID string) (model.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if len(p.tracks) == 0 {
		return model.Track{}, false
	}
	return p.tracks[0], true
}

// List returns a copy of the pending tracks.
func (q *Queue) List(guildID string) []model.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.Track(nil), q.state(guildID).tracks...)
}

func (q *Queue) Len(guildID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.state(guildID).tracks)
}

// Clear drops all pending tracks and returns them so callers can clean up
// any downloaded files.
func (q *Queue) Clear(guildID string) []model.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	dropped := p.tracks
	p.tracks = nil
	p.playlistName = ""
	return dropped
}

// Shuffle randomizes the pending tracks. The currently playing track is not
// part of the pending list, so it is never affected.
func (q *Queue) Shuffle(guildID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	rand.Shuffle(len(p.tracks), func(i, j int) {
		p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
	})
	return len(p.tracks)
}

// RemoveByRequester drops every pending track the given user requested and
// returns the removed tracks so callers can clean up downloaded files.
func (q *Queue) RemoveByRequester(guildID, userID string) []model.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)

	var kept, removed []model.Track
	for _, t := range p.tracks {
		if t.RequestedBy == userID {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	p.tracks = kept
	return removed
}

func (q *Queue) IsPlaying(guildID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state(guildID).playing
}

func (q *Queue) SetPlaying(guildID string, playing bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).playing = playing
}

func (q *Queue) IsInVoiceChannel(guildID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state(guildID).inVoice
}

func (q *Queue) SetInVoiceChannel(guildID string, in bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).inVoice = in
}

func (q *Queue) SaveVoiceConnection(guildID string, vc *discordgo.VoiceConnection) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	p.vc = vc
	p.inVoice = vc != nil
}

func (q *Queue) GetVoiceConnection(guildID string) (*discordgo.VoiceConnection, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	return p.vc, p.vc != nil
}

// SetCurrentlyPlaying records the active track and stamps its start time.
// Pass nil when playback ends.
func (q *Queue) SetCurrentlyPlaying(guildID string, track *model.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	p.current = track
	if track != nil {
		p.startedAt = q.clock.Now()
		p.lastActivity = q.clock.Now()
	}
}

func (q *Queue) CurrentlyPlaying(guildID string) (model.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if p.current == nil {
		return model.Track{}, false
	}
	return *p.current, true
}

// Elapsed reports how long the current track has been playing.
func (q *Queue) Elapsed(guildID string) (time.Duration, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if p.current == nil {
		return 0, false
	}
	return q.clock.Since(p.startedAt), true
}

func (q *Queue) Repeat(guildID string) RepeatMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state(guildID).repeat
}

func (q *Queue) SetRepeat(guildID string, mode RepeatMode) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).repeat = mode
}

// CycleRepeat advances off -> all -> single -> off and returns the new mode.
func (q *Queue) CycleRepeat(guildID string) RepeatMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	switch p.repeat {
	case RepeatOff:
		p.repeat = RepeatAll
	case RepeatAll:
		p.repeat = RepeatSingle
	default:
		p.repeat = RepeatOff
	}
	return p.repeat
}

// Requeue applies the repeat mode to a track that finished playing: single
// puts it back at the head, all at the tail. Returns false when the mode is
// off and the track is done for good.
func (q *Queue) Requeue(guildID string, track model.Track) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	switch p.repeat {
	case RepeatSingle:
		p.tracks = append([]model.Track{track}, p.tracks...)
	case RepeatAll:
		p.tracks = append(p.tracks, track)
	default:
		return false
	}
	return true
}

func (q *Queue) SetPaused(guildID string, track model.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := track
	q.state(guildID).paused = &t
}

// TakePaused returns and clears the remembered paused track.
func (q *Queue) TakePaused(guildID string) (model.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if p.paused == nil {
		return model.Track{}, false
	}
	t := *p.paused
	p.paused = nil
	return t, true
}

func (q *Queue) SetPlaylistName(guildID, name string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).playlistName = name
}

func (q *Queue) PlaylistName(guildID string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state(guildID).playlistName
}

func (q *Queue) SetLastActivity(guildID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).lastActivity = q.clock.Now()
}

// IdleFor reports how long the guild has gone without activity.
func (q *Queue) IdleFor(guildID string) time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.state(guildID)
	if p.lastActivity.IsZero() {
		return 0
	}
	return q.clock.Since(p.lastActivity)
}

func (q *Queue) SetTrackFile(guildID, trackID, path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state(guildID).files[trackID] = path
}

func (q *Queue) TrackFile(guildID, trackID string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	path, ok := q.state(guildID).files[trackID]
	return path, ok
}

func (q *Queue) DeleteTrackFile(guildID, trackID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.state(guildID).files, trackID)
}

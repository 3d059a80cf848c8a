package bot

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-spotify-bot/model"
)

const testGuild = "guild-1"

func testTrack(title, requestedBy string) model.Track {
	t := model.NewTrack()
	t.Title = title
	t.RequestedBy = requestedBy
	return t
}

func TestQueueAddAndPopOrder(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	assert.Equal(t, 1, q.Add(testGuild, testTrack("first", "alice")))
	assert.Equal(t, 2, q.Add(testGuild, testTrack("second", "bob")))
	assert.Equal(t, 2, q.Len(testGuild))

	track, ok := q.Pop(testGuild)
	require.True(t, ok)
	assert.Equal(t, "first", track.Title)

	track, ok = q.Pop(testGuild)
	require.True(t, ok)
	assert.Equal(t, "second", track.Title)

	_, ok = q.Pop(testGuild)
	assert.False(t, ok)
}

func TestQueuePushFrontJumpsTheLine(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	q.Add(testGuild, testTrack("queued", "alice"))
	q.PushFront(testGuild, testTrack("resumed", "bob"))

	track, ok := q.Pop(testGuild)
	require.True(t, ok)
	assert.Equal(t, "resumed", track.Title)
}

func TestQueueIsolatedPerGuild(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	q.Add("guild-a", testTrack("only in a", "alice"))

	assert.Equal(t, 1, q.Len("guild-a"))
	assert.Equal(t, 0, q.Len("guild-b"))
}

func TestQueueClearReturnsDropped(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	q.Add(testGuild, testTrack("one", "alice"))
	q.Add(testGuild, testTrack("two", "alice"))
	q.SetPlaylistName(testGuild, "road trip")

	dropped := q.Clear(testGuild)
	assert.Len(t, dropped, 2)
	assert.Equal(t, 0, q.Len(testGuild))
	assert.Empty(t, q.PlaylistName(testGuild))
}

func TestQueueShuffleKeepsAllTracks(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	want := map[string]bool{}
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		q.Add(testGuild, testTrack(title, "alice"))
		want[title] = true
	}

	q.Shuffle(testGuild)

	got := map[string]bool{}
	for _, track := range q.List(testGuild) {
		got[track.Title] = true
	}
	assert.Equal(t, want, got)
}

func TestQueueRemoveByRequester(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	q.Add(testGuild, testTrack("keep 1", "alice"))
	q.Add(testGuild, testTrack("drop 1", "bob"))
	q.Add(testGuild, testTrack("keep 2", "alice"))
	q.Add(testGuild, testTrack("drop 2", "bob"))

	removed := q.RemoveByRequester(testGuild, "bob")

	require.Len(t, removed, 2)
	assert.Equal(t, "drop 1", removed[0].Title)
	assert.Equal(t, "drop 2", removed[1].Title)

	remaining := q.List(testGuild)
	require.Len(t, remaining, 2)
	assert.Equal(t, "keep 1", remaining[0].Title)
	assert.Equal(t, "keep 2", remaining[1].Title)
}

func TestParseRepeatMode(t *testing.T) {
	assert.Equal(t, RepeatAll, ParseRepeatMode("all"))
	assert.Equal(t, RepeatSingle, ParseRepeatMode("single"))
	assert.Equal(t, RepeatOff, ParseRepeatMode("off"))
	assert.Equal(t, RepeatOff, ParseRepeatMode("gibberish"))
}

func TestCycleRepeat(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	assert.Equal(t, RepeatOff, q.Repeat(testGuild))
	assert.Equal(t, RepeatAll, q.CycleRepeat(testGuild))
	assert.Equal(t, RepeatSingle, q.CycleRepeat(testGuild))
	assert.Equal(t, RepeatOff, q.CycleRepeat(testGuild))
}

func TestRequeueFollowsRepeatMode(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())
	q.Add(testGuild, testTrack("pending", "alice"))
	finished := testTrack("finished", "bob")

	// Off: the track is done, queue untouched.
	assert.False(t, q.Requeue(testGuild, finished))
	assert.Equal(t, 1, q.Len(testGuild))

	// Single: back to the head, ahead of pending tracks.
	q.SetRepeat(testGuild, RepeatSingle)
	assert.True(t, q.Requeue(testGuild, finished))
	head, ok := q.Peek(testGuild)
	require.True(t, ok)
	assert.Equal(t, "finished", head.Title)

	// All: to the tail, behind everything pending.
	q.Clear(testGuild)
	q.Add(testGuild, testTrack("pending", "alice"))
	q.SetRepeat(testGuild, RepeatAll)
	assert.True(t, q.Requeue(testGuild, finished))
	list := q.List(testGuild)
	require.Len(t, list, 2)
	assert.Equal(t, "pending", list[0].Title)
	assert.Equal(t, "finished", list[1].Title)
}

func TestPausedTrackRoundTrip(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	_, ok := q.TakePaused(testGuild)
	assert.False(t, ok)

	q.SetPaused(testGuild, testTrack("paused song", "alice"))

	track, ok := q.TakePaused(testGuild)
	require.True(t, ok)
	assert.Equal(t, "paused song", track.Title)

	// Taking consumes it.
	_, ok = q.TakePaused(testGuild)
	assert.False(t, ok)
}

func TestElapsedUsesInjectedClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	_, ok := q.Elapsed(testGuild)
	assert.False(t, ok)

	track := testTrack("long song", "alice")
	q.SetCurrentlyPlaying(testGuild, &track)
	clock.Advance(42 * time.Second)

	elapsed, ok := q.Elapsed(testGuild)
	require.True(t, ok)
	assert.Equal(t, 42*time.Second, elapsed)
}

func TestIdleForTracksActivity(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	// No activity recorded yet.
	assert.Equal(t, time.Duration(0), q.IdleFor(testGuild))

	q.SetLastActivity(testGuild)
	clock.Advance(7 * time.Minute)
	assert.Equal(t, 7*time.Minute, q.IdleFor(testGuild))

	q.SetLastActivity(testGuild)
	assert.Equal(t, time.Duration(0), q.IdleFor(testGuild))
}

func TestTrackFileCache(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	_, ok := q.TrackFile(testGuild, "id-1")
	assert.False(t, ok)

	q.SetTrackFile(testGuild, "id-1", "/tmp/a.mp3")
	path, ok := q.TrackFile(testGuild, "id-1")
	require.True(t, ok)
	assert.Equal(t, "/tmp/a.mp3", path)

	q.DeleteTrackFile(testGuild, "id-1")
	_, ok = q.TrackFile(testGuild, "id-1")
	assert.False(t, ok)
}

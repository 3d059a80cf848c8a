package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybackControllerStopSignal(t *testing.T) {
	ctrl := NewPlaybackController()

	// Nothing playing yet, nothing to interrupt.
	assert.False(t, ctrl.SendStopSignal())
	assert.False(t, ctrl.takeInterrupted())

	stop := make(chan bool, 1)
	ctrl.SetCurrentStopChan(stop)

	require.True(t, ctrl.SendStopSignal())
	assert.True(t, <-stop)

	// takeInterrupted reports the interruption exactly once.
	assert.True(t, ctrl.takeInterrupted())
	assert.False(t, ctrl.takeInterrupted())

	ctrl.ClearCurrentStopChan()
	assert.False(t, ctrl.SendStopSignal())
}

func TestNewTrackSignalCoalesces(t *testing.T) {
	b := &Bot{controllers: make(map[string]*PlaybackController)}

	// Repeated signals with no loop draining must not block.
	for i := 0; i < 3; i++ {
		b.SignalNewTrack(testGuild)
	}

	ctrl := b.controller(testGuild)
	select {
	case <-ctrl.NewTrack:
	default:
		t.Fatal("expected a pending new-track signal")
	}
	select {
	case <-ctrl.NewTrack:
		t.Fatal("signals should coalesce into one")
	default:
	}
}

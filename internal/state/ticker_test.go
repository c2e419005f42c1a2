package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/decksim/internal/timecode"
)

// cueAt cues clip id and moves the position offset frames into it.
func cueAt(t *testing.T, s *Store, id string, offset int) {
	t.Helper()
	s.GotoClip(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Equal(t, id, s.clipID)
	s.position += offset
}

func TestTick_PlayAdvancesOneFramePerTick(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 0)
	s.Play(false, false)

	sched.tick(10)
	snap := s.Snapshot()
	require.Equal(t, "01:00:00:10", snap.Timecode)
	require.Equal(t, "00:09:59:15", snap.Remaining)
	require.Equal(t, StatusPlaying, snap.Status)
}

func TestTick_ShuttleScalesBySpeed(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 0)
	s.Shuttle(1600)

	sched.tick(1)
	require.Equal(t, "01:00:00:16", s.Snapshot().Timecode)

	s.Shuttle(200)
	sched.tick(2)
	require.Equal(t, "01:00:00:20", s.Snapshot().Timecode)
}

func TestTick_ReverseShuttleStopsAtClipStart(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 20)
	s.Shuttle(-1600)

	sched.tick(1)
	require.Equal(t, "01:00:00:04", s.Snapshot().Timecode)
	require.Equal(t, StatusShuttle, s.Snapshot().Status)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, "01:00:00:00", snap.Timecode)
	require.Equal(t, "00:10:00:00", snap.Remaining)
	require.Equal(t, StatusStopped, snap.Status)
	require.Zero(t, snap.Speed)
	require.Equal(t, stamped("Start of clip 1 reached"), lastLog(s))
	require.Zero(t, sched.activeTickers())
}

func TestTick_ReverseShuttleAtTimelineZero(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 0)
	s.Shuttle(-100)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, timecode.Zero, snap.Timecode)
	require.Equal(t, StatusStopped, snap.Status)
	require.Zero(t, sched.activeTickers())
}

func TestTick_ReverseShuttleBeforeClipStartMovesBack(t *testing.T) {
	s, sched := connected(t)
	s.mu.Lock()
	s.position = 100
	s.mu.Unlock()
	s.Shuttle(-400)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, "00:00:03:21", snap.Timecode)
	require.Equal(t, StatusShuttle, snap.Status)
	require.Equal(t, "1", snap.CurrentClipID)

	sched.tick(30)
	snap = s.Snapshot()
	require.Equal(t, timecode.Zero, snap.Timecode)
	require.Equal(t, StatusShuttle, snap.Status)
}

func TestTick_SlowReverseShuttleMovesBack(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 10)
	s.Shuttle(-50)

	sched.tick(3)
	require.Equal(t, "01:00:00:07", s.Snapshot().Timecode)
}

func TestShuttleDelta(t *testing.T) {
	tests := []struct {
		speed, want int
	}{
		{0, 0},
		{50, 0},
		{100, 1},
		{1600, 16},
		{-50, -1},
		{-100, -1},
		{-150, -2},
		{-1600, -16},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, shuttleDelta(tt.speed), "speed %d", tt.speed)
	}
}

func TestTick_SingleClipLoopRestarts(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 3379)
	s.Play(true, true)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, timecode.Zero, snap.Timecode)
	require.Equal(t, "00:02:15:05", snap.Remaining)
	require.Equal(t, "4", snap.CurrentClipID)
	require.Equal(t, StatusPlaying, snap.Status)
	require.Equal(t, 1, sched.activeTickers())

	sched.tick(1)
	require.Equal(t, "00:00:00:01", s.Snapshot().Timecode)
}

func TestTick_SingleClipStopsAtEnd(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 3379)
	s.Play(false, true)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, timecode.Zero, snap.Timecode)
	require.Equal(t, "00:02:15:05", snap.Remaining)
	require.Equal(t, StatusStopped, snap.Status)
	require.Zero(t, snap.Speed)
	require.Zero(t, sched.activeTickers())
	require.Equal(t, stamped("CMD: play: loop: false single clip: true"), lastLog(s))
}

func TestTick_ContinuousPlayAdvancesToNextClip(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 14999)
	s.Play(false, false)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, "2", snap.CurrentClipID)
	require.Equal(t, "01:10:00:00", snap.Timecode)
	require.Equal(t, "00:05:30:12", snap.Remaining)
	require.Equal(t, StatusPlaying, snap.Status)
	require.Equal(t, stamped("Clip 1 ended, advancing to clip 2"), lastLog(s))
	require.Equal(t, 1, sched.activeTickers())
}

func TestTick_LoopWrapsAfterLastClip(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 3379)
	s.Play(true, false)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, "1", snap.CurrentClipID)
	require.Equal(t, "01:00:00:00", snap.Timecode)
	require.Equal(t, StatusPlaying, snap.Status)
	require.Equal(t, stamped("Clip 4 ended, wrapping to clip 1"), lastLog(s))
}

func TestTick_LastClipParksAtEnd(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 3379)
	s.Play(false, false)

	sched.tick(1)
	snap := s.Snapshot()
	require.Equal(t, "4", snap.CurrentClipID)
	require.Equal(t, "00:02:15:05", snap.Timecode)
	require.Equal(t, timecode.Zero, snap.Remaining)
	require.Equal(t, StatusStopped, snap.Status)
	require.Equal(t, stamped("End of clip 4 reached"), lastLog(s))
	require.Zero(t, sched.activeTickers())
}

func TestTick_RecordingRunsPastClipEnd(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "4", 3379)
	s.Record()

	sched.tick(3)
	snap := s.Snapshot()
	require.Equal(t, "00:02:15:07", snap.Timecode)
	require.Equal(t, timecode.Zero, snap.Remaining)
	require.Equal(t, StatusRecording, snap.Status)
	require.Equal(t, 1, sched.activeTickers())
}

func TestTick_NoopWhenDisconnected(t *testing.T) {
	s, sched := newTestStore(t)
	s.Play(false, false)
	before := s.Snapshot()

	sched.tick(5)
	after := s.Snapshot()
	require.Equal(t, before.Timecode, after.Timecode)
	require.Equal(t, before.Remaining, after.Remaining)
}

func TestTick_PreviewKeepsAdvancing(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 0)
	s.Play(false, false)
	sched.tick(2)
	s.Preview()

	sched.tick(5)
	snap := s.Snapshot()
	require.Equal(t, "01:00:00:07", snap.Timecode)
	require.Equal(t, StatusPreview, snap.Status)
}

func TestTick_StaleTickerIgnored(t *testing.T) {
	s, sched := connected(t)
	cueAt(t, s, "1", 0)
	s.Play(false, false)
	stale := sched.activeTicker()
	require.NotNil(t, stale)

	s.Play(false, false)
	stale.fn()
	stale.fn()
	require.Equal(t, "01:00:00:00", s.Snapshot().Timecode)

	s.Stop()
	stale.fn()
	require.Equal(t, "01:00:00:00", s.Snapshot().Timecode)
}

func TestTick_WithoutClipShowsPlaceholder(t *testing.T) {
	s, sched := connected(t)
	s.mu.Lock()
	s.clipID = ""
	s.mu.Unlock()
	s.Play(false, false)

	sched.tick(3)
	snap := s.Snapshot()
	require.Equal(t, "00:00:00:03", snap.Timecode)
	require.Equal(t, timecode.Placeholder, snap.Remaining)
}

func TestTick_NotifiesSubscribers(t *testing.T) {
	s, sched := connected(t)
	s.Play(false, false)
	changes, cancel := s.Subscribe()
	defer cancel()

	sched.tick(1)
	select {
	case <-changes:
	default:
		t.Fatalf("tick did not signal subscribers")
	}
}

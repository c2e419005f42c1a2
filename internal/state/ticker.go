package state

import (
	"fmt"

	"github.com/five82/decksim/internal/timecode"
)

// tick advances the play position by one refresh period. gen identifies the
// ticker that scheduled the call; calls from a stopped ticker are dropped.
func (s *Store) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.tickGen || s.ticker == nil {
		return
	}
	if !s.connected || !s.status.Moving() {
		return
	}

	delta := 1
	if s.status == StatusShuttle {
		delta = shuttleDelta(s.speed)
	}
	raw := s.position + delta
	pos := max(raw, 0)

	clip, ok := s.currentClipLocked()
	if !ok {
		s.position = pos
		s.remaining = timecode.Placeholder
		s.notifyLocked()
		return
	}

	switch {
	case pos-clip.StartFrames >= clip.DurationFrames:
		s.position = pos
		s.clipEndedLocked(clip)
	case delta < 0 && s.position >= clip.StartFrames && raw <= clip.StartFrames:
		s.cueLocked(clip)
		s.haltLocked(fmt.Sprintf("Start of clip %s reached", clip.ID))
	default:
		s.position = pos
		s.remaining = timecode.RemainingFrames(pos, clip.StartFrames, clip.DurationFrames)
	}
	s.notifyLocked()
}

// shuttleDelta converts a shuttle speed in percent to frames per tick,
// rounding toward negative infinity so slow reverse speeds still move back.
func shuttleDelta(speed int) int {
	d := speed / normalSpeed
	if speed%normalSpeed != 0 && speed < 0 {
		d--
	}
	return d
}

// clipEndedLocked applies the end-of-clip policy once the position has reached
// or passed the end of clip.
func (s *Store) clipEndedLocked(clip Clip) {
	switch {
	case s.loop && s.single:
		s.cueLocked(clip)
	case s.single:
		s.cueLocked(clip)
		s.haltLocked("")
	case s.status == StatusRecording:
		// A recording grows past the nominal clip length.
		s.remaining = timecode.Zero
	default:
		s.advanceLocked(clip)
	}
}

// advanceLocked moves continuous playback on to the next clip. Past the last
// clip it wraps when looping and otherwise parks at the end of the clip.
func (s *Store) advanceLocked(clip Clip) {
	idx := clipIndex(s.clips, clip.ID)
	switch {
	case idx >= 0 && idx < len(s.clips)-1:
		next := s.clips[idx+1]
		s.cueLocked(next)
		s.appendLog(fmt.Sprintf("Clip %s ended, advancing to clip %s", clip.ID, next.ID))
	case s.loop && len(s.clips) > 0:
		first := s.clips[0]
		s.cueLocked(first)
		s.appendLog(fmt.Sprintf("Clip %s ended, wrapping to clip %s", clip.ID, first.ID))
	default:
		s.position = clip.StartFrames + clip.DurationFrames
		s.remaining = timecode.Zero
		s.haltLocked(fmt.Sprintf("End of clip %s reached", clip.ID))
	}
}

// haltLocked is the ticker-driven stop: it does not log a stop command.
func (s *Store) haltLocked(msg string) {
	s.stopTickerLocked()
	s.status = StatusStopped
	s.speed = 0
	if msg != "" {
		s.appendLog(msg)
	}
	s.logger.Info().Str("clip", s.clipID).Str("position", timecode.Format(s.position)).Msg("transport auto-stopped")
}

func (s *Store) currentClipLocked() (Clip, bool) {
	idx := clipIndex(s.clips, s.clipID)
	if idx < 0 {
		return Clip{}, false
	}
	return s.clips[idx], true
}

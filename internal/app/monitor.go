package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/five82/decksim/internal/state"
)

// StartMonitor launches a background goroutine that logs deck transitions as
// the store changes. It returns immediately; the returned channel closes once
// the goroutine has exited after ctx is cancelled.
func StartMonitor(ctx context.Context, store *state.Store, logger zerolog.Logger) <-chan struct{} {
	changes, unsubscribe := store.Subscribe()
	prev := store.Snapshot()
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				next := store.Snapshot()
				logTransition(logger, prev, next)
				prev = next
			}
		}
	}()
	return done
}

// logTransition records the differences between two snapshots that matter to
// an operator. Position updates from the playback ticker are not logged.
func logTransition(logger zerolog.Logger, prev, next state.Snapshot) {
	switch {
	case next.Connected && !prev.Connected:
		logger.Info().Str("address", next.Address).Msg("deck connected")
	case !next.Connected && prev.Connected:
		logger.Info().Str("address", next.Address).Msg("deck disconnected")
	case next.Connecting && !prev.Connecting:
		logger.Info().Str("address", next.Address).Msg("deck connecting")
	}

	if next.Status != prev.Status {
		logger.Info().
			Str("from", string(prev.Status)).
			Str("to", string(next.Status)).
			Str("clip", next.CurrentClipID).
			Str("timecode", next.Timecode).
			Msg("transport changed")
	}
	if next.CurrentClipID != prev.CurrentClipID {
		logger.Info().Str("clip", next.CurrentClipID).Msg("clip cued")
	}
	if next.ActiveSlot != prev.ActiveSlot {
		logger.Info().Int("slot", next.ActiveSlot).Msg("slot selected")
	}
	if next.VideoInput != prev.VideoInput || next.FileFormat != prev.FileFormat {
		logger.Info().
			Str("video_input", next.VideoInput).
			Str("file_format", next.FileFormat).
			Msg("configuration changed")
	}
	if len(next.Files) != len(prev.Files) {
		logger.Debug().Int("files", len(next.Files)).Msg("file listing changed")
	}
}

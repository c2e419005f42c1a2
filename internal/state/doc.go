// Package state holds the simulated deck and the actions that drive it.
//
// # Overview
//
// Store is the single source of truth for one simulated video deck: the
// connection, transport status, play position, cued clip, storage slot,
// configuration, remote file listing and the console log. The UI never
// mutates state directly; it calls Store actions and renders Snapshots.
//
// # Architecture
//
//	UI key press ──> store.Play() ──> mutate under mutex ──> notify subscribers
//	                                        │
//	                   Scheduler.Every ─────┘ (playback ticker, 40ms)
//	                   Scheduler.AfterFunc ── (connect delay, 800ms)
//
//	Subscriber (UI, monitor):
//	  <-changes ──> store.Snapshot() ──> render
//
// # Core Types
//
// Store:
//   - Guards all fields with one sync.Mutex, so actions and timer callbacks
//     never interleave
//   - Owns the playback ticker and the pending-connect timer
//   - Signals subscribers on buffered channels without blocking
//
// Snapshot:
//   - Value copy of the device state, safe to keep and read anywhere
//   - Timecode is derived from the internal frame counter
//
// Scheduler:
//   - Source of timers; RealScheduler in production, a manual scheduler in
//     tests
//
// # Timers
//
// Each timer carries a generation number. Stopping a timer bumps the
// generation, and callbacks compare their generation under the lock before
// touching state. A tick or connect callback that was already in flight when
// its timer was cancelled is therefore a no-op. Starting a ticker always
// stops the previous one first.
//
// # Transport
//
// Status is one of stopped, play, record, shuttle and preview. Every action
// is accepted in every state. The ticker advances the position while playing,
// recording or shuttling (speed/100 frames per tick when shuttling). At the
// end of the cued clip:
//
//   - loop + single clip: jump back to the clip start and keep playing
//   - single clip: stop at the clip start
//   - continuous play or shuttle: cue the next clip; after the last clip wrap
//     to the first when looping, otherwise stop at the end
//   - recording: keep going
//
// Reverse shuttle stops at the start of the cued clip.
//
// # Validation
//
// SelectSlot accepts Slots only. SetConfig accepts VideoInputs and
// FileFormats values and any raw text; everything else returns an error
// wrapping ErrInvalidSlot, ErrUnknownConfigKey or ErrInvalidConfigValue and
// leaves a "Rejected" line in the console log. Unknown clip ids and file
// names are ignored.
//
// # Console
//
// Dispatch accepts text protocol lines such as "shuttle: speed: -400" or
// "slot select: slot id: 2". Unrecognised lines are stored as the raw command
// echo.
package state

// Package app is the composition root for decksim.
//
// # Overview
//
// Run wires together configuration, preferences, logging, the simulated
// deck store and the UI:
//
//  1. Load config from ~/.config/decksim/config.toml (defaults when missing)
//     and validate the deck settings in it
//  2. Open the application log file and build the zerolog logger
//  3. Load UI preferences (theme, last address); a bad file is logged and
//     replaced by defaults
//  4. Create the state.Store with the resolved address and deck settings
//  5. Start the status monitor goroutine
//  6. Start the TUI and block until the user exits or the context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read TOML config
//	       ├─────> logging.New()     File-backed zerolog logger
//	       ├─────> prefs.Load()      Theme and last address
//	       ├─────> state.New()       Simulated deck
//	       ├─────> StartMonitor()    Transition logging
//	       └─────> ui.Run()          Start TUI (blocks)
//
// # Address Resolution
//
// The deck address shown in the connection bar comes from, in order: the
// -address flag, the address saved in prefs by the last connection, and the
// address in the config file.
//
// # Status Monitor
//
// StartMonitor subscribes to the store and writes a log event whenever the
// connection, transport status, cued clip, slot or configuration changes.
// Timecode movement from the playback ticker is not logged. Run cancels the
// monitor and waits for it before returning.
package app

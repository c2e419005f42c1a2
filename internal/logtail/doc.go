// Package logtail keeps bounded, ordered line logs.
//
// # Overview
//
// Two things in decksim need "the last N lines": the device console log held
// by the state store (capped at 50 entries) and the console tab's view of the
// application log file. Both use the same ring-buffer algorithm.
//
// # Buffer
//
// Buffer is a fixed-capacity ring of strings:
//
//   - Append is O(1) and evicts the oldest line once full
//   - Lines returns a chronological copy, oldest first
//   - Capacity never changes after construction
//
// Buffer has no lock. The state store calls it while holding its own mutex.
//
// # Reading Log Files
//
// Read scans a file once and keeps only the trailing maxLines in a Buffer, so
// memory is O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogPath(), 400)
//	if err != nil {
//		return err
//	}
//
// A missing file is not an error; it simply has no lines yet. Lines longer than
// 1 MiB fail the scan and surface as a "read log" error.
package logtail

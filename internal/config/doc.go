// Package config loads decksim's TOML configuration file.
//
// Load reads the path it is given, or ~/.config/decksim/config.toml. A
// missing file is not an error; decksim runs on Default. Blank fields fall
// back to their defaults. Unknown keys and unknown log levels are rejected so
// typos surface at startup.
//
//	[deck]
//	address = "192.168.0.70"
//	slot = 1                          # 1-3
//	video_input = "SDI"               # SDI, HDMI, Component
//	file_format = "QuickTimeProResHQ"
//
//	[log]
//	dir = "~/.local/state/decksim"   # decksim.log is written here
//	level = "info"                    # trace, debug, info, warn, error
//
// Deck values are validated against the deck's own enumerations by the
// caller (see state.Settings).
package config

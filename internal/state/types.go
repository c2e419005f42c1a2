package state

import (
	"errors"
	"strings"
)

// TransportStatus is the deck's transport state. Values match the status
// strings the device reports.
type TransportStatus string

const (
	StatusStopped   TransportStatus = "stopped"
	StatusPlaying   TransportStatus = "play"
	StatusRecording TransportStatus = "record"
	StatusShuttle   TransportStatus = "shuttle"
	StatusPreview   TransportStatus = "preview"
)

// Moving reports whether the playback ticker advances the position in s.
// Preview keeps whatever motion was running before it.
func (s TransportStatus) Moving() bool {
	return s != StatusStopped
}

// Label returns the upper-case display form.
func (s TransportStatus) Label() string {
	return strings.ToUpper(string(s))
}

// Clip is a recorded segment on the deck. Clips are fixed sample data.
type Clip struct {
	ID             string
	Name           string
	Duration       string // timecode
	DurationFrames int
	Start          string // timecode
	StartFrames    int
}

// Configuration keys accepted by SetConfig.
const (
	ConfigVideoInput = "videoInput"
	ConfigFileFormat = "fileFormat"
	ConfigRaw        = "raw"
)

var (
	// VideoInputs lists the accepted video input selections.
	VideoInputs = []string{"SDI", "HDMI", "Component"}

	// FileFormats lists the accepted recording codecs.
	FileFormats = []string{
		"QuickTimeProResHQ", "QuickTimeProRes", "QuickTimeProResLT",
		"QuickTimeProResProxy", "DNxHD220", "DNxHR_HQX",
		"H.264High", "H.264Medium", "H.264Low",
		"H.265High", "H.265Medium", "H.265Low",
	}

	// Slots lists the storage slots.
	Slots = []int{1, 2, 3}
)

var (
	ErrInvalidSlot        = errors.New("invalid slot")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Snapshot is a copy of the device state at a point in time.
type Snapshot struct {
	Connected  bool
	Connecting bool
	Address    string

	Status    TransportStatus
	Timecode  string
	Remaining string
	Speed     int
	Loop      bool
	Single    bool

	ActiveSlot    int
	CurrentClipID string // empty when no clip is cued
	VideoInput    string
	FileFormat    string
	RawCommand    string

	Clips []Clip
	Files []string
	Log   []string
}

// CurrentClip returns the cued clip, if any.
func (s Snapshot) CurrentClip() (Clip, bool) {
	for _, c := range s.Clips {
		if c.ID == s.CurrentClipID {
			return c, true
		}
	}
	return Clip{}, false
}

// ClipIndex returns the list position of the cued clip, or -1.
func (s Snapshot) ClipIndex() int {
	return clipIndex(s.Clips, s.CurrentClipID)
}

func clipIndex(clips []Clip, id string) int {
	if id == "" {
		return -1
	}
	for i, c := range clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func validSlot(slot int) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

package state

import "github.com/five82/decksim/internal/timecode"

// Defaults applied when a Store is constructed.
const (
	DefaultAddress    = "192.168.0.70"
	DefaultVideoInput = "SDI"
	DefaultFileFormat = "QuickTimeProResHQ"
	DefaultSlot       = 1

	protocolVersion = "1.11"
	modelName       = "HyperDeck Studio HD Plus"
	readyMessage    = "System ready. Press c to simulate a connection."
)

func sampleClips() []Clip {
	return []Clip{
		newClip("1", "CAM_A_Reel_001.mov", "01:00:00:00", "00:10:00:00"),
		newClip("2", "CAM_A_Reel_002.mov", "01:10:00:00", "00:05:30:12"),
		newClip("3", "Interview_Full_Take1.mov", "02:00:00:00", "00:15:00:00"),
		newClip("4", "B-Roll_City_Night.mp4", "00:00:00:00", "00:02:15:05"),
	}
}

func sampleFiles() []string {
	return []string{
		"CAM_A_Reel_001.mov",
		"CAM_A_Reel_002.mov",
		"Interview_Full_Take1.mov",
		"B-Roll_City_Night.mp4",
		"Config_Backup_2023.xml",
		"Test_Pattern.mxf",
	}
}

func newClip(id, name, start, duration string) Clip {
	return Clip{
		ID:             id,
		Name:           name,
		Duration:       duration,
		DurationFrames: timecode.Parse(duration),
		Start:          start,
		StartFrames:    timecode.Parse(start),
	}
}

package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Transport(t *testing.T) {
	s, sched := connected(t)

	require.NoError(t, s.Dispatch("play: loop: true single clip: false"))
	snap := s.Snapshot()
	require.Equal(t, StatusPlaying, snap.Status)
	require.True(t, snap.Loop)
	require.False(t, snap.Single)

	require.NoError(t, s.Dispatch("Play: Single Clip: true"))
	snap = s.Snapshot()
	require.False(t, snap.Loop)
	require.True(t, snap.Single)

	require.NoError(t, s.Dispatch("shuttle: speed: -800"))
	require.Equal(t, -800, s.Snapshot().Speed)

	require.NoError(t, s.Dispatch("record"))
	require.Equal(t, StatusRecording, s.Snapshot().Status)

	require.NoError(t, s.Dispatch("preview: enable: true"))
	require.Equal(t, StatusPreview, s.Snapshot().Status)

	require.NoError(t, s.Dispatch("  stop  "))
	require.Equal(t, StatusStopped, s.Snapshot().Status)
	require.Zero(t, sched.activeTickers())

	require.NoError(t, s.Dispatch("quit"))
	require.False(t, s.Snapshot().Connected)
}

func TestDispatch_Goto(t *testing.T) {
	s, _ := connected(t)

	require.NoError(t, s.Dispatch("goto: clip id: 3"))
	require.Equal(t, "3", s.Snapshot().CurrentClipID)

	require.NoError(t, s.Dispatch("goto: clip id: +1"))
	require.Equal(t, "4", s.Snapshot().CurrentClipID)

	require.NoError(t, s.Dispatch("goto: clip id: -1"))
	require.NoError(t, s.Dispatch("goto: clip id: -1"))
	require.Equal(t, "2", s.Snapshot().CurrentClipID)

	err := s.Dispatch("goto")
	require.ErrorIs(t, err, ErrInvalidCommand)
}

func TestDispatch_SlotSelect(t *testing.T) {
	s, _ := connected(t)

	require.NoError(t, s.Dispatch("slot select: slot id: 3"))
	require.Equal(t, 3, s.Snapshot().ActiveSlot)

	require.ErrorIs(t, s.Dispatch("slot select: slot id: 9"), ErrInvalidSlot)
	require.ErrorIs(t, s.Dispatch("slot select: slot id: two"), ErrInvalidCommand)
	require.Equal(t, 3, s.Snapshot().ActiveSlot)
}

func TestDispatch_Configuration(t *testing.T) {
	s, _ := connected(t)

	require.NoError(t, s.Dispatch("configuration: video input: HDMI file format: H.265Low"))
	snap := s.Snapshot()
	require.Equal(t, "HDMI", snap.VideoInput)
	require.Equal(t, "H.265Low", snap.FileFormat)

	require.ErrorIs(t, s.Dispatch("configuration: video input: Optical"), ErrInvalidConfigValue)
	require.ErrorIs(t, s.Dispatch("configuration: audio input: XLR"), ErrInvalidCommand)
	require.Equal(t, "HDMI", s.Snapshot().VideoInput)
}

func TestDispatch_InvalidParametersAreLogged(t *testing.T) {
	s, _ := connected(t)
	before := s.Snapshot().Status

	err := s.Dispatch("play: loop: maybe")
	require.ErrorIs(t, err, ErrInvalidCommand)
	require.Equal(t, before, s.Snapshot().Status)
	require.Equal(t, stamped("Invalid command: play: loop: maybe"), lastLog(s))

	require.ErrorIs(t, s.Dispatch("shuttle: speed: fast"), ErrInvalidCommand)
}

func TestDispatch_UnknownCommandIsRawEcho(t *testing.T) {
	s, _ := connected(t)

	require.NoError(t, s.Dispatch("device info"))
	snap := s.Snapshot()
	require.Equal(t, "device info", snap.RawCommand)
	require.Equal(t, stamped("CMD: configuration: raw: device info"), lastLog(s))
}

func TestDispatch_EmptyLineIgnored(t *testing.T) {
	s, _ := connected(t)
	before := s.Snapshot()
	require.NoError(t, s.Dispatch("   "))
	require.Empty(t, cmp.Diff(before, s.Snapshot()))
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		rest string
		keys []string
		want map[string]string
	}{
		{" loop: true single clip: false", []string{"loop", "single clip"}, map[string]string{"loop": "true", "single clip": "false"}},
		{" single clip: true loop: false", []string{"loop", "single clip"}, map[string]string{"loop": "false", "single clip": "true"}},
		{" Clip ID: 7", []string{"clip id"}, map[string]string{"clip id": "7"}},
		{"", []string{"speed"}, map[string]string{}},
		{" video input: SDI", []string{"video input", "file format"}, map[string]string{"video input": "SDI"}},
	}
	for _, tc := range tests {
		got := parseParams(tc.rest, tc.keys...)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("parseParams(%q) mismatch (-want +got):\n%s", tc.rest, diff)
		}
	}
}

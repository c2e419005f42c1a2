package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/decksim/internal/state"
	"github.com/five82/decksim/internal/timecode"
)

const disconnectedText = "-- DISCONNECTED --"

// statusText is the transport line shown on the display.
func statusText(s state.Snapshot) string {
	if !s.Connected {
		return disconnectedText
	}
	if s.Status == state.StatusPlaying {
		switch {
		case s.Loop:
			return "PLAY LOOP"
		case s.Single:
			return "PLAY SINGLE"
		}
	}
	return s.Status.Label()
}

// timecodeText is the position readout; it is blanked while disconnected.
func timecodeText(s state.Snapshot) string {
	if !s.Connected {
		return timecode.Placeholder
	}
	return s.Timecode
}

// remainingText is the countdown readout, shown with a leading minus.
func remainingText(s state.Snapshot) string {
	if !s.Connected {
		return timecode.Placeholder
	}
	return "-" + s.Remaining
}

// clipNameText is the name of the cued clip, or "---".
func clipNameText(s state.Snapshot) string {
	if !s.Connected {
		return "---"
	}
	if clip, ok := s.CurrentClip(); ok {
		return clip.Name
	}
	return "---"
}

// renderDisplay renders the deck's front panel readout.
func (m Model) renderDisplay() string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := max(m.width-2, 10)
	snap := m.snapshot

	// Slot badges on the left, transport status on the right.
	var slots []string
	for _, slot := range state.Slots {
		label := fmt.Sprintf("SSD %d", slot)
		if snap.Connected && snap.ActiveSlot == slot {
			slots = append(slots, styles.StatusStyle(string(state.StatusRecording)).Render(label))
		} else {
			slots = append(slots, bg.Render(" "+label+" ", styles.FaintText))
		}
	}
	left := strings.Join(slots, bg.Space())

	statusStyle := styles.AccentText.Bold(true)
	if snap.Connected {
		statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.StatusColor(string(snap.Status)))).
			Bold(true)
	}
	status := bg.Render(statusText(snap), statusStyle)
	if snap.Connected && snap.Status == state.StatusShuttle {
		status = bg.Render(fmt.Sprintf("%+d%%", snap.Speed), styles.MutedText) + bg.Spaces(2) + status
	}
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(status), 1)
	statusLine := left + bg.Spaces(gap) + status

	readout := bg.Render(timecodeText(snap), styles.TimecodeText) +
		bg.Spaces(6) +
		bg.Render(remainingText(snap), styles.RemainingText)
	readoutLine := lipgloss.PlaceHorizontal(inner, lipgloss.Center, readout,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(bgColor)))

	clipLine := lipgloss.PlaceHorizontal(inner, lipgloss.Center,
		bg.Render("Current Clip", styles.FaintText)+bg.Spaces(2)+
			bg.Render(truncate(clipNameText(snap), inner-16), styles.Text),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(bgColor)))

	content := strings.Join([]string{statusLine, readoutLine, "", clipLine}, "\n")
	return m.renderTitledBox("Display", content, m.width, displayRows, true)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/decksim/internal/state"
)

// shuttleSpeed is the rewind and fast forward rate, in percent of normal.
const shuttleSpeed = 1600

// transportButton is one control in the transport row.
type transportButton struct {
	key    string
	label  string
	active func(state.Snapshot) bool
}

var transportButtons = []transportButton{
	{"[", "Prev", nil},
	{"b", "Rew", func(s state.Snapshot) bool { return s.Status == state.StatusShuttle && s.Speed < 0 }},
	{"s", "Stop", func(s state.Snapshot) bool { return s.Status == state.StatusStopped }},
	{"p", "Play", func(s state.Snapshot) bool { return s.Status == state.StatusPlaying }},
	{"f", "Fwd", func(s state.Snapshot) bool { return s.Status == state.StatusShuttle && s.Speed > 0 }},
	{"]", "Next", nil},
	{"r", "Rec", func(s state.Snapshot) bool { return s.Status == state.StatusRecording }},
	{"v", "Prv", func(s state.Snapshot) bool { return s.Status == state.StatusPreview }},
}

// handleHomeKey moves the clip cursor and cues the selected clip.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.Clips)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.clipCursor = clampIndex(m.clipCursor-1, n)
	case key.Matches(msg, m.keys.Down):
		m.clipCursor = clampIndex(m.clipCursor+1, n)
	case key.Matches(msg, m.keys.Top):
		m.clipCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.clipCursor = clampIndex(n-1, n)
	case key.Matches(msg, m.keys.Confirm):
		if n == 0 || !m.requireConnection() {
			return m, nil
		}
		m.store.GotoClip(m.snapshot.Clips[m.clipCursor].ID)
		m.sync()
	}
	return m, nil
}

// renderHome renders the transport row, playback modes and clip list.
func (m Model) renderHome() string {
	height := m.contentHeight()
	transport := m.renderTitledBox("Transport", m.renderTransportRow(), m.width, 3, false)
	listHeight := max(height-3, 3)
	list := m.renderTitledBox(
		fmt.Sprintf("Clip List (Slot %d) · %d Clips", m.snapshot.ActiveSlot, len(m.snapshot.Clips)),
		m.renderClipList(m.width-2, listHeight-2),
		m.width, listHeight, m.currentTab == TabHome)
	return lipgloss.JoinVertical(lipgloss.Left, transport, list)
}

func (m Model) renderTransportRow() string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	snap := m.snapshot

	buttonStyle := styles.Text
	if !snap.Connected {
		buttonStyle = styles.FaintText
	}

	parts := make([]string, 0, len(transportButtons)+3)
	for _, b := range transportButtons {
		label := "[" + b.key + "] " + b.label
		if snap.Connected && b.active != nil && b.active(snap) {
			parts = append(parts, styles.StatusStyle(string(snap.Status)).Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, buttonStyle))
	}

	loopActive := snap.Connected && snap.Status == state.StatusPlaying && snap.Loop
	singleActive := snap.Connected && snap.Status == state.StatusPlaying && snap.Single && !snap.Loop
	parts = append(parts,
		bg.Render("│", styles.FaintText),
		m.renderModeButton("[l] PLAY LOOP", loopActive, buttonStyle, bg),
		m.renderModeButton("[o] PLAY SINGLE", singleActive, buttonStyle, bg),
	)
	return strings.Join(parts, bg.Spaces(2))
}

func (m Model) renderModeButton(label string, active bool, style lipgloss.Style, bg BgStyle) string {
	if active {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.Success)).
			Foreground(lipgloss.Color(m.theme.Background)).
			Bold(true).
			Render(label)
	}
	return bg.Render(label, style)
}

// renderClipList renders the clip table. The cued clip is highlighted and the
// cursor row is drawn with the selection colors.
func (m Model) renderClipList(width, rows int) string {
	bgColor := ternary(m.currentTab == TabHome, m.theme.FocusBg, m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	const idWidth, durationWidth = 4, 13
	nameWidth := max(width-idWidth-durationWidth-4, 10)

	header := bg.Render(padRight("ID", idWidth)+" "+padRight("NAME", nameWidth)+" "+padLeft("DURATION", durationWidth), styles.FaintText)
	lines := []string{bg.FillLine(header, width)}

	clips := m.snapshot.Clips
	start := 0
	if visible := rows - 1; visible > 0 && m.clipCursor >= visible {
		start = m.clipCursor - visible + 1
	}
	for i := start; i < len(clips) && len(lines) < rows; i++ {
		c := clips[i]
		text := padRight(c.ID, idWidth) + " " + padRight(truncate(c.Name, nameWidth), nameWidth) + " " + padLeft(c.Duration, durationWidth)

		var line string
		switch {
		case i == m.clipCursor && m.currentTab == TabHome:
			line = styles.Selected.Width(width).Render(text)
		case c.ID == m.snapshot.CurrentClipID:
			line = bg.FillLine(bg.Render(text, styles.AccentText), width)
		default:
			line = bg.FillLine(bg.Render(text, styles.Text), width)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

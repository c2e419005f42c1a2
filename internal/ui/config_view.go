package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/decksim/internal/state"
)

// Rows of the configuration panel, in cursor order.
const (
	configRowVideoInput = iota
	configRowFileFormat
	configRowSlot
	configRowCount
)

// handleConfigKey moves between settings and cycles the selected one.
// Changes apply immediately.
func (m Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := 0
	switch {
	case key.Matches(msg, m.keys.Up):
		m.configCursor = clampIndex(m.configCursor-1, configRowCount)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.configCursor = clampIndex(m.configCursor+1, configRowCount)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		step = -1
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Confirm):
		step = 1
	default:
		return m, nil
	}

	if !m.requireConnection() {
		return m, nil
	}

	var err error
	switch m.configCursor {
	case configRowVideoInput:
		err = m.store.SetConfig(state.ConfigVideoInput, cycleOption(state.VideoInputs, m.snapshot.VideoInput, step))
	case configRowFileFormat:
		err = m.store.SetConfig(state.ConfigFileFormat, cycleOption(state.FileFormats, m.snapshot.FileFormat, step))
	case configRowSlot:
		err = m.store.SelectSlot(cycleSlot(m.snapshot.ActiveSlot, step))
	}
	m.reportError(err)
	m.sync()
	return m, nil
}

// cycleOption returns the option step places away from current, wrapping.
// An unknown current value selects the first option.
func cycleOption(options []string, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

func cycleSlot(current, step int) int {
	idx := 0
	for i, s := range state.Slots {
		if s == current {
			idx = i
			break
		}
	}
	n := len(state.Slots)
	return state.Slots[((idx+step)%n+n)%n]
}

// renderConfig renders the system configuration and the NAS placeholder.
func (m Model) renderConfig() string {
	height := m.contentHeight()
	nasHeight := 6
	sysHeight := max(height-nasHeight, 7)

	system := m.renderTitledBox("System Configuration", m.renderConfigRows(m.width-2), m.width, sysHeight, true)
	nas := m.renderTitledBox("NAS Configuration", m.renderNASPanel(), m.width, nasHeight, false)
	return lipgloss.JoinVertical(lipgloss.Left, system, nas)
}

func (m Model) renderConfigRows(width int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	snap := m.snapshot

	valueStyle := styles.Text
	if !snap.Connected {
		valueStyle = styles.FaintText
	}

	slotLabels := make([]string, 0, len(state.Slots))
	for _, s := range state.Slots {
		label := fmt.Sprintf("SLOT %d", s)
		if s == snap.ActiveSlot {
			label = "[" + label + "]"
		}
		slotLabels = append(slotLabels, label)
	}

	rows := []struct{ label, value string }{
		{"VIDEO INPUT", snap.VideoInput},
		{"FILE FORMAT", snap.FileFormat},
		{"ACTIVE SLOT", strings.Join(slotLabels, "  ")},
	}

	lines := make([]string, 0, len(rows)*2)
	for i, r := range rows {
		label := bg.Render(padRight(r.label, 14), styles.MutedText)
		value := "◀ " + r.value + " ▶"
		if i == m.configCursor {
			lines = append(lines, label+styles.Selected.Render(" "+value+" "))
		} else {
			lines = append(lines, label+bg.Render(" "+value+" ", valueStyle))
		}
		lines = append(lines, "")
	}
	if !snap.Connected {
		lines = append(lines, bg.Render("Connect to change configuration.", styles.FaintText))
	}
	for i := range lines {
		lines[i] = bg.FillLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// renderNASPanel renders the share mounting panel. Mounting is not
// simulated, so every field is shown disabled.
func (m Model) renderNASPanel() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	return strings.Join([]string{
		bg.Render("SMB/CIFS mounting simulation. Real mounting requires backend proxy.", styles.WarningText),
		bg.Render("Share: smb://server/share   User: ---   Password: ---", styles.FaintText),
		bg.Render("[Mount Share] (disabled)", styles.FaintText),
	}, "\n")
}

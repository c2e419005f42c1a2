package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the connection bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("decksim", styles.Logo)}
	if !compact {
		parts = append(parts, bg.Render("SIMULATION MODE", styles.FaintText))
	}

	switch {
	case m.snapshot.Connected:
		parts = append(parts, bg.Render("● CONNECTED", styles.SuccessText))
	case m.snapshot.Connecting:
		parts = append(parts, bg.Render("◌ CONNECTING...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render("○ OFFLINE", styles.DangerText))
	}

	parts = append(parts, bg.Render("IP Address:", styles.MutedText)+bg.Space()+m.renderAddressField(styles, bg))

	action := ternary(m.snapshot.Connected || m.snapshot.Connecting, "Disconnect", "Connect")
	parts = append(parts, bg.Render("c", styles.AccentText)+bg.Sep(":")+bg.Render(action, styles.Text))

	if !compact && m.snapshot.Connected {
		parts = append(parts,
			bg.Render(fmt.Sprintf("Slot %d", m.snapshot.ActiveSlot), styles.MutedText),
			bg.Render(m.snapshot.VideoInput, styles.MutedText),
			bg.Render(m.snapshot.FileFormat, styles.MutedText),
		)
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) renderAddressField(styles Styles, bg BgStyle) string {
	if m.editingAddress {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.FocusBg)).
			Render(m.addressInput.View())
	}
	value := strings.TrimSpace(m.addressInput.Value())
	if value == "" {
		value = m.snapshot.Address
	}
	style := styles.Text
	if m.snapshot.Connected {
		style = styles.FaintText
	}
	return bg.Render(value, style)
}

// renderCommandBar renders the key hints for the active tab, or the status
// line message while one is showing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.flash != "" {
		return styles.Header.Width(m.width).Render(bg.Render(m.flash, styles.WarningText))
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.editingAddress:
		commands = []cmd{{"enter", "Connect"}, {"esc", "Cancel"}}
	case m.console.inputActive:
		commands = []cmd{{"enter", "Send"}, {"esc", "Cancel"}}
	default:
		commands = []cmd{{"a", "Address"}, {"p", "Play"}, {"s", "Stop"}, {"r", "Rec"}, {"b/f", "Shuttle"}, {"[/]", "Clip"}}
		switch m.currentTab {
		case TabHome:
			commands = append(commands, cmd{"l/o", "Loop/Single"}, cmd{"enter", "Cue"})
		case TabConfig:
			commands = append(commands, cmd{"←/→", "Change"})
		case TabFiles:
			commands = append(commands, cmd{"n", "Rename"}, cmd{"x", "Delete"}, cmd{"u", "Refresh"})
		case TabConsole:
			followLabel := ternary(m.console.follow, "Pause", "Follow")
			commands = append(commands, cmd{":", "Command"}, cmd{"i", m.console.otherSourceLabel()}, cmd{"Space", followLabel})
		}
		commands = append(commands, cmd{"?", "More"})
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderTabBar renders the tab selector.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	tabs := make([]string, 0, tabCount)
	for t := TabHome; t < tabCount; t++ {
		label := fmt.Sprintf(" %d %s ", int(t)+1, strings.ToUpper(t.String()))
		if t == m.currentTab {
			tabs = append(tabs, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.FocusBg)).
				Foreground(lipgloss.Color(m.theme.Accent)).
				Bold(true).
				Underline(true).
				Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(label, styles.MutedText))
	}
	return bg.FillLine(strings.Join(tabs, bg.Space()), m.width)
}

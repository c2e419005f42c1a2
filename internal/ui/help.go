package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection groups bindings under a heading in the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections lays out the keymap for the overlay. Left column first.
func (k keyMap) helpSections() (left, right []helpSection) {
	left = []helpSection{
		{"Connection", []key.Binding{k.EditAddress, k.Connect}},
		{"Transport", []key.Binding{k.Play, k.PlayLoop, k.PlaySingle, k.Stop, k.Record, k.Preview,
			k.Rewind, k.Forward, k.PrevClip, k.NextClip}},
	}
	right = []helpSection{
		{"Navigation", []key.Binding{k.Tab, k.TabHome, k.TabConfig, k.TabFiles, k.TabConsole,
			k.Up, k.Down, k.Left, k.Right, k.Confirm}},
		{"Files", []key.Binding{k.Rename, k.Delete, k.Refresh}},
		{"Console", []key.Binding{k.Command, k.ToggleFollow, k.ToggleLogSource}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
	return left, right
}

// renderHelp renders the help overlay. Any key closes it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	left, right := m.keys.helpSections()

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderHelpColumn(left),
		strings.Repeat(" ", 4),
		m.renderHelpColumn(right),
	)

	content := styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n" +
		styles.FaintText.Render(strings.Repeat("─", lipgloss.Width(cols))) + "\n\n" +
		cols + "\n\n" +
		styles.FaintText.Render("press any key to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) renderHelpColumn(sections []helpSection) string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

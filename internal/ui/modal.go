package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question. onConfirm builds the message sent
// when the user accepts.
type confirmModal struct {
	title     string
	question  string
	onConfirm func() tea.Msg
}

func newConfirmModal(title, question string, onConfirm func() tea.Msg) confirmModal {
	return confirmModal{title: title, question: question, onConfirm: onConfirm}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm), keyMsg.String() == "y":
		return c, c.onConfirm, true
	case key.Matches(keyMsg, keys.Escape), keyMsg.String() == "n":
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render(c.question) + "\n\n" +
		styles.AccentText.Render("y/enter") + styles.MutedText.Render(" confirm  ") +
		styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel")
	return renderModalFrame(theme, c.title, body, width, height)
}

// promptModal edits a single line of text. onSubmit receives the entered
// value and may return nil to send nothing.
type promptModal struct {
	title    string
	input    textinput.Model
	onSubmit func(value string) tea.Msg
}

func newPromptModal(title, initial string, onSubmit func(string) tea.Msg) promptModal {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 40
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return promptModal{title: title, input: ti, onSubmit: onSubmit}
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Confirm):
			value := p.input.Value()
			return p, func() tea.Msg { return p.onSubmit(value) }, true
		case key.Matches(keyMsg, keys.Escape):
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := p.input.View() + "\n\n" +
		styles.AccentText.Render("enter") + styles.MutedText.Render(" save  ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel")
	return renderModalFrame(theme, p.title, body, width, height)
}

func renderModalFrame(theme Theme, title, body string, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(body)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		frame.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

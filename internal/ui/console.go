package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/decksim/internal/logtail"
)

// consoleSource selects what the console viewport shows.
type consoleSource int

const (
	consoleSourceDevice consoleSource = iota // the deck's console log
	consoleSourceApp                         // tail of the application log file
)

// consoleState holds all console-related state.
type consoleState struct {
	source      consoleSource
	follow      bool
	input       textinput.Model
	inputActive bool

	appLines []string
	appErr   error
}

func newConsoleState() consoleState {
	ti := textinput.New()
	ti.Placeholder = "Enter raw command..."
	ti.CharLimit = 256
	ti.Prompt = "> "
	return consoleState{source: consoleSourceDevice, follow: true, input: ti}
}

func (c consoleState) otherSourceLabel() string {
	return ternary(c.source == consoleSourceDevice, "App log", "Device log")
}

type appLogMsg struct {
	lines []string
	err   error
}

func (m *Model) initConsoleViewport() {
	m.consoleViewport = viewport.New(max(m.width-4, 1), m.consoleViewportHeight())
}

// consoleViewportHeight is the content height minus the box borders, the
// status line and the input line.
func (m Model) consoleViewportHeight() int {
	return max(m.contentHeight()-4, 1)
}

// updateConsoleViewport refreshes viewport content from the active source.
func (m *Model) updateConsoleViewport() {
	if !m.ready {
		return
	}
	m.consoleViewport.Width = max(m.width-2, 1)
	m.consoleViewport.Height = m.consoleViewportHeight()
	m.consoleViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.consoleViewport.SetContent(m.renderConsoleLines())
	if m.console.follow {
		m.consoleViewport.GotoBottom()
	}
}

func (m Model) renderConsoleLines() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.consoleViewport.Width

	var lines []string
	if m.console.source == consoleSourceApp {
		if m.console.appErr != nil {
			return bg.FillLine(bg.Render("Cannot read "+m.logPath+": "+m.console.appErr.Error(), styles.DangerText), width)
		}
		lines = m.console.appLines
	} else {
		lines = m.snapshot.Log
	}

	if len(lines) == 0 {
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	prompt := bg.Render(">", styles.FaintText) + bg.Space()
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = bg.FillLine(prompt+bg.Render(line, m.consoleLineStyle(line, styles)), width)
	}
	return strings.Join(out, "\n")
}

// consoleLineStyle colors commands, rejections and everything else apart.
func (m Model) consoleLineStyle(line string, styles Styles) lipgloss.Style {
	switch {
	case strings.Contains(line, "Rejected") || strings.Contains(line, "Invalid command") ||
		strings.Contains(line, `"level":"error"`) || strings.Contains(line, `"level":"warn"`):
		return styles.WarningText
	case strings.Contains(line, "CMD:"):
		return styles.Text
	default:
		return styles.MutedText
	}
}

// handleConsoleKey scrolls the log and switches sources.
func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Command), key.Matches(msg, m.keys.Confirm):
		if m.console.source != consoleSourceDevice {
			m.setFlash("Switch to the device log to send commands")
			return m, nil
		}
		m.console.inputActive = true
		cmd := m.console.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleLogSource):
		if m.console.source == consoleSourceDevice {
			m.console.source = consoleSourceApp
			m.console.follow = true
			m.updateConsoleViewport()
			return m, m.refreshAppLog()
		}
		m.console.source = consoleSourceDevice
		m.console.follow = true
		m.updateConsoleViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.console.follow = !m.console.follow
		m.updateConsoleViewport()

	case key.Matches(msg, m.keys.Top):
		m.consoleViewport.GotoTop()
		m.console.follow = false

	case key.Matches(msg, m.keys.Bottom):
		m.consoleViewport.GotoBottom()
		m.console.follow = true

	case key.Matches(msg, m.keys.Down):
		m.consoleViewport.ScrollDown(1)
		m.console.follow = false

	case key.Matches(msg, m.keys.Up):
		m.consoleViewport.ScrollUp(1)
		m.console.follow = false

	case key.Matches(msg, m.keys.PageDown):
		m.consoleViewport.HalfPageDown()
		m.console.follow = false

	case key.Matches(msg, m.keys.PageUp):
		m.consoleViewport.HalfPageUp()
		m.console.follow = false
	}
	return m, nil
}

// handleConsoleInput edits the command line; enter dispatches it to the deck.
// Commands are only sent while connected.
func (m Model) handleConsoleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.console.inputActive = false
		m.console.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		line := strings.TrimSpace(m.console.input.Value())
		if line == "" || !m.requireConnection() {
			return m, nil
		}
		m.console.input.SetValue("")
		m.reportError(m.store.Dispatch(line))
		m.console.follow = true
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.console.input, cmd = m.console.input.Update(msg)
	return m, cmd
}

// refreshAppLog reads the tail of the application log file in the background.
func (m Model) refreshAppLog() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, appLogLimit)
		return appLogMsg{lines: lines, err: err}
	}
}

func (m *Model) handleAppLog(msg appLogMsg) {
	m.console.appLines = msg.lines
	m.console.appErr = msg.err
	if m.console.source == consoleSourceApp {
		m.updateConsoleViewport()
	}
}

// renderConsole renders the log box, its status line and the command input.
func (m Model) renderConsole() string {
	height := m.contentHeight()
	title := "Device Console"
	if m.console.source == consoleSourceApp {
		title = "Application Log"
	}
	box := m.renderTitledBox(title, m.consoleViewport.View(), m.width, height-2, true)

	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles()
	count := len(m.snapshot.Log)
	if m.console.source == consoleSourceApp {
		count = len(m.console.appLines)
	}
	status := bg.FillLine(bg.Render(
		fmt.Sprintf("%s %d lines auto-tail %s", strings.ToLower(title), count, ternary(m.console.follow, "on", "off")),
		styles.FaintText), m.width)

	var input string
	switch {
	case m.console.source == consoleSourceApp:
		input = bg.Render(truncate(m.logPath, m.width-2), styles.FaintText)
	case m.console.inputActive:
		input = m.console.input.View()
	case !m.snapshot.Connected:
		input = bg.Render("> Connect to send commands", styles.FaintText)
	default:
		input = bg.Render("> press : to enter a command", styles.FaintText)
	}
	return box + "\n" + status + "\n" + bg.FillLine(input, m.width)
}

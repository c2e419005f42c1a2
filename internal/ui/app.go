package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/decksim/internal/prefs"
	"github.com/five82/decksim/internal/state"
)

// Tab is one of the panels below the display.
type Tab int

const (
	TabHome Tab = iota
	TabConfig
	TabFiles
	TabConsole
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabConfig:
		return "Config"
	case TabFiles:
		return "Files / FTP"
	case TabConsole:
		return "Console"
	default:
		return ""
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string // application log shown by the console tab
	Logger    zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	logger    zerolog.Logger
	keys      keyMap

	// Store subscription
	changes     <-chan struct{}
	unsubscribe func()

	// UI state
	theme      Theme
	currentTab Tab
	width      int
	height     int
	ready      bool

	// Data state
	snapshot state.Snapshot

	// Connection bar
	addressInput   textinput.Model
	editingAddress bool

	// Per-tab cursors
	clipCursor   int
	configCursor int
	fileCursor   int

	// Console state
	consoleViewport viewport.Model
	console         consoleState

	// Overlays
	modal    Modal
	showHelp bool

	// Status line message
	flash      string
	flashUntil time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = defaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:          ctx,
		store:        opts.Store,
		prefs:        opts.Prefs,
		prefsPath:    prefsPath,
		logPath:      opts.LogPath,
		logger:       opts.Logger,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentTab:   TabHome,
		addressInput: newAddressInput(),
		console:      newConsoleState(),
	}

	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.addressInput.SetValue(m.snapshot.Address)
		m.changes, m.unsubscribe = m.store.Subscribe()
	}
	return m
}

func newAddressInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = state.DefaultAddress
	ti.CharLimit = 64
	ti.Width = 18
	ti.Prompt = ""
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(DefaultUIInterval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initConsoleViewport()
		}
		m.ready = true
		m.updateConsoleViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case changeMsg:
		if m.store == nil {
			return m, nil
		}
		m.applySnapshot(m.store.Snapshot())
		return m, waitForChangeCmd(m.changes)

	case appLogMsg:
		m.handleAppLog(msg)
		return m, nil

	case renameFileMsg:
		m.store.RenameFile(msg.oldName, msg.newName)
		m.sync()
		return m, nil

	case deleteFileMsg:
		m.store.DeleteFile(msg.name)
		m.sync()
		return m, nil
	}

	// Forward everything else (cursor blink) to whichever input is focused.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey routes a key press: overlays first, then focused inputs, then
// global bindings, transport bindings and finally the active tab.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editingAddress {
		return m.handleAddressKey(msg)
	}
	if m.console.inputActive {
		return m.handleConsoleInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchTab((m.currentTab + 1) % tabCount)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab((m.currentTab + tabCount - 1) % tabCount)

	case key.Matches(msg, m.keys.TabHome):
		return m.switchTab(TabHome)

	case key.Matches(msg, m.keys.TabConfig):
		return m.switchTab(TabConfig)

	case key.Matches(msg, m.keys.TabFiles):
		return m.switchTab(TabFiles)

	case key.Matches(msg, m.keys.TabConsole):
		return m.switchTab(TabConsole)

	case key.Matches(msg, m.keys.EditAddress):
		if m.snapshot.Connected {
			m.setFlash("Disconnect before changing the address")
			return m, nil
		}
		m.editingAddress = true
		cmd := m.addressInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Connect):
		m.toggleConnection()
		return m, nil
	}

	if handled := m.handleTransportKey(msg); handled {
		return m, nil
	}

	switch m.currentTab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabConfig:
		return m.handleConfigKey(msg)
	case TabFiles:
		return m.handleFilesKey(msg)
	case TabConsole:
		return m.handleConsoleKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.currentTab = tab
	if tab == TabConsole {
		m.updateConsoleViewport()
		if m.console.source == consoleSourceApp {
			return m, m.refreshAppLog()
		}
	}
	return m, nil
}

// handleAddressKey edits the address field; enter connects.
func (m Model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.editingAddress = false
		m.addressInput.Blur()
		m.toggleConnection()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.editingAddress = false
		m.addressInput.Blur()
		m.addressInput.SetValue(m.snapshot.Address)
		return m, nil
	}
	var cmd tea.Cmd
	m.addressInput, cmd = m.addressInput.Update(msg)
	return m, cmd
}

// toggleConnection disconnects when connected (or connecting) and otherwise
// connects to the address in the connection bar.
func (m *Model) toggleConnection() {
	if m.store == nil {
		return
	}
	if m.snapshot.Connected || m.snapshot.Connecting {
		m.store.Disconnect()
		m.sync()
		return
	}

	address := strings.TrimSpace(m.addressInput.Value())
	if address == "" {
		address = m.snapshot.Address
	}
	m.addressInput.SetValue(address)
	m.store.Connect(address)
	m.sync()

	if address != m.prefs.Address {
		m.prefs.Address = address
		m.savePrefs()
	}
}

// handleTransportKey runs transport and clip keys from any tab. It reports
// whether msg was a transport key. Transport is disabled while disconnected.
func (m *Model) handleTransportKey(msg tea.KeyMsg) bool {
	var action func(*state.Store)
	switch {
	case key.Matches(msg, m.keys.Play):
		action = func(s *state.Store) { s.Play(false, false) }
	case key.Matches(msg, m.keys.PlayLoop):
		action = func(s *state.Store) { s.Play(true, true) }
	case key.Matches(msg, m.keys.PlaySingle):
		action = func(s *state.Store) { s.Play(false, true) }
	case key.Matches(msg, m.keys.Stop):
		action = (*state.Store).Stop
	case key.Matches(msg, m.keys.Record):
		action = (*state.Store).Record
	case key.Matches(msg, m.keys.Preview):
		action = (*state.Store).Preview
	case key.Matches(msg, m.keys.Rewind):
		action = func(s *state.Store) { s.Shuttle(-shuttleSpeed) }
	case key.Matches(msg, m.keys.Forward):
		action = func(s *state.Store) { s.Shuttle(shuttleSpeed) }
	case key.Matches(msg, m.keys.PrevClip):
		action = (*state.Store).PrevClip
	case key.Matches(msg, m.keys.NextClip):
		action = (*state.Store).NextClip
	default:
		return false
	}

	if !m.requireConnection() {
		return true
	}
	action(m.store)
	m.sync()
	return true
}

// requireConnection reports whether device actions are available, flashing a
// hint when they are not.
func (m *Model) requireConnection() bool {
	if m.store == nil {
		return false
	}
	if !m.snapshot.Connected {
		m.setFlash("Not connected. Press c to connect.")
		return false
	}
	return true
}

// sync re-reads the store after a UI-initiated action.
func (m *Model) sync() {
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.clipCursor = clampIndex(m.clipCursor, len(snap.Clips))
	m.fileCursor = clampIndex(m.fileCursor, len(snap.Files))
	if m.console.source == consoleSourceDevice {
		m.updateConsoleViewport()
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.savePrefs()
	m.updateConsoleViewport()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// setFlash shows msg on the status line for flashDuration.
func (m *Model) setFlash(msg string) {
	m.flash = msg
	m.flashUntil = time.Now().Add(flashDuration)
}

// reportError flashes an action error. Rejections are also in the device log.
func (m *Model) reportError(err error) {
	if err == nil {
		return
	}
	m.setFlash(err.Error())
	m.logger.Debug().Err(err).Msg("action rejected")
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editingAddress:
		m.addressInput, cmd = m.addressInput.Update(msg)
	case m.console.inputActive:
		m.console.input, cmd = m.console.input.Update(msg)
	case m.modal != nil:
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
	}
	return m, cmd
}

// handleTick processes the fallback refresh tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.flash != "" && now.After(m.flashUntil) {
		m.flash = ""
	}
	if m.currentTab == TabConsole && m.console.source == consoleSourceApp && m.console.follow {
		if cmd := m.refreshAppLog(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, tickCmd(DefaultUIInterval))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderDisplay())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the active tab.
func (m Model) renderContent() string {
	switch m.currentTab {
	case TabHome:
		return m.renderHome()
	case TabConfig:
		return m.renderConfig()
	case TabFiles:
		return m.renderFiles()
	case TabConsole:
		return m.renderConsole()
	default:
		return ""
	}
}

func (m Model) contentHeight() int {
	return max(m.height-chromeRows, 3)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// changeMsg reports that the store signalled a state change.
type changeMsg struct{}

type renameFileMsg struct{ oldName, newName string }

type deleteFileMsg struct{ name string }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChangeCmd blocks until the store signals a change. A closed channel
// ends the wait loop.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changeMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	if m.unsubscribe != nil {
		defer m.unsubscribe()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

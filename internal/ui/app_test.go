package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/decksim/internal/prefs"
	"github.com/five82/decksim/internal/state"
)

// stubScheduler holds connect callbacks until the test fires them and never
// ticks, so transport state only changes through key presses.
type stubScheduler struct {
	pending []func()
}

type stubTimer struct{}

func (stubTimer) Stop() {}

func (s *stubScheduler) AfterFunc(_ time.Duration, f func()) state.Timer {
	s.pending = append(s.pending, f)
	return stubTimer{}
}

func (s *stubScheduler) Every(time.Duration, func()) state.Timer {
	return stubTimer{}
}

func (s *stubScheduler) fire() {
	pending := s.pending
	s.pending = nil
	for _, f := range pending {
		f()
	}
}

func newTestModel(t *testing.T) (Model, *stubScheduler) {
	t.Helper()
	sched := &stubScheduler{}
	store := state.New(state.WithScheduler(sched))
	t.Cleanup(store.Close)

	m := New(Options{
		Store:     store,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Logger:    zerolog.Nop(),
	})
	t.Cleanup(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), sched
}

func connectedModel(t *testing.T) Model {
	t.Helper()
	m, sched := newTestModel(t)
	m = press(t, m, "c")
	sched.fire()
	m = update(t, m, changeMsg{})
	if !m.snapshot.Connected {
		t.Fatalf("expected connected snapshot after firing connect timer")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// run executes cmd and feeds the resulting message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	if msg == nil {
		t.Fatalf("command produced no message")
	}
	return update(t, m, msg)
}

func logContains(m Model, substr string) bool {
	for _, line := range m.snapshot.Log {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestTransportKeysRequireConnection(t *testing.T) {
	m, _ := newTestModel(t)

	for _, k := range []string{"p", "r", "f", "]"} {
		m = press(t, m, k)
		if m.snapshot.Status != state.StatusStopped {
			t.Fatalf("key %q changed status to %q while disconnected", k, m.snapshot.Status)
		}
	}
	if m.snapshot.CurrentClipID != "1" {
		t.Fatalf("clip changed while disconnected: %q", m.snapshot.CurrentClipID)
	}
	if m.flash != "Not connected. Press c to connect." {
		t.Fatalf("flash = %q", m.flash)
	}
}

func TestConnectKeySavesAddressAndConnects(t *testing.T) {
	m, sched := newTestModel(t)

	m = press(t, m, "c")
	if !m.snapshot.Connecting || m.snapshot.Connected {
		t.Fatalf("expected connecting state, got connecting=%v connected=%v", m.snapshot.Connecting, m.snapshot.Connected)
	}
	if !strings.Contains(m.renderHeader(), "CONNECTING") {
		t.Fatalf("header does not show connecting state")
	}

	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if saved.Address != state.DefaultAddress {
		t.Fatalf("saved address = %q, want %q", saved.Address, state.DefaultAddress)
	}

	sched.fire()
	m = update(t, m, changeMsg{})
	if !m.snapshot.Connected {
		t.Fatalf("expected connected after delay")
	}

	m = press(t, m, "c")
	if m.snapshot.Connected || m.snapshot.Connecting {
		t.Fatalf("second c should disconnect")
	}
	if !logContains(m, "Disconnected.") {
		t.Fatalf("log missing disconnect line: %v", m.snapshot.Log)
	}
}

func TestEditAddressConnectsToTypedAddress(t *testing.T) {
	m, sched := newTestModel(t)

	m = press(t, m, "a")
	if !m.editingAddress {
		t.Fatalf("a should start address editing")
	}
	m.addressInput.SetValue("")
	m = press(t, m, "10.1.1.5", "enter")
	if m.editingAddress {
		t.Fatalf("enter should finish editing")
	}
	sched.fire()
	m = update(t, m, changeMsg{})

	if m.snapshot.Address != "10.1.1.5" || !m.snapshot.Connected {
		t.Fatalf("address=%q connected=%v", m.snapshot.Address, m.snapshot.Connected)
	}

	m = press(t, m, "a")
	if m.editingAddress {
		t.Fatalf("address must not be editable while connected")
	}
}

func TestTransportKeys(t *testing.T) {
	m := connectedModel(t)

	tests := []struct {
		key    string
		status state.TransportStatus
		speed  int
		loop   bool
		single bool
	}{
		{"p", state.StatusPlaying, 100, false, false},
		{"l", state.StatusPlaying, 100, true, true},
		{"o", state.StatusPlaying, 100, false, true},
		{"s", state.StatusStopped, 0, false, false},
		{"f", state.StatusShuttle, shuttleSpeed, false, false},
		{"b", state.StatusShuttle, -shuttleSpeed, false, false},
		{"r", state.StatusRecording, -1, false, false},
		{"v", state.StatusPreview, -1, false, false},
	}
	for _, tc := range tests {
		m = press(t, m, tc.key)
		snap := m.snapshot
		// Record and preview keep the previous speed.
		if snap.Status != tc.status || (tc.speed >= 0 && snap.Speed != tc.speed) {
			t.Fatalf("key %q: status=%q speed=%d, want %q/%d", tc.key, snap.Status, snap.Speed, tc.status, tc.speed)
		}
		if tc.status == state.StatusPlaying && (snap.Loop != tc.loop || snap.Single != tc.single) {
			t.Fatalf("key %q: loop=%v single=%v", tc.key, snap.Loop, snap.Single)
		}
	}
}

func TestClipKeys(t *testing.T) {
	m := connectedModel(t)

	m = press(t, m, "]")
	if m.snapshot.CurrentClipID != "2" {
		t.Fatalf("] cued %q, want 2", m.snapshot.CurrentClipID)
	}
	m = press(t, m, "[", "[")
	if m.snapshot.CurrentClipID != "1" {
		t.Fatalf("[ at first clip cued %q, want 1", m.snapshot.CurrentClipID)
	}

	m = press(t, m, "j", "j", "enter")
	if m.snapshot.CurrentClipID != "3" {
		t.Fatalf("enter on third row cued %q, want 3", m.snapshot.CurrentClipID)
	}
	if m.snapshot.Timecode != "02:00:00:00" {
		t.Fatalf("timecode = %q", m.snapshot.Timecode)
	}
}

func TestConfigTab(t *testing.T) {
	m := connectedModel(t)
	m = press(t, m, "2")
	if m.currentTab != TabConfig {
		t.Fatalf("tab = %v", m.currentTab)
	}

	m = press(t, m, "right")
	if m.snapshot.VideoInput != "HDMI" {
		t.Fatalf("video input = %q, want HDMI", m.snapshot.VideoInput)
	}
	m = press(t, m, "left", "left")
	if m.snapshot.VideoInput != "Component" {
		t.Fatalf("video input = %q, want Component", m.snapshot.VideoInput)
	}

	m = press(t, m, "j", "right")
	if m.snapshot.FileFormat != "QuickTimeProRes" {
		t.Fatalf("file format = %q", m.snapshot.FileFormat)
	}

	m = press(t, m, "j", "right")
	if m.snapshot.ActiveSlot != 2 {
		t.Fatalf("slot = %d, want 2", m.snapshot.ActiveSlot)
	}
	if !logContains(m, "Refreshed FTP list for Slot 2") {
		t.Fatalf("log missing slot refresh: %v", m.snapshot.Log)
	}
}

func TestConfigTabRequiresConnection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "right")
	if m.snapshot.VideoInput != state.DefaultVideoInput {
		t.Fatalf("video input changed while disconnected: %q", m.snapshot.VideoInput)
	}
}

func TestFilesDeleteConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3", "j", "x")
	if m.modal == nil {
		t.Fatalf("x should open the delete confirmation")
	}

	next, cmd := m.Update(keyMsg("y"))
	m = next.(Model)
	if m.modal != nil {
		t.Fatalf("confirm should close the modal")
	}
	m = run(t, m, cmd)

	if len(m.snapshot.Files) != 5 {
		t.Fatalf("files = %v", m.snapshot.Files)
	}
	for _, f := range m.snapshot.Files {
		if f == "CAM_A_Reel_002.mov" {
			t.Fatalf("deleted file still listed")
		}
	}
	if !logContains(m, "CMD: delete: CAM_A_Reel_002.mov (via FTP)") {
		t.Fatalf("log missing delete line")
	}
}

func TestFilesDeleteCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3", "x", "n")
	if m.modal != nil {
		t.Fatalf("n should close the modal")
	}
	if len(m.snapshot.Files) != 6 {
		t.Fatalf("cancel removed a file: %v", m.snapshot.Files)
	}
}

func TestFilesRename(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3", "n")
	if m.modal == nil {
		t.Fatalf("n should open the rename prompt")
	}
	m = press(t, m, ".bak")

	next, cmd := m.Update(keyMsg("enter"))
	m = run(t, next.(Model), cmd)

	if got := m.snapshot.Files[0]; got != "CAM_A_Reel_001.mov.bak" {
		t.Fatalf("renamed file = %q", got)
	}
}

func TestRenameSubmit(t *testing.T) {
	submit := renameSubmit("a.mov")
	if msg := submit("  "); msg != nil {
		t.Fatalf("blank name produced %v", msg)
	}
	if msg := submit("a.mov"); msg != nil {
		t.Fatalf("unchanged name produced %v", msg)
	}
	got, ok := submit(" b.mov ").(renameFileMsg)
	if !ok || got.oldName != "a.mov" || got.newName != "b.mov" {
		t.Fatalf("submit = %#v", got)
	}
}

func TestFilesEmptyListing(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3")
	for range 6 {
		m = press(t, m, "x")
		next, cmd := m.Update(keyMsg("y"))
		m = run(t, next.(Model), cmd)
	}
	m = press(t, m, "x")
	if m.modal != nil {
		t.Fatalf("delete on empty listing opened a modal")
	}
	if !strings.Contains(m.View(), emptyFilesText) {
		t.Fatalf("view missing empty listing text")
	}
}

func TestConsoleDispatch(t *testing.T) {
	m := connectedModel(t)
	m = press(t, m, "4", ":")
	if !m.console.inputActive {
		t.Fatalf(": should focus the command line")
	}

	m = press(t, m, "shuttle: speed: 200", "enter")
	if m.snapshot.Status != state.StatusShuttle || m.snapshot.Speed != 200 {
		t.Fatalf("status=%q speed=%d", m.snapshot.Status, m.snapshot.Speed)
	}
	if m.console.input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.console.input.Value())
	}

	m = press(t, m, "esc")
	if m.console.inputActive {
		t.Fatalf("esc should leave the command line")
	}
	// Transport keys work again once the input is closed.
	m = press(t, m, "s")
	if m.snapshot.Status != state.StatusStopped {
		t.Fatalf("status = %q", m.snapshot.Status)
	}
}

func TestConsoleDispatchRequiresConnection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "4", ":", "stop", "enter")

	if logContains(m, "CMD:") {
		t.Fatalf("command sent while disconnected: %v", m.snapshot.Log)
	}
	if m.flash == "" {
		t.Fatalf("expected a not-connected hint")
	}
}

func TestConsoleFollowAndSource(t *testing.T) {
	m, _ := newTestModel(t)
	m.logPath = filepath.Join(t.TempDir(), "decksim.log")
	if err := os.WriteFile(m.logPath, []byte("{\"level\":\"info\",\"message\":\"deck connected\"}\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	m = press(t, m, "4")

	if !m.console.follow {
		t.Fatalf("console should start in follow mode")
	}
	m = press(t, m, " ")
	if m.console.follow {
		t.Fatalf("space should pause follow")
	}
	m = press(t, m, "G")
	if !m.console.follow {
		t.Fatalf("G should resume follow")
	}

	next, cmd := m.Update(keyMsg("i"))
	m = run(t, next.(Model), cmd)
	if m.console.source != consoleSourceApp {
		t.Fatalf("i should switch to the app log")
	}
	if m.console.appErr != nil || len(m.console.appLines) != 1 {
		t.Fatalf("app log lines=%v err=%v", m.console.appLines, m.console.appErr)
	}
	if !strings.Contains(m.View(), "Application Log") {
		t.Fatalf("view missing app log title")
	}

	m = press(t, m, "i")
	if m.console.source != consoleSourceDevice {
		t.Fatalf("i should switch back to the device log")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t)
	want := NextTheme(m.theme.Name)

	m = press(t, m, "T")
	if m.theme.Name != want {
		t.Fatalf("theme = %q, want %q", m.theme.Name, want)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if saved.Theme != want {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, want)
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("? should open help")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m = press(t, m, "p")
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
	if m.flash != "" {
		t.Fatalf("key that closed help was also handled")
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)
	tab := tea.KeyMsg{Type: tea.KeyTab}
	for _, want := range []Tab{TabConfig, TabFiles, TabConsole, TabHome} {
		m = update(t, m, tab)
		if m.currentTab != want {
			t.Fatalf("tab = %v, want %v", m.currentTab, want)
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentTab != TabConsole {
		t.Fatalf("shift+tab = %v, want Console", m.currentTab)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	m := connectedModel(t)
	wants := map[string]Tab{
		"Clip List":      TabHome,
		"VIDEO INPUT":    TabConfig,
		"Test_Pattern":   TabFiles,
		"Device Console": TabConsole,
	}
	for want, tab := range wants {
		m.currentTab = tab
		view := m.View()
		if !strings.Contains(view, want) {
			t.Fatalf("%v view missing %q", tab, want)
		}
		if !strings.Contains(view, "SIMULATION MODE") {
			t.Fatalf("%v view missing header", tab)
		}
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{Logger: zerolog.Nop()})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q", got)
	}
}

func TestWaitForChangeCmd(t *testing.T) {
	if waitForChangeCmd(nil) != nil {
		t.Fatalf("nil channel should produce no command")
	}
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := waitForChangeCmd(ch)().(changeMsg); !ok {
		t.Fatalf("expected changeMsg")
	}
	close(ch)
	if msg := waitForChangeCmd(ch)(); msg != nil {
		t.Fatalf("closed channel produced %v", msg)
	}
}

func TestFlashExpiresOnTick(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFlash("hello")
	m = update(t, m, tickMsg(time.Now()))
	if m.flash != "hello" {
		t.Fatalf("flash cleared early")
	}
	m = update(t, m, tickMsg(time.Now().Add(flashDuration+time.Second)))
	if m.flash != "" {
		t.Fatalf("flash = %q, want cleared", m.flash)
	}
}

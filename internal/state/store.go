package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/decksim/internal/logtail"
	"github.com/five82/decksim/internal/timecode"
)

const (
	// TickInterval is the playback refresh period (25 fps).
	TickInterval = time.Second / timecode.FPS

	// ConnectDelay is how long a simulated connection takes to come up.
	ConnectDelay = 800 * time.Millisecond

	// LogCapacity bounds the console log.
	LogCapacity = 50

	normalSpeed = 100
)

// Option customises a Store.
type Option func(*Store)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(st *Store) {
		if s != nil {
			st.sched = s
		}
	}
}

// WithClock replaces the wall clock used to stamp console log lines.
func WithClock(now func() time.Time) Option {
	return func(st *Store) {
		if now != nil {
			st.now = now
		}
	}
}

// WithLogger attaches an application logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(st *Store) {
		st.logger = logger
	}
}

// WithAddress sets the initial deck address.
func WithAddress(address string) Option {
	return func(st *Store) {
		if address != "" {
			st.address = address
		}
	}
}

// Settings are the configuration values a Store starts with. Zero fields
// keep the defaults.
type Settings struct {
	Slot       int
	VideoInput string
	FileFormat string
}

// Validate checks each non-zero field against Slots, VideoInputs and
// FileFormats.
func (c Settings) Validate() error {
	if c.Slot != 0 && !validSlot(c.Slot) {
		return fmt.Errorf("slot %d: %w", c.Slot, ErrInvalidSlot)
	}
	if c.VideoInput != "" && !contains(VideoInputs, c.VideoInput) {
		return fmt.Errorf("video input %q: %w", c.VideoInput, ErrInvalidConfigValue)
	}
	if c.FileFormat != "" && !contains(FileFormats, c.FileFormat) {
		return fmt.Errorf("file format %q: %w", c.FileFormat, ErrInvalidConfigValue)
	}
	return nil
}

// WithSettings sets the initial slot, video input and file format. Fields that
// fail Validate are ignored.
func WithSettings(c Settings) Option {
	return func(st *Store) {
		if validSlot(c.Slot) {
			st.activeSlot = c.Slot
		}
		if contains(VideoInputs, c.VideoInput) {
			st.videoInput = c.VideoInput
		}
		if contains(FileFormats, c.FileFormat) {
			st.fileFormat = c.FileFormat
		}
	}
}

// Store owns the simulated device state. All mutation goes through its
// action methods, which are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	sched  Scheduler
	now    func() time.Time
	logger zerolog.Logger

	connected  bool
	address    string
	status     TransportStatus
	position   int // frames
	remaining  string
	speed      int
	loop       bool
	single     bool
	activeSlot int
	clipID     string
	videoInput string
	fileFormat string
	rawCommand string
	clips      []Clip
	files      []string
	log        *logtail.Buffer

	// Timer handles. Generations let late callbacks from a cancelled timer
	// detect that they are stale.
	ticker       Timer
	tickGen      uint64
	connectTimer Timer
	connectGen   uint64

	subs    map[int]chan struct{}
	nextSub int
}

// New builds a Store populated with the sample deck contents.
func New(opts ...Option) *Store {
	s := &Store{
		sched:      RealScheduler{},
		now:        time.Now,
		logger:     zerolog.Nop(),
		address:    DefaultAddress,
		status:     StatusStopped,
		remaining:  timecode.Placeholder,
		activeSlot: DefaultSlot,
		videoInput: DefaultVideoInput,
		fileFormat: DefaultFileFormat,
		clips:      sampleClips(),
		files:      sampleFiles(),
		log:        logtail.NewBuffer(LogCapacity),
		subs:       make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clipID = s.clips[0].ID
	s.appendLog(readyMessage)
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Connected:     s.connected,
		Connecting:    s.connectTimer != nil,
		Address:       s.address,
		Status:        s.status,
		Timecode:      timecode.Format(s.position),
		Remaining:     s.remaining,
		Speed:         s.speed,
		Loop:          s.loop,
		Single:        s.single,
		ActiveSlot:    s.activeSlot,
		CurrentClipID: s.clipID,
		VideoInput:    s.videoInput,
		FileFormat:    s.fileFormat,
		RawCommand:    s.rawCommand,
		Clips:         append([]Clip(nil), s.clips...),
		Files:         append([]string(nil), s.files...),
		Log:           s.log.Lines(),
	}
}

// Subscribe returns a channel that receives a signal after state changes.
// Signals coalesce: a slow reader sees one pending signal, not a backlog.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops the playback ticker and any pending connection.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
	s.cancelConnectLocked()
}

// Connect records address and brings the connection up after ConnectDelay.
// A pending connection from an earlier call is abandoned.
func (s *Store) Connect(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = address
	s.appendLog(fmt.Sprintf("Connecting to %s...", address))

	s.cancelConnectLocked()
	gen := s.connectGen
	s.connectTimer = s.sched.AfterFunc(ConnectDelay, func() { s.completeConnect(gen) })
	s.notifyLocked()
}

func (s *Store) completeConnect(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.connectGen || s.connectTimer == nil {
		return
	}
	s.connectTimer = nil
	s.connected = true
	s.appendLog(fmt.Sprintf("Connected to %s", s.address))
	s.appendLog("Protocol version: " + protocolVersion)
	s.appendLog("Model: " + modelName)
	s.notifyLocked()
}

// Disconnect drops the connection and halts playback.
func (s *Store) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.cancelConnectLocked()
	s.connected = false
	s.appendLog("Disconnected.")
	s.notifyLocked()
}

// Play starts playback at normal speed.
func (s *Store) Play(loop, single bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.status = StatusPlaying
	s.loop = loop
	s.single = single
	s.speed = normalSpeed
	s.appendLog(fmt.Sprintf("CMD: play: loop: %t single clip: %t", loop, single))
	s.startTickerLocked()
	s.notifyLocked()
}

// Stop halts the transport.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.status = StatusStopped
	s.speed = 0
	s.appendLog("CMD: stop")
	s.notifyLocked()
}

// Record starts a simulated recording. The position advances at normal rate.
func (s *Store) Record() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.status = StatusRecording
	s.appendLog("CMD: record")
	s.startTickerLocked()
	s.notifyLocked()
}

// Shuttle scans at speed percent of normal; negative values run in reverse.
func (s *Store) Shuttle(speed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	s.status = StatusShuttle
	s.speed = speed
	s.appendLog(fmt.Sprintf("CMD: shuttle: speed: %d", speed))
	s.startTickerLocked()
	s.notifyLocked()
}

// Preview switches the output to the input. The ticker is left alone.
func (s *Store) Preview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusPreview
	s.appendLog("CMD: preview: enable: true")
	s.notifyLocked()
}

// GotoClip cues the clip with id. Unknown ids are ignored.
func (s *Store) GotoClip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gotoLocked(id) {
		s.notifyLocked()
	}
}

// NextClip cues the following clip. With no clip cued it cues the first.
func (s *Store) NextClip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := clipIndex(s.clips, s.clipID)
	if idx < len(s.clips)-1 && s.gotoLocked(s.clips[idx+1].ID) {
		s.notifyLocked()
	}
}

// PrevClip cues the preceding clip.
func (s *Store) PrevClip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := clipIndex(s.clips, s.clipID)
	if idx > 0 && s.gotoLocked(s.clips[idx-1].ID) {
		s.notifyLocked()
	}
}

func (s *Store) gotoLocked(id string) bool {
	idx := clipIndex(s.clips, id)
	if idx < 0 {
		return false
	}
	s.cueLocked(s.clips[idx])
	s.appendLog("CMD: goto: clip id: " + id)
	return true
}

func (s *Store) cueLocked(clip Clip) {
	s.clipID = clip.ID
	s.position = clip.StartFrames
	s.remaining = clip.Duration
}

// SelectSlot makes slot the active storage slot.
func (s *Store) SelectSlot(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validSlot(slot) {
		s.reject(fmt.Sprintf("Rejected slot select: slot id: %d", slot))
		return fmt.Errorf("select slot %d: %w", slot, ErrInvalidSlot)
	}
	s.activeSlot = slot
	s.appendLog(fmt.Sprintf("CMD: slot select: slot id: %d", slot))
	s.appendLog(fmt.Sprintf("Refreshed FTP list for Slot %d", slot))
	s.notifyLocked()
	return nil
}

// DeleteFile removes the first listing entry named name.
func (s *Store) DeleteFile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.files {
		if f == name {
			s.files = append(s.files[:i:i], s.files[i+1:]...)
			break
		}
	}
	s.appendLog(fmt.Sprintf("CMD: delete: %s (via FTP)", name))
	s.notifyLocked()
}

// RenameFile renames listing entries in place.
func (s *Store) RenameFile(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.files {
		if f == oldName {
			s.files[i] = newName
		}
	}
	s.appendLog(fmt.Sprintf("CMD: rename: %s to %s (via FTP)", oldName, newName))
	s.notifyLocked()
}

// SetConfig updates a configuration field. Video input and file format only
// accept values from VideoInputs and FileFormats; raw takes any text.
func (s *Store) SetConfig(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case ConfigVideoInput:
		if !contains(VideoInputs, value) {
			return s.rejectConfig(key, value, ErrInvalidConfigValue)
		}
		s.videoInput = value
	case ConfigFileFormat:
		if !contains(FileFormats, value) {
			return s.rejectConfig(key, value, ErrInvalidConfigValue)
		}
		s.fileFormat = value
	case ConfigRaw:
		s.rawCommand = value
	default:
		return s.rejectConfig(key, value, ErrUnknownConfigKey)
	}
	s.appendLog(fmt.Sprintf("CMD: configuration: %s: %s", key, value))
	s.notifyLocked()
	return nil
}

func (s *Store) rejectConfig(key, value string, err error) error {
	s.reject(fmt.Sprintf("Rejected configuration: %s: %s", key, value))
	return fmt.Errorf("set %s=%q: %w", key, value, err)
}

func (s *Store) reject(msg string) {
	s.logger.Warn().Msg(msg)
	s.appendLog(msg)
	s.notifyLocked()
}

func (s *Store) startTickerLocked() {
	s.stopTickerLocked()
	gen := s.tickGen
	s.ticker = s.sched.Every(TickInterval, func() { s.tick(gen) })
}

func (s *Store) stopTickerLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.tickGen++
}

func (s *Store) cancelConnectLocked() {
	if s.connectTimer != nil {
		s.connectTimer.Stop()
		s.connectTimer = nil
	}
	s.connectGen++
}

func (s *Store) appendLog(msg string) {
	s.log.Append(fmt.Sprintf("[%s] %s", s.now().Format("15:04:05"), msg))
	s.logger.Debug().Str("console", msg).Msg("deck")
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

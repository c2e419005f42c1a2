package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/decksim/internal/config"
	"github.com/five82/decksim/internal/logging"
	"github.com/five82/decksim/internal/prefs"
	"github.com/five82/decksim/internal/state"
	"github.com/five82/decksim/internal/ui"
)

// Options configure the decksim application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/decksim/prefs.toml
	Address    string // overrides prefs and config when set
	LogLevel   string // overrides config when set
}

// Run boots the decksim TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	settings := state.Settings{Slot: cfg.Slot, VideoInput: cfg.VideoInput, FileFormat: cfg.FileFormat}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("deck config: %w", err)
	}

	logFile, err := logging.OpenFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := logging.New(logging.Config{
		Level:  firstNonEmpty(opts.LogLevel, cfg.LogLevel),
		Output: logFile,
	})

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("prefs unreadable, using defaults")
	}

	address := firstNonEmpty(opts.Address, userPrefs.Address, cfg.Address)
	logger.Info().
		Str("address", address).
		Int("slot", cfg.Slot).
		Str("log_path", cfg.LogPath()).
		Msg("decksim starting")

	store := state.New(
		state.WithAddress(address),
		state.WithSettings(settings),
		state.WithLogger(logging.WithComponent(logger, "store")),
	)
	defer store.Close()

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	done := StartMonitor(monitorCtx, store, logging.WithComponent(logger, "monitor"))
	defer func() {
		stopMonitor()
		<-done
	}()

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath(),
		Logger:    logging.WithComponent(logger, "ui"),
	}
	if err := ui.Run(uiOpts); err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		return err
	}
	logger.Info().Msg("decksim stopped")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

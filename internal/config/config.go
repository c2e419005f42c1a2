package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures decksim's startup settings.
type Config struct {
	// Deck
	Address    string
	Slot       int    // 0 keeps the deck default
	VideoInput string // empty keeps the deck default
	FileFormat string // empty keeps the deck default

	// Application log
	LogDir   string
	LogLevel string
}

// ErrInvalidLogLevel reports a log.level outside the accepted names.
var ErrInvalidLogLevel = errors.New("invalid log level")

const (
	defaultConfigPath = "~/.config/decksim/config.toml"
	defaultLogDir     = "~/.local/state/decksim"
	defaultAddress    = "192.168.0.70"
	defaultLogLevel   = "info"
	logFileName       = "decksim.log"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// fileConfig mirrors the on-disk layout.
type fileConfig struct {
	Deck struct {
		Address    string `toml:"address"`
		Slot       int    `toml:"slot"`
		VideoInput string `toml:"video_input"`
		FileFormat string `toml:"file_format"`
	} `toml:"deck"`
	Log struct {
		Dir   string `toml:"dir"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Address:  defaultAddress,
		LogDir:   mustExpand(defaultLogDir),
		LogLevel: defaultLogLevel,
	}
}

// Load reads the config at path (or the default location). A missing file
// yields Default; unknown keys and bad log levels are errors.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var raw fileConfig
	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config %s: unknown keys:\n%s", resolved, strict.String())
		}
		return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return raw.resolve()
}

// resolve applies defaults to blank fields and validates the rest.
func (raw fileConfig) resolve() (Config, error) {
	cfg := Default()
	cfg.Slot = raw.Deck.Slot
	cfg.VideoInput = strings.TrimSpace(raw.Deck.VideoInput)
	cfg.FileFormat = strings.TrimSpace(raw.Deck.FileFormat)

	if addr := strings.TrimSpace(raw.Deck.Address); addr != "" {
		cfg.Address = addr
	}
	if dir := strings.TrimSpace(raw.Log.Dir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.Log.Level)); level != "" {
		if !validLogLevel(level) {
			return Config{}, fmt.Errorf("log.level %q: %w", raw.Log.Level, ErrInvalidLogLevel)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

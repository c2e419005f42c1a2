package state

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidCommand reports a recognised console command with bad parameters.
var ErrInvalidCommand = errors.New("invalid command")

// Dispatch runs a console line against the store. Lines use the deck's text
// protocol form, "command: key: value key: value", for example
// "play: loop: true single clip: false" or "goto: clip id: 3". Lines that are
// not transport, clip, slot or configuration commands are stored as a raw
// command echo.
func (s *Store) Dispatch(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, rest, _ := strings.Cut(line, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "play":
		params := parseParams(rest, "loop", "single clip")
		loop, err := parseBoolParam(params, "loop")
		if err != nil {
			return s.invalid(line, err)
		}
		single, err := parseBoolParam(params, "single clip")
		if err != nil {
			return s.invalid(line, err)
		}
		s.Play(loop, single)
	case "stop":
		s.Stop()
	case "record":
		s.Record()
	case "preview":
		s.Preview()
	case "quit":
		s.Disconnect()
	case "shuttle":
		speed, err := strconv.Atoi(parseParams(rest, "speed")["speed"])
		if err != nil {
			return s.invalid(line, err)
		}
		s.Shuttle(speed)
	case "goto":
		id := parseParams(rest, "clip id")["clip id"]
		switch id {
		case "":
			return s.invalid(line, errors.New("missing clip id"))
		case "+1":
			s.NextClip()
		case "-1":
			s.PrevClip()
		default:
			s.GotoClip(id)
		}
	case "slot select":
		slot, err := strconv.Atoi(parseParams(rest, "slot id")["slot id"])
		if err != nil {
			return s.invalid(line, err)
		}
		return s.SelectSlot(slot)
	case "configuration":
		params := parseParams(rest, "video input", "file format")
		if len(params) == 0 {
			return s.invalid(line, errors.New("no configuration parameter"))
		}
		if v, ok := params["video input"]; ok {
			if err := s.SetConfig(ConfigVideoInput, v); err != nil {
				return err
			}
		}
		if v, ok := params["file format"]; ok {
			if err := s.SetConfig(ConfigFileFormat, v); err != nil {
				return err
			}
		}
	default:
		return s.SetConfig(ConfigRaw, line)
	}
	return nil
}

func (s *Store) invalid(line string, cause error) error {
	s.mu.Lock()
	s.reject("Invalid command: " + line)
	s.mu.Unlock()
	return fmt.Errorf("%w: %q: %v", ErrInvalidCommand, line, cause)
}

// parseParams extracts "key: value" pairs for the known keys from rest. Keys
// match case-insensitively; a value runs until the next known key.
func parseParams(rest string, keys ...string) map[string]string {
	lower := strings.ToLower(rest)

	type hit struct {
		key        string
		start, end int // key label span, including the colon
	}
	var hits []hit
	for _, k := range keys {
		label := k + ":"
		if i := strings.Index(lower, label); i >= 0 {
			hits = append(hits, hit{key: k, start: i, end: i + len(label)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	params := make(map[string]string, len(hits))
	for i, h := range hits {
		end := len(rest)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		params[h.key] = strings.TrimSpace(rest[h.end:end])
	}
	return params
}

func parseBoolParam(params map[string]string, key string) (bool, error) {
	v, ok := params[key]
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

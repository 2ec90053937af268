package ignore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Key names one of the recognized settings.
type Key string

const (
	// KeyExploreTimeout is the delay between two summary lines.
	KeyExploreTimeout Key = "exploreTimeout"
	// KeyReExploreTimeout is the delay between the idle line and the next scan.
	KeyReExploreTimeout Key = "reExploreTimeout"
	// KeyNoIgnoreNodeModules drops node_modules from the ignore set.
	KeyNoIgnoreNodeModules Key = "noIgnoreNodeModules"
)

const (
	// DefaultExploreTimeout is used when exploreTimeout is not set.
	DefaultExploreTimeout = 7000 * time.Millisecond
	// DefaultReExploreTimeout is used when reExploreTimeout is not set.
	DefaultReExploreTimeout = 5000 * time.Millisecond
)

// Keys lists every recognized setting.
var Keys = []Key{KeyExploreTimeout, KeyReExploreTimeout, KeyNoIgnoreNodeModules}

// ParseKey maps a setting name to its Key.
func ParseKey(name string) (Key, bool) {
	for _, k := range Keys {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Settings holds validated values from "@name=value" lines. Durations are
// zero when the key was not assigned.
type Settings struct {
	ExploreTimeout      time.Duration
	ReExploreTimeout    time.Duration
	NoIgnoreNodeModules bool

	assigned []Key
}

// Has reports whether key was assigned a valid value.
func (s Settings) Has(key Key) bool {
	for _, k := range s.assigned {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns the assigned keys in first assignment order.
func (s Settings) Keys() []Key {
	return append([]Key(nil), s.assigned...)
}

// Explore returns the summary interval, falling back to the default.
func (s Settings) Explore() time.Duration {
	if s.ExploreTimeout == 0 {
		return DefaultExploreTimeout
	}
	return s.ExploreTimeout
}

// ReExplore returns the rescan delay, falling back to the default.
func (s Settings) ReExplore() time.Duration {
	if s.ReExploreTimeout == 0 {
		return DefaultReExploreTimeout
	}
	return s.ReExploreTimeout
}

// Set validates value for key and stores it.
func (s *Settings) Set(key Key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyExploreTimeout:
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 2000 || ms >= 25000 {
			return invalidValue(key, value)
		}
		s.ExploreTimeout = time.Duration(ms) * time.Millisecond
	case KeyReExploreTimeout:
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 5000 {
			return invalidValue(key, value)
		}
		s.ReExploreTimeout = time.Duration(ms) * time.Millisecond
	case KeyNoIgnoreNodeModules:
		switch value {
		case "true":
			s.NoIgnoreNodeModules = true
		case "false":
			s.NoIgnoreNodeModules = false
		default:
			return invalidValue(key, value)
		}
	default:
		return fmt.Errorf("%s is not recognized as correct option", key)
	}

	if !s.Has(key) {
		s.assigned = append(s.assigned, key)
	}
	return nil
}

func invalidValue(key Key, value string) error {
	return fmt.Errorf("%s's value '%s' is not correct", key, value)
}

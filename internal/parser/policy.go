package parser

import (
	"fmt"
	"strings"
)

// Mode says what happens to a finding.
type Mode int

const (
	Ignore Mode = iota
	Warn
	Error
)

func (m Mode) String() string {
	switch m {
	case Ignore:
		return "ignore"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ParseMode parses "ignore", "warn" or "error".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "off":
		return Ignore, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Ignore, fmt.Errorf("invalid policy mode %q (must be ignore, warn or error)", s)
	}
}

// Policy configures the checks run after the build.
type Policy struct {
	Unused     Mode
	Overridden Mode
}

// DefaultPolicy warns about unused parameters and ignores overrides.
func DefaultPolicy() Policy {
	return Policy{Unused: Warn, Overridden: Ignore}
}

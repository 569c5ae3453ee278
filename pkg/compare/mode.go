package compare

import (
	"fmt"
	"strings"
)

// Mode selects which part of a filename is used as its comparison key
type Mode string

const (
	// ModeExact compares names with the final extension stripped
	ModeExact Mode = "exact"
	// ModeNumber compares the first run of digits in the name
	ModeNumber Mode = "number"
	// ModePrefix compares the text preceding the first run of digits
	ModePrefix Mode = "prefix"
	// ModeFull compares whole names, extension included
	ModeFull Mode = "full"
)

// Modes lists every supported mode in display order
var Modes = []Mode{ModeExact, ModeNumber, ModePrefix, ModeFull}

var modeAliases = map[string]Mode{
	"exact":                ModeExact,
	"name":                 ModeExact,
	"exact-name":           ModeExact,
	"number":               ModeNumber,
	"leading-number":       ModeNumber,
	"prefix":               ModePrefix,
	"prefix-before-number": ModePrefix,
	"full":                 ModeFull,
	"fullname":             ModeFull,
}

// ParseMode resolves a mode name (case-insensitive, aliases accepted)
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown matching mode: %q (valid: exact, number, prefix, full)", s)
}

// Description returns a short human-readable explanation of the mode
func (m Mode) Description() string {
	switch m {
	case ModeExact:
		return "file name without extension"
	case ModeNumber:
		return "first number in the file name"
	case ModePrefix:
		return "text before the first number"
	case ModeFull:
		return "full file name"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the supported modes
func (m Mode) Valid() bool {
	switch m {
	case ModeExact, ModeNumber, ModePrefix, ModeFull:
		return true
	}
	return false
}

// KeyFunc maps a filename to its key; ok is false when the name has no key
type KeyFunc func(name string) (key string, ok bool)

// KeyFunc returns the extractor for the mode.
// Unknown modes fall back to the full name.
func (m Mode) KeyFunc() KeyFunc {
	switch m {
	case ModeExact:
		return func(name string) (string, bool) { return NameWithoutExt(name), true }
	case ModeNumber:
		return LeadingNumber
	case ModePrefix:
		return func(name string) (string, bool) { return PrefixBeforeNumber(name), true }
	default:
		return func(name string) (string, bool) { return name, true }
	}
}

package compare

import (
	"strings"
	"unicode"
)

// NameWithoutExt strips the final extension from name.
// A dot only starts an extension when a non-dot character precedes it,
// so hidden files such as ".bashrc" are returned unchanged.
func NameWithoutExt(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name
	}
	if strings.TrimLeft(name[:dot], ".") == "" {
		return name
	}
	return name[:dot]
}

// LeadingNumber returns the first maximal run of decimal digits in name.
// The run is returned as text: "007" and "7" are different keys.
func LeadingNumber(name string) (string, bool) {
	start, end := firstDigitRun(name)
	if start < 0 {
		return "", false
	}
	return name[start:end], true
}

// PrefixBeforeNumber returns the text preceding the first digit run,
// or the whole name when it contains no digits.
func PrefixBeforeNumber(name string) string {
	start, _ := firstDigitRun(name)
	if start < 0 {
		return name
	}
	return name[:start]
}

// firstDigitRun returns the byte offsets of the first run of Unicode
// decimal digits, or -1, -1 when there is none.
func firstDigitRun(s string) (int, int) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return start, i
		}
	}
	if start >= 0 {
		return start, len(s)
	}
	return -1, -1
}

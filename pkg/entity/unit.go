package entity

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unit selects how entity offsets and lengths are counted.
type Unit uint8

// Units.
const (
	// UnitBytes counts bytes of the UTF-8 text, matching Go's len.
	UnitBytes Unit = iota

	// UnitRunes counts Unicode code points.
	UnitRunes

	// UnitUTF16 counts UTF-16 code units, as messaging APIs do.
	UnitUTF16
)

// String returns the configuration name of the unit.
func (u Unit) String() string {
	switch u {
	case UnitBytes:
		return "bytes"
	case UnitRunes:
		return "runes"
	case UnitUTF16:
		return "utf16"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is a known unit.
func (u Unit) IsValid() bool {
	return u <= UnitUTF16
}

// ParseUnit converts a configuration name to a Unit. The empty string selects
// UnitBytes.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bytes", "byte":
		return UnitBytes, nil
	case "runes", "rune", "codepoints":
		return UnitRunes, nil
	case "utf16", "utf-16":
		return UnitUTF16, nil
	default:
		return UnitBytes, fmt.Errorf("unknown unit %q (expected bytes, runes or utf16)", name)
	}
}

// ValidUnits returns the accepted unit names.
func ValidUnits() []string {
	return []string{"bytes", "runes", "utf16"}
}

// Len returns the length of s in unit u.
func (u Unit) Len(s string) int {
	switch u {
	case UnitRunes:
		return utf8.RuneCountInString(s)
	case UnitUTF16:
		n := 0
		for _, r := range s {
			n += utf16.RuneLen(r)
		}
		return n
	default:
		return len(s)
	}
}

// ByteOffset converts an offset in unit u into a byte offset in s.
// It reports false when n is negative, past the end of s, or falls inside a
// surrogate pair.
func (u Unit) ByteOffset(s string, n int) (int, bool) {
	if n < 0 {
		return 0, false
	}

	switch u {
	case UnitRunes, UnitUTF16:
		count := 0
		for i, r := range s {
			if count == n {
				return i, true
			}
			if count > n {
				return 0, false
			}
			if u == UnitRunes {
				count++
			} else {
				count += utf16.RuneLen(r)
			}
		}
		if count == n {
			return len(s), true
		}
		return 0, false
	default:
		if n > len(s) {
			return 0, false
		}
		return n, true
	}
}

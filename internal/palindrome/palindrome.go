// Package palindrome checks whether a sequence reads the same forwards and backwards.
package palindrome

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unit is the granularity at which characters are compared
type Unit string

const (
	// Rune compares Unicode code points
	Rune Unit = "rune"
	// Byte compares raw bytes
	Byte Unit = "byte"
)

var ErrUnknownUnit = errors.New("unknown character unit")

// ParseUnit maps a unit name to a Unit. The empty string selects Rune.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rune", "char", "character":
		return Rune, nil
	case "byte", "bytes":
		return Byte, nil
	default:
		return "", fmt.Errorf("%w: %q (valid units: rune, byte)", ErrUnknownUnit, name)
	}
}

// Len returns the length of s counted in u.
func (u Unit) Len(s string) int {
	if u == Byte {
		return len(s)
	}
	return utf8.RuneCountInString(s)
}

// Check reports whether s is a palindrome when compared unit by unit.
func Check(s string, u Unit) bool {
	if u == Byte {
		return IsPalindromeBytes(s)
	}
	return IsPalindrome(s)
}

// IsSymmetric reports whether seq[i] == seq[len(seq)-1-i] for every i.
// It stops at the first mismatched pair and never writes to seq.
func IsSymmetric[T comparable](seq []T) bool {
	left, right := 0, len(seq)-1
	for left < right {
		if seq[left] != seq[right] {
			return false
		}
		left++
		right--
	}
	return true
}

// IsPalindromeBytes reports whether s is a byte-wise palindrome.
func IsPalindromeBytes(s string) bool {
	left, right := 0, len(s)-1
	for left < right {
		if s[left] != s[right] {
			return false
		}
		left++
		right--
	}
	return true
}

// IsPalindrome reports whether s reads the same forwards and backwards,
// comparing code points. It decodes from both ends of the string rather
// than converting to a rune slice, so it does not allocate.
//
// Bytes that are not valid UTF-8 are compared as single raw bytes.
func IsPalindrome(s string) bool {
	left, right := 0, len(s)
	for left < right {
		_, lw := utf8.DecodeRuneInString(s[left:right])
		_, rw := utf8.DecodeLastRuneInString(s[left:right])

		// Pointers met on the middle character
		if left+lw >= right {
			return true
		}

		if s[left:left+lw] != s[right-rw:right] {
			return false
		}
		left += lw
		right -= rw
	}
	return true
}

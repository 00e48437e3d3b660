// Package input acquires candidate strings from a console or other text stream
// and bounds them before they are checked.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/mrled/palcheck/internal/palindrome"
)

const (
	// DefaultMaxLength matches a 100 byte buffer with room for a terminator
	DefaultMaxLength = 99

	// Longest token the scanner will buffer before giving up
	maxScanBytes = 1 << 20
)

var (
	ErrNoInput = errors.New("no input")
	ErrTooLong = errors.New("input too long")
)

// Overlong selects what happens to a token longer than the limit
type Overlong string

const (
	Reject   Overlong = "reject"
	Truncate Overlong = "truncate"
)

// ParseOverlong maps a policy name to an Overlong value. The empty string selects Reject.
func ParseOverlong(name string) (Overlong, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reject":
		return Reject, nil
	case "truncate":
		return Truncate, nil
	default:
		return "", fmt.Errorf("unknown overlong policy %q (valid policies: reject, truncate)", name)
	}
}

// Limit bounds the length of a token, counted in Unit
type Limit struct {
	Max    int
	Unit   palindrome.Unit
	Policy Overlong
}

// DefaultLimit returns a rejecting 99 character limit
func DefaultLimit() Limit {
	return Limit{
		Max:    DefaultMaxLength,
		Unit:   palindrome.Rune,
		Policy: Reject,
	}
}

// Apply returns token unchanged if it fits, otherwise truncates or rejects
// it according to the policy. A non-positive Max disables the limit.
func (l Limit) Apply(token string) (string, error) {
	if l.Max <= 0 {
		return token, nil
	}
	n := l.Unit.Len(token)
	if n <= l.Max {
		return token, nil
	}
	if l.Policy != Truncate {
		return "", fmt.Errorf("%w: %d %ss exceeds maximum of %d", ErrTooLong, n, unitName(l.Unit), l.Max)
	}
	return truncate(token, l.Max, l.Unit), nil
}

func unitName(u palindrome.Unit) string {
	if u == palindrome.Byte {
		return "byte"
	}
	return "character"
}

// truncate cuts s to at most max units. In bytes it never splits a valid
// UTF-8 sequence, so the result may be up to three bytes short of max and
// survives a JSON round trip unchanged.
func truncate(s string, max int, u palindrome.Unit) string {
	if u == palindrome.Byte {
		return s[:byteBoundary(s, max)]
	}
	i := 0
	for count := 0; count < max; count++ {
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return s[:i]
}

// byteBoundary returns the largest cut <= max that does not fall inside a
// valid multi-byte rune. Invalid bytes may be cut anywhere.
func byteBoundary(s string, max int) int {
	for start := max; start >= 0 && max-start < utf8.UTFMax; start-- {
		if !utf8.RuneStart(s[start]) {
			continue
		}
		r, w := utf8.DecodeRuneInString(s[start:])
		if r != utf8.RuneError || w > 1 {
			if start < max && start+w > max {
				return start
			}
		}
		return max
	}
	return max
}

// Reader yields whitespace-delimited tokens from an underlying stream
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a Reader over r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxScanBytes)
	scanner.Split(bufio.ScanWords)
	return &Reader{scanner: scanner}
}

// Next returns the next token. It returns ErrNoInput once the stream is exhausted.
func (r *Reader) Next() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", fmt.Errorf("%w: token exceeds %d bytes", ErrTooLong, maxScanBytes)
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return "", ErrNoInput
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

package model

import (
	"time"

	"github.com/mrled/palcheck/internal/palindrome"
)

// Sources a check can originate from
const (
	SourceCLI    = "cli"
	SourcePrompt = "prompt"
	SourceHTTP   = "http"
)

// CheckRecord describes one completed palindrome check
type CheckRecord struct {
	ID           string
	Input        string
	Unit         palindrome.Unit
	IsPalindrome bool
	Source       string
	CheckTime    time.Time
	Rev          int64
}

// Length returns the length of the input in the record's unit
func (r *CheckRecord) Length() int {
	return r.Unit.Len(r.Input)
}

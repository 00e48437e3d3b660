package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrled/palcheck/internal/palindrome"
)

// ErrInvalidQuery is returned for filter or sort values outside the known sets
var ErrInvalidQuery = errors.New("invalid query")

// Result names accepted by RecordFilter.Results
const (
	ResultPalindrome    = "palindrome"
	ResultNotPalindrome = "not-palindrome"
)

// RecordFilter contains criteria for filtering check records with multiple values per field.
// All criteria are optional; only non-empty slices are applied.
// Within each field, values are combined with OR logic (any value matches).
// Between fields, criteria are combined with AND logic (all fields must match).
type RecordFilter struct {
	// Results filters by outcome: "palindrome" or "not-palindrome"
	Results []string

	// Sources filters by where the check came from (case-insensitive)
	Sources []string

	// Units filters by comparison unit
	Units []string
}

// IsEmpty reports whether the filter has no criteria
func (f RecordFilter) IsEmpty() bool {
	return len(f.Results) == 0 && len(f.Sources) == 0 && len(f.Units) == 0
}

// Validate rejects result, source and unit values that can never match a record
func (f RecordFilter) Validate() error {
	checks := []struct {
		field   string
		values  []string
		allowed []string
	}{
		{"result", f.Results, []string{ResultPalindrome, ResultNotPalindrome}},
		{"source", f.Sources, []string{SourceCLI, SourcePrompt, SourceHTTP}},
		{"unit", f.Units, []string{string(palindrome.Rune), string(palindrome.Byte)}},
	}
	for _, c := range checks {
		for _, v := range c.values {
			if !contains(c.allowed, strings.ToLower(v)) {
				return fmt.Errorf("%w: unknown %s %q (valid values: %s)", ErrInvalidQuery, c.field, v, strings.Join(c.allowed, ", "))
			}
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

// ResultName returns the filter name for a check outcome
func ResultName(isPalindrome bool) string {
	if isPalindrome {
		return ResultPalindrome
	}
	return ResultNotPalindrome
}

// FilterRecords returns a new slice containing only records that match the filter.
// An empty filter returns records unchanged.
func FilterRecords(records []*CheckRecord, filter RecordFilter) []*CheckRecord {
	if filter.IsEmpty() {
		return records
	}

	results := lowerSet(filter.Results)
	sources := lowerSet(filter.Sources)
	units := lowerSet(filter.Units)

	var filtered []*CheckRecord
	for _, record := range records {
		if len(results) > 0 && !results[ResultName(record.IsPalindrome)] {
			continue
		}
		if len(sources) > 0 && !sources[strings.ToLower(record.Source)] {
			continue
		}
		if len(units) > 0 && !units[strings.ToLower(string(record.Unit))] {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

package model

import (
	"fmt"
	"sort"
)

// SortBy specifies the field and order for sorting check records
type SortBy string

const (
	SortByInput   SortBy = "input"
	SortByLength  SortBy = "length"
	SortByResult  SortBy = "result"
	SortBySource  SortBy = "source"
	SortByTime    SortBy = "time"
	SortByDefault SortBy = "" // Default sort: check time, then ID
)

// ParseSortBy validates a sort field name. The empty string selects the default order.
func ParseSortBy(name string) (SortBy, error) {
	switch by := SortBy(name); by {
	case SortByDefault, SortByInput, SortByLength, SortByResult, SortBySource, SortByTime:
		return by, nil
	default:
		return "", fmt.Errorf("%w: unknown sort field %q (valid fields: input, length, result, source, time)", ErrInvalidQuery, name)
	}
}

// SortRecords sorts records in place. Unrecognized fields use the default
// order: newest check first, ties broken by ID.
func SortRecords(records []*CheckRecord, sortBy string) {
	newestFirst := func(i, j int) bool {
		if !records[i].CheckTime.Equal(records[j].CheckTime) {
			return records[i].CheckTime.After(records[j].CheckTime)
		}
		return records[i].ID < records[j].ID
	}

	switch SortBy(sortBy) {
	case SortByInput:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Input < records[j].Input
		})
	case SortByLength:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Length() < records[j].Length()
		})
	case SortByResult:
		// Palindromes first
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].IsPalindrome && !records[j].IsPalindrome
		})
	case SortBySource:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Source < records[j].Source
		})
	default:
		sort.SliceStable(records, newestFirst)
	}
}

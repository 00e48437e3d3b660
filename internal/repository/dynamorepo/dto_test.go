package dynamorepo

import (
	"testing"
	"time"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
)

func TestFromDomain(t *testing.T) {
	testTime := time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)

	record := &model.CheckRecord{
		ID:           "abc123",
		Input:        "racecar",
		Unit:         palindrome.Rune,
		IsPalindrome: true,
		Source:       model.SourceHTTP,
		CheckTime:    testTime,
		Rev:          2,
	}

	dto := FromDomain(record)

	if dto.PK != "abc123" {
		t.Errorf("Expected PK to be 'abc123', got '%s'", dto.PK)
	}
	if dto.Input != record.Input || dto.Unit != record.Unit || dto.IsPalindrome != record.IsPalindrome {
		t.Errorf("Check fields not preserved: %+v", dto)
	}
	if dto.Source != record.Source || dto.Rev != record.Rev {
		t.Errorf("Metadata not preserved: %+v", dto)
	}
	if !dto.CheckTime.Equal(testTime) {
		t.Errorf("Expected CheckTime to be '%s', got '%s'", testTime, dto.CheckTime)
	}
}

func TestToDomain(t *testing.T) {
	dto := &DynamoDTO{
		PK:           "def456",
		Input:        "hello",
		Unit:         palindrome.Byte,
		IsPalindrome: false,
		Source:       model.SourceCLI,
		CheckTime:    time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
		Rev:          1,
	}

	record := dto.ToDomain()

	if record.ID != "def456" {
		t.Errorf("Expected ID to be 'def456', got '%s'", record.ID)
	}
	if record.Input != "hello" || record.Unit != palindrome.Byte || record.IsPalindrome {
		t.Errorf("Check fields not preserved: %+v", record)
	}
	if record.Source != model.SourceCLI || record.Rev != 1 {
		t.Errorf("Metadata not preserved: %+v", record)
	}
}

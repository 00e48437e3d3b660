package dynamorepo

import (
	"time"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
)

// DynamoDTO is the persistence shape of a CheckRecord.
// The partition key pk holds the record ID; the table has no sort key.
type DynamoDTO struct {
	PK           string          `dynamodbav:"pk"`
	Input        string          `dynamodbav:"Input"`
	Unit         palindrome.Unit `dynamodbav:"Unit"`
	IsPalindrome bool            `dynamodbav:"IsPalindrome"`
	Source       string          `dynamodbav:"Source"`
	CheckTime    time.Time       `dynamodbav:"CheckTime"`
	Rev          int64           `dynamodbav:"Rev"`
}

// ToDomain converts a DynamoDTO to a CheckRecord
func (dto *DynamoDTO) ToDomain() *model.CheckRecord {
	return &model.CheckRecord{
		ID:           dto.PK,
		Input:        dto.Input,
		Unit:         dto.Unit,
		IsPalindrome: dto.IsPalindrome,
		Source:       dto.Source,
		CheckTime:    dto.CheckTime,
		Rev:          dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a CheckRecord
func FromDomain(record *model.CheckRecord) *DynamoDTO {
	return &DynamoDTO{
		PK:           record.ID,
		Input:        record.Input,
		Unit:         record.Unit,
		IsPalindrome: record.IsPalindrome,
		Source:       record.Source,
		CheckTime:    record.CheckTime,
		Rev:          record.Rev,
	}
}

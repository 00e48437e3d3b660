package dynamostream

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
)

// ConvertToCheckRecord converts a DynamoDB stream NewImage to a CheckRecord.
// The image has the attribute layout written by dynamorepo.
func ConvertToCheckRecord(newImage map[string]events.DynamoDBAttributeValue) (*model.CheckRecord, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	record := &model.CheckRecord{
		ID:     ExtractStringAttribute(newImage, "pk"),
		Input:  ExtractStringAttribute(newImage, "Input"),
		Source: ExtractStringAttribute(newImage, "Source"),
	}
	if record.ID == "" {
		return nil, fmt.Errorf("missing required field: ID (pk)")
	}

	// Input may legitimately be empty, but the attribute must be present
	if attr, ok := newImage["Input"]; !ok || attr.DataType() != events.DataTypeString {
		return nil, fmt.Errorf("missing required field: Input")
	}

	unit, err := palindrome.ParseUnit(ExtractStringAttribute(newImage, "Unit"))
	if err != nil {
		return nil, fmt.Errorf("invalid Unit: %w", err)
	}
	record.Unit = unit

	if attr, ok := newImage["IsPalindrome"]; ok && attr.DataType() == events.DataTypeBoolean {
		record.IsPalindrome = attr.Boolean()
	} else {
		return nil, fmt.Errorf("missing required field: IsPalindrome")
	}

	checkTime := ExtractStringAttribute(newImage, "CheckTime")
	if checkTime == "" {
		return nil, fmt.Errorf("missing required field: CheckTime")
	}
	t, err := time.Parse(time.RFC3339Nano, checkTime)
	if err != nil {
		return nil, fmt.Errorf("invalid CheckTime format: %w", err)
	}
	record.CheckTime = t

	if attr, ok := newImage["Rev"]; ok && attr.DataType() == events.DataTypeNumber {
		rev, err := strconv.ParseInt(attr.Number(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Rev: %w", err)
		}
		record.Rev = rev
	}

	return record, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}

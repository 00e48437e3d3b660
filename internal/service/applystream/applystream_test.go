package applystream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/palindrome"
	"github.com/mrled/palcheck/internal/repository/memrepo"
)

type fakeView struct {
	loaded  *memrepo.MemoryRepository
	loadErr error
	saved   []*model.CheckRecord
	saves   int
}

func (f *fakeView) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loaded, nil
}

func (f *fakeView) Save(ctx context.Context, records []*model.CheckRecord) error {
	f.saves++
	f.saved = records
	return nil
}

func insert(id, input string, isPalindrome bool, rev string) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventID:   "evt-" + id,
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			NewImage: map[string]events.DynamoDBAttributeValue{
				"pk":           events.NewStringAttribute(id),
				"Input":        events.NewStringAttribute(input),
				"Unit":         events.NewStringAttribute("rune"),
				"IsPalindrome": events.NewBooleanAttribute(isPalindrome),
				"Source":       events.NewStringAttribute("http"),
				"CheckTime":    events.NewStringAttribute("2025-10-30T12:00:00Z"),
				"Rev":          events.NewNumberAttribute(rev),
			},
		},
	}
}

func remove(id string) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventID:   "evt-rm-" + id,
		EventName: "REMOVE",
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"pk": events.NewStringAttribute(id),
			},
		},
	}
}

func ids(records []*model.CheckRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestProcessStreamBatch_AppliesChanges(t *testing.T) {
	ctx := context.Background()
	existing := memrepo.NewMemoryRepository()
	require.NoError(t, existing.Store(ctx, &model.CheckRecord{
		ID: "old", Input: "noon", Unit: palindrome.Rune, IsPalindrome: true,
		Source: model.SourceCLI, CheckTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	view := &fakeView{loaded: existing}
	err := New(view).ProcessStreamBatch(ctx, []events.DynamoDBEventRecord{
		insert("a", "racecar", true, "1"),
		insert("b", "hello", false, "1"),
		remove("old"),
		remove("never-existed"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, view.saves)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(view.saved))
}

func TestProcessStreamBatch_ModifyKeepsTableRevision(t *testing.T) {
	ctx := context.Background()
	view := &fakeView{loaded: memrepo.NewMemoryRepository()}

	modify := insert("a", "racecar", true, "5")
	modify.EventName = "MODIFY"
	require.NoError(t, New(view).ProcessStreamBatch(ctx, []events.DynamoDBEventRecord{
		insert("a", "racecar", true, "4"),
		modify,
	}))

	require.Len(t, view.saved, 1)
	assert.Equal(t, int64(5), view.saved[0].Rev)
}

func TestProcessStreamBatch_MissingViewStartsEmpty(t *testing.T) {
	view := &fakeView{loadErr: errors.New("NoSuchKey")}

	err := New(view).ProcessStreamBatch(context.Background(), []events.DynamoDBEventRecord{
		insert("a", "abba", true, "1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(view.saved))
}

func TestProcessStreamBatch_BadRecordsAreSkipped(t *testing.T) {
	view := &fakeView{loaded: memrepo.NewMemoryRepository()}

	bad := insert("x", "abba", true, "1")
	delete(bad.Change.NewImage, "CheckTime")
	unknown := insert("y", "abba", true, "1")
	unknown.EventName = "TRUNCATE"

	err := New(view).ProcessStreamBatch(context.Background(), []events.DynamoDBEventRecord{
		bad,
		unknown,
		remove(""),
		insert("a", "abba", true, "1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(view.saved))
}

func TestProcessStreamBatch_TableRevisionReplacesViewRevision(t *testing.T) {
	ctx := context.Background()
	existing := memrepo.NewMemoryRepository()
	stale := &model.CheckRecord{ID: "a", Input: "racecar", Unit: palindrome.Rune, IsPalindrome: true, Rev: 9}
	require.NoError(t, existing.Put(ctx, stale))

	view := &fakeView{loaded: existing}
	require.NoError(t, New(view).ProcessStreamBatch(ctx, []events.DynamoDBEventRecord{
		insert("a", "racecar", true, "2"),
	}))

	require.Len(t, view.saved, 1)
	assert.Equal(t, int64(2), view.saved[0].Rev)
}

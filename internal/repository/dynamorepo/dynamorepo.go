package dynamorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mrled/palcheck/internal/model"
)

// API is the subset of the DynamoDB client used by the repository
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository is a DynamoDB implementation of CheckRepository
type DynamoRepository struct {
	client    API
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client API, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailure(err error) bool {
	var ccfe *types.ConditionalCheckFailedException
	return errors.As(err, &ccfe)
}

// Store saves a record, returning ErrAlreadyExists if the ID is taken
func (r *DynamoRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return fmt.Errorf("check record cannot be nil")
	}
	if record.Rev == 0 {
		record.Rev = 1
	}

	item, err := attributevalue.MarshalMap(FromDomain(record))
	if err != nil {
		return fmt.Errorf("failed to marshal check record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		if isConditionFailure(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store check record: %w", err)
	}

	return nil
}

// Get retrieves a record by ID
func (r *DynamoRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyFor(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get check record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all records, following scan pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	var records []*model.CheckRecord

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check records: %w", err)
		}

		var dtos []*DynamoDTO
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal check records: %w", err)
		}
		for _, dto := range dtos {
			records = append(records, dto.ToDomain())
		}
	}

	return records, nil
}

// Delete removes a record by ID, returning ErrNotFound if it does not exist
func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 keyFor(id),
		ConditionExpression: aws.String("attribute_exists(pk)"),
	})
	if err != nil {
		if isConditionFailure(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete check record: %w", err)
	}

	return nil
}

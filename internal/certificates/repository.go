package certificates

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Repository interface {
	// Get returns the record for id, or (nil, nil) when none exists.
	Get(ctx context.Context, id string) (*Record, error)
	// Insert writes the record only if no record with the same id
	// exists yet. It returns false when a concurrent writer won the
	// race; that is not an error.
	Insert(ctx context.Context, rec *Record) (bool, error)
	// List returns up to limit issued records.
	List(ctx context.Context, limit int32) ([]Record, error)
}

// dynamoAPI is the slice of the DynamoDB client the repository needs.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type dynamoRepository struct {
	client dynamoAPI
	table  string
}

func NewRepository(client dynamoAPI, table string) Repository {
	return &dynamoRepository{client: client, table: table}
}

func (r *dynamoRepository) Get(ctx context.Context, id string) (*Record, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting record %q: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshalling record %q: %w", id, err)
	}
	return &rec, nil
}

func (r *dynamoRepository) Insert(ctx context.Context, rec *Record) (bool, error) {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshalling record %q: %w", rec.ID, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, fmt.Errorf("inserting record %q: %w", rec.ID, err)
	}
	return true, nil
}

func (r *dynamoRepository) List(ctx context.Context, limit int32) ([]Record, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
		Limit:     aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}

	var recs []Record
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &recs); err != nil {
		return nil, fmt.Errorf("unmarshalling records: %w", err)
	}
	return recs, nil
}

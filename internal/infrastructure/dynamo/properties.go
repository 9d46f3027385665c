package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/estate-api/internal/domain"
)

// PropertyRepo provides typed DynamoDB operations for the properties table.
type PropertyRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPropertyRepo(client *dynamodb.Client, tableName string) *PropertyRepo {
	return &PropertyRepo{client: client, tableName: tableName}
}

func (r *PropertyRepo) Put(ctx context.Context, p *domain.Property) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal property: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PropertyRepo) Get(ctx context.Context, propertyID string) (*domain.Property, error) {
	p, err := getOne[domain.Property](ctx, r.client, r.tableName, "property_id", propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("property not found: %w", domain.ErrNotFound)
	}
	return p, nil
}

// ListByOwner returns the owner's listings via the owner_id GSI.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("owner_id-index"),
		KeyConditionExpression:    aws.String("owner_id = :o"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":o": &types.AttributeValueMemberS{Value: ownerID}},
	})
	if err != nil {
		return nil, err
	}
	var props []domain.Property
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func (r *PropertyRepo) Update(ctx context.Context, propertyID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("property_id", propertyID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *PropertyRepo) Delete(ctx context.Context, propertyID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("property_id", propertyID),
	})
	return err
}

// IncrementViews bumps the view counter without a read-modify-write cycle.
func (r *PropertyRepo) IncrementViews(ctx context.Context, propertyID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("property_id", propertyID),
		UpdateExpression: aws.String("ADD #v :one"),
		ExpressionAttributeNames: map[string]string{
			"#v": "views",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	return err
}

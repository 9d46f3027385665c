package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/estate-api/internal/domain"
)

// BuilderRepo provides typed DynamoDB operations for the builders table.
type BuilderRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBuilderRepo(client *dynamodb.Client, tableName string) *BuilderRepo {
	return &BuilderRepo{client: client, tableName: tableName}
}

func (r *BuilderRepo) Put(ctx context.Context, b *domain.Builder) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal builder: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BuilderRepo) Get(ctx context.Context, builderID string) (*domain.Builder, error) {
	b, err := getOne[domain.Builder](ctx, r.client, r.tableName, "builder_id", builderID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("builder not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (r *BuilderRepo) GetByPhone(ctx context.Context, phone string) (*domain.Builder, error) {
	b, err := queryOne[domain.Builder](ctx, r.client, r.tableName, "phone_number-index", "phone_number", phone)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("builder not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (r *BuilderRepo) GetByEmail(ctx context.Context, email string) (*domain.Builder, error) {
	b, err := queryOne[domain.Builder](ctx, r.client, r.tableName, "email-index", "email", email)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("builder not found: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (r *BuilderRepo) Update(ctx context.Context, builderID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("builder_id", builderID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// SetVerified marks the builder's phone as verified.
func (r *BuilderRepo) SetVerified(ctx context.Context, builderID string) error {
	return r.Update(ctx, builderID, map[string]interface{}{"verified": true})
}

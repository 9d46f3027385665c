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

// CustomerRepo provides typed DynamoDB operations for the customers table.
type CustomerRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCustomerRepo(client *dynamodb.Client, tableName string) *CustomerRepo {
	return &CustomerRepo{client: client, tableName: tableName}
}

func (r *CustomerRepo) Put(ctx context.Context, c *domain.Customer) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CustomerRepo) Get(ctx context.Context, customerID string) (*domain.Customer, error) {
	c, err := getOne[domain.Customer](ctx, r.client, r.tableName, "customer_id", customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	c, err := queryOne[domain.Customer](ctx, r.client, r.tableName, "phone_number-index", "phone_number", phone)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, err := queryOne[domain.Customer](ctx, r.client, r.tableName, "email-index", "email", email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, customerID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("customer_id", customerID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// SetVerified marks the customer's phone as verified.
func (r *CustomerRepo) SetVerified(ctx context.Context, customerID string) error {
	return r.Update(ctx, customerID, map[string]interface{}{"verified": true})
}

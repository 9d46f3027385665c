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

// InquiryRepo provides typed DynamoDB operations for the inquiries table.
type InquiryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInquiryRepo(client *dynamodb.Client, tableName string) *InquiryRepo {
	return &InquiryRepo{client: client, tableName: tableName}
}

func (r *InquiryRepo) Put(ctx context.Context, q *domain.Inquiry) error {
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		return fmt.Errorf("marshal inquiry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InquiryRepo) Get(ctx context.Context, inquiryID string) (*domain.Inquiry, error) {
	q, err := getOne[domain.Inquiry](ctx, r.client, r.tableName, "inquiry_id", inquiryID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("inquiry not found: %w", domain.ErrNotFound)
	}
	return q, nil
}

// Scan returns every inquiry. The inquiry volume is small enough that a
// table scan is acceptable here, mirroring the listing endpoint's semantics.
func (r *InquiryRepo) Scan(ctx context.Context) ([]domain.Inquiry, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var items []domain.Inquiry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InquiryRepo) Update(ctx context.Context, inquiryID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("inquiry_id", inquiryID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *InquiryRepo) Delete(ctx context.Context, inquiryID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("inquiry_id", inquiryID),
	})
	return err
}

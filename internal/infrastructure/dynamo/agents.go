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

// AgentRepo provides typed DynamoDB operations for the agents table.
type AgentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAgentRepo(client *dynamodb.Client, tableName string) *AgentRepo {
	return &AgentRepo{client: client, tableName: tableName}
}

func (r *AgentRepo) Put(ctx context.Context, a *domain.Agent) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal agent: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AgentRepo) Get(ctx context.Context, agentID string) (*domain.Agent, error) {
	a, err := getOne[domain.Agent](ctx, r.client, r.tableName, "agent_id", agentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("agent not found: %w", domain.ErrNotFound)
	}
	return a, nil
}

func (r *AgentRepo) GetByPhone(ctx context.Context, phone string) (*domain.Agent, error) {
	a, err := queryOne[domain.Agent](ctx, r.client, r.tableName, "phone_number-index", "phone_number", phone)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("agent not found: %w", domain.ErrNotFound)
	}
	return a, nil
}

func (r *AgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	a, err := queryOne[domain.Agent](ctx, r.client, r.tableName, "email-index", "email", email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("agent not found: %w", domain.ErrNotFound)
	}
	return a, nil
}

func (r *AgentRepo) Update(ctx context.Context, agentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("agent_id", agentID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// SetVerified marks the agent's phone as verified.
func (r *AgentRepo) SetVerified(ctx context.Context, agentID string) error {
	return r.Update(ctx, agentID, map[string]interface{}{"verified": true})
}

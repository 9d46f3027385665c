package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/estate-api/internal/domain"
)

// CustomerStore is the slice of the customer repository the resolver needs.
type CustomerStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	SetVerified(ctx context.Context, customerID string) error
}

// AgentStore is the slice of the agent repository the resolver needs.
type AgentStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Agent, error)
	SetVerified(ctx context.Context, agentID string) error
}

// BuilderStore is the slice of the builder repository the resolver needs.
type BuilderStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Builder, error)
	SetVerified(ctx context.Context, builderID string) error
}

// Resolver maps a phone number to the identity collection that owns it.
//
// Phone numbers are unique only within each collection, so the same phone
// registered as both a customer and an agent is possible; probe order
// (customer, then agent, then builder) is the tie-break. This mirrors the
// storage layer's uniqueness gap deliberately rather than papering over it.
type Resolver struct {
	customers CustomerStore
	agents    AgentStore
	builders  BuilderStore
}

func NewResolver(customers CustomerStore, agents AgentStore, builders BuilderStore) *Resolver {
	return &Resolver{customers: customers, agents: agents, builders: builders}
}

// ResolveByPhone probes the three collections in fixed order and returns the
// first match as a kind-tagged identity, or ErrNotFound when no collection
// owns the number.
func (r *Resolver) ResolveByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	if c, err := r.customers.GetByPhone(ctx, phone); err == nil {
		return c.Identity(), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if a, err := r.agents.GetByPhone(ctx, phone); err == nil {
		return a.Identity(), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if b, err := r.builders.GetByPhone(ctx, phone); err == nil {
		return b.Identity(), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("no account for phone number: %w", domain.ErrNotFound)
}

// MarkVerified persists the verified flag on the identity's backing record.
func (r *Resolver) MarkVerified(ctx context.Context, ident *domain.Identity) error {
	switch ident.Kind {
	case domain.KindCustomer:
		return r.customers.SetVerified(ctx, ident.ID)
	case domain.KindAgent:
		return r.agents.SetVerified(ctx, ident.ID)
	case domain.KindBuilder:
		return r.builders.SetVerified(ctx, ident.ID)
	default:
		return fmt.Errorf("unknown identity kind %q: %w", ident.Kind, domain.ErrBadRequest)
	}
}

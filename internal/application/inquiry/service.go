package inquiry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/estate-api/internal/domain"
	"github.com/estate-api/internal/pkg/id"
	"github.com/estate-api/internal/pkg/validate"
)

type CreateRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

type Store interface {
	Put(ctx context.Context, q *domain.Inquiry) error
	Get(ctx context.Context, inquiryID string) (*domain.Inquiry, error)
	Scan(ctx context.Context) ([]domain.Inquiry, error)
	Update(ctx context.Context, inquiryID string, updates map[string]interface{}) error
	Delete(ctx context.Context, inquiryID string) error
}

// PropertyStore is the slice of the property repository inquiries need: a
// listing must exist before it can be inquired about.
type PropertyStore interface {
	Get(ctx context.Context, propertyID string) (*domain.Property, error)
}

type Service struct {
	store      Store
	properties PropertyStore
}

func NewService(store Store, properties PropertyStore) *Service {
	return &Service{store: store, properties: properties}
}

// Create records a customer inquiry about a listing.
func (s *Service) Create(ctx context.Context, customerID string, req CreateRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.properties.Get(ctx, req.PropertyID); err != nil {
		return "", err
	}
	now := time.Now().UTC()
	q := &domain.Inquiry{
		InquiryID:  id.New(),
		PropertyID: req.PropertyID,
		CustomerID: customerID,
		Message:    req.Message,
		Status:     domain.InquiryPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ctx, q); err != nil {
		return "", err
	}
	slog.Info("inquiry created", "inquiry_id", q.InquiryID, "property_id", q.PropertyID)
	return q.InquiryID, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Inquiry, error) {
	return s.store.Scan(ctx)
}

// UpdateStatus moves an inquiry between pending and responded.
func (s *Service) UpdateStatus(ctx context.Context, inquiryID, status string) error {
	if status != domain.InquiryPending && status != domain.InquiryResponded {
		return fmt.Errorf("invalid status value: %w", domain.ErrBadRequest)
	}
	if _, err := s.store.Get(ctx, inquiryID); err != nil {
		return err
	}
	return s.store.Update(ctx, inquiryID, map[string]interface{}{"status": status})
}

func (s *Service) Delete(ctx context.Context, inquiryID string) error {
	if _, err := s.store.Get(ctx, inquiryID); err != nil {
		return err
	}
	return s.store.Delete(ctx, inquiryID)
}

package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/estate-api/internal/domain"
	"github.com/estate-api/internal/pkg/id"
	"github.com/estate-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type RegisterCustomerRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Email       string `json:"email" validate:"required,email"`
	FullName    string `json:"full_name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type RegisterAgentRequest struct {
	PhoneNumber       string          `json:"phone_number" validate:"required,phone"`
	Email             string          `json:"email" validate:"required,email"`
	FullName          string          `json:"full_name" validate:"required"`
	Password          string          `json:"password" validate:"required,min=8,max=72"`
	Agency            string          `json:"agency"`
	Specialization    string          `json:"specialization" validate:"required"`
	YearsOfExperience int             `json:"years_of_experience"`
	Location          domain.Location `json:"location"`
}

type RegisterBuilderRequest struct {
	PhoneNumber       string          `json:"phone_number" validate:"required,phone"`
	Email             string          `json:"email" validate:"required,email"`
	FullName          string          `json:"full_name" validate:"required"`
	Password          string          `json:"password" validate:"required,min=8,max=72"`
	CompanyName       string          `json:"company_name"`
	Specialization    string          `json:"specialization" validate:"required"`
	YearsOfExperience int             `json:"years_of_experience"`
	SubscriptionPlan  string          `json:"subscription_plan" validate:"required,oneof=Basic Premium"`
	Location          domain.Location `json:"location"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name"`
}

// RegisterResult carries the new account id plus the correlation id of the
// verification OTP dispatched during registration.
type RegisterResult struct {
	UserID    string `json:"userId"`
	RequestID string `json:"requestId"`
}

type CustomerStore interface {
	Put(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customerID string, updates map[string]interface{}) error
}

type AgentStore interface {
	Put(ctx context.Context, a *domain.Agent) error
	Get(ctx context.Context, agentID string) (*domain.Agent, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	Update(ctx context.Context, agentID string, updates map[string]interface{}) error
}

type BuilderStore interface {
	Put(ctx context.Context, b *domain.Builder) error
	Get(ctx context.Context, builderID string) (*domain.Builder, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Builder, error)
	GetByEmail(ctx context.Context, email string) (*domain.Builder, error)
	Update(ctx context.Context, builderID string, updates map[string]interface{}) error
}

// OTPIssuer dispatches a verification code during registration.
type OTPIssuer interface {
	Issue(ctx context.Context, phoneNumber string) (string, error)
}

// ObjectStore persists profile images.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Service handles registration and profile management for all three
// identity kinds.
type Service struct {
	customers CustomerStore
	agents    AgentStore
	builders  BuilderStore
	otp       OTPIssuer
	media     ObjectStore
}

func NewService(customers CustomerStore, agents AgentStore, builders BuilderStore, otp OTPIssuer, media ObjectStore) *Service {
	return &Service{customers: customers, agents: agents, builders: builders, otp: otp, media: media}
}

// RegisterCustomer creates an unverified customer account and dispatches a
// verification OTP. Password hashing happens here, explicitly, before the
// storage call, never as a storage-layer side effect.
func (s *Service) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.customers.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.customers.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Customer{
		CustomerID:   id.New(),
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Favorites:    []string{},
		Shortlists:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customers.Put(ctx, c); err != nil {
		return nil, err
	}

	requestID, err := s.otp.Issue(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	slog.Info("customer registered", "customer_id", c.CustomerID, "phone_number", c.PhoneNumber)
	return &RegisterResult{UserID: c.CustomerID, RequestID: requestID}, nil
}

// RegisterAgent creates an unverified agent account and dispatches a
// verification OTP.
func (s *Service) RegisterAgent(ctx context.Context, req RegisterAgentRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.agents.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.agents.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Agent{
		AgentID:           id.New(),
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		FullName:          req.FullName,
		PasswordHash:      hash,
		Agency:            req.Agency,
		Specialization:    req.Specialization,
		YearsOfExperience: req.YearsOfExperience,
		Location:          req.Location,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.agents.Put(ctx, a); err != nil {
		return nil, err
	}

	requestID, err := s.otp.Issue(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	slog.Info("agent registered", "agent_id", a.AgentID, "phone_number", a.PhoneNumber)
	return &RegisterResult{UserID: a.AgentID, RequestID: requestID}, nil
}

// RegisterBuilder creates an unverified builder account and dispatches a
// verification OTP.
func (s *Service) RegisterBuilder(ctx context.Context, req RegisterBuilderRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.builders.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.builders.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	b := &domain.Builder{
		BuilderID:         id.New(),
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		FullName:          req.FullName,
		PasswordHash:      hash,
		CompanyName:       req.CompanyName,
		Specialization:    req.Specialization,
		YearsOfExperience: req.YearsOfExperience,
		SubscriptionPlan:  req.SubscriptionPlan,
		Location:          req.Location,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.builders.Put(ctx, b); err != nil {
		return nil, err
	}

	requestID, err := s.otp.Issue(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	slog.Info("builder registered", "builder_id", b.BuilderID, "phone_number", b.PhoneNumber)
	return &RegisterResult{UserID: b.BuilderID, RequestID: requestID}, nil
}

// Profile returns the full record for the given identity, dispatched by kind.
func (s *Service) Profile(ctx context.Context, kind domain.IdentityKind, userID string) (interface{}, error) {
	switch kind {
	case domain.KindCustomer:
		return s.customers.Get(ctx, userID)
	case domain.KindAgent:
		return s.agents.Get(ctx, userID)
	case domain.KindBuilder:
		return s.builders.Get(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown identity kind %q: %w", kind, domain.ErrBadRequest)
	}
}

// UpdateProfile applies the common editable fields for any identity kind.
func (s *Service) UpdateProfile(ctx context.Context, kind domain.IdentityKind, userID string, req UpdateProfileRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	return s.update(ctx, kind, userID, updates)
}

// SetProfileImage uploads the image to object storage and stores its URL.
func (s *Service) SetProfileImage(ctx context.Context, kind domain.IdentityKind, userID string, r io.Reader, contentType, ext string) (string, error) {
	key := fmt.Sprintf("profile-images/%s-%d.%s", userID, time.Now().UnixMilli(), ext)
	url, err := s.media.Upload(ctx, key, r, contentType)
	if err != nil {
		return "", err
	}
	if err := s.update(ctx, kind, userID, map[string]interface{}{"profile_img": url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) update(ctx context.Context, kind domain.IdentityKind, userID string, updates map[string]interface{}) error {
	switch kind {
	case domain.KindCustomer:
		return s.customers.Update(ctx, userID, updates)
	case domain.KindAgent:
		return s.agents.Update(ctx, userID, updates)
	case domain.KindBuilder:
		return s.builders.Update(ctx, userID, updates)
	default:
		return fmt.Errorf("unknown identity kind %q: %w", kind, domain.ErrBadRequest)
	}
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

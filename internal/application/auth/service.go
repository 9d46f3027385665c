package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/estate-api/internal/domain"
	"github.com/estate-api/internal/pkg/validate"
)

// VerifyResult is the outcome of a successful OTP verification: a session
// credential plus the resolved identity.
type VerifyResult struct {
	Token    string              `json:"token"`
	UserType domain.IdentityKind `json:"userType"`
	UserID   string              `json:"userId"`
}

// IdentityResolver maps phone numbers to accounts across the three
// collections.
type IdentityResolver interface {
	ResolveByPhone(ctx context.Context, phone string) (*domain.Identity, error)
	MarkVerified(ctx context.Context, ident *domain.Identity) error
}

// OTPEngine issues and verifies one-time passcodes.
type OTPEngine interface {
	Issue(ctx context.Context, phoneNumber string) (string, error)
	Verify(ctx context.Context, phoneNumber, code, requestID string) error
}

// SessionSigner converts a verified identity into a signed credential.
type SessionSigner interface {
	Sign(phoneNumber string, kind domain.IdentityKind, userID string) (string, error)
}

type Service interface {
	SendOTP(ctx context.Context, phoneNumber string) (requestID string, err error)
	VerifyOTP(ctx context.Context, phoneNumber, code, requestID string) (*VerifyResult, error)
}

type service struct {
	resolver IdentityResolver
	engine   OTPEngine
	signer   SessionSigner
}

func NewService(resolver IdentityResolver, engine OTPEngine, signer SessionSigner) Service {
	return &service{resolver: resolver, engine: engine, signer: signer}
}

// SendOTP validates the phone format, confirms an account owns the number
// and dispatches a fresh code. The returned request id correlates the later
// verification call.
func (s *service) SendOTP(ctx context.Context, phoneNumber string) (string, error) {
	if !validate.Phone(phoneNumber) {
		return "", fmt.Errorf("invalid phone number: %w", domain.ErrBadRequest)
	}
	ident, err := s.resolver.ResolveByPhone(ctx, phoneNumber)
	if err != nil {
		return "", err
	}
	requestID, err := s.engine.Issue(ctx, phoneNumber)
	if err != nil {
		return "", err
	}
	slog.Info("OTP issued", "phone_number", phoneNumber, "user_type", ident.Kind, "request_id", requestID)
	return requestID, nil
}

// VerifyOTP verifies the presented code, flips the identity's verified flag
// on first success and issues a session token. The identity is resolved
// again rather than cached from SendOTP, keeping the two endpoints
// independently stateless. Any engine failure aborts before a token is
// signed, so the flow never partially commits a session.
func (s *service) VerifyOTP(ctx context.Context, phoneNumber, code, requestID string) (*VerifyResult, error) {
	if phoneNumber == "" || code == "" || requestID == "" {
		return nil, fmt.Errorf("missing required fields: %w", domain.ErrBadRequest)
	}

	if err := s.engine.Verify(ctx, phoneNumber, code, requestID); err != nil {
		return nil, err
	}

	ident, err := s.resolver.ResolveByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	if !ident.Verified {
		if err := s.resolver.MarkVerified(ctx, ident); err != nil {
			return nil, err
		}
		slog.Info("identity verified", "phone_number", phoneNumber, "user_type", ident.Kind)
	}

	token, err := s.signer.Sign(phoneNumber, ident.Kind, ident.ID)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Token: token, UserType: ident.Kind, UserID: ident.ID}, nil
}

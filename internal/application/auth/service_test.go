package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/estate-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) ResolveByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	args := m.Called(ctx, phone)
	if i, _ := args.Get(0).(*domain.Identity); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockResolver) MarkVerified(ctx context.Context, ident *domain.Identity) error {
	return m.Called(ctx, ident).Error(0)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Issue(ctx context.Context, phoneNumber string) (string, error) {
	args := m.Called(ctx, phoneNumber)
	return args.String(0), args.Error(1)
}
func (m *mockEngine) Verify(ctx context.Context, phoneNumber, code, requestID string) error {
	return m.Called(ctx, phoneNumber, code, requestID).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(phoneNumber string, kind domain.IdentityKind, userID string) (string, error) {
	args := m.Called(phoneNumber, kind, userID)
	return args.String(0), args.Error(1)
}

const phone = "+12025550100"

// --- SendOTP ---

func TestSendOTP_InvalidPhone_ReturnsBadRequest(t *testing.T) {
	resolver := &mockResolver{}
	svc := NewService(resolver, &mockEngine{}, &mockSigner{})

	for _, bad := range []string{"", "12025550100", "+123", "+1202555010012345678", "+1202abc0100"} {
		_, err := svc.SendOTP(context.Background(), bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, domain.ErrBadRequest), bad)
	}
	resolver.AssertNotCalled(t, "ResolveByPhone", mock.Anything, mock.Anything)
}

func TestSendOTP_UnknownPhone_ReturnsNotFound(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(nil, domain.ErrNotFound)

	svc := NewService(resolver, engine, &mockSigner{})
	_, err := svc.SendOTP(context.Background(), phone)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	engine.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestSendOTP_HappyPath(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(&domain.Identity{Kind: domain.KindCustomer, ID: "c1"}, nil)
	engine.On("Issue", mock.Anything, phone).Return("req-123", nil)

	svc := NewService(resolver, engine, &mockSigner{})
	requestID, err := svc.SendOTP(context.Background(), phone)

	require.NoError(t, err)
	assert.Equal(t, "req-123", requestID)
}

func TestSendOTP_GatewayFailure_Propagates(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(&domain.Identity{Kind: domain.KindAgent, ID: "a1"}, nil)
	engine.On("Issue", mock.Anything, phone).Return("", domain.ErrGateway)

	svc := NewService(resolver, engine, &mockSigner{})
	_, err := svc.SendOTP(context.Background(), phone)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGateway))
}

// --- VerifyOTP ---

func TestVerifyOTP_MissingFields_ReturnsBadRequest(t *testing.T) {
	engine := &mockEngine{}
	svc := NewService(&mockResolver{}, engine, &mockSigner{})

	cases := []struct{ phone, code, requestID string }{
		{"", "123456", "req-1"},
		{phone, "", "req-1"},
		{phone, "123456", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		_, err := svc.VerifyOTP(context.Background(), c.phone, c.code, c.requestID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	}
	engine.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_EngineFailure_NoToken(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	signer := &mockSigner{}
	engine.On("Verify", mock.Anything, phone, "123456", "req-1").Return(domain.ErrOtpMismatch)

	svc := NewService(resolver, engine, signer)
	_, err := svc.VerifyOTP(context.Background(), phone, "123456", "req-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpMismatch))
	signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
	resolver.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerifyOTP_ConsumedOrExpired_ReturnsOtpNotFound(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Verify", mock.Anything, phone, "123456", "req-1").Return(domain.ErrOtpNotFound)

	svc := NewService(&mockResolver{}, engine, &mockSigner{})
	_, err := svc.VerifyOTP(context.Background(), phone, "123456", "req-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOtpNotFound))
}

func TestVerifyOTP_FirstSuccess_MarksVerifiedAndSigns(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	signer := &mockSigner{}

	ident := &domain.Identity{Kind: domain.KindCustomer, ID: "c1", PhoneNumber: phone, Verified: false}
	engine.On("Verify", mock.Anything, phone, "123456", "req-1").Return(nil)
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(ident, nil)
	resolver.On("MarkVerified", mock.Anything, ident).Return(nil)
	signer.On("Sign", phone, domain.KindCustomer, "c1").Return("signed-token", nil)

	svc := NewService(resolver, engine, signer)
	result, err := svc.VerifyOTP(context.Background(), phone, "123456", "req-1")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, domain.KindCustomer, result.UserType)
	assert.Equal(t, "c1", result.UserID)
	resolver.AssertExpectations(t)
}

func TestVerifyOTP_AlreadyVerified_SkipsMarkButSigns(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	signer := &mockSigner{}

	ident := &domain.Identity{Kind: domain.KindBuilder, ID: "b1", PhoneNumber: phone, Verified: true}
	engine.On("Verify", mock.Anything, phone, "123456", "req-1").Return(nil)
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(ident, nil)
	signer.On("Sign", phone, domain.KindBuilder, "b1").Return("signed-token", nil)

	svc := NewService(resolver, engine, signer)
	result, err := svc.VerifyOTP(context.Background(), phone, "123456", "req-1")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	resolver.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerifyOTP_MarkVerifiedFailure_NoToken(t *testing.T) {
	resolver := &mockResolver{}
	engine := &mockEngine{}
	signer := &mockSigner{}

	ident := &domain.Identity{Kind: domain.KindAgent, ID: "a1", PhoneNumber: phone}
	engine.On("Verify", mock.Anything, phone, "123456", "req-1").Return(nil)
	resolver.On("ResolveByPhone", mock.Anything, phone).Return(ident, nil)
	resolver.On("MarkVerified", mock.Anything, ident).Return(errors.New("dynamo down"))

	svc := NewService(resolver, engine, signer)
	_, err := svc.VerifyOTP(context.Background(), phone, "123456", "req-1")

	require.Error(t, err)
	signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estate-api/internal/application/auth"
	"github.com/estate-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) SendOTP(ctx context.Context, phoneNumber string) (string, error) {
	args := m.Called(ctx, phoneNumber)
	return args.String(0), args.Error(1)
}
func (m *mockAuthService) VerifyOTP(ctx context.Context, phoneNumber, code, requestID string) (*auth.VerifyResult, error) {
	args := m.Called(ctx, phoneNumber, code, requestID)
	if r, _ := args.Get(0).(*auth.VerifyResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestSendOTP_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	rec := postJSON(h.SendOTP, "/v1/auth/send-otp", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTP_InvalidPhone_Returns400(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SendOTP", mock.Anything, "12345").Return("", domain.ErrBadRequest)

	h := NewAuthHandler(svc)
	rec := postJSON(h.SendOTP, "/v1/auth/send-otp", `{"phoneNumber":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTP_UnknownAccount_Returns404(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SendOTP", mock.Anything, "+12025550100").Return("", domain.ErrNotFound)

	h := NewAuthHandler(svc)
	rec := postJSON(h.SendOTP, "/v1/auth/send-otp", `{"phoneNumber":"+12025550100"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendOTP_GatewayFailure_Returns502(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SendOTP", mock.Anything, "+12025550100").Return("", domain.ErrGateway)

	h := NewAuthHandler(svc)
	rec := postJSON(h.SendOTP, "/v1/auth/send-otp", `{"phoneNumber":"+12025550100"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSendOTP_HappyPath(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SendOTP", mock.Anything, "+12025550100").Return("req-123", nil)

	h := NewAuthHandler(svc)
	rec := postJSON(h.SendOTP, "/v1/auth/send-otp", `{"phoneNumber":"+12025550100"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Equal(t, "req-123", resp.Data["requestId"])
}

func TestVerifyOTP_OtpNotFound_Returns401(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("VerifyOTP", mock.Anything, "+12025550100", "123456", "req-1").Return(nil, domain.ErrOtpNotFound)

	h := NewAuthHandler(svc)
	rec := postJSON(h.VerifyOTP, "/v1/auth/verify-otp",
		`{"phoneNumber":"+12025550100","otp":"123456","requestId":"req-1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyOTP_Mismatch_Returns401(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("VerifyOTP", mock.Anything, "+12025550100", "000000", "req-1").Return(nil, domain.ErrOtpMismatch)

	h := NewAuthHandler(svc)
	rec := postJSON(h.VerifyOTP, "/v1/auth/verify-otp",
		`{"phoneNumber":"+12025550100","otp":"000000","requestId":"req-1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyOTP_MissingFields_Returns400(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("VerifyOTP", mock.Anything, "+12025550100", "", "req-1").Return(nil, domain.ErrBadRequest)

	h := NewAuthHandler(svc)
	rec := postJSON(h.VerifyOTP, "/v1/auth/verify-otp",
		`{"phoneNumber":"+12025550100","requestId":"req-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTP_HappyPath(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("VerifyOTP", mock.Anything, "+12025550100", "123456", "req-1").Return(&auth.VerifyResult{
		Token:    "signed-token",
		UserType: domain.KindCustomer,
		UserID:   "c1",
	}, nil)

	h := NewAuthHandler(svc)
	rec := postJSON(h.VerifyOTP, "/v1/auth/verify-otp",
		`{"phoneNumber":"+12025550100","otp":"123456","requestId":"req-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		Data    struct {
			Token    string `json:"token"`
			UserType string `json:"userType"`
			UserID   string `json:"userId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OTP verified successfully", resp.Message)
	assert.Equal(t, "signed-token", resp.Data.Token)
	assert.Equal(t, "customer", resp.Data.UserType)
	assert.Equal(t, "c1", resp.Data.UserID)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estate-api/internal/domain"
	jwtinfra "github.com/estate-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func requestWithKind(kind domain.IdentityKind) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	claims := &jwtinfra.Claims{UserType: string(kind), UserID: "u1"}
	return req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
}

func TestRequireKind_AllowedKind(t *testing.T) {
	h := RequireKind(domain.KindAgent, domain.KindBuilder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithKind(domain.KindBuilder))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireKind_DisallowedKind(t *testing.T) {
	h := RequireKind(domain.KindAgent, domain.KindBuilder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithKind(domain.KindCustomer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireKind_NoClaims(t *testing.T) {
	h := RequireKind(domain.KindAgent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/estate-api/internal/config"
	"github.com/estate-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the session payload: phone number, identity kind and id.
type Claims struct {
	PhoneNumber string `json:"phoneNumber"`
	UserType    string `json:"userType"`
	UserID      string `json:"userId"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens. Sessions are stateless:
// validity is purely a function of the signature and the embedded expiry,
// so there is no revocation; account changes do not invalidate live tokens.
type Provider struct {
	secret []byte
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry}, nil
}

func (p *Provider) Sign(phoneNumber string, kind domain.IdentityKind, userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		PhoneNumber: phoneNumber,
		UserType:    string(kind),
		UserID:      userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrSessionExpired)
		}
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

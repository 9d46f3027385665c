package redisinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/estate-api/internal/config"
	"github.com/estate-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// NewClient creates a Redis client from config.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// OTPStore holds short-lived OTP records under otp:{requestID}.
// Redis is the single source of truth for OTP liveness: a record that the
// store no longer returns is expired, consumed or never existed, and those
// three cases are indistinguishable to callers.
type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func key(requestID string) string {
	return otpKeyPrefix + requestID
}

// Put writes the record with the given TTL.
func (s *OTPStore) Put(ctx context.Context, requestID string, rec *domain.OtpRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	if err := s.client.Set(ctx, key(requestID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store otp record: %w", err)
	}
	return nil
}

// Get reads the record without consuming it.
func (s *OTPStore) Get(ctx context.Context, requestID string) (*domain.OtpRecord, error) {
	payload, err := s.client.Get(ctx, key(requestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrOtpNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read otp record: %w", err)
	}
	var rec domain.OtpRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return &rec, nil
}

// Consume atomically reads and deletes the record (GETDEL). When two
// verification attempts race, Redis serialises the commands and exactly one
// caller gets the record; the other sees ErrOtpNotFound.
func (s *OTPStore) Consume(ctx context.Context, requestID string) (*domain.OtpRecord, error) {
	payload, err := s.client.GetDel(ctx, key(requestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrOtpNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume otp record: %w", err)
	}
	var rec domain.OtpRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return &rec, nil
}

// Ping checks Redis reachability for health reporting.
func (s *OTPStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
